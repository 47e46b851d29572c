package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"claimboard/internal/claims"
	"claimboard/internal/models"
)

// StatusStyle defines the visual style for a status column and badge.
type StatusStyle struct {
	Label string
	Color string
}

var statusStyles = map[models.Status]StatusStyle{
	models.StatusPending:   {"Pending", "#fbbf24"},
	models.StatusApproved:  {"Approved", "#34d399"},
	models.StatusRejected:  {"Rejected", "#f87171"},
	models.StatusPaid:      {"Paid", "#60a5fa"},
	models.StatusCancelled: {"Cancelled", "#94a3b8"},
	models.StatusDeclined:  {"Declined", "#a78bfa"},
}

func getStatusStyle(s models.Status) StatusStyle {
	if style, ok := statusStyles[s]; ok {
		return style
	}
	return StatusStyle{Label: s.Label(), Color: "#94a3b8"}
}

// ClaimCard represents one claim on the board or in the detail modal.
type ClaimCard struct {
	models.Claim
	AmountDisplay string
	OwnerName     string
	When          string
	Style         StatusStyle
}

// BoardColumn is one status column on the board.
type BoardColumn struct {
	Status models.Status
	Style  StatusStyle
	Count  int
	Cards  []ClaimCard
}

// BoardViewModel is the data passed to the board template.
type BoardViewModel struct {
	Columns []BoardColumn
	Total   int
	Notices []Notice
}

// StatusOption is one status affordance in the detail modal. Current is
// set for the claim's own status: that option renders disabled, since
// selecting it would be a no-op.
type StatusOption struct {
	Status  models.Status
	Style   StatusStyle
	Current bool
}

// DetailViewModel is the data passed to the detail modal template.
type DetailViewModel struct {
	Card    ClaimCard
	Options []StatusOption
}

// ConfirmViewModel is the data passed to the confirm dialog templates.
type ConfirmViewModel struct {
	ClaimID int64
	Status  models.Status
	Style   StatusStyle
}

func newClaimCard(c models.Claim) ClaimCard {
	card := ClaimCard{
		Claim:         c,
		AmountDisplay: formatAmount(c.Amount),
		When:          formatWhen(c.CreatedAt),
		Style:         getStatusStyle(c.Status),
	}
	if c.Owner != nil {
		card.OwnerName = c.Owner.FullName()
	}
	return card
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("R %.2f", amount)
}

func formatWhen(date time.Time) string {
	dateStr := date.Format("2006-01-02")
	nowStr := time.Now().Format("2006-01-02")

	if dateStr == nowStr {
		return "Today " + date.Format("15:04")
	}
	yesterdayStr := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	if dateStr == yesterdayStr {
		return "Yesterday " + date.Format("15:04")
	}
	return date.Format("Mon, 02 Jan '06")
}

// Board renders the claims board: one column per status, in enum order,
// empty columns included.
func (h *Handlers) Board(w http.ResponseWriter, r *http.Request) {
	list, err := h.db.ListClaims(0, 0)
	if err != nil {
		log.Printf("Board list error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	grouping := claims.Regroup(list)
	if grouping.Dropped > 0 {
		log.Printf("Board: dropped %d claim(s) with unknown status", grouping.Dropped)
	}

	columns := make([]BoardColumn, 0, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		group := grouping.Group(s)
		cards := make([]ClaimCard, 0, len(group))
		for _, c := range group {
			cards = append(cards, newClaimCard(c))
		}
		columns = append(columns, BoardColumn{
			Status: s,
			Style:  getStatusStyle(s),
			Count:  grouping.Count(s),
			Cards:  cards,
		})
	}

	h.render(w, r, "board.html", BoardViewModel{
		Columns: columns,
		Total:   grouping.Total(),
		Notices: h.flash.Drain(sessionToken(r)),
	})
}

// ClaimDetail renders the detail modal for one claim.
func (h *Handlers) ClaimDetail(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	claim, err := h.db.GetClaim(id)
	if err != nil {
		http.Error(w, "Claim not found", http.StatusNotFound)
		return
	}

	options := make([]StatusOption, 0, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		options = append(options, StatusOption{
			Status:  s,
			Style:   getStatusStyle(s),
			Current: s == claim.Status,
		})
	}

	h.renderPartial(w, "detail.html", DetailViewModel{
		Card:    newClaimCard(*claim),
		Options: options,
	})
}

// RequestTransition handles a proposed status change. If the proposal
// needs confirmation, the confirm dialog is rendered; a same-status
// proposal renders nothing.
func (h *Handlers) RequestTransition(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	proposed := models.Status(strings.TrimSpace(r.FormValue("status")))

	opened, err := h.gate(r).RequestTransition(id, proposed)
	if err != nil {
		if errors.Is(err, claims.ErrUnknownClaim) {
			http.Error(w, "Claim not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !opened {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.renderPartial(w, "confirm_status.html", ConfirmViewModel{
		ClaimID: id,
		Status:  proposed,
		Style:   getStatusStyle(proposed),
	})
}

// closeDialog swaps the confirm dialog away. The dialog buttons target
// #modal, so an empty 200 body clears it; htmx never swaps a 204 and
// skips the swap entirely on HX-Location responses.
func closeDialog(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

// ConfirmTransition applies the pending transition, closes the dialog
// and fires claimsChanged so the board refetches the claim list.
func (h *Handlers) ConfirmTransition(w http.ResponseWriter, r *http.Request) {
	if !h.gate(r).ConfirmTransition() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("HX-Trigger", "claimsChanged")
	closeDialog(w)
}

// CancelTransition discards the pending transition and closes the dialog.
func (h *Handlers) CancelTransition(w http.ResponseWriter, r *http.Request) {
	h.gate(r).CancelTransition()
	closeDialog(w)
}

// RequestDeletion renders the delete confirm dialog for a claim.
func (h *Handlers) RequestDeletion(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err := h.gate(r).RequestDeletion(id); err != nil {
		http.Error(w, "Claim not found", http.StatusNotFound)
		return
	}
	h.renderPartial(w, "confirm_delete.html", ConfirmViewModel{ClaimID: id})
}

// ConfirmDeletion applies the pending deletion, closes the dialog and
// fires claimsChanged so the board refetches the claim list.
func (h *Handlers) ConfirmDeletion(w http.ResponseWriter, r *http.Request) {
	if !h.gate(r).ConfirmDeletion() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("HX-Trigger", "claimsChanged")
	closeDialog(w)
}

// CancelDeletion discards the pending deletion and closes the dialog.
func (h *Handlers) CancelDeletion(w http.ResponseWriter, r *http.Request) {
	h.gate(r).CancelDeletion()
	closeDialog(w)
}

// FormViewModel is the data passed to the claim submission form.
type FormViewModel struct {
	Categories []models.Category
	Error      string
}

// NewClaimForm renders the claim submission form.
func (h *Handlers) NewClaimForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "claim_form.html", FormViewModel{Categories: models.AllCategories})
}

// CreateClaim handles claim submission. New claims start out pending.
func (h *Handlers) CreateClaim(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	claim, err := parseClaimForm(r, user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := h.db.CreateClaim(claim); err != nil {
		log.Printf("CreateClaim error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("HX-Location", `{"path":"/claims", "target":"#content"}`)
}

func parseClaimForm(r *http.Request, ownerID int64) (*models.Claim, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if err != nil || amount <= 0 {
		return nil, errors.New("a positive amount is required")
	}

	category := models.Category(r.FormValue("category"))
	if category != "" && !category.IsValid() {
		return nil, fmt.Errorf("unknown category: %s", category)
	}

	claim := &models.Claim{
		Amount:   amount,
		Category: category,
		Comments: r.FormValue("comments"),
		OwnerID:  ownerID,
	}
	if doc := strings.TrimSpace(r.FormValue("document_url")); doc != "" {
		claim.DocumentURL = &doc
	}
	return claim, nil
}
