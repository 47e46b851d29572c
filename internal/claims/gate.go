package claims

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"claimboard/internal/models"
)

// Gate errors returned by RequestTransition and RequestDeletion.
var (
	ErrUnknownClaim  = errors.New("claim not found")
	ErrInvalidStatus = errors.New("invalid status")
)

// NotifyKind classifies a transient notification.
type NotifyKind string

// Possible values for NotifyKind
const (
	NotifySuccess NotifyKind = "success"
	NotifyError   NotifyKind = "error"
)

// Notifier receives transient notifications for the user: confirmation
// feedback on success, failure reports when a collaborator rejects.
type Notifier interface {
	Notify(kind NotifyKind, message string)
}

// ClaimSource is the read side the gate needs: the current state of a
// single claim, used to reject redundant transitions.
type ClaimSource interface {
	GetClaim(id int64) (*models.Claim, error)
}

// UpdateFunc persists a confirmed status change.
type UpdateFunc func(claimID int64, status models.Status) error

// DeleteFunc persists a confirmed deletion.
type DeleteFunc func(claimID int64) error

// PendingTransition is a requested but not yet confirmed status change.
type PendingTransition struct {
	ClaimID int64
	Status  models.Status
}

// Gate mediates every claim mutation: nothing is persisted without an
// explicit confirmation, and the claim list only ever reflects what the
// collaborators have actually accepted (confirm-then-refetch, never
// optimistic data).
//
// A Gate is one claim-interaction surface: it holds at most one pending
// transition and one pending deletion at a time.
type Gate struct {
	mu     sync.Mutex
	source ClaimSource
	update UpdateFunc
	del    DeleteFunc
	notify Notifier

	pendingTransition *PendingTransition
	pendingDeletion   *int64
}

// NewGate wires a gate to its collaborators. update and delete are
// invoked only after the user confirms; notify receives the outcome.
func NewGate(source ClaimSource, update UpdateFunc, del DeleteFunc, notify Notifier) *Gate {
	return &Gate{source: source, update: update, del: del, notify: notify}
}

// RequestTransition records a proposed status change for claimID and
// reports whether a confirmation prompt should open. Proposing the
// claim's current status is a silent no-op: no pending transition is
// created and no prompt opens.
func (g *Gate) RequestTransition(claimID int64, proposed models.Status) (bool, error) {
	if !proposed.IsValid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, proposed)
	}

	claim, err := g.source.GetClaim(claimID)
	if err != nil {
		return false, fmt.Errorf("%w: id %d", ErrUnknownClaim, claimID)
	}
	if claim.Status == proposed {
		return false, nil
	}

	g.mu.Lock()
	g.pendingTransition = &PendingTransition{ClaimID: claimID, Status: proposed}
	g.mu.Unlock()
	return true, nil
}

// PendingTransition returns the transition awaiting confirmation, if any.
func (g *Gate) PendingTransition() (PendingTransition, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pendingTransition == nil {
		return PendingTransition{}, false
	}
	return *g.pendingTransition, true
}

// ConfirmTransition applies the pending transition through the update
// collaborator and clears it. The return value tells the caller to
// close the confirmation surface; it is true whenever a transition was
// pending, even if the collaborator rejected it. The claim list is
// never touched directly, so a failure leaves the displayed state as it
// was and only produces an error notification.
//
// Calling with nothing pending is a no-op.
func (g *Gate) ConfirmTransition() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pendingTransition == nil {
		log.Printf("claims: confirm with no pending transition")
		return false
	}
	p := *g.pendingTransition
	g.pendingTransition = nil

	// The lock is held across the collaborator call so a double-submit
	// cannot fire it twice.
	if err := g.update(p.ClaimID, p.Status); err != nil {
		g.notify.Notify(NotifyError, fmt.Sprintf("Could not update claim #%d: %v", p.ClaimID, err))
		return true
	}
	g.notify.Notify(NotifySuccess, fmt.Sprintf("Claim #%d marked %s", p.ClaimID, p.Status.Label()))
	return true
}

// CancelTransition discards the pending transition without side effects.
func (g *Gate) CancelTransition() {
	g.mu.Lock()
	g.pendingTransition = nil
	g.mu.Unlock()
}

// RequestDeletion records claimID for deletion pending confirmation.
func (g *Gate) RequestDeletion(claimID int64) error {
	if _, err := g.source.GetClaim(claimID); err != nil {
		return fmt.Errorf("%w: id %d", ErrUnknownClaim, claimID)
	}
	g.mu.Lock()
	g.pendingDeletion = &claimID
	g.mu.Unlock()
	return nil
}

// PendingDeletion returns the claim awaiting delete confirmation, if any.
func (g *Gate) PendingDeletion() (int64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pendingDeletion == nil {
		return 0, false
	}
	return *g.pendingDeletion, true
}

// ConfirmDeletion deletes the pending claim through the delete
// collaborator and clears the pending state. Returns true when a
// deletion was pending, signalling any open detail surface to close.
// A no-op when nothing is pending.
func (g *Gate) ConfirmDeletion() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pendingDeletion == nil {
		log.Printf("claims: confirm with no pending deletion")
		return false
	}
	id := *g.pendingDeletion
	g.pendingDeletion = nil

	if err := g.del(id); err != nil {
		g.notify.Notify(NotifyError, fmt.Sprintf("Could not delete claim #%d: %v", id, err))
		return true
	}
	g.notify.Notify(NotifySuccess, fmt.Sprintf("Claim #%d deleted", id))
	return true
}

// CancelDeletion discards the pending deletion without side effects.
func (g *Gate) CancelDeletion() {
	g.mu.Lock()
	g.pendingDeletion = nil
	g.mu.Unlock()
}
