package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"claimboard/internal/export"
)

// ExportClaimsCSV streams the full claim list as a CSV download.
func (h *Handlers) ExportClaimsCSV(w http.ResponseWriter, r *http.Request) {
	list, err := h.db.ListClaims(0, 0)
	if err != nil {
		log.Printf("ExportClaimsCSV list error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("claims-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteClaimsCSV(w, list); err != nil {
		log.Printf("ExportClaimsCSV write error: %v", err)
	}
}
