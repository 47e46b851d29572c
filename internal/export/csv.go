// Package export formats claim reports. It is pure derived-text
// formatting: no state, no knowledge of the lifecycle core.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"claimboard/internal/models"
)

var csvHeader = []string{"id", "owner", "email", "category", "amount", "status", "comments", "document", "created_at", "updated_at"}

// WriteClaimsCSV writes claims to w as a CSV report, one row per claim,
// in the order given.
func WriteClaimsCSV(w io.Writer, claims []models.Claim) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, c := range claims {
		owner, email := "", ""
		if c.Owner != nil {
			owner = c.Owner.FullName()
			email = c.Owner.Email
		}
		doc := ""
		if c.DocumentURL != nil {
			doc = *c.DocumentURL
		}
		row := []string{
			fmt.Sprintf("%d", c.ID),
			owner,
			email,
			string(c.Category),
			fmt.Sprintf("%.2f", c.Amount),
			string(c.Status),
			c.Comments,
			doc,
			c.CreatedAt.Format("2006-01-02 15:04:05"),
			c.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
