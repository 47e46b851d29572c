// Package claims implements the claim lifecycle core: the status
// grouping that feeds the board and the confirmation gate that guards
// every status change and deletion.
package claims

import "claimboard/internal/models"

// Grouping maps each status to the ordered list of claims currently in
// that status. It is derived data, recomputed from the claim list on
// every fetch, never mutated in place.
type Grouping struct {
	groups map[models.Status][]models.Claim

	// Dropped counts claims excluded because their status is not a
	// known value. Callers should log it as a data-integrity warning.
	Dropped int
}

// Regroup builds a Grouping from claims. Every known status gets a
// group, so empty board columns still render; claims with an unknown
// status are excluded and counted in Dropped rather than failing the
// whole grouping.
func Regroup(claims []models.Claim) Grouping {
	g := Grouping{groups: make(map[models.Status][]models.Claim, len(models.AllStatuses))}
	for _, s := range models.AllStatuses {
		g.groups[s] = []models.Claim{}
	}
	for _, c := range claims {
		if !c.Status.IsValid() {
			g.Dropped++
			continue
		}
		g.groups[c.Status] = append(g.groups[c.Status], c)
	}
	return g
}

// Group returns the claims in status s, in source-list order.
func (g Grouping) Group(s models.Status) []models.Claim {
	return g.groups[s]
}

// Count returns the number of claims in status s.
func (g Grouping) Count(s models.Status) int {
	return len(g.groups[s])
}

// Total returns the number of grouped claims across all statuses.
func (g Grouping) Total() int {
	n := 0
	for _, cs := range g.groups {
		n += len(cs)
	}
	return n
}
