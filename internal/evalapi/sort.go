package evalapi

import (
	"sort"

	"github.com/mwiater/evalboard/internal/util"
)

// NewestFirst returns a copy of evals ordered by created_at, newest first.
// Ties keep their input order and unparseable timestamps sort last.
func NewestFirst(evals []Evaluation) []Evaluation {
	sorted := make([]Evaluation, len(evals))
	copy(sorted, evals)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, okI := util.ParseTimestamp(sorted[i].CreatedAt)
		tj, okJ := util.ParseTimestamp(sorted[j].CreatedAt)
		switch {
		case okI && okJ:
			return ti.After(tj)
		case okI:
			return true
		default:
			return false
		}
	})
	return sorted
}
