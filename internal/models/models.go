// internal/models/models.go
// Package models derives the filtered model list and its display labels.
package models

import (
	"strings"

	"github.com/mwiater/evalboard/internal/evalapi"
)

// Filter selects which models are listed.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterActive   Filter = "active"
	FilterInactive Filter = "inactive"
)

// Filters lists the filter options in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterInactive}

// ParseFilter maps user input to a Filter. Unknown values select all models.
func ParseFilter(value string) Filter {
	switch Filter(strings.ToLower(strings.TrimSpace(value))) {
	case FilterActive:
		return FilterActive
	case FilterInactive:
		return FilterInactive
	default:
		return FilterAll
	}
}

// Next cycles all -> active -> inactive -> all.
func (f Filter) Next() Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Matches reports whether m passes the filter.
func (f Filter) Matches(m evalapi.Model) bool {
	switch f {
	case FilterActive:
		return m.IsActive
	case FilterInactive:
		return !m.IsActive
	default:
		return true
	}
}

// Apply returns the models that pass the filter, preserving order.
func Apply(models []evalapi.Model, f Filter) []evalapi.Model {
	out := make([]evalapi.Model, 0, len(models))
	for _, m := range models {
		if f.Matches(m) {
			out = append(out, m)
		}
	}
	return out
}

// Counts returns how many models each filter would show.
func Counts(models []evalapi.Model) map[Filter]int {
	counts := map[Filter]int{FilterAll: len(models)}
	for _, m := range models {
		if m.IsActive {
			counts[FilterActive]++
		} else {
			counts[FilterInactive]++
		}
	}
	return counts
}
