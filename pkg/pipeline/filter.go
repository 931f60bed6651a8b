// Package pipeline turns the raw request collection of a property into the
// filtered list the dashboard table shows and the derived metrics the
// analytics view charts. Everything here is a pure transformation: no I/O,
// no clocks except what the caller passes in.
package pipeline

import (
	"sort"
	"strings"

	"stayops-be/internal/entity"
)

type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"

	// FilterAll disables a department or priority filter.
	FilterAll = "All"
)

// Filters is the ephemeral, client-driven filter state. Zero value means
// "show everything, newest first"; DefaultFilters is what the dashboard
// resets to on load.
type Filters struct {
	ActiveOnly         bool
	UnacknowledgedOnly bool
	Department         string
	Priority           string
	SortOrder          SortOrder
	SearchTerm         string
}

func DefaultFilters() Filters {
	return Filters{
		ActiveOnly: true,
		Department: FilterAll,
		Priority:   FilterAll,
		SortOrder:  SortNewest,
	}
}

// FilterAndSort applies the filter state and sorts by creation time. The
// sort is stable: requests with equal timestamps keep their input order.
// The input slice is never mutated.
func FilterAndSort(requests []*entity.Request, f Filters) []*entity.Request {
	term := strings.ToLower(strings.TrimSpace(f.SearchTerm))

	out := make([]*entity.Request, 0, len(requests))
	for _, r := range requests {
		if r == nil {
			continue
		}
		if f.ActiveOnly && r.Completed {
			continue
		}
		if f.UnacknowledgedOnly && r.Acknowledged {
			continue
		}
		// Departments are controlled vocabulary: exact, case-sensitive.
		if f.Department != "" && f.Department != FilterAll && r.Department != f.Department {
			continue
		}
		// Priorities are compared case-insensitively; historic rows may
		// predate enum normalization.
		if f.Priority != "" && f.Priority != FilterAll &&
			!strings.EqualFold(string(r.Priority), f.Priority) {
			continue
		}
		if term != "" && !matchesTerm(r, term) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if f.SortOrder == SortOldest {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out
}

func matchesTerm(r *entity.Request, term string) bool {
	if strings.Contains(strings.ToLower(r.Message), term) {
		return true
	}
	if strings.Contains(r.FromPhone, term) {
		return true
	}
	return strings.Contains(strings.ToLower(r.RoomNumber), term)
}
