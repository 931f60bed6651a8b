package pipeline

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"stayops-be/internal/entity"
)

func req(mutate func(*entity.Request)) *entity.Request {
	r := &entity.Request{
		Id:         uuid.New(),
		PropertyId: uuid.New(),
		FromPhone:  "+15550001111",
		RoomNumber: "101",
		Message:    "extra towels",
		Department: "Housekeeping",
		Priority:   entity.PriorityNormal,
		CreatedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	if mutate != nil {
		mutate(r)
	}
	return r
}

func TestDefaultFilters(t *testing.T) {
	f := DefaultFilters()
	if !f.ActiveOnly {
		t.Error("default filters should hide completed requests")
	}
	if f.UnacknowledgedOnly {
		t.Error("default filters should not hide acknowledged requests")
	}
	if f.Department != FilterAll || f.Priority != FilterAll {
		t.Errorf("default filters should not restrict department or priority, got %q/%q", f.Department, f.Priority)
	}
	if f.SortOrder != SortNewest {
		t.Errorf("default sort = %q, want %q", f.SortOrder, SortNewest)
	}
}

func TestFilterAndSort(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	older := req(func(r *entity.Request) {
		r.Message = "sink is leaking"
		r.Department = "Maintenance"
		r.Priority = entity.PriorityUrgent
		r.CreatedAt = base
	})
	newer := req(func(r *entity.Request) {
		r.Message = "extra towels please"
		r.RoomNumber = "204"
		r.CreatedAt = base.Add(30 * time.Minute)
	})
	done := req(func(r *entity.Request) {
		r.Message = "late checkout"
		r.Completed = true
		r.Acknowledged = true
		r.CreatedAt = base.Add(time.Hour)
	})
	all := []*entity.Request{older, newer, done}

	tests := []struct {
		name    string
		filters Filters
		want    []*entity.Request
	}{
		{
			name:    "defaults hide completed and sort newest first",
			filters: DefaultFilters(),
			want:    []*entity.Request{newer, older},
		},
		{
			name:    "all statuses oldest first",
			filters: Filters{SortOrder: SortOldest},
			want:    []*entity.Request{older, newer, done},
		},
		{
			name:    "department filter is exact and case sensitive",
			filters: Filters{Department: "maintenance"},
			want:    nil,
		},
		{
			name:    "department filter matches",
			filters: Filters{Department: "Maintenance"},
			want:    []*entity.Request{older},
		},
		{
			name:    "priority filter is case insensitive",
			filters: Filters{Priority: "URGENT"},
			want:    []*entity.Request{older},
		},
		{
			name:    "unacknowledged only",
			filters: Filters{UnacknowledgedOnly: true},
			want:    []*entity.Request{newer, older},
		},
		{
			name:    "search matches message",
			filters: Filters{SearchTerm: "Sink"},
			want:    []*entity.Request{older},
		},
		{
			name:    "search matches room number",
			filters: Filters{SearchTerm: "204"},
			want:    []*entity.Request{newer},
		},
		{
			name:    "search matches phone",
			filters: Filters{SearchTerm: "5550001111"},
			want:    []*entity.Request{done, newer, older},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAndSort(all, tt.filters)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d requests, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Id != tt.want[i].Id {
					t.Errorf("position %d: got %q, want %q", i, got[i].Message, tt.want[i].Message)
				}
			}
		})
	}
}

func TestFilterAndSortIdempotent(t *testing.T) {
	all := []*entity.Request{
		req(func(r *entity.Request) { r.CreatedAt = time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC) }),
		req(func(r *entity.Request) { r.CreatedAt = time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC) }),
		req(func(r *entity.Request) { r.Completed = true }),
	}
	f := DefaultFilters()

	once := FilterAndSort(all, f)
	twice := FilterAndSort(once, f)

	if len(once) != len(twice) {
		t.Fatalf("reapplying filters changed length: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Id != twice[i].Id {
			t.Errorf("reapplying filters changed order at %d", i)
		}
	}
}

func TestFilterAndSortDoesNotMutateInput(t *testing.T) {
	a := req(func(r *entity.Request) { r.CreatedAt = time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC) })
	b := req(func(r *entity.Request) { r.CreatedAt = time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC) })
	all := []*entity.Request{a, b}

	FilterAndSort(all, DefaultFilters())

	if all[0] != a || all[1] != b {
		t.Error("input slice order changed")
	}
}
