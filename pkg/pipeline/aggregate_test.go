package pipeline

import (
	"math"
	"testing"
	"time"

	"stayops-be/internal/entity"
)

func ptrTime(t time.Time) *time.Time { return &t }

func TestAggregateEmpty(t *testing.T) {
	rng := Range{
		Start: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
	}
	m := Aggregate(nil, rng, nil)

	if m.Total != 0 {
		t.Errorf("Total = %d, want 0", m.Total)
	}
	if m.AvgAckMinutes != 0 || m.AvgCompletionMinutes != 0 {
		t.Errorf("averages = %v/%v, want 0/0", m.AvgAckMinutes, m.AvgCompletionMinutes)
	}
	if math.IsNaN(m.AvgAckMinutes) || math.IsNaN(m.AvgCompletionMinutes) {
		t.Error("averages must never be NaN")
	}
	if len(m.PerDay) != 3 {
		t.Fatalf("PerDay has %d entries, want 3 zero-filled days", len(m.PerDay))
	}
	for _, d := range m.PerDay {
		if d.Count != 0 {
			t.Errorf("day %s count = %d, want 0", d.Date, d.Count)
		}
	}
	for _, p := range m.DailyCompletion {
		if p.Percent != 0 {
			t.Errorf("empty bucket %s percent = %d, want 0", p.Period, p.Percent)
		}
	}
}

func TestAggregateAverages(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	rng := Range{Start: created, End: created}

	reqs := []*entity.Request{
		req(func(r *entity.Request) {
			r.CreatedAt = created
			r.Acknowledged = true
			r.AcknowledgedAt = ptrTime(created.Add(5 * time.Minute))
		}),
		req(func(r *entity.Request) {
			r.CreatedAt = created.Add(time.Minute)
			r.Acknowledged = true
			r.AcknowledgedAt = ptrTime(created.Add(16 * time.Minute))
			r.Completed = true
			r.CompletedAt = ptrTime(created.Add(31 * time.Minute))
		}),
	}

	m := Aggregate(reqs, rng, nil)

	// 5 and 15 minutes ack latency, mean 10.
	if m.AvgAckMinutes != 10 {
		t.Errorf("AvgAckMinutes = %v, want 10", m.AvgAckMinutes)
	}
	if m.AvgCompletionMinutes != 30 {
		t.Errorf("AvgCompletionMinutes = %v, want 30", m.AvgCompletionMinutes)
	}
}

func TestAggregateExcludesMalformedDurations(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	rng := Range{Start: created, End: created}

	reqs := []*entity.Request{
		req(func(r *entity.Request) {
			r.CreatedAt = created
			r.Acknowledged = true
			r.AcknowledgedAt = ptrTime(created.Add(10 * time.Minute))
		}),
		// Acknowledged flag without a timestamp: excluded from the
		// average but still counted in Total.
		req(func(r *entity.Request) {
			r.CreatedAt = created
			r.Acknowledged = true
		}),
		// Clock skew produced a negative latency: also excluded.
		req(func(r *entity.Request) {
			r.CreatedAt = created
			r.Acknowledged = true
			r.AcknowledgedAt = ptrTime(created.Add(-2 * time.Minute))
		}),
	}

	m := Aggregate(reqs, rng, nil)

	if m.Total != 3 {
		t.Errorf("Total = %d, want 3", m.Total)
	}
	if m.AvgAckMinutes != 10 {
		t.Errorf("AvgAckMinutes = %v, want 10", m.AvgAckMinutes)
	}
}

func TestAggregateMissedSLAs(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	rng := Range{Start: created, End: created}
	targets := map[string]int{"Housekeeping": 15}

	reqs := []*entity.Request{
		req(func(r *entity.Request) {
			r.CreatedAt = created
			r.AcknowledgedAt = ptrTime(created.Add(20 * time.Minute)) // over target
		}),
		req(func(r *entity.Request) {
			r.CreatedAt = created
			r.AcknowledgedAt = ptrTime(created.Add(10 * time.Minute)) // within target
		}),
		req(func(r *entity.Request) {
			r.Department = "Spa" // no SLA configured: cannot miss
			r.CreatedAt = created
			r.AcknowledgedAt = ptrTime(created.Add(3 * time.Hour))
		}),
		req(func(r *entity.Request) {
			r.CreatedAt = created // never acknowledged: not a miss yet
		}),
	}

	m := Aggregate(reqs, rng, targets)

	if m.MissedSLAs != 1 {
		t.Errorf("MissedSLAs = %d, want 1", m.MissedSLAs)
	}
}

func TestAggregateBreakdowns(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	rng := Range{Start: created, End: created.AddDate(0, 0, 1)}

	reqs := []*entity.Request{
		req(func(r *entity.Request) {
			r.CreatedAt = created
			r.Message = "the sink is leaking"
			r.Department = "Maintenance"
			r.Priority = entity.PriorityUrgent
		}),
		req(func(r *entity.Request) {
			r.CreatedAt = created.AddDate(0, 0, 1)
			r.Message = "sink clogged again"
			r.Department = ""
		}),
	}

	m := Aggregate(reqs, rng, nil)

	if m.ByDepartment["Maintenance"] != 1 || m.ByDepartment[entity.DepartmentUnassigned] != 1 {
		t.Errorf("ByDepartment = %v", m.ByDepartment)
	}
	if m.ByPriority["urgent"] != 1 || m.ByPriority["normal"] != 1 {
		t.Errorf("ByPriority = %v", m.ByPriority)
	}
	if len(m.PerDay) != 2 || m.PerDay[0].Count != 1 || m.PerDay[1].Count != 1 {
		t.Errorf("PerDay = %v", m.PerDay)
	}
	if len(m.TopWords) == 0 || m.TopWords[0].Word != "sink" || m.TopWords[0].Count != 2 {
		t.Errorf("TopWords = %v, want sink first with count 2", m.TopWords)
	}
	for _, w := range m.TopWords {
		if w.Word == "the" || w.Word == "is" {
			t.Errorf("stop word %q survived", w.Word)
		}
	}
}

func TestAggregateCompletionSeries(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	day := time.Date(2026, 8, 1, 9, 0, 0, 0, loc)
	rng := Range{Start: day, End: day.AddDate(0, 0, 2), Loc: loc}

	reqs := []*entity.Request{
		req(func(r *entity.Request) {
			r.CreatedAt = day
			r.Completed = true
			r.CompletedAt = ptrTime(day.Add(time.Hour))
		}),
		req(func(r *entity.Request) { r.CreatedAt = day.Add(time.Hour) }),
		req(func(r *entity.Request) {
			r.CreatedAt = day.AddDate(0, 0, 1)
			r.Completed = true
			r.CompletedAt = ptrTime(day.AddDate(0, 0, 1).Add(time.Hour))
		}),
	}

	m := Aggregate(reqs, rng, nil)

	if len(m.DailyCompletion) != 3 {
		t.Fatalf("DailyCompletion has %d points, want 3", len(m.DailyCompletion))
	}
	if m.DailyCompletion[0].Percent != 50 {
		t.Errorf("day 1 percent = %d, want 50", m.DailyCompletion[0].Percent)
	}
	if m.DailyCompletion[1].Percent != 100 {
		t.Errorf("day 2 percent = %d, want 100", m.DailyCompletion[1].Percent)
	}
	if m.DailyCompletion[2].Percent != 0 {
		t.Errorf("empty day 3 percent = %d, want 0", m.DailyCompletion[2].Percent)
	}
	if len(m.MonthlyCompletion) != 1 || m.MonthlyCompletion[0].Period != "2026-08" {
		t.Errorf("MonthlyCompletion = %v", m.MonthlyCompletion)
	}
}

func TestSummarize(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 8, 29, 15, 0, 0, 0, loc)

	reqs := []*entity.Request{
		req(func(r *entity.Request) { // today, active, urgent
			r.CreatedAt = now.Add(-2 * time.Hour)
			r.Priority = entity.PriorityUrgent
		}),
		req(func(r *entity.Request) { // this week, acknowledged
			r.CreatedAt = now.AddDate(0, 0, -3)
			r.Acknowledged = true
			r.AcknowledgedAt = ptrTime(now.AddDate(0, 0, -3).Add(time.Minute))
		}),
		req(func(r *entity.Request) { // this month, completed
			r.CreatedAt = now.AddDate(0, 0, -20)
			r.Acknowledged = true
			r.Completed = true
		}),
		req(func(r *entity.Request) { // older than a month
			r.CreatedAt = now.AddDate(0, -2, 0)
			r.Acknowledged = true
			r.Completed = true
		}),
	}

	s := Summarize(reqs, now, loc)

	if s.Today != 1 {
		t.Errorf("Today = %d, want 1", s.Today)
	}
	if s.ThisWeek != 2 {
		t.Errorf("ThisWeek = %d, want 2", s.ThisWeek)
	}
	if s.ThisMonth != 3 {
		t.Errorf("ThisMonth = %d, want 3", s.ThisMonth)
	}
	if s.Active != 2 {
		t.Errorf("Active = %d, want 2", s.Active)
	}
	if s.Unacknowledged != 1 {
		t.Errorf("Unacknowledged = %d, want 1", s.Unacknowledged)
	}
	if s.Urgent != 1 {
		t.Errorf("Urgent = %d, want 1", s.Urgent)
	}
}
