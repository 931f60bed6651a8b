package pipeline

import (
	"fmt"
	"math"
	"time"

	"stayops-be/internal/entity"
)

// Range is an inclusive whole-day window evaluated in the property's
// timezone.
type Range struct {
	Start time.Time
	End   time.Time
	Loc   *time.Location
}

func (r Range) location() *time.Location {
	if r.Loc != nil {
		return r.Loc
	}
	return time.UTC
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type SeriesPoint struct {
	Period  string `json:"period"`
	Percent int    `json:"percent"`
}

// Metrics is the derived analytics payload. It is computed fresh on every
// call and never cached.
type Metrics struct {
	Total                int            `json:"total"`
	AvgAckMinutes        float64        `json:"avg_ack_minutes"`
	AvgCompletionMinutes float64        `json:"avg_completion_minutes"`
	MissedSLAs           int            `json:"missed_slas"`
	PerDay               []DayCount     `json:"per_day"`
	ByDepartment         map[string]int `json:"by_department"`
	ByPriority           map[string]int `json:"by_priority"`
	TopWords             []WordCount    `json:"top_words"`
	DailyCompletion      []SeriesPoint  `json:"daily_completion"`
	WeeklyCompletion     []SeriesPoint  `json:"weekly_completion"`
	MonthlyCompletion    []SeriesPoint  `json:"monthly_completion"`
}

const topWordCount = 10

// Aggregate computes the analytics metrics for the requests created inside
// rng. slaTargets maps department name to its acknowledgement target in
// minutes; a department without a target can never miss SLA. Requests with
// unusable timestamps are excluded from duration metrics and day buckets
// but still counted in Total. An empty input yields all-zero metrics.
func Aggregate(requests []*entity.Request, rng Range, slaTargets map[string]int) Metrics {
	loc := rng.location()
	start := startOfDay(rng.Start.In(loc))
	end := endOfDay(rng.End.In(loc))

	m := Metrics{
		ByDepartment: make(map[string]int),
		ByPriority:   make(map[string]int),
	}

	perDay := make(map[string]int)
	daily := make(map[string]*bucket)
	weekly := make(map[string]*bucket)
	monthly := make(map[string]*bucket)

	var ackSum, completeSum float64
	var ackN, completeN int
	var messages []string

	for _, r := range requests {
		if r == nil {
			continue
		}
		malformed := r.CreatedAt.IsZero()
		if !malformed {
			created := r.CreatedAt.In(loc)
			if created.Before(start) || created.After(end) {
				continue
			}
		}

		m.Total++
		m.ByDepartment[r.DepartmentOrDefault()]++
		m.ByPriority[string(r.Priority)]++
		messages = append(messages, r.Message)

		if d, ok := r.AckDuration(); ok && d >= 0 {
			minutes := d.Minutes()
			ackSum += minutes
			ackN++
			if target, has := slaTargets[r.DepartmentOrDefault()]; has && minutes > float64(target) {
				m.MissedSLAs++
			}
		}
		if d, ok := r.CompletionDuration(); ok && d >= 0 {
			completeSum += d.Minutes()
			completeN++
		}

		if malformed {
			continue
		}
		created := r.CreatedAt.In(loc)
		perDay[dayKey(created)]++
		for key, buckets := range map[string]map[string]*bucket{
			dayKey(created):   daily,
			weekKey(created):  weekly,
			monthKey(created): monthly,
		} {
			b := buckets[key]
			if b == nil {
				b = &bucket{}
				buckets[key] = b
			}
			b.total++
			if r.Completed {
				b.completed++
			}
		}
	}

	if ackN > 0 {
		m.AvgAckMinutes = round2(ackSum / float64(ackN))
	}
	if completeN > 0 {
		m.AvgCompletionMinutes = round2(completeSum / float64(completeN))
	}
	m.TopWords = TopWords(messages, topWordCount)

	// Zero-fill every bucket in range so charts are dense, not sparse.
	days, weeks, months := rangeKeys(start, end)
	for _, day := range days {
		m.PerDay = append(m.PerDay, DayCount{Date: day, Count: perDay[day]})
		m.DailyCompletion = append(m.DailyCompletion, point(day, daily[day]))
	}
	for _, week := range weeks {
		m.WeeklyCompletion = append(m.WeeklyCompletion, point(week, weekly[week]))
	}
	for _, month := range months {
		m.MonthlyCompletion = append(m.MonthlyCompletion, point(month, monthly[month]))
	}

	return m
}

type bucket struct{ total, completed int }

func point(period string, b *bucket) SeriesPoint {
	// Zero-request buckets report 0%, never NaN.
	if b == nil || b.total == 0 {
		return SeriesPoint{Period: period}
	}
	pct := int(math.Round(float64(b.completed) / float64(b.total) * 100))
	return SeriesPoint{Period: period, Percent: pct}
}

// QueueSummary is the dashboard's headline counters, always computed
// against the full (unfiltered) request set.
type QueueSummary struct {
	Today          int `json:"today"`
	ThisWeek       int `json:"this_week"`
	ThisMonth      int `json:"this_month"`
	Active         int `json:"active"`
	Unacknowledged int `json:"unacknowledged"`
	Urgent         int `json:"urgent"`
}

func Summarize(requests []*entity.Request, now time.Time, loc *time.Location) QueueSummary {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	today := startOfDay(now)
	weekAgo := today.AddDate(0, 0, -6)
	monthAgo := today.AddDate(0, -1, 0)

	var s QueueSummary
	for _, r := range requests {
		if r == nil {
			continue
		}
		created := r.CreatedAt.In(loc)
		if !created.Before(today) {
			s.Today++
		}
		if !created.Before(weekAgo) {
			s.ThisWeek++
		}
		if !created.Before(monthAgo) {
			s.ThisMonth++
		}
		if !r.Completed {
			s.Active++
			if r.Priority == entity.PriorityUrgent {
				s.Urgent++
			}
		}
		if !r.Acknowledged {
			s.Unacknowledged++
		}
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// rangeKeys walks the window one day at a time and returns the ordered,
// de-duplicated day, week, and month labels it covers.
func rangeKeys(start, end time.Time) (days, weeks, months []string) {
	seenWeek := make(map[string]bool)
	seenMonth := make(map[string]bool)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, dayKey(d))
		if wk := weekKey(d); !seenWeek[wk] {
			seenWeek[wk] = true
			weeks = append(weeks, wk)
		}
		if mo := monthKey(d); !seenMonth[mo] {
			seenMonth[mo] = true
			months = append(months, mo)
		}
	}
	return days, weeks, months
}
