package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type RequestPriority string

const (
	PriorityUrgent RequestPriority = "urgent"
	PriorityNormal RequestPriority = "normal"
	PriorityLow    RequestPriority = "low"

	// DepartmentUnassigned is the catch-all label for requests that arrive
	// without a recognizable department.
	DepartmentUnassigned = "Unassigned"
)

// NormalizePriority maps loose inbound strings onto the closed enum.
// Unknown values default to normal; case is normalized once here so no
// comparison site downstream needs to care.
func NormalizePriority(raw string) RequestPriority {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "urgent", "high", "critical":
		return PriorityUrgent
	case "low":
		return PriorityLow
	default:
		return PriorityNormal
	}
}

// Request is a guest service request originating from an inbound SMS.
// The acknowledged and completed flags are monotonic: services may set them
// but never reset them. Completing an unacknowledged request is permitted.
type Request struct {
	Id         uuid.UUID
	PropertyId uuid.UUID
	FromPhone  string
	RoomNumber string
	Message    string
	Department string
	Priority   RequestPriority

	Acknowledged   bool
	AcknowledgedAt *time.Time
	Completed      bool
	CompletedAt    *time.Time

	IsVip   bool
	IsStaff bool

	// AI enrichment, delivered precomputed by the enrichment callback.
	AiSummary   *string
	AiRootCause *string
	AiSentiment *string
	AiPriority  *string

	NeedsAttention bool

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// AckDuration returns the acknowledgement latency, or false when either
// timestamp is absent.
func (r *Request) AckDuration() (time.Duration, bool) {
	if r.AcknowledgedAt == nil || r.CreatedAt.IsZero() {
		return 0, false
	}
	return r.AcknowledgedAt.Sub(r.CreatedAt), true
}

// CompletionDuration returns the completion latency, or false when either
// timestamp is absent.
func (r *Request) CompletionDuration() (time.Duration, bool) {
	if r.CompletedAt == nil || r.CreatedAt.IsZero() {
		return 0, false
	}
	return r.CompletedAt.Sub(r.CreatedAt), true
}

func (r *Request) DepartmentOrDefault() string {
	if r.Department == "" {
		return DepartmentUnassigned
	}
	return r.Department
}
