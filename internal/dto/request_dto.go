package dto

import (
	"time"

	"github.com/google/uuid"
)

// ListRequestsQuery mirrors the dashboard filter bar. Defaults are applied
// server-side: active only, all departments, all priorities, newest first.
type ListRequestsQuery struct {
	ActiveOnly         *bool  `query:"active_only"`
	UnacknowledgedOnly bool   `query:"unacknowledged_only"`
	Department         string `query:"department"`
	Priority           string `query:"priority" validate:"omitempty,oneof=All all urgent normal low"`
	Sort               string `query:"sort" validate:"omitempty,oneof=newest oldest"`
	Search             string `query:"search"`
}

type RequestResponse struct {
	Id             uuid.UUID  `json:"id"`
	PropertyId     uuid.UUID  `json:"property_id"`
	FromPhone      string     `json:"from_phone"`
	RoomNumber     string     `json:"room_number,omitempty"`
	Message        string     `json:"message"`
	Department     string     `json:"department"`
	Priority       string     `json:"priority"`
	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	Completed      bool       `json:"completed"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	IsVip          bool       `json:"is_vip"`
	IsStaff        bool       `json:"is_staff"`
	AiSummary      *string    `json:"ai_summary,omitempty"`
	AiRootCause    *string    `json:"ai_root_cause,omitempty"`
	AiSentiment    *string    `json:"ai_sentiment,omitempty"`
	NeedsAttention bool       `json:"needs_attention"`
	CreatedAt      time.Time  `json:"created_at"`
}

type ListRequestsResponse struct {
	Requests []RequestResponse `json:"requests"`
	Summary  QueueSummaryDTO   `json:"summary"`
}

type QueueSummaryDTO struct {
	Today          int `json:"today"`
	ThisWeek       int `json:"this_week"`
	ThisMonth      int `json:"this_month"`
	Active         int `json:"active"`
	Unacknowledged int `json:"unacknowledged"`
	Urgent         int `json:"urgent"`
}

type UpdateRequestRequest struct {
	Id         uuid.UUID
	Department *string `json:"department" validate:"omitempty,min=2"`
	Priority   *string `json:"priority" validate:"omitempty,oneof=urgent normal low"`
	RoomNumber *string `json:"room_number"`
	IsVip      *bool   `json:"is_vip"`
	IsStaff    *bool   `json:"is_staff"`
}

type AckRequestResponse struct {
	Id             uuid.UUID  `json:"id"`
	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
}

type CompleteRequestResponse struct {
	Id          uuid.UUID  `json:"id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type AddNoteRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type NoteResponse struct {
	Id        uuid.UUID `json:"id"`
	RequestId uuid.UUID `json:"request_id"`
	AuthorId  uuid.UUID `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
