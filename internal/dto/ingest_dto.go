package dto

import (
	"github.com/google/uuid"
)

// InboundSmsRequest is the webhook body the SMS provider posts. To is the
// property's provisioned number and selects which queue the request joins.
type InboundSmsRequest struct {
	MessageSid string `json:"message_sid"`
	From       string `json:"from" validate:"required"`
	To         string `json:"to" validate:"required"`
	Body       string `json:"body" validate:"required"`
	RoomNumber string `json:"room_number"`
	Department string `json:"department"`
	Priority   string `json:"priority"`
}

type InboundSmsResponse struct {
	RequestId uuid.UUID `json:"request_id"`
	Queued    bool      `json:"queued"`
}

// EnrichmentCallbackRequest delivers the precomputed analysis for a request.
// All fields are optional; absent fields leave the stored values untouched.
type EnrichmentCallbackRequest struct {
	RequestId  uuid.UUID `json:"request_id" validate:"required"`
	Summary    *string   `json:"summary"`
	RootCause  *string   `json:"root_cause"`
	Sentiment  *string   `json:"sentiment" validate:"omitempty,oneof=positive neutral negative"`
	Priority   *string   `json:"priority" validate:"omitempty,oneof=urgent normal low"`
	Department *string   `json:"department"`
	IsVip      *bool     `json:"is_vip"`
	IsStaff    *bool     `json:"is_staff"`
}
