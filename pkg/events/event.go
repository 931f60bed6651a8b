package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "REQUEST_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes published on the guest-operations bus.
const (
	TypeRequestCreated      = "REQUEST_CREATED"
	TypeRequestAcknowledged = "REQUEST_ACKNOWLEDGED"
	TypeRequestCompleted    = "REQUEST_COMPLETED"
	TypeRequestEnriched     = "REQUEST_ENRICHED"
	TypeSlaBreached         = "SLA_BREACHED"
	TypePaymentSettled      = "PAYMENT_SETTLED"
)

func NewRequestEvent(eventType string, propertyID, requestID uuid.UUID) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"property_id": propertyID.String(),
			"request_id":  requestID.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewSlaBreachedEvent(propertyID, requestID uuid.UUID, department string, waitingMinutes int) BaseEvent {
	return BaseEvent{
		Type: TypeSlaBreached,
		Data: map[string]interface{}{
			"property_id":     propertyID.String(),
			"request_id":      requestID.String(),
			"department":      department,
			"waiting_minutes": waitingMinutes,
		},
		OccurredAt: time.Now(),
	}
}

func NewPaymentSettledEvent(userID uuid.UUID, orderID string) BaseEvent {
	return BaseEvent{
		Type: TypePaymentSettled,
		Data: map[string]interface{}{
			"user_id":  userID.String(),
			"order_id": orderID,
		},
		OccurredAt: time.Now(),
	}
}
