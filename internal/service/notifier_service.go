package service

import (
	"context"

	"github.com/google/uuid"

	"stayops-be/internal/pkg/logger"
	"stayops-be/internal/websocket"
	"stayops-be/pkg/events"
	pktNats "stayops-be/pkg/nats"
)

// EventQueueActivity is the websocket frame type for bus-sourced activity
// toasts; distinct from the refresher's full snapshot frames.
const EventQueueActivity = "queue.event"

// NotifierService bridges the NATS guest-events stream to the websocket
// rooms so every connected dashboard sees activity from every instance,
// including events raised by background workers.
type NotifierService struct {
	subscriber *pktNats.Subscriber
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewNotifierService(subscriber *pktNats.Subscriber, hub *websocket.Hub, log logger.ILogger) *NotifierService {
	return &NotifierService{
		subscriber: subscriber,
		hub:        hub,
		logger:     log,
	}
}

// Start subscribes to all guest events with a durable consumer and runs
// until the connection closes.
func (s *NotifierService) Start() error {
	return s.subscriber.Subscribe("guest.>", "queue-notifier", s.handleEvent)
}

func (s *NotifierService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	// Events without a property scope (e.g. PAYMENT_SETTLED) have no room
	// to land in.
	raw, ok := payload["property_id"].(string)
	if !ok {
		return nil
	}
	propertyID, err := uuid.Parse(raw)
	if err != nil {
		s.logger.Warn("Notifier", "Event carried unparseable property_id", map[string]interface{}{
			"event_type": event.EventType(),
			"raw":        raw,
		})
		return nil
	}

	s.hub.BroadcastToProperty(propertyID, EventQueueActivity, map[string]interface{}{
		"type": event.EventType(),
		"data": payload,
	})
	return nil
}
