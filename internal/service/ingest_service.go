package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"stayops-be/internal/dto"
	"stayops-be/internal/entity"
	"stayops-be/internal/refresh"
	"stayops-be/internal/repository/specification"
	"stayops-be/internal/repository/unitofwork"
	"stayops-be/pkg/events"
	pktNats "stayops-be/pkg/nats"
)

const IngestTopic = "INGEST_INBOUND_SMS"

// ingestMessage is the internal queue payload between the webhook handler
// and the consumer. The request id is minted at enqueue time so the webhook
// can answer with it immediately.
type ingestMessage struct {
	RequestId uuid.UUID             `json:"request_id"`
	Received  time.Time             `json:"received"`
	Payload   dto.InboundSmsRequest `json:"payload"`
}

type IIngestService interface {
	// EnqueueInboundSms accepts the provider webhook and hands it to the
	// ingest queue. It answers fast; row creation happens in the consumer.
	EnqueueInboundSms(ctx context.Context, req *dto.InboundSmsRequest) (*dto.InboundSmsResponse, error)

	// ApplyEnrichment merges the precomputed analysis into a stored request.
	ApplyEnrichment(ctx context.Context, req *dto.EnrichmentCallbackRequest) error

	// Consume starts the ingest consumer loop.
	Consume(ctx context.Context) error
}

type ingestService struct {
	pubSub     *gochannel.GoChannel
	uowFactory unitofwork.RepositoryFactory
	publisher  *pktNats.Publisher
	refresher  *refresh.Refresher
}

func NewIngestService(
	pubSub *gochannel.GoChannel,
	uowFactory unitofwork.RepositoryFactory,
	publisher *pktNats.Publisher,
	refresher *refresh.Refresher,
) IIngestService {
	return &ingestService{
		pubSub:     pubSub,
		uowFactory: uowFactory,
		publisher:  publisher,
		refresher:  refresher,
	}
}

func (s *ingestService) EnqueueInboundSms(ctx context.Context, req *dto.InboundSmsRequest) (*dto.InboundSmsResponse, error) {
	msg := ingestMessage{
		RequestId: uuid.New(),
		Received:  time.Now(),
		Payload:   *req,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	if err := s.pubSub.Publish(IngestTopic, message.NewMessage(watermill.NewUUID(), data)); err != nil {
		return nil, err
	}

	return &dto.InboundSmsResponse{RequestId: msg.RequestId, Queued: true}, nil
}

func (s *ingestService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, IngestTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *ingestService) processMessage(ctx context.Context, msg *message.Message) {
	var payload ingestMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal ingest message: %v", err)
		msg.Ack() // malformed, retrying cannot help
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The destination number identifies the property.
	property, err := uow.PropertyRepository().FindOne(ctx, specification.ByPhone{Phone: payload.Payload.To})
	if err != nil {
		log.Printf("[ERROR] Property lookup failed for %s: %v", payload.Payload.To, err)
		msg.Nack()
		return
	}
	if property == nil {
		log.Printf("[WARN] Inbound SMS for unknown number %s, dropping", payload.Payload.To)
		msg.Ack()
		return
	}

	request := &entity.Request{
		Id:         payload.RequestId,
		PropertyId: property.Id,
		FromPhone:  payload.Payload.From,
		RoomNumber: payload.Payload.RoomNumber,
		Message:    payload.Payload.Body,
		Department: payload.Payload.Department,
		Priority:   entity.NormalizePriority(payload.Payload.Priority),
		CreatedAt:  payload.Received,
	}

	// Known senders inherit their directory flags. A failed lookup stores
	// the request unflagged rather than losing it.
	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByPropertyID{PropertyID: property.Id},
		specification.ByPhone{Phone: payload.Payload.From},
	)
	if err != nil {
		log.Printf("[WARN] Guest directory lookup failed for %s: %v", payload.Payload.From, err)
	} else if contact != nil {
		request.IsVip = contact.IsVip
		request.IsStaff = contact.IsStaff
	}

	raw, _ := json.Marshal(payload.Payload)
	if err := uow.RequestRepository().Create(ctx, request, datatypes.JSON(raw)); err != nil {
		log.Printf("[ERROR] Failed to store request %s: %v", payload.RequestId, err)
		msg.Nack()
		return
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewRequestEvent(events.TypeRequestCreated, property.Id, request.Id)); err != nil {
			log.Printf("[WARN] Failed to publish REQUEST_CREATED: %v", err)
		}
	}
	s.refresher.Trigger(property.Id)

	msg.Ack()
}

func (s *ingestService) ApplyEnrichment(ctx context.Context, req *dto.EnrichmentCallbackRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.RequestRepository().FindOne(ctx, specification.ByID{ID: req.RequestId})
	if err != nil {
		return err
	}
	if request == nil {
		return errors.New("request not found")
	}

	if err := uow.RequestRepository().ApplyEnrichment(ctx, req.RequestId, req.Summary, req.RootCause, req.Sentiment, req.Priority); err != nil {
		return err
	}

	// Department and flag corrections ride the same callback.
	changed := false
	if req.Department != nil {
		request.Department = *req.Department
		changed = true
	}
	if req.Priority != nil {
		request.Priority = entity.NormalizePriority(*req.Priority)
		changed = true
	}
	if req.IsVip != nil {
		request.IsVip = *req.IsVip
		changed = true
	}
	if req.IsStaff != nil {
		request.IsStaff = *req.IsStaff
		changed = true
	}
	if changed {
		if err := uow.RequestRepository().Update(ctx, request); err != nil {
			return err
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewRequestEvent(events.TypeRequestEnriched, request.PropertyId, request.Id)); err != nil {
			log.Printf("[WARN] Failed to publish REQUEST_ENRICHED: %v", err)
		}
	}
	s.refresher.Trigger(request.PropertyId)

	return nil
}
