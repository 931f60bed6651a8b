package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stayops-be/internal/dto"
	"stayops-be/internal/entity"
	"stayops-be/internal/refresh"
	"stayops-be/internal/repository/specification"
	"stayops-be/internal/repository/unitofwork"
	"stayops-be/pkg/events"
	pktNats "stayops-be/pkg/nats"
	"stayops-be/pkg/pipeline"
)

type IRequestService interface {
	List(ctx context.Context, propertyId uuid.UUID, query *dto.ListRequestsQuery) (*dto.ListRequestsResponse, error)
	Show(ctx context.Context, propertyId, requestId uuid.UUID) (*dto.RequestResponse, error)
	Update(ctx context.Context, propertyId uuid.UUID, req *dto.UpdateRequestRequest) (*dto.RequestResponse, error)
	Acknowledge(ctx context.Context, propertyId, requestId uuid.UUID) (*dto.AckRequestResponse, error)
	Complete(ctx context.Context, propertyId, requestId uuid.UUID) (*dto.CompleteRequestResponse, error)

	AddNote(ctx context.Context, propertyId, requestId, authorId uuid.UUID, req *dto.AddNoteRequest) (*dto.NoteResponse, error)
	ListNotes(ctx context.Context, propertyId, requestId uuid.UUID) ([]dto.NoteResponse, error)
	DeleteNote(ctx context.Context, propertyId, requestId, noteId uuid.UUID) error

	// LoadQueue feeds the background refresher: the full queue plus the
	// property timezone its summary should bucket days in.
	LoadQueue(ctx context.Context, propertyId uuid.UUID) ([]*entity.Request, *time.Location, error)
}

type requestService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  *pktNats.Publisher
	refresher  *refresh.Refresher
}

func NewRequestService(uowFactory unitofwork.RepositoryFactory, publisher *pktNats.Publisher, refresher *refresh.Refresher) IRequestService {
	return &requestService{
		uowFactory: uowFactory,
		publisher:  publisher,
		refresher:  refresher,
	}
}

func (s *requestService) List(ctx context.Context, propertyId uuid.UUID, query *dto.ListRequestsQuery) (*dto.ListRequestsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	all, err := uow.RequestRepository().FindAll(ctx, specification.ByPropertyID{PropertyID: propertyId})
	if err != nil {
		return nil, err
	}

	// Headline counters always reflect the whole queue; the filters below
	// only shape the visible table.
	loc := s.propertyLocation(ctx, uow, propertyId)
	summary := pipeline.Summarize(all, time.Now(), loc)

	filters := pipeline.DefaultFilters()
	if query != nil {
		if query.ActiveOnly != nil {
			filters.ActiveOnly = *query.ActiveOnly
		}
		filters.UnacknowledgedOnly = query.UnacknowledgedOnly
		if query.Department != "" {
			filters.Department = query.Department
		}
		if query.Priority != "" {
			filters.Priority = query.Priority
		}
		if query.Sort != "" {
			filters.SortOrder = pipeline.SortOrder(query.Sort)
		}
		filters.SearchTerm = query.Search
	}

	visible := pipeline.FilterAndSort(all, filters)
	out := make([]dto.RequestResponse, 0, len(visible))
	for _, r := range visible {
		out = append(out, toRequestResponse(r))
	}

	return &dto.ListRequestsResponse{
		Requests: out,
		Summary: dto.QueueSummaryDTO{
			Today:          summary.Today,
			ThisWeek:       summary.ThisWeek,
			ThisMonth:      summary.ThisMonth,
			Active:         summary.Active,
			Unacknowledged: summary.Unacknowledged,
			Urgent:         summary.Urgent,
		},
	}, nil
}

func (s *requestService) Show(ctx context.Context, propertyId, requestId uuid.UUID) (*dto.RequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := s.findInProperty(ctx, uow, propertyId, requestId)
	if err != nil {
		return nil, err
	}

	res := toRequestResponse(request)
	return &res, nil
}

func (s *requestService) Update(ctx context.Context, propertyId uuid.UUID, req *dto.UpdateRequestRequest) (*dto.RequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := s.findInProperty(ctx, uow, propertyId, req.Id)
	if err != nil {
		return nil, err
	}

	if req.Department != nil {
		request.Department = *req.Department
	}
	if req.Priority != nil {
		request.Priority = entity.NormalizePriority(*req.Priority)
	}
	if req.RoomNumber != nil {
		request.RoomNumber = *req.RoomNumber
	}
	if req.IsVip != nil {
		request.IsVip = *req.IsVip
	}
	if req.IsStaff != nil {
		request.IsStaff = *req.IsStaff
	}

	if err := uow.RequestRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	s.refresher.Trigger(propertyId)

	res := toRequestResponse(request)
	return &res, nil
}

func (s *requestService) Acknowledge(ctx context.Context, propertyId, requestId uuid.UUID) (*dto.AckRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := s.findInProperty(ctx, uow, propertyId, requestId)
	if err != nil {
		return nil, err
	}

	// Repeated acknowledgements are no-ops: the repository's guarded update
	// never rewinds the flag or moves the original timestamp.
	if err := uow.RequestRepository().MarkAcknowledged(ctx, requestId, time.Now()); err != nil {
		return nil, err
	}

	if !request.Acknowledged {
		s.publishEvent(ctx, events.NewRequestEvent(events.TypeRequestAcknowledged, propertyId, requestId))
	}
	s.refresher.Trigger(propertyId)

	request, err = s.findInProperty(ctx, uow, propertyId, requestId)
	if err != nil {
		return nil, err
	}
	return &dto.AckRequestResponse{
		Id:             request.Id,
		Acknowledged:   request.Acknowledged,
		AcknowledgedAt: request.AcknowledgedAt,
	}, nil
}

func (s *requestService) Complete(ctx context.Context, propertyId, requestId uuid.UUID) (*dto.CompleteRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := s.findInProperty(ctx, uow, propertyId, requestId)
	if err != nil {
		return nil, err
	}

	// Completing an unacknowledged request is allowed; completion does not
	// imply acknowledgement.
	if err := uow.RequestRepository().MarkComplete(ctx, requestId, time.Now()); err != nil {
		return nil, err
	}

	if !request.Completed {
		s.publishEvent(ctx, events.NewRequestEvent(events.TypeRequestCompleted, propertyId, requestId))
	}
	s.refresher.Trigger(propertyId)

	request, err = s.findInProperty(ctx, uow, propertyId, requestId)
	if err != nil {
		return nil, err
	}
	return &dto.CompleteRequestResponse{
		Id:          request.Id,
		Completed:   request.Completed,
		CompletedAt: request.CompletedAt,
	}, nil
}

func (s *requestService) AddNote(ctx context.Context, propertyId, requestId, authorId uuid.UUID, req *dto.AddNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findInProperty(ctx, uow, propertyId, requestId); err != nil {
		return nil, err
	}

	note := &entity.RequestNote{
		Id:        uuid.New(),
		RequestId: requestId,
		AuthorId:  authorId,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := uow.RequestNoteRepository().Create(ctx, note); err != nil {
		return nil, err
	}

	res := toNoteResponse(note)
	return &res, nil
}

func (s *requestService) ListNotes(ctx context.Context, propertyId, requestId uuid.UUID) ([]dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findInProperty(ctx, uow, propertyId, requestId); err != nil {
		return nil, err
	}

	notes, err := uow.RequestNoteRepository().FindAll(ctx,
		specification.ByRequestID{RequestID: requestId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	return out, nil
}

func (s *requestService) DeleteNote(ctx context.Context, propertyId, requestId, noteId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findInProperty(ctx, uow, propertyId, requestId); err != nil {
		return err
	}

	note, err := uow.RequestNoteRepository().FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.ByRequestID{RequestID: requestId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return errors.New("note not found")
	}

	return uow.RequestNoteRepository().Delete(ctx, noteId)
}

func (s *requestService) LoadQueue(ctx context.Context, propertyId uuid.UUID) ([]*entity.Request, *time.Location, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	requests, err := uow.RequestRepository().FindAll(ctx, specification.ByPropertyID{PropertyID: propertyId})
	if err != nil {
		return nil, nil, err
	}
	return requests, s.propertyLocation(ctx, uow, propertyId), nil
}

func (s *requestService) findInProperty(ctx context.Context, uow unitofwork.UnitOfWork, propertyId, requestId uuid.UUID) (*entity.Request, error) {
	request, err := uow.RequestRepository().FindOne(ctx,
		specification.ByID{ID: requestId},
		specification.ByPropertyID{PropertyID: propertyId},
	)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, errors.New("request not found")
	}
	return request, nil
}

func (s *requestService) propertyLocation(ctx context.Context, uow unitofwork.UnitOfWork, propertyId uuid.UUID) *time.Location {
	property, err := uow.PropertyRepository().FindOne(ctx, specification.ByID{ID: propertyId})
	if err != nil || property == nil {
		return time.UTC
	}
	return property.Location()
}

func (s *requestService) publishEvent(ctx context.Context, event events.BaseEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", event.EventType(), err)
	}
}

func toRequestResponse(r *entity.Request) dto.RequestResponse {
	return dto.RequestResponse{
		Id:             r.Id,
		PropertyId:     r.PropertyId,
		FromPhone:      r.FromPhone,
		RoomNumber:     r.RoomNumber,
		Message:        r.Message,
		Department:     r.DepartmentOrDefault(),
		Priority:       string(r.Priority),
		Acknowledged:   r.Acknowledged,
		AcknowledgedAt: r.AcknowledgedAt,
		Completed:      r.Completed,
		CompletedAt:    r.CompletedAt,
		IsVip:          r.IsVip,
		IsStaff:        r.IsStaff,
		AiSummary:      r.AiSummary,
		AiRootCause:    r.AiRootCause,
		AiSentiment:    r.AiSentiment,
		NeedsAttention: r.NeedsAttention,
		CreatedAt:      r.CreatedAt,
	}
}

func toNoteResponse(n *entity.RequestNote) dto.NoteResponse {
	return dto.NoteResponse{
		Id:        n.Id,
		RequestId: n.RequestId,
		AuthorId:  n.AuthorId,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
	}
}
