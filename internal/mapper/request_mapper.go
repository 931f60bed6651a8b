package mapper

import (
	"time"

	"stayops-be/internal/entity"
	"stayops-be/internal/model"
)

type RequestMapper struct{}

func NewRequestMapper() *RequestMapper {
	return &RequestMapper{}
}

func (m *RequestMapper) ToEntity(r *model.Request) *entity.Request {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.Request{
		Id:             r.Id,
		PropertyId:     r.PropertyId,
		FromPhone:      r.FromPhone,
		RoomNumber:     r.RoomNumber,
		Message:        r.Message,
		Department:     r.Department,
		Priority:       entity.RequestPriority(r.Priority),
		Acknowledged:   r.Acknowledged,
		AcknowledgedAt: r.AcknowledgedAt,
		Completed:      r.Completed,
		CompletedAt:    r.CompletedAt,
		IsVip:          r.IsVip,
		IsStaff:        r.IsStaff,
		AiSummary:      r.AiSummary,
		AiRootCause:    r.AiRootCause,
		AiSentiment:    r.AiSentiment,
		AiPriority:     r.AiPriority,
		NeedsAttention: r.NeedsAttention,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *RequestMapper) ToModel(r *entity.Request) *model.Request {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.Request{
		Id:             r.Id,
		PropertyId:     r.PropertyId,
		FromPhone:      r.FromPhone,
		RoomNumber:     r.RoomNumber,
		Message:        r.Message,
		Department:     r.Department,
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
		AiPriority:     r.AiPriority,
		NeedsAttention: r.NeedsAttention,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *RequestMapper) ToEntities(requests []*model.Request) []*entity.Request {
	entities := make([]*entity.Request, len(requests))
	for i, r := range requests {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

func (m *RequestMapper) NoteToEntity(n *model.RequestNote) *entity.RequestNote {
	if n == nil {
		return nil
	}
	return &entity.RequestNote{
		Id:        n.Id,
		RequestId: n.RequestId,
		AuthorId:  n.AuthorId,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
	}
}

func (m *RequestMapper) NoteToModel(n *entity.RequestNote) *model.RequestNote {
	if n == nil {
		return nil
	}
	return &model.RequestNote{
		Id:        n.Id,
		RequestId: n.RequestId,
		AuthorId:  n.AuthorId,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
	}
}

func (m *RequestMapper) NotesToEntities(notes []*model.RequestNote) []*entity.RequestNote {
	entities := make([]*entity.RequestNote, len(notes))
	for i, n := range notes {
		entities[i] = m.NoteToEntity(n)
	}
	return entities
}
