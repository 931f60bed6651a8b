package mapper

import (
	"time"

	"stayops-be/internal/entity"
	"stayops-be/internal/model"
)

type BillingMapper struct{}

func NewBillingMapper() *BillingMapper {
	return &BillingMapper{}
}

func (m *BillingMapper) PlanToEntity(p *model.Plan) *entity.Plan {
	if p == nil {
		return nil
	}
	return &entity.Plan{
		Id:            p.Id,
		Name:          p.Name,
		Slug:          p.Slug,
		Price:         p.Price,
		Description:   p.Description,
		MaxProperties: p.MaxProperties,
		CreatedAt:     p.CreatedAt,
	}
}

func (m *BillingMapper) PlansToEntities(plans []*model.Plan) []*entity.Plan {
	entities := make([]*entity.Plan, len(plans))
	for i, p := range plans {
		entities[i] = m.PlanToEntity(p)
	}
	return entities
}

func (m *BillingMapper) SubscriptionToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Subscription{
		Id:         s.Id,
		UserId:     s.UserId,
		PlanId:     s.PlanId,
		Status:     entity.SubscriptionStatus(s.Status),
		StartedAt:  s.StartedAt,
		ExpiresAt:  s.ExpiresAt,
		CanceledAt: s.CanceledAt,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *BillingMapper) SubscriptionToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Subscription{
		Id:         s.Id,
		UserId:     s.UserId,
		PlanId:     s.PlanId,
		Status:     string(s.Status),
		StartedAt:  s.StartedAt,
		ExpiresAt:  s.ExpiresAt,
		CanceledAt: s.CanceledAt,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *BillingMapper) TransactionToEntity(t *model.BillingTransaction) *entity.BillingTransaction {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.BillingTransaction{
		Id:          t.Id,
		UserId:      t.UserId,
		PlanId:      t.PlanId,
		OrderId:     t.OrderId,
		GrossAmount: t.GrossAmount,
		Status:      entity.PaymentStatus(t.Status),
		SnapToken:   t.SnapToken,
		PaidAt:      t.PaidAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *BillingMapper) TransactionToModel(t *entity.BillingTransaction) *model.BillingTransaction {
	if t == nil {
		return nil
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.BillingTransaction{
		Id:          t.Id,
		UserId:      t.UserId,
		PlanId:      t.PlanId,
		OrderId:     t.OrderId,
		GrossAmount: t.GrossAmount,
		Status:      string(t.Status),
		SnapToken:   t.SnapToken,
		PaidAt:      t.PaidAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}
