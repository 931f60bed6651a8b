package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string
type PaymentStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusInactive SubscriptionStatus = "inactive"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusTrial    SubscriptionStatus = "trial"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusSuccess  PaymentStatus = "success"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Plan struct {
	Id          uuid.UUID
	Name        string
	Slug        string
	Price       int64
	Description string
	MaxProperties int
	CreatedAt   time.Time
}

type Subscription struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	PlanId     uuid.UUID
	Status     SubscriptionStatus
	StartedAt  time.Time
	ExpiresAt  *time.Time
	CanceledAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

type BillingTransaction struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	PlanId      uuid.UUID
	OrderId     string
	GrossAmount int64
	Status      PaymentStatus
	SnapToken   *string
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
