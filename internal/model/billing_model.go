package model

import (
	"time"

	"github.com/google/uuid"
)

type Plan struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"type:varchar(100);not null"`
	Slug          string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Price         int64     `gorm:"not null"`
	Description   string    `gorm:"type:text"`
	MaxProperties int       `gorm:"default:1"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Plan) TableName() string {
	return "plans"
}

type Subscription struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	PlanId     uuid.UUID  `gorm:"type:uuid;not null"`
	Status     string     `gorm:"type:varchar(20);not null;default:'inactive'"`
	StartedAt  time.Time  `gorm:""`
	ExpiresAt  *time.Time `gorm:""`
	CanceledAt *time.Time `gorm:""`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

type BillingTransaction struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	PlanId      uuid.UUID  `gorm:"type:uuid;not null"`
	OrderId     string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	GrossAmount int64      `gorm:"not null"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending'"`
	SnapToken   *string    `gorm:"type:varchar(255)"`
	PaidAt      *time.Time `gorm:""`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

func (BillingTransaction) TableName() string {
	return "billing_transactions"
}
