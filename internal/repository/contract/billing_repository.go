package contract

import (
	"context"

	"stayops-be/internal/entity"
	"stayops-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BillingRepository interface {
	FindAllPlans(ctx context.Context) ([]*entity.Plan, error)
	FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.Plan, error)

	CreateTransaction(ctx context.Context, tx *entity.BillingTransaction) error
	UpdateTransaction(ctx context.Context, tx *entity.BillingTransaction) error
	FindTransactionByOrderId(ctx context.Context, orderId string) (*entity.BillingTransaction, error)

	UpsertSubscription(ctx context.Context, sub *entity.Subscription) error
	FindSubscriptionByUser(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error)
}
