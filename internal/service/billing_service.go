package service

import (
	"context"
	"crypto/sha512"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"stayops-be/internal/dto"
	"stayops-be/internal/entity"
	"stayops-be/internal/repository/specification"
	"stayops-be/internal/repository/unitofwork"
	"stayops-be/pkg/events"
	pktNats "stayops-be/pkg/nats"
)

type IBillingService interface {
	GetPlans(ctx context.Context) ([]*dto.PlanResponse, error)
	Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.PaymentNotificationRequest) error
	GetSubscriptionStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error)
}

type billingService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewBillingService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IBillingService {
	return &billingService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *billingService) GetPlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plans, err := uow.BillingRepository().FindAllPlans(ctx)
	if err != nil {
		return nil, err
	}

	var res []*dto.PlanResponse
	for _, p := range plans {
		res = append(res, &dto.PlanResponse{
			Id:            p.Id,
			Name:          p.Name,
			Slug:          p.Slug,
			Price:         float64(p.Price),
			BillingPeriod: "month",
			MaxProperties: p.MaxProperties,
			Description:   p.Description,
		})
	}
	return res, nil
}

func (s *billingService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.BillingRepository().FindOnePlan(ctx, specification.ByID{ID: req.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, errors.New("plan not found")
	}

	tx := &entity.BillingTransaction{
		Id:          uuid.New(),
		UserId:      userId,
		PlanId:      plan.Id,
		OrderId:     uuid.New().String(),
		GrossAmount: plan.Price,
		Status:      entity.PaymentStatusPending,
		CreatedAt:   time.Now(),
	}
	if err := uow.BillingRepository().CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	// External call stays outside any DB transaction.
	var sClient snap.Client
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}
	sClient.New(os.Getenv("MIDTRANS_SERVER_KEY"), env)

	frontendURL := os.Getenv("FRONTEND_URL")
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  tx.OrderId,
			GrossAmt: plan.Price,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: fmt.Sprintf("%s/settings/billing?payment=success", frontendURL),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.FirstName,
			LName: req.LastName,
			Email: req.Email,
			Phone: req.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    plan.Id.String(),
				Price: plan.Price,
				Qty:   1,
				Name:  plan.Name,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	tx.SnapToken = &snapResp.Token
	if err := uow.BillingRepository().UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{
		OrderId:     tx.OrderId,
		SnapToken:   snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
	}, nil
}

func (s *billingService) HandleNotification(ctx context.Context, req *dto.PaymentNotificationRequest) error {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		return fmt.Errorf("server configuration error")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		return fmt.Errorf("invalid signature")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	tx, err := uow.BillingRepository().FindTransactionByOrderId(ctx, req.OrderId)
	if err != nil {
		return err
	}
	if tx == nil {
		return fmt.Errorf("transaction not found")
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		if tx.Status == entity.PaymentStatusSuccess {
			return uow.Commit() // duplicate notification
		}
		now := time.Now()
		tx.Status = entity.PaymentStatusSuccess
		tx.PaidAt = &now
		if err := uow.BillingRepository().UpdateTransaction(ctx, tx); err != nil {
			return err
		}

		expires := now.AddDate(0, 1, 0)
		if err := uow.BillingRepository().UpsertSubscription(ctx, &entity.Subscription{
			Id:        uuid.New(),
			UserId:    tx.UserId,
			PlanId:    tx.PlanId,
			Status:    entity.SubscriptionStatusActive,
			StartedAt: now,
			ExpiresAt: &expires,
			CreatedAt: now,
		}); err != nil {
			return err
		}

		if s.eventPublisher != nil {
			if err := s.eventPublisher.Publish(ctx, events.NewPaymentSettledEvent(tx.UserId, tx.OrderId)); err != nil {
				fmt.Printf("[WARN] Failed to publish PAYMENT_SETTLED event: %v\n", err)
			}
		}

	case "deny", "cancel", "expire", "failure":
		tx.Status = entity.PaymentStatusFailed
		if err := uow.BillingRepository().UpdateTransaction(ctx, tx); err != nil {
			return err
		}

	case "pending":
		// Nothing to do, the transaction is already pending.
	}

	return uow.Commit()
}

func (s *billingService) GetSubscriptionStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.BillingRepository().FindSubscriptionByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, errors.New("no subscription")
	}

	plan, err := uow.BillingRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		return nil, err
	}

	res := &dto.SubscriptionStatusResponse{
		SubscriptionId: sub.Id,
		Status:         string(sub.Status),
		IsActive:       sub.Status == entity.SubscriptionStatusActive,
	}
	if sub.ExpiresAt != nil {
		res.CurrentPeriodEnd = *sub.ExpiresAt
	}
	if plan != nil {
		res.PlanName = plan.Name
		res.MaxProperties = plan.MaxProperties
	}
	return res, nil
}
