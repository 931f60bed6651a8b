package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stayops-be/internal/entity"
	"stayops-be/internal/pkg/logger"
	"stayops-be/internal/pkg/mailer"
	"stayops-be/internal/refresh"
	"stayops-be/internal/repository/specification"
	"stayops-be/internal/repository/unitofwork"
	"stayops-be/pkg/events"
	pktNats "stayops-be/pkg/nats"
)

// SlaMonitor periodically scans every property for unacknowledged requests
// that have been waiting longer than their department's target. Breached
// requests are flagged, the owner is emailed, and an event is published.
// The needs_attention flag makes the scan idempotent: a request already
// flagged is never alerted twice.
type SlaMonitor struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	refresher      *refresh.Refresher
	logger         logger.ILogger
	interval       time.Duration
}

func NewSlaMonitor(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	refresher *refresh.Refresher,
	log logger.ILogger,
	interval time.Duration,
) *SlaMonitor {
	if interval <= 0 {
		interval = 2 * time.Minute
	}
	return &SlaMonitor{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		refresher:      refresher,
		logger:         log,
		interval:       interval,
	}
}

func (m *SlaMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(ctx)
		}
	}
}

// Sweep runs one scan across all properties. Exported so tests and the
// startup path can run a scan without waiting for the ticker.
func (m *SlaMonitor) Sweep(ctx context.Context) {
	uow := m.uowFactory.NewUnitOfWork(ctx)

	properties, err := uow.PropertyRepository().FindAll(ctx)
	if err != nil {
		m.logger.Error("sla", "Failed to list properties for sweep", map[string]interface{}{"error": err.Error()})
		return
	}

	for _, property := range properties {
		if err := m.sweepProperty(ctx, property); err != nil {
			m.logger.Error("sla", "Sweep failed for property", map[string]interface{}{
				"property_id": property.Id.String(),
				"error":       err.Error(),
			})
		}
	}
}

func (m *SlaMonitor) sweepProperty(ctx context.Context, property *entity.Property) error {
	uow := m.uowFactory.NewUnitOfWork(ctx)

	departments, err := uow.DepartmentRepository().FindAll(ctx, specification.ByPropertyID{PropertyID: property.Id})
	if err != nil {
		return err
	}
	targets := make(map[string]int)
	for _, d := range departments {
		if d.AckTargetMinutes != nil {
			targets[d.Name] = *d.AckTargetMinutes
		}
	}
	if len(targets) == 0 {
		return nil
	}

	waiting, err := uow.RequestRepository().FindAll(ctx,
		specification.ByPropertyID{PropertyID: property.Id},
		specification.ActiveOnly{},
		specification.UnacknowledgedOnly{},
	)
	if err != nil {
		return err
	}

	now := time.Now()
	var breached []*entity.Request
	for _, r := range waiting {
		if r.NeedsAttention {
			continue // already alerted
		}
		target, ok := targets[r.Department]
		if !ok {
			continue
		}
		if now.Sub(r.CreatedAt) > time.Duration(target)*time.Minute {
			breached = append(breached, r)
		}
	}
	if len(breached) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(breached))
	for _, r := range breached {
		ids = append(ids, r.Id)
	}
	if err := uow.RequestRepository().SetNeedsAttention(ctx, ids, true); err != nil {
		return err
	}

	owner, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: property.OwnerId})
	if err != nil {
		m.logger.Warn("sla", "Failed to load property owner for alert email", map[string]interface{}{
			"property_id": property.Id.String(),
			"error":       err.Error(),
		})
	}

	for _, r := range breached {
		waitingMinutes := int(now.Sub(r.CreatedAt).Minutes())

		if owner != nil {
			go func(email, department, room, message string, minutes int) {
				if err := m.emailService.SendSlaAlert(email, property.Name, department, room, message, minutes); err != nil {
					m.logger.Warn("sla", "Failed to send alert email", map[string]interface{}{"error": err.Error()})
				}
			}(owner.Email, r.DepartmentOrDefault(), r.RoomNumber, r.Message, waitingMinutes)
		}

		if m.eventPublisher != nil {
			event := events.NewSlaBreachedEvent(property.Id, r.Id, r.DepartmentOrDefault(), waitingMinutes)
			if err := m.eventPublisher.Publish(ctx, event); err != nil {
				m.logger.Warn("sla", "Failed to publish SLA_BREACHED event", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	m.logger.Info("sla", "Flagged breached requests", map[string]interface{}{
		"property_id": property.Id.String(),
		"count":       len(breached),
	})

	if m.refresher != nil {
		m.refresher.Trigger(property.Id)
	}
	return nil
}
