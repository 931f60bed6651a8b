package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"stayops-be/internal/dto"
	"stayops-be/internal/pkg/logger"
	"stayops-be/internal/repository/memory"
	"stayops-be/internal/repository/specification"
	"stayops-be/internal/repository/unitofwork"
	"stayops-be/pkg/resolve"
)

type IResolverService interface {
	// ResolveContext decides where the client should land for the given
	// path. userId is uuid.Nil for anonymous sessions.
	ResolveContext(ctx context.Context, userId uuid.UUID, path string) *dto.ResolveContextResponse

	// SwitchProperty records an explicit property selection and returns the
	// dashboard path for it.
	SwitchProperty(ctx context.Context, userId uuid.UUID, propertyId uuid.UUID) (*dto.SwitchPropertyResponse, error)
}

type resolverService struct {
	uowFactory unitofwork.RepositoryFactory
	selections *memory.SelectionStore
	logger     logger.ILogger
}

func NewResolverService(uowFactory unitofwork.RepositoryFactory, selections *memory.SelectionStore, log logger.ILogger) IResolverService {
	return &resolverService{
		uowFactory: uowFactory,
		selections: selections,
		logger:     log,
	}
}

func (s *resolverService) ResolveContext(ctx context.Context, userId uuid.UUID, path string) *dto.ResolveContextResponse {
	in := resolve.Input{
		Authenticated: userId != uuid.Nil,
		Path:          path,
	}

	if in.Authenticated {
		uow := s.uowFactory.NewUnitOfWork(ctx)

		// Ownership is the guard's ground truth. A failed fetch leaves the
		// owned set empty, which denies property access rather than
		// guessing.
		properties, err := uow.PropertyRepository().FindAll(ctx, specification.OwnedByUser{UserID: userId})
		if err != nil {
			s.logger.Error("Resolver", "Ownership fetch failed, resolving closed", map[string]interface{}{
				"user_id": userId,
				"error":   err.Error(),
			})
		} else {
			for _, p := range properties {
				in.OwnedPropertyIDs = append(in.OwnedPropertyIDs, p.Id.String())
			}
		}

		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
		if err == nil && user != nil && user.PreferredPropertyId != nil {
			in.ProfilePreferredID = user.PreferredPropertyId.String()
		}

		if cached, ok := s.selections.Get(ctx, userId); ok {
			in.LocalCachedID = cached.String()
		}
	}

	decision := resolve.Resolve(in)

	// Keep the cached selection warm when a concrete context was derived.
	// Failures here never affect the decision.
	if decision.Kind == resolve.DecisionAllow && decision.PropertyID != "" {
		if id, err := uuid.Parse(decision.PropertyID); err == nil {
			if err := s.selections.Set(ctx, userId, id); err != nil {
				s.logger.Warn("Resolver", "Selection cache write failed", map[string]interface{}{
					"user_id": userId,
					"error":   err.Error(),
				})
			}
		}
	}

	return &dto.ResolveContextResponse{
		Kind:       string(decision.Kind),
		Path:       decision.Path,
		PropertyId: decision.PropertyID,
		ReturnTo:   decision.ReturnTo,
	}
}

func (s *resolverService) SwitchProperty(ctx context.Context, userId uuid.UUID, propertyId uuid.UUID) (*dto.SwitchPropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByID{ID: propertyId},
		specification.OwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, errors.New("property not found")
	}

	if err := s.selections.Set(ctx, userId, propertyId); err != nil {
		s.logger.Warn("Resolver", "Selection cache write failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}

	// The profile preference is best effort: the switch succeeds even if
	// the write fails, the user just won't get this property restored on a
	// fresh device.
	if err := uow.UserRepository().SetPreferredProperty(ctx, userId, &propertyId); err != nil {
		s.logger.Warn("Resolver", "Preference persistence failed", map[string]interface{}{
			"user_id":     userId,
			"property_id": propertyId,
			"error":       err.Error(),
		})
	}

	return &dto.SwitchPropertyResponse{
		PropertyId: propertyId.String(),
		Path:       resolve.DashboardPath(propertyId.String()),
	}, nil
}
