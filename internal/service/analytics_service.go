package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"stayops-be/internal/dto"
	"stayops-be/internal/repository/specification"
	"stayops-be/internal/repository/unitofwork"
	"stayops-be/pkg/pipeline"
)

type IAnalyticsService interface {
	Report(ctx context.Context, propertyId uuid.UUID, query *dto.AnalyticsQuery) (*dto.AnalyticsResponse, error)
}

type analyticsService struct {
	uowFactory      unitofwork.RepositoryFactory
	propertyService IPropertyService
}

func NewAnalyticsService(uowFactory unitofwork.RepositoryFactory, propertyService IPropertyService) IAnalyticsService {
	return &analyticsService{
		uowFactory:      uowFactory,
		propertyService: propertyService,
	}
}

const defaultReportDays = 30

// Report recomputes the analytics from the stored requests on every call.
// Day boundaries follow the property's timezone.
func (s *analyticsService) Report(ctx context.Context, propertyId uuid.UUID, query *dto.AnalyticsQuery) (*dto.AnalyticsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindOne(ctx, specification.ByID{ID: propertyId})
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, errors.New("property not found")
	}
	loc := property.Location()

	end := time.Now().In(loc)
	start := end.AddDate(0, 0, -(defaultReportDays - 1))
	if query != nil {
		if query.Start != "" {
			if t, err := time.ParseInLocation("2006-01-02", query.Start, loc); err == nil {
				start = t
			}
		}
		if query.End != "" {
			if t, err := time.ParseInLocation("2006-01-02", query.End, loc); err == nil {
				end = t
			}
		}
	}
	if end.Before(start) {
		return nil, errors.New("end date precedes start date")
	}

	// Fetch with a day of slack on both sides so timezone offsets at the
	// window edges cannot drop rows; the aggregator applies the exact
	// bounds.
	requests, err := uow.RequestRepository().FindAll(ctx,
		specification.ByPropertyID{PropertyID: propertyId},
		specification.CreatedBetween{
			Start: start.AddDate(0, 0, -1),
			End:   end.AddDate(0, 0, 1),
		},
	)
	if err != nil {
		return nil, err
	}

	targets, err := s.propertyService.SlaTargets(ctx, propertyId)
	if err != nil {
		return nil, err
	}

	metrics := pipeline.Aggregate(requests, pipeline.Range{Start: start, End: end, Loc: loc}, targets)

	return &dto.AnalyticsResponse{
		PropertyId: propertyId.String(),
		Start:      start.Format("2006-01-02"),
		End:        end.Format("2006-01-02"),
		Timezone:   property.Timezone,
		Metrics:    metrics,
	}, nil
}
