package implementation

import (
	"context"
	"errors"
	"time"

	"stayops-be/internal/entity"
	"stayops-be/internal/mapper"
	"stayops-be/internal/model"
	"stayops-be/internal/repository/contract"
	"stayops-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RequestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RequestMapper
}

func NewRequestRepository(db *gorm.DB) contract.RequestRepository {
	return &RequestRepositoryImpl{
		db:     db,
		mapper: mapper.NewRequestMapper(),
	}
}

func (r *RequestRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RequestRepositoryImpl) Create(ctx context.Context, request *entity.Request, rawPayload datatypes.JSON) error {
	m := r.mapper.ToModel(request)
	m.RawPayload = rawPayload
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.ToEntity(m)
	return nil
}

func (r *RequestRepositoryImpl) Update(ctx context.Context, request *entity.Request) error {
	m := r.mapper.ToModel(request)
	// Save would zero the raw payload column; update named columns instead.
	err := r.db.WithContext(ctx).Model(&model.Request{}).
		Where("id = ?", m.Id).
		Select("department", "priority", "is_vip", "is_staff", "needs_attention").
		Updates(m).Error
	if err != nil {
		return err
	}
	return nil
}

func (r *RequestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Request, error) {
	var m model.Request
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RequestRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Request, error) {
	var models []*model.Request
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RequestRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Request{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RequestRepositoryImpl) MarkAcknowledged(ctx context.Context, id uuid.UUID, at time.Time) error {
	// Guarded update keeps the flag monotonic under concurrent taps.
	return r.db.WithContext(ctx).Model(&model.Request{}).
		Where("id = ? AND acknowledged = false", id).
		Updates(map[string]interface{}{
			"acknowledged":    true,
			"acknowledged_at": at,
		}).Error
}

func (r *RequestRepositoryImpl) MarkComplete(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Request{}).
		Where("id = ? AND completed = false", id).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": at,
		}).Error
}

func (r *RequestRepositoryImpl) SetNeedsAttention(ctx context.Context, ids []uuid.UUID, value bool) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Request{}).
		Where("id IN ?", ids).
		Update("needs_attention", value).Error
}

func (r *RequestRepositoryImpl) ApplyEnrichment(ctx context.Context, id uuid.UUID, summary, rootCause, sentiment, priority *string) error {
	return r.db.WithContext(ctx).Model(&model.Request{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ai_summary":    summary,
			"ai_root_cause": rootCause,
			"ai_sentiment":  sentiment,
			"ai_priority":   priority,
		}).Error
}

type RequestNoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RequestMapper
}

func NewRequestNoteRepository(db *gorm.DB) contract.RequestNoteRepository {
	return &RequestNoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewRequestMapper(),
	}
}

func (r *RequestNoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RequestNoteRepositoryImpl) Create(ctx context.Context, note *entity.RequestNote) error {
	m := r.mapper.NoteToModel(note)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.NoteToEntity(m)
	return nil
}

func (r *RequestNoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RequestNote{}, id).Error
}

func (r *RequestNoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RequestNote, error) {
	var m model.RequestNote
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.NoteToEntity(&m), nil
}

func (r *RequestNoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RequestNote, error) {
	var models []*model.RequestNote
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.NotesToEntities(models), nil
}
