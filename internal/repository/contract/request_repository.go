package contract

import (
	"context"
	"time"

	"stayops-be/internal/entity"
	"stayops-be/internal/repository/specification"

	"github.com/google/uuid"

	"gorm.io/datatypes"
)

type RequestRepository interface {
	Create(ctx context.Context, request *entity.Request, rawPayload datatypes.JSON) error
	Update(ctx context.Context, request *entity.Request) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Request, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Request, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// MarkAcknowledged and MarkComplete are monotonic: they only ever move a
	// flag from false to true. Marking an already-set flag is a no-op and
	// must not touch the recorded timestamp.
	MarkAcknowledged(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkComplete(ctx context.Context, id uuid.UUID, at time.Time) error

	SetNeedsAttention(ctx context.Context, ids []uuid.UUID, value bool) error
	ApplyEnrichment(ctx context.Context, id uuid.UUID, summary, rootCause, sentiment, priority *string) error
}

type RequestNoteRepository interface {
	Create(ctx context.Context, note *entity.RequestNote) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RequestNote, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RequestNote, error)
}
