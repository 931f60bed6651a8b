package contract

import (
	"context"

	"stayops-be/internal/entity"
	"stayops-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	Update(ctx context.Context, property *entity.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Property, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Property, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type ContactRepository interface {
	Create(ctx context.Context, contact *entity.GuestContact) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GuestContact, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GuestContact, error)
}

type DepartmentRepository interface {
	Create(ctx context.Context, setting *entity.DepartmentSetting) error
	Update(ctx context.Context, setting *entity.DepartmentSetting) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DepartmentSetting, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DepartmentSetting, error)
}
