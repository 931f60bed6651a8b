package mapper

import (
	"time"

	"stayops-be/internal/entity"
	"stayops-be/internal/model"

	"gorm.io/gorm"
)

type PropertyMapper struct{}

func NewPropertyMapper() *PropertyMapper {
	return &PropertyMapper{}
}

func (m *PropertyMapper) ToEntity(p *model.Property) *entity.Property {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Property{
		Id:        p.Id,
		OwnerId:   p.OwnerId,
		Name:      p.Name,
		Type:      entity.PropertyType(p.Type),
		Timezone:  p.Timezone,
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: p.DeletedAt.Valid,
	}
}

func (m *PropertyMapper) ToModel(p *entity.Property) *model.Property {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Property{
		Id:        p.Id,
		OwnerId:   p.OwnerId,
		Name:      p.Name,
		Type:      string(p.Type),
		Timezone:  p.Timezone,
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *PropertyMapper) ToEntities(properties []*model.Property) []*entity.Property {
	entities := make([]*entity.Property, len(properties))
	for i, p := range properties {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *PropertyMapper) DepartmentToEntity(d *model.DepartmentSetting) *entity.DepartmentSetting {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.DepartmentSetting{
		Id:               d.Id,
		PropertyId:       d.PropertyId,
		Name:             d.Name,
		AckTargetMinutes: d.AckTargetMinutes,
		SortOrder:        d.SortOrder,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *PropertyMapper) DepartmentToModel(d *entity.DepartmentSetting) *model.DepartmentSetting {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.DepartmentSetting{
		Id:               d.Id,
		PropertyId:       d.PropertyId,
		Name:             d.Name,
		AckTargetMinutes: d.AckTargetMinutes,
		SortOrder:        d.SortOrder,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *PropertyMapper) DepartmentsToEntities(settings []*model.DepartmentSetting) []*entity.DepartmentSetting {
	entities := make([]*entity.DepartmentSetting, len(settings))
	for i, d := range settings {
		entities[i] = m.DepartmentToEntity(d)
	}
	return entities
}

func (m *PropertyMapper) ContactToEntity(c *model.GuestContact) *entity.GuestContact {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.GuestContact{
		Id:         c.Id,
		PropertyId: c.PropertyId,
		Phone:      c.Phone,
		Name:       c.Name,
		IsVip:      c.IsVip,
		IsStaff:    c.IsStaff,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *PropertyMapper) ContactToModel(c *entity.GuestContact) *model.GuestContact {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.GuestContact{
		Id:         c.Id,
		PropertyId: c.PropertyId,
		Phone:      c.Phone,
		Name:       c.Name,
		IsVip:      c.IsVip,
		IsStaff:    c.IsStaff,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *PropertyMapper) ContactsToEntities(contacts []*model.GuestContact) []*entity.GuestContact {
	entities := make([]*entity.GuestContact, len(contacts))
	for i, c := range contacts {
		entities[i] = m.ContactToEntity(c)
	}
	return entities
}
