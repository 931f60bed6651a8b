package specification

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByPropertyID struct {
	PropertyID uuid.UUID
}

func (s ByPropertyID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("property_id = ?", s.PropertyID)
}

// ActiveOnly keeps requests that have not been completed.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("completed = false")
}

// UnacknowledgedOnly keeps requests that have not been acknowledged.
type UnacknowledgedOnly struct{}

func (s UnacknowledgedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("acknowledged = false")
}

// ByDepartment is an exact, case-sensitive match: department values are
// controlled vocabulary coming from the property settings.
type ByDepartment struct {
	Department string
}

func (s ByDepartment) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("department = ?", s.Department)
}

// ByPriority matches case-insensitively; priorities are normalized on write
// but historic rows may carry mixed case.
type ByPriority struct {
	Priority string
}

func (s ByPriority) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(priority) = ?", strings.ToLower(s.Priority))
}

// SearchTerm matches the term against message, sender phone, and room number.
type SearchTerm struct {
	Term string
}

func (s SearchTerm) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + strings.TrimSpace(s.Term) + "%"
	return db.Where("message ILIKE ? OR from_phone LIKE ? OR room_number ILIKE ?", pattern, pattern, pattern)
}

type ByRequestID struct {
	RequestID uuid.UUID
}

func (s ByRequestID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("request_id = ?", s.RequestID)
}

// NeedsAttention keeps flagged requests.
type NeedsAttention struct{}

func (s NeedsAttention) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("needs_attention = true")
}
