package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OwnedByUser struct {
	UserID uuid.UUID
}

func (s OwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ?", s.UserID)
}

// ByPhone matches the phone column exactly. Properties use it for their
// provisioned SMS number, guest directory entries for the sender number.
type ByPhone struct {
	Phone string
}

func (s ByPhone) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("phone = ?", s.Phone)
}

type ByDepartmentName struct {
	Name string
}

func (s ByDepartmentName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}
