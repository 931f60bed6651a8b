package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Property struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"type:varchar(255);not null"`
	Type      string         `gorm:"type:varchar(50);not null;default:'hotel'"`
	Timezone  string         `gorm:"type:varchar(64);not null;default:'UTC'"`
	Phone     *string        `gorm:"type:varchar(32)"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Property) TableName() string {
	return "properties"
}

type GuestContact struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PropertyId uuid.UUID `gorm:"type:uuid;not null;index:idx_contact_property_phone,priority:1"`
	Phone      string    `gorm:"type:varchar(32);not null;index:idx_contact_property_phone,priority:2,unique"`
	Name       string    `gorm:"type:varchar(255)"`
	IsVip      bool      `gorm:"default:false"`
	IsStaff    bool      `gorm:"default:false"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (GuestContact) TableName() string {
	return "guest_contacts"
}

type DepartmentSetting struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PropertyId       uuid.UUID `gorm:"type:uuid;not null;index:idx_department_property_name,priority:1"`
	Name             string    `gorm:"type:varchar(100);not null;index:idx_department_property_name,priority:2,unique"`
	AckTargetMinutes *int      `gorm:""`
	SortOrder        int       `gorm:"default:0"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (DepartmentSetting) TableName() string {
	return "department_settings"
}
