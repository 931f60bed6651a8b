package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Request struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PropertyId uuid.UUID `gorm:"type:uuid;not null;index:idx_requests_property_created,priority:1"`
	FromPhone  string    `gorm:"type:varchar(32);not null;index"`
	RoomNumber string    `gorm:"type:varchar(16)"`
	Message    string    `gorm:"type:text;not null"`
	Department string    `gorm:"type:varchar(100);index"`
	Priority   string    `gorm:"type:varchar(20);not null;default:'normal'"`

	Acknowledged   bool       `gorm:"default:false;index"`
	AcknowledgedAt *time.Time `gorm:""`
	Completed      bool       `gorm:"default:false;index"`
	CompletedAt    *time.Time `gorm:""`

	IsVip   bool `gorm:"default:false"`
	IsStaff bool `gorm:"default:false"`

	AiSummary   *string `gorm:"type:text"`
	AiRootCause *string `gorm:"type:text"`
	AiSentiment *string `gorm:"type:varchar(20)"`
	AiPriority  *string `gorm:"type:varchar(20)"`

	NeedsAttention bool `gorm:"default:false"`

	// Verbatim gateway callback body, kept for audit and re-ingestion.
	RawPayload datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_requests_property_created,priority:2"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Request) TableName() string {
	return "requests"
}

type RequestNote struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestId uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorId  uuid.UUID `gorm:"type:uuid;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (RequestNote) TableName() string {
	return "request_notes"
}
