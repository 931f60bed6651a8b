package entity

import (
	"time"

	"github.com/google/uuid"
)

type PropertyType string

const (
	PropertyTypeHotel      PropertyType = "hotel"
	PropertyTypeResort     PropertyType = "resort"
	PropertyTypeBoutique   PropertyType = "boutique"
	PropertyTypeVacation   PropertyType = "vacation_rental"
	PropertyTypeAparthotel PropertyType = "aparthotel"
)

type Property struct {
	Id       uuid.UUID
	OwnerId  uuid.UUID
	Name     string
	Type     PropertyType
	Timezone string // IANA name, used for calendar-day bucketing
	Phone    *string

	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// Location returns the property's timezone, falling back to UTC when the
// stored name is empty or unknown.
func (p *Property) Location() *time.Location {
	if p.Timezone != "" {
		if loc, err := time.LoadLocation(p.Timezone); err == nil {
			return loc
		}
	}
	return time.UTC
}

// GuestContact is one entry in a property's guest directory. Inbound
// requests from a known number inherit the contact's VIP and staff flags.
type GuestContact struct {
	Id         uuid.UUID
	PropertyId uuid.UUID
	Phone      string
	Name       string
	IsVip      bool
	IsStaff    bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// DepartmentSetting is the per-property controlled vocabulary of departments
// plus the optional acknowledgement SLA target. A request whose department
// has no setting (or a nil target) can never miss SLA.
type DepartmentSetting struct {
	Id               uuid.UUID
	PropertyId       uuid.UUID
	Name             string
	AckTargetMinutes *int
	SortOrder        int
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}
