package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePropertyRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Type     string `json:"type" validate:"required,oneof=hotel resort boutique vacation_rental aparthotel"`
	Timezone string `json:"timezone" validate:"omitempty,timezone"`
	Phone    string `json:"phone"`
}

type UpdatePropertyRequest struct {
	Id       uuid.UUID
	Name     string `json:"name" validate:"required,min=2"`
	Type     string `json:"type" validate:"required,oneof=hotel resort boutique vacation_rental aparthotel"`
	Timezone string `json:"timezone" validate:"omitempty,timezone"`
	Phone    string `json:"phone"`
}

type PropertyResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Timezone  string    `json:"timezone"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactRequest struct {
	Phone   string `json:"phone" validate:"required,min=5,max=32"`
	Name    string `json:"name" validate:"omitempty,max=255"`
	IsVip   bool   `json:"is_vip"`
	IsStaff bool   `json:"is_staff"`
}

type ContactResponse struct {
	Id      uuid.UUID `json:"id"`
	Phone   string    `json:"phone"`
	Name    string    `json:"name,omitempty"`
	IsVip   bool      `json:"is_vip"`
	IsStaff bool      `json:"is_staff"`
}

type DepartmentRequest struct {
	Name             string `json:"name" validate:"required,min=2"`
	AckTargetMinutes *int   `json:"ack_target_minutes" validate:"omitempty,min=1,max=1440"`
	SortOrder        int    `json:"sort_order"`
}

type DepartmentResponse struct {
	Id               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	AckTargetMinutes *int      `json:"ack_target_minutes,omitempty"`
	SortOrder        int       `json:"sort_order"`
}
