package model

import (
	"time"

	"github.com/google/uuid"
)

// Guest service type constants
const (
	GuestServiceRoomService  = "room_service"
	GuestServiceHousekeeping = "housekeeping"
	GuestServiceConcierge    = "concierge"
	GuestServiceTransport    = "transport"
	GuestServiceWakeUpCall   = "wake_up_call"
	GuestServiceComplaint    = "complaint"
)

// GuestService represents a guest-initiated request
type GuestService struct {
	Base
	HotelID     uuid.UUID  `json:"hotel_id" db:"hotel_id"`
	GuestID     uuid.UUID  `json:"guest_id" db:"guest_id"`
	RoomNumber  string     `json:"room_number" db:"room_number"`
	ServiceType string     `json:"service_type" db:"service_type"`
	Priority    string     `json:"priority" db:"priority"`
	Status      string     `json:"status" db:"status"`
	AssignedTo  *uuid.UUID `json:"assigned_to" db:"assigned_to"`
	Description string     `json:"description" db:"description"`
	StartedAt   *time.Time `json:"started_at" db:"started_at"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
}

// GuestServiceFilter represents request search parameters
type GuestServiceFilter struct {
	BaseFilter
	ServiceType string    `json:"service_type" form:"service_type"`
	GuestID     uuid.UUID `json:"guest_id" form:"guest_id"`
	AssignedTo  uuid.UUID `json:"assigned_to" form:"assigned_to"`
}

// CreateGuestServiceRequest represents request creation parameters
type CreateGuestServiceRequest struct {
	GuestID     string `json:"guest_id" binding:"required,uuid"`
	RoomNumber  string `json:"room_number" binding:"required,roomnumber"`
	ServiceType string `json:"service_type" binding:"required"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Description string `json:"description" binding:"required"`
}

// UpdateGuestServiceRequest represents request update parameters
type UpdateGuestServiceRequest struct {
	Status      *string    `json:"status" binding:"omitempty,oneof=pending in_progress completed verified"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	Description *string    `json:"description"`
}
