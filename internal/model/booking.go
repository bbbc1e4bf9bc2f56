package model

import (
	"time"

	"github.com/google/uuid"
)

// Booking status constants
const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusCheckedIn  = "checked_in"
	BookingStatusCheckedOut = "checked_out"
	BookingStatusCancelled  = "cancelled"
)

// Booking represents a guest reservation for a room
type Booking struct {
	Base
	HotelID      uuid.UUID  `json:"hotel_id" db:"hotel_id"`
	GuestID      uuid.UUID  `json:"guest_id" db:"guest_id"`
	RoomID       uuid.UUID  `json:"room_id" db:"room_id"`
	CheckIn      time.Time  `json:"check_in" db:"check_in"`
	CheckOut     time.Time  `json:"check_out" db:"check_out"`
	Status       string     `json:"status" db:"status"`
	Total        float64    `json:"total" db:"total"`
	Notes        *string    `json:"notes" db:"notes"`
	CheckedInAt  *time.Time `json:"checked_in_at" db:"checked_in_at"`
	CheckedOutAt *time.Time `json:"checked_out_at" db:"checked_out_at"`
}

// BookingFilter represents booking search parameters
type BookingFilter struct {
	BaseFilter
	GuestID uuid.UUID `json:"guest_id" form:"guest_id"`
	RoomID  uuid.UUID `json:"room_id" form:"room_id"`
}

// CreateBookingRequest represents booking creation parameters
type CreateBookingRequest struct {
	GuestID  string    `json:"guest_id" binding:"required,uuid"`
	RoomID   string    `json:"room_id" binding:"required,uuid"`
	CheckIn  time.Time `json:"check_in" binding:"required"`
	CheckOut time.Time `json:"check_out" binding:"required,gtfield=CheckIn"`
	Total    float64   `json:"total" binding:"gte=0"`
	Notes    *string   `json:"notes"`
}

// UpdateBookingRequest represents booking update parameters
type UpdateBookingRequest struct {
	CheckIn  *time.Time `json:"check_in"`
	CheckOut *time.Time `json:"check_out"`
	Status   *string    `json:"status" binding:"omitempty,oneof=pending confirmed checked_in checked_out cancelled"`
	Total    *float64   `json:"total" binding:"omitempty,gte=0"`
	Notes    *string    `json:"notes"`
}
