package model

import "github.com/google/uuid"

// Room status constants
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusCleaning    = "cleaning"
	RoomStatusMaintenance = "maintenance"
	RoomStatusOutOfOrder  = "out_of_order"
)

// Room represents a physical hotel room
type Room struct {
	Base
	HotelID  uuid.UUID `json:"hotel_id" db:"hotel_id"`
	Number   string    `json:"number" db:"number"`
	Type     string    `json:"type" db:"type"`
	Floor    int       `json:"floor" db:"floor"`
	Status   string    `json:"status" db:"status"`
	Rate     float64   `json:"rate" db:"rate"`
	Capacity int       `json:"capacity" db:"capacity"`
}

// RoomFilter represents room search parameters
type RoomFilter struct {
	BaseFilter
	Type  string `json:"type" form:"type"`
	Floor *int   `json:"floor" form:"floor"`
}

// CreateRoomRequest represents room creation parameters
type CreateRoomRequest struct {
	Number   string  `json:"number" binding:"required,roomnumber"`
	Type     string  `json:"type" binding:"required"`
	Floor    int     `json:"floor"`
	Rate     float64 `json:"rate" binding:"gte=0"`
	Capacity int     `json:"capacity" binding:"gte=1"`
}

// UpdateRoomRequest represents room update parameters
type UpdateRoomRequest struct {
	Type     *string  `json:"type"`
	Floor    *int     `json:"floor"`
	Status   *string  `json:"status" binding:"omitempty,oneof=available occupied cleaning maintenance out_of_order"`
	Rate     *float64 `json:"rate" binding:"omitempty,gte=0"`
	Capacity *int     `json:"capacity" binding:"omitempty,gte=1"`
}
