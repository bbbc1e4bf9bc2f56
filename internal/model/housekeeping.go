package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Housekeeping task type constants
const (
	HousekeepingTypeCleaning   = "cleaning"
	HousekeepingTypeDeepClean  = "deep_clean"
	HousekeepingTypeTurndown   = "turndown"
	HousekeepingTypeInspection = "inspection"
)

// Housekeeping task status constants
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusVerified   = "verified"
)

// ConsumedItem records inventory use against a housekeeping task.
type ConsumedItem struct {
	Quantity int     `json:"quantity"`
	UnitCost float64 `json:"unit_cost"`
}

// ConsumedItems maps item name to its usage for one task.
type ConsumedItems map[string]ConsumedItem

// TotalValue returns the summed cost of everything consumed.
func (c ConsumedItems) TotalValue() float64 {
	var total float64
	for _, item := range c {
		total += float64(item.Quantity) * item.UnitCost
	}
	return total
}

// Value implements driver.Valuer for JSONB persistence.
func (c ConsumedItems) Value() (driver.Value, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB columns.
func (c *ConsumedItems) Scan(src interface{}) error {
	if src == nil {
		*c = ConsumedItems{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("unsupported type for ConsumedItems: %T", src)
	}
}

// HousekeepingTask represents one unit of room cleaning work
type HousekeepingTask struct {
	Base
	HotelID           uuid.UUID     `json:"hotel_id" db:"hotel_id"`
	RoomNumber        string        `json:"room_number" db:"room_number"`
	TaskType          string        `json:"task_type" db:"task_type"`
	Priority          string        `json:"priority" db:"priority"`
	Status            string        `json:"status" db:"status"`
	AssignedTo        *uuid.UUID    `json:"assigned_to" db:"assigned_to"`
	QualityScore      *int          `json:"quality_score" db:"quality_score"`
	InventoryConsumed ConsumedItems `json:"inventory_consumed" db:"inventory_consumed"`
	Notes             *string       `json:"notes" db:"notes"`
	StartedAt         *time.Time    `json:"started_at" db:"started_at"`
	CompletedAt       *time.Time    `json:"completed_at" db:"completed_at"`
}

// HousekeepingFilter represents task search parameters
type HousekeepingFilter struct {
	BaseFilter
	TaskType   string    `json:"task_type" form:"task_type"`
	AssignedTo uuid.UUID `json:"assigned_to" form:"assigned_to"`
	RoomNumber string    `json:"room_number" form:"room_number"`
}

// CreateHousekeepingRequest represents task creation parameters
type CreateHousekeepingRequest struct {
	RoomNumber string  `json:"room_number" binding:"required,roomnumber"`
	TaskType   string  `json:"task_type" binding:"required,oneof=cleaning deep_clean turndown inspection"`
	Priority   string  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Notes      *string `json:"notes"`
}

// UpdateHousekeepingRequest represents task update parameters
type UpdateHousekeepingRequest struct {
	Status            *string       `json:"status" binding:"omitempty,oneof=pending in_progress completed verified"`
	AssignedTo        *uuid.UUID    `json:"assigned_to"`
	QualityScore      *int          `json:"quality_score" binding:"omitempty,gte=1,lte=5"`
	InventoryConsumed ConsumedItems `json:"inventory_consumed"`
	Notes             *string       `json:"notes"`
	Priority          *string       `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
}
