package model

import (
	"time"

	"github.com/google/uuid"
)

// Maintenance priority constants
const (
	MaintenancePriorityLow       = "low"
	MaintenancePriorityMedium    = "medium"
	MaintenancePriorityHigh      = "high"
	MaintenancePriorityEmergency = "emergency"
)

// MaintenanceTask represents a repair or upkeep job
type MaintenanceTask struct {
	Base
	HotelID       uuid.UUID  `json:"hotel_id" db:"hotel_id"`
	RoomNumber    string     `json:"room_number" db:"room_number"`
	Type          string     `json:"type" db:"type"`
	Priority      string     `json:"priority" db:"priority"`
	Status        string     `json:"status" db:"status"`
	AssignedTo    *uuid.UUID `json:"assigned_to" db:"assigned_to"`
	Description   string     `json:"description" db:"description"`
	EstimatedCost *float64   `json:"estimated_cost" db:"estimated_cost"`
	ActualCost    *float64   `json:"actual_cost" db:"actual_cost"`
	StartedAt     *time.Time `json:"started_at" db:"started_at"`
	CompletedAt   *time.Time `json:"completed_at" db:"completed_at"`
}

// MaintenanceFilter represents task search parameters
type MaintenanceFilter struct {
	BaseFilter
	Type       string    `json:"type" form:"type"`
	Priority   string    `json:"priority" form:"priority"`
	AssignedTo uuid.UUID `json:"assigned_to" form:"assigned_to"`
}

// CreateMaintenanceRequest represents task creation parameters
type CreateMaintenanceRequest struct {
	RoomNumber    string   `json:"room_number" binding:"required,roomnumber"`
	Type          string   `json:"type" binding:"required"`
	Priority      string   `json:"priority" binding:"omitempty,oneof=low medium high emergency"`
	Description   string   `json:"description" binding:"required"`
	EstimatedCost *float64 `json:"estimated_cost" binding:"omitempty,gte=0"`
}

// UpdateMaintenanceRequest represents task update parameters
type UpdateMaintenanceRequest struct {
	Status      *string    `json:"status" binding:"omitempty,oneof=pending in_progress completed verified"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high emergency"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	Description *string    `json:"description"`
	ActualCost  *float64   `json:"actual_cost" binding:"omitempty,gte=0"`
}
