package model

import "github.com/google/uuid"

// InventoryItem represents a stocked supply item
type InventoryItem struct {
	Base
	HotelID      uuid.UUID `json:"hotel_id" db:"hotel_id"`
	Name         string    `json:"name" db:"name"`
	Category     string    `json:"category" db:"category"`
	Quantity     int       `json:"quantity" db:"quantity"`
	ReorderLevel int       `json:"reorder_level" db:"reorder_level"`
	UnitCost     float64   `json:"unit_cost" db:"unit_cost"`
}

// Inventory movement reasons
const (
	InventoryReasonConsumed = "consumed"
	InventoryReasonDamaged  = "damaged"
	InventoryReasonMissing  = "missing"
	InventoryReasonRestock  = "restock"
)

// InventoryFilter represents item search parameters
type InventoryFilter struct {
	BaseFilter
	Category string `json:"category" form:"category"`
	LowStock bool   `json:"low_stock" form:"low_stock"`
}

// CreateInventoryRequest represents item creation parameters
type CreateInventoryRequest struct {
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	Quantity     int     `json:"quantity" binding:"gte=0"`
	ReorderLevel int     `json:"reorder_level" binding:"gte=0"`
	UnitCost     float64 `json:"unit_cost" binding:"gte=0"`
}

// AdjustInventoryRequest represents a stock movement
type AdjustInventoryRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required,oneof=consumed damaged missing restock"`
}
