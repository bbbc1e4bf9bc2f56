package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Hotel is the tenant boundary: every entity in the system belongs to
// exactly one hotel and no query crosses it.
type Hotel struct {
	Base
	Name     string        `json:"name" db:"name"`
	Address  *string       `json:"address" db:"address"`
	Phone    *string       `json:"phone" db:"phone"`
	Timezone string        `json:"timezone" db:"timezone"`
	Status   string        `json:"status" db:"status"`
	Settings HotelSettings `json:"settings" db:"settings"`
}

// HotelSettings carries per-tenant notification tuning. Defaults are
// applied on read so older rows keep working.
type HotelSettings struct {
	CoalesceWindowMinutes int     `json:"coalesce_window_minutes"`
	HighValueThreshold    float64 `json:"high_value_threshold"`
	HighCostThreshold     float64 `json:"high_cost_threshold"`
}

const (
	DefaultCoalesceWindowMinutes = 5
	DefaultHighValueThreshold    = 50
	DefaultHighCostThreshold     = 500
	DefaultTimezone              = "UTC"
)

// WithDefaults fills zero-valued settings with system defaults.
func (s HotelSettings) WithDefaults() HotelSettings {
	if s.CoalesceWindowMinutes <= 0 {
		s.CoalesceWindowMinutes = DefaultCoalesceWindowMinutes
	}
	if s.HighValueThreshold <= 0 {
		s.HighValueThreshold = DefaultHighValueThreshold
	}
	if s.HighCostThreshold <= 0 {
		s.HighCostThreshold = DefaultHighCostThreshold
	}
	return s
}

// Value implements driver.Valuer so settings persist as JSONB.
func (s HotelSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB settings columns.
func (s *HotelSettings) Scan(src interface{}) error {
	if src == nil {
		*s = HotelSettings{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type for HotelSettings: %T", src)
	}
}

// CreateHotelRequest represents hotel creation parameters
type CreateHotelRequest struct {
	Name     string  `json:"name" binding:"required"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Timezone string  `json:"timezone"`
}

// UpdateHotelRequest represents hotel update parameters
type UpdateHotelRequest struct {
	Name     *string        `json:"name"`
	Address  *string        `json:"address"`
	Phone    *string        `json:"phone"`
	Timezone *string        `json:"timezone"`
	Status   *string        `json:"status" binding:"omitempty,oneof=active inactive"`
	Settings *HotelSettings `json:"settings"`
}
