package model

import (
	"time"

	"github.com/google/uuid"
)

// User role constants
const (
	RoleGuest        = "guest"
	RoleStaff        = "staff"
	RoleAdmin        = "admin"
	RoleManager      = "manager"
	RoleHousekeeping = "housekeeping"
	RoleMaintenance  = "maintenance"
	RoleHR           = "hr"
)

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusPending  = "pending"
)

// Loyalty tier constants
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
	TierDiamond  = "diamond"
)

// User represents a hotel system user: guests and all staff roles.
type User struct {
	Base
	HotelID      uuid.UUID  `json:"hotel_id" db:"hotel_id"`
	Email        string     `json:"email" db:"email"`
	Name         string     `json:"name" db:"name"`
	Password     string     `json:"password,omitempty" db:"-"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Phone        *string    `json:"phone" db:"phone"`
	Role         string     `json:"role" db:"role"`
	Status       string     `json:"status" db:"status"`
	DepartmentID *uuid.UUID `json:"department_id" db:"department_id"`
	LoyaltyTier  *string    `json:"loyalty_tier" db:"loyalty_tier"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
}

// IsVIP reports whether the user's loyalty tier grants elevated routing.
func (u *User) IsVIP() bool {
	if u.LoyaltyTier == nil {
		return false
	}
	return *u.LoyaltyTier == TierPlatinum || *u.LoyaltyTier == TierDiamond
}

// UserFilter represents user search parameters
type UserFilter struct {
	BaseFilter
	Role string `json:"role" form:"role"`
}

// CreateUserRequest represents user creation parameters
type CreateUserRequest struct {
	HotelID  string `json:"hotel_id" binding:"required,uuid"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=guest staff admin manager housekeeping maintenance hr"`
}

// UpdateUserRequest represents user update parameters
type UpdateUserRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	Status      *string `json:"status" binding:"omitempty,oneof=active inactive pending"`
	Role        *string `json:"role" binding:"omitempty,oneof=guest staff admin manager housekeeping maintenance hr"`
	LoyaltyTier *string `json:"loyalty_tier" binding:"omitempty,oneof=bronze silver gold platinum diamond"`
}
