package model

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims are the JWT claims carried by API access tokens.
type TokenClaims struct {
	UserID  uuid.UUID `json:"user_id"`
	HotelID uuid.UUID `json:"hotel_id"`
	Role    string    `json:"role"`
	jwt.RegisteredClaims
}

// RegisterRequest represents signup parameters
type RegisterRequest struct {
	HotelID  uuid.UUID `json:"hotel_id" binding:"required"`
	Email    string    `json:"email" binding:"required,email"`
	Name     string    `json:"name" binding:"required"`
	Password string    `json:"password" binding:"required,min=8"`
	Phone    *string   `json:"phone"`
	Role     string    `json:"role" binding:"omitempty,oneof=guest staff admin manager housekeeping maintenance hr"`
}

// LoginRequest represents login parameters
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries issued tokens back to the client.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RefreshRequest represents token refresh parameters
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
