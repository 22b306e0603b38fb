package dto

import (
	"time"

	"github.com/aurybot/aury-backend/internal/domain/user"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	DeviceID string `json:"device_id,omitempty"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	DeviceID string `json:"device_id,omitempty"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID               string                 `json:"id"`
	Email            string                 `json:"email"`
	Name             string                 `json:"name"`
	Plan             string                 `json:"plan"`
	PremiumExpiresAt *time.Time             `json:"premium_expires_at,omitempty"`
	DeviceIDs        []string               `json:"device_ids"`
	DailyUsage       user.DailyUsage        `json:"daily_usage"`
	Preferences      map[string]interface{} `json:"preferences"`
	CreatedAt        time.Time              `json:"created_at"`
}

// NewUserDTO maps a domain user to its API shape
func NewUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Plan:             u.Plan,
		PremiumExpiresAt: u.PremiumExpiresAt,
		DeviceIDs:        u.DeviceIDs,
		DailyUsage:       u.DailyUsage,
		Preferences:      u.Preferences,
		CreatedAt:        u.CreatedAt,
	}
}

// AuthResponse represents a successful authentication
type AuthResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         *UserDTO `json:"user"`
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	Name        *string                 `json:"name,omitempty"`
	Preferences *map[string]interface{} `json:"preferences,omitempty"`
}
