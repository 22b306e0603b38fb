package user

import (
	"context"
	"time"
)

// Service defines the interface for user business logic
type Service interface {
	// Register creates a new account with a hashed password
	Register(ctx context.Context, email, password, name string) (*User, error)

	// Authenticate verifies credentials and returns the user
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// TrackDevice records the device an account signs in from,
	// rejecting logins beyond MaxDevices distinct devices
	TrackDevice(ctx context.Context, userID, deviceID string) error

	// UpdateProfile applies a partial update to profile fields
	UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*User, error)

	// GetAssistantConfig returns the assistant configuration of a user
	GetAssistantConfig(ctx context.Context, userID string) (map[string]interface{}, error)

	// UpdateAssistantConfig merges updates into the assistant configuration
	UpdateAssistantConfig(ctx context.Context, userID string, updates map[string]interface{}) (map[string]interface{}, error)

	// UpgradePlan switches a user to the given plan until expiry.
	// A nil expiry means the plan does not lapse.
	UpgradePlan(ctx context.Context, userID, planName string, expiresAt *time.Time) error
}
