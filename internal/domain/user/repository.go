package user

import (
	"context"
	"errors"
)

// ErrDailyLimitReached is returned by ReserveDailyUsage when the
// counter is already at its limit for the day
var ErrDailyLimitReached = errors.New("daily limit reached")

// UsageCounter names a metered daily counter on a user
type UsageCounter string

const (
	UsageAIAnalysis  UsageCounter = "ai_analysis"
	UsageChatUploads UsageCounter = "chat_uploads"
)

// Repository defines the interface for user data access
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update updates a user
	Update(ctx context.Context, user *User) error

	// Delete deletes a user
	Delete(ctx context.Context, id string) error

	// List retrieves all users with pagination
	List(ctx context.Context, limit, offset int) ([]*User, int64, error)

	// SaveDailyUsage persists the daily usage counters of a user
	SaveDailyUsage(ctx context.Context, userID string, usage DailyUsage) error

	// ReserveDailyUsage atomically increments a daily counter if it is
	// still under limit, resetting stale counters to the given day
	// first. A limit of -1 means unmetered. Returns the usage after the
	// reservation.
	ReserveDailyUsage(ctx context.Context, userID string, counter UsageCounter, limit int, today string) (DailyUsage, error)

	// ListPremiumExpired retrieves premium users whose expiry is before
	// the given date (RFC 3339)
	ListPremiumExpired(ctx context.Context, before string) ([]*User, error)
}
