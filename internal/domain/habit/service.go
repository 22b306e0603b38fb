package habit

import (
	"context"
	"time"
)

// Service defines the interface for habit business logic
type Service interface {
	// Create creates a habit for a user, subject to plan limits
	Create(ctx context.Context, userID string, h *Habit) (*Habit, error)

	// GetByID retrieves a habit owned by the given user
	GetByID(ctx context.Context, userID, id string) (*Habit, error)

	// List retrieves habits of a user
	List(ctx context.Context, userID string, limit, offset int) ([]*Habit, int64, error)

	// Update applies a partial update to a habit
	Update(ctx context.Context, userID, id string, updates map[string]interface{}) (*Habit, error)

	// Delete deletes a habit owned by the given user
	Delete(ctx context.Context, userID, id string) error

	// Complete marks the habit done for the day of now. Completing a
	// habit twice on the same day is a no-op. Consecutive days grow
	// the streak; a gap resets it to 1.
	Complete(ctx context.Context, userID, id string, now time.Time) (*Habit, error)
}
