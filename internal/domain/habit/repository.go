package habit

import "context"

// Repository defines the interface for habit data access
type Repository interface {
	// Create creates a new habit
	Create(ctx context.Context, h *Habit) error

	// GetByID retrieves a habit owned by the given user
	GetByID(ctx context.Context, userID, id string) (*Habit, error)

	// Update updates a habit
	Update(ctx context.Context, h *Habit) error

	// Delete deletes a habit owned by the given user
	Delete(ctx context.Context, userID, id string) error

	// List retrieves habits of a user
	List(ctx context.Context, userID string, limit, offset int) ([]*Habit, int64, error)

	// CountByUser returns the number of habits a user has
	CountByUser(ctx context.Context, userID string) (int64, error)
}
