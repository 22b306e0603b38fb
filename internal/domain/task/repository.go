package task

import "context"

// Repository defines the interface for task data access
type Repository interface {
	// Create creates a new task
	Create(ctx context.Context, t *Task) error

	// GetByID retrieves a task owned by the given user
	GetByID(ctx context.Context, userID, id string) (*Task, error)

	// Update updates a task
	Update(ctx context.Context, t *Task) error

	// Delete deletes a task owned by the given user
	Delete(ctx context.Context, userID, id string) error

	// List retrieves tasks of a user matching the filter
	List(ctx context.Context, userID string, filter Filter) ([]*Task, int64, error)

	// CountByUser returns the number of tasks a user has
	CountByUser(ctx context.Context, userID string) (int64, error)

	// CountByStatus returns the number of tasks a user has in the
	// given status
	CountByStatus(ctx context.Context, userID, status string) (int64, error)
}
