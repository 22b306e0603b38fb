package task

import "context"

// Service defines the interface for task business logic
type Service interface {
	// Create creates a task for a user, subject to plan limits
	Create(ctx context.Context, userID string, t *Task) (*Task, error)

	// GetByID retrieves a task owned by the given user
	GetByID(ctx context.Context, userID, id string) (*Task, error)

	// List retrieves tasks of a user matching the filter
	List(ctx context.Context, userID string, filter Filter) ([]*Task, int64, error)

	// Update applies a partial update to a task. Moving a task into
	// the completed status stamps its completion time.
	Update(ctx context.Context, userID, id string, updates map[string]interface{}) (*Task, error)

	// Delete deletes a task owned by the given user
	Delete(ctx context.Context, userID, id string) error
}
