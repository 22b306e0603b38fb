package event

import "context"

// Repository defines the interface for event data access
type Repository interface {
	// Create creates a new event
	Create(ctx context.Context, e *Event) error

	// GetByID retrieves an event owned by the given user
	GetByID(ctx context.Context, userID, id string) (*Event, error)

	// Update updates an event
	Update(ctx context.Context, e *Event) error

	// Delete deletes an event owned by the given user
	Delete(ctx context.Context, userID, id string) error

	// List retrieves events of a user matching the filter, ordered by
	// start time
	List(ctx context.Context, userID string, filter Filter) ([]*Event, int64, error)

	// CountByUser returns the number of events a user has
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// Service defines the interface for event business logic
type Service interface {
	Create(ctx context.Context, userID string, e *Event) (*Event, error)
	GetByID(ctx context.Context, userID, id string) (*Event, error)
	List(ctx context.Context, userID string, filter Filter) ([]*Event, int64, error)
	Update(ctx context.Context, userID, id string, updates map[string]interface{}) (*Event, error)
	Delete(ctx context.Context, userID, id string) error
}
