package note

import "context"

// Repository defines the interface for note data access
type Repository interface {
	// Create creates a new note
	Create(ctx context.Context, n *Note) error

	// GetByID retrieves a note owned by the given user
	GetByID(ctx context.Context, userID, id string) (*Note, error)

	// Update updates a note
	Update(ctx context.Context, n *Note) error

	// Delete deletes a note owned by the given user
	Delete(ctx context.Context, userID, id string) error

	// List retrieves notes of a user matching the filter
	List(ctx context.Context, userID string, filter Filter) ([]*Note, int64, error)

	// CountByUser returns the number of notes a user has
	CountByUser(ctx context.Context, userID string) (int64, error)
}
