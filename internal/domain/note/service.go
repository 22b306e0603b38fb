package note

import "context"

// Service defines the interface for note business logic
type Service interface {
	// Create creates a note for a user, subject to plan limits
	Create(ctx context.Context, userID string, n *Note) (*Note, error)

	// GetByID retrieves a note owned by the given user
	GetByID(ctx context.Context, userID, id string) (*Note, error)

	// List retrieves notes of a user matching the filter
	List(ctx context.Context, userID string, filter Filter) ([]*Note, int64, error)

	// Update applies a partial update to a note
	Update(ctx context.Context, userID, id string, updates map[string]interface{}) (*Note, error)

	// Delete deletes a note owned by the given user
	Delete(ctx context.Context, userID, id string) error

	// Analyze summarizes a note and extracts action items from it,
	// consuming one daily analysis credit
	Analyze(ctx context.Context, userID, id string) (*Note, error)
}
