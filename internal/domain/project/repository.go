package project

import "context"

// Repository defines the interface for project data access
type Repository interface {
	// Create creates a new project
	Create(ctx context.Context, p *Project) error

	// GetByID retrieves a project owned by the given user
	GetByID(ctx context.Context, userID, id string) (*Project, error)

	// Update updates a project
	Update(ctx context.Context, p *Project) error

	// Delete deletes a project owned by the given user
	Delete(ctx context.Context, userID, id string) error

	// List retrieves projects of a user
	List(ctx context.Context, userID string, limit, offset int) ([]*Project, int64, error)

	// CountByUser returns the number of projects a user has
	CountByUser(ctx context.Context, userID string) (int64, error)
}
