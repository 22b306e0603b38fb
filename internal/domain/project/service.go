package project

import (
	"context"
	"io"
)

// Upload carries an incoming file attachment
type Upload struct {
	Reader      io.Reader
	Filename    string
	Size        int64
	ContentType string
}

// Service defines the interface for project business logic
type Service interface {
	// Create creates a project for a user, subject to plan limits
	Create(ctx context.Context, userID string, p *Project) (*Project, error)

	// GetByID retrieves a project owned by the given user
	GetByID(ctx context.Context, userID, id string) (*Project, error)

	// List retrieves projects of a user
	List(ctx context.Context, userID string, limit, offset int) ([]*Project, int64, error)

	// Update applies a partial update to a project
	Update(ctx context.Context, userID, id string, updates map[string]interface{}) (*Project, error)

	// Delete deletes a project owned by the given user
	Delete(ctx context.Context, userID, id string) error

	// AttachFile stores an uploaded file and records it on the project
	AttachFile(ctx context.Context, userID, id string, up Upload) (*File, error)

	// OpenFile opens a stored file for reading. The caller closes the
	// returned reader.
	OpenFile(ctx context.Context, userID, id, fileID string) (io.ReadCloser, *File, error)

	// RemoveFile removes a stored file from a project
	RemoveFile(ctx context.Context, userID, id, fileID string) error
}
