package ticket

import "context"

// Repository defines the interface for ticket data access
type Repository interface {
	// Create creates a new ticket
	Create(ctx context.Context, t *Ticket) error

	// GetByID retrieves a ticket owned by the given user
	GetByID(ctx context.Context, userID, id string) (*Ticket, error)

	// Update updates a ticket
	Update(ctx context.Context, t *Ticket) error

	// List retrieves tickets of a user
	List(ctx context.Context, userID string, limit, offset int) ([]*Ticket, int64, error)
}

// Service defines the interface for ticket business logic
type Service interface {
	// Open files a new ticket for a user
	Open(ctx context.Context, userID, subject, message string) (*Ticket, error)

	GetByID(ctx context.Context, userID, id string) (*Ticket, error)
	List(ctx context.Context, userID string, limit, offset int) ([]*Ticket, int64, error)

	// UpdateStatus moves a ticket to a new status
	UpdateStatus(ctx context.Context, userID, id, status string) (*Ticket, error)
}
