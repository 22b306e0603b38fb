package payment

import "context"

// Repository defines the interface for payment data access
type Repository interface {
	// Create creates a new payment record
	Create(ctx context.Context, p *Payment) error

	// GetByID retrieves a payment by ID
	GetByID(ctx context.Context, id string) (*Payment, error)

	// Update updates a payment
	Update(ctx context.Context, p *Payment) error

	// ListByUser retrieves payments reported by a user
	ListByUser(ctx context.Context, userID string) ([]*Payment, error)

	// ListByStatus retrieves payments in the given status
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Payment, int64, error)
}

// Service defines the interface for payment business logic
type Service interface {
	// Notify records that a user reports having paid with the given
	// transfer reference
	Notify(ctx context.Context, userID, reference string, amount int64) (*Payment, error)

	// ListByUser retrieves payments reported by a user
	ListByUser(ctx context.Context, userID string) ([]*Payment, error)

	// ListPending retrieves payments awaiting review
	ListPending(ctx context.Context, limit, offset int) ([]*Payment, int64, error)

	// Review approves or rejects a pending payment. Approval upgrades
	// the paying user to premium for the configured period.
	Review(ctx context.Context, reviewerID, paymentID string, approve bool) (*Payment, error)
}
