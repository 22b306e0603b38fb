package integration

import "context"

// Repository defines the interface for integration data access
type Repository interface {
	// Create creates a new integration
	Create(ctx context.Context, i *Integration) error

	// GetByID retrieves an integration owned by the given user
	GetByID(ctx context.Context, userID, id string) (*Integration, error)

	// GetByProvider retrieves a user's integration with a provider
	GetByProvider(ctx context.Context, userID, provider string) (*Integration, error)

	// Update updates an integration
	Update(ctx context.Context, i *Integration) error

	// Delete deletes an integration owned by the given user
	Delete(ctx context.Context, userID, id string) error

	// List retrieves integrations of a user
	List(ctx context.Context, userID string) ([]*Integration, error)
}

// Service defines the interface for integration business logic
type Service interface {
	// Connect links a user to a provider. Connecting an already linked
	// provider updates its settings instead of duplicating it.
	Connect(ctx context.Context, userID, provider string, settings map[string]interface{}) (*Integration, error)

	List(ctx context.Context, userID string) ([]*Integration, error)

	// Disconnect marks the integration disconnected
	Disconnect(ctx context.Context, userID, id string) error
}
