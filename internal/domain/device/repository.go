package device

import "context"

// Repository defines the interface for device data access
type Repository interface {
	// Create creates a new device
	Create(ctx context.Context, d *Device) error

	// GetByID retrieves a device owned by the given user
	GetByID(ctx context.Context, userID, id string) (*Device, error)

	// Update updates a device
	Update(ctx context.Context, d *Device) error

	// Delete deletes a device owned by the given user
	Delete(ctx context.Context, userID, id string) error

	// List retrieves devices of a user
	List(ctx context.Context, userID string) ([]*Device, error)

	// CountByUser returns the number of devices a user has
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// Service defines the interface for device business logic
type Service interface {
	// Register adds a device for a user, up to the per-user cap
	Register(ctx context.Context, userID string, d *Device) (*Device, error)

	GetByID(ctx context.Context, userID, id string) (*Device, error)
	List(ctx context.Context, userID string) ([]*Device, error)

	// Update applies a partial update to a device, including toggling
	// its on state
	Update(ctx context.Context, userID, id string, updates map[string]interface{}) (*Device, error)

	Delete(ctx context.Context, userID, id string) error
}
