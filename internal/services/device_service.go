package services

import (
	"context"
	"fmt"

	"github.com/aurybot/aury-backend/internal/domain/device"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
)

// DeviceService implements device.Service
type DeviceService struct {
	repo   device.Repository
	logger *logger.Logger
}

// NewDeviceService creates a new device service
func NewDeviceService(repo device.Repository, log *logger.Logger) device.Service {
	return &DeviceService{
		repo:   repo,
		logger: log,
	}
}

// Register adds a device for a user, up to the per-user cap
func (s *DeviceService) Register(ctx context.Context, userID string, d *device.Device) (*device.Device, error) {
	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= device.MaxPerUser {
		return nil, errors.Forbidden(fmt.Sprintf("Device limit reached (%d)", device.MaxPerUser))
	}

	d.UserID = userID
	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.ErrorWithErr(err, "Failed to register device")
		return nil, err
	}

	return d, nil
}

// GetByID retrieves a device owned by the given user
func (s *DeviceService) GetByID(ctx context.Context, userID, id string) (*device.Device, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List retrieves devices of a user
func (s *DeviceService) List(ctx context.Context, userID string) ([]*device.Device, error) {
	return s.repo.List(ctx, userID)
}

// Update applies a partial update to a device, including toggling its
// on state and merging state keys
func (s *DeviceService) Update(ctx context.Context, userID, id string, updates map[string]interface{}) (*device.Device, error) {
	d, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if v, ok := updates["name"].(string); ok {
		d.Name = v
	}
	if v, ok := updates["type"].(string); ok {
		d.Type = v
	}
	if v, ok := updates["room"].(string); ok {
		d.Room = v
	}
	if v, ok := updates["on"].(bool); ok {
		d.On = v
	}
	if state, ok := updates["state"].(map[string]interface{}); ok {
		if d.State == nil {
			d.State = map[string]interface{}{}
		}
		for k, v := range state {
			d.State[k] = v
		}
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete deletes a device owned by the given user
func (s *DeviceService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
