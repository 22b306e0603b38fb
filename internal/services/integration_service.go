package services

import (
	"context"

	"github.com/aurybot/aury-backend/internal/domain/integration"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
)

// IntegrationService implements integration.Service
type IntegrationService struct {
	repo   integration.Repository
	logger *logger.Logger
}

// NewIntegrationService creates a new integration service
func NewIntegrationService(repo integration.Repository, log *logger.Logger) integration.Service {
	return &IntegrationService{
		repo:   repo,
		logger: log,
	}
}

// Connect links a user to a provider. Connecting an already linked
// provider reconnects it and merges the new settings.
func (s *IntegrationService) Connect(ctx context.Context, userID, provider string, settings map[string]interface{}) (*integration.Integration, error) {
	existing, err := s.repo.GetByProvider(ctx, userID, provider)
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	if existing != nil && err == nil {
		existing.Status = integration.StatusConnected
		if existing.Settings == nil {
			existing.Settings = map[string]interface{}{}
		}
		for k, v := range settings {
			existing.Settings[k] = v
		}
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	i := &integration.Integration{
		UserID:   userID,
		Provider: provider,
		Status:   integration.StatusConnected,
		Settings: settings,
	}
	if i.Settings == nil {
		i.Settings = map[string]interface{}{}
	}

	if err := s.repo.Create(ctx, i); err != nil {
		s.logger.ErrorWithErr(err, "Failed to connect integration")
		return nil, err
	}

	return i, nil
}

// List retrieves integrations of a user
func (s *IntegrationService) List(ctx context.Context, userID string) ([]*integration.Integration, error) {
	return s.repo.List(ctx, userID)
}

// Disconnect marks the integration disconnected
func (s *IntegrationService) Disconnect(ctx context.Context, userID, id string) error {
	i, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	i.Status = integration.StatusDisconnected
	return s.repo.Update(ctx, i)
}
