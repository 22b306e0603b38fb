package services

import (
	"context"
	"time"

	"github.com/aurybot/aury-backend/internal/domain/event"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
)

// EventService implements event.Service
type EventService struct {
	repo   event.Repository
	logger *logger.Logger
}

// NewEventService creates a new event service
func NewEventService(repo event.Repository, log *logger.Logger) event.Service {
	return &EventService{
		repo:   repo,
		logger: log,
	}
}

// Create creates an event for a user
func (s *EventService) Create(ctx context.Context, userID string, e *event.Event) (*event.Event, error) {
	e.UserID = userID
	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create event")
		return nil, err
	}
	return e, nil
}

// GetByID retrieves an event owned by the given user
func (s *EventService) GetByID(ctx context.Context, userID, id string) (*event.Event, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List retrieves events of a user matching the filter
func (s *EventService) List(ctx context.Context, userID string, filter event.Filter) ([]*event.Event, int64, error) {
	return s.repo.List(ctx, userID, filter)
}

// Update applies a partial update to an event
func (s *EventService) Update(ctx context.Context, userID, id string, updates map[string]interface{}) (*event.Event, error) {
	e, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if v, ok := updates["title"].(string); ok {
		e.Title = v
	}
	if v, ok := updates["description"].(string); ok {
		e.Description = v
	}
	if v, ok := updates["location"].(string); ok {
		e.Location = v
	}
	if v, ok := updates["start_time"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			e.StartTime = parsed
		}
	}
	if v, ok := updates["end_time"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			e.EndTime = &parsed
		}
	}
	if v, ok := updates["all_day"].(bool); ok {
		e.AllDay = v
	}
	if v, ok := updates["reminder"].(bool); ok {
		e.Reminder = v
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete deletes an event owned by the given user
func (s *EventService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
