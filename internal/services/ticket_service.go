package services

import (
	"context"

	"github.com/aurybot/aury-backend/internal/domain/ticket"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
)

// TicketService implements ticket.Service
type TicketService struct {
	repo   ticket.Repository
	logger *logger.Logger
}

// NewTicketService creates a new ticket service
func NewTicketService(repo ticket.Repository, log *logger.Logger) ticket.Service {
	return &TicketService{
		repo:   repo,
		logger: log,
	}
}

// Open files a new ticket for a user
func (s *TicketService) Open(ctx context.Context, userID, subject, message string) (*ticket.Ticket, error) {
	t := &ticket.Ticket{
		UserID:  userID,
		Subject: subject,
		Message: message,
		Status:  ticket.StatusOpen,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.ErrorWithErr(err, "Failed to open ticket")
		return nil, err
	}

	return t, nil
}

// GetByID retrieves a ticket owned by the given user
func (s *TicketService) GetByID(ctx context.Context, userID, id string) (*ticket.Ticket, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List retrieves tickets of a user
func (s *TicketService) List(ctx context.Context, userID string, limit, offset int) ([]*ticket.Ticket, int64, error) {
	return s.repo.List(ctx, userID, limit, offset)
}

// UpdateStatus moves a ticket to a new status
func (s *TicketService) UpdateStatus(ctx context.Context, userID, id, status string) (*ticket.Ticket, error) {
	switch status {
	case ticket.StatusOpen, ticket.StatusInProgress, ticket.StatusResolved, ticket.StatusClosed:
	default:
		return nil, errors.BadRequest("Invalid ticket status")
	}

	t, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	t.Status = status
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}
