package services

import (
	"context"
	"strings"
	"time"

	"github.com/aurybot/aury-backend/internal/domain/payment"
	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/domain/user"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
)

// PaymentService implements payment.Service
type PaymentService struct {
	repo        payment.Repository
	users       user.Service
	premiumDays int
	logger      *logger.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(repo payment.Repository, users user.Service, premiumDays int, log *logger.Logger) payment.Service {
	return &PaymentService{
		repo:        repo,
		users:       users,
		premiumDays: premiumDays,
		logger:      log,
	}
}

// Notify records that a user reports having paid with the given
// transfer reference
func (s *PaymentService) Notify(ctx context.Context, userID, reference string, amount int64) (*payment.Payment, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, errors.BadRequest("Payment reference is required")
	}

	p := &payment.Payment{
		UserID:    userID,
		Reference: reference,
		Amount:    amount,
		Status:    payment.StatusPending,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.ErrorWithErr(err, "Failed to record payment notice")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"payment_id": p.ID,
		"user_id":    userID,
	}).Info("Payment notice recorded")

	return p, nil
}

// ListByUser retrieves payments reported by a user
func (s *PaymentService) ListByUser(ctx context.Context, userID string) ([]*payment.Payment, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListPending retrieves payments awaiting review
func (s *PaymentService) ListPending(ctx context.Context, limit, offset int) ([]*payment.Payment, int64, error) {
	return s.repo.ListByStatus(ctx, payment.StatusPending, limit, offset)
}

// Review approves or rejects a pending payment. Approval upgrades the
// paying user to premium for the configured period.
func (s *PaymentService) Review(ctx context.Context, reviewerID, paymentID string, approve bool) (*payment.Payment, error) {
	p, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if p.Status != payment.StatusPending {
		return nil, errors.Conflict("Payment has already been reviewed")
	}

	now := time.Now().UTC()
	p.ReviewedBy = reviewerID
	p.ReviewedAt = &now

	if approve {
		p.Status = payment.StatusApproved
		expires := now.AddDate(0, 0, s.premiumDays)
		if err := s.users.UpgradePlan(ctx, p.UserID, plan.Premium, &expires); err != nil {
			return nil, err
		}
	} else {
		p.Status = payment.StatusRejected
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"payment_id": p.ID,
		"user_id":    p.UserID,
		"status":     p.Status,
	}).Info("Payment reviewed")

	return p, nil
}
