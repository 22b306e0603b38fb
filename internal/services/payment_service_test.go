package services

import (
	"context"
	"testing"
	"time"

	"github.com/aurybot/aury-backend/internal/domain/payment"
	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/testutil"
)

const premiumDays = 30

func newPaymentFixture(t *testing.T) (payment.Service, *testutil.MockUserRepository, string) {
	t.Helper()

	log := logger.New(logger.Config{Level: "error", Format: "json"})
	users := testutil.NewMockUserRepository()
	userService := NewUserService(users, "", log)

	ctx := context.Background()
	u, err := userService.Register(ctx, "ana@example.com", "secreto123", "Ana")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	payments := testutil.NewMockPaymentRepository()
	service := NewPaymentService(payments, userService, premiumDays, log)
	return service, users, u.ID
}

func TestPaymentService_Notify(t *testing.T) {
	service, _, userID := newPaymentFixture(t)
	ctx := context.Background()

	p, err := service.Notify(ctx, userID, "NQ-12345", 15000)
	if err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if p.Status != payment.StatusPending {
		t.Errorf("Notify() status = %v, want pending", p.Status)
	}
	if p.UserID != userID {
		t.Errorf("Notify() user = %v, want %v", p.UserID, userID)
	}

	// Reference is mandatory
	if _, err := service.Notify(ctx, userID, "   ", 15000); err == nil {
		t.Error("Notify() accepted a blank reference")
	}
}

func TestPaymentService_Review_Approve(t *testing.T) {
	service, users, userID := newPaymentFixture(t)
	ctx := context.Background()

	p, _ := service.Notify(ctx, userID, "NQ-12345", 15000)

	reviewed, err := service.Review(ctx, "admin-1", p.ID, true)
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}

	if reviewed.Status != payment.StatusApproved {
		t.Errorf("Review() status = %v, want approved", reviewed.Status)
	}
	if reviewed.ReviewedBy != "admin-1" || reviewed.ReviewedAt == nil {
		t.Errorf("Review() audit fields = %v / %v", reviewed.ReviewedBy, reviewed.ReviewedAt)
	}

	u := users.Users[userID]
	if u.Plan != plan.Premium {
		t.Errorf("payer plan = %v, want premium", u.Plan)
	}
	if u.PremiumExpiresAt == nil {
		t.Fatal("payer has no premium expiry")
	}
	wantExpiry := time.Now().UTC().AddDate(0, 0, premiumDays)
	if diff := u.PremiumExpiresAt.Sub(wantExpiry); diff < -time.Minute || diff > time.Minute {
		t.Errorf("premium expiry = %v, want about %v", u.PremiumExpiresAt, wantExpiry)
	}
}

func TestPaymentService_Review_Reject(t *testing.T) {
	service, users, userID := newPaymentFixture(t)
	ctx := context.Background()

	p, _ := service.Notify(ctx, userID, "NQ-12345", 15000)

	reviewed, err := service.Review(ctx, "admin-1", p.ID, false)
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}
	if reviewed.Status != payment.StatusRejected {
		t.Errorf("Review() status = %v, want rejected", reviewed.Status)
	}
	if users.Users[userID].Plan != plan.Free {
		t.Errorf("rejected payer plan = %v, want free", users.Users[userID].Plan)
	}
}

func TestPaymentService_Review_Twice(t *testing.T) {
	service, _, userID := newPaymentFixture(t)
	ctx := context.Background()

	p, _ := service.Notify(ctx, userID, "NQ-12345", 15000)
	if _, err := service.Review(ctx, "admin-1", p.ID, true); err != nil {
		t.Fatalf("Review() error = %v", err)
	}

	_, err := service.Review(ctx, "admin-1", p.ID, false)
	appErr := errors.GetAppError(err)
	if appErr.Code != errors.ErrCodeConflict {
		t.Errorf("second Review() error code = %v, want conflict", appErr.Code)
	}
}

func TestPaymentService_ListPending(t *testing.T) {
	service, _, userID := newPaymentFixture(t)
	ctx := context.Background()

	p1, _ := service.Notify(ctx, userID, "NQ-1", 15000)
	_, _ = service.Notify(ctx, userID, "NQ-2", 15000)
	if _, err := service.Review(ctx, "admin-1", p1.ID, true); err != nil {
		t.Fatalf("Review() error = %v", err)
	}

	pending, total, err := service.ListPending(ctx, 50, 0)
	if err != nil {
		t.Fatalf("ListPending() error = %v", err)
	}
	if total != 1 || len(pending) != 1 {
		t.Fatalf("ListPending() = %d items (total %d), want 1", len(pending), total)
	}
	if pending[0].Reference != "NQ-2" {
		t.Errorf("ListPending() reference = %v, want NQ-2", pending[0].Reference)
	}
}
