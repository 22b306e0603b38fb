package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aurybot/aury-backend/internal/api/middleware"
	"github.com/aurybot/aury-backend/internal/auth"
	"github.com/aurybot/aury-backend/internal/config"
	"github.com/aurybot/aury-backend/internal/domain/payment"
	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/domain/user"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/validator"
	"github.com/aurybot/aury-backend/internal/services"
	"github.com/aurybot/aury-backend/internal/testutil"
)

const billingTestSecret = "test-secret"

// newBillingRouter wires the billing routes the way the real router
// does: auth middleware on everything, admin allowlist on the review
// endpoints.
func newBillingRouter(t *testing.T) (chi.Router, *testutil.MockUserRepository) {
	t.Helper()

	log := logger.New(logger.Config{Level: "error", Format: "json"})
	users := testutil.NewMockUserRepository()
	userService := services.NewUserService(users, "", log)
	payments := testutil.NewMockPaymentRepository()
	paymentService := services.NewPaymentService(payments, userService, 30, log)

	h := NewBillingHandler(paymentService, config.BillingConfig{}, log, validator.New())

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(billingTestSecret))

		r.Post("/api/billing/notify", h.NotifyPayment)
		r.Get("/api/billing/payments", h.ListPayments)

		r.Route("/api/admin/payments", func(r chi.Router) {
			r.Use(middleware.RequireAdmin([]string{"admin@example.com"}))
			r.Get("/", h.ListPendingPayments)
			r.Post("/{id}/review", h.ReviewPayment)
		})
	})
	return r, users
}

func bearerFor(t *testing.T, userID, email string) string {
	t.Helper()
	tokens, err := auth.MintTokens(userID, email, billingTestSecret, time.Hour, time.Hour)
	if err != nil {
		t.Fatalf("mint tokens: %v", err)
	}
	return "Bearer " + tokens.AccessToken
}

func TestBillingHandler_ReviewRequiresAdmin(t *testing.T) {
	router, users := newBillingRouter(t)
	ctx := context.Background()

	seed := []struct{ id, email string }{
		{"u1", "ana@example.com"},
		{"adm", "admin@example.com"},
	}
	for _, s := range seed {
		if err := users.Create(ctx, &user.User{ID: s.id, Email: s.email, Plan: plan.Free}); err != nil {
			t.Fatalf("seed user %s: %v", s.id, err)
		}
	}

	anaToken := bearerFor(t, "u1", "ana@example.com")
	adminToken := bearerFor(t, "adm", "admin@example.com")

	// Ana reports a transfer
	req := httptest.NewRequest(http.MethodPost, "/api/billing/notify",
		bytes.NewBufferString(`{"reference":"NQ-777","amount":20000}`))
	req.Header.Set("Authorization", anaToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("notify status = %d, want 201\nbody: %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	var p payment.Payment
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatalf("decode payment: %v", err)
	}

	// She cannot approve it herself
	req = httptest.NewRequest(http.MethodPost, "/api/admin/payments/"+p.ID+"/review",
		bytes.NewBufferString(`{"approve":true}`))
	req.Header.Set("Authorization", anaToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("self-review status = %d, want 403\nbody: %s", rec.Code, rec.Body.String())
	}
	if users.Users["u1"].Plan != plan.Free {
		t.Fatalf("payer plan after rejected self-review = %v, want free", users.Users["u1"].Plan)
	}

	// Nor list the pending queue
	req = httptest.NewRequest(http.MethodGet, "/api/admin/payments", nil)
	req.Header.Set("Authorization", anaToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("pending list status = %d, want 403", rec.Code)
	}

	// An allowlisted admin can approve, which upgrades the payer
	req = httptest.NewRequest(http.MethodPost, "/api/admin/payments/"+p.ID+"/review",
		bytes.NewBufferString(`{"approve":true}`))
	req.Header.Set("Authorization", adminToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin review status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}
	if users.Users["u1"].Plan != plan.Premium {
		t.Errorf("payer plan after approval = %v, want premium", users.Users["u1"].Plan)
	}
}
