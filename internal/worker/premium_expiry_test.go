package worker

import (
	"context"
	"testing"
	"time"

	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/domain/user"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/services"
	"github.com/aurybot/aury-backend/internal/testutil"
)

func TestPremiumExpiry_Sweep(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	users := testutil.NewMockUserRepository()
	userService := services.NewUserService(users, "", log)

	ctx := context.Background()
	now := time.Now().UTC()
	lapsed := now.Add(-24 * time.Hour)
	current := now.Add(24 * time.Hour)

	seed := []*user.User{
		{ID: "u1", Email: "lapsed@example.com", Plan: plan.Premium, PremiumExpiresAt: &lapsed},
		{ID: "u2", Email: "current@example.com", Plan: plan.Premium, PremiumExpiresAt: &current},
		{ID: "u3", Email: "free@example.com", Plan: plan.Free},
	}
	for _, u := range seed {
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("seed user %s: %v", u.ID, err)
		}
	}

	w := NewPremiumExpiry(users, userService, log)
	w.sweep(ctx)

	if got := users.Users["u1"]; got.Plan != plan.Free || got.PremiumExpiresAt != nil {
		t.Errorf("lapsed user = plan %v, expiry %v; want free with no expiry", got.Plan, got.PremiumExpiresAt)
	}
	if got := users.Users["u2"]; got.Plan != plan.Premium {
		t.Errorf("current premium user downgraded to %v", got.Plan)
	}
	if got := users.Users["u3"]; got.Plan != plan.Free {
		t.Errorf("free user plan changed to %v", got.Plan)
	}
}
