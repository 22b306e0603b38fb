package sqlite_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/aurybot/aury-backend/internal/domain/note"
	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/domain/user"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/repository/sqlite"
	"github.com/aurybot/aury-backend/internal/testutil"
)

func seedUser(t *testing.T, repo user.Repository) *user.User {
	t.Helper()
	u := &user.User{
		Email:        "ana@example.com",
		Name:         "Ana",
		PasswordHash: "x",
		Plan:         plan.Free,
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestNoteRepository_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := sqlite.NewUserRepository(db)
	notes := sqlite.NewNoteRepository(db)
	ctx := context.Background()

	u := seedUser(t, users)

	n := &note.Note{
		UserID:   u.ID,
		Title:    "Lista del mercado",
		Content:  "leche, pan, café",
		Category: "personal",
		Tags:     []string{"compras", "casa"},
	}
	if err := notes.Create(ctx, n); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if n.ID == "" {
		t.Fatal("Create() did not assign an ID")
	}

	got, err := notes.GetByID(ctx, u.ID, n.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != n.Title || got.Content != n.Content || got.Category != n.Category {
		t.Errorf("GetByID() = %+v, want %+v", got, n)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "compras" {
		t.Errorf("GetByID() tags = %v", got.Tags)
	}

	// Owner scoping
	if _, err := notes.GetByID(ctx, "someone-else", n.ID); !errors.IsNotFound(err) {
		t.Errorf("GetByID() by non-owner error = %v, want not found", err)
	}

	// Category filter
	listed, total, err := notes.List(ctx, u.ID, note.Filter{Category: "personal"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 || len(listed) != 1 {
		t.Fatalf("List() = %d notes (total %d), want 1", len(listed), total)
	}

	// Search filter
	_, total, err = notes.List(ctx, u.ID, note.Filter{Search: "café"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 {
		t.Errorf("search total = %d, want 1", total)
	}

	if err := notes.Delete(ctx, u.ID, n.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := notes.Delete(ctx, u.ID, n.ID); !errors.IsNotFound(err) {
		t.Errorf("second Delete() error = %v, want not found", err)
	}
}

func TestUserRepository_ReserveDailyUsage(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := sqlite.NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, users)

	// Two units fit, the third hits the limit
	for i := 0; i < 2; i++ {
		usage, err := users.ReserveDailyUsage(ctx, u.ID, user.UsageAIAnalysis, 2, "2026-09-01")
		if err != nil {
			t.Fatalf("ReserveDailyUsage() #%d error = %v", i+1, err)
		}
		if usage.AIAnalysisCount != i+1 {
			t.Errorf("usage after #%d = %d, want %d", i+1, usage.AIAnalysisCount, i+1)
		}
	}

	_, err := users.ReserveDailyUsage(ctx, u.ID, user.UsageAIAnalysis, 2, "2026-09-01")
	if !stderrors.Is(err, user.ErrDailyLimitReached) {
		t.Fatalf("ReserveDailyUsage() at limit error = %v, want ErrDailyLimitReached", err)
	}

	// A new day resets the counters
	usage, err := users.ReserveDailyUsage(ctx, u.ID, user.UsageAIAnalysis, 2, "2026-09-02")
	if err != nil {
		t.Fatalf("ReserveDailyUsage() next day error = %v", err)
	}
	if usage.AIAnalysisCount != 1 || usage.Date != "2026-09-02" {
		t.Errorf("usage after rollover = %+v", usage)
	}

	// Unmetered counters never deny
	for i := 0; i < 5; i++ {
		if _, err := users.ReserveDailyUsage(ctx, u.ID, user.UsageChatUploads, -1, "2026-09-02"); err != nil {
			t.Fatalf("unmetered ReserveDailyUsage() error = %v", err)
		}
	}
}

func TestUserRepository_DeviceIDsRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := sqlite.NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, users)
	if len(u.DeviceIDs) != 0 {
		t.Fatalf("fresh user devices = %v, want none", u.DeviceIDs)
	}

	u.DeviceIDs = []string{"d1", "d2"}
	if err := users.Update(ctx, u); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(got.DeviceIDs) != 2 || got.DeviceIDs[0] != "d1" || got.DeviceIDs[1] != "d2" {
		t.Errorf("GetByID() devices = %v, want [d1 d2]", got.DeviceIDs)
	}

	byEmail, err := users.GetByEmail(ctx, u.Email)
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if len(byEmail.DeviceIDs) != 2 {
		t.Errorf("GetByEmail() devices = %v, want 2", byEmail.DeviceIDs)
	}
}
