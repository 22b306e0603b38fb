package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/aurybot/aury-backend/internal/domain/habit"
	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/domain/user"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/testutil"
)

type quotaFixture struct {
	users   *testutil.MockUserRepository
	notes   *testutil.MockNoteRepository
	tasks   *testutil.MockTaskRepository
	habits  *testutil.MockHabitRepository
	service *QuotaService
}

func newQuotaFixture(t *testing.T, planName string) *quotaFixture {
	t.Helper()

	users := testutil.NewMockUserRepository()
	if err := users.Create(context.Background(), &user.User{
		ID:    "u1",
		Email: "ana@example.com",
		Plan:  planName,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	notes := testutil.NewMockNoteRepository()
	tasks := testutil.NewMockTaskRepository()
	habits := testutil.NewMockHabitRepository()
	projects := testutil.NewMockProjectRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	return &quotaFixture{
		users:   users,
		notes:   notes,
		tasks:   tasks,
		habits:  habits,
		service: NewQuotaService(users, notes, tasks, habits, projects, log),
	}
}

func TestQuotaService_EnsureCanCreate(t *testing.T) {
	ctx := context.Background()
	freeHabitCap := plan.ForPlan(plan.Free).MaxHabits

	t.Run("under the cap", func(t *testing.T) {
		f := newQuotaFixture(t, plan.Free)
		if err := f.service.EnsureCanCreate(ctx, "u1", plan.CounterHabits); err != nil {
			t.Errorf("EnsureCanCreate() error = %v", err)
		}
	})

	t.Run("at the cap", func(t *testing.T) {
		f := newQuotaFixture(t, plan.Free)
		for i := 0; i < freeHabitCap; i++ {
			f.habits.Habits[fmt.Sprintf("h%d", i)] = &habit.Habit{
				ID:     fmt.Sprintf("h%d", i),
				UserID: "u1",
			}
		}

		err := f.service.EnsureCanCreate(ctx, "u1", plan.CounterHabits)
		if !errors.IsQuotaExceeded(err) {
			t.Errorf("EnsureCanCreate() error = %v, want quota exceeded", err)
		}
	})

	t.Run("premium is unlimited", func(t *testing.T) {
		f := newQuotaFixture(t, plan.Premium)
		for i := 0; i < freeHabitCap*3; i++ {
			f.habits.Habits[fmt.Sprintf("h%d", i)] = &habit.Habit{
				ID:     fmt.Sprintf("h%d", i),
				UserID: "u1",
			}
		}

		if err := f.service.EnsureCanCreate(ctx, "u1", plan.CounterHabits); err != nil {
			t.Errorf("EnsureCanCreate() error = %v", err)
		}
	})

	t.Run("other users do not count", func(t *testing.T) {
		f := newQuotaFixture(t, plan.Free)
		for i := 0; i < freeHabitCap; i++ {
			f.habits.Habits[fmt.Sprintf("h%d", i)] = &habit.Habit{
				ID:     fmt.Sprintf("h%d", i),
				UserID: "someone-else",
			}
		}

		if err := f.service.EnsureCanCreate(ctx, "u1", plan.CounterHabits); err != nil {
			t.Errorf("EnsureCanCreate() error = %v", err)
		}
	})
}

func TestQuotaService_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("exhausts the daily budget", func(t *testing.T) {
		f := newQuotaFixture(t, plan.Free)
		budget := plan.ForPlan(plan.Free).AIAnalysisPerDay

		for i := 0; i < budget; i++ {
			if err := f.service.Reserve(ctx, "u1", plan.CounterAIAnalysis); err != nil {
				t.Fatalf("Reserve() #%d error = %v", i+1, err)
			}
		}

		err := f.service.Reserve(ctx, "u1", plan.CounterAIAnalysis)
		if !errors.IsQuotaExceeded(err) {
			t.Errorf("Reserve() past budget error = %v, want quota exceeded", err)
		}
	})

	t.Run("stale counters roll over", func(t *testing.T) {
		f := newQuotaFixture(t, plan.Free)
		f.users.Users["u1"].DailyUsage = user.DailyUsage{
			Date:            "2020-01-01",
			AIAnalysisCount: 99,
		}

		if err := f.service.Reserve(ctx, "u1", plan.CounterAIAnalysis); err != nil {
			t.Errorf("Reserve() after date change error = %v", err)
		}
		if got := f.users.Users["u1"].DailyUsage.AIAnalysisCount; got != 1 {
			t.Errorf("usage after rollover = %d, want 1", got)
		}
	})

	t.Run("premium never runs out", func(t *testing.T) {
		f := newQuotaFixture(t, plan.Premium)
		for i := 0; i < 20; i++ {
			if err := f.service.Reserve(ctx, "u1", plan.CounterChatUploads); err != nil {
				t.Fatalf("Reserve() #%d error = %v", i+1, err)
			}
		}
	})

	t.Run("rejects non-daily counters", func(t *testing.T) {
		f := newQuotaFixture(t, plan.Free)
		if err := f.service.Reserve(ctx, "u1", plan.CounterNotes); err == nil {
			t.Error("Reserve() accepted a total counter")
		}
	})
}

func TestQuotaService_Allowed(t *testing.T) {
	ctx := context.Background()

	f := newQuotaFixture(t, plan.Free)
	ok, err := f.service.Allowed(ctx, "u1", plan.CounterAIAnalysis)
	if err != nil {
		t.Fatalf("Allowed() error = %v", err)
	}
	if !ok {
		t.Error("Allowed() = false for fresh user")
	}

	// Consume the whole budget, then the same check must deny
	budget := plan.ForPlan(plan.Free).AIAnalysisPerDay
	for i := 0; i < budget; i++ {
		if err := f.service.Increment(ctx, "u1", plan.CounterAIAnalysis); err != nil {
			t.Fatalf("Increment() error = %v", err)
		}
	}

	ok, err = f.service.Allowed(ctx, "u1", plan.CounterAIAnalysis)
	if err != nil {
		t.Fatalf("Allowed() error = %v", err)
	}
	if ok {
		t.Error("Allowed() = true with budget spent")
	}
}
