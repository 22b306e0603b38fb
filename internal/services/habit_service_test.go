package services

import (
	"context"
	"testing"
	"time"

	"github.com/aurybot/aury-backend/internal/domain/habit"
	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/domain/user"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/testutil"
)

func newHabitService(t *testing.T) (habit.Service, *testutil.MockHabitRepository) {
	t.Helper()

	users := testutil.NewMockUserRepository()
	if err := users.Create(context.Background(), &user.User{
		ID:    "u1",
		Email: "ana@example.com",
		Plan:  plan.Free,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	habits := testutil.NewMockHabitRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	quota := NewQuotaService(users, testutil.NewMockNoteRepository(), testutil.NewMockTaskRepository(), habits, testutil.NewMockProjectRepository(), log)

	return NewHabitService(habits, quota, log), habits
}

func TestHabitService_Complete_Streaks(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("bad day %q: %v", s, err)
		}
		return d
	}

	tests := []struct {
		name           string
		completions    []string
		streak         int
		best           int
		completeAt     time.Time
		wantStreak     int
		wantBest       int
		wantCompletion bool
	}{
		{
			name:           "first completion starts a streak",
			completeAt:     day("2026-09-01"),
			wantStreak:     1,
			wantBest:       1,
			wantCompletion: true,
		},
		{
			name:           "consecutive day grows the streak",
			completions:    []string{"2026-08-31"},
			streak:         1,
			best:           1,
			completeAt:     day("2026-09-01"),
			wantStreak:     2,
			wantBest:       2,
			wantCompletion: true,
		},
		{
			name:           "gap resets the streak",
			completions:    []string{"2026-08-25"},
			streak:         4,
			best:           4,
			completeAt:     day("2026-09-01"),
			wantStreak:     1,
			wantBest:       4,
			wantCompletion: true,
		},
		{
			name:           "same day is a no-op",
			completions:    []string{"2026-09-01"},
			streak:         3,
			best:           5,
			completeAt:     day("2026-09-01"),
			wantStreak:     3,
			wantBest:       5,
			wantCompletion: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, habits := newHabitService(t)
			ctx := context.Background()

			h := &habit.Habit{
				ID:          "h1",
				UserID:      "u1",
				Name:        "leer",
				Frequency:   habit.FrequencyDaily,
				Streak:      tt.streak,
				BestStreak:  tt.best,
				Completions: tt.completions,
			}
			habits.Habits[h.ID] = h

			before := len(h.Completions)
			got, err := svc.Complete(ctx, "u1", "h1", tt.completeAt)
			if err != nil {
				t.Fatalf("Complete() error = %v", err)
			}

			if got.Streak != tt.wantStreak {
				t.Errorf("streak = %d, want %d", got.Streak, tt.wantStreak)
			}
			if got.BestStreak != tt.wantBest {
				t.Errorf("best streak = %d, want %d", got.BestStreak, tt.wantBest)
			}

			grew := len(got.Completions) == before+1
			if grew != tt.wantCompletion {
				t.Errorf("completions grew = %v, want %v", grew, tt.wantCompletion)
			}
		})
	}
}

func TestHabitService_Create_PlanLimit(t *testing.T) {
	svc, habits := newHabitService(t)
	ctx := context.Background()
	habitCap := plan.ForPlan(plan.Free).MaxHabits

	for i := 0; i < habitCap; i++ {
		if _, err := svc.Create(ctx, "u1", &habit.Habit{Name: "h", Frequency: habit.FrequencyDaily}); err != nil {
			t.Fatalf("Create() #%d error = %v", i+1, err)
		}
	}

	_, err := svc.Create(ctx, "u1", &habit.Habit{Name: "one too many"})
	if !errors.IsQuotaExceeded(err) {
		t.Errorf("Create() past cap error = %v, want quota exceeded", err)
	}

	if len(habits.Habits) != habitCap {
		t.Errorf("stored habits = %d, want %d", len(habits.Habits), habitCap)
	}
}

func TestHabitService_Complete_OtherUsersHabit(t *testing.T) {
	svc, habits := newHabitService(t)
	habits.Habits["h1"] = &habit.Habit{ID: "h1", UserID: "someone-else", Name: "leer"}

	_, err := svc.Complete(context.Background(), "u1", "h1", time.Now())
	if !errors.IsNotFound(err) {
		t.Errorf("Complete() on foreign habit error = %v, want not found", err)
	}
}
