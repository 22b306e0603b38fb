package services

import (
	"context"
	"time"

	"github.com/aurybot/aury-backend/internal/domain/habit"
	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
)

const dayFormat = "2006-01-02"

// HabitService implements habit.Service
type HabitService struct {
	repo   habit.Repository
	quota  *QuotaService
	logger *logger.Logger
}

// NewHabitService creates a new habit service
func NewHabitService(repo habit.Repository, quota *QuotaService, log *logger.Logger) habit.Service {
	return &HabitService{
		repo:   repo,
		quota:  quota,
		logger: log,
	}
}

// Create creates a habit for a user, subject to plan limits
func (s *HabitService) Create(ctx context.Context, userID string, h *habit.Habit) (*habit.Habit, error) {
	if err := s.quota.EnsureCanCreate(ctx, userID, plan.CounterHabits); err != nil {
		return nil, err
	}

	h.UserID = userID
	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create habit")
		return nil, err
	}

	return h, nil
}

// GetByID retrieves a habit owned by the given user
func (s *HabitService) GetByID(ctx context.Context, userID, id string) (*habit.Habit, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List retrieves habits of a user
func (s *HabitService) List(ctx context.Context, userID string, limit, offset int) ([]*habit.Habit, int64, error) {
	return s.repo.List(ctx, userID, limit, offset)
}

// Update applies a partial update to a habit
func (s *HabitService) Update(ctx context.Context, userID, id string, updates map[string]interface{}) (*habit.Habit, error) {
	h, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if v, ok := updates["name"].(string); ok {
		h.Name = v
	}
	if v, ok := updates["description"].(string); ok {
		h.Description = v
	}
	if v, ok := updates["frequency"].(string); ok {
		h.Frequency = v
	}

	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// Delete deletes a habit owned by the given user
func (s *HabitService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

// Complete marks the habit done for the day of now. Completing a habit
// twice on the same day is a no-op. A completion on the day after the
// last one grows the streak; any gap resets it to 1.
func (s *HabitService) Complete(ctx context.Context, userID, id string, now time.Time) (*habit.Habit, error) {
	h, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	today := now.UTC().Format(dayFormat)
	yesterday := now.UTC().AddDate(0, 0, -1).Format(dayFormat)

	var last string
	if len(h.Completions) > 0 {
		last = h.Completions[len(h.Completions)-1]
	}

	if last == today {
		return h, nil
	}

	if last == yesterday {
		h.Streak++
	} else {
		h.Streak = 1
	}
	if h.Streak > h.BestStreak {
		h.BestStreak = h.Streak
	}
	h.Completions = append(h.Completions, today)

	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}

	return h, nil
}
