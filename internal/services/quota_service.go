package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/aurybot/aury-backend/internal/domain/habit"
	"github.com/aurybot/aury-backend/internal/domain/note"
	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/domain/project"
	"github.com/aurybot/aury-backend/internal/domain/task"
	"github.com/aurybot/aury-backend/internal/domain/user"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/metrics"
)

// QuotaService enforces the plan limit table
type QuotaService struct {
	users    user.Repository
	notes    note.Repository
	tasks    task.Repository
	habits   habit.Repository
	projects project.Repository
	logger   *logger.Logger
}

// NewQuotaService creates a new quota service
func NewQuotaService(users user.Repository, notes note.Repository, tasks task.Repository, habits habit.Repository, projects project.Repository, log *logger.Logger) *QuotaService {
	return &QuotaService{
		users:    users,
		notes:    notes,
		tasks:    tasks,
		habits:   habits,
		projects: projects,
		logger:   log,
	}
}

// Allowed reports whether the user may use the counter right now.
// For daily counters a stale date resets the counters as a side effect
// of the check. Allowed does not consume quota; pair it with Increment,
// or use Reserve for the atomic path.
func (s *QuotaService) Allowed(ctx context.Context, userID string, counter plan.Counter) (bool, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}

	limit := plan.ForPlan(u.Plan).Cap(counter)
	if limit == plan.Unlimited {
		return true, nil
	}

	if counter.Daily() {
		today := user.UsageDate(time.Now())
		if u.DailyUsage.Date != today {
			u.DailyUsage = user.DailyUsage{Date: today}
			if err := s.users.SaveDailyUsage(ctx, userID, u.DailyUsage); err != nil {
				return false, err
			}
			return true, nil
		}
		switch counter {
		case plan.CounterAIAnalysis:
			return u.DailyUsage.AIAnalysisCount < limit, nil
		case plan.CounterChatUploads:
			return u.DailyUsage.ChatUploadsCount < limit, nil
		}
	}

	count, err := s.totalCount(ctx, userID, counter)
	if err != nil {
		return false, err
	}
	return count < int64(limit), nil
}

// Increment records one use of a daily counter. It does not check
// quota; callers are expected to have called Allowed first.
func (s *QuotaService) Increment(ctx context.Context, userID string, counter plan.Counter) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	today := user.UsageDate(time.Now())
	if u.DailyUsage.Date != today {
		u.DailyUsage = user.DailyUsage{Date: today}
	}

	switch counter {
	case plan.CounterAIAnalysis:
		u.DailyUsage.AIAnalysisCount++
	case plan.CounterChatUploads:
		u.DailyUsage.ChatUploadsCount++
	default:
		return errors.BadRequest("Counter is not a daily counter")
	}

	return s.users.SaveDailyUsage(ctx, userID, u.DailyUsage)
}

// Reserve consumes one unit of a daily counter, or fails with a quota
// error if the counter is at its limit. The date roll, check and
// increment run atomically in the store.
func (s *QuotaService) Reserve(ctx context.Context, userID string, counter plan.Counter) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	limit := plan.ForPlan(u.Plan).Cap(counter)

	var uc user.UsageCounter
	switch counter {
	case plan.CounterAIAnalysis:
		uc = user.UsageAIAnalysis
	case plan.CounterChatUploads:
		uc = user.UsageChatUploads
	default:
		return errors.BadRequest("Counter is not a daily counter")
	}

	_, err = s.users.ReserveDailyUsage(ctx, userID, uc, limit, user.UsageDate(time.Now()))
	if stderrors.Is(err, user.ErrDailyLimitReached) {
		metrics.RecordQuotaDenial(string(counter), u.Plan)
		s.logger.WithFields(map[string]interface{}{
			"user_id": userID,
			"counter": string(counter),
			"plan":    u.Plan,
		}).Info("Daily quota exhausted")
		return errors.QuotaExceeded(string(counter), u.Plan)
	}
	return err
}

// EnsureCanCreate fails with a quota error if creating one more of the
// counted resource would exceed the user's plan limit
func (s *QuotaService) EnsureCanCreate(ctx context.Context, userID string, counter plan.Counter) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	limit := plan.ForPlan(u.Plan).Cap(counter)
	if limit == plan.Unlimited {
		return nil
	}

	count, err := s.totalCount(ctx, userID, counter)
	if err != nil {
		return err
	}
	if count >= int64(limit) {
		metrics.RecordQuotaDenial(string(counter), u.Plan)
		return errors.QuotaExceeded(string(counter), u.Plan)
	}

	return nil
}

func (s *QuotaService) totalCount(ctx context.Context, userID string, counter plan.Counter) (int64, error) {
	switch counter {
	case plan.CounterNotes:
		return s.notes.CountByUser(ctx, userID)
	case plan.CounterTasks:
		return s.tasks.CountByUser(ctx, userID)
	case plan.CounterHabits:
		return s.habits.CountByUser(ctx, userID)
	case plan.CounterProjects:
		return s.projects.CountByUser(ctx, userID)
	default:
		return 0, errors.BadRequest("Counter is not a total counter")
	}
}
