package services

import (
	"context"

	"github.com/aurybot/aury-backend/internal/domain/event"
	"github.com/aurybot/aury-backend/internal/domain/habit"
	"github.com/aurybot/aury-backend/internal/domain/integration"
	"github.com/aurybot/aury-backend/internal/domain/note"
	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/domain/project"
	"github.com/aurybot/aury-backend/internal/domain/task"
	"github.com/aurybot/aury-backend/internal/domain/user"
)

// Dashboard aggregates a user's account state for the home screen
type Dashboard struct {
	Plan           string          `json:"plan"`
	Limits         plan.Limits     `json:"limits"`
	DailyUsage     user.DailyUsage `json:"daily_usage"`
	Notes          int64           `json:"notes"`
	Tasks          int64           `json:"tasks"`
	PendingTasks   int64           `json:"pending_tasks"`
	CompletedTasks int64           `json:"completed_tasks"`
	Events         int64           `json:"events"`
	Habits         int64           `json:"habits"`
	Projects       int64           `json:"projects"`
	Integrations   int             `json:"integrations"`
}

// DashboardService builds account overviews
type DashboardService struct {
	users        user.Repository
	notes        note.Repository
	tasks        task.Repository
	events       event.Repository
	habits       habit.Repository
	projects     project.Repository
	integrations integration.Repository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(users user.Repository, notes note.Repository, tasks task.Repository, events event.Repository, habits habit.Repository, projects project.Repository, integrations integration.Repository) *DashboardService {
	return &DashboardService{
		users:        users,
		notes:        notes,
		tasks:        tasks,
		events:       events,
		habits:       habits,
		projects:     projects,
		integrations: integrations,
	}
}

// Overview builds the dashboard for a user
func (s *DashboardService) Overview(ctx context.Context, userID string) (*Dashboard, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Plan:       u.Plan,
		Limits:     plan.ForPlan(u.Plan),
		DailyUsage: u.DailyUsage,
	}

	if d.Notes, err = s.notes.CountByUser(ctx, userID); err != nil {
		return nil, err
	}
	if d.Tasks, err = s.tasks.CountByUser(ctx, userID); err != nil {
		return nil, err
	}
	if d.PendingTasks, err = s.tasks.CountByStatus(ctx, userID, task.StatusPending); err != nil {
		return nil, err
	}
	if d.CompletedTasks, err = s.tasks.CountByStatus(ctx, userID, task.StatusCompleted); err != nil {
		return nil, err
	}
	if d.Events, err = s.events.CountByUser(ctx, userID); err != nil {
		return nil, err
	}
	if d.Habits, err = s.habits.CountByUser(ctx, userID); err != nil {
		return nil, err
	}
	if d.Projects, err = s.projects.CountByUser(ctx, userID); err != nil {
		return nil, err
	}

	list, err := s.integrations.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, i := range list {
		if i.Status == integration.StatusConnected {
			d.Integrations++
		}
	}

	return d, nil
}
