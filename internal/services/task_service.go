package services

import (
	"context"
	"time"

	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/domain/task"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
)

// TaskService implements task.Service
type TaskService struct {
	repo   task.Repository
	quota  *QuotaService
	logger *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(repo task.Repository, quota *QuotaService, log *logger.Logger) task.Service {
	return &TaskService{
		repo:   repo,
		quota:  quota,
		logger: log,
	}
}

// Create creates a task for a user, subject to plan limits
func (s *TaskService) Create(ctx context.Context, userID string, t *task.Task) (*task.Task, error) {
	if err := s.quota.EnsureCanCreate(ctx, userID, plan.CounterTasks); err != nil {
		return nil, err
	}

	t.UserID = userID
	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create task")
		return nil, err
	}

	return t, nil
}

// GetByID retrieves a task owned by the given user
func (s *TaskService) GetByID(ctx context.Context, userID, id string) (*task.Task, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List retrieves tasks of a user matching the filter
func (s *TaskService) List(ctx context.Context, userID string, filter task.Filter) ([]*task.Task, int64, error) {
	return s.repo.List(ctx, userID, filter)
}

// Update applies a partial update to a task. Moving a task into the
// completed status stamps its completion time; moving it out clears it.
func (s *TaskService) Update(ctx context.Context, userID, id string, updates map[string]interface{}) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if v, ok := updates["title"].(string); ok {
		t.Title = v
	}
	if v, ok := updates["description"].(string); ok {
		t.Description = v
	}
	if v, ok := updates["priority"].(string); ok {
		t.Priority = v
	}
	if v, ok := updates["category"].(string); ok {
		t.Category = v
	}
	if v, ok := updates["due_date"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			t.DueDate = &parsed
		}
	}
	if v, ok := updates["auto_scheduled"].(bool); ok {
		t.AutoScheduled = v
	}
	if v, ok := updates["status"].(string); ok && v != t.Status {
		t.Status = v
		if v == task.StatusCompleted {
			now := time.Now().UTC()
			t.CompletedAt = &now
		} else {
			t.CompletedAt = nil
		}
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete deletes a task owned by the given user
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
