package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aurybot/aury-backend/internal/domain/task"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
)

const taskColumns = `id, user_id, title, description, status, priority, category,
	due_date, auto_scheduled, completed_at, created_at, updated_at`

// TaskRepository implements task.Repository
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB) task.Repository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	defer timeQuery("insert", "tasks")()
	now := time.Now().UTC()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = task.StatusPending
	}
	if t.Priority == "" {
		t.Priority = task.PriorityMedium
	}
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `
		INSERT INTO tasks (id, user_id, title, description, status, priority, category,
			due_date, auto_scheduled, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Title, t.Description, t.Status, t.Priority, t.Category,
		nullUnix(t.DueDate), t.AutoScheduled, nullUnix(t.CompletedAt),
		now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create task", err)
	}

	return nil
}

func scanTask(scan func(dest ...interface{}) error) (*task.Task, error) {
	var t task.Task
	var dueDate, completedAt sql.NullInt64
	var createdAt, updatedAt int64

	err := scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.Category,
		&dueDate, &t.AutoScheduled, &completedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.DueDate = unixPtr(dueDate)
	t.CompletedAt = unixPtr(completedAt)
	t.CreatedAt = time.Unix(createdAt, 0).UTC()
	t.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return &t, nil
}

// GetByID retrieves a task owned by the given user
func (r *TaskRepository) GetByID(ctx context.Context, userID, id string) (*task.Task, error) {
	defer timeQuery("select", "tasks")()
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ? AND id = ?`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, userID, id).Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Task")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get task", err)
	}

	return t, nil
}

// Update updates a task
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	defer timeQuery("update", "tasks")()
	t.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, category = ?,
			due_date = ?, auto_scheduled = ?, completed_at = ?, updated_at = ?
		WHERE user_id = ? AND id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		t.Title, t.Description, t.Status, t.Priority, t.Category,
		nullUnix(t.DueDate), t.AutoScheduled, nullUnix(t.CompletedAt), t.UpdatedAt.Unix(),
		t.UserID, t.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update task", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Task")
	}

	return nil
}

// Delete deletes a task owned by the given user
func (r *TaskRepository) Delete(ctx context.Context, userID, id string) error {
	defer timeQuery("delete", "tasks")()
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete task", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Task")
	}

	return nil
}

// List retrieves tasks of a user matching the filter
func (r *TaskRepository) List(ctx context.Context, userID string, filter task.Filter) ([]*task.Task, int64, error) {
	defer timeQuery("select", "tasks")()
	where := []string{"user_id = ?"}
	args := []interface{}{userID}

	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Priority != "" {
		where = append(where, "priority = ?")
		args = append(args, filter.Priority)
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tasks WHERE %s", whereClause)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count tasks", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`SELECT `+taskColumns+` FROM tasks WHERE %s ORDER BY created_at DESC LIMIT ? OFFSET ?`, whereClause)
	args = append(args, limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list tasks", err)
	}
	defer rows.Close()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan task", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate tasks", err)
	}

	return tasks, total, nil
}

// CountByUser returns the number of tasks a user has
func (r *TaskRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks WHERE user_id = ?", userID).Scan(&total)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count tasks", err)
	}
	return total, nil
}

// CountByStatus returns the number of tasks a user has in the given status
func (r *TaskRepository) CountByStatus(ctx context.Context, userID, status string) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tasks WHERE user_id = ? AND status = ?", userID, status,
	).Scan(&total)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count tasks", err)
	}
	return total, nil
}
