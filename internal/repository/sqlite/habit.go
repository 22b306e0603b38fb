package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/aurybot/aury-backend/internal/domain/habit"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
)

const habitColumns = `id, user_id, name, description, frequency, streak, best_streak,
	completions, created_at, updated_at`

// HabitRepository implements habit.Repository
type HabitRepository struct {
	db *sql.DB
}

// NewHabitRepository creates a new habit repository
func NewHabitRepository(db *sql.DB) habit.Repository {
	return &HabitRepository{db: db}
}

// Create creates a new habit
func (r *HabitRepository) Create(ctx context.Context, h *habit.Habit) error {
	now := time.Now().UTC()
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if h.Frequency == "" {
		h.Frequency = habit.FrequencyDaily
	}
	if h.Completions == nil {
		h.Completions = []string{}
	}
	h.CreatedAt = now
	h.UpdatedAt = now

	query := `
		INSERT INTO habits (id, user_id, name, description, frequency, streak, best_streak,
			completions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		h.ID, h.UserID, h.Name, h.Description, h.Frequency, h.Streak, h.BestStreak,
		encodeStrings(h.Completions), now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create habit", err)
	}

	return nil
}

func scanHabit(scan func(dest ...interface{}) error) (*habit.Habit, error) {
	var h habit.Habit
	var completions string
	var createdAt, updatedAt int64

	err := scan(
		&h.ID, &h.UserID, &h.Name, &h.Description, &h.Frequency, &h.Streak, &h.BestStreak,
		&completions, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	h.Completions = decodeStrings(completions)
	h.CreatedAt = time.Unix(createdAt, 0).UTC()
	h.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return &h, nil
}

// GetByID retrieves a habit owned by the given user
func (r *HabitRepository) GetByID(ctx context.Context, userID, id string) (*habit.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = ? AND id = ?`

	h, err := scanHabit(r.db.QueryRowContext(ctx, query, userID, id).Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Habit")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get habit", err)
	}

	return h, nil
}

// Update updates a habit
func (r *HabitRepository) Update(ctx context.Context, h *habit.Habit) error {
	h.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE habits
		SET name = ?, description = ?, frequency = ?, streak = ?, best_streak = ?,
			completions = ?, updated_at = ?
		WHERE user_id = ? AND id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		h.Name, h.Description, h.Frequency, h.Streak, h.BestStreak,
		encodeStrings(h.Completions), h.UpdatedAt.Unix(),
		h.UserID, h.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update habit", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Habit")
	}

	return nil
}

// Delete deletes a habit owned by the given user
func (r *HabitRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete habit", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Habit")
	}

	return nil
}

// List retrieves habits of a user
func (r *HabitRepository) List(ctx context.Context, userID string, limit, offset int) ([]*habit.Habit, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM habits WHERE user_id = ?", userID).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count habits", err)
	}

	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list habits", err)
	}
	defer rows.Close()

	var habits []*habit.Habit
	for rows.Next() {
		h, err := scanHabit(rows.Scan)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan habit", err)
		}
		habits = append(habits, h)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate habits", err)
	}

	return habits, total, nil
}

// CountByUser returns the number of habits a user has
func (r *HabitRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM habits WHERE user_id = ?", userID).Scan(&total)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count habits", err)
	}
	return total, nil
}
