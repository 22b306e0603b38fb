package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aurybot/aury-backend/internal/domain/event"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
)

const eventColumns = `id, user_id, title, description, location, start_time, end_time,
	all_day, reminder, created_at, updated_at`

// EventRepository implements event.Repository
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB) event.Repository {
	return &EventRepository{db: db}
}

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, e *event.Event) error {
	now := time.Now().UTC()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.CreatedAt = now
	e.UpdatedAt = now

	query := `
		INSERT INTO events (id, user_id, title, description, location, start_time, end_time,
			all_day, reminder, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.Title, e.Description, e.Location,
		e.StartTime.Unix(), nullUnix(e.EndTime), e.AllDay, e.Reminder,
		now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create event", err)
	}

	return nil
}

func scanEvent(scan func(dest ...interface{}) error) (*event.Event, error) {
	var e event.Event
	var startTime int64
	var endTime sql.NullInt64
	var createdAt, updatedAt int64

	err := scan(
		&e.ID, &e.UserID, &e.Title, &e.Description, &e.Location,
		&startTime, &endTime, &e.AllDay, &e.Reminder, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.StartTime = time.Unix(startTime, 0).UTC()
	e.EndTime = unixPtr(endTime)
	e.CreatedAt = time.Unix(createdAt, 0).UTC()
	e.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return &e, nil
}

// GetByID retrieves an event owned by the given user
func (r *EventRepository) GetByID(ctx context.Context, userID, id string) (*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE user_id = ? AND id = ?`

	e, err := scanEvent(r.db.QueryRowContext(ctx, query, userID, id).Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Event")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get event", err)
	}

	return e, nil
}

// Update updates an event
func (r *EventRepository) Update(ctx context.Context, e *event.Event) error {
	e.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE events
		SET title = ?, description = ?, location = ?, start_time = ?, end_time = ?,
			all_day = ?, reminder = ?, updated_at = ?
		WHERE user_id = ? AND id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		e.Title, e.Description, e.Location, e.StartTime.Unix(), nullUnix(e.EndTime),
		e.AllDay, e.Reminder, e.UpdatedAt.Unix(),
		e.UserID, e.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update event", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Event")
	}

	return nil
}

// Delete deletes an event owned by the given user
func (r *EventRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete event", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Event")
	}

	return nil
}

// List retrieves events of a user matching the filter, ordered by start time
func (r *EventRepository) List(ctx context.Context, userID string, filter event.Filter) ([]*event.Event, int64, error) {
	where := []string{"user_id = ?"}
	args := []interface{}{userID}

	if filter.From != nil {
		where = append(where, "start_time >= ?")
		args = append(args, filter.From.Unix())
	}
	if filter.To != nil {
		where = append(where, "start_time < ?")
		args = append(args, filter.To.Unix())
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM events WHERE %s", whereClause)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count events", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`SELECT `+eventColumns+` FROM events WHERE %s ORDER BY start_time ASC LIMIT ? OFFSET ?`, whereClause)
	args = append(args, limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list events", err)
	}
	defer rows.Close()

	var events []*event.Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan event", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate events", err)
	}

	return events, total, nil
}

// CountByUser returns the number of events a user has
func (r *EventRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events WHERE user_id = ?", userID).Scan(&total)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count events", err)
	}
	return total, nil
}
