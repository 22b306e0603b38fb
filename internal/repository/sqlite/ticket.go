package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/aurybot/aury-backend/internal/domain/ticket"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
)

const ticketColumns = `id, user_id, subject, message, status, created_at, updated_at`

// TicketRepository implements ticket.Repository
type TicketRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *sql.DB) ticket.Repository {
	return &TicketRepository{db: db}
}

// Create creates a new ticket
func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	now := time.Now().UTC()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = ticket.StatusOpen
	}
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `
		INSERT INTO tickets (id, user_id, subject, message, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Subject, t.Message, t.Status, now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create ticket", err)
	}

	return nil
}

func scanTicket(scan func(dest ...interface{}) error) (*ticket.Ticket, error) {
	var t ticket.Ticket
	var createdAt, updatedAt int64

	err := scan(&t.ID, &t.UserID, &t.Subject, &t.Message, &t.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	t.CreatedAt = time.Unix(createdAt, 0).UTC()
	t.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return &t, nil
}

// GetByID retrieves a ticket owned by the given user
func (r *TicketRepository) GetByID(ctx context.Context, userID, id string) (*ticket.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE user_id = ? AND id = ?`

	t, err := scanTicket(r.db.QueryRowContext(ctx, query, userID, id).Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Ticket")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get ticket", err)
	}

	return t, nil
}

// Update updates a ticket
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	t.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tickets
		SET subject = ?, message = ?, status = ?, updated_at = ?
		WHERE user_id = ? AND id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		t.Subject, t.Message, t.Status, t.UpdatedAt.Unix(), t.UserID, t.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update ticket", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Ticket")
	}

	return nil
}

// List retrieves tickets of a user
func (r *TicketRepository) List(ctx context.Context, userID string, limit, offset int) ([]*ticket.Ticket, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tickets WHERE user_id = ?", userID).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count tickets", err)
	}

	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE user_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list tickets", err)
	}
	defer rows.Close()

	var tickets []*ticket.Ticket
	for rows.Next() {
		t, err := scanTicket(rows.Scan)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan ticket", err)
		}
		tickets = append(tickets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate tickets", err)
	}

	return tickets, total, nil
}
