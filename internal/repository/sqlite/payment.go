package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/aurybot/aury-backend/internal/domain/payment"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
)

const paymentColumns = `id, user_id, reference, amount, status, reviewed_by, reviewed_at, created_at, updated_at`

// PaymentRepository implements payment.Repository
type PaymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *sql.DB) payment.Repository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment record
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = payment.StatusPending
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO payments (id, user_id, reference, amount, status, reviewed_by, reviewed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.Reference, p.Amount, p.Status, p.ReviewedBy, nullUnix(p.ReviewedAt),
		now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create payment", err)
	}

	return nil
}

func scanPayment(scan func(dest ...interface{}) error) (*payment.Payment, error) {
	var p payment.Payment
	var reviewedAt sql.NullInt64
	var createdAt, updatedAt int64

	err := scan(
		&p.ID, &p.UserID, &p.Reference, &p.Amount, &p.Status, &p.ReviewedBy, &reviewedAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.ReviewedAt = unixPtr(reviewedAt)
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	p.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return &p, nil
}

// GetByID retrieves a payment by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*payment.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = ?`

	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Payment")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get payment", err)
	}

	return p, nil
}

// Update updates a payment
func (r *PaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE payments
		SET status = ?, reviewed_by = ?, reviewed_at = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		p.Status, p.ReviewedBy, nullUnix(p.ReviewedAt), p.UpdatedAt.Unix(), p.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update payment", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Payment")
	}

	return nil
}

// ListByUser retrieves payments reported by a user
func (r *PaymentRepository) ListByUser(ctx context.Context, userID string) ([]*payment.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE user_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list payments", err)
	}
	defer rows.Close()

	var payments []*payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan payment", err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate payments", err)
	}

	return payments, nil
}

// ListByStatus retrieves payments in the given status
func (r *PaymentRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*payment.Payment, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM payments WHERE status = ?", status).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count payments", err)
	}

	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE status = ? ORDER BY created_at ASC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list payments", err)
	}
	defer rows.Close()

	var payments []*payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan payment", err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate payments", err)
	}

	return payments, total, nil
}
