package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/aurybot/aury-backend/internal/domain/integration"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
)

const integrationColumns = `id, user_id, provider, status, settings, created_at, updated_at`

// IntegrationRepository implements integration.Repository
type IntegrationRepository struct {
	db *sql.DB
}

// NewIntegrationRepository creates a new integration repository
func NewIntegrationRepository(db *sql.DB) integration.Repository {
	return &IntegrationRepository{db: db}
}

// Create creates a new integration
func (r *IntegrationRepository) Create(ctx context.Context, i *integration.Integration) error {
	now := time.Now().UTC()
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.Status == "" {
		i.Status = integration.StatusConnected
	}
	i.CreatedAt = now
	i.UpdatedAt = now

	query := `
		INSERT INTO integrations (id, user_id, provider, status, settings, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		i.ID, i.UserID, i.Provider, i.Status, encodeMap(i.Settings),
		now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create integration", err)
	}

	return nil
}

func scanIntegration(scan func(dest ...interface{}) error) (*integration.Integration, error) {
	var i integration.Integration
	var settings string
	var createdAt, updatedAt int64

	err := scan(&i.ID, &i.UserID, &i.Provider, &i.Status, &settings, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	i.Settings = decodeMap(settings)
	i.CreatedAt = time.Unix(createdAt, 0).UTC()
	i.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return &i, nil
}

// GetByID retrieves an integration owned by the given user
func (r *IntegrationRepository) GetByID(ctx context.Context, userID, id string) (*integration.Integration, error) {
	query := `SELECT ` + integrationColumns + ` FROM integrations WHERE user_id = ? AND id = ?`

	i, err := scanIntegration(r.db.QueryRowContext(ctx, query, userID, id).Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Integration")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get integration", err)
	}

	return i, nil
}

// GetByProvider retrieves a user's integration with a provider
func (r *IntegrationRepository) GetByProvider(ctx context.Context, userID, provider string) (*integration.Integration, error) {
	query := `SELECT ` + integrationColumns + ` FROM integrations WHERE user_id = ? AND provider = ?`

	i, err := scanIntegration(r.db.QueryRowContext(ctx, query, userID, provider).Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Integration")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get integration", err)
	}

	return i, nil
}

// Update updates an integration
func (r *IntegrationRepository) Update(ctx context.Context, i *integration.Integration) error {
	i.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE integrations
		SET status = ?, settings = ?, updated_at = ?
		WHERE user_id = ? AND id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		i.Status, encodeMap(i.Settings), i.UpdatedAt.Unix(), i.UserID, i.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update integration", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Integration")
	}

	return nil
}

// Delete deletes an integration owned by the given user
func (r *IntegrationRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM integrations WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete integration", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Integration")
	}

	return nil
}

// List retrieves integrations of a user
func (r *IntegrationRepository) List(ctx context.Context, userID string) ([]*integration.Integration, error) {
	query := `SELECT ` + integrationColumns + ` FROM integrations WHERE user_id = ? ORDER BY provider ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list integrations", err)
	}
	defer rows.Close()

	var integrations []*integration.Integration
	for rows.Next() {
		i, err := scanIntegration(rows.Scan)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan integration", err)
		}
		integrations = append(integrations, i)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate integrations", err)
	}

	return integrations, nil
}
