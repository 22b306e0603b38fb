package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/aurybot/aury-backend/internal/domain/project"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
)

const projectColumns = `id, user_id, name, description, status, files, created_at, updated_at`

// ProjectRepository implements project.Repository
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) project.Repository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = project.StatusActive
	}
	if p.Files == nil {
		p.Files = []project.File{}
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO projects (id, user_id, name, description, status, files, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.Name, p.Description, p.Status, encodeJSON(p.Files),
		now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create project", err)
	}

	return nil
}

func scanProject(scan func(dest ...interface{}) error) (*project.Project, error) {
	var p project.Project
	var files string
	var createdAt, updatedAt int64

	err := scan(
		&p.ID, &p.UserID, &p.Name, &p.Description, &p.Status, &files, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(files), &p.Files); err != nil || p.Files == nil {
		p.Files = []project.File{}
	}
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	p.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return &p, nil
}

// GetByID retrieves a project owned by the given user
func (r *ProjectRepository) GetByID(ctx context.Context, userID, id string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = ? AND id = ?`

	p, err := scanProject(r.db.QueryRowContext(ctx, query, userID, id).Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Project")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get project", err)
	}

	return p, nil
}

// Update updates a project
func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE projects
		SET name = ?, description = ?, status = ?, files = ?, updated_at = ?
		WHERE user_id = ? AND id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Status, encodeJSON(p.Files), p.UpdatedAt.Unix(),
		p.UserID, p.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update project", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Project")
	}

	return nil
}

// Delete deletes a project owned by the given user
func (r *ProjectRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete project", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Project")
	}

	return nil
}

// List retrieves projects of a user
func (r *ProjectRepository) List(ctx context.Context, userID string, limit, offset int) ([]*project.Project, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects WHERE user_id = ?", userID).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count projects", err)
	}

	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list projects", err)
	}
	defer rows.Close()

	var projects []*project.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan project", err)
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate projects", err)
	}

	return projects, total, nil
}

// CountByUser returns the number of projects a user has
func (r *ProjectRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects WHERE user_id = ?", userID).Scan(&total)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count projects", err)
	}
	return total, nil
}
