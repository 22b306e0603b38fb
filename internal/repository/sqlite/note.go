package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aurybot/aury-backend/internal/domain/note"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
)

const noteColumns = `id, user_id, title, content, category, tags, ai_summary, extracted_tasks, created_at, updated_at`

// NoteRepository implements note.Repository
type NoteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *sql.DB) note.Repository {
	return &NoteRepository{db: db}
}

// Create creates a new note
func (r *NoteRepository) Create(ctx context.Context, n *note.Note) error {
	defer timeQuery("insert", "notes")()
	now := time.Now().UTC()
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	n.CreatedAt = now
	n.UpdatedAt = now
	if n.Tags == nil {
		n.Tags = []string{}
	}

	query := `
		INSERT INTO notes (id, user_id, title, content, category, tags, ai_summary, extracted_tasks, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.UserID, n.Title, n.Content, n.Category,
		encodeStrings(n.Tags), n.AISummary, encodeStrings(n.ExtractedTasks),
		now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create note", err)
	}

	return nil
}

func scanNote(scan func(dest ...interface{}) error) (*note.Note, error) {
	var n note.Note
	var tags, extracted string
	var createdAt, updatedAt int64

	err := scan(
		&n.ID, &n.UserID, &n.Title, &n.Content, &n.Category,
		&tags, &n.AISummary, &extracted, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	n.Tags = decodeStrings(tags)
	n.ExtractedTasks = decodeStrings(extracted)
	n.CreatedAt = time.Unix(createdAt, 0).UTC()
	n.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return &n, nil
}

// GetByID retrieves a note owned by the given user
func (r *NoteRepository) GetByID(ctx context.Context, userID, id string) (*note.Note, error) {
	defer timeQuery("select", "notes")()
	query := `SELECT ` + noteColumns + ` FROM notes WHERE user_id = ? AND id = ?`

	n, err := scanNote(r.db.QueryRowContext(ctx, query, userID, id).Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Note")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get note", err)
	}

	return n, nil
}

// Update updates a note
func (r *NoteRepository) Update(ctx context.Context, n *note.Note) error {
	defer timeQuery("update", "notes")()
	n.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE notes
		SET title = ?, content = ?, category = ?, tags = ?, ai_summary = ?, extracted_tasks = ?, updated_at = ?
		WHERE user_id = ? AND id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		n.Title, n.Content, n.Category, encodeStrings(n.Tags),
		n.AISummary, encodeStrings(n.ExtractedTasks), n.UpdatedAt.Unix(),
		n.UserID, n.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update note", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Note")
	}

	return nil
}

// Delete deletes a note owned by the given user
func (r *NoteRepository) Delete(ctx context.Context, userID, id string) error {
	defer timeQuery("delete", "notes")()
	result, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete note", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Note")
	}

	return nil
}

// List retrieves notes of a user matching the filter
func (r *NoteRepository) List(ctx context.Context, userID string, filter note.Filter) ([]*note.Note, int64, error) {
	defer timeQuery("select", "notes")()
	where := []string{"user_id = ?"}
	args := []interface{}{userID}

	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		where = append(where, "(title LIKE ? OR content LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM notes WHERE %s", whereClause)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count notes", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`SELECT `+noteColumns+` FROM notes WHERE %s ORDER BY created_at DESC LIMIT ? OFFSET ?`, whereClause)
	args = append(args, limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list notes", err)
	}
	defer rows.Close()

	var notes []*note.Note
	for rows.Next() {
		n, err := scanNote(rows.Scan)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan note", err)
		}
		notes = append(notes, n)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate notes", err)
	}

	return notes, total, nil
}

// CountByUser returns the number of notes a user has
func (r *NoteRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notes WHERE user_id = ?", userID).Scan(&total)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count notes", err)
	}
	return total, nil
}
