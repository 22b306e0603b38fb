package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/aurybot/aury-backend/internal/domain/user"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
)

const userColumns = `id, email, name, password_hash, plan, premium_expires_at,
	device_ids, usage_date, ai_analysis_count, chat_uploads_count, preferences,
	assistant_config, created_at, updated_at`

// UserRepository implements user.Repository
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) user.Repository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	defer timeQuery("insert", "users")()
	now := time.Now().UTC()
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	query := `
		INSERT INTO users (id, email, name, password_hash, plan, premium_expires_at,
			device_ids, usage_date, ai_analysis_count, chat_uploads_count, preferences,
			assistant_config, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Plan, nullUnix(u.PremiumExpiresAt),
		encodeStrings(u.DeviceIDs),
		u.DailyUsage.Date, u.DailyUsage.AIAnalysisCount, u.DailyUsage.ChatUploadsCount,
		encodeMap(u.Preferences), encodeMap(u.AssistantConfig),
		now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}

	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*user.User, error) {
	var u user.User
	var premiumExpires sql.NullInt64
	var deviceIDs, preferences, assistantConfig string
	var createdAt, updatedAt int64

	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Plan, &premiumExpires,
		&deviceIDs, &u.DailyUsage.Date, &u.DailyUsage.AIAnalysisCount, &u.DailyUsage.ChatUploadsCount,
		&preferences, &assistantConfig, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	u.PremiumExpiresAt = unixPtr(premiumExpires)
	u.DeviceIDs = decodeStrings(deviceIDs)
	u.Preferences = decodeMap(preferences)
	u.AssistantConfig = decodeMap(assistantConfig)
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	u.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return &u, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	defer timeQuery("select", "users")()
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	defer timeQuery("select", "users")()
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	defer timeQuery("update", "users")()
	u.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET email = ?, name = ?, password_hash = ?, plan = ?, premium_expires_at = ?,
			device_ids = ?, preferences = ?, assistant_config = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		u.Email, u.Name, u.PasswordHash, u.Plan, nullUnix(u.PremiumExpiresAt),
		encodeStrings(u.DeviceIDs),
		encodeMap(u.Preferences), encodeMap(u.AssistantConfig), u.UpdatedAt.Unix(), u.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	defer timeQuery("delete", "users")()
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// List retrieves all users with pagination
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	defer timeQuery("select", "users")()
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count users", err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list users", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		var u user.User
		var premiumExpires sql.NullInt64
		var deviceIDs, preferences, assistantConfig string
		var createdAt, updatedAt int64

		err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Plan, &premiumExpires,
			&deviceIDs, &u.DailyUsage.Date, &u.DailyUsage.AIAnalysisCount, &u.DailyUsage.ChatUploadsCount,
			&preferences, &assistantConfig, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan user", err)
		}

		u.PremiumExpiresAt = unixPtr(premiumExpires)
		u.DeviceIDs = decodeStrings(deviceIDs)
		u.Preferences = decodeMap(preferences)
		u.AssistantConfig = decodeMap(assistantConfig)
		u.CreatedAt = time.Unix(createdAt, 0).UTC()
		u.UpdatedAt = time.Unix(updatedAt, 0).UTC()

		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate users", err)
	}

	return users, total, nil
}

// SaveDailyUsage persists the daily usage counters of a user
func (r *UserRepository) SaveDailyUsage(ctx context.Context, userID string, usage user.DailyUsage) error {
	defer timeQuery("update", "users")()
	query := `
		UPDATE users
		SET usage_date = ?, ai_analysis_count = ?, chat_uploads_count = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		usage.Date, usage.AIAnalysisCount, usage.ChatUploadsCount, time.Now().UTC().Unix(), userID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to save daily usage", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// ReserveDailyUsage atomically increments a daily counter if it is
// still under limit. The date roll, check and increment run in a
// single transaction so concurrent first-of-day requests cannot both
// slip under the limit.
func (r *UserRepository) ReserveDailyUsage(ctx context.Context, userID string, counter user.UsageCounter, limit int, today string) (user.DailyUsage, error) {
	defer timeQuery("reserve", "users")()
	var usage user.DailyUsage

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return usage, errors.DatabaseError("Failed to begin transaction", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`SELECT usage_date, ai_analysis_count, chat_uploads_count FROM users WHERE id = ?`,
		userID,
	).Scan(&usage.Date, &usage.AIAnalysisCount, &usage.ChatUploadsCount)
	if err == sql.ErrNoRows {
		return usage, errors.NotFound("User")
	}
	if err != nil {
		return usage, errors.DatabaseError("Failed to read daily usage", err)
	}

	if usage.Date != today {
		usage = user.DailyUsage{Date: today}
	}

	switch counter {
	case user.UsageAIAnalysis:
		if limit != -1 && usage.AIAnalysisCount >= limit {
			return usage, user.ErrDailyLimitReached
		}
		usage.AIAnalysisCount++
	case user.UsageChatUploads:
		if limit != -1 && usage.ChatUploadsCount >= limit {
			return usage, user.ErrDailyLimitReached
		}
		usage.ChatUploadsCount++
	default:
		return usage, errors.BadRequest("Unknown usage counter")
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET usage_date = ?, ai_analysis_count = ?, chat_uploads_count = ?, updated_at = ? WHERE id = ?`,
		usage.Date, usage.AIAnalysisCount, usage.ChatUploadsCount, time.Now().UTC().Unix(), userID,
	)
	if err != nil {
		return usage, errors.DatabaseError("Failed to update daily usage", err)
	}

	if err := tx.Commit(); err != nil {
		return usage, errors.DatabaseError("Failed to commit daily usage", err)
	}

	return usage, nil
}

// ListPremiumExpired retrieves premium users whose expiry is before the given date
func (r *UserRepository) ListPremiumExpired(ctx context.Context, before string) ([]*user.User, error) {
	defer timeQuery("select", "users")()
	cutoff, err := time.Parse(time.RFC3339, before)
	if err != nil {
		return nil, errors.BadRequest("Invalid cutoff date")
	}

	query := `SELECT ` + userColumns + ` FROM users
		WHERE plan = ? AND premium_expires_at IS NOT NULL AND premium_expires_at < ?`

	rows, err := r.db.QueryContext(ctx, query, "premium", cutoff.Unix())
	if err != nil {
		return nil, errors.DatabaseError("Failed to list expired premium users", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		var u user.User
		var premiumExpires sql.NullInt64
		var deviceIDs, preferences, assistantConfig string
		var createdAt, updatedAt int64

		err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Plan, &premiumExpires,
			&deviceIDs, &u.DailyUsage.Date, &u.DailyUsage.AIAnalysisCount, &u.DailyUsage.ChatUploadsCount,
			&preferences, &assistantConfig, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan user", err)
		}

		u.PremiumExpiresAt = unixPtr(premiumExpires)
		u.DeviceIDs = decodeStrings(deviceIDs)
		u.Preferences = decodeMap(preferences)
		u.AssistantConfig = decodeMap(assistantConfig)
		u.CreatedAt = time.Unix(createdAt, 0).UTC()
		u.UpdatedAt = time.Unix(updatedAt, 0).UTC()

		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate users", err)
	}

	return users, nil
}
