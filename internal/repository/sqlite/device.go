package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/aurybot/aury-backend/internal/domain/device"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
)

const deviceColumns = `id, user_id, name, type, room, is_on, state, created_at, updated_at`

// DeviceRepository implements device.Repository
type DeviceRepository struct {
	db *sql.DB
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *sql.DB) device.Repository {
	return &DeviceRepository{db: db}
}

// Create creates a new device
func (r *DeviceRepository) Create(ctx context.Context, d *device.Device) error {
	now := time.Now().UTC()
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Type == "" {
		d.Type = device.TypeOther
	}
	d.CreatedAt = now
	d.UpdatedAt = now

	query := `
		INSERT INTO devices (id, user_id, name, type, room, is_on, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.UserID, d.Name, d.Type, d.Room, d.On, encodeMap(d.State),
		now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create device", err)
	}

	return nil
}

func scanDevice(scan func(dest ...interface{}) error) (*device.Device, error) {
	var d device.Device
	var state string
	var createdAt, updatedAt int64

	err := scan(
		&d.ID, &d.UserID, &d.Name, &d.Type, &d.Room, &d.On, &state, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.State = decodeMap(state)
	d.CreatedAt = time.Unix(createdAt, 0).UTC()
	d.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return &d, nil
}

// GetByID retrieves a device owned by the given user
func (r *DeviceRepository) GetByID(ctx context.Context, userID, id string) (*device.Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices WHERE user_id = ? AND id = ?`

	d, err := scanDevice(r.db.QueryRowContext(ctx, query, userID, id).Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Device")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get device", err)
	}

	return d, nil
}

// Update updates a device
func (r *DeviceRepository) Update(ctx context.Context, d *device.Device) error {
	d.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE devices
		SET name = ?, type = ?, room = ?, is_on = ?, state = ?, updated_at = ?
		WHERE user_id = ? AND id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		d.Name, d.Type, d.Room, d.On, encodeMap(d.State), d.UpdatedAt.Unix(),
		d.UserID, d.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update device", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Device")
	}

	return nil
}

// Delete deletes a device owned by the given user
func (r *DeviceRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM devices WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete device", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Device")
	}

	return nil
}

// List retrieves devices of a user
func (r *DeviceRepository) List(ctx context.Context, userID string) ([]*device.Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices WHERE user_id = ? ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list devices", err)
	}
	defer rows.Close()

	var devices []*device.Device
	for rows.Next() {
		d, err := scanDevice(rows.Scan)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan device", err)
		}
		devices = append(devices, d)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate devices", err)
	}

	return devices, nil
}

// CountByUser returns the number of devices a user has
func (r *DeviceRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM devices WHERE user_id = ?", userID).Scan(&total)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count devices", err)
	}
	return total, nil
}
