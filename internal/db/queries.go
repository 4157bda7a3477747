package db

import (
	"context"
	"encoding/json"
	"errors"

	"rotationhub/internal/models"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a rotation does not exist for the given
// owner. Ownership mismatches surface as this same error so a caller can
// never tell whether the id exists under another user.
var ErrNotFound = errors.New("rotation not found")

// SaveRotation upserts a rotation by (owner, name). An existing rotation
// under the same name gets its data replaced and updated_at bumped; a new
// name creates an inactive record. The ON CONFLICT form keeps the upsert
// atomic, no partial write is ever visible.
func (d *DB) SaveRotation(ctx context.Context, userID, name string, data json.RawMessage) (*models.Rotation, error) {
	var r models.Rotation
	err := d.pool.QueryRow(ctx, `
		INSERT INTO rotations (user_id, name, data, is_active)
		VALUES ($1, $2, $3, false)
		ON CONFLICT (user_id, name)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
		RETURNING id, user_id, name, data, is_active, created_at, updated_at`,
		userID, name, data).
		Scan(&r.ID, &r.UserID, &r.Name, &r.Data, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRotations fetches a user's rotations, most recently created first.
func (d *DB) GetRotations(ctx context.Context, userID string) ([]models.Rotation, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, user_id, name, data, is_active, created_at, updated_at
		FROM rotations WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rotations := []models.Rotation{}
	for rows.Next() {
		var r models.Rotation
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.Data, &r.IsActive, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		rotations = append(rotations, r)
	}
	return rotations, rows.Err()
}

// GetRotationByID fetches a rotation scoped to its owner.
func (d *DB) GetRotationByID(ctx context.Context, userID, id string) (*models.Rotation, error) {
	var r models.Rotation
	err := d.pool.QueryRow(ctx, `
		SELECT id, user_id, name, data, is_active, created_at, updated_at
		FROM rotations WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&r.ID, &r.UserID, &r.Name, &r.Data, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteRotation deletes a rotation only when it belongs to userID.
func (d *DB) DeleteRotation(ctx context.Context, userID, id string) error {
	tag, err := d.pool.Exec(ctx, "DELETE FROM rotations WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActiveRotation marks one rotation active and deactivates the owner's
// others in the same transaction.
func (d *DB) SetActiveRotation(ctx context.Context, userID, id string) (*models.Rotation, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "UPDATE rotations SET is_active = false WHERE user_id = $1 AND id <> $2", userID, id); err != nil {
		return nil, err
	}

	var r models.Rotation
	err = tx.QueryRow(ctx, `
		UPDATE rotations SET is_active = true WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name, data, is_active, created_at, updated_at`, id, userID).
		Scan(&r.ID, &r.UserID, &r.Name, &r.Data, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetActiveRotations fetches every active rotation across all users, used
// by the periodic republish job.
func (d *DB) GetActiveRotations(ctx context.Context) ([]models.Rotation, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, user_id, name, data, is_active, created_at, updated_at
		FROM rotations WHERE is_active = true`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rotations := []models.Rotation{}
	for rows.Next() {
		var r models.Rotation
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.Data, &r.IsActive, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		rotations = append(rotations, r)
	}
	return rotations, rows.Err()
}
