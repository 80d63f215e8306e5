package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/database"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/storage"
)

const createStateTable = `
CREATE TABLE IF NOT EXISTS hrms_state (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// StateRepository is a storage.BlobStore backed by one PostgreSQL table,
// one row per collection.
type StateRepository struct {
	db *database.DB
}

func NewStateRepository(db *database.DB) *StateRepository {
	return &StateRepository{db: db}
}

// EnsureSchema creates the state table when missing.
func (r *StateRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createStateTable); err != nil {
		return fmt.Errorf("create hrms_state: %w", err)
	}
	return nil
}

func (r *StateRepository) Put(ctx context.Context, key string, data []byte) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO hrms_state (key, value, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, key, string(data))
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// PutMany writes several collections atomically.
func (r *StateRepository) PutMany(ctx context.Context, blobs map[string][]byte) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		for key, data := range blobs {
			if err := r.Put(ctx, key, data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *StateRepository) Get(ctx context.Context, key string) ([]byte, error) {
	q := GetQuerier(ctx, r.db)
	var value string
	err := q.QueryRow(ctx, `SELECT value::text FROM hrms_state WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", storage.ErrBlobNotFound, key)
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(value), nil
}

func (r *StateRepository) Delete(ctx context.Context, key string) error {
	q := GetQuerier(ctx, r.db)
	if _, err := q.Exec(ctx, `DELETE FROM hrms_state WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (r *StateRepository) Exists(ctx context.Context, key string) (bool, error) {
	q := GetQuerier(ctx, r.db)
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM hrms_state WHERE key = $1)`, key).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", key, err)
	}
	return exists, nil
}
