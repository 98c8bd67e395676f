package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/pinely/internal/db"
)

// SQLiteKVRepo implements KVRepo using a SQLite database.
type SQLiteKVRepo struct {
	db db.DBTX
}

// NewSQLiteKVRepo creates a new SQLiteKVRepo.
func NewSQLiteKVRepo(conn db.DBTX) *SQLiteKVRepo {
	return &SQLiteKVRepo{db: conn}
}

var _ KVRepo = (*SQLiteKVRepo)(nil)

func (r *SQLiteKVRepo) Get(ctx context.Context, key string) (*KVEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT key, value, updated_at FROM kv_store WHERE key = ?`, key)

	var (
		e         KVEntry
		updatedAt string
	)
	if err := row.Scan(&e.Key, &e.Value, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("kv key %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning kv entry: %w", err)
	}
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}

func (r *SQLiteKVRepo) Put(ctx context.Context, key, value string) error {
	query := `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, value, nowUTC()); err != nil {
		return fmt.Errorf("upserting kv entry: %w", err)
	}
	return nil
}

func (r *SQLiteKVRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting kv entry: %w", err)
	}
	return nil
}
