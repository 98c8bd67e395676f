package repository

import (
	"context"
	"time"
)

// KVEntry is one row of the key-value store.
type KVEntry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// KVRepo is a string-keyed store of opaque string values.
type KVRepo interface {
	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) (*KVEntry, error)
	Put(ctx context.Context, key, value string) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
}
