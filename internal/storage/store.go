// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
)

// KV defines the key/value persistence the record store is built on.
// Each collection lives under a single key and is always written whole.
// This abstraction allows swapping backends (SQLite, Redis, PostgreSQL,
// in-memory) without changing the record store.
type KV interface {
	// Get returns the value stored under key.
	// ok is false when the key has never been written or was deleted.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
