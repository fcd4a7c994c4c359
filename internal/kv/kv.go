// Package kv provides a small key-value persistence interface for the
// dashboard's persisted slots (current user, selected template hand-off)
// with SQLite and in-memory implementations.
package kv

import "context"

// Store persists opaque values under string keys.
type Store interface {
	// Get retrieves the value for a key. Returns (nil, nil) if the key
	// is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under a key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping verifies the backing medium is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
