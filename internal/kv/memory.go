package kv

import (
	"context"
	"sync"
)

// MemoryStore implements Store with an in-process map. It backs tests and
// demo deployments that should not touch disk.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemory creates an empty in-memory key-value store.
func NewMemory() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

// Get retrieves the value for a key, or (nil, nil) if absent.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.slots[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores a value under a key, replacing any previous value.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.slots[key] = stored
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, key)
	return nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
