package storage

import (
	"context"
	"sync"
)

// Store is the key-value persistence interface used for the user session
// marker. A missing key reads as ("", false, nil), never an error.
type Store interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
}

// DefaultStore is the process-wide fallback resolved at logger construction
// when no store is supplied explicitly. It replaces the original design's
// ambient browser-storage lookup with an explicit binding; leaving it nil is
// fine, the logger then reports a clear error on first use.
var DefaultStore Store

// MemoryStore keeps values in a mutex-guarded map. It is the store of choice
// for tests and short-lived CLI runs.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryStore) SetItem(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

// Len reports how many keys are stored. Used by tests to assert that a
// deduplicated call performed no writes.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
