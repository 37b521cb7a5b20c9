package snapshot

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests and development.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryStore creates an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

// Load retrieves the snapshot stored under key.
func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	cpy := make([]byte, len(data))
	copy(cpy, data)
	return cpy, true, nil
}

// Save stores the snapshot under key.
func (s *MemoryStore) Save(_ context.Context, key string, data []byte) error {
	cpy := make([]byte, len(data))
	copy(cpy, data)
	s.mu.Lock()
	s.items[key] = cpy
	s.mu.Unlock()
	return nil
}

// Delete removes the snapshot under key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}
