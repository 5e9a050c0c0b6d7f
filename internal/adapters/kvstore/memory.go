package kvstore

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrNotFound is returned when no value is stored under a key
var ErrNotFound = errors.New("kv entry not found")

// MemoryStore is an in-memory implementation of the KVStore interface
type MemoryStore struct {
	entries map[string][]byte
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewMemoryStore creates a new in-memory KV store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]byte),
		logger:  logger,
	}
}

// Get retrieves the value stored under a namespace and key
func (s *MemoryStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[storeKey(namespace, key)]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores a value under a namespace and key
func (s *MemoryStore) Set(ctx context.Context, namespace, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.entries[storeKey(namespace, key)] = stored
	return nil
}

// Delete removes a stored value
func (s *MemoryStore) Delete(ctx context.Context, namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, storeKey(namespace, key))
	return nil
}

// Close releases resources held by the store
func (s *MemoryStore) Close() error {
	return nil
}

func storeKey(namespace, key string) string {
	return namespace + "/" + key
}
