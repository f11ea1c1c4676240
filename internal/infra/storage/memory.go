package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// MemoryStore keeps the key-value state in a mutex-guarded map of JSON
// strings. It is the default development backend and the test double for
// every repository; values round-trip through the same serialization as the
// durable backends.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	logger *zap.Logger
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{
		values: make(map[string]string),
		logger: logger,
	}
}

// ReadCollection decodes the JSON array stored under key into out. Missing
// or malformed payloads leave out untouched and are logged, never returned
// as errors.
func (s *MemoryStore) ReadCollection(_ context.Context, key string, out any) error {
	s.mu.RLock()
	raw, ok := s.values[key]
	s.mu.RUnlock()

	if !ok || raw == "" {
		return nil
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("discarding malformed stored collection",
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return nil
}

// WriteCollection serializes value and replaces the payload under key.
func (s *MemoryStore) WriteCollection(_ context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", key, err)
	}

	s.mu.Lock()
	s.values[key] = string(encoded)
	s.mu.Unlock()
	return nil
}

// ReadScalar returns the bare string under key, reporting absence via ok.
func (s *MemoryStore) ReadScalar(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.values[key]
	return raw, ok, nil
}

// WriteScalar stores a bare string under key.
func (s *MemoryStore) WriteScalar(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

// DeleteScalar removes the value under key. Deleting an absent key is a
// no-op.
func (s *MemoryStore) DeleteScalar(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}
