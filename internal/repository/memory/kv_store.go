package memory

import (
	"context"
	"sync"

	"github.com/vytor/hippomemory/internal/repository"
)

// KeyValueStore keeps records in a map. Values are copied on the way in and out.
type KeyValueStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{records: make(map[string][]byte)}
}

func (s *KeyValueStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *KeyValueStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = append([]byte(nil), value...)
	return nil
}

func (s *KeyValueStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

func (s *KeyValueStore) Close() error {
	return nil
}
