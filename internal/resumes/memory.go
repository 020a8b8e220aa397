package resumes

import (
	"context"
	"sync"
)

// MemoryStore keeps resumes in process memory. Contents are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	resumes map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{resumes: make(map[string]string)}
}

// Put stores text under key.
func (s *MemoryStore) Put(_ context.Context, key, text string) error {
	s.mu.Lock()
	s.resumes[KeyOrDefault(key)] = text
	s.mu.Unlock()
	return nil
}

// Get returns the text stored under key.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	text, ok := s.resumes[KeyOrDefault(key)]
	s.mu.RUnlock()
	return text, ok, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
