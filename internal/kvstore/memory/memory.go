package memory

import "sync"

// Storage is an in-process key-value store. Nothing survives a restart.
type Storage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewStorage() *Storage { return &Storage{values: make(map[string]string)} }

func (s *Storage) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Storage) Put(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *Storage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *Storage) Close() error { return nil }
