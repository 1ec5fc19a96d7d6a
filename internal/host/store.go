package host

import "sync"

// Store is a concurrency-safe StateStore.
type Store struct {
	values sync.Map
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Manage stores value under key unless the key is already managed
func (s *Store) Manage(key string, value any) bool {
	_, loaded := s.values.LoadOrStore(key, value)
	return !loaded
}

// Lookup returns the value stored under key
func (s *Store) Lookup(key string) (any, bool) {
	return s.values.Load(key)
}
