// Package store provides a generic thread-safe key/value store
package store

import "sync"

// Store is a mutex-guarded map. Entries live until explicitly deleted;
// live-location overrides have no expiry.
type Store[T any] struct {
	items map[string]T
	mu    sync.RWMutex
}

// New creates an empty store
func New[T any]() *Store[T] {
	return &Store[T]{items: make(map[string]T)}
}

// Get retrieves a value, returning (value, true) if present
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.items[key]
	return value, exists
}

// Set stores or replaces a value
func (s *Store[T]) Set(key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// Delete removes a key from the store
func (s *Store[T]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

// Size returns the number of entries
func (s *Store[T]) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
