// Package kv provides a thread-safe generic map with an optional size budget.
package kv

import (
	"errors"
	"fmt"
	"sync"
)

// ErrFull is returned by Put and Upsert when a write would push the store past
// its limit.
var ErrFull = errors.New("kv: store is full")

// SizeFunc reports how much of the budget one entry occupies.
type SizeFunc[K comparable, V any] func(key K, value V) int64

// Store is a thread-safe generic map. A bounded store tracks the summed size
// of its entries and refuses writes beyond its limit; an unbounded store never
// refuses.
type Store[K comparable, V any] struct {
	mu    sync.RWMutex
	data  map[K]V
	size  SizeFunc[K, V]
	used  int64
	limit int64
}

// New creates an unbounded store.
func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{data: make(map[K]V)}
}

// NewBounded creates a store whose entries may occupy at most limit units as
// measured by size. A limit of zero or less means unbounded.
func NewBounded[K comparable, V any](limit int64, size SizeFunc[K, V]) *Store[K, V] {
	s := New[K, V]()
	if limit > 0 && size != nil {
		s.limit = limit
		s.size = size
	}
	return s
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// Put stores value under key. A rejected write leaves the store unchanged.
func (s *Store[K, V]) Put(key K, value V) error {
	return s.Upsert(key, func(V, bool) V { return value })
}

// Upsert computes the new value for key from the current one (exists reports
// whether there was one) and stores it under the write lock.
func (s *Store[K, V]) Upsert(key K, fn func(current V, exists bool) V) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.data[key]
	next := fn(current, exists)

	if s.size != nil {
		used := s.used + s.size(key, next)
		if exists {
			used -= s.size(key, current)
		}
		if used > s.limit {
			return fmt.Errorf("%w: %d of %d", ErrFull, used, s.limit)
		}
		s.used = used
	}

	s.data[key] = next
	return nil
}

// Delete removes a key from the store. It reports whether the key existed.
func (s *Store[K, V]) Delete(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.data[key]
	if !ok {
		return false
	}
	if s.size != nil {
		s.used -= s.size(key, val)
	}
	delete(s.data, key)
	return true
}

// Clear removes all entries from the store.
func (s *Store[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[K]V)
	s.used = 0
}

// Len returns the number of items in the store.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Used returns the summed size of all entries; always 0 when unbounded.
func (s *Store[K, V]) Used() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}

// Keys returns all keys in the store in no particular order.
func (s *Store[K, V]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]K, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}
