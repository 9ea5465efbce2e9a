package kv

import (
	"context"
	"strings"
)

// ScopedKV prefixes every key with "namespace:" so several profiles can share
// one store.
type ScopedKV struct {
	store  KV
	prefix string
}

var _ KV = (*ScopedKV)(nil)

// Scoped returns a KV that prefixes all keys with "namespace:". An empty
// namespace returns store unchanged.
func Scoped(store KV, namespace string) KV {
	if namespace == "" {
		return store
	}
	return &ScopedKV{
		store:  store,
		prefix: namespace + ":",
	}
}

// Get retrieves a value by key.
func (s *ScopedKV) Get(ctx context.Context, key string) ([]byte, error) {
	return s.store.Get(ctx, s.prefix+key)
}

// Set stores a value.
func (s *ScopedKV) Set(ctx context.Context, key string, value []byte) error {
	return s.store.Set(ctx, s.prefix+key, value)
}

// Delete removes a key.
func (s *ScopedKV) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, s.prefix+key)
}

// Has returns whether a key exists.
func (s *ScopedKV) Has(ctx context.Context, key string) (bool, error) {
	return s.store.Has(ctx, s.prefix+key)
}

// ListKeys returns the keys in this scope with the prefix removed.
func (s *ScopedKV) ListKeys(ctx context.Context) ([]string, error) {
	all, err := s.store.ListKeys(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(all))
	for _, k := range all {
		if rest, ok := strings.CutPrefix(k, s.prefix); ok {
			keys = append(keys, rest)
		}
	}
	return keys, nil
}

// GetRaw retrieves an entry with metadata. The returned key has the prefix
// removed.
func (s *ScopedKV) GetRaw(ctx context.Context, key string) (Entry, error) {
	e, err := s.store.GetRaw(ctx, s.prefix+key)
	if err != nil {
		return Entry{}, err
	}
	e.Key = key
	return e, nil
}
