package stores

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/colonyops/tend/internal/core/kv"
	pkgkv "github.com/colonyops/tend/pkg/kv"
)

type memEntry struct {
	value     []byte
	createdAt time.Time
	updatedAt time.Time
}

// MemoryStore implements kv.KV in process memory. Nothing survives the
// process. A positive maxBytes caps the total size of keys and values.
type MemoryStore struct {
	data *pkgkv.Store[string, memEntry]
}

var _ kv.KV = (*MemoryStore)(nil)

func entrySize(key string, e memEntry) int64 { return int64(len(key) + len(e.value)) }

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(maxBytes int64) *MemoryStore {
	return &MemoryStore{data: pkgkv.NewBounded[string, memEntry](maxBytes, entrySize)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	e, ok := s.data.Get(key)
	if !ok {
		return nil, fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}
	return slices.Clone(e.value), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	now := time.Now()

	err := s.data.Upsert(key, func(e memEntry, exists bool) memEntry {
		if !exists {
			e.createdAt = now
		}
		e.value = slices.Clone(value)
		e.updatedAt = now
		return e
	})
	if errors.Is(err, pkgkv.ErrFull) {
		return fmt.Errorf("kv set %q: %w: %w", key, kv.ErrQuotaExceeded, err)
	}
	return err
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.data.Delete(key)
	return nil
}

func (s *MemoryStore) Has(_ context.Context, key string) (bool, error) {
	_, ok := s.data.Get(key)
	return ok, nil
}

// ListKeys returns all keys in sorted order.
func (s *MemoryStore) ListKeys(_ context.Context) ([]string, error) {
	keys := s.data.Keys()
	slices.Sort(keys)
	return keys, nil
}

func (s *MemoryStore) GetRaw(_ context.Context, key string) (kv.Entry, error) {
	e, ok := s.data.Get(key)
	if !ok {
		return kv.Entry{}, fmt.Errorf("kv get raw %q: %w", key, kv.ErrNotFound)
	}
	return kv.Entry{
		Key:       key,
		Value:     slices.Clone(e.value),
		CreatedAt: e.createdAt,
		UpdatedAt: e.updatedAt,
	}, nil
}
