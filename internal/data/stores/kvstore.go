package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/colonyops/tend/internal/core/kv"
	"github.com/colonyops/tend/internal/data/db"
)

// KVStore implements kv.KV using SQLite. A positive maxBytes caps the total
// size of all keys and values; writes past it fail with kv.ErrQuotaExceeded.
type KVStore struct {
	db       *db.DB
	maxBytes int64
}

var _ kv.KV = (*KVStore)(nil)

// NewKVStore creates a new SQLite-backed KV store.
func NewKVStore(db *db.DB, maxBytes int64) *KVStore {
	return &KVStore{db: db, maxBytes: maxBytes}
}

// Get retrieves a value by key.
// Returns an error wrapping kv.ErrNotFound if the key does not exist.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	row, err := s.db.Queries().KVGet(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("kv get %q: %w", key, mapError(err))
	}
	return row.Value, nil
}

// Set stores a value, replacing any previous value.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	now := time.Now().UnixNano()

	err := s.db.WithTx(ctx, func(q *db.Queries) error {
		if s.maxBytes > 0 {
			used, err := q.KVUsedBytes(ctx, key)
			if err != nil {
				return err
			}
			if need := used + int64(len(key)+len(value)); need > s.maxBytes {
				return fmt.Errorf("%w: %d of %d bytes", kv.ErrQuotaExceeded, need, s.maxBytes)
			}
		}

		return q.KVSet(ctx, db.KVSetParams{
			Key:       key,
			Value:     value,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, mapError(err))
	}

	return nil
}

// Delete removes a key.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.db.Queries().KVDelete(ctx, key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, mapError(err))
	}
	return nil
}

// Has returns whether a key exists.
func (s *KVStore) Has(ctx context.Context, key string) (bool, error) {
	count, err := s.db.Queries().KVHas(ctx, key)
	if err != nil {
		return false, fmt.Errorf("kv has %q: %w", key, mapError(err))
	}
	return count > 0, nil
}

// ListKeys returns all keys in sorted order.
func (s *KVStore) ListKeys(ctx context.Context) ([]string, error) {
	keys, err := s.db.Queries().KVListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("kv list keys: %w", mapError(err))
	}
	return keys, nil
}

// GetRaw retrieves a raw KV entry with metadata.
// Returns an error wrapping kv.ErrNotFound if the key does not exist.
func (s *KVStore) GetRaw(ctx context.Context, key string) (kv.Entry, error) {
	row, err := s.db.Queries().KVGet(ctx, key)
	if err != nil {
		return kv.Entry{}, fmt.Errorf("kv get raw %q: %w", key, mapError(err))
	}

	return kv.Entry{
		Key:       row.Key,
		Value:     row.Value,
		CreatedAt: time.Unix(0, row.CreatedAt),
		UpdatedAt: time.Unix(0, row.UpdatedAt),
	}, nil
}

// mapError translates driver errors into the kv sentinels. Errors that are
// already kv sentinels or are not recognised pass through.
func mapError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return kv.ErrNotFound
	case IsFullError(err):
		return fmt.Errorf("%w: %w", kv.ErrQuotaExceeded, err)
	default:
		return err
	}
}
