// Package kv defines the string-keyed byte substrate that persisted state is
// written to.
package kv

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by Get and GetRaw when the key is absent.
	ErrNotFound = errors.New("kv: key not found")
	// ErrQuotaExceeded is returned by Set when the write would exceed the
	// store's capacity.
	ErrQuotaExceeded = errors.New("kv: quota exceeded")
)

// Entry represents a raw KV entry with metadata.
type Entry struct {
	Key       string
	Value     []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// KV is the interface for a persistent key-value store. Values are opaque
// bytes and are always written whole.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	ListKeys(ctx context.Context) ([]string, error)
	GetRaw(ctx context.Context, key string) (Entry, error)
}
