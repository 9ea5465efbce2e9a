// Package storage is the persistence gateway: it encodes the whole snapshot
// into one versioned key of a kv.KV substrate and decodes it back through the
// validation layer.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/tend/internal/core/kv"
	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/core/validate"
	"github.com/colonyops/tend/pkg/randid"
)

// Key is the substrate key the snapshot is stored under. A future
// incompatible schema uses a new key.
const Key = "todos_app_data_v1"

const probePrefix = "__storage_test__"

// Gateway loads and saves the persisted snapshot. It performs no retries and
// does not mask substrate failures.
type Gateway struct {
	store  kv.KV
	strict bool
	log    zerolog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithStrict enables per-element schema validation on load.
func WithStrict(strict bool) Option {
	return func(g *Gateway) { g.strict = strict }
}

// WithLogger sets the gateway logger.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

// New creates a gateway over store.
func New(store kv.KV, opts ...Option) *Gateway {
	g := &Gateway{
		store: store,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Load reads the snapshot. An absent key yields an empty snapshot. Content
// that fails to decode or validate yields a KindDataCorrupted error. Other
// substrate errors are returned unchanged.
func (g *Gateway) Load(ctx context.Context) (todo.AppData, error) {
	raw, err := g.store.Get(ctx, Key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			g.log.Debug().Ctx(ctx).Msg("no stored snapshot, using defaults")
			return todo.NewAppData(), nil
		}
		g.log.Error().Ctx(ctx).Err(err).Msg("load snapshot")
		return todo.AppData{}, err
	}

	data, err := g.Decode(raw)
	if err != nil {
		g.log.Error().Ctx(ctx).Err(err).Msg("stored snapshot rejected")
		return todo.AppData{}, err
	}

	g.log.Debug().Ctx(ctx).
		Int("todos", len(data.Todos)).
		Int("tags", len(data.Tags)).
		Int("categories", len(data.Categories)).
		Msg("snapshot loaded")

	return data, nil
}

// Decode runs raw snapshot bytes through the same validation as Load.
func (g *Gateway) Decode(raw []byte) (todo.AppData, error) {
	return validate.DecodeAppData(raw, g.strict)
}

// Save writes the whole snapshot, overwriting prior content. A capacity
// failure from the substrate is returned as a KindQuotaExceeded error.
func (g *Gateway) Save(ctx context.Context, data todo.AppData) error {
	// nil collections would encode as null and fail the next load
	if data.Todos == nil {
		data.Todos = []todo.Todo{}
	}
	if data.Tags == nil {
		data.Tags = []todo.Tag{}
	}
	if data.Categories == nil {
		data.Categories = []todo.Category{}
	}

	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := g.store.Set(ctx, Key, b); err != nil {
		g.log.Error().Ctx(ctx).Err(err).Int("bytes", len(b)).Msg("save snapshot")
		if errors.Is(err, kv.ErrQuotaExceeded) {
			return &todo.Error{Kind: todo.KindQuotaExceeded, Err: err}
		}
		return err
	}

	g.log.Debug().Ctx(ctx).Int("bytes", len(b)).Msg("snapshot saved")
	return nil
}

// Clear removes the snapshot. Clearing an absent snapshot is not an error.
func (g *Gateway) Clear(ctx context.Context) error {
	if err := g.store.Delete(ctx, Key); err != nil && !errors.Is(err, kv.ErrNotFound) {
		g.log.Error().Ctx(ctx).Err(err).Msg("clear snapshot")
		return err
	}

	g.log.Debug().Ctx(ctx).Msg("snapshot cleared")
	return nil
}

// IsAvailable probes the substrate with a throwaway write and remove. Any
// failure reports false.
func (g *Gateway) IsAvailable(ctx context.Context) bool {
	key := randid.Prefixed(probePrefix, 8)

	if err := g.store.Set(ctx, key, []byte("test")); err != nil {
		g.log.Warn().Ctx(ctx).Err(err).Msg("storage probe write failed")
		return false
	}

	if err := g.store.Delete(ctx, key); err != nil {
		g.log.Warn().Ctx(ctx).Err(err).Msg("storage probe remove failed")
		return false
	}

	return true
}

// Info describes the stored snapshot without decoding it.
type Info struct {
	Exists bool
	Bytes  int
	Entry  kv.Entry
}

// Stat reports whether a snapshot is stored and its size.
func (g *Gateway) Stat(ctx context.Context) (Info, error) {
	e, err := g.store.GetRaw(ctx, Key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return Info{}, nil
		}
		return Info{}, err
	}
	return Info{Exists: true, Bytes: len(e.Value), Entry: e}, nil
}
