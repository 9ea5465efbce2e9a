package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tend/internal/core/kv"
	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/data/stores"
)

// faultyKV wraps a store and fails selected operations.
type faultyKV struct {
	kv.KV
	getErr    error
	setErr    error
	deleteErr error
}

func (f *faultyKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.KV.Get(ctx, key)
}

func (f *faultyKV) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.KV.Set(ctx, key, value)
}

func (f *faultyKV) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.KV.Delete(ctx, key)
}

func sampleData() todo.AppData {
	data := todo.NewAppData()
	data.Todos = []todo.Todo{
		{
			ID:          "t1",
			Title:       "Buy milk",
			Description: "2 litres",
			Priority:    todo.PriorityHigh,
			TagIDs:      []string{"g1"},
			CategoryID:  todo.StringPtr("c1"),
			ScheduledAt: todo.StringPtr("2024-05-01T09:00:00.000Z"),
			CreatedAt:   "2024-04-01T00:00:00.000Z",
			UpdatedAt:   "2024-04-02T00:00:00.000Z",
		},
		{
			ID:        "t2",
			Title:     "Old",
			Priority:  todo.PriorityLow,
			TagIDs:    []string{},
			IsDeleted: true,
			DeletedAt: todo.StringPtr("2024-04-03T00:00:00.000Z"),
			CreatedAt: "2024-04-01T00:00:00.000Z",
			UpdatedAt: "2024-04-03T00:00:00.000Z",
		},
	}
	data.Tags = []todo.Tag{{ID: "g1", Name: "errands", Color: todo.TagColor(0), CreatedAt: "2024-04-01T00:00:00.000Z"}}
	data.Categories = []todo.Category{{ID: "c1", Name: "home", CreatedAt: "2024-04-01T00:00:00.000Z"}}
	return data
}

func TestGateway_LoadEmpty(t *testing.T) {
	g := New(stores.NewMemoryStore(0))

	data, err := g.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, todo.NewAppData(), data)
}

func TestGateway_RoundTrip(t *testing.T) {
	for _, strict := range []bool{false, true} {
		g := New(stores.NewMemoryStore(0), WithStrict(strict))
		ctx := context.Background()
		want := sampleData()

		require.NoError(t, g.Save(ctx, want))

		got, err := g.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got, "strict=%v", strict)
	}
}

func TestGateway_SaveOverwrites(t *testing.T) {
	g := New(stores.NewMemoryStore(0))
	ctx := context.Background()

	require.NoError(t, g.Save(ctx, sampleData()))
	require.NoError(t, g.Save(ctx, todo.NewAppData()))

	got, err := g.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Todos)
}

func TestGateway_SaveNilCollections(t *testing.T) {
	g := New(stores.NewMemoryStore(0))
	ctx := context.Background()

	require.NoError(t, g.Save(ctx, todo.AppData{Version: todo.SchemaVersion}))

	got, err := g.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, todo.NewAppData(), got)
}

func TestGateway_LoadCorrupted(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		wantMsg string
	}{
		{"not json", `{oops`, "failed to parse storage data"},
		{"null", `null`, "data is not an object"},
		{"string", `"hi"`, "data is not an object"},
		{"missing todos", `{"version":"1.0.0","tags":[],"categories":[]}`, "missing or invalid todos array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := stores.NewMemoryStore(0)
			require.NoError(t, store.Set(context.Background(), Key, []byte(tt.stored)))

			_, err := New(store).Load(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, todo.ErrDataCorrupted)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestGateway_LoadSubstrateError(t *testing.T) {
	boom := errors.New("disk on fire")
	g := New(&faultyKV{KV: stores.NewMemoryStore(0), getErr: boom})

	_, err := g.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, todo.KindUnknown, todo.KindOf(err))
}

func TestGateway_SaveQuota(t *testing.T) {
	g := New(stores.NewMemoryStore(64))

	data := todo.NewAppData()
	data.Todos = []todo.Todo{{ID: "x", Title: strings.Repeat("a", 200), Priority: todo.PriorityMedium, TagIDs: []string{}}}

	err := g.Save(context.Background(), data)
	require.Error(t, err)
	assert.ErrorIs(t, err, todo.ErrQuotaExceeded)
	assert.ErrorIs(t, err, kv.ErrQuotaExceeded)
	assert.Equal(t, todo.KindQuotaExceeded, todo.KindOf(err))
}

func TestGateway_SaveOtherErrorUnchanged(t *testing.T) {
	boom := errors.New("read-only filesystem")
	g := New(&faultyKV{KV: stores.NewMemoryStore(0), setErr: boom})

	err := g.Save(context.Background(), todo.NewAppData())
	assert.Same(t, boom, err)
}

func TestGateway_Clear(t *testing.T) {
	store := stores.NewMemoryStore(0)
	g := New(store)
	ctx := context.Background()

	require.NoError(t, g.Clear(ctx), "clearing an absent snapshot is a no-op")

	require.NoError(t, g.Save(ctx, sampleData()))
	require.NoError(t, g.Clear(ctx))

	has, err := store.Has(ctx, Key)
	require.NoError(t, err)
	assert.False(t, has)

	data, err := g.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, todo.NewAppData(), data)
}

func TestGateway_IsAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("healthy", func(t *testing.T) {
		store := stores.NewMemoryStore(0)
		assert.True(t, New(store).IsAvailable(ctx))

		keys, err := store.ListKeys(ctx)
		require.NoError(t, err)
		assert.Empty(t, keys, "probe key is removed")
	})

	t.Run("write fails", func(t *testing.T) {
		g := New(&faultyKV{KV: stores.NewMemoryStore(0), setErr: errors.New("denied")})
		assert.False(t, g.IsAvailable(ctx))
	})

	t.Run("remove fails", func(t *testing.T) {
		g := New(&faultyKV{KV: stores.NewMemoryStore(0), deleteErr: errors.New("denied")})
		assert.False(t, g.IsAvailable(ctx))
	})
}

func TestGateway_ProfilesAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := stores.NewMemoryStore(0)

	work := New(kv.Scoped(store, "work"))
	home := New(kv.Scoped(store, "home"))

	require.NoError(t, work.Save(ctx, sampleData()))

	got, err := home.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Todos)

	info, err := work.Stat(ctx)
	require.NoError(t, err)
	assert.True(t, info.Exists)
	assert.Positive(t, info.Bytes)
}
