package tend

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tend/internal/core/config"
	"github.com/colonyops/tend/internal/core/doctor"
	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/data/stores"
	"github.com/colonyops/tend/internal/storage"
)

func TestDataService_ExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()

	source := newTestApp(t, stores.NewMemoryStore(0))
	_, err := source.Todos.Add(ctx, AddInput{Title: "carry over", Tags: []string{"x"}, Category: "y"})
	require.NoError(t, err)

	exported, err := source.Data.Export(ctx)
	require.NoError(t, err)
	raw, err := json.Marshal(exported)
	require.NoError(t, err)

	target := newTestApp(t, stores.NewMemoryStore(0))
	_, err = target.Todos.Add(ctx, AddInput{Title: "replaced"})
	require.NoError(t, err)

	imported, err := target.Data.Import(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, exported, imported)

	todos, err := target.Todos.List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"carry over"}, titlesOf(todos))
}

func TestDataService_ImportRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, stores.NewMemoryStore(0))
	_, err := app.Todos.Add(ctx, AddInput{Title: "keep me"})
	require.NoError(t, err)

	_, err = app.Data.Import(ctx, []byte(`{"version":"1.0.0","todos":{},"tags":[],"categories":[]}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, todo.ErrDataCorrupted)

	todos, err := app.Todos.List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep me"}, titlesOf(todos))
}

func TestDataService_ImportRepairsCorruption(t *testing.T) {
	ctx := context.Background()
	store := stores.NewMemoryStore(0)
	require.NoError(t, store.Set(ctx, "default:"+storage.Key, []byte("garbage")))

	app := newTestApp(t, store)
	_, err := app.Data.Import(ctx, []byte(`{"version":"1.0.0","todos":[],"tags":[],"categories":[]}`))
	require.NoError(t, err)

	todos, err := app.Todos.List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestDataService_Reset(t *testing.T) {
	ctx := context.Background()
	store := stores.NewMemoryStore(0)
	require.NoError(t, store.Set(ctx, "default:"+storage.Key, []byte("garbage")))

	app := newTestApp(t, store)
	require.NoError(t, app.Data.Reset(ctx))
	require.NoError(t, app.Data.Reset(ctx), "reset with nothing stored is a no-op")

	todos, err := app.Todos.List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestDataService_Recover(t *testing.T) {
	app := newTestApp(t, stores.NewMemoryStore(0))
	_, err := app.Data.Recover()
	assert.ErrorIs(t, err, ErrNotSQLite)

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	sqliteApp := NewApp(&cfg, app.log)

	backup, err := sqliteApp.Data.Recover()
	require.NoError(t, err)
	assert.Empty(t, backup, "nothing to move")
}

func TestDoctorService_RunChecks(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, stores.NewMemoryStore(0))
	_, err := app.Todos.Add(ctx, AddInput{Title: "checked"})
	require.NoError(t, err)

	results := app.Doctor.RunChecks(ctx, "")

	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Configuration", "Storage"}, names)

	_, _, failed := doctor.Summary(results)
	assert.Zero(t, failed)
}
