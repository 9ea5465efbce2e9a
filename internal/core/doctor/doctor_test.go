package doctor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tend/internal/core/config"
	"github.com/colonyops/tend/internal/core/kv"
	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/storage"
)

type fakeSnapshots struct {
	available bool
	info      storage.Info
	statErr   error
	data      todo.AppData
	loadErr   error
}

func (f *fakeSnapshots) IsAvailable(context.Context) bool { return f.available }

func (f *fakeSnapshots) Stat(context.Context) (storage.Info, error) { return f.info, f.statErr }

func (f *fakeSnapshots) Load(context.Context) (todo.AppData, error) { return f.data, f.loadErr }

func storedInfo(bytes int) storage.Info {
	return storage.Info{Exists: true, Bytes: bytes, Entry: kv.Entry{UpdatedAt: time.Now()}}
}

func TestRunAll_SetsStatusStrings(t *testing.T) {
	check := NewStorageCheck(&fakeSnapshots{available: true}, 0)
	results := RunAll(context.Background(), []Check{check})

	require.Len(t, results, 1)
	for _, item := range results[0].Items {
		assert.Equal(t, string(item.Status), item.StatusStr)
	}
}

func TestSummaryAndFixes(t *testing.T) {
	results := []Result{
		{Items: []CheckItem{
			{Status: StatusPass},
			{Status: StatusWarn, Fixable: true, Fix: "a"},
			{Status: StatusFail, Fixable: true, Fix: "a"},
			{Status: StatusFail, Fixable: true, Fix: "b"},
			{Status: StatusPass, Fixable: true, Fix: "c"},
		}},
	}

	passed, warned, failed := Summary(results)
	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, warned)
	assert.Equal(t, 2, failed)
	assert.Equal(t, []string{"a", "b"}, Fixes(results))
}

func TestStorageCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("unavailable", func(t *testing.T) {
		result := NewStorageCheck(&fakeSnapshots{}, 0).Run(ctx)

		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusFail, result.Items[0].Status)
	})

	t.Run("nothing stored", func(t *testing.T) {
		result := NewStorageCheck(&fakeSnapshots{available: true}, 0).Run(ctx)

		require.Len(t, result.Items, 2)
		assert.Equal(t, StatusPass, result.Items[1].Status)
		assert.Equal(t, "nothing stored yet", result.Items[1].Detail)
	})

	t.Run("stat error", func(t *testing.T) {
		result := NewStorageCheck(&fakeSnapshots{available: true, statErr: errors.New("disk gone")}, 0).Run(ctx)

		require.Len(t, result.Items, 2)
		assert.Equal(t, StatusFail, result.Items[1].Status)
		assert.Contains(t, result.Items[1].Detail, "disk gone")
	})

	t.Run("healthy snapshot", func(t *testing.T) {
		data := todo.NewAppData()
		data.Todos = []todo.Todo{
			{ID: "a"},
			{ID: "b", IsCompleted: true},
			{ID: "c", IsDeleted: true},
		}
		data.Tags = []todo.Tag{{ID: "t"}}

		snaps := &fakeSnapshots{available: true, info: storedInfo(100), data: data}
		result := NewStorageCheck(snaps, 1000).Run(ctx)

		require.Len(t, result.Items, 3)
		assert.Equal(t, StatusPass, result.Items[1].Status)
		assert.Contains(t, result.Items[1].Detail, "(10%)")
		assert.Equal(t, StatusPass, result.Items[2].Status)
		assert.Equal(t, "3 todos (1 active, 1 completed, 1 deleted), 1 tags, 0 categories", result.Items[2].Detail)
	})

	t.Run("near quota", func(t *testing.T) {
		snaps := &fakeSnapshots{available: true, info: storedInfo(900), data: todo.NewAppData()}
		result := NewStorageCheck(snaps, 1000).Run(ctx)

		require.Len(t, result.Items, 3)
		assert.Equal(t, StatusWarn, result.Items[1].Status)
		assert.True(t, result.Items[1].Fixable)
	})

	t.Run("corrupted snapshot", func(t *testing.T) {
		snaps := &fakeSnapshots{available: true, info: storedInfo(10), loadErr: todo.Corrupted("failed to parse storage data")}
		result := NewStorageCheck(snaps, 0).Run(ctx)

		require.Len(t, result.Items, 3)
		item := result.Items[2]
		assert.Equal(t, StatusFail, item.Status)
		assert.True(t, item.Fixable)
		assert.Equal(t, "tend data reset", item.Fix)
	})
}

type fakeDB struct {
	path    string
	version int
	err     error
}

func (f fakeDB) SchemaVersion(context.Context) (int, error) { return f.version, f.err }

func (f fakeDB) Path() string { return f.path }

func TestDatabaseCheck(t *testing.T) {
	ctx := context.Background()

	result := NewDatabaseCheck(fakeDB{path: filepath.Join(t.TempDir(), "missing.db"), version: 2}).Run(ctx)
	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusWarn, result.Items[0].Status)
	assert.Equal(t, StatusPass, result.Items[1].Status)
	assert.Equal(t, "version 2", result.Items[1].Detail)

	result = NewDatabaseCheck(fakeDB{path: t.TempDir(), err: errors.New("malformed")}).Run(ctx)
	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, StatusFail, result.Items[1].Status)
	assert.Equal(t, "tend data recover", result.Items[1].Fix)
}

func TestConfigCheck(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Storage.Backend = config.BackendMemory

	result := NewConfigCheck(&cfg, "").Run(context.Background())

	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, "memory backend, profile default", result.Items[0].Detail)
	assert.Equal(t, StatusWarn, result.Items[1].Status)
	assert.Equal(t, "Storage.backend", result.Items[1].Label)

	cfg.Display.Direction = "sideways"
	result = NewConfigCheck(&cfg, "").Run(context.Background())
	assert.Equal(t, StatusFail, result.Items[0].Status)
}
