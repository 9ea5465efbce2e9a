package tracker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tend/internal/core/action"
	"github.com/colonyops/tend/internal/core/reducer"
	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/data/stores"
	"github.com/colonyops/tend/internal/storage"
)

type recordingStore struct {
	data    todo.AppData
	loadErr error
	saveErr error
	saves   []todo.AppData
}

func (r *recordingStore) Load(context.Context) (todo.AppData, error) {
	if r.loadErr != nil {
		return todo.AppData{}, r.loadErr
	}
	return r.data, nil
}

func (r *recordingStore) Save(_ context.Context, data todo.AppData) error {
	r.saves = append(r.saves, data)
	return r.saveErr
}

func newTestReducer() *reducer.Reducer {
	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	seq := 0
	return reducer.New(
		reducer.WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}),
		reducer.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
}

func TestTracker_SavesOnlyPersistentActions(t *testing.T) {
	ctx := context.Background()
	store := &recordingStore{data: todo.NewAppData()}
	tr := New(newTestReducer(), store, zerolog.Nop())
	require.NoError(t, tr.Load(ctx))

	require.NoError(t, tr.Dispatch(ctx, action.CreateTodo{Input: todo.CreateTodoInput{Title: "a"}}))
	require.NoError(t, tr.Dispatch(ctx, action.SetSort{Sort: todo.SortState{Criterion: todo.SortPriority, Direction: todo.SortDesc}}))
	require.NoError(t, tr.Dispatch(ctx, action.SetFilter{Patch: todo.FilterPatch{CompletionStatus: todo.Some(todo.CompletionActive)}}))
	require.NoError(t, tr.Dispatch(ctx, action.ClearFilters{}))
	require.NoError(t, tr.Dispatch(ctx, action.ToggleComplete{ID: "id-1"}))

	require.Len(t, store.saves, 2)
	assert.Len(t, store.saves[0].Todos, 1)
	assert.True(t, store.saves[1].Todos[0].IsCompleted)
	assert.Equal(t, todo.SchemaVersion, store.saves[1].Version)
}

func TestTracker_LoadKeepsSessionState(t *testing.T) {
	ctx := context.Background()
	data := todo.NewAppData()
	data.Categories = []todo.Category{{ID: "c", Name: "home", CreatedAt: "x"}}
	store := &recordingStore{data: data}

	tr := New(newTestReducer(), store, zerolog.Nop())
	require.NoError(t, tr.Dispatch(ctx, action.SetSort{Sort: todo.SortState{Criterion: todo.SortCreatedAt, Direction: todo.SortDesc}}))
	require.NoError(t, tr.Load(ctx))

	assert.Equal(t, data.Categories, tr.State().Categories)
	assert.Equal(t, todo.SortCreatedAt, tr.State().Sort.Criterion)
	assert.Empty(t, store.saves, "loading does not write back")
}

func TestTracker_LoadError(t *testing.T) {
	store := &recordingStore{loadErr: todo.Corrupted("data is not an object")}
	tr := New(newTestReducer(), store, zerolog.Nop())

	err := tr.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, todo.ErrDataCorrupted)
	assert.Empty(t, tr.State().Todos)
}

func TestTracker_SaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	quota := &todo.Error{Kind: todo.KindQuotaExceeded}
	store := &recordingStore{data: todo.NewAppData(), saveErr: quota}
	tr := New(newTestReducer(), store, zerolog.Nop())

	err := tr.Dispatch(ctx, action.CreateTodo{Input: todo.CreateTodoInput{Title: "a"}})

	assert.Same(t, quota, err)
	assert.Len(t, tr.State().Todos, 1, "state stays committed")
}

func TestTracker_BuyMilkScenario(t *testing.T) {
	ctx := context.Background()
	gw := storage.New(stores.NewMemoryStore(0))
	tr := New(newTestReducer(), gw, zerolog.Nop())
	require.NoError(t, tr.Load(ctx))

	require.NoError(t, tr.Dispatch(ctx, action.CreateTodo{Input: todo.CreateTodoInput{Title: "Buy milk"}}))
	created, ok := tr.LastCreatedTodo()
	require.True(t, ok)
	assert.Equal(t, todo.PriorityMedium, created.Priority)
	assert.Equal(t, 1, tr.ActiveCount())
	assert.Len(t, tr.Visible(), 1)

	require.NoError(t, tr.Dispatch(ctx, action.DeleteTodo{ID: created.ID}))
	assert.Empty(t, tr.Visible())
	assert.Len(t, tr.Deleted(), 1)
	assert.Equal(t, 0, tr.ActiveCount())

	require.NoError(t, tr.Dispatch(ctx, action.RestoreTodo{ID: created.ID}))
	assert.Len(t, tr.Visible(), 1)
	assert.Empty(t, tr.Deleted())

	require.NoError(t, tr.Dispatch(ctx, action.ToggleComplete{ID: created.ID}))
	assert.Equal(t, 1, tr.CompletedCount())

	// A fresh tracker over the same store sees the saved state.
	fresh := New(newTestReducer(), gw, zerolog.Nop())
	require.NoError(t, fresh.Load(ctx))
	assert.Equal(t, tr.Snapshot(), fresh.Snapshot())
}

func TestTracker_VisibleUsesFiltersAndSort(t *testing.T) {
	ctx := context.Background()
	tr := New(newTestReducer(), &recordingStore{data: todo.NewAppData()}, zerolog.Nop())
	require.NoError(t, tr.Load(ctx))

	for _, in := range []todo.CreateTodoInput{
		{Title: "low", Priority: todo.PriorityLow},
		{Title: "high", Priority: todo.PriorityHigh},
		{Title: "medium"},
	} {
		require.NoError(t, tr.Dispatch(ctx, action.CreateTodo{Input: in}))
	}

	require.NoError(t, tr.Dispatch(ctx, action.SetSort{Sort: todo.SortState{Criterion: todo.SortPriority, Direction: todo.SortDesc}}))
	var titles []string
	for _, td := range tr.Visible() {
		titles = append(titles, td.Title)
	}
	assert.Equal(t, []string{"high", "medium", "low"}, titles)

	require.NoError(t, tr.Dispatch(ctx, action.SetFilter{Patch: todo.FilterPatch{
		Priorities: todo.Some([]todo.Priority{todo.PriorityLow, todo.PriorityHigh}),
	}}))
	assert.Len(t, tr.Visible(), 2)
}

func TestTracker_Replace(t *testing.T) {
	ctx := context.Background()
	store := &recordingStore{data: todo.NewAppData()}
	tr := New(newTestReducer(), store, zerolog.Nop())
	require.NoError(t, tr.Load(ctx))
	require.NoError(t, tr.Dispatch(ctx, action.SetSort{Sort: todo.SortState{Criterion: todo.SortPriority, Direction: todo.SortAsc}}))

	data := todo.NewAppData()
	data.Tags = []todo.Tag{{ID: "t1", Name: "work", Color: todo.TagColor(0), CreatedAt: "2024-05-01T10:00:00.000Z"}}

	require.NoError(t, tr.Replace(ctx, data))

	assert.Equal(t, data.Tags, tr.State().Tags)
	assert.Equal(t, todo.SortPriority, tr.State().Sort.Criterion)
	require.Len(t, store.saves, 1)
	assert.Equal(t, data.Tags, store.saves[0].Tags)
}

func TestTracker_ReplaceSaveError(t *testing.T) {
	store := &recordingStore{data: todo.NewAppData(), saveErr: &todo.Error{Kind: todo.KindQuotaExceeded}}
	tr := New(newTestReducer(), store, zerolog.Nop())

	err := tr.Replace(context.Background(), todo.NewAppData())
	require.Error(t, err)
	assert.ErrorIs(t, err, todo.ErrQuotaExceeded)
}
