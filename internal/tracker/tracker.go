// Package tracker is the application shell's state holder: it owns the
// current state, feeds actions through the reducer, and saves the snapshot
// after every persistent change.
package tracker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/tend/internal/core/action"
	"github.com/colonyops/tend/internal/core/reducer"
	"github.com/colonyops/tend/internal/core/todo"
)

// Persister is the persistence gateway as seen by the tracker.
type Persister interface {
	Load(ctx context.Context) (todo.AppData, error)
	Save(ctx context.Context, data todo.AppData) error
}

// Tracker holds one state value. It is not safe for concurrent use; a
// single goroutine owns it and dispatches actions one at a time.
type Tracker struct {
	reducer *reducer.Reducer
	store   Persister
	log     zerolog.Logger
	state   todo.State
}

// New creates a tracker in the reducer's initial state. Call Load before
// dispatching to pick up stored data.
func New(r *reducer.Reducer, store Persister, log zerolog.Logger) *Tracker {
	return &Tracker{
		reducer: r,
		store:   store,
		log:     log,
		state:   reducer.InitialState(),
	}
}

// Load reads the stored snapshot and replaces the collections with it.
// Filters and sort are kept.
func (t *Tracker) Load(ctx context.Context) error {
	data, err := t.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	t.state = t.reducer.Reduce(t.state, action.LoadData{Data: data})
	return nil
}

// Dispatch applies act and commits the resulting state. When the action
// changes persisted collections the snapshot is saved synchronously; a save
// failure is returned unchanged and the new state stays committed.
func (t *Tracker) Dispatch(ctx context.Context, act action.Action) error {
	t.state = t.reducer.Reduce(t.state, act)

	if !act.Type().Persistent() {
		return nil
	}

	if err := t.store.Save(ctx, t.state.Snapshot()); err != nil {
		t.log.Error().Ctx(ctx).Err(err).Str("action", string(act.Type())).Msg("save after dispatch")
		return err
	}

	t.log.Debug().Ctx(ctx).Str("action", string(act.Type())).Msg("dispatched")
	return nil
}

// Replace swaps the collections for data and saves the result. data must
// already have passed the gateway's decode and validation path.
func (t *Tracker) Replace(ctx context.Context, data todo.AppData) error {
	t.state = t.reducer.Reduce(t.state, action.LoadData{Data: data})

	if err := t.store.Save(ctx, t.state.Snapshot()); err != nil {
		return fmt.Errorf("save replaced data: %w", err)
	}
	return nil
}

// State returns the current state. Callers must not modify the returned
// collections.
func (t *Tracker) State() todo.State {
	return t.state
}

// Snapshot returns the persisted part of the current state.
func (t *Tracker) Snapshot() todo.AppData {
	return t.state.Snapshot()
}

// Visible returns the todos selected by the current filters, in the current
// sort order.
func (t *Tracker) Visible() []todo.Todo {
	return todo.GetVisibleTodos(t.state.Todos, t.state.Filters, t.state.Sort)
}

// Deleted returns the soft-deleted todos.
func (t *Tracker) Deleted() []todo.Todo {
	return todo.GetDeletedTodos(t.state.Todos)
}

// ActiveCount returns the number of live, incomplete todos.
func (t *Tracker) ActiveCount() int {
	return todo.GetActiveTodosCount(t.state.Todos)
}

// CompletedCount returns the number of live, completed todos.
func (t *Tracker) CompletedCount() int {
	return todo.GetCompletedTodosCount(t.state.Todos)
}

// LastCreatedTodo returns the most recently appended todo. The reducer
// always appends, so after a CreateTodo dispatch this is the new record.
func (t *Tracker) LastCreatedTodo() (todo.Todo, bool) {
	if len(t.state.Todos) == 0 {
		return todo.Todo{}, false
	}
	return t.state.Todos[len(t.state.Todos)-1], true
}
