// Package reducer implements the single state-transition function of the
// tracker. Reduce never fails and never modifies its input state.
package reducer

import (
	"time"

	"github.com/google/uuid"

	"github.com/colonyops/tend/internal/core/action"
	"github.com/colonyops/tend/internal/core/todo"
)

// Reducer applies actions to state. The clock and ID generator are the only
// sources of non-determinism and are injected so tests can pin them.
type Reducer struct {
	now   func() time.Time
	newID func() string
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithClock sets the time source used for createdAt/updatedAt/deletedAt.
func WithClock(now func() time.Time) Option {
	return func(r *Reducer) { r.now = now }
}

// WithIDGenerator sets the generator used for new todo, tag, and category IDs.
func WithIDGenerator(newID func() string) Option {
	return func(r *Reducer) { r.newID = newID }
}

// New creates a Reducer using the wall clock and random UUIDs unless
// overridden.
func New(opts ...Option) *Reducer {
	r := &Reducer{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// InitialState returns the state before anything is loaded.
func InitialState() todo.State {
	return todo.State{
		Todos:      []todo.Todo{},
		Tags:       []todo.Tag{},
		Categories: []todo.Category{},
		Filters:    todo.DefaultFilters(),
		Sort: todo.SortState{
			Criterion: todo.SortNone,
			Direction: todo.SortAsc,
		},
	}
}

// Reduce returns the state that results from applying act to state.
// Collections that the action does not touch are shared with the input.
// Unknown actions return state unchanged.
func (r *Reducer) Reduce(state todo.State, act action.Action) todo.State {
	switch a := act.(type) {
	case action.CreateTodo:
		return r.createTodo(state, a.Input)
	case action.UpdateTodo:
		return r.updateTodo(state, a.Input)
	case action.DeleteTodo:
		now := r.timestamp()
		return mapTodo(state, a.ID, func(t todo.Todo) todo.Todo {
			deletedAt := now
			t.IsDeleted = true
			t.DeletedAt = &deletedAt
			t.UpdatedAt = now
			return t
		})
	case action.RestoreTodo:
		now := r.timestamp()
		return mapTodo(state, a.ID, func(t todo.Todo) todo.Todo {
			t.IsDeleted = false
			t.DeletedAt = nil
			t.UpdatedAt = now
			return t
		})
	case action.ToggleComplete:
		now := r.timestamp()
		return mapTodo(state, a.ID, func(t todo.Todo) todo.Todo {
			t.IsCompleted = !t.IsCompleted
			t.UpdatedAt = now
			return t
		})
	case action.CreateTag:
		return r.createTag(state, a.Name)
	case action.DeleteTag:
		return deleteTag(state, a.ID)
	case action.CreateCategory:
		return r.createCategory(state, a.Name)
	case action.DeleteCategory:
		return deleteCategory(state, a.ID)
	case action.SetFilter:
		return setFilter(state, a.Patch)
	case action.ClearFilters:
		state.Filters = todo.DefaultFilters()
		return state
	case action.SetSort:
		state.Sort = a.Sort
		return state
	case action.LoadData:
		state.Todos = a.Data.Todos
		state.Tags = a.Data.Tags
		state.Categories = a.Data.Categories
		return state
	default:
		return state
	}
}

func (r *Reducer) timestamp() string {
	return todo.FormatTime(r.now())
}

func (r *Reducer) createTodo(state todo.State, in todo.CreateTodoInput) todo.State {
	now := r.timestamp()

	priority := in.Priority
	if priority == "" {
		priority = todo.PriorityMedium
	}

	tagIDs := in.TagIDs
	if tagIDs == nil {
		tagIDs = []string{}
	}

	created := todo.Todo{
		ID:          r.newID(),
		Title:       in.Title,
		Description: in.Description,
		ScheduledAt: in.ScheduledAt,
		CategoryID:  in.CategoryID,
		Priority:    priority,
		TagIDs:      tagIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	state.Todos = appendCopy(state.Todos, created)
	return state
}

func (r *Reducer) updateTodo(state todo.State, in todo.UpdateTodoInput) todo.State {
	now := r.timestamp()
	return mapTodo(state, in.ID, func(t todo.Todo) todo.Todo {
		t.Title = in.Title.Apply(t.Title)
		t.Description = in.Description.Apply(t.Description)
		t.ScheduledAt = in.ScheduledAt.Apply(t.ScheduledAt)
		t.CategoryID = in.CategoryID.Apply(t.CategoryID)
		t.Priority = in.Priority.Apply(t.Priority)
		t.TagIDs = in.TagIDs.Apply(t.TagIDs)
		t.IsCompleted = in.IsCompleted.Apply(t.IsCompleted)
		t.UpdatedAt = now
		return t
	})
}

func (r *Reducer) createTag(state todo.State, name string) todo.State {
	tag := todo.Tag{
		ID:        r.newID(),
		Name:      name,
		Color:     todo.TagColor(len(state.Tags)),
		CreatedAt: r.timestamp(),
	}
	state.Tags = appendCopy(state.Tags, tag)
	return state
}

func (r *Reducer) createCategory(state todo.State, name string) todo.State {
	category := todo.Category{
		ID:        r.newID(),
		Name:      name,
		CreatedAt: r.timestamp(),
	}
	state.Categories = appendCopy(state.Categories, category)
	return state
}

// deleteTag removes the tag and strips its ID from every todo's tag list.
// Cascaded todos keep their updatedAt.
func deleteTag(state todo.State, id string) todo.State {
	tags := make([]todo.Tag, 0, len(state.Tags))
	for _, tag := range state.Tags {
		if tag.ID != id {
			tags = append(tags, tag)
		}
	}

	todos := make([]todo.Todo, len(state.Todos))
	for i, t := range state.Todos {
		if t.HasTag(id) {
			stripped := make([]string, 0, len(t.TagIDs))
			for _, tagID := range t.TagIDs {
				if tagID != id {
					stripped = append(stripped, tagID)
				}
			}
			t.TagIDs = stripped
		}
		todos[i] = t
	}

	state.Tags = tags
	state.Todos = todos
	return state
}

// deleteCategory removes the category and nulls every reference to it.
// Cascaded todos keep their updatedAt, matching deleteTag.
func deleteCategory(state todo.State, id string) todo.State {
	categories := make([]todo.Category, 0, len(state.Categories))
	for _, c := range state.Categories {
		if c.ID != id {
			categories = append(categories, c)
		}
	}

	todos := make([]todo.Todo, len(state.Todos))
	for i, t := range state.Todos {
		if t.CategoryID != nil && *t.CategoryID == id {
			t.CategoryID = nil
		}
		todos[i] = t
	}

	state.Categories = categories
	state.Todos = todos
	return state
}

func setFilter(state todo.State, p todo.FilterPatch) todo.State {
	f := state.Filters
	f.Tags = p.Tags.Apply(f.Tags)
	f.Categories = p.Categories.Apply(f.Categories)
	f.Priorities = p.Priorities.Apply(f.Priorities)
	f.DateRange = p.DateRange.Apply(f.DateRange)
	f.CompletionStatus = p.CompletionStatus.Apply(f.CompletionStatus)
	state.Filters = f
	return state
}

// mapTodo returns state with fn applied to every todo with the given ID.
// When no todo matches, state is returned with its original todos slice.
func mapTodo(state todo.State, id string, fn func(todo.Todo) todo.Todo) todo.State {
	var todos []todo.Todo
	for i, t := range state.Todos {
		if t.ID != id {
			continue
		}
		if todos == nil {
			todos = make([]todo.Todo, len(state.Todos))
			copy(todos, state.Todos)
		}
		todos[i] = fn(t)
	}
	if todos == nil {
		return state
	}

	state.Todos = todos
	return state
}

// appendCopy appends v to a fresh copy of s so the caller's backing array is
// never written.
func appendCopy[T any](s []T, v T) []T {
	out := make([]T, len(s), len(s)+1)
	copy(out, s)
	return append(out, v)
}
