package tend

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/colonyops/tend/internal/core/action"
	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/core/validate"
)

// MaxTimestamp is the open upper bound used when a date range has no end.
const MaxTimestamp = "9999-12-31T23:59:59.999Z"

// TodoService runs todo operations against the tracker, resolving ID
// prefixes and tag or category names on the way in.
type TodoService struct {
	app *App
}

// AddInput describes a new todo. Tag and category names that do not exist
// yet are created.
type AddInput struct {
	Title       string
	Description string
	Priority    todo.Priority
	ScheduledAt *string
	Category    string
	Tags        []string
}

// EditInput is a partial update. Category set to "" clears the category.
// AddTags and RemoveTags apply after Tags.
type EditInput struct {
	Title       todo.Optional[string]
	Description todo.Optional[string]
	Priority    todo.Optional[todo.Priority]
	ScheduledAt todo.Optional[*string]
	Category    todo.Optional[string]
	Tags        todo.Optional[[]string]
	AddTags     []string
	RemoveTags  []string
}

// ListOptions selects and orders the listed todos. Tag and category entries
// are case-insensitive glob patterns matched against names.
type ListOptions struct {
	Tags       []string
	Categories []string
	Priorities []todo.Priority
	Status     todo.CompletionStatus
	From       string
	To         string
	Sort       *todo.SortState
	Search     string
}

// Add validates in and creates the todo.
func (s *TodoService) Add(ctx context.Context, in AddInput) (todo.Todo, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validate.TodoInput(in.Title, in.Description); err != nil {
		return todo.Todo{}, err
	}

	tr, err := s.app.Tracker(ctx)
	if err != nil {
		return todo.Todo{}, err
	}

	tagIDs, err := s.app.Labels.ensureTags(ctx, in.Tags)
	if err != nil {
		return todo.Todo{}, err
	}

	categoryID, err := s.app.Labels.ensureCategory(ctx, in.Category)
	if err != nil {
		return todo.Todo{}, err
	}

	err = tr.Dispatch(ctx, action.CreateTodo{Input: todo.CreateTodoInput{
		Title:       in.Title,
		Description: in.Description,
		ScheduledAt: in.ScheduledAt,
		CategoryID:  categoryID,
		Priority:    in.Priority,
		TagIDs:      tagIDs,
	}})
	if err != nil {
		return todo.Todo{}, fmt.Errorf("create todo: %w", err)
	}

	created, _ := tr.LastCreatedTodo()
	return created, nil
}

// Get returns the todo whose ID starts with prefix. Deleted todos are
// included.
func (s *TodoService) Get(ctx context.Context, prefix string) (todo.Todo, error) {
	tr, err := s.app.Tracker(ctx)
	if err != nil {
		return todo.Todo{}, err
	}

	todos := tr.State().Todos
	id, err := todo.ResolveID(todo.TodoIDs(todos), prefix)
	if err != nil {
		return todo.Todo{}, fmt.Errorf("todo: %w", err)
	}

	t, _ := todo.FindTodo(todos, id)
	return t, nil
}

// Edit applies the set fields of in to the todo matching prefix.
func (s *TodoService) Edit(ctx context.Context, prefix string, in EditInput) (todo.Todo, error) {
	current, err := s.Get(ctx, prefix)
	if err != nil {
		return todo.Todo{}, err
	}

	if in.Title.Set {
		in.Title.Value = strings.TrimSpace(in.Title.Value)
	}
	if err := validate.TodoInput(in.Title.Apply(current.Title), in.Description.Apply(current.Description)); err != nil {
		return todo.Todo{}, err
	}

	update := todo.UpdateTodoInput{
		ID:          current.ID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		ScheduledAt: in.ScheduledAt,
	}

	if in.Category.Set {
		categoryID, err := s.app.Labels.ensureCategory(ctx, in.Category.Value)
		if err != nil {
			return todo.Todo{}, err
		}
		update.CategoryID = todo.Some(categoryID)
	}

	if in.Tags.Set || len(in.AddTags) > 0 || len(in.RemoveTags) > 0 {
		tagIDs, err := s.editTags(ctx, current, in)
		if err != nil {
			return todo.Todo{}, err
		}
		update.TagIDs = todo.Some(tagIDs)
	}

	return s.dispatch(ctx, current.ID, action.UpdateTodo{Input: update})
}

func (s *TodoService) editTags(ctx context.Context, current todo.Todo, in EditInput) ([]string, error) {
	ids := slices.Clone(current.TagIDs)
	if in.Tags.Set {
		replaced, err := s.app.Labels.ensureTags(ctx, in.Tags.Value)
		if err != nil {
			return nil, err
		}
		ids = replaced
	}

	added, err := s.app.Labels.ensureTags(ctx, in.AddTags)
	if err != nil {
		return nil, err
	}
	for _, id := range added {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	tr, err := s.app.Tracker(ctx)
	if err != nil {
		return nil, err
	}
	for _, name := range in.RemoveTags {
		tag, ok := todo.FindTagByName(tr.State().Tags, name)
		if !ok {
			return nil, fmt.Errorf("tag %q: %w", name, todo.ErrNotFound)
		}
		ids = slices.DeleteFunc(ids, func(id string) bool { return id == tag.ID })
	}

	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Toggle flips the completion flag of the todo matching prefix.
func (s *TodoService) Toggle(ctx context.Context, prefix string) (todo.Todo, error) {
	current, err := s.Get(ctx, prefix)
	if err != nil {
		return todo.Todo{}, err
	}
	return s.dispatch(ctx, current.ID, action.ToggleComplete{ID: current.ID})
}

// Delete moves the todo matching prefix to the trash.
func (s *TodoService) Delete(ctx context.Context, prefix string) (todo.Todo, error) {
	current, err := s.Get(ctx, prefix)
	if err != nil {
		return todo.Todo{}, err
	}
	if current.IsDeleted {
		return current, fmt.Errorf("todo %s is already deleted", current.ID)
	}
	return s.dispatch(ctx, current.ID, action.DeleteTodo{ID: current.ID})
}

// Restore takes the todo matching prefix out of the trash.
func (s *TodoService) Restore(ctx context.Context, prefix string) (todo.Todo, error) {
	current, err := s.Get(ctx, prefix)
	if err != nil {
		return todo.Todo{}, err
	}
	if !current.IsDeleted {
		return current, fmt.Errorf("todo %s is not deleted", current.ID)
	}
	return s.dispatch(ctx, current.ID, action.RestoreTodo{ID: current.ID})
}

func (s *TodoService) dispatch(ctx context.Context, id string, act action.Action) (todo.Todo, error) {
	tr, err := s.app.Tracker(ctx)
	if err != nil {
		return todo.Todo{}, err
	}

	if err := tr.Dispatch(ctx, act); err != nil {
		return todo.Todo{}, fmt.Errorf("save changes: %w", err)
	}

	t, _ := todo.FindTodo(tr.State().Todos, id)
	return t, nil
}

// List returns the visible todos for opts.
func (s *TodoService) List(ctx context.Context, opts ListOptions) ([]todo.Todo, error) {
	tr, err := s.app.Tracker(ctx)
	if err != nil {
		return nil, err
	}
	state := tr.State()

	priorities := opts.Priorities
	if priorities == nil {
		priorities = []todo.Priority{}
	}

	patch := todo.FilterPatch{
		Priorities:       todo.Some(priorities),
		CompletionStatus: todo.Some(todo.CompletionAll),
	}
	if opts.Status != "" {
		patch.CompletionStatus = todo.Some(opts.Status)
	}

	if len(opts.Tags) > 0 {
		ids, err := matchNames(opts.Tags, tagNames(state.Tags))
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []todo.Todo{}, nil
		}
		patch.Tags = todo.Some(ids)
	}

	if len(opts.Categories) > 0 {
		ids, err := matchNames(opts.Categories, categoryNames(state.Categories))
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []todo.Todo{}, nil
		}
		patch.Categories = todo.Some(ids)
	}

	if opts.From != "" || opts.To != "" {
		end := opts.To
		if end == "" {
			end = MaxTimestamp
		}
		patch.DateRange = todo.Some(&todo.DateRange{Start: opts.From, End: end})
	}

	if err := tr.Dispatch(ctx, action.ClearFilters{}); err != nil {
		return nil, err
	}
	if err := tr.Dispatch(ctx, action.SetFilter{Patch: patch}); err != nil {
		return nil, err
	}
	if opts.Sort != nil {
		if err := tr.Dispatch(ctx, action.SetSort{Sort: *opts.Sort}); err != nil {
			return nil, err
		}
	}

	visible := tr.Visible()
	if opts.Search != "" {
		visible = search(visible, opts.Search)
	}
	return visible, nil
}

// Trash returns the soft-deleted todos.
func (s *TodoService) Trash(ctx context.Context) ([]todo.Todo, error) {
	tr, err := s.app.Tracker(ctx)
	if err != nil {
		return nil, err
	}
	return tr.Deleted(), nil
}

// Counts returns the number of active and completed todos.
func (s *TodoService) Counts(ctx context.Context) (active, completed int, err error) {
	tr, err := s.app.Tracker(ctx)
	if err != nil {
		return 0, 0, err
	}
	return tr.ActiveCount(), tr.CompletedCount(), nil
}

type titles []todo.Todo

func (t titles) String(i int) string { return t[i].Title }

func (t titles) Len() int { return len(t) }

// search keeps todos whose title fuzzily matches query, best match first.
func search(todos []todo.Todo, query string) []todo.Todo {
	matches := fuzzy.FindFrom(query, titles(todos))
	out := make([]todo.Todo, 0, len(matches))
	for _, m := range matches {
		out = append(out, todos[m.Index])
	}
	return out
}
