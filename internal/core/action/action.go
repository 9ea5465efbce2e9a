// Package action defines the reducer's input vocabulary. Each action kind is
// its own struct; the reducer switches on the concrete type.
package action

import "github.com/colonyops/tend/internal/core/todo"

// Action is a request for a state transition.
type Action interface {
	Type() Type
}

// CreateTodo appends a new todo built from Input.
type CreateTodo struct {
	Input todo.CreateTodoInput
}

// UpdateTodo merges the set fields of Input onto the todo with Input.ID.
type UpdateTodo struct {
	Input todo.UpdateTodoInput
}

// DeleteTodo soft-deletes a todo.
type DeleteTodo struct {
	ID string
}

// RestoreTodo undoes a soft delete.
type RestoreTodo struct {
	ID string
}

// ToggleComplete flips a todo's completion flag.
type ToggleComplete struct {
	ID string
}

// CreateTag appends a new tag.
type CreateTag struct {
	Name string
}

// DeleteTag removes a tag and strips it from every todo.
type DeleteTag struct {
	ID string
}

// CreateCategory appends a new category.
type CreateCategory struct {
	Name string
}

// DeleteCategory removes a category and clears it from every todo.
type DeleteCategory struct {
	ID string
}

// SetFilter merges Patch onto the current filters.
type SetFilter struct {
	Patch todo.FilterPatch
}

// ClearFilters resets the filters to their defaults.
type ClearFilters struct{}

// SetSort replaces the sort state.
type SetSort struct {
	Sort todo.SortState
}

// LoadData replaces todos, tags, and categories with an already validated
// snapshot.
type LoadData struct {
	Data todo.AppData
}

func (CreateTodo) Type() Type     { return TypeCreateTodo }
func (UpdateTodo) Type() Type     { return TypeUpdateTodo }
func (DeleteTodo) Type() Type     { return TypeDeleteTodo }
func (RestoreTodo) Type() Type    { return TypeRestoreTodo }
func (ToggleComplete) Type() Type { return TypeToggleComplete }
func (CreateTag) Type() Type      { return TypeCreateTag }
func (DeleteTag) Type() Type      { return TypeDeleteTag }
func (CreateCategory) Type() Type { return TypeCreateCategory }
func (DeleteCategory) Type() Type { return TypeDeleteCategory }
func (SetFilter) Type() Type      { return TypeSetFilter }
func (ClearFilters) Type() Type   { return TypeClearFilters }
func (SetSort) Type() Type        { return TypeSetSort }
func (LoadData) Type() Type       { return TypeLoadData }
