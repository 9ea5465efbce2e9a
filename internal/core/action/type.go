package action

// Type identifies the kind of state transition an action requests.
// The string values are the names used in logs and exported transcripts.
type Type string

const (
	TypeCreateTodo     Type = "CREATE_TODO"
	TypeUpdateTodo     Type = "UPDATE_TODO"
	TypeDeleteTodo     Type = "DELETE_TODO"
	TypeRestoreTodo    Type = "RESTORE_TODO"
	TypeToggleComplete Type = "TOGGLE_COMPLETE"
	TypeCreateTag      Type = "CREATE_TAG"
	TypeDeleteTag      Type = "DELETE_TAG"
	TypeCreateCategory Type = "CREATE_CATEGORY"
	TypeDeleteCategory Type = "DELETE_CATEGORY"
	TypeSetFilter      Type = "SET_FILTER"
	TypeClearFilters   Type = "CLEAR_FILTERS"
	TypeSetSort        Type = "SET_SORT"
	TypeLoadData       Type = "LOAD_DATA"
)

// sessionOnly are action types that never touch the persisted collections.
// LoadData replaces the collections with what was just read, so there is
// nothing new to write back.
var sessionOnly = map[Type]bool{
	TypeSetFilter:    true,
	TypeClearFilters: true,
	TypeSetSort:      true,
	TypeLoadData:     true,
}

// Persistent reports whether applying an action of this type changes the
// persisted snapshot and so must be followed by a save.
func (t Type) Persistent() bool {
	if t == "" {
		return false
	}
	return !sessionOnly[t]
}
