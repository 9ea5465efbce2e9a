// Package todo defines the todo tracker domain model: todos, tags, categories,
// the session-only filter and sort state, and the persisted snapshot.
//
// The package also holds the pure derivations over that model: filter
// predicates, sort comparators, and the visible-list selector pipeline.
package todo

import "time"

// SchemaVersion is the version written into every persisted snapshot.
const SchemaVersion = "1.0.0"

// TimeLayout is the fixed-offset UTC layout used for every stored timestamp.
// Strings in this layout compare lexicographically in chronological order.
const TimeLayout = "2006-01-02T15:04:05.000Z"

const (
	// MaxTitleLength is the longest title the shell accepts.
	MaxTitleLength = 512
	// MaxDescriptionLength is the longest description the shell accepts.
	MaxDescriptionLength = 5000
)

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Priority ranks how urgent a todo is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium" // default
	PriorityHigh   Priority = "high"
)

// ValidPriorities returns all valid priorities in ascending order.
func ValidPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Rank returns the position of p in the order low < medium < high.
// Unknown priorities rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	default:
		return -1
	}
}

// CompletionStatus selects todos by completion state. Deleted todos are
// never selected by any status.
type CompletionStatus string

const (
	CompletionAll       CompletionStatus = "all"
	CompletionActive    CompletionStatus = "active"
	CompletionCompleted CompletionStatus = "completed"
)

// IsValid returns true if the status is a known value.
func (s CompletionStatus) IsValid() bool {
	switch s {
	case CompletionAll, CompletionActive, CompletionCompleted:
		return true
	default:
		return false
	}
}

// SortCriterion names the single field the visible list is ordered by.
// The empty criterion keeps insertion order.
type SortCriterion string

const (
	SortNone        SortCriterion = ""
	SortPriority    SortCriterion = "priority"
	SortScheduledAt SortCriterion = "scheduledAt"
	SortCreatedAt   SortCriterion = "createdAt"
)

// IsValid returns true if the criterion is a known value, including SortNone.
func (c SortCriterion) IsValid() bool {
	switch c {
	case SortNone, SortPriority, SortScheduledAt, SortCreatedAt:
		return true
	default:
		return false
	}
}

// SortDirection orders a sort ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// IsValid returns true if the direction is a known value.
func (d SortDirection) IsValid() bool {
	return d == SortAsc || d == SortDesc
}

// Todo is a single task record.
type Todo struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	IsCompleted bool     `json:"isCompleted"`
	IsDeleted   bool     `json:"isDeleted"`
	ScheduledAt *string  `json:"scheduledAt"`
	CategoryID  *string  `json:"categoryId"`
	Priority    Priority `json:"priority"`
	TagIDs      []string `json:"tagIds"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
	DeletedAt   *string  `json:"deletedAt"`
}

// HasTag reports whether id is among the todo's tag references.
func (t Todo) HasTag(id string) bool {
	for _, tagID := range t.TagIDs {
		if tagID == id {
			return true
		}
	}
	return false
}

// Tag is a label that any number of todos may reference.
type Tag struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt string `json:"createdAt"`
}

// Category is the single optional grouping of a todo.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// DateRange bounds scheduled dates, inclusive on both ends.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FilterState holds the active list filters. List-valued fields combine with
// OR within the field and AND across fields.
type FilterState struct {
	Tags             []string         `json:"tags"`
	Categories       []string         `json:"categories"`
	Priorities       []Priority       `json:"priorities"`
	DateRange        *DateRange       `json:"dateRange,omitempty"`
	CompletionStatus CompletionStatus `json:"completionStatus"`
}

// DefaultFilters returns the filter state with nothing selected.
func DefaultFilters() FilterState {
	return FilterState{
		Tags:             []string{},
		Categories:       []string{},
		Priorities:       []Priority{},
		CompletionStatus: CompletionAll,
	}
}

// SortState holds the one active sort criterion and its direction.
type SortState struct {
	Criterion SortCriterion `json:"criterion"`
	Direction SortDirection `json:"direction"`
}

// AppData is the persisted snapshot. It is always written and read whole.
type AppData struct {
	Version    string     `json:"version"`
	Todos      []Todo     `json:"todos"`
	Tags       []Tag      `json:"tags"`
	Categories []Category `json:"categories"`
}

// NewAppData returns an empty snapshot at the current schema version.
func NewAppData() AppData {
	return AppData{
		Version:    SchemaVersion,
		Todos:      []Todo{},
		Tags:       []Tag{},
		Categories: []Category{},
	}
}

// State is the aggregate owned by the reducer. Filters and Sort are
// session-only and never persisted.
type State struct {
	Todos      []Todo
	Tags       []Tag
	Categories []Category
	Filters    FilterState
	Sort       SortState
}

// Snapshot returns the persisted part of the state.
func (s State) Snapshot() AppData {
	return AppData{
		Version:    SchemaVersion,
		Todos:      s.Todos,
		Tags:       s.Tags,
		Categories: s.Categories,
	}
}

// Optional marks a field of a partial payload. The zero value leaves the
// target field unchanged.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns an Optional that overwrites the target field with v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Apply returns v's value when set and current otherwise.
func (o Optional[T]) Apply(current T) T {
	if o.Set {
		return o.Value
	}
	return current
}

// CreateTodoInput carries the caller-supplied fields of a new todo.
// Zero values select the documented defaults.
type CreateTodoInput struct {
	Title       string
	Description string
	ScheduledAt *string
	CategoryID  *string
	Priority    Priority // empty means medium
	TagIDs      []string
}

// UpdateTodoInput is a partial update of the todo with the given ID.
type UpdateTodoInput struct {
	ID          string
	Title       Optional[string]
	Description Optional[string]
	ScheduledAt Optional[*string]
	CategoryID  Optional[*string]
	Priority    Optional[Priority]
	TagIDs      Optional[[]string]
	IsCompleted Optional[bool]
}

// FilterPatch is a partial update of FilterState.
type FilterPatch struct {
	Tags             Optional[[]string]
	Categories       Optional[[]string]
	Priorities       Optional[[]Priority]
	DateRange        Optional[*DateRange]
	CompletionStatus Optional[CompletionStatus]
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
