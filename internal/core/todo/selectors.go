package todo

// GetVisibleTodos derives the displayed list: the completion, tag, category,
// priority, and date range filters in that order, then at most one sort pass.
// The result is a new slice; todos is never modified.
func GetVisibleTodos(todos []Todo, filters FilterState, sort SortState) []Todo {
	result := FilterByCompletion(todos, filters.CompletionStatus)

	if len(filters.Tags) > 0 {
		result = FilterByTags(result, filters.Tags)
	}
	if len(filters.Categories) > 0 {
		result = FilterByCategories(result, filters.Categories)
	}
	if len(filters.Priorities) > 0 {
		result = FilterByPriorities(result, filters.Priorities)
	}
	if filters.DateRange != nil {
		result = FilterByDateRange(result, filters.DateRange.Start, filters.DateRange.End)
	}

	switch sort.Criterion {
	case SortPriority:
		result = SortByPriority(result, sort.Direction)
	case SortScheduledAt:
		result = SortByScheduledDate(result, sort.Direction)
	case SortCreatedAt:
		result = SortByCreatedDate(result, sort.Direction)
	}

	return result
}

// GetDeletedTodos returns the soft-deleted todos.
func GetDeletedTodos(todos []Todo) []Todo {
	return filter(todos, func(t Todo) bool { return t.IsDeleted })
}

// GetActiveTodosCount counts todos that are neither deleted nor completed.
func GetActiveTodosCount(todos []Todo) int {
	n := 0
	for _, t := range todos {
		if !t.IsDeleted && !t.IsCompleted {
			n++
		}
	}
	return n
}

// GetCompletedTodosCount counts completed todos that are not deleted.
func GetCompletedTodosCount(todos []Todo) int {
	n := 0
	for _, t := range todos {
		if !t.IsDeleted && t.IsCompleted {
			n++
		}
	}
	return n
}
