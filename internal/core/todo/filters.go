package todo

import "slices"

// filter returns the todos for which keep is true, in their original order.
// The result never aliases todos.
func filter(todos []Todo, keep func(Todo) bool) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByTags keeps todos referencing at least one of ids. An empty ids
// slice returns todos unchanged.
func FilterByTags(todos []Todo, ids []string) []Todo {
	if len(ids) == 0 {
		return todos
	}
	return filter(todos, func(t Todo) bool {
		for _, id := range ids {
			if t.HasTag(id) {
				return true
			}
		}
		return false
	})
}

// FilterByCategories keeps todos whose category is one of ids. Todos without
// a category never match. An empty ids slice returns todos unchanged.
func FilterByCategories(todos []Todo, ids []string) []Todo {
	if len(ids) == 0 {
		return todos
	}
	return filter(todos, func(t Todo) bool {
		return t.CategoryID != nil && slices.Contains(ids, *t.CategoryID)
	})
}

// FilterByPriorities keeps todos whose priority is one of priorities. An empty
// priorities slice returns todos unchanged.
func FilterByPriorities(todos []Todo, priorities []Priority) []Todo {
	if len(priorities) == 0 {
		return todos
	}
	return filter(todos, func(t Todo) bool {
		return slices.Contains(priorities, t.Priority)
	})
}

// FilterByDateRange keeps scheduled todos with start <= scheduledAt <= end.
// Bounds compare as strings, which matches chronological order for
// timestamps in TimeLayout. Unscheduled todos are always excluded.
func FilterByDateRange(todos []Todo, start, end string) []Todo {
	return filter(todos, func(t Todo) bool {
		if t.ScheduledAt == nil {
			return false
		}
		at := *t.ScheduledAt
		return at >= start && at <= end
	})
}

// FilterByCompletion keeps non-deleted todos matching status. Deleted todos
// are excluded for every status.
func FilterByCompletion(todos []Todo, status CompletionStatus) []Todo {
	switch status {
	case CompletionActive:
		return filter(todos, func(t Todo) bool { return !t.IsDeleted && !t.IsCompleted })
	case CompletionCompleted:
		return filter(todos, func(t Todo) bool { return !t.IsDeleted && t.IsCompleted })
	default:
		return filter(todos, func(t Todo) bool { return !t.IsDeleted })
	}
}
