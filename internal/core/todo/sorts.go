package todo

import (
	"slices"
	"strings"
)

// sortStable returns a sorted copy of todos. Ties keep their input order.
func sortStable(todos []Todo, cmp func(a, b Todo) int) []Todo {
	out := slices.Clone(todos)
	slices.SortStableFunc(out, cmp)
	return out
}

func directed(dir SortDirection, c int) int {
	if dir == SortDesc {
		return -c
	}
	return c
}

// SortByPriority orders todos low < medium < high, reversed for SortDesc.
func SortByPriority(todos []Todo, dir SortDirection) []Todo {
	return sortStable(todos, func(a, b Todo) int {
		return directed(dir, a.Priority.Rank()-b.Priority.Rank())
	})
}

// SortByScheduledDate orders scheduled todos chronologically, reversed for
// SortDesc. Unscheduled todos always come last, in either direction.
func SortByScheduledDate(todos []Todo, dir SortDirection) []Todo {
	return sortStable(todos, func(a, b Todo) int {
		switch {
		case a.ScheduledAt == nil && b.ScheduledAt == nil:
			return 0
		case a.ScheduledAt == nil:
			return 1
		case b.ScheduledAt == nil:
			return -1
		}
		return directed(dir, strings.Compare(*a.ScheduledAt, *b.ScheduledAt))
	})
}

// SortByCreatedDate orders todos by creation time, reversed for SortDesc.
func SortByCreatedDate(todos []Todo, dir SortDirection) []Todo {
	return sortStable(todos, func(a, b Todo) int {
		return directed(dir, strings.Compare(a.CreatedAt, b.CreatedAt))
	})
}
