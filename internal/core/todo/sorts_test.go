package todo

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortByPriority(t *testing.T) {
	todos := []Todo{
		newTodo("m", func(t *Todo) { t.Priority = PriorityMedium }),
		newTodo("h", func(t *Todo) { t.Priority = PriorityHigh }),
		newTodo("l", func(t *Todo) { t.Priority = PriorityLow }),
	}

	asc := SortByPriority(todos, SortAsc)
	assert.Equal(t, []string{"l", "m", "h"}, ids(asc))

	desc := SortByPriority(asc, SortDesc)
	want := ids(asc)
	slices.Reverse(want)
	assert.Equal(t, want, ids(desc))

	assert.Equal(t, []string{"m", "h", "l"}, ids(todos), "input must not be reordered")
}

func TestSortByPriority_StableTies(t *testing.T) {
	todos := []Todo{
		newTodo("h1", func(t *Todo) { t.Priority = PriorityHigh }),
		newTodo("l1", func(t *Todo) { t.Priority = PriorityLow }),
		newTodo("h2", func(t *Todo) { t.Priority = PriorityHigh }),
		newTodo("l2", func(t *Todo) { t.Priority = PriorityLow }),
	}

	assert.Equal(t, []string{"l1", "l2", "h1", "h2"}, ids(SortByPriority(todos, SortAsc)))
	assert.Equal(t, []string{"h1", "h2", "l1", "l2"}, ids(SortByPriority(todos, SortDesc)))
}

func TestSortByScheduledDate(t *testing.T) {
	todos := []Todo{
		newTodo("none1"),
		newTodo("june", func(t *Todo) { t.ScheduledAt = ptr("2024-06-01T00:00:00.000Z") }),
		newTodo("none2"),
		newTodo("jan", func(t *Todo) { t.ScheduledAt = ptr("2024-01-01T00:00:00.000Z") }),
	}

	tests := []struct {
		dir  SortDirection
		want []string
	}{
		{SortAsc, []string{"jan", "june", "none1", "none2"}},
		{SortDesc, []string{"june", "jan", "none1", "none2"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			got := SortByScheduledDate(todos, tt.dir)
			require.Len(t, got, len(todos))
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSortByScheduledDate_UnscheduledAlwaysLast(t *testing.T) {
	todos := []Todo{
		newTodo("a"),
		newTodo("b", func(t *Todo) { t.ScheduledAt = ptr("2030-01-01T00:00:00.000Z") }),
		newTodo("c"),
		newTodo("d", func(t *Todo) { t.ScheduledAt = ptr("2020-01-01T00:00:00.000Z") }),
	}

	for _, dir := range []SortDirection{SortAsc, SortDesc} {
		got := SortByScheduledDate(todos, dir)
		seenUnscheduled := false
		for _, td := range got {
			if td.ScheduledAt == nil {
				seenUnscheduled = true
				continue
			}
			assert.False(t, seenUnscheduled, "scheduled todo %s after unscheduled (%s)", td.ID, dir)
		}
	}
}

func TestSortByCreatedDate(t *testing.T) {
	todos := []Todo{
		newTodo("second", func(t *Todo) { t.CreatedAt = "2024-01-01T00:00:00.002Z" }),
		newTodo("first", func(t *Todo) { t.CreatedAt = "2024-01-01T00:00:00.001Z" }),
		newTodo("third", func(t *Todo) { t.CreatedAt = "2024-01-01T00:00:01.000Z" }),
	}

	assert.Equal(t, []string{"first", "second", "third"}, ids(SortByCreatedDate(todos, SortAsc)))
	assert.Equal(t, []string{"third", "second", "first"}, ids(SortByCreatedDate(todos, SortDesc)))
}
