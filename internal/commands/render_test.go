package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tend/internal/core/config"
	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/tend"
)

var renderNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func renderIndex() tend.Index {
	return tend.Index{
		Tags: map[string]todo.Tag{
			"tag-1": {ID: "tag-1", Name: "work", Color: todo.TagColor(0)},
		},
		Categories: map[string]todo.Category{
			"cat-1": {ID: "cat-1", Name: "errands"},
		},
		Prefixes: map[string]int{"abc123": 3, "abd456": 3},
	}
}

func TestRenderTodos(t *testing.T) {
	todos := []todo.Todo{
		{
			ID:          "abc123",
			Title:       "buy milk",
			Priority:    todo.PriorityHigh,
			TagIDs:      []string{"tag-1"},
			CategoryID:  todo.StringPtr("cat-1"),
			ScheduledAt: todo.StringPtr("2024-05-01T00:00:00.000Z"),
		},
		{ID: "abd456", Title: "file taxes", Priority: todo.PriorityLow, IsCompleted: true, TagIDs: []string{}},
	}

	var buf bytes.Buffer
	renderTodos(&buf, todos, renderIndex(), renderNow)
	out := buf.String()

	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "abc")
	assert.NotContains(t, out, "abc123")
	assert.Contains(t, out, "buy milk")
	assert.Contains(t, out, "work")
	assert.Contains(t, out, "errands")
	assert.Contains(t, out, "overdue")
	assert.Contains(t, out, "file taxes")
}

func TestScheduledLabel(t *testing.T) {
	future := todo.Todo{ScheduledAt: todo.StringPtr("2024-05-12T00:00:00.000Z")}
	assert.Contains(t, scheduledLabel(future, renderNow), "from now")

	past := todo.Todo{ScheduledAt: todo.StringPtr("2024-05-01T00:00:00.000Z")}
	assert.Contains(t, scheduledLabel(past, renderNow), "overdue")

	past.IsCompleted = true
	assert.Contains(t, scheduledLabel(past, renderNow), "ago")

	assert.Empty(t, scheduledLabel(todo.Todo{}, renderNow))
	assert.Equal(t, "garbage", scheduledLabel(todo.Todo{ScheduledAt: todo.StringPtr("garbage")}, renderNow))
}

func TestTitleCell_Truncates(t *testing.T) {
	long := strings.Repeat("x", maxTitleWidth+10)
	got := titleCell(todo.Todo{Title: long})
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Len(t, []rune(got), maxTitleWidth)

	assert.Equal(t, "short", titleCell(todo.Todo{Title: "short"}))
}

func TestRenderLabels(t *testing.T) {
	labels := []tend.Label{
		{ID: "tag-1", Name: "work", Color: todo.TagColor(0), CreatedAt: "2024-05-01T00:00:00.000Z", Todos: 2},
		{ID: "tag-2", Name: "home", CreatedAt: "not a time", Todos: 0},
	}

	var buf bytes.Buffer
	renderLabels(&buf, labels, true)
	out := buf.String()

	assert.Contains(t, out, "work")
	assert.Contains(t, out, "home")
	assert.Contains(t, out, "not a time")
}

func TestRenderTodo(t *testing.T) {
	item := todo.Todo{
		ID:          "abc123",
		Title:       "plan trip",
		Description: "# Packing\n\n- passport\n- charger",
		Priority:    todo.PriorityMedium,
		TagIDs:      []string{"tag-1"},
		CreatedAt:   "2024-05-01T00:00:00.000Z",
		UpdatedAt:   "2024-05-02T00:00:00.000Z",
	}

	for _, style := range []string{"notty", config.MarkdownStyleTheme} {
		t.Run(style, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, renderTodo(&buf, item, renderIndex(), style, renderNow))
			out := buf.String()

			assert.Contains(t, out, "plan trip")
			assert.Contains(t, out, "abc123")
			assert.Contains(t, out, "open")
			assert.Contains(t, out, "passport")
		})
	}
}
