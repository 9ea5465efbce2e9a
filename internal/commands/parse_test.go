package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tend/internal/core/todo"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a, b", "", " c "}))
	assert.Nil(t, splitList(nil))
}

func TestParsePriorities(t *testing.T) {
	got, err := parsePriorities([]string{"High,low", "MEDIUM"})
	require.NoError(t, err)
	assert.Equal(t, []todo.Priority{todo.PriorityHigh, todo.PriorityLow, todo.PriorityMedium}, got)

	_, err = parsePriorities([]string{"urgent"})
	assert.ErrorContains(t, err, "invalid priority")

	p, err := parsePriority("")
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    todo.CompletionStatus
		wantErr bool
	}{
		{"", todo.CompletionAll, false},
		{"active", todo.CompletionActive, false},
		{"Completed", todo.CompletionCompleted, false},
		{"done", "", true},
	}

	for _, tt := range tests {
		got, err := parseStatus(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseSort(t *testing.T) {
	got, err := parseSort("", false)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseSort("scheduled", true)
	require.NoError(t, err)
	assert.Equal(t, &todo.SortState{Criterion: todo.SortScheduledAt, Direction: todo.SortDesc}, got)

	got, err = parseSort("createdAt", false)
	require.NoError(t, err)
	assert.Equal(t, &todo.SortState{Criterion: todo.SortCreatedAt, Direction: todo.SortAsc}, got)

	got, err = parseSort("none", false)
	require.NoError(t, err)
	assert.Equal(t, todo.SortNone, got.Criterion)

	_, err = parseSort("title", false)
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	now := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		in        string
		endOfDay  bool
		want      string
		wantError bool
	}{
		{"", false, "", false},
		{"2024-06-03", false, "2024-06-03T00:00:00.000Z", false},
		{"2024-06-03", true, "2024-06-03T23:59:59.999Z", false},
		{"today", false, "2024-05-01T00:00:00.000Z", false},
		{"tomorrow", true, "2024-05-02T23:59:59.999Z", false},
		{"2024-06-03T10:15:00+02:00", true, "2024-06-03T08:15:00.000Z", false},
		{"next week", false, "", true},
	}

	for _, tt := range tests {
		got, err := parseDate(tt.in, tt.endOfDay, now)
		if tt.wantError {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseStoredTime(t *testing.T) {
	got, ok := parseStoredTime("2024-06-03T08:15:00.000Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 3, 8, 15, 0, 0, time.UTC), got)

	_, ok = parseStoredTime("yesterday")
	assert.False(t, ok)
}
