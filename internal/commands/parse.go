package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/colonyops/tend/internal/core/todo"
)

const dateLayout = "2006-01-02"

// splitList flattens repeated and comma-separated flag values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parsePriority(s string) (todo.Priority, error) {
	p := todo.Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return "", nil
	}
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority %q: must be one of low, medium, high", s)
	}
	return p, nil
}

func parsePriorities(values []string) ([]todo.Priority, error) {
	var out []todo.Priority
	for _, v := range splitList(values) {
		p, err := parsePriority(v)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func parseStatus(s string) (todo.CompletionStatus, error) {
	if s == "" {
		return todo.CompletionAll, nil
	}
	status := todo.CompletionStatus(strings.ToLower(s))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status %q: must be one of all, active, completed", s)
	}
	return status, nil
}

func parseSort(criterion string, desc bool) (*todo.SortState, error) {
	if criterion == "" {
		return nil, nil
	}

	var c todo.SortCriterion
	switch strings.ToLower(criterion) {
	case "none":
		c = todo.SortNone
	case "priority":
		c = todo.SortPriority
	case "scheduled", "scheduledat":
		c = todo.SortScheduledAt
	case "created", "createdat":
		c = todo.SortCreatedAt
	default:
		return nil, fmt.Errorf("invalid sort %q: must be one of priority, scheduled, created, none", criterion)
	}

	dir := todo.SortAsc
	if desc {
		dir = todo.SortDesc
	}
	return &todo.SortState{Criterion: c, Direction: dir}, nil
}

// parseDate reads a date given as YYYY-MM-DD, RFC 3339, "today", or
// "tomorrow" and returns it in the stored timestamp layout. Bare dates are
// read in the local zone; endOfDay moves them to the last millisecond of
// that day.
func parseDate(s string, endOfDay bool, now time.Time) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}

	var day time.Time
	switch strings.ToLower(s) {
	case "today":
		day = now
	case "tomorrow":
		day = now.AddDate(0, 0, 1)
	default:
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return todo.FormatTime(t), nil
		}
		t, err := time.ParseInLocation(dateLayout, s, now.Location())
		if err != nil {
			return "", fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", s)
		}
		day = t
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
	if endOfDay {
		start = start.AddDate(0, 0, 1).Add(-time.Millisecond)
	}
	return todo.FormatTime(start), nil
}

// parseStoredTime reads a stored timestamp. ok is false for malformed input.
func parseStoredTime(s string) (time.Time, bool) {
	t, err := time.Parse(todo.TimeLayout, s)
	return t, err == nil
}
