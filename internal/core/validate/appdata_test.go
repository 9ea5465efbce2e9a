package validate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tend/internal/core/todo"
)

func decodeRaw(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestAppData_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"null", `null`, "data is not an object"},
		{"bare string", `"hello"`, "data is not an object"},
		{"array", `[]`, "data is not an object"},
		{"missing version", `{"todos":[],"tags":[],"categories":[]}`, "missing or invalid version"},
		{"numeric version", `{"version":1,"todos":[],"tags":[],"categories":[]}`, "missing or invalid version"},
		{"missing todos", `{"version":"1.0.0","tags":[],"categories":[]}`, "missing or invalid todos array"},
		{"tags not array", `{"version":"1.0.0","todos":[],"tags":{},"categories":[]}`, "missing or invalid tags array"},
		{"categories null", `{"version":"1.0.0","todos":[],"tags":[],"categories":null}`, "missing or invalid categories array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AppData(decodeRaw(t, tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, todo.ErrDataCorrupted)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestAppData_AcceptsShapeWithoutCheckingElements(t *testing.T) {
	raw := decodeRaw(t, `{
		"version": "1.0.0",
		"todos": [{"id": "a", "title": "x", "priority": "urgent", "extra": true}],
		"tags": [],
		"categories": []
	}`)

	data, err := AppData(raw)
	require.NoError(t, err)
	require.Len(t, data.Todos, 1)
	assert.Equal(t, "a", data.Todos[0].ID)
	assert.Equal(t, todo.Priority("urgent"), data.Todos[0].Priority)
	assert.Equal(t, []string{}, data.Todos[0].TagIDs)
}

func TestAppData_UnrepresentableElement(t *testing.T) {
	raw := decodeRaw(t, `{"version":"1.0.0","todos":[42],"tags":[],"categories":[]}`)

	_, err := AppData(raw)
	assert.ErrorIs(t, err, todo.ErrDataCorrupted)
}

func validTodoJSON() map[string]any {
	return map[string]any{
		"id":          "a",
		"title":       "Buy milk",
		"description": "",
		"isCompleted": false,
		"isDeleted":   false,
		"scheduledAt": nil,
		"categoryId":  nil,
		"priority":    "medium",
		"tagIds":      []any{},
		"createdAt":   "2024-01-01T00:00:00.000Z",
		"updatedAt":   "2024-01-01T00:00:00.000Z",
		"deletedAt":   nil,
	}
}

func TestTodo(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m map[string]any)
		wantMsg string
	}{
		{"valid", func(map[string]any) {}, ""},
		{"extra field passes", func(m map[string]any) { m["color"] = "red" }, ""},
		{"missing id", func(m map[string]any) { delete(m, "id") }, "todo missing or invalid id"},
		{"numeric title", func(m map[string]any) { m["title"] = 3 }, "todo missing or invalid title"},
		{"string isDeleted", func(m map[string]any) { m["isDeleted"] = "no" }, "todo missing or invalid isDeleted"},
		{"tagIds null", func(m map[string]any) { m["tagIds"] = nil }, "todo missing or invalid tagIds array"},
		{"bad priority", func(m map[string]any) { m["priority"] = "urgent" }, "todo has invalid priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validTodoJSON()
			tt.mutate(m)

			got, err := Todo(m)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, "a", got.ID)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}

	t.Run("untyped scheduledAt fails decoding", func(t *testing.T) {
		m := validTodoJSON()
		m["scheduledAt"] = 12
		_, err := Todo(m)
		assert.ErrorIs(t, err, todo.ErrDataCorrupted)
		assert.Contains(t, err.Error(), "failed to decode todo")
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := Todo([]any{})
		assert.EqualError(t, err, "todo is not an object")
	})
}

func TestDecodeAppData(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		_, err := DecodeAppData([]byte(`{not json`), false)
		assert.ErrorIs(t, err, todo.ErrDataCorrupted)
		assert.Contains(t, err.Error(), "failed to parse storage data")
	})

	t.Run("valid snapshot", func(t *testing.T) {
		b := []byte(`{"version":"1.0.0","todos":[],"tags":[{"id":"t","name":"n","color":"#fff","createdAt":"x"}],"categories":[]}`)
		data, err := DecodeAppData(b, false)
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", data.Version)
		assert.Len(t, data.Tags, 1)
		assert.Empty(t, data.Todos)
	})

	t.Run("strict rejects malformed element", func(t *testing.T) {
		b := []byte(`{"version":"1.0.0","todos":[{"id":"a","title":"x","description":"","isCompleted":false,"isDeleted":false,"priority":"urgent","tagIds":[],"createdAt":"c","updatedAt":"u"}],"tags":[],"categories":[]}`)

		_, err := DecodeAppData(b, false)
		require.NoError(t, err)

		_, err = DecodeAppData(b, true)
		require.Error(t, err)
		assert.ErrorIs(t, err, todo.ErrDataCorrupted)
		assert.Contains(t, err.Error(), "todos[0].priority")
	})
}
