package validate

import (
	"encoding/json"
	"fmt"

	"github.com/colonyops/tend/internal/core/todo"
)

// AppData checks the top-level shape of decoded, untyped snapshot data and
// returns it re-typed. It fails with a data-corrupted error when raw is not an
// object, when version is not a string, or when any collection is missing or
// not an array. Elements are not checked individually.
func AppData(raw any) (todo.AppData, error) {
	if err := appDataShape(raw); err != nil {
		return todo.AppData{}, err
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return todo.AppData{}, &todo.Error{Kind: todo.KindDataCorrupted, Msg: "failed to re-encode storage data", Err: err}
	}
	return decodeTyped(b)
}

func appDataShape(raw any) error {
	obj, ok := raw.(map[string]any)
	if !ok {
		return todo.Corrupted("data is not an object")
	}

	if _, ok := obj["version"].(string); !ok {
		return todo.Corrupted("missing or invalid version")
	}

	for _, key := range []string{"todos", "tags", "categories"} {
		if _, ok := obj[key].([]any); !ok {
			return todo.Corrupted(fmt.Sprintf("missing or invalid %s array", key))
		}
	}

	return nil
}

// Todo checks a single decoded todo record and returns it re-typed.
// scheduledAt, categoryId, and deletedAt are not checked.
func Todo(raw any) (todo.Todo, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return todo.Todo{}, todo.Corrupted("todo is not an object")
	}

	for _, field := range []string{"id", "title", "description", "createdAt", "updatedAt"} {
		if _, ok := obj[field].(string); !ok {
			return todo.Todo{}, todo.Corrupted("todo missing or invalid " + field)
		}
	}

	for _, field := range []string{"isCompleted", "isDeleted"} {
		if _, ok := obj[field].(bool); !ok {
			return todo.Todo{}, todo.Corrupted("todo missing or invalid " + field)
		}
	}

	if _, ok := obj["tagIds"].([]any); !ok {
		return todo.Todo{}, todo.Corrupted("todo missing or invalid tagIds array")
	}

	if p, _ := obj["priority"].(string); !todo.Priority(p).IsValid() {
		return todo.Todo{}, todo.Corrupted("todo has invalid priority")
	}

	b, err := json.Marshal(obj)
	if err != nil {
		return todo.Todo{}, &todo.Error{Kind: todo.KindDataCorrupted, Msg: "failed to re-encode todo", Err: err}
	}

	var t todo.Todo
	if err := json.Unmarshal(b, &t); err != nil {
		return todo.Todo{}, &todo.Error{Kind: todo.KindDataCorrupted, Msg: "failed to decode todo", Err: err}
	}
	return t, nil
}

// DecodeAppData parses stored bytes into a snapshot. Parse and shape failures
// are data-corrupted errors. With strict set, every element is also checked
// against the snapshot schema.
func DecodeAppData(data []byte, strict bool) (todo.AppData, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return todo.AppData{}, &todo.Error{Kind: todo.KindDataCorrupted, Msg: "failed to parse storage data", Err: err}
	}

	if err := appDataShape(raw); err != nil {
		return todo.AppData{}, err
	}

	if strict {
		if err := Strict(raw); err != nil {
			return todo.AppData{}, err
		}
	}

	return decodeTyped(data)
}

// decodeTyped decodes shape-checked bytes. Elements whose JSON types do not
// fit the domain model cannot be represented and are reported as corrupted.
func decodeTyped(b []byte) (todo.AppData, error) {
	var data todo.AppData
	if err := json.Unmarshal(b, &data); err != nil {
		return todo.AppData{}, &todo.Error{Kind: todo.KindDataCorrupted, Msg: "failed to decode storage data", Err: err}
	}

	if data.Todos == nil {
		data.Todos = []todo.Todo{}
	}
	if data.Tags == nil {
		data.Tags = []todo.Tag{}
	}
	if data.Categories == nil {
		data.Categories = []todo.Category{}
	}
	for i := range data.Todos {
		if data.Todos[i].TagIDs == nil {
			data.Todos[i].TagIDs = []string{}
		}
	}

	return data, nil
}
