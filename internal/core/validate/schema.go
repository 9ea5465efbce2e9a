package validate

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/colonyops/tend/internal/core/todo"
)

const schemaURL = "https://tend.local/appdata.schema.json"

//go:embed schema/appdata.schema.json
var appDataSchema string

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(schemaURL, strings.NewReader(appDataSchema)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Strict validates every element of decoded snapshot data against the
// snapshot schema. Violations are data-corrupted errors naming the first
// offending location.
func Strict(raw any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile snapshot schema: %w", err)
	}

	if err := schema.Validate(raw); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return &todo.Error{Kind: todo.KindDataCorrupted, Err: err}
		}
		leaf := firstLeaf(ve)
		return todo.Corrupted(fmt.Sprintf("invalid %s: %s", pointerToPath(leaf.InstanceLocation), leaf.Message))
	}

	return nil
}

func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

// pointerToPath renders a JSON pointer such as /todos/0/priority as
// todos[0].priority.
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return "snapshot"
	}

	var b strings.Builder
	for i, part := range strings.Split(ptr, "/") {
		if part != "" && strings.Trim(part, "0123456789") == "" {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
