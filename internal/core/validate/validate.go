// Package validate provides shared validation functions: input checks for
// user-entered fields and the structural gate between stored bytes and the
// typed domain model.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/tend/internal/core/todo"
)

// Title validates a todo title is non-empty after trimming whitespace and
// within the length limit.
func Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if n := utf8.RuneCountInString(title); n > todo.MaxTitleLength {
		return fmt.Errorf("title is %d characters, max is %d", n, todo.MaxTitleLength)
	}
	return nil
}

// Description validates a todo description is within the length limit.
func Description(desc string) error {
	if n := utf8.RuneCountInString(desc); n > todo.MaxDescriptionLength {
		return fmt.Errorf("description is %d characters, max is %d", n, todo.MaxDescriptionLength)
	}
	return nil
}

// Name validates a tag or category name is non-empty after trimming whitespace.
func Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// TodoInput validates the user-entered fields of a todo, reporting every
// failing field at once.
func TodoInput(title, description string) error {
	return criterio.ValidateStruct(
		criterio.Run("title", title, Title),
		criterio.Run("description", description, Description),
	)
}

// NameField returns a criterio validator for tag and category names.
func NameField(field, name string) error {
	return criterio.Run(field, name, Name)
}
