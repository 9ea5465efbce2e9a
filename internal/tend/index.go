package tend

import (
	"context"

	"github.com/colonyops/tend/internal/core/todo"
)

// Index resolves stored IDs for display.
type Index struct {
	Tags       map[string]todo.Tag
	Categories map[string]todo.Category
	// Prefixes holds the shortest unique prefix length of each todo ID,
	// computed over all todos including deleted ones.
	Prefixes map[string]int
}

// ShortID returns the shortest prefix of id that resolves to it.
func (ix Index) ShortID(id string) string {
	n, ok := ix.Prefixes[id]
	if !ok || n > len(id) {
		return id
	}
	return id[:n]
}

// TagNames returns the names of the tags in ids, skipping unknown IDs.
func (ix Index) TagNames(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if tag, ok := ix.Tags[id]; ok {
			names = append(names, tag.Name)
		}
	}
	return names
}

// CategoryName returns the category name for id, or "".
func (ix Index) CategoryName(id *string) string {
	if id == nil {
		return ""
	}
	return ix.Categories[*id].Name
}

// Index builds the display index from the current state.
func (a *App) Index(ctx context.Context) (Index, error) {
	tr, err := a.Tracker(ctx)
	if err != nil {
		return Index{}, err
	}
	state := tr.State()

	ix := Index{
		Tags:       make(map[string]todo.Tag, len(state.Tags)),
		Categories: make(map[string]todo.Category, len(state.Categories)),
		Prefixes:   todo.UniquePrefixLengths(todo.TodoIDs(state.Todos)),
	}
	for _, t := range state.Tags {
		ix.Tags[t.ID] = t
	}
	for _, c := range state.Categories {
		ix.Categories[c.ID] = c
	}
	return ix, nil
}
