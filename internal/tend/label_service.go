package tend

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/colonyops/tend/internal/core/action"
	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/core/validate"
)

// LabelService manages tags and categories. Names are unique ignoring case;
// the reducer itself does not enforce that.
type LabelService struct {
	app *App
}

// Label is a tag or category with the number of live todos using it.
type Label struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	CreatedAt string `json:"createdAt"`
	Todos     int    `json:"todos"`
}

// AddTag creates a tag named name.
func (s *LabelService) AddTag(ctx context.Context, name string) (todo.Tag, error) {
	name = strings.TrimSpace(name)
	if err := validate.NameField("name", name); err != nil {
		return todo.Tag{}, err
	}

	tr, err := s.app.Tracker(ctx)
	if err != nil {
		return todo.Tag{}, err
	}
	if _, ok := todo.FindTagByName(tr.State().Tags, name); ok {
		return todo.Tag{}, fmt.Errorf("tag %q: %w", name, todo.ErrDuplicateName)
	}

	if err := tr.Dispatch(ctx, action.CreateTag{Name: name}); err != nil {
		return todo.Tag{}, fmt.Errorf("create tag: %w", err)
	}

	tags := tr.State().Tags
	return tags[len(tags)-1], nil
}

// AddCategory creates a category named name.
func (s *LabelService) AddCategory(ctx context.Context, name string) (todo.Category, error) {
	name = strings.TrimSpace(name)
	if err := validate.NameField("name", name); err != nil {
		return todo.Category{}, err
	}

	tr, err := s.app.Tracker(ctx)
	if err != nil {
		return todo.Category{}, err
	}
	if _, ok := todo.FindCategoryByName(tr.State().Categories, name); ok {
		return todo.Category{}, fmt.Errorf("category %q: %w", name, todo.ErrDuplicateName)
	}

	if err := tr.Dispatch(ctx, action.CreateCategory{Name: name}); err != nil {
		return todo.Category{}, fmt.Errorf("create category: %w", err)
	}

	categories := tr.State().Categories
	return categories[len(categories)-1], nil
}

// Tags lists tags in creation order with their usage counts.
func (s *LabelService) Tags(ctx context.Context) ([]Label, error) {
	tr, err := s.app.Tracker(ctx)
	if err != nil {
		return nil, err
	}
	state := tr.State()

	labels := make([]Label, 0, len(state.Tags))
	for _, tag := range state.Tags {
		n := 0
		for _, t := range state.Todos {
			if !t.IsDeleted && t.HasTag(tag.ID) {
				n++
			}
		}
		labels = append(labels, Label{ID: tag.ID, Name: tag.Name, Color: tag.Color, CreatedAt: tag.CreatedAt, Todos: n})
	}
	return labels, nil
}

// Categories lists categories in creation order with their usage counts.
func (s *LabelService) Categories(ctx context.Context) ([]Label, error) {
	tr, err := s.app.Tracker(ctx)
	if err != nil {
		return nil, err
	}
	state := tr.State()

	labels := make([]Label, 0, len(state.Categories))
	for _, c := range state.Categories {
		n := 0
		for _, t := range state.Todos {
			if !t.IsDeleted && t.CategoryID != nil && *t.CategoryID == c.ID {
				n++
			}
		}
		labels = append(labels, Label{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, Todos: n})
	}
	return labels, nil
}

// RemoveTag deletes the tag matching ref, by name or ID prefix, and strips it
// from every todo.
func (s *LabelService) RemoveTag(ctx context.Context, ref string) (todo.Tag, error) {
	tr, err := s.app.Tracker(ctx)
	if err != nil {
		return todo.Tag{}, err
	}
	tags := tr.State().Tags

	tag, ok := todo.FindTagByName(tags, ref)
	if !ok {
		ids := make([]string, 0, len(tags))
		for _, t := range tags {
			ids = append(ids, t.ID)
		}
		id, err := todo.ResolveID(ids, ref)
		if err != nil {
			return todo.Tag{}, fmt.Errorf("tag: %w", err)
		}
		for _, t := range tags {
			if t.ID == id {
				tag = t
			}
		}
	}

	if err := tr.Dispatch(ctx, action.DeleteTag{ID: tag.ID}); err != nil {
		return todo.Tag{}, fmt.Errorf("delete tag: %w", err)
	}
	return tag, nil
}

// RemoveCategory deletes the category matching ref, by name or ID prefix, and
// clears it from every todo.
func (s *LabelService) RemoveCategory(ctx context.Context, ref string) (todo.Category, error) {
	tr, err := s.app.Tracker(ctx)
	if err != nil {
		return todo.Category{}, err
	}
	categories := tr.State().Categories

	category, ok := todo.FindCategoryByName(categories, ref)
	if !ok {
		ids := make([]string, 0, len(categories))
		for _, c := range categories {
			ids = append(ids, c.ID)
		}
		id, err := todo.ResolveID(ids, ref)
		if err != nil {
			return todo.Category{}, fmt.Errorf("category: %w", err)
		}
		for _, c := range categories {
			if c.ID == id {
				category = c
			}
		}
	}

	if err := tr.Dispatch(ctx, action.DeleteCategory{ID: category.ID}); err != nil {
		return todo.Category{}, fmt.Errorf("delete category: %w", err)
	}
	return category, nil
}

// ensureTags returns the IDs of the named tags, creating missing ones.
func (s *LabelService) ensureTags(ctx context.Context, names []string) ([]string, error) {
	ids := []string{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		tr, err := s.app.Tracker(ctx)
		if err != nil {
			return nil, err
		}

		tag, ok := todo.FindTagByName(tr.State().Tags, name)
		if !ok {
			if tag, err = s.AddTag(ctx, name); err != nil {
				return nil, err
			}
		}

		if !slices.Contains(ids, tag.ID) {
			ids = append(ids, tag.ID)
		}
	}
	return ids, nil
}

// ensureCategory returns the ID of the named category, creating it when
// missing. An empty name yields nil.
func (s *LabelService) ensureCategory(ctx context.Context, name string) (*string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	tr, err := s.app.Tracker(ctx)
	if err != nil {
		return nil, err
	}

	category, ok := todo.FindCategoryByName(tr.State().Categories, name)
	if !ok {
		if category, err = s.AddCategory(ctx, name); err != nil {
			return nil, err
		}
	}
	return todo.StringPtr(category.ID), nil
}

type named struct {
	id   string
	name string
}

func tagNames(tags []todo.Tag) []named {
	out := make([]named, 0, len(tags))
	for _, t := range tags {
		out = append(out, named{id: t.ID, name: t.Name})
	}
	return out
}

func categoryNames(categories []todo.Category) []named {
	out := make([]named, 0, len(categories))
	for _, c := range categories {
		out = append(out, named{id: c.ID, name: c.Name})
	}
	return out
}

// matchNames returns the IDs whose names match any pattern, ignoring case.
func matchNames(patterns []string, items []named) ([]string, error) {
	var ids []string
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q", p)
		}
		for _, item := range items {
			ok, err := doublestar.Match(p, strings.ToLower(item.name))
			if err != nil {
				return nil, fmt.Errorf("match %q: %w", p, err)
			}
			if ok && !slices.Contains(ids, item.id) {
				ids = append(ids, item.id)
			}
		}
	}
	return ids, nil
}
