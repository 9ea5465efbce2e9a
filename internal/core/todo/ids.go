package todo

import (
	"fmt"
	"strings"
)

// ResolveID returns the single ID in ids that equals or starts with prefix,
// compared case-insensitively. An exact match wins over longer prefix matches.
func ResolveID(ids []string, prefix string) (string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return "", ErrNotFound
	}

	var matches []string
	for _, id := range ids {
		lower := strings.ToLower(id)
		if lower == prefix {
			return id, nil
		}
		if strings.HasPrefix(lower, prefix) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d records", ErrAmbiguousID, prefix, len(matches))
	}
}

// TodoIDs returns the IDs of todos in order.
func TodoIDs(todos []Todo) []string {
	ids := make([]string, 0, len(todos))
	for _, t := range todos {
		ids = append(ids, t.ID)
	}
	return ids
}

// UniquePrefixLengths returns the shortest prefix length that identifies
// each ID among ids. Used to abbreviate IDs in listings.
func UniquePrefixLengths(ids []string) map[string]int {
	lengths := make(map[string]int, len(ids))
	for _, id := range ids {
		lengths[id] = uniquePrefixLength(id, ids)
	}
	return lengths
}

func uniquePrefixLength(id string, ids []string) int {
	lower := strings.ToLower(id)
	for length := 1; length <= len(lower); length++ {
		prefix := lower[:length]
		unique := true
		for _, other := range ids {
			if other == id {
				continue
			}
			if strings.HasPrefix(strings.ToLower(other), prefix) {
				unique = false
				break
			}
		}
		if unique {
			return length
		}
	}
	return len(id)
}

// FindTodo returns the todo with the given ID.
func FindTodo(todos []Todo, id string) (Todo, bool) {
	for _, t := range todos {
		if t.ID == id {
			return t, true
		}
	}
	return Todo{}, false
}

// FindTagByName returns the tag whose name equals name, ignoring case.
func FindTagByName(tags []Tag, name string) (Tag, bool) {
	for _, tag := range tags {
		if strings.EqualFold(tag.Name, name) {
			return tag, true
		}
	}
	return Tag{}, false
}

// FindCategoryByName returns the category whose name equals name, ignoring case.
func FindCategoryByName(categories []Category, name string) (Category, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}
