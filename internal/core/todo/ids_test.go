package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveID(t *testing.T) {
	all := []string{"abc123", "abd456", "ABC"}

	tests := []struct {
		name    string
		prefix  string
		want    string
		wantErr error
	}{
		{"exact match wins", "abc", "ABC", nil},
		{"unique prefix", "abd", "abd456", nil},
		{"case insensitive", "ABD4", "abd456", nil},
		{"ambiguous", "ab", "", ErrAmbiguousID},
		{"missing", "zzz", "", ErrNotFound},
		{"empty", "  ", "", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveID(all, tt.prefix)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUniquePrefixLengths(t *testing.T) {
	got := UniquePrefixLengths([]string{"abc", "abd", "x"})
	assert.Equal(t, map[string]int{"abc": 3, "abd": 3, "x": 1}, got)
}

func TestFindByName(t *testing.T) {
	tags := []Tag{{ID: "t1", Name: "Work"}}
	tag, ok := FindTagByName(tags, "work")
	require.True(t, ok)
	assert.Equal(t, "t1", tag.ID)

	_, ok = FindCategoryByName(nil, "work")
	assert.False(t, ok)
}

func TestTagColor(t *testing.T) {
	assert.Equal(t, TagColor(0), TagColor(PaletteSize))
	assert.NotEqual(t, TagColor(0), TagColor(1))
}
