package kv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strSize(k, v string) int64 { return int64(len(k) + len(v)) }

func TestStore_PutGet(t *testing.T) {
	s := New[string, int]()

	require.NoError(t, s.Put("foo", 42))
	val, ok := s.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 42, val)

	_, ok = s.Get("bar")
	assert.False(t, ok)
	assert.Zero(t, s.Used())
}

func TestStore_Upsert(t *testing.T) {
	s := New[string, int]()

	inc := func(cur int, exists bool) int {
		if !exists {
			return 1
		}
		return cur + 1
	}
	require.NoError(t, s.Upsert("n", inc))
	require.NoError(t, s.Upsert("n", inc))

	val, _ := s.Get("n")
	assert.Equal(t, 2, val)
}

func TestStore_Bounded(t *testing.T) {
	s := NewBounded[string, string](10, strSize)

	require.NoError(t, s.Put("a", "1234"))
	assert.Equal(t, int64(5), s.Used())

	err := s.Put("b", "123456")
	require.ErrorIs(t, err, ErrFull)
	_, ok := s.Get("b")
	assert.False(t, ok, "rejected write is not stored")
	assert.Equal(t, int64(5), s.Used())

	// Replacing only counts the new value.
	require.NoError(t, s.Put("a", "123456789"))
	assert.Equal(t, int64(10), s.Used())

	assert.True(t, s.Delete("a"))
	assert.Zero(t, s.Used())
	require.NoError(t, s.Put("b", "123456"))
}

func TestStore_NewBoundedWithoutLimit(t *testing.T) {
	s := NewBounded[string, string](0, strSize)
	require.NoError(t, s.Put("k", "a long value well past any limit"))
	assert.Zero(t, s.Used())
}

func TestStore_Delete(t *testing.T) {
	s := New[string, string]()
	require.NoError(t, s.Put("key", "value"))

	assert.True(t, s.Delete("key"))
	assert.False(t, s.Delete("key"))

	_, ok := s.Get("key")
	assert.False(t, ok)
}

func TestStore_Clear(t *testing.T) {
	s := NewBounded[string, string](100, strSize)
	require.NoError(t, s.Put("a", "1"))
	require.NoError(t, s.Put("b", "2"))

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Zero(t, s.Used())
}

func TestStore_Keys(t *testing.T) {
	s := New[string, int]()
	require.NoError(t, s.Put("a", 1))
	require.NoError(t, s.Put("b", 2))

	assert.ElementsMatch(t, []string{"a", "b"}, s.Keys())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New[int, int]()
	var wg sync.WaitGroup

	for i := range 100 {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = s.Put(n, n*2)
		}(i)
		go func(n int) {
			defer wg.Done()
			s.Get(n)
		}(i)
	}

	wg.Wait()

	assert.Equal(t, 100, s.Len())
}
