package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scenecore/internal/element"
)

func newTestScene() *Scene {
	return New(
		&element.Element{ID: "a", Type: element.TypeRectangle},
		&element.Element{ID: "b", Type: element.TypeEllipse},
		&element.Element{ID: "c", Type: element.TypeText},
	)
}

func TestScene_New(t *testing.T) {
	s := newTestScene()
	assert.Equal(t, int64(0), s.MutationNonce())
	assert.Equal(t, []string{"a", "b", "c"}, element.IDs(s.Elements()))
	assert.Equal(t, "b", s.Get("b").ID)
	assert.Nil(t, s.Get("missing"))
}

func TestScene_MutateReplacesElement(t *testing.T) {
	s := newTestScene()
	before := s.Get("a")
	list := s.Elements()

	n := s.Mutate([]string{"a", "missing"}, func(e *element.Element) {
		e.X += 10
	})

	require.Equal(t, 1, n)
	assert.Equal(t, int64(1), s.MutationNonce())

	after := s.Get("a")
	assert.NotSame(t, before, after)
	assert.Zero(t, before.X, "old element must not be written")
	assert.Equal(t, 10.0, after.X)
	assert.Equal(t, before.Version+1, after.Version)
	assert.Same(t, before, list[0], "old element list must not be written")
	assert.Same(t, s.Get("b"), list[1], "untouched elements are shared")
}

func TestScene_MutateNoMatchKeepsNonce(t *testing.T) {
	s := newTestScene()
	n := s.Mutate([]string{"missing"}, func(e *element.Element) {})
	assert.Zero(t, n)
	assert.Equal(t, int64(0), s.MutationNonce())
}

func TestScene_InsertAppendsOnTop(t *testing.T) {
	s := newTestScene()
	s.Insert(&element.Element{ID: "d"}, &element.Element{ID: "e"})

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, element.IDs(s.Elements()))
	assert.Equal(t, int64(1), s.MutationNonce(), "one insert is one bump")

	s.Insert()
	assert.Equal(t, int64(1), s.MutationNonce())
}

func TestScene_Replace(t *testing.T) {
	s := newTestScene()
	next := []*element.Element{{ID: "x"}}
	s.Replace(next)
	next[0] = &element.Element{ID: "y"}

	assert.Equal(t, []string{"x"}, element.IDs(s.Elements()))
	assert.Equal(t, int64(1), s.MutationNonce())
	assert.Nil(t, s.Get("a"))
}

func TestScene_DeleteAndNonDeleted(t *testing.T) {
	s := newTestScene()

	first := s.NonDeletedElements()
	assert.Len(t, first, 3)
	again := s.NonDeletedElements()
	assert.Same(t, &first[0], &again[0], "cached until the next mutation")

	require.Equal(t, 1, s.Delete("b"))
	assert.Equal(t, []string{"a", "c"}, element.IDs(s.NonDeletedElements()))
	assert.True(t, s.Get("b").IsDeleted)
	assert.Len(t, s.Elements(), 3)
}
