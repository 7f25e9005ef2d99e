package scene

import (
	"github.com/roach88/scenecore/internal/element"
)

// Scene holds the ordered element list of a drawing.
//
// INVARIANTS:
//   - elements is replaced, never written in place, on every mutation
//   - the nonce is bumped exactly once per content-affecting call
//   - element pointers handed out are never modified afterwards
type Scene struct {
	clock    *Clock
	elements []*element.Element
	index    map[string]*element.Element

	nonDeleted      []*element.Element
	nonDeletedNonce int64
}

// New creates a scene holding elements in order. The slice is copied.
func New(elements ...*element.Element) *Scene {
	s := &Scene{clock: NewClock()}
	s.replace(append([]*element.Element(nil), elements...))
	return s
}

// MutationNonce returns the current mutation nonce.
func (s *Scene) MutationNonce() int64 {
	return s.clock.Current()
}

// Elements returns every element, deleted ones included, in z-order.
func (s *Scene) Elements() []*element.Element {
	return s.elements
}

// NonDeletedElements returns the non-deleted elements in z-order. The same
// slice is returned until the next mutation.
func (s *Scene) NonDeletedElements() []*element.Element {
	if s.nonDeleted == nil || s.nonDeletedNonce != s.clock.Current() {
		s.nonDeleted = element.NonDeleted(s.elements)
		s.nonDeletedNonce = s.clock.Current()
	}
	return s.nonDeleted
}

// Get returns the element with id, deleted or not, or nil.
func (s *Scene) Get(id string) *element.Element {
	return s.index[id]
}

// Replace swaps the whole element list and bumps the nonce.
func (s *Scene) Replace(elements []*element.Element) {
	s.replace(append([]*element.Element(nil), elements...))
	s.clock.Next()
}

// Insert appends elements on top of the z-order and bumps the nonce.
func (s *Scene) Insert(elements ...*element.Element) {
	if len(elements) == 0 {
		return
	}
	next := make([]*element.Element, 0, len(s.elements)+len(elements))
	next = append(next, s.elements...)
	next = append(next, elements...)
	s.replace(next)
	s.clock.Next()
}

// Mutate applies fn to copies of the elements named by ids, stores the copies
// with a bumped Version and bumps the nonce once. Unknown ids are skipped.
// Returns the number of elements replaced; the nonce is untouched when zero.
func (s *Scene) Mutate(ids []string, fn func(*element.Element)) int {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	changed := 0
	next := make([]*element.Element, len(s.elements))
	for i, e := range s.elements {
		if !want[e.ID] {
			next[i] = e
			continue
		}
		c := e.Clone()
		fn(c)
		c.Version = e.Version + 1
		next[i] = c
		changed++
	}
	if changed == 0 {
		return 0
	}
	s.replace(next)
	s.clock.Next()
	return changed
}

// Delete marks the named elements deleted.
func (s *Scene) Delete(ids ...string) int {
	return s.Mutate(ids, func(e *element.Element) {
		e.IsDeleted = true
	})
}

func (s *Scene) replace(elements []*element.Element) {
	index := make(map[string]*element.Element, len(elements))
	for _, e := range elements {
		index[e.ID] = e
	}
	s.elements = elements
	s.index = index
	s.nonDeleted = nil
}
