package selection

import (
	"reflect"
	"slices"
	"unsafe"

	"github.com/roach88/scenecore/internal/element"
)

// KeyMode selects how Cache decides that a memoized result can be reused.
type KeyMode int

const (
	// KeyExact reuses a result only for content-identical inputs.
	KeyExact KeyMode = iota

	// KeyApprox keys on counts and references. Two calls with the same
	// element count and selection count but different members share a slot.
	KeyApprox
)

// String returns "exact" or "approx".
func (m KeyMode) String() string {
	if m == KeyApprox {
		return "approx"
	}
	return "exact"
}

// ParseKeyMode maps "exact"/"approx" to a KeyMode. Anything else is exact.
func ParseKeyMode(s string) KeyMode {
	if s == "approx" {
		return KeyApprox
	}
	return KeyExact
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithKeyMode sets the cache key mode. Default: KeyExact.
func WithKeyMode(mode KeyMode) CacheOption {
	return func(c *Cache) {
		c.mode = mode
	}
}

// CacheStats counts lookups per slot.
type CacheStats struct {
	Hits   int
	Misses int
}

// Cache holds the last computed selected-element list, selected-group
// result and is-any-selected flag of one editing session.
//
// Cache is not safe for concurrent use. The editing session is single
// threaded and owns exactly one Cache.
type Cache struct {
	mode  KeyMode
	stats CacheStats

	selected struct {
		valid    bool
		key      uint64
		elements int
		ids      int
		result   []*element.Element
	}

	groups struct {
		valid   bool
		key     uint64
		count   int
		editing string
		result  State
	}

	some struct {
		valid  bool
		key    uint64
		slice  unsafe.Pointer
		length int
		ids    unsafe.Pointer
		result bool
	}
}

// NewCache creates an empty cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode returns the key mode.
func (c *Cache) Mode() KeyMode {
	if c == nil {
		return KeyExact
	}
	return c.mode
}

// Stats returns hit/miss counters across all slots.
func (c *Cache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	return c.stats
}

// Invalidate drops every memoized result. Callers that cannot guarantee
// fresh inputs (for example after editing an element in place) must call it.
func (c *Cache) Invalidate() {
	if c == nil {
		return
	}
	c.selected.valid = false
	c.selected.result = nil
	c.groups.valid = false
	c.groups.result = State{}
	c.some.valid = false
	c.some.slice = nil
	c.some.ids = nil
}

// memoSelected returns the cached base selection for these inputs, or runs
// compute and stores its result.
//
// KeyApprox reproduces the historic key (element count, selected-id count)
// and ignores includeBoundText.
func (c *Cache) memoSelected(elements []*element.Element, st State, includeBoundText bool, compute func() []*element.Element) []*element.Element {
	if c == nil {
		return compute()
	}

	var key uint64
	if c.mode == KeyExact {
		key = newFingerprint().
			elements(elements).
			ids(st.SelectedElementIDs).
			bool(includeBoundText).
			sum()
	}

	s := &c.selected
	hit := s.valid
	if hit {
		if c.mode == KeyExact {
			hit = s.key == key
		} else {
			hit = s.elements == len(elements) && s.ids == len(st.SelectedElementIDs)
		}
	}
	if hit {
		c.stats.Hits++
		return s.result
	}

	c.stats.Misses++
	s.result = compute()
	s.key = key
	s.elements = len(elements)
	s.ids = len(st.SelectedElementIDs)
	s.valid = true
	return s.result
}

// MemoGroups memoizes the group-selection result of package groups.
//
// KeyApprox reuses the previous result as long as the number of selected
// elements and the editing group are unchanged, whatever else differs.
func (c *Cache) MemoGroups(selected, elements []*element.Element, st State, compute func() State) State {
	if c == nil {
		return compute()
	}

	var key uint64
	if c.mode == KeyExact {
		key = newFingerprint().
			elements(selected).
			elements(elements).
			state(st).
			sum()
	}

	g := &c.groups
	hit := g.valid
	if hit {
		if c.mode == KeyExact {
			hit = g.key == key
		} else {
			hit = g.count == len(selected) && g.editing == st.EditingGroupID
		}
	}
	if hit {
		c.stats.Hits++
		return g.result
	}

	c.stats.Misses++
	g.result = compute()
	g.key = key
	g.count = len(selected)
	g.editing = st.EditingGroupID
	g.valid = true
	return g.result
}

// memoSome memoizes IsSomeElementSelected. KeyApprox compares the identity
// of the element slice and of the selection map, which is exact as long as
// callers never modify either in place.
func (c *Cache) memoSome(elements []*element.Element, st State, compute func() bool) bool {
	if c == nil {
		return compute()
	}

	var key uint64
	var slice, ids unsafe.Pointer
	if c.mode == KeyExact {
		key = newFingerprint().
			elements(elements).
			ids(st.SelectedElementIDs).
			sum()
	} else {
		slice = unsafe.Pointer(unsafe.SliceData(elements))
		ids = mapPointer(st.SelectedElementIDs)
	}

	s := &c.some
	hit := s.valid
	if hit {
		if c.mode == KeyExact {
			hit = s.key == key
		} else {
			hit = s.slice == slice && s.length == len(elements) && s.ids == ids
		}
	}
	if hit {
		c.stats.Hits++
		return s.result
	}

	c.stats.Misses++
	s.result = compute()
	s.key = key
	s.slice = slice
	s.length = len(elements)
	s.ids = ids
	s.valid = true
	return s.result
}

func mapPointer(m map[string]bool) unsafe.Pointer {
	if m == nil {
		return nil
	}
	return reflect.ValueOf(m).UnsafePointer()
}

// SameIDs reports whether a and b are the same map (not merely equal).
func SameIDs(a, b map[string]bool) bool {
	return mapPointer(a) == mapPointer(b)
}

func sortStrings(s []string) {
	slices.Sort(s)
}
