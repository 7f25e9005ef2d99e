package selection

import (
	"maps"
	"slices"

	"github.com/roach88/scenecore/internal/element"
)

// State is the selection part of the editor state.
//
// State values are replaced wholesale on every update. Functions in this
// package and in package groups return a new State with freshly allocated
// maps wherever content changes, and never write to the maps of a State they
// were given.
type State struct {
	// SelectedElementIDs has membership semantics: an id is selected iff its
	// value is true.
	SelectedElementIDs map[string]bool `yaml:"selected_element_ids,omitempty" json:"selected_element_ids,omitempty"`

	// SelectedGroupIDs may carry explicit false entries left behind by a
	// deselect.
	SelectedGroupIDs map[string]bool `yaml:"selected_group_ids,omitempty" json:"selected_group_ids,omitempty"`

	// EditingGroupID is the group entered for direct member editing, or "".
	EditingGroupID string `yaml:"editing_group_id,omitempty" json:"editing_group_id,omitempty"`

	// EditingElement is the element whose text or points are being edited.
	EditingElement *element.Element `yaml:"-" json:"-"`
}

// NewState returns a State selecting ids.
func NewState(ids ...string) State {
	return State{
		SelectedElementIDs: SetOf(ids...),
		SelectedGroupIDs:   map[string]bool{},
	}
}

// IsSelected reports whether id is selected.
func (s State) IsSelected(id string) bool {
	return s.SelectedElementIDs[id]
}

// SelectedIDs returns the selected element ids, sorted.
func (s State) SelectedIDs() []string {
	return TrueKeys(s.SelectedElementIDs)
}

// SetOf builds a membership map from ids.
func SetOf(ids ...string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// TrueKeys returns the keys of m whose value is true, sorted.
func TrueKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k, v := range m {
		if v {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Merge returns a new map holding every entry of base overlaid with extra.
func Merge(base, extra map[string]bool) map[string]bool {
	out := make(map[string]bool, len(base)+len(extra))
	maps.Copy(out, base)
	maps.Copy(out, extra)
	return out
}

// EqualIDs reports whether a and b hold the same keys with the same values.
// Nil and empty maps are equal.
func EqualIDs(a, b map[string]bool) bool {
	return maps.Equal(a, b)
}

// MakeNextSelectedElementIDs returns prev.SelectedElementIDs itself when next
// holds the same content, and next otherwise. Consumers that memoize on the
// map can then treat an unchanged selection as a no-op.
func MakeNextSelectedElementIDs(next map[string]bool, prev State) map[string]bool {
	if EqualIDs(prev.SelectedElementIDs, next) {
		return prev.SelectedElementIDs
	}
	return next
}
