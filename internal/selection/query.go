package selection

import (
	"github.com/roach88/scenecore/internal/element"
)

// Options widens SelectedElements.
type Options struct {
	// IncludeBoundTextElement also returns labels whose container is
	// selected.
	IncludeBoundTextElement bool

	// IncludeElementsInFrames expands every selected frame into its
	// children, each listed before the frame itself.
	IncludeElementsInFrames bool
}

// SelectedElements returns the selected elements in z-order.
//
// The base result (before frame expansion) is memoized in c. Under
// KeyApprox the memo key is (len(elements), len(SelectedElementIDs)).
func SelectedElements(c *Cache, elements []*element.Element, st State, opts Options) []*element.Element {
	base := c.memoSelected(elements, st, opts.IncludeBoundTextElement, func() []*element.Element {
		out := make([]*element.Element, 0, len(st.SelectedElementIDs))
		for _, e := range elements {
			if st.SelectedElementIDs[e.ID] {
				out = append(out, e)
				continue
			}
			if opts.IncludeBoundTextElement && e.IsBoundToContainer() && st.SelectedElementIDs[e.ContainerID] {
				out = append(out, e)
			}
		}
		// Capped so appends by callers never write into the cached array.
		return out[:len(out):len(out)]
	})

	if !opts.IncludeElementsInFrames {
		return base
	}

	out := make([]*element.Element, 0, len(base))
	for _, e := range base {
		if e.IsFrame() {
			out = append(out, element.FrameElements(elements, e.ID)...)
		}
		out = append(out, e)
	}
	return out
}

// TargetElements returns the element being edited when there is one, and
// otherwise the selection including bound labels.
func TargetElements(c *Cache, elements []*element.Element, st State) []*element.Element {
	if st.EditingElement != nil {
		return []*element.Element{st.EditingElement}
	}
	return SelectedElements(c, elements, st, Options{IncludeBoundTextElement: true})
}

// CommonAttribute returns the value get yields for every selected element,
// and false when the selection is empty or disagrees.
func CommonAttribute[T comparable](c *Cache, elements []*element.Element, st State, get func(*element.Element) T) (T, bool) {
	var zero T
	seen := make(map[T]struct{})
	var first T
	for _, e := range SelectedElements(c, elements, st, Options{}) {
		v := get(e)
		if len(seen) == 0 {
			first = v
		}
		seen[v] = struct{}{}
		if len(seen) > 1 {
			return zero, false
		}
	}
	if len(seen) != 1 {
		return zero, false
	}
	return first, true
}

// IsSomeElementSelected reports whether any of elements is selected.
func IsSomeElementSelected(c *Cache, elements []*element.Element, st State) bool {
	return c.memoSome(elements, st, func() bool {
		for _, e := range elements {
			if st.SelectedElementIDs[e.ID] {
				return true
			}
		}
		return false
	})
}
