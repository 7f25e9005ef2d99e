package element

// Lookup resolves element ids. Scenes and Index both implement it.
type Lookup interface {
	Get(id string) *Element
}

// Index is a map-backed Lookup over a fixed set of elements.
type Index map[string]*Element

// IndexOf builds an Index from elements. Later duplicates win.
func IndexOf(elements []*Element) Index {
	idx := make(Index, len(elements))
	for _, e := range elements {
		idx[e.ID] = e
	}
	return idx
}

// Get returns the element with id, or nil.
func (idx Index) Get(id string) *Element {
	return idx[id]
}

// BoundText returns the text label bound to container, or nil. The label must
// point back at the container; a dangling BoundTextID is ignored.
func BoundText(container *Element, lookup Lookup) *Element {
	if container == nil || container.BoundTextID == "" || lookup == nil {
		return nil
	}
	label := lookup.Get(container.BoundTextID)
	if label == nil || label.IsDeleted || label.ContainerID != container.ID {
		return nil
	}
	return label
}

// ContainingFrame returns the frame e belongs to, or nil.
func ContainingFrame(e *Element, lookup Lookup) *Element {
	if e == nil || e.FrameID == "" || lookup == nil {
		return nil
	}
	frame := lookup.Get(e.FrameID)
	if frame == nil || frame.IsDeleted || !frame.IsFrame() {
		return nil
	}
	return frame
}

// FrameElements returns the elements whose FrameID is frameID, in order.
func FrameElements(elements []*Element, frameID string) []*Element {
	var out []*Element
	for _, e := range elements {
		if e.FrameID == frameID {
			out = append(out, e)
		}
	}
	return out
}
