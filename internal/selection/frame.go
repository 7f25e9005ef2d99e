package selection

import (
	"github.com/roach88/scenecore/internal/element"
)

// ExcludeElementsInFramesFromSelection drops every candidate whose frame is
// itself a candidate. Frames and their children are never selected at the
// same time; the frame wins.
func ExcludeElementsInFramesFromSelection(candidates []*element.Element) []*element.Element {
	frames := make(map[string]bool)
	for _, e := range candidates {
		if e.IsFrame() {
			frames[e.ID] = true
		}
	}

	out := make([]*element.Element, 0, len(candidates))
	for _, e := range candidates {
		if e.FrameID != "" && frames[e.FrameID] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ElementOverlapsWithFrame reports whether e's bounds intersect the frame's,
// including the cases where one lies fully inside the other.
func ElementOverlapsWithFrame(e, frame *element.Element) bool {
	return e.Bounds().Overlaps(frame.Bounds())
}

// ClippedBounds returns e's bounds intersected with its containing frame's
// bounds. Without a frame the raw bounds are returned. The result can be
// inverted when e lies outside its frame.
func ClippedBounds(e *element.Element, lookup element.Lookup) element.Bounds {
	b := e.Bounds()
	if frame := element.ContainingFrame(e, lookup); frame != nil {
		b = b.Clip(frame.Bounds())
	}
	return b
}

// GetElementsWithinSelection returns, in z-order, the elements of elements
// that a rubber-band selection box fully encloses.
//
// Locked elements, selection boxes and labels bound to a container are never
// picked. An element inside a frame is tested with its bounds clipped to the
// frame. When excludeFrames is set, children of a picked frame are dropped.
// Finally any element that no longer overlaps its frame is dropped; clipping
// such an element yields an inverted box that can pass the enclosure test.
//
// Frames are resolved against elements itself.
func GetElementsWithinSelection(elements []*element.Element, selectionBox *element.Element, excludeFrames bool) []*element.Element {
	lookup := element.IndexOf(elements)
	rect := selectionBox.Bounds()

	var picked []*element.Element
	for _, e := range elements {
		if e.Locked || e.Type == element.TypeSelection || e.IsBoundToContainer() {
			continue
		}
		if rect.Contains(ClippedBounds(e, lookup)) {
			picked = append(picked, e)
		}
	}

	if excludeFrames {
		picked = ExcludeElementsInFramesFromSelection(picked)
	}

	out := make([]*element.Element, 0, len(picked))
	for _, e := range picked {
		if frame := element.ContainingFrame(e, lookup); frame != nil && !ElementOverlapsWithFrame(e, frame) {
			continue
		}
		out = append(out, e)
	}
	return out
}
