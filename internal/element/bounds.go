package element

import (
	"math"

	"seehuhn.de/go/geom/rect"
)

// Bounds is an axis-aligned box in scene coordinates, stored as a geom
// rectangle. LLx/LLy hold the minimum corner and URx/URy the maximum one;
// with the scene's downward y axis that is the top-left and bottom-right.
type Bounds rect.Rect

// Bounds returns the axis-aligned bounds of e, normalizing negative sizes
// (a box dragged up or left has a negative width or height).
func (e *Element) Bounds() Bounds {
	x1, x2 := e.X, e.X+e.Width
	y1, y2 := e.Y, e.Y+e.Height
	return Bounds{
		LLx: math.Min(x1, x2),
		LLy: math.Min(y1, y2),
		URx: math.Max(x1, x2),
		URy: math.Max(y1, y2),
	}
}

// FromRect converts a geom rectangle.
func FromRect(r rect.Rect) Bounds {
	return Bounds(r)
}

// Rect returns b as a geom rectangle, for drawing backends that clip with
// one.
func (b Bounds) Rect() rect.Rect {
	return rect.Rect(b)
}

// Clip intersects b with other. The result may be inverted (LLx > URx or
// LLy > URy) when the boxes do not intersect; callers check Valid.
func (b Bounds) Clip(other Bounds) Bounds {
	return Bounds{
		LLx: math.Max(b.LLx, other.LLx),
		LLy: math.Max(b.LLy, other.LLy),
		URx: math.Min(b.URx, other.URx),
		URy: math.Min(b.URy, other.URy),
	}
}

// Valid reports whether b is not inverted on either axis.
func (b Bounds) Valid() bool {
	return b.LLx <= b.URx && b.LLy <= b.URy
}

// Contains reports whether inner lies fully inside b on all four edges.
// An inverted inner box is tested edge by edge like any other.
func (b Bounds) Contains(inner Bounds) bool {
	return b.LLx <= inner.LLx &&
		b.LLy <= inner.LLy &&
		b.URx >= inner.URx &&
		b.URy >= inner.URy
}

// Overlaps reports whether b and other share at least one point. Touching
// edges count as overlap.
func (b Bounds) Overlaps(other Bounds) bool {
	return b.LLx <= other.URx &&
		other.LLx <= b.URx &&
		b.LLy <= other.URy &&
		other.LLy <= b.URy
}

// Union returns the smallest box containing every element, and false when
// elements is empty.
func Union(elements []*Element) (Bounds, bool) {
	if len(elements) == 0 {
		return Bounds{}, false
	}
	u := elements[0].Bounds()
	for _, e := range elements[1:] {
		b := e.Bounds()
		u.LLx = math.Min(u.LLx, b.LLx)
		u.LLy = math.Min(u.LLy, b.LLy)
		u.URx = math.Max(u.URx, b.URx)
		u.URy = math.Max(u.URy, b.URy)
	}
	return u, true
}

// SelectionBox builds a transient selection element spanning the given
// corners in any order.
func SelectionBox(x1, y1, x2, y2 float64) *Element {
	return &Element{
		ID:     "selection",
		Type:   TypeSelection,
		X:      x1,
		Y:      y1,
		Width:  x2 - x1,
		Height: y2 - y1,
	}
}
