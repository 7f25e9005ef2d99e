package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scenecore/internal/element"
)

func frame(id string, x, y, w, h float64) *element.Element {
	f := rect(id, x, y, w, h)
	f.Type = element.TypeFrame
	return f
}

func TestGetElementsWithinSelection_Basic(t *testing.T) {
	a := rect("a", 10, 10, 10, 10)
	b := rect("b", 50, 50, 100, 100)
	locked := rect("locked", 20, 20, 5, 5)
	locked.Locked = true
	box := rect("box", 30, 30, 20, 20)
	box.BoundTextID = "label"
	label := &element.Element{ID: "label", Type: element.TypeText, X: 35, Y: 35, Width: 5, Height: 5, ContainerID: "box"}

	elements := []*element.Element{a, b, locked, box, label}
	got := GetElementsWithinSelection(elements, element.SelectionBox(0, 0, 100, 100), false)
	assert.Equal(t, []string{"a", "box"}, element.IDs(got))
}

func TestGetElementsWithinSelection_ReverseDrag(t *testing.T) {
	elements := []*element.Element{rect("a", 10, 10, 10, 10)}
	got := GetElementsWithinSelection(elements, element.SelectionBox(100, 100, 0, 0), false)
	assert.Equal(t, []string{"a"}, element.IDs(got))
}

func TestGetElementsWithinSelection_ClipsToFrame(t *testing.T) {
	child := rect("c", 40, 40, 30, 30)
	child.FrameID = "f"
	elements := []*element.Element{child, frame("f", 0, 0, 50, 50)}
	box := element.SelectionBox(0, 0, 60, 60)

	assert.Equal(t, []string{"c", "f"}, element.IDs(GetElementsWithinSelection(elements, box, false)))
	assert.Equal(t, []string{"f"}, element.IDs(GetElementsWithinSelection(elements, box, true)))
}

func TestGetElementsWithinSelection_DropsElementsOutsideFrame(t *testing.T) {
	outside := rect("o", 200, 200, 10, 10)
	outside.FrameID = "f"
	elements := []*element.Element{frame("f", 0, 0, 50, 50), outside}

	got := GetElementsWithinSelection(elements, element.SelectionBox(0, 0, 300, 300), false)
	assert.Equal(t, []string{"f"}, element.IDs(got))

	// The inverted clipped box passes the enclosure test on its own.
	got = GetElementsWithinSelection(elements, element.SelectionBox(100, 100, 300, 300), false)
	assert.Empty(t, got)
}

func TestExcludeElementsInFramesFromSelection(t *testing.T) {
	inF := rect("c", 0, 0, 1, 1)
	inF.FrameID = "f"
	inG := rect("d", 0, 0, 1, 1)
	inG.FrameID = "g"

	got := ExcludeElementsInFramesFromSelection([]*element.Element{inF, inG, frame("f", 0, 0, 10, 10)})
	assert.Equal(t, []string{"d", "f"}, element.IDs(got))
}

func TestClippedBounds(t *testing.T) {
	f := frame("f", 0, 0, 50, 50)
	child := rect("c", 40, 40, 30, 30)
	child.FrameID = "f"
	free := rect("x", 40, 40, 30, 30)
	idx := element.IndexOf([]*element.Element{f, child, free})

	assert.Equal(t, element.Bounds{LLx: 40, LLy: 40, URx: 50, URy: 50}, ClippedBounds(child, idx))
	assert.Equal(t, element.Bounds{LLx: 40, LLy: 40, URx: 70, URy: 70}, ClippedBounds(free, idx))
}

func TestElementOverlapsWithFrame(t *testing.T) {
	f := frame("f", 0, 0, 50, 50)
	assert.True(t, ElementOverlapsWithFrame(rect("in", 10, 10, 5, 5), f))
	assert.True(t, ElementOverlapsWithFrame(rect("around", -10, -10, 100, 100), f))
	assert.True(t, ElementOverlapsWithFrame(rect("edge", 40, 40, 20, 20), f))
	assert.False(t, ElementOverlapsWithFrame(rect("out", 60, 60, 5, 5), f))
}

func TestGetElementsWithinSelection_Idempotent(t *testing.T) {
	elements := []*element.Element{
		rect("a", 10, 10, 10, 10),
		rect("b", 30, 35, 10, 5),
		rect("far", 200, 200, 10, 10),
	}

	first := GetElementsWithinSelection(elements, element.SelectionBox(0, 0, 100, 100), true)
	require.Equal(t, []string{"a", "b"}, element.IDs(first))

	u, ok := element.Union(first)
	require.True(t, ok)
	second := GetElementsWithinSelection(elements, element.SelectionBox(u.LLx, u.LLy, u.URx, u.URy), true)
	assert.Equal(t, element.IDs(first), element.IDs(second))
}
