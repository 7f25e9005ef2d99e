package element

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/rect"
)

func TestBounds_NormalizesNegativeSize(t *testing.T) {
	e := &Element{X: 10, Y: 20, Width: -5, Height: -10}
	assert.Equal(t, Bounds{LLx: 5, LLy: 10, URx: 10, URy: 20}, e.Bounds())
}

func TestBounds_Predicates(t *testing.T) {
	outer := Bounds{LLx: 0, LLy: 0, URx: 100, URy: 100}

	tests := []struct {
		name     string
		other    Bounds
		contains bool
		overlaps bool
	}{
		{"inside", Bounds{LLx: 10, LLy: 10, URx: 20, URy: 20}, true, true},
		{"same box", outer, true, true},
		{"partial", Bounds{LLx: 90, LLy: 90, URx: 110, URy: 110}, false, true},
		{"touching edge", Bounds{LLx: 100, LLy: 0, URx: 120, URy: 10}, false, true},
		{"disjoint", Bounds{LLx: 200, LLy: 200, URx: 210, URy: 210}, false, false},
		{"enclosing", Bounds{LLx: -10, LLy: -10, URx: 110, URy: 110}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.contains, outer.Contains(tt.other))
			assert.Equal(t, tt.overlaps, outer.Overlaps(tt.other))
		})
	}
}

func TestBounds_Clip(t *testing.T) {
	frame := Bounds{LLx: 0, LLy: 0, URx: 100, URy: 100}

	clipped := Bounds{LLx: 50, LLy: 50, URx: 150, URy: 150}.Clip(frame)
	assert.Equal(t, Bounds{LLx: 50, LLy: 50, URx: 100, URy: 100}, clipped)
	assert.True(t, clipped.Valid())

	outside := Bounds{LLx: 200, LLy: 200, URx: 210, URy: 210}.Clip(frame)
	assert.False(t, outside.Valid())
}

func TestUnion(t *testing.T) {
	_, ok := Union(nil)
	assert.False(t, ok)

	u, ok := Union([]*Element{
		{X: 0, Y: 0, Width: 10, Height: 10},
		{X: 50, Y: -5, Width: 10, Height: 10},
	})
	require.True(t, ok)
	assert.Equal(t, Bounds{LLx: 0, LLy: -5, URx: 60, URy: 10}, u)
}

func TestSelectionBox(t *testing.T) {
	box := SelectionBox(100, 100, 0, 0)
	assert.Equal(t, TypeSelection, box.Type)
	assert.Equal(t, Bounds{LLx: 0, LLy: 0, URx: 100, URy: 100}, box.Bounds())
}

func TestGroupIDAccessors(t *testing.T) {
	e := &Element{GroupIDs: []string{"outer", "middle", "inner"}}
	assert.Equal(t, "inner", e.InnermostGroupID())
	assert.Equal(t, "outer", e.OutermostGroupID())

	var ungrouped Element
	assert.Empty(t, ungrouped.InnermostGroupID())
	assert.Empty(t, ungrouped.OutermostGroupID())
}

func TestClone_IsDeep(t *testing.T) {
	e := &Element{ID: "a", GroupIDs: []string{"g1"}}
	c := e.Clone()
	c.GroupIDs[0] = "changed"
	c.X = 99

	assert.Equal(t, "g1", e.GroupIDs[0])
	assert.Zero(t, e.X)
}

func TestIsBoundToContainer(t *testing.T) {
	assert.True(t, (&Element{Type: TypeText, ContainerID: "box"}).IsBoundToContainer())
	assert.False(t, (&Element{Type: TypeText}).IsBoundToContainer())
	assert.False(t, (&Element{Type: TypeRectangle, ContainerID: "box"}).IsBoundToContainer())
}

func TestNonDeletedAndIDs(t *testing.T) {
	elements := []*Element{{ID: "a"}, {ID: "b", IsDeleted: true}, {ID: "c"}}
	assert.Equal(t, []string{"a", "c"}, IDs(NonDeleted(elements)))
	assert.Equal(t, []string{"a", "b", "c"}, IDs(elements))
}

func TestBoundText(t *testing.T) {
	box := &Element{ID: "box", Type: TypeRectangle, BoundTextID: "label"}
	label := &Element{ID: "label", Type: TypeText, ContainerID: "box"}
	stray := &Element{ID: "stray", Type: TypeText, ContainerID: "other"}

	idx := IndexOf([]*Element{box, label, stray})
	assert.Same(t, label, BoundText(box, idx))

	dangling := &Element{ID: "box2", BoundTextID: "stray"}
	assert.Nil(t, BoundText(dangling, idx))
	assert.Nil(t, BoundText(nil, idx))

	deleted := label.Clone()
	deleted.IsDeleted = true
	assert.Nil(t, BoundText(box, IndexOf([]*Element{box, deleted})))
}

func TestContainingFrame(t *testing.T) {
	frame := &Element{ID: "f", Type: TypeFrame}
	notFrame := &Element{ID: "r", Type: TypeRectangle}
	child := &Element{ID: "c", FrameID: "f"}
	orphan := &Element{ID: "o", FrameID: "r"}

	idx := IndexOf([]*Element{frame, notFrame, child, orphan})
	assert.Same(t, frame, ContainingFrame(child, idx))
	assert.Nil(t, ContainingFrame(orphan, idx))
	assert.Nil(t, ContainingFrame(frame, idx))
}

func TestFrameElements(t *testing.T) {
	elements := []*Element{
		{ID: "a", FrameID: "f"},
		{ID: "b"},
		{ID: "c", FrameID: "f"},
		{ID: "f", Type: TypeFrame},
	}
	assert.Equal(t, []string{"a", "c"}, IDs(FrameElements(elements, "f")))
	assert.Empty(t, FrameElements(elements, "missing"))
}

func TestSequentialIDs(t *testing.T) {
	g := NewSequentialIDs("new")
	assert.Equal(t, "new-1", g.NewID())
	assert.Equal(t, "new-2", g.NewID())

	assert.Equal(t, "id-1", NewSequentialIDs("").NewID())
}

func TestUUIDGenerator(t *testing.T) {
	var g IDGenerator = UUIDGenerator{}
	a, b := g.NewID(), g.NewID()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestBounds_RectRoundTrip(t *testing.T) {
	r := rect.Rect{LLx: 1, LLy: 2, URx: 3, URy: 4}
	b := FromRect(r)
	assert.Equal(t, Bounds{LLx: 1, LLy: 2, URx: 3, URy: 4}, b)
	assert.Equal(t, r, b.Rect())

	// Inverted clips survive the conversion.
	inverted := Bounds{LLx: 10, LLy: 0, URx: 5, URy: 1}
	assert.Equal(t, inverted, FromRect(inverted.Rect()))
	assert.False(t, inverted.Valid())
}
