package session

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scenecore/internal/element"
	"github.com/roach88/scenecore/internal/groups"
	"github.com/roach88/scenecore/internal/render"
	"github.com/roach88/scenecore/internal/scene"
	"github.com/roach88/scenecore/internal/selection"
)

func box(id string, x float64, groupIDs ...string) *element.Element {
	return &element.Element{ID: id, Type: element.TypeRectangle, X: x, Width: 10, Height: 10, GroupIDs: groupIDs}
}

func newTestSession(t *testing.T, elements []*element.Element, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithIDGenerator(element.NewSequentialIDs("new"))}, opts...)
	return New(scene.New(elements...), opts...)
}

func TestSelect_WidensToGroup(t *testing.T) {
	s := newTestSession(t, []*element.Element{box("a", 0, "g1"), box("b", 20, "g1"), box("c", 40)})

	require.NoError(t, s.Select("a"))
	assert.Equal(t, []string{"a", "b"}, s.State().SelectedIDs())
	assert.Equal(t, []string{"g1"}, groups.GetSelectedGroupIDs(s.State()))
	assert.Empty(t, s.OutlinedElementIDs(), "members are outlined through their group")
	assert.Equal(t, int64(1), s.SelectionNonce())
	assert.True(t, s.SameGroup())

	require.NoError(t, s.Select("a"))
	assert.Equal(t, int64(1), s.SelectionNonce(), "same selection keeps the nonce")

	require.NoError(t, s.Select("c"))
	assert.Equal(t, []string{"c"}, s.OutlinedElementIDs())
	assert.Equal(t, int64(2), s.SelectionNonce())
}

func TestSelect_UnknownElement(t *testing.T) {
	s := newTestSession(t, []*element.Element{box("a", 0)})
	require.NoError(t, s.Select("a"))

	err := s.Select("a", "ghost")
	require.Error(t, err)
	assert.True(t, IsUnknownElement(err))
	assert.True(t, IsUnknownElement(fmt.Errorf("wrapped: %w", err)))
	assert.Contains(t, err.Error(), "ghost")
	assert.Equal(t, []string{"a"}, s.State().SelectedIDs())
	assert.Equal(t, int64(1), s.SelectionNonce())
}

func TestSelect_DeletedElementIsUnknown(t *testing.T) {
	s := newTestSession(t, []*element.Element{box("a", 0), box("b", 20)})
	require.NoError(t, s.Select("b"))
	require.Equal(t, 1, s.Delete())

	assert.True(t, IsUnknownElement(s.Select("b")))
	assert.False(t, s.IsSomeElementSelected())
}

func TestNestedGroupEditing(t *testing.T) {
	s := newTestSession(t, []*element.Element{
		box("a", 0, "g0", "g1"),
		box("b", 20, "g0", "g1"),
		box("c", 40, "g0"),
		box("d", 60),
	})

	require.NoError(t, s.EnterGroup("a"))
	assert.Equal(t, "g0", s.State().EditingGroupID)
	assert.Equal(t, []string{"a"}, s.State().SelectedIDs())

	require.NoError(t, s.Select("c"))
	assert.Equal(t, "g0", s.State().EditingGroupID, "c is inside the edited group")
	assert.Equal(t, []string{"c"}, s.State().SelectedIDs())

	s.BoxSelect(-5, -5, 100, 100)
	assert.Equal(t, []string{"a", "b", "c"}, s.State().SelectedIDs(), "only members of the edited group")
	assert.Equal(t, "g0", s.State().EditingGroupID)

	s.ExitGroup()
	assert.Empty(t, s.State().EditingGroupID)
	assert.Equal(t, []string{"g0", "g1"}, groups.GetSelectedGroupIDs(s.State()))
	assert.Equal(t, []string{"a", "b", "c"}, s.State().SelectedIDs())

	require.NoError(t, s.EnterGroup("a"))
	require.NoError(t, s.Select("d"))
	assert.Empty(t, s.State().EditingGroupID, "selecting outside ends editing")
}

func TestEnterGroup_Ungrouped(t *testing.T) {
	s := newTestSession(t, []*element.Element{box("a", 0)})
	require.NoError(t, s.EnterGroup("a"))
	assert.Empty(t, s.State().EditingGroupID)
	assert.True(t, IsUnknownElement(s.EnterGroup("zz")))
}

func TestSelectGroup(t *testing.T) {
	s := newTestSession(t, []*element.Element{box("a", 0, "g1"), box("b", 20, "g1"), box("c", 40, "solo")})

	s.SelectGroup("g1")
	assert.Equal(t, []string{"a", "b"}, s.State().SelectedIDs())

	before := s.SelectionNonce()
	s.SelectGroup("solo")
	assert.Equal(t, before, s.SelectionNonce(), "single-member group is not selectable")
}

func TestGroupAndUngroup(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := newTestSession(t, []*element.Element{box("a", 0), box("b", 20), box("c", 40)}, WithLogger(logger))

	require.NoError(t, s.Select("a"))
	assert.Empty(t, s.Group(), "one element cannot be grouped")

	require.NoError(t, s.Select("a", "b"))
	gid := s.Group()
	require.Equal(t, "new-1", gid)
	assert.Equal(t, []string{"a", "b"}, s.GroupMembers(gid))
	assert.Equal(t, []string{"new-1"}, s.GroupIDs())
	assert.Equal(t, []string{gid}, groups.GetSelectedGroupIDs(s.State()))
	assert.Equal(t, int64(1), s.Scene().MutationNonce())
	assert.Contains(t, logs.String(), "grouped")

	assert.Empty(t, s.Group(), "already exactly one group")

	assert.Equal(t, 2, s.Ungroup())
	assert.Empty(t, s.GroupMembers(gid))
	assert.Equal(t, []string{"a", "b"}, s.State().SelectedIDs())
	assert.Empty(t, groups.GetSelectedGroupIDs(s.State()))

	assert.Zero(t, s.Ungroup())
}

func TestGroup_NestsOutsideEditedGroup(t *testing.T) {
	s := newTestSession(t, []*element.Element{box("a", 0, "g0", "g1"), box("b", 20, "g0", "g1"), box("c", 40, "g0")})

	require.NoError(t, s.EnterGroup("a"))
	s.BoxSelect(-5, -5, 35, 15)
	require.Equal(t, []string{"a", "b"}, s.State().SelectedIDs())

	gid := s.Group()
	require.Equal(t, "new-1", gid)
	assert.Equal(t, []string{"new-1", "g0", "g1"}, s.Scene().Get("a").GroupIDs)
}

func TestDuplicate(t *testing.T) {
	s := newTestSession(t, []*element.Element{box("a", 0, "g1"), box("b", 20, "g1"), box("c", 40)})
	require.NoError(t, s.Select("a"))

	created := s.Duplicate(10, 5)
	require.Equal(t, []string{"new-1", "new-2"}, created)

	copyA := s.Scene().Get("new-1")
	require.NotNil(t, copyA)
	assert.Equal(t, 10.0, copyA.X)
	assert.Equal(t, 5.0, copyA.Y)
	assert.Equal(t, []string{"new-3"}, copyA.GroupIDs)
	assert.Equal(t, []string{"g1"}, s.Scene().Get("a").GroupIDs)

	assert.Equal(t, []string{"new-1", "new-2"}, s.State().SelectedIDs())
	assert.Equal(t, []string{"new-3"}, groups.GetSelectedGroupIDs(s.State()))
	assert.Equal(t, int64(1), s.Scene().MutationNonce())

	s.ClearSelection()
	assert.Nil(t, s.Duplicate(0, 0))
}

func TestDuplicate_BoundTextAndFrames(t *testing.T) {
	container := box("box", 0)
	container.BoundTextID = "label"
	label := &element.Element{ID: "label", Type: element.TypeText, ContainerID: "box", Width: 5, Height: 5}
	frame := &element.Element{ID: "f", Type: element.TypeFrame, X: 100, Width: 50, Height: 50}
	child := &element.Element{ID: "k", Type: element.TypeEllipse, X: 110, Width: 5, Height: 5, FrameID: "f"}

	s := newTestSession(t, []*element.Element{container, label, child, frame})
	require.NoError(t, s.Select("box", "f"))

	created := s.Duplicate(0, 100)
	require.Len(t, created, 4)

	byOrigin := make(map[string]*element.Element)
	for _, e := range s.Scene().Elements()[4:] {
		byOrigin[e.ID] = e
	}
	var copyBox, copyLabel, copyChild, copyFrame *element.Element
	for _, e := range byOrigin {
		switch {
		case e.Type == element.TypeText:
			copyLabel = e
		case e.Type == element.TypeFrame:
			copyFrame = e
		case e.Type == element.TypeEllipse:
			copyChild = e
		default:
			copyBox = e
		}
	}
	require.NotNil(t, copyBox)
	require.NotNil(t, copyLabel)
	require.NotNil(t, copyChild)
	require.NotNil(t, copyFrame)

	assert.Equal(t, copyLabel.ID, copyBox.BoundTextID)
	assert.Equal(t, copyBox.ID, copyLabel.ContainerID)
	assert.Equal(t, copyFrame.ID, copyChild.FrameID)

	selected := s.State().SelectedIDs()
	assert.ElementsMatch(t, []string{copyBox.ID, copyFrame.ID}, selected)
}

func TestDuplicate_FrameChildStaysInFrame(t *testing.T) {
	frame := &element.Element{ID: "f", Type: element.TypeFrame, Width: 100, Height: 100}
	child := &element.Element{ID: "k", Type: element.TypeEllipse, X: 10, Y: 10, Width: 10, Height: 10, FrameID: "f"}
	s := newTestSession(t, []*element.Element{child, frame})

	require.NoError(t, s.Select("k"))
	created := s.Duplicate(10, 10)
	require.Equal(t, []string{"new-1"}, created)

	dup := s.Scene().Get("new-1")
	require.NotNil(t, dup)
	assert.Equal(t, "f", dup.FrameID)
	assert.Same(t, s.Scene().Get("f"), element.ContainingFrame(dup, s.Scene()))
	assert.Equal(t, []string{"new-1"}, s.State().SelectedIDs())

	// Selecting the frame now covers the copy as well.
	s.BoxSelect(-5, -5, 200, 200)
	assert.Equal(t, []string{"f"}, s.State().SelectedIDs())
}

func TestMoveAndDelete(t *testing.T) {
	container := box("box", 0)
	container.BoundTextID = "label"
	label := &element.Element{ID: "label", Type: element.TypeText, ContainerID: "box"}
	s := newTestSession(t, []*element.Element{container, label, box("c", 40)})

	require.NoError(t, s.Select("box"))
	assert.Equal(t, 2, s.Move(3, 4), "the bound label moves with its container")
	assert.Equal(t, 3.0, s.Scene().Get("label").X)
	assert.Equal(t, 4.0, s.Scene().Get("box").Y)
	assert.Equal(t, int64(1), s.Scene().MutationNonce())

	assert.Equal(t, 2, s.Delete())
	assert.True(t, s.Scene().Get("label").IsDeleted)
	assert.Empty(t, s.State().SelectedIDs())
	assert.Equal(t, int64(2), s.Scene().MutationNonce())
}

func TestSelectAll(t *testing.T) {
	locked := box("locked", 0)
	locked.Locked = true
	container := box("box", 20)
	container.BoundTextID = "label"
	label := &element.Element{ID: "label", Type: element.TypeText, ContainerID: "box"}
	frame := &element.Element{ID: "f", Type: element.TypeFrame, Width: 100, Height: 100}
	child := box("k", 10)
	child.FrameID = "f"

	s := newTestSession(t, []*element.Element{box("a", 0), locked, container, label, child, frame})
	s.SelectAll()
	assert.Equal(t, []string{"a", "box", "f"}, s.State().SelectedIDs())
	assert.True(t, s.IsSomeElementSelected())
}

func TestQueries(t *testing.T) {
	container := box("box", 0)
	container.BoundTextID = "label"
	label := &element.Element{ID: "label", Type: element.TypeText, ContainerID: "box"}
	s := newTestSession(t, []*element.Element{container, label, box("c", 40)})

	require.NoError(t, s.Select("box", "c"))
	typ, ok := s.CommonType()
	assert.True(t, ok)
	assert.Equal(t, element.TypeRectangle, typ)

	assert.Equal(t, []string{"box", "label", "c"}, element.IDs(s.TargetElements()))
	assert.Equal(t, []string{"box", "c"}, element.IDs(s.SelectedElements(selection.Options{})))
	assert.False(t, s.SameGroup())
}

func TestRender_Gates(t *testing.T) {
	painter := &render.RecordingPainter{}
	var results []render.InteractiveResult
	s := newTestSession(t, []*element.Element{box("a", 0), box("b", 20)},
		WithPainter(painter),
		WithCallback(func(r render.InteractiveResult) { results = append(results, r) }),
	)

	assert.Equal(t, render.Decision{Static: true, Interactive: true}, s.Render())
	assert.Equal(t, render.Decision{}, s.Render())

	require.NoError(t, s.Select("a"))
	assert.Equal(t, render.Decision{Interactive: true}, s.Render())

	s.Move(1, 0)
	assert.Equal(t, render.Decision{Static: true, Interactive: true}, s.Render())

	s.SetView(func(vs *render.ViewState) { vs.Theme = "dark" })
	assert.Equal(t, render.Decision{Static: true, Interactive: true}, s.Render())

	s.SetView(func(vs *render.ViewState) { vs.IsRotating = true })
	assert.Equal(t, render.Decision{Interactive: true}, s.Render())

	assert.Equal(t, 3, painter.StaticPaints)
	assert.Equal(t, 5, painter.InteractivePaints)
	assert.Len(t, results, 5)
	assert.Equal(t, 2, s.DeriveRuns())
	assert.Same(t, painter, s.Painter())
}

func TestSetView_SelectionBumpsNonce(t *testing.T) {
	s := newTestSession(t, []*element.Element{box("a", 0)})

	s.SetView(func(vs *render.ViewState) { vs.Zoom = 2 })
	assert.Equal(t, int64(0), s.SelectionNonce())
	assert.Equal(t, 2.0, s.View().Zoom)

	s.SetView(func(vs *render.ViewState) { vs.SelectedElementIDs = selection.SetOf("a") })
	assert.Equal(t, int64(1), s.SelectionNonce())
	assert.True(t, s.State().IsSelected("a"))
}

func TestRender_Throttled(t *testing.T) {
	painter := &render.RecordingPainter{}
	s := newTestSession(t, []*element.Element{box("a", 0)}, WithPainter(painter), WithThrottle(true))

	s.Render()
	assert.Equal(t, 1, painter.StaticPaints)
	assert.Zero(t, painter.InteractivePaints)
	assert.Equal(t, []render.Surface{render.SurfaceInteractive}, s.PendingPaints())

	require.NoError(t, s.Select("a"))
	s.Render()
	assert.Zero(t, painter.InteractivePaints, "still waiting for the next frame")

	assert.Equal(t, 1, s.NextFrame())
	assert.Equal(t, 1, painter.InteractivePaints)
	assert.True(t, painter.LastInteractive.State.SelectedElementIDs["a"])
}

func TestNew_ViewStateSelectionIsReset(t *testing.T) {
	vs := render.DefaultViewState()
	vs.SelectedElementIDs = selection.SetOf("a")
	vs.Zoom = 3

	s := newTestSession(t, []*element.Element{box("a", 0)}, WithViewState(vs), WithKeyMode(selection.KeyApprox))
	assert.Empty(t, s.State().SelectedIDs())
	assert.Equal(t, 3.0, s.View().Zoom)
	assert.Equal(t, selection.KeyApprox, s.Cache().Mode())
}
