package render

import (
	"github.com/google/go-cmp/cmp"

	"github.com/roach88/scenecore/internal/element"
	"github.com/roach88/scenecore/internal/selection"
)

// StaticState is the static surface's projection of ViewState. It has no
// selection-id fields, and every field is comparable with ==.
type StaticState struct {
	Zoom                            float64
	ScrollX, ScrollY                float64
	Width, Height                   float64
	ViewModeEnabled                 bool
	EditingElement                  *element.Element
	EditingGroupID                  string
	EditingLinearElementID          string
	FrameToHighlightID              string
	OffsetLeft, OffsetTop           float64
	Theme                           string
	PendingImageElementID           string
	ShouldCacheIgnoreZoom           bool
	ViewBackgroundColor             string
	ExportScale                     float64
	SelectedElementsAreBeingDragged bool
	GridSize                        int
	ShouldRenderFrames              bool
}

// StaticProjection strips vs down to what the static surface renders from.
func StaticProjection(vs ViewState) StaticState {
	return StaticState{
		Zoom:                            vs.Zoom,
		ScrollX:                         vs.ScrollX,
		ScrollY:                         vs.ScrollY,
		Width:                           vs.Width,
		Height:                          vs.Height,
		ViewModeEnabled:                 vs.ViewModeEnabled,
		EditingElement:                  vs.EditingElement,
		EditingGroupID:                  vs.EditingGroupID,
		EditingLinearElementID:          vs.EditingLinearElementID,
		FrameToHighlightID:              vs.FrameToHighlightID,
		OffsetLeft:                      vs.OffsetLeft,
		OffsetTop:                       vs.OffsetTop,
		Theme:                           vs.Theme,
		PendingImageElementID:           vs.PendingImageElementID,
		ShouldCacheIgnoreZoom:           vs.ShouldCacheIgnoreZoom,
		ViewBackgroundColor:             vs.ViewBackgroundColor,
		ExportScale:                     vs.ExportScale,
		SelectedElementsAreBeingDragged: vs.SelectedElementsAreBeingDragged,
		GridSize:                        vs.GridSize,
		ShouldRenderFrames:              vs.ShouldRenderFrames,
	}
}

// InteractiveState is the interactive surface's projection of ViewState.
type InteractiveState struct {
	Zoom                    float64
	ScrollX, ScrollY        float64
	Width, Height           float64
	ViewModeEnabled         bool
	EditingElement          *element.Element
	EditingGroupID          string
	EditingLinearElementID  string
	SelectedElementIDs      map[string]bool
	FrameToHighlightID      string
	OffsetLeft, OffsetTop   float64
	Theme                   string
	PendingImageElementID   string
	SelectionElement        *element.Element
	SelectedGroupIDs        map[string]bool
	SelectedLinearElementID string
	MultiElementID          string
	IsBindingEnabled        bool
	SuggestedBindings       []string
	IsRotating              bool
	ElementsToHighlight     []string
	OpenSidebar             string
	ShowHyperlinkPopup      string
	Collaborators           map[string]Collaborator
}

// InteractiveProjection strips vs down to what the interactive surface
// renders from.
func InteractiveProjection(vs ViewState) InteractiveState {
	return InteractiveState{
		Zoom:                    vs.Zoom,
		ScrollX:                 vs.ScrollX,
		ScrollY:                 vs.ScrollY,
		Width:                   vs.Width,
		Height:                  vs.Height,
		ViewModeEnabled:         vs.ViewModeEnabled,
		EditingElement:          vs.EditingElement,
		EditingGroupID:          vs.EditingGroupID,
		EditingLinearElementID:  vs.EditingLinearElementID,
		SelectedElementIDs:      vs.SelectedElementIDs,
		FrameToHighlightID:      vs.FrameToHighlightID,
		OffsetLeft:              vs.OffsetLeft,
		OffsetTop:               vs.OffsetTop,
		Theme:                   vs.Theme,
		PendingImageElementID:   vs.PendingImageElementID,
		SelectionElement:        vs.SelectionElement,
		SelectedGroupIDs:        vs.SelectedGroupIDs,
		SelectedLinearElementID: vs.SelectedLinearElementID,
		MultiElementID:          vs.MultiElementID,
		IsBindingEnabled:        vs.IsBindingEnabled,
		SuggestedBindings:       vs.SuggestedBindings,
		IsRotating:              vs.IsRotating,
		ElementsToHighlight:     vs.ElementsToHighlight,
		OpenSidebar:             vs.OpenSidebar,
		ShowHyperlinkPopup:      vs.ShowHyperlinkPopup,
		Collaborators:           vs.Collaborators,
	}
}

// StaticProps are the inputs the static surface is rendered from.
type StaticProps struct {
	MutationNonce int64
	State         StaticState
}

// InteractiveProps are the inputs the interactive surface is rendered from.
type InteractiveProps struct {
	MutationNonce  int64
	SelectionNonce int64
	State          InteractiveState
}

// StaticPropsEqual reports whether the static surface can skip a repaint.
func StaticPropsEqual(prev, next StaticProps) bool {
	return prev.MutationNonce == next.MutationNonce && prev.State == next.State
}

// InteractivePropsEqual reports whether the interactive surface can skip a
// repaint. Selection maps compare by content; the rest by value.
func InteractivePropsEqual(prev, next InteractiveProps) bool {
	if prev.SelectionNonce != next.SelectionNonce || prev.MutationNonce != next.MutationNonce {
		return false
	}
	if !selection.EqualIDs(prev.State.SelectedElementIDs, next.State.SelectedElementIDs) ||
		!selection.EqualIDs(prev.State.SelectedGroupIDs, next.State.SelectedGroupIDs) {
		return false
	}

	a, b := prev.State, next.State
	a.SelectedElementIDs, b.SelectedElementIDs = nil, nil
	a.SelectedGroupIDs, b.SelectedGroupIDs = nil, nil
	return cmp.Equal(a, b)
}

// gate remembers the last props of one surface.
type gate[P any] struct {
	equal func(prev, next P) bool
	last  P
	seen  bool
}

// shouldRender reports whether next differs from the last props and records
// next. The first call always renders.
func (g *gate[P]) shouldRender(next P) bool {
	render := !g.seen || !g.equal(g.last, next)
	g.last = next
	g.seen = true
	return render
}

func (g *gate[P]) reset() {
	var zero P
	g.last = zero
	g.seen = false
}
