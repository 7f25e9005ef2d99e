package render

import (
	"slices"

	"seehuhn.de/go/geom/rect"

	"github.com/roach88/scenecore/internal/element"
)

// StaticRenderConfig is handed to the drawing backend for the static surface.
type StaticRenderConfig struct {
	Scale    float64
	Elements []*element.Element
	State    StaticState

	// Clip is the visible scene region.
	Clip rect.Rect

	// RenderGrid is set when the grid is on and view mode is off.
	RenderGrid bool
}

// InteractiveRenderConfig is handed to the drawing backend for the
// interactive surface. Remote maps are keyed by collaborator id.
type InteractiveRenderConfig struct {
	Scale    float64
	Elements []*element.Element
	State    InteractiveState
	Clip     rect.Rect

	RemotePointerViewportCoords map[string]Point
	RemotePointerButton         map[string]string
	RemoteSelectedElementIDs    map[string][]string
	RemotePointerUsernames      map[string]string
	RemotePointerUserStates     map[string]string

	SelectionColor   string
	RenderScrollbars bool
}

// InteractiveResult is reported by the backend after painting the
// interactive surface.
type InteractiveResult struct {
	AtLeastOneVisibleElement bool
	VisibleElements          int
}

// Callback runs after every interactive paint.
type Callback func(InteractiveResult)

// Painter draws the surfaces. Implementations live outside this module.
type Painter interface {
	PaintStatic(cfg StaticRenderConfig)
	PaintInteractive(cfg InteractiveRenderConfig) InteractiveResult
}

// NewStaticRenderConfig builds the static config for elements.
func NewStaticRenderConfig(elements []*element.Element, vs ViewState, scale float64) StaticRenderConfig {
	return StaticRenderConfig{
		Scale:      scale,
		Elements:   elements,
		State:      StaticProjection(vs),
		Clip:       Viewport(vs).Rect(),
		RenderGrid: vs.GridSize > 0 && !vs.ViewModeEnabled,
	}
}

// NewInteractiveRenderConfig builds the interactive config, flattening the
// collaborators into per-field maps. Collaborators without a pointer still
// contribute their selection.
func NewInteractiveRenderConfig(elements []*element.Element, vs ViewState, scale float64, selectionColor string) InteractiveRenderConfig {
	cfg := InteractiveRenderConfig{
		Scale:                       scale,
		Elements:                    elements,
		State:                       InteractiveProjection(vs),
		Clip:                        Viewport(vs).Rect(),
		RemotePointerViewportCoords: make(map[string]Point),
		RemotePointerButton:         make(map[string]string),
		RemoteSelectedElementIDs:    make(map[string][]string),
		RemotePointerUsernames:      make(map[string]string),
		RemotePointerUserStates:     make(map[string]string),
		SelectionColor:              selectionColor,
	}

	ids := make([]string, 0, len(vs.Collaborators))
	for id := range vs.Collaborators {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, socketID := range ids {
		user := vs.Collaborators[socketID]
		for elementID, selected := range user.SelectedElementIDs {
			if selected {
				cfg.RemoteSelectedElementIDs[elementID] = append(cfg.RemoteSelectedElementIDs[elementID], socketID)
			}
		}
		if user.Pointer == nil {
			continue
		}
		if user.Username != "" {
			cfg.RemotePointerUsernames[socketID] = user.Username
		}
		if user.UserState != "" {
			cfg.RemotePointerUserStates[socketID] = user.UserState
		}
		cfg.RemotePointerViewportCoords[socketID] = SceneToViewport(*user.Pointer, vs)
		cfg.RemotePointerButton[socketID] = user.Button
	}
	return cfg
}

// RecordingPainter counts paints and keeps the last configs. It reports the
// elements overlapping the clip rectangle as visible.
type RecordingPainter struct {
	StaticPaints      int
	InteractivePaints int
	LastStatic        StaticRenderConfig
	LastInteractive   InteractiveRenderConfig
}

// PaintStatic records cfg.
func (p *RecordingPainter) PaintStatic(cfg StaticRenderConfig) {
	p.StaticPaints++
	p.LastStatic = cfg
}

// PaintInteractive records cfg and reports visibility.
func (p *RecordingPainter) PaintInteractive(cfg InteractiveRenderConfig) InteractiveResult {
	p.InteractivePaints++
	p.LastInteractive = cfg

	visible := len(visibleIn(cfg.Elements, element.FromRect(cfg.Clip)))
	return InteractiveResult{
		AtLeastOneVisibleElement: visible > 0,
		VisibleElements:          visible,
	}
}
