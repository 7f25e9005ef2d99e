package render

import (
	"github.com/roach88/scenecore/internal/element"
	"github.com/roach88/scenecore/internal/selection"
)

// Point is a 2D coordinate.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Collaborator is a remote participant. Its fields are opaque render inputs.
type Collaborator struct {
	Username           string          `yaml:"username,omitempty"`
	UserState          string          `yaml:"user_state,omitempty"`
	Button             string          `yaml:"button,omitempty"`
	Pointer            *Point          `yaml:"pointer,omitempty"`
	SelectedElementIDs map[string]bool `yaml:"selected_element_ids,omitempty"`
}

// ViewState is the full editor state the canvases are rendered from.
type ViewState struct {
	selection.State `yaml:",inline"`

	Zoom       float64 `yaml:"zoom"`
	ScrollX    float64 `yaml:"scroll_x"`
	ScrollY    float64 `yaml:"scroll_y"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	OffsetLeft float64 `yaml:"offset_left"`
	OffsetTop  float64 `yaml:"offset_top"`

	ViewModeEnabled bool   `yaml:"view_mode_enabled"`
	Theme           string `yaml:"theme"`

	EditingLinearElementID  string           `yaml:"editing_linear_element_id"`
	FrameToHighlightID      string           `yaml:"frame_to_highlight_id"`
	PendingImageElementID   string           `yaml:"pending_image_element_id"`
	SelectionElement        *element.Element `yaml:"-"`
	SelectedLinearElementID string           `yaml:"selected_linear_element_id"`
	MultiElementID          string           `yaml:"multi_element_id"`
	IsBindingEnabled        bool             `yaml:"is_binding_enabled"`
	SuggestedBindings       []string         `yaml:"suggested_bindings"`
	IsRotating              bool             `yaml:"is_rotating"`
	ElementsToHighlight     []string         `yaml:"elements_to_highlight"`
	OpenSidebar             string           `yaml:"open_sidebar"`
	ShowHyperlinkPopup      string           `yaml:"show_hyperlink_popup"`

	ShouldCacheIgnoreZoom           bool    `yaml:"should_cache_ignore_zoom"`
	ViewBackgroundColor             string  `yaml:"view_background_color"`
	ExportScale                     float64 `yaml:"export_scale"`
	SelectedElementsAreBeingDragged bool    `yaml:"selected_elements_are_being_dragged"`
	GridSize                        int     `yaml:"grid_size"`
	ShouldRenderFrames              bool    `yaml:"should_render_frames"`

	Collaborators map[string]Collaborator `yaml:"collaborators"`
}

// DefaultViewState returns the state of a fresh 1024x768 canvas.
func DefaultViewState() ViewState {
	return ViewState{
		State:               selection.NewState(),
		Zoom:                1,
		Width:               1024,
		Height:              768,
		Theme:               "light",
		IsBindingEnabled:    true,
		ViewBackgroundColor: "#ffffff",
		ExportScale:         1,
		ShouldRenderFrames:  true,
	}
}

// SceneToViewport converts scene coordinates to viewport coordinates.
func SceneToViewport(p Point, vs ViewState) Point {
	return Point{
		X: (p.X+vs.ScrollX)*vs.Zoom + vs.OffsetLeft,
		Y: (p.Y+vs.ScrollY)*vs.Zoom + vs.OffsetTop,
	}
}

// Viewport returns the visible region in scene coordinates.
func Viewport(vs ViewState) element.Bounds {
	zoom := vs.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return element.Bounds{
		LLx: -vs.ScrollX,
		LLy: -vs.ScrollY,
		URx: -vs.ScrollX + vs.Width/zoom,
		URy: -vs.ScrollY + vs.Height/zoom,
	}
}

// VisibleElements returns the elements overlapping the viewport.
func VisibleElements(elements []*element.Element, vs ViewState) []*element.Element {
	return visibleIn(elements, Viewport(vs))
}

func visibleIn(elements []*element.Element, view element.Bounds) []*element.Element {
	var out []*element.Element
	for _, e := range elements {
		if e.Bounds().Overlaps(view) {
			out = append(out, e)
		}
	}
	return out
}
