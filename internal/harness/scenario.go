package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/scenecore/internal/element"
	"github.com/roach88/scenecore/internal/render"
)

// Scenario defines one selection scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; it names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// KeyMode is the selection cache key mode: "exact" (default) or "approx".
	KeyMode string `yaml:"key_mode,omitempty"`

	// Throttle enables per-frame paint coalescing.
	Throttle bool `yaml:"throttle,omitempty"`

	// View overrides fields of the default view state.
	View *ViewPatch `yaml:"view,omitempty"`

	// Elements is the initial scene in z-order.
	Elements []element.Element `yaml:"elements"`

	// Steps run in order; each one is followed by a render.
	Steps []Step `yaml:"steps"`
}

// Step is one session command plus optional expectations.
type Step struct {
	// Op names the command; see the Op* constants.
	Op string `yaml:"op"`

	// IDs are element ids (select).
	IDs []string `yaml:"ids,omitempty"`

	// ID is an element id (enter_group).
	ID string `yaml:"id,omitempty"`

	// Group is a group id (select_group).
	Group string `yaml:"group,omitempty"`

	// Rect is x1, y1, x2, y2 (box_select).
	Rect []float64 `yaml:"rect,omitempty"`

	// DX and DY offset move and duplicate.
	DX float64 `yaml:"dx,omitempty"`
	DY float64 `yaml:"dy,omitempty"`

	// View patches the view state (set_view).
	View *ViewPatch `yaml:"view,omitempty"`

	// Expect is checked after the step's render.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Step operations.
const (
	OpSelect      = "select"
	OpSelectAll   = "select_all"
	OpClear       = "clear"
	OpSelectGroup = "select_group"
	OpEnterGroup  = "enter_group"
	OpExitGroup   = "exit_group"
	OpBoxSelect   = "box_select"
	OpGroup       = "group"
	OpUngroup     = "ungroup"
	OpDuplicate   = "duplicate"
	OpMove        = "move"
	OpDelete      = "delete"
	OpSetView     = "set_view"
	OpRender      = "render"
	OpNextFrame   = "next_frame"
	OpInvalidate  = "invalidate"
)

// ViewPatch lists the view-state fields a scenario may set.
type ViewPatch struct {
	Zoom                *float64                       `yaml:"zoom,omitempty"`
	ScrollX             *float64                       `yaml:"scroll_x,omitempty"`
	ScrollY             *float64                       `yaml:"scroll_y,omitempty"`
	Width               *float64                       `yaml:"width,omitempty"`
	Height              *float64                       `yaml:"height,omitempty"`
	Theme               *string                        `yaml:"theme,omitempty"`
	ViewModeEnabled     *bool                          `yaml:"view_mode_enabled,omitempty"`
	GridSize            *int                           `yaml:"grid_size,omitempty"`
	ViewBackgroundColor *string                        `yaml:"view_background_color,omitempty"`
	FrameToHighlightID  *string                        `yaml:"frame_to_highlight_id,omitempty"`
	IsRotating          *bool                          `yaml:"is_rotating,omitempty"`
	Collaborators       map[string]render.Collaborator `yaml:"collaborators,omitempty"`
}

// Apply writes the set fields into vs.
func (p *ViewPatch) Apply(vs *render.ViewState) {
	if p == nil {
		return
	}
	if p.Zoom != nil {
		vs.Zoom = *p.Zoom
	}
	if p.ScrollX != nil {
		vs.ScrollX = *p.ScrollX
	}
	if p.ScrollY != nil {
		vs.ScrollY = *p.ScrollY
	}
	if p.Width != nil {
		vs.Width = *p.Width
	}
	if p.Height != nil {
		vs.Height = *p.Height
	}
	if p.Theme != nil {
		vs.Theme = *p.Theme
	}
	if p.ViewModeEnabled != nil {
		vs.ViewModeEnabled = *p.ViewModeEnabled
	}
	if p.GridSize != nil {
		vs.GridSize = *p.GridSize
	}
	if p.ViewBackgroundColor != nil {
		vs.ViewBackgroundColor = *p.ViewBackgroundColor
	}
	if p.FrameToHighlightID != nil {
		vs.FrameToHighlightID = *p.FrameToHighlightID
	}
	if p.IsRotating != nil {
		vs.IsRotating = *p.IsRotating
	}
	if p.Collaborators != nil {
		vs.Collaborators = p.Collaborators
	}
}

// Expect lists step expectations. Nil fields are not checked.
type Expect struct {
	Selected       []string `yaml:"selected,omitempty"`
	Groups         []string `yaml:"groups,omitempty"`
	EditingGroup   *string  `yaml:"editing_group,omitempty"`
	Outlined       []string `yaml:"outlined,omitempty"`
	SomeSelected   *bool    `yaml:"some_selected,omitempty"`
	CommonType     *string  `yaml:"common_type,omitempty"`
	SameGroup      *bool    `yaml:"same_group,omitempty"`
	Static         *bool    `yaml:"static,omitempty"`
	Interactive    *bool    `yaml:"interactive,omitempty"`
	MutationNonce  *int64   `yaml:"mutation_nonce,omitempty"`
	SelectionNonce *int64   `yaml:"selection_nonce,omitempty"`
	Flushed        *int     `yaml:"flushed,omitempty"`
	Created        *int     `yaml:"created,omitempty"`

	// Members maps group ids to their expected member ids.
	Members map[string][]string `yaml:"members,omitempty"`
}

// LoadScenario reads, validates and parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, &ScenarioError{Path: path, Err: err}
	}
	return s, nil
}

// ParseScenario validates data against the scenario schema and decodes it.
// Unknown fields are rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	if err := ValidateScenario(data); err != nil {
		return nil, err
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks what the schema cannot: id uniqueness and the
// arguments each op needs.
func validateScenario(s *Scenario) error {
	seen := make(map[string]bool, len(s.Elements))
	for _, e := range s.Elements {
		if seen[e.ID] {
			return fmt.Errorf("duplicate element id %q", e.ID)
		}
		seen[e.ID] = true
	}

	for i, step := range s.Steps {
		switch step.Op {
		case OpSelect:
			if len(step.IDs) == 0 {
				return fmt.Errorf("step %d: select needs ids", i)
			}
		case OpEnterGroup:
			if step.ID == "" {
				return fmt.Errorf("step %d: enter_group needs id", i)
			}
		case OpSelectGroup:
			if step.Group == "" {
				return fmt.Errorf("step %d: select_group needs group", i)
			}
		case OpBoxSelect:
			if len(step.Rect) != 4 {
				return fmt.Errorf("step %d: box_select needs rect [x1, y1, x2, y2]", i)
			}
		case OpSetView:
			if step.View == nil {
				return fmt.Errorf("step %d: set_view needs view", i)
			}
		}
	}
	return nil
}
