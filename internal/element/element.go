package element

// Type tags an element's kind.
type Type string

const (
	TypeRectangle Type = "rectangle"
	TypeEllipse   Type = "ellipse"
	TypeDiamond   Type = "diamond"
	TypeText      Type = "text"
	TypeArrow     Type = "arrow"
	TypeLine      Type = "line"
	TypeImage     Type = "image"
	TypeFrame     Type = "frame"

	// TypeSelection is the transient rubber-band rectangle drawn while
	// box-selecting. It is never itself selectable.
	TypeSelection Type = "selection"
)

// Element is a single diagram element as seen by the selection engine.
type Element struct {
	ID   string `yaml:"id" json:"id"`
	Type Type   `yaml:"type" json:"type"`

	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`

	// GroupIDs is ordered outermost to innermost.
	GroupIDs []string `yaml:"group_ids,omitempty" json:"group_ids,omitempty"`

	// FrameID references the containing frame, if any.
	FrameID string `yaml:"frame_id,omitempty" json:"frame_id,omitempty"`

	// ContainerID is set on a text label bound to a container shape.
	ContainerID string `yaml:"container_id,omitempty" json:"container_id,omitempty"`

	// BoundTextID is set on a container that carries a bound text label.
	BoundTextID string `yaml:"bound_text_id,omitempty" json:"bound_text_id,omitempty"`

	Locked    bool `yaml:"locked,omitempty" json:"locked,omitempty"`
	IsDeleted bool `yaml:"is_deleted,omitempty" json:"is_deleted,omitempty"`

	// Version is bumped by the scene every time the element is replaced.
	Version int64 `yaml:"version,omitempty" json:"version,omitempty"`
}

// IsFrame reports whether e is a frame container.
func (e *Element) IsFrame() bool {
	return e.Type == TypeFrame
}

// IsBoundToContainer reports whether e is a text label bound to a container.
func (e *Element) IsBoundToContainer() bool {
	return e.Type == TypeText && e.ContainerID != ""
}

// InnermostGroupID returns the last entry of GroupIDs, or "" when ungrouped.
func (e *Element) InnermostGroupID() string {
	if len(e.GroupIDs) == 0 {
		return ""
	}
	return e.GroupIDs[len(e.GroupIDs)-1]
}

// OutermostGroupID returns the first entry of GroupIDs, or "" when ungrouped.
func (e *Element) OutermostGroupID() string {
	if len(e.GroupIDs) == 0 {
		return ""
	}
	return e.GroupIDs[0]
}

// Clone returns a deep copy of e. The scene uses it to replace elements
// without touching values other components may still hold.
func (e *Element) Clone() *Element {
	c := *e
	if e.GroupIDs != nil {
		c.GroupIDs = make([]string, len(e.GroupIDs))
		copy(c.GroupIDs, e.GroupIDs)
	}
	return &c
}

// IDs returns the ids of elements in order.
func IDs(elements []*Element) []string {
	ids := make([]string, len(elements))
	for i, e := range elements {
		ids[i] = e.ID
	}
	return ids
}

// NonDeleted filters out deleted elements, preserving order.
func NonDeleted(elements []*Element) []*Element {
	out := make([]*Element, 0, len(elements))
	for _, e := range elements {
		if !e.IsDeleted {
			out = append(out, e)
		}
	}
	return out
}
