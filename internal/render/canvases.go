package render

import (
	"github.com/roach88/scenecore/internal/element"
)

// Decision reports which surfaces an update asked to repaint. A requested
// paint may still be deferred by the Throttle.
type Decision struct {
	Static      bool `json:"static"`
	Interactive bool `json:"interactive"`
}

// CanvasOption configures Canvases.
type CanvasOption func(*Canvases)

// WithThrottle shares t between the surfaces. Default: a disabled throttle.
func WithThrottle(t *Throttle) CanvasOption {
	return func(c *Canvases) {
		c.throttle = t
	}
}

// WithCallback sets the post-render callback of the interactive surface.
func WithCallback(cb Callback) CanvasOption {
	return func(c *Canvases) {
		c.callback = cb
	}
}

// WithScale sets the device pixel ratio. Default: 1.
func WithScale(scale float64) CanvasOption {
	return func(c *Canvases) {
		c.scale = scale
	}
}

// WithSelectionColor sets the colour of local selection outlines.
func WithSelectionColor(color string) CanvasOption {
	return func(c *Canvases) {
		c.selectionColor = color
	}
}

// Canvases gates and paints the static and interactive surfaces.
type Canvases struct {
	painter        Painter
	throttle       *Throttle
	callback       Callback
	scale          float64
	selectionColor string

	static      gate[StaticProps]
	interactive gate[InteractiveProps]
}

// NewCanvases creates the two gated surfaces painting through painter.
func NewCanvases(painter Painter, opts ...CanvasOption) *Canvases {
	c := &Canvases{
		painter:        painter,
		throttle:       NewThrottle(false),
		scale:          1,
		selectionColor: "#6965db",
		static:         gate[StaticProps]{equal: StaticPropsEqual},
		interactive:    gate[InteractiveProps]{equal: InteractivePropsEqual},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Update compares the new inputs of each surface with the previous ones and
// requests a paint for every surface whose inputs changed.
func (c *Canvases) Update(elements []*element.Element, mutationNonce, selectionNonce int64, vs ViewState) Decision {
	var d Decision

	staticProps := StaticProps{
		MutationNonce: mutationNonce,
		State:         StaticProjection(vs),
	}
	if c.static.shouldRender(staticProps) {
		d.Static = true
		cfg := NewStaticRenderConfig(elements, vs, c.scale)
		c.throttle.Schedule(SurfaceStatic, func() {
			c.painter.PaintStatic(cfg)
		})
	}

	interactiveProps := InteractiveProps{
		MutationNonce:  mutationNonce,
		SelectionNonce: selectionNonce,
		State:          InteractiveProjection(vs),
	}
	if c.interactive.shouldRender(interactiveProps) {
		d.Interactive = true
		cfg := NewInteractiveRenderConfig(elements, vs, c.scale, c.selectionColor)
		c.throttle.Schedule(SurfaceInteractive, func() {
			res := c.painter.PaintInteractive(cfg)
			if c.callback != nil {
				c.callback(res)
			}
		})
	}

	return d
}

// NextFrame flushes paints deferred by the throttle.
func (c *Canvases) NextFrame() int {
	return c.throttle.NextFrame()
}

// Reset forgets previous inputs so both surfaces repaint on the next update.
func (c *Canvases) Reset() {
	c.static.reset()
	c.interactive.reset()
}

// Throttle returns the shared throttle.
func (c *Canvases) Throttle() *Throttle {
	return c.throttle
}
