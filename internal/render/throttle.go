package render

// Surface names a canvas surface.
type Surface string

const (
	SurfaceStatic      Surface = "static"
	SurfaceInteractive Surface = "interactive"
)

// Throttle coalesces paint requests per animation frame.
//
// Once a paint has happened in the current frame, further requests are
// deferred to the next frame; repeated requests for the same surface replace
// each other so only the latest one paints. A disabled Throttle paints
// immediately every time.
//
// One Throttle is shared by both surfaces of a session. It is not safe for
// concurrent use.
type Throttle struct {
	enabled bool
	painted bool

	order   []Surface
	pending map[Surface]func()

	coalesced int
}

// NewThrottle creates a throttle. enabled=false paints synchronously.
func NewThrottle(enabled bool) *Throttle {
	return &Throttle{
		enabled: enabled,
		pending: make(map[Surface]func()),
	}
}

// Schedule paints now, or defers paint to the next frame when a paint
// already happened in this one. Returns true when paint ran immediately.
func (t *Throttle) Schedule(s Surface, paint func()) bool {
	if t.enabled && t.painted {
		if _, ok := t.pending[s]; ok {
			t.coalesced++
		} else {
			t.order = append(t.order, s)
		}
		t.pending[s] = paint
		return false
	}
	paint()
	t.painted = true
	return true
}

// NextFrame starts a new animation frame and runs the deferred paints.
// Returns the number of paints run.
func (t *Throttle) NextFrame() int {
	order := t.order
	pending := t.pending
	t.order = nil
	t.pending = make(map[Surface]func())
	t.painted = false

	for _, s := range order {
		pending[s]()
	}
	if len(order) > 0 {
		t.painted = true
	}
	return len(order)
}

// Pending returns the surfaces waiting for the next frame.
func (t *Throttle) Pending() []Surface {
	return append([]Surface(nil), t.order...)
}

// Coalesced returns how many requests were replaced by a later one.
func (t *Throttle) Coalesced() int {
	return t.coalesced
}
