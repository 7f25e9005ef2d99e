package session

import (
	"io"
	"log/slog"

	"github.com/roach88/scenecore/internal/element"
	"github.com/roach88/scenecore/internal/groups"
	"github.com/roach88/scenecore/internal/render"
	"github.com/roach88/scenecore/internal/scene"
	"github.com/roach88/scenecore/internal/selection"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. Default: discard.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithKeyMode sets the selection cache key mode. Default: selection.KeyExact.
func WithKeyMode(mode selection.KeyMode) Option {
	return func(s *Session) {
		s.keyMode = mode
	}
}

// WithThrottle enables per-frame paint coalescing.
func WithThrottle(enabled bool) Option {
	return func(s *Session) {
		s.throttle = enabled
	}
}

// WithPainter sets the drawing backend. Default: a render.RecordingPainter.
func WithPainter(p render.Painter) Option {
	return func(s *Session) {
		s.painter = p
	}
}

// WithIDGenerator sets the source of new element and group ids.
// Default: element.UUIDGenerator.
func WithIDGenerator(g element.IDGenerator) Option {
	return func(s *Session) {
		s.ids = g
	}
}

// WithViewState sets the initial view state. Its selection is replaced by
// an empty one.
func WithViewState(vs render.ViewState) Option {
	return func(s *Session) {
		s.view = vs
	}
}

// WithCallback sets the post-render callback of the interactive surface.
func WithCallback(cb render.Callback) Option {
	return func(s *Session) {
		s.callback = cb
	}
}

// Session is one editing session over a scene.
type Session struct {
	scene *scene.Scene
	view  render.ViewState

	cache          *selection.Cache
	keyMode        selection.KeyMode
	groupIndex     groups.Index
	selectionClock *scene.Clock

	deriver  render.Deriver
	canvases *render.Canvases
	painter  render.Painter
	callback render.Callback
	throttle bool

	ids    element.IDGenerator
	logger *slog.Logger
}

// New creates a session editing sc.
func New(sc *scene.Scene, opts ...Option) *Session {
	s := &Session{
		scene:          sc,
		view:           render.DefaultViewState(),
		selectionClock: scene.NewClock(),
		ids:            element.UUIDGenerator{},
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.view.State = selection.NewState()

	if s.painter == nil {
		s.painter = &render.RecordingPainter{}
	}
	s.cache = selection.NewCache(selection.WithKeyMode(s.keyMode))
	s.canvases = render.NewCanvases(s.painter,
		render.WithThrottle(render.NewThrottle(s.throttle)),
		render.WithCallback(s.callback),
	)
	return s
}

// Scene returns the edited scene.
func (s *Session) Scene() *scene.Scene {
	return s.scene
}

// View returns the current view state.
func (s *Session) View() render.ViewState {
	return s.view
}

// State returns the current selection state.
func (s *Session) State() selection.State {
	return s.view.State
}

// SelectionNonce returns the selection nonce.
func (s *Session) SelectionNonce() int64 {
	return s.selectionClock.Current()
}

// Cache returns the session's selection cache.
func (s *Session) Cache() *selection.Cache {
	return s.cache
}

// Painter returns the drawing backend.
func (s *Session) Painter() render.Painter {
	return s.painter
}

// elements returns the scene's live elements.
func (s *Session) elements() []*element.Element {
	return s.scene.NonDeletedElements()
}

// setSelection installs next and bumps the selection nonce when the
// selection content changed.
func (s *Session) setSelection(next selection.State, reason string) {
	prev := s.view.State
	s.view.State = next
	if sameSelection(prev, next) {
		s.logger.Debug("selection unchanged", "reason", reason)
		return
	}
	nonce := s.selectionClock.Next()
	s.logger.Debug("selection changed",
		"reason", reason,
		"selected", len(next.SelectedIDs()),
		"groups", groups.GetSelectedGroupIDs(next),
		"editing_group", next.EditingGroupID,
		"selection_nonce", nonce,
	)
}

func sameSelection(a, b selection.State) bool {
	return selection.EqualIDs(a.SelectedElementIDs, b.SelectedElementIDs) &&
		selection.EqualIDs(a.SelectedGroupIDs, b.SelectedGroupIDs) &&
		a.EditingGroupID == b.EditingGroupID &&
		a.EditingElement == b.EditingElement
}

// SetView applies fn to a copy of the view state and installs it. Selection
// edits made by fn bump the selection nonce like any other command.
func (s *Session) SetView(fn func(*render.ViewState)) {
	next := s.view
	fn(&next)
	sel := next.State
	next.State = s.view.State
	s.view = next
	s.setSelection(sel, "view")
}

// Render lets both canvases decide whether to repaint.
func (s *Session) Render() render.Decision {
	elements, nonce := s.deriver.Elements(s.scene, s.view)
	d := s.canvases.Update(elements, nonce, s.SelectionNonce(), s.view)
	s.logger.Debug("render",
		"static", d.Static,
		"interactive", d.Interactive,
		"mutation_nonce", nonce,
		"selection_nonce", s.SelectionNonce(),
	)
	return d
}

// NextFrame flushes paints deferred by the throttle.
func (s *Session) NextFrame() int {
	return s.canvases.NextFrame()
}

// DeriveRuns returns how many times the renderable element list was
// recomputed.
func (s *Session) DeriveRuns() int {
	return s.deriver.Runs()
}

// PendingPaints returns the surfaces waiting for the next frame.
func (s *Session) PendingPaints() []render.Surface {
	return s.canvases.Throttle().Pending()
}
