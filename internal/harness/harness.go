package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/scenecore/internal/element"
	"github.com/roach88/scenecore/internal/groups"
	"github.com/roach88/scenecore/internal/render"
	"github.com/roach88/scenecore/internal/scene"
	"github.com/roach88/scenecore/internal/selection"
	"github.com/roach88/scenecore/internal/session"
	"github.com/roach88/scenecore/internal/trace"
)

// ScenarioError wraps a failure to load or run a scenario file.
type ScenarioError struct {
	Path string
	Err  error
}

func (e *ScenarioError) Error() string {
	return fmt.Sprintf("scenario %s: %v", e.Path, e.Err)
}

func (e *ScenarioError) Unwrap() error {
	return e.Err
}

// StepError reports a step whose command could not run, e.g. because it
// names an element that does not exist.
type StepError struct {
	Index int
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	logger  *slog.Logger
	painter render.Painter
}

// WithLogger sets the session logger. Default: discard.
func WithLogger(logger *slog.Logger) RunOption {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// WithPainter sets the drawing backend. Default: a RecordingPainter.
func WithPainter(p render.Painter) RunOption {
	return func(c *runConfig) {
		c.painter = p
	}
}

// Run executes a scenario in a fresh session and returns the result.
//
// The canvases are mounted with one render before the first step, so step 0
// only repaints what step 0 changed. Each step then runs its command,
// renders, records a trace.Step and checks its expectations. Failed
// expectations are collected in the result; a command that cannot run
// aborts with a *StepError.
func Run(scenario *Scenario, opts ...RunOption) (*Result, error) {
	cfg := runConfig{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		painter: &render.RecordingPainter{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	mode := selection.ParseKeyMode(scenario.KeyMode)
	vs := render.DefaultViewState()
	scenario.View.Apply(&vs)

	sess := session.New(newScene(scenario.Elements),
		session.WithKeyMode(mode),
		session.WithThrottle(scenario.Throttle),
		session.WithIDGenerator(element.NewSequentialIDs("new")),
		session.WithViewState(vs),
		session.WithPainter(cfg.painter),
		session.WithLogger(cfg.logger.With("scenario", scenario.Name)),
	)
	sess.Render()

	result := NewResult()
	for i, step := range scenario.Steps {
		created, flushed, err := apply(sess, step)
		if err != nil {
			return nil, &StepError{Index: i, Op: step.Op, Err: err}
		}
		d := sess.Render()

		obs := observe(sess, i, step.Op, d)
		obs.Created = created
		obs.Flushed = flushed
		result.Steps = append(result.Steps, obs)

		if step.Expect != nil {
			for _, err := range checkExpect(sess, obs, step.Expect) {
				result.AddError(err.Error())
			}
		}
	}

	stats := sess.Cache().Stats()
	result.CacheHits = stats.Hits
	result.CacheMisses = stats.Misses
	result.DeriveRuns = sess.DeriveRuns()
	return result, nil
}

// newScene copies the scenario elements so runs never share state.
func newScene(elements []element.Element) *scene.Scene {
	out := make([]*element.Element, len(elements))
	for i := range elements {
		out[i] = elements[i].Clone()
	}
	return scene.New(out...)
}

// apply runs one step's command. It returns the ids the command created
// and, for next_frame, the number of flushed paints.
func apply(sess *session.Session, step Step) ([]string, int, error) {
	switch step.Op {
	case OpSelect:
		return nil, 0, sess.Select(step.IDs...)
	case OpSelectAll:
		sess.SelectAll()
	case OpClear:
		sess.ClearSelection()
	case OpSelectGroup:
		sess.SelectGroup(step.Group)
	case OpEnterGroup:
		return nil, 0, sess.EnterGroup(step.ID)
	case OpExitGroup:
		sess.ExitGroup()
	case OpBoxSelect:
		if len(step.Rect) != 4 {
			return nil, 0, errors.New("rect needs four coordinates")
		}
		sess.BoxSelect(step.Rect[0], step.Rect[1], step.Rect[2], step.Rect[3])
	case OpGroup:
		if gid := sess.Group(); gid != "" {
			return []string{gid}, 0, nil
		}
	case OpUngroup:
		sess.Ungroup()
	case OpDuplicate:
		return sess.Duplicate(step.DX, step.DY), 0, nil
	case OpMove:
		sess.Move(step.DX, step.DY)
	case OpDelete:
		sess.Delete()
	case OpSetView:
		sess.SetView(step.View.Apply)
	case OpRender:
	case OpNextFrame:
		return nil, sess.NextFrame(), nil
	case OpInvalidate:
		sess.Cache().Invalidate()
	default:
		return nil, 0, fmt.Errorf("unknown op %q", step.Op)
	}
	return nil, 0, nil
}

func observe(sess *session.Session, index int, op string, d render.Decision) trace.Step {
	st := sess.State()
	return trace.Step{
		Index:          index,
		Op:             op,
		Selected:       st.SelectedIDs(),
		Groups:         groups.GetSelectedGroupIDs(st),
		EditingGroup:   st.EditingGroupID,
		Outlined:       sess.OutlinedElementIDs(),
		MutationNonce:  sess.Scene().MutationNonce(),
		SelectionNonce: sess.SelectionNonce(),
		StaticPaint:    d.Static,
		InteractPaint:  d.Interactive,
	}
}
