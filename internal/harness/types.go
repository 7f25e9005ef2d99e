package harness

import (
	"github.com/roach88/scenecore/internal/trace"
)

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expectation matched.
	Pass bool `json:"pass"`

	// Steps holds the observed state after each step.
	Steps []trace.Step `json:"steps"`

	// Errors lists the failed expectations. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// DeriveRuns counts recomputations of the renderable element list.
	DeriveRuns int `json:"derive_runs"`

	// Cache reports selection cache hits and misses over the run.
	CacheHits   int `json:"cache_hits"`
	CacheMisses int `json:"cache_misses"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []trace.Step{},
		Errors: []string{},
	}
}

// AddError adds a failed expectation and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Snapshot returns the run's trace under the given scenario name.
func (r *Result) Snapshot(name, keyMode string) trace.Snapshot {
	return trace.Snapshot{
		Scenario: name,
		KeyMode:  keyMode,
		Steps:    r.Steps,
	}
}
