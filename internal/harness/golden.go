package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/scenecore/internal/selection"
	"github.com/roach88/scenecore/internal/trace"
)

// RunWithGolden executes a scenario and compares its trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if the scenario cannot run. A trace mismatch fails t.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result.Snapshot(scenario.Name, keyModeName(scenario))); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares snapshot's canonical JSON against the golden file
// named name, without re-running anything.
func AssertGolden(t *testing.T, name string, snapshot trace.Snapshot) error {
	t.Helper()

	data, err := trace.MarshalSnapshot(snapshot)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}

// keyModeName normalizes the scenario's key mode for traces.
func keyModeName(s *Scenario) string {
	return selection.ParseKeyMode(s.KeyMode).String()
}
