// Package harness runs selection scenarios against a real editing session.
//
// A scenario is a YAML file describing a scene (elements with their groups,
// frames and labels) and a list of steps. Each step issues one session
// command, renders, and optionally checks the resulting selection, group
// state, nonces and repaint decisions.
//
// Scenario files are validated against an embedded CUE schema before they
// are decoded, so typos and wrong types fail with a position-carrying error
// rather than a silently ignored field.
//
// # Golden traces
//
// Every run produces a trace.Snapshot: the observable state after each step.
// RunWithGolden compares its canonical JSON with
// testdata/golden/<scenario>.golden. To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// # Determinism
//
// Runs use element.SequentialIDs so ids created by group and duplicate
// commands are stable, and the logger discards output.
package harness
