package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scenecore/internal/store"
)

func TestTestCommand_MissingArgs(t *testing.T) {
	_, err := execute(t, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommand_NonExistentDir(t *testing.T) {
	_, err := execute(t, "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenarios directory not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommand_InvalidKeyMode(t *testing.T) {
	_, err := execute(t, "test", t.TempDir(), "--key-mode", "fuzzy")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommand_NoScenarios(t *testing.T) {
	out, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommand_Passing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "grouped.yaml", fmt.Sprintf(groupScenario, "grouped", "[a, b]"))

	out, err := execute(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ grouped")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommand_Failing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "wrong.yaml", fmt.Sprintf(groupScenario, "wrong", "[a]"))

	out, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong")
	assert.Contains(t, out, "selected mismatch")
}

func TestTestCommand_LoadError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "name: broken\nelements: []\nsteps: [{op: fly}]\n")

	out, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommand_Filter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.yaml", fmt.Sprintf(groupScenario, "keep", "[a, b]"))
	writeFile(t, dir, "skip.yaml", fmt.Sprintf(groupScenario, "skip", "[a]"))

	out, err := execute(t, "test", dir, "--filter", "ke*")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ keep")
	assert.NotContains(t, out, "skip")
}

func TestTestCommand_GoldenUpdateThenCompare(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "grouped.yaml", fmt.Sprintf(groupScenario, "grouped", "[a, b]"))

	out, err := execute(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "golden updated")

	golden := filepath.Join(dir, "golden", "grouped.golden")
	require.FileExists(t, golden)

	_, err = execute(t, "test", dir)
	require.NoError(t, err)

	// A tampered golden file fails the run.
	require.NoError(t, os.WriteFile(golden, []byte(`{}`), 0644))
	out, err = execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "trace does not match golden file")
}

func TestTestCommand_KeyModeChangesGolden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "grouped.yaml", fmt.Sprintf(groupScenario, "grouped", "[a, b]"))

	_, err := execute(t, "test", dir, "--update")
	require.NoError(t, err)

	// The golden trace records the key mode.
	_, err = execute(t, "test", dir, "--key-mode", "approx")
	require.Error(t, err)
}

func TestTestCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "grouped.yaml", fmt.Sprintf(groupScenario, "grouped", "[a, b]"))
	writeFile(t, dir, "wrong.yaml", fmt.Sprintf(groupScenario, "wrong", "[a]"))

	out, err := execute(t, "test", dir, "--format", "json")
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Failed)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
}

func TestTestCommand_Journal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "grouped.yaml", fmt.Sprintf(groupScenario, "grouped", "[a, b]"))
	db := filepath.Join(t.TempDir(), "runs.db")

	_, err := execute(t, "test", dir, "--db", db)
	require.NoError(t, err)
	_, err = execute(t, "test", dir, "--db", db, "--key-mode", "approx")
	require.NoError(t, err)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ReadRuns(context.Background(), "grouped")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "exact", runs[0].KeyMode)
	assert.Equal(t, "approx", runs[1].KeyMode)
	assert.True(t, runs[0].Passed)

	steps, err := st.ReadSteps(context.Background(), runs[0].ID)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "move", steps[1].Op)
	assert.True(t, steps[1].StaticPaint)
}
