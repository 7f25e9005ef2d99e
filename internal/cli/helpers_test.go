package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const groupScenario = `name: %s
elements:
  - {id: a, type: rectangle, x: 0, y: 0, width: 10, height: 10, group_ids: [g1]}
  - {id: b, type: rectangle, x: 20, y: 0, width: 10, height: 10, group_ids: [g1]}
  - {id: c, type: ellipse, x: 40, y: 0, width: 10, height: 10}
steps:
  - op: select
    ids: [a]
    expect:
      selected: %s
      groups: [g1]
  - op: move
    dx: 5
    expect:
      static: true
`

// writeFile writes content to dir/name, creating dir.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
