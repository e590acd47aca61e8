package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `
name: insert
config:
  prefix: fade
  enter_ms: 200
  leave_ms: 300
initial:
  - key: a
steps:
  - set:
      - key: a
      - key: b
  - tick: 2
  - advance_ms: 200
assertions:
  - type: gapless
  - type: phase_sequence
    key: b
    phases:
      - fade-enter
      - fade-enter-active
      - ""
`

const failingScenario = `
name: broken
config:
  prefix: fade
  enter_ms: 200
  leave_ms: 300
initial:
  - key: a
steps:
  - tick: 1
assertions:
  - type: frame_count
    count: 99
`

func writeScenarioFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func newPlayCommand(buf *bytes.Buffer, args ...string) *cobra.Command {
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewPlayCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	return cmd
}

func TestPlayCommandMissingArgs(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := newPlayCommand(buf)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestPlayCommandNonExistentDir(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := newPlayCommand(buf, "/nonexistent/scenarios")

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenarios directory not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestPlayCommandEmptyDir(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := newPlayCommand(buf, t.TempDir())

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No scenarios found")
}

func TestPlayCommandPassingScenario(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "insert.yaml", passingScenario)

	buf := &bytes.Buffer{}
	cmd := newPlayCommand(buf, dir)

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ insert")
	assert.Contains(t, buf.String(), "1 passed, 0 failed")
}

func TestPlayCommandFailingScenario(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "broken.yaml", failingScenario)

	buf := &bytes.Buffer{}
	cmd := newPlayCommand(buf, dir)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "✗ broken")
	assert.Contains(t, buf.String(), "frame_count")
}

func TestPlayCommandFilter(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "insert.yaml", passingScenario)
	writeScenarioFile(t, dir, "broken.yaml", failingScenario)

	buf := &bytes.Buffer{}
	cmd := newPlayCommand(buf, dir, "--filter", "insert*")

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "1 passed, 0 failed, 1 total")
}

func TestPlayCommandGoldenUpdateAndMatch(t *testing.T) {
	dir := t.TempDir()
	scenariosDir := filepath.Join(dir, "scenarios")
	goldenDir := filepath.Join(dir, "golden")
	require.NoError(t, os.MkdirAll(scenariosDir, 0o755))
	writeScenarioFile(t, scenariosDir, "insert.yaml", passingScenario)

	// First pass regenerates the golden file.
	buf := &bytes.Buffer{}
	cmd := newPlayCommand(buf, scenariosDir, "--update")
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "golden updated")
	assert.FileExists(t, filepath.Join(goldenDir, "insert.golden"))

	// Second pass compares against it.
	buf.Reset()
	cmd = newPlayCommand(buf, scenariosDir)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "✓ insert")
}

func TestPlayCommandGoldenMismatch(t *testing.T) {
	dir := t.TempDir()
	scenariosDir := filepath.Join(dir, "scenarios")
	goldenDir := filepath.Join(dir, "golden")
	require.NoError(t, os.MkdirAll(scenariosDir, 0o755))
	require.NoError(t, os.MkdirAll(goldenDir, 0o755))
	writeScenarioFile(t, scenariosDir, "insert.yaml", passingScenario)
	require.NoError(t, os.WriteFile(filepath.Join(goldenDir, "insert.golden"), []byte("stale\n"), 0o644))

	buf := &bytes.Buffer{}
	cmd := newPlayCommand(buf, scenariosDir)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "does not match golden file")
}

func TestPlayCommandVerbosePrintsTrace(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "insert.yaml", passingScenario)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Verbose: true}
	cmd := NewPlayCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "insert trace")
	assert.Contains(t, buf.String(), `"phase": "fade-enter"`)
}

func TestPlayCommandJSON(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "insert.yaml", passingScenario)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewPlayCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	require.NoError(t, cmd.Execute())

	var response CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
}

func TestPlayCommandJSONFailure(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "broken.yaml", failingScenario)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewPlayCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var response CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &response))
	assert.Equal(t, "error", response.Status)
	require.NotNil(t, response.Error)
	assert.Equal(t, "E_SCENARIO_FAILED", response.Error.Code)
}

func TestPlayHelpText(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := newPlayCommand(buf, "--help")

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "scenarios-dir")
	assert.Contains(t, output, "--update")
	assert.Contains(t, output, "--filter")
}

func TestFindScenarioFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.yaml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "two.yml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte(""), 0o644))

	files, err := findScenarioFiles(dir, "")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFindScenarioFilesWithFilter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "remove-one.yaml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "remove-all.yaml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "insert.yaml"), []byte(""), 0o644))

	files, err := findScenarioFiles(dir, "remove-*")
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, f := range files {
		assert.Contains(t, filepath.Base(f), "remove-")
	}
}
