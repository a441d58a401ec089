package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/ctxgrep/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CTXGREP_HOME", t.TempDir())

	cmd := NewRootCommand()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	// A nil slice makes cobra fall back to os.Args
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func notesDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("alpha\nbeta\ngamma\n"), 0644))
	return dir
}

func TestSearchLineModeWithLineNumbers(t *testing.T) {
	dir := notesDir(t)

	stdout, _, err := execute(t, "-p", "beta", "-f", dir, "-n", "--mode", "line")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notes.txt")+":2 - beta\n", stdout)
}

func TestSearchWindowModePositionalArgs(t *testing.T) {
	dir := notesDir(t)

	stdout, _, err := execute(t, "beta", dir, "-B", "1", "-A", "1", "-n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notes.txt")+":2 - alpha\nbeta\ngamma\n", stdout)
}

func TestSearchContextFlagSetsBothSides(t *testing.T) {
	dir := notesDir(t)

	stdout, _, err := execute(t, "beta", dir, "-C", "1", "-A", "0")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notes.txt")+" - alpha\nbeta\n", stdout)
}

func TestSearchIgnoreCase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("foo\nFOO\nFoO\nbar\n"), 0644))

	stdout, _, err := execute(t, "Foo", dir, "-i", "--mode", "line")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(stdout, "\n"))

	stdout, _, err = execute(t, "Foo", dir, "--mode", "line")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestSearchNoMatchesPrintsNothing(t *testing.T) {
	dir := notesDir(t)

	stdout, stderr, err := execute(t, "zeta", dir)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestSearchInvalidPattern(t *testing.T) {
	stdout, _, err := execute(t, "a(b", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	var pe *models.PatternError
	assert.True(t, errors.As(err, &pe))
	assert.Empty(t, stdout)
}

func TestSearchFixedStrings(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("call a(b)\n"), 0644))

	stdout, _, err := execute(t, "-F", "a(b", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, " - call a(b)\n")
}

func TestSearchMissingRoot(t *testing.T) {
	_, _, err := execute(t, "x", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search root")
}

func TestSearchMissingArguments(t *testing.T) {
	_, _, err := execute(t)
	assert.ErrorContains(t, err, "pattern is required")

	_, _, err = execute(t, "beta")
	assert.ErrorContains(t, err, "path is required")
}

func TestSearchVerboseReportsErrors(t *testing.T) {
	dir := notesDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.bin"), []byte{'b', 0xff, 0xc0}, 0644))

	stdout, stderr, err := execute(t, "beta", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "notes.txt - beta")
	assert.Empty(t, stderr, "errors are dropped without -v")

	_, stderr, err = execute(t, "beta", dir, "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "[WARN] error loading file")
	assert.Contains(t, stderr, "bad.bin")
}

func TestSearchLineModeContextWarning(t *testing.T) {
	dir := notesDir(t)

	_, stderr, err := execute(t, "beta", dir, "--mode", "line", "-B", "2")
	require.NoError(t, err)
	assert.Contains(t, stderr, "context lines are ignored in line mode")
}

func TestSearchInvalidFlagValues(t *testing.T) {
	dir := notesDir(t)

	_, _, err := execute(t, "beta", dir, "--mode", "file")
	assert.ErrorContains(t, err, "invalid mode")

	_, _, err = execute(t, "beta", dir, "-B", "-1")
	assert.ErrorContains(t, err, "context_before")
}

func TestSearchOutputFile(t *testing.T) {
	dir := notesDir(t)
	outPath := filepath.Join(t.TempDir(), "results.txt")

	stdout, _, err := execute(t, "beta", dir, "-o", outPath, "--color", "always")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notes.txt")+" - beta\n", string(data))
}

func TestSearchOutputFileKeepsPermissions(t *testing.T) {
	dir := notesDir(t)
	outPath := filepath.Join(t.TempDir(), "results.txt")
	require.NoError(t, os.WriteFile(outPath, []byte("stale\n"), 0600))

	_, _, err := execute(t, "beta", dir, "-o", outPath)
	require.NoError(t, err)

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
}

func TestSearchLogFile(t *testing.T) {
	dir := notesDir(t)
	logPath := filepath.Join(t.TempDir(), "ctxgrep.log")

	_, _, err := execute(t, "beta", dir, "--log-file", logPath, "--log-level", "info")
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "started at")
	assert.Contains(t, content, "Search complete: files: 1, matches: 1, errors: 0")
	assert.Contains(t, content, "finished at")
}

func TestSearchConfigFile(t *testing.T) {
	dir := notesDir(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("line_numbers = true\nmode = \"line\"\n"), 0644))

	stdout, _, err := execute(t, "beta", dir, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notes.txt")+":2 - beta\n", stdout)

	_, _, err = execute(t, "beta", dir, "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to load config")
}

func TestSearchExcludeDir(t *testing.T) {
	dir := notesDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vendor"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor", "dep.txt"), []byte("beta\n"), 0644))

	stdout, _, err := execute(t, "beta", dir)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(stdout, "\n"))

	stdout, _, err = execute(t, "beta", dir, "--exclude-dir", "vendor")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(stdout, "\n"))
}
