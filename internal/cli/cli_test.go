package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/goqbc/internal/cli"
)

func buildInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test", Commit: "none", Date: "unknown"}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(buildInfo())
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String() + errOut.String(), err
}

func TestCompileCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "doc.qbk")
	output := filepath.Join(dir, "doc.xml")
	source := "[article Test Doc\n    [quickbook 1.5]\n]\n\nHello world.\n"
	require.NoError(t, os.WriteFile(input, []byte(source), 0o644))

	_, err := execute(t, "compile", input, "-o", output, "--color", "never")
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<article")
	assert.Contains(t, string(content), "Hello world.")
}

func TestCompileCommandHTML(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "doc.qbk")
	output := filepath.Join(dir, "doc.html")
	source := "[article Test Doc\n    [quickbook 1.5]\n]\n\nHello world.\n"
	require.NoError(t, os.WriteFile(input, []byte(source), 0o644))

	_, err := execute(t, "compile", input, "--html", "-o", output, "--color", "never")
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<!DOCTYPE html>")
}

func TestCompileCommandMissingInput(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "compile", filepath.Join(dir, "absent.qbk"), "--color", "never")
	require.ErrorIs(t, err, cli.ErrCompileFailed)
	assert.Contains(t, out, "unable to open file")
	assert.Contains(t, out, "error count: 1")
}

func TestCompileCommandConflictingFormats(t *testing.T) {
	_, err := execute(t, "compile", "doc.qbk", "--html", "--boostbook")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, cli.ErrCompileFailed)
}

func TestVersionCommand(t *testing.T) {
	_, err := execute(t, "version")
	assert.NoError(t, err)
}
