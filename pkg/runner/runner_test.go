package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/goqbc/pkg/compile"
	"github.com/yaklabco/goqbc/pkg/runner"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const articleSource = "[article Test Doc\n    [quickbook 1.5]\n]\n\nHello world.\n"

func TestRunBoostbook(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeSource(t, dir, "doc.qbk", articleSource)

	res, err := runner.Run(context.Background(), runner.Options{
		Input:       input,
		PrettyPrint: true,
	})
	require.NoError(t, err)
	require.True(t, res.OK())

	assert.Equal(t, filepath.Join(dir, "doc.xml"), res.OutputPath)
	assert.True(t, res.Written)
	assert.Empty(t, res.Summary())

	content, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	out := string(content)
	assert.Equal(t, out, string(res.Output))
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, `<!DOCTYPE article PUBLIC "-//Boost//DTD BoostBook XML V1.0//EN"`)
	assert.Contains(t, out, "<article")
	assert.Contains(t, out, "Hello world.")
}

func TestRunHTML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeSource(t, dir, "doc.qbk", articleSource)

	res, err := runner.Run(context.Background(), runner.Options{
		Input:  input,
		Format: compile.FormatHTML,
	})
	require.NoError(t, err)
	require.True(t, res.OK())

	assert.Equal(t, filepath.Join(dir, "doc.html"), res.OutputPath)
	out := string(res.Output)
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<html>")
	assert.Contains(t, out, "Hello world.")
	assert.NotContains(t, out, "<?xml")
}

func TestRunExplicitOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeSource(t, dir, "doc.qbk", articleSource)
	output := filepath.Join(dir, "out", "result.xml")
	require.NoError(t, os.MkdirAll(filepath.Dir(output), 0o755))

	res, err := runner.Run(context.Background(), runner.Options{Input: input, Output: output})
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Equal(t, output, res.OutputPath)

	_, err = os.Stat(output)
	assert.NoError(t, err)
}

func TestRunMissingEndsectWarns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := "[article Test Doc\n    [quickbook 1.5]\n]\n\n" +
		"[section One]\n\nBody text.\n"
	input := writeSource(t, dir, "doc.qbk", source)

	res, err := runner.Run(context.Background(), runner.Options{Input: input})
	require.NoError(t, err)

	// Warnings do not fail the compile; output is still produced.
	assert.True(t, res.OK())
	assert.Equal(t, 1, res.WarningCount)
	assert.Equal(t, 1, res.SectionLevel)
	require.NotEmpty(t, res.Diagnostics)

	var found bool
	for _, d := range res.Diagnostics {
		if d.Severity == compile.SeverityWarning {
			assert.Contains(t, d.Message, "missing [endsect]")
			found = true
		}
	}
	assert.True(t, found)
	assert.NotNil(t, res.Output)
}

func TestRunMissingInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "absent.qbk")

	res, err := runner.Run(context.Background(), runner.Options{Input: input})
	require.NoError(t, err)

	assert.False(t, res.OK())
	assert.Equal(t, 1, res.ErrorCount)
	assert.Nil(t, res.Output)
	assert.Equal(t, "error count: 1", res.Summary())
	require.Len(t, res.Diagnostics, 1)
	assert.Contains(t, res.Diagnostics[0].Message, "unable to open file")
}

func TestRunNoInput(t *testing.T) {
	t.Parallel()

	_, err := runner.Run(context.Background(), runner.Options{})
	assert.Error(t, err)
}

func TestRunSyntaxErrorProducesNoOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := "[article Test Doc\n    [quickbook 1.5]\n]\n\n[section\n"
	input := writeSource(t, dir, "doc.qbk", source)

	res, err := runner.Run(context.Background(), runner.Options{Input: input})
	require.NoError(t, err)

	assert.False(t, res.OK())
	assert.Positive(t, res.ErrorCount)
	assert.Nil(t, res.Output)

	_, statErr := os.Stat(res.OutputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunDefines(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := "[article Test Doc\n    [quickbook 1.5]\n]\n\nRelease __my_version__ today.\n"
	input := writeSource(t, dir, "doc.qbk", source)

	res, err := runner.Run(context.Background(), runner.Options{
		Input:   input,
		Defines: []string{"__my_version__=1.2.3"},
	})
	require.NoError(t, err)
	require.True(t, res.OK())

	out := string(res.Output)
	assert.Contains(t, out, "Release 1.2.3 today.")
	assert.NotContains(t, out, "__my_version__")
}

func TestRunSkipsUnchangedOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeSource(t, dir, "doc.qbk", articleSource)
	opts := runner.Options{Input: input, PrettyPrint: true}

	first, err := runner.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, first.Written)

	second, err := runner.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, second.Written)
	assert.Equal(t, first.Output, second.Output)
}

func TestRunPrettyPrintLayout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeSource(t, dir, "doc.qbk", articleSource)

	res, err := runner.Run(context.Background(), runner.Options{
		Input:       input,
		PrettyPrint: true,
		Indent:      4,
	})
	require.NoError(t, err)
	require.True(t, res.OK())

	out := string(res.Output)
	assert.Contains(t, out, "\n    <title>")
}

func TestRunDebugPinsClock(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// No explicit copyright or last-revision, so metadata defaults come
	// from the clock.
	input := writeSource(t, dir, "doc.qbk", articleSource)

	first, err := runner.Run(context.Background(), runner.Options{Input: input, Debug: true})
	require.NoError(t, err)
	second, err := runner.Run(context.Background(), runner.Options{Input: input, Debug: true})
	require.NoError(t, err)

	assert.Equal(t, first.Output, second.Output)
	assert.Contains(t, string(first.Output), "2000")
}
