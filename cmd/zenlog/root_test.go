package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkt.systems/zenlog/ansi"
	"pkt.systems/zenlog/config"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateAcceptsRuleset(t *testing.T) {
	path := writeConfig(t, "zenlog.yaml", "formatting:\n  palette: nord\nlog_line:\n  format: minimal\n")

	stdout, _, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "ok "+path)
	assert.Contains(t, stdout, "palette    nord")
	assert.Contains(t, stdout, "format     minimal (built-in)")
}

func TestValidateCountsCustomSegments(t *testing.T) {
	path := writeConfig(t, "zenlog.toml", `
[[log_line.format]]
key = "level"

[[log_line.format]]
static = " > "
`)
	stdout, _, err := execute(t, "validate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "format     custom, 2 segments")
}

func TestValidateReportsProblems(t *testing.T) {
	path := writeConfig(t, "zenlog.yaml", "formatting:\n  palette: neon\n  style: nope\n")

	_, stderr, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, &config.Error{Code: config.CodeInvalid})
	assert.Contains(t, stderr, `formatting.palette "neon" is unknown`)
	assert.Contains(t, stderr, `formatting.style "nope" is not a chroma style`)
}

func TestValidateRequiresFile(t *testing.T) {
	_, _, err := execute(t, "validate")
	require.Error(t, err)
}

func TestPreviewRendersEveryWidth(t *testing.T) {
	stdout, _, err := execute(t, "preview", "--no-color", "--width", "100,40", "--format", "minimal", "--message", "hello")
	require.NoError(t, err)

	assert.Contains(t, stdout, "--- width 100 ")
	assert.Contains(t, stdout, "--- width 40 ")
	for _, line := range []string{"D hello", "I hello", "S hello", "W hello", "E hello", "L hello"} {
		assert.Equal(t, 2, strings.Count(stdout, line+"\n"), line)
	}
	assert.NotContains(t, stdout, "\x1b[")
}

func TestPreviewHonoursLevel(t *testing.T) {
	stdout, _, err := execute(t, "preview", "--no-color", "-w", "80", "-f", "minimal", "-l", "error", "-m", "x")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "W x")
	assert.Contains(t, stdout, "E x\n")
	assert.Contains(t, stdout, "L x\n")
}

func TestPreviewWrapsSamplesToWidth(t *testing.T) {
	stdout, _, err := execute(t, "preview", "--no-color", "-w", "50", "-f", "simple")
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimRight(stdout, "\n"), "\n")[1:] {
		assert.LessOrEqual(t, ansi.VisibleLength(line), 50, line)
	}
}

func TestPreviewRejectsBadInput(t *testing.T) {
	_, _, err := execute(t, "preview", "--level", "chatty")
	require.Error(t, err)

	_, _, err = execute(t, "preview", "--format", "fancy")
	require.Error(t, err)
	assert.ErrorIs(t, err, &config.Error{Code: config.CodeInvalid})
}

func TestPalettes(t *testing.T) {
	stdout, _, err := execute(t, "palettes")
	require.NoError(t, err)
	assert.Equal(t, strings.Join(ansi.AvailablePaletteNames(), "\n")+"\n", stdout)

	stdout, _, err = execute(t, "palettes", "--sample")
	require.NoError(t, err)
	assert.Contains(t, stdout, ansi.PaletteNord.Warning+"warning"+ansi.Reset)

	stdout, _, err = execute(t, "palettes", "--sample", "--no-color")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "\x1b[")
	assert.Contains(t, stdout, "debug info success warning error lethal")
}

func TestDemo(t *testing.T) {
	stdout, _, err := execute(t, "demo", "--no-color", "--width", "100")
	require.NoError(t, err)
	assert.Contains(t, stdout, "handling request")
	assert.Contains(t, stdout, `"request_id":`)
	assert.Contains(t, stdout, "joined | with | a custom separator")
	assert.Contains(t, stdout, "printed through the standard library logger")
	assert.Contains(t, stdout, "handleOrder")
	assert.NotContains(t, stdout, "\x1b[")
}
