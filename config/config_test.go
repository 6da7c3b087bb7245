package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkt.systems/zenlog/template"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	rs := Default()

	assert.False(t, rs.Timestamps.AlwaysShow)
	assert.False(t, rs.Timestamps.UseUTC)
	assert.Equal(t, "15:04:05", rs.Timestamps.Format)
	assert.True(t, rs.Formatting.ANSI)
	assert.True(t, rs.Formatting.Highlighting)
	assert.True(t, rs.Formatting.PrettyPrint)
	assert.Zero(t, rs.Formatting.FixedFormatWidth)
	assert.Equal(t, "default", rs.Formatting.Palette)
	assert.Equal(t, "onedark", rs.Formatting.Style)
	assert.Equal(t, "debug", rs.Filtering.MinLevel)
	assert.Empty(t, rs.Filtering.ExcludeMessages)
	assert.Empty(t, rs.Filtering.IncludeOnlyMessages)
	assert.Empty(t, rs.Output.DefaultFileStream)
	assert.False(t, rs.Metadata.ShowMetadata)
	assert.True(t, rs.Metadata.IncludeFunction)
	assert.True(t, rs.Metadata.IncludeValueCount)
	assert.False(t, rs.Metadata.IncludeLineNumber)
	assert.Equal(t, "default", rs.LogLine.Format)
	assert.Len(t, rs.LogLine.Template, len(template.MustBuiltin(template.FormatDefault)))
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a.Formatting.ANSI = false
	a.Filtering.ExcludeMessages = append(a.Filtering.ExcludeMessages, "x")
	a.LogLine.Template[0].Key = "level"

	b := Default()
	assert.True(t, b.Formatting.ANSI)
	assert.Empty(t, b.Filtering.ExcludeMessages)
	assert.Equal(t, template.KeyTimestamp, b.LogLine.Template[0].Key)
}

func TestLoadYAMLFile(t *testing.T) {
	path := writeFile(t, "zenlog.yaml", `
formatting:
  ansi: false
  palette: nord
filtering:
  min_level: warning
  exclude_messages: [heartbeat]
log_line:
  format: simple
`)
	rs, err := Load(WithFile(path), WithoutEnv())
	require.NoError(t, err)

	assert.False(t, rs.Formatting.ANSI)
	assert.True(t, rs.Formatting.Highlighting, "unset keys keep their defaults")
	assert.Equal(t, "nord", rs.Formatting.Palette)
	assert.Equal(t, "warning", rs.Filtering.MinLevel)
	assert.Equal(t, []string{"heartbeat"}, rs.Filtering.ExcludeMessages)
	assert.Equal(t, template.MustBuiltin(template.FormatSimple), rs.LogLine.Template)
}

func TestLoadTOMLFileWithInlineFormat(t *testing.T) {
	path := writeFile(t, "zenlog.toml", `
[timestamps]
always_show = true

[[log_line.format]]
key = "level"

  [[log_line.format.parameters]]
  case = "upper"

[[log_line.format]]
static = " "
`)
	rs, err := Load(WithFile(path), WithoutEnv())
	require.NoError(t, err)

	assert.True(t, rs.Timestamps.AlwaysShow)
	require.Len(t, rs.LogLine.Template, 2)
	level := rs.LogLine.Template[0]
	assert.Equal(t, template.KeyLevel, level.Key)
	require.Len(t, level.Parameters, 1)
	require.NotNil(t, level.Parameters[0].Case)
	assert.Equal(t, template.CaseUpper, level.Parameters[0].Case.Mode)
	assert.True(t, rs.LogLine.Template[1].IsStatic())
	assert.Equal(t, " ", rs.LogLine.Template[1].Static)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("ZENLOG_FORMATTING__ANSI", "false")
	t.Setenv("ZENLOG_FORMATTING__FIXED_FORMAT_WIDTH", "60")
	t.Setenv("ZENLOG_FILTERING__EXCLUDE_MESSAGES", "noise,chatter")
	t.Setenv("ZENLOG_LOG_LINE__FORMAT", "minimal")
	t.Setenv("ZENLOG_LEVEL", "info")

	rs, err := Load()
	require.NoError(t, err)

	assert.False(t, rs.Formatting.ANSI)
	assert.Equal(t, 60, rs.Formatting.FixedFormatWidth)
	assert.Equal(t, []string{"noise", "chatter"}, rs.Filtering.ExcludeMessages)
	assert.Equal(t, template.MustBuiltin(template.FormatMinimal), rs.LogLine.Template)
}

func TestLoadLayerOrder(t *testing.T) {
	path := writeFile(t, "zenlog.yml", "formatting:\n  palette: nord\n  style: monokai\n")
	t.Setenv("ZENLOG_FORMATTING__PALETTE", "dracula")

	rs, err := Load(WithFile(path), WithOverrides(map[string]any{"formatting.style": "github"}))
	require.NoError(t, err)

	assert.Equal(t, "dracula", rs.Formatting.Palette, "env overrides the file")
	assert.Equal(t, "github", rs.Formatting.Style, "overrides win over the file")
}

func TestLoadWithEnvPrefix(t *testing.T) {
	t.Setenv("MYAPP_TIMESTAMPS__USE_UTC", "true")
	rs, err := Load(WithEnvPrefix("MYAPP_"))
	require.NoError(t, err)
	assert.True(t, rs.Timestamps.UseUTC)
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeFile(t, "zenlog.yaml", "formatting:\n  colour: true\n")
	_, err := Load(WithFile(path), WithoutEnv())
	require.Error(t, err)
	assert.ErrorIs(t, err, &Error{Code: CodeParse})

	var ce *Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, path, ce.Source)
}

func TestLoadRejectsWrongType(t *testing.T) {
	path := writeFile(t, "zenlog.yaml", "formatting:\n  fixed_format_width: wide\n")
	_, err := Load(WithFile(path), WithoutEnv())
	assert.ErrorIs(t, err, &Error{Code: CodeParse})
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"palette":  "formatting:\n  palette: neon\n",
		"style":    "formatting:\n  style: not-a-style\n",
		"width":    "formatting:\n  fixed_format_width: -1\n",
		"layout":   "timestamps:\n  format: \"\"\n",
		"builtin":  "log_line:\n  format: fancy\n",
		"notalist": "log_line:\n  format: {key: level}\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "zenlog.yaml", content)
			_, err := Load(WithFile(path), WithoutEnv())
			require.Error(t, err)
			assert.ErrorIs(t, err, &Error{Code: CodeInvalid})
		})
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "zenlog.ini", "ansi=false\n")
	_, err := Load(WithFile(path), WithoutEnv())
	assert.ErrorIs(t, err, &Error{Code: CodeLoad})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(WithFile(filepath.Join(t.TempDir(), "missing.yaml")), WithoutEnv())
	assert.ErrorIs(t, err, &Error{Code: CodeLoad})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInlineFormatUnknownDirectiveIsLocated(t *testing.T) {
	path := writeFile(t, "zenlog.yaml", `
log_line:
  format:
    - static: "["
    - key: level
      parameters:
        - align: {width: 6}
        - blink: true
`)
	_, err := Load(WithFile(path), WithoutEnv())
	require.Error(t, err)
	assert.ErrorIs(t, err, template.ErrUnknownParameter)

	var te *template.ConfigError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 1, te.Segment)
	assert.Equal(t, 1, te.Parameter)
	assert.Equal(t, "blink", te.Kind)
}

func TestCheckFormatSchema(t *testing.T) {
	valid := []any{
		map[string]any{"static": " "},
		map[string]any{"key": "level", "parameters": []any{map[string]any{"case": "upper"}}},
	}
	assert.Empty(t, CheckFormatSchema(valid))

	invalid := []any{
		map[string]any{"static": " ", "key": "level"},
		map[string]any{"key": "level", "parameters": []any{map[string]any{"case": "upper", "align": map[string]any{}}}},
	}
	assert.NotEmpty(t, CheckFormatSchema(invalid))

	_, err := ResolveFormat(invalid)
	assert.ErrorIs(t, err, template.ErrInvalidFormat)
	assert.ErrorIs(t, err, &Error{Code: CodeInvalid})
}

func TestResolveFormat(t *testing.T) {
	f, err := ResolveFormat(nil)
	require.NoError(t, err)
	assert.Equal(t, template.MustBuiltin(template.FormatDefault), f)

	f, err = ResolveFormat("Simple")
	require.NoError(t, err)
	assert.Equal(t, template.MustBuiltin(template.FormatSimple), f)

	built := template.Format{template.Static(">"), template.Template(template.KeyLinenum)}
	f, err = ResolveFormat(built)
	require.NoError(t, err)
	assert.Equal(t, built, f)

	_, err = ResolveFormat(template.Format{template.Template("colour")})
	assert.ErrorIs(t, err, template.ErrUnknownKey)
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Code: CodeLoad, Source: "app.yaml", Message: "failed", Wrapped: os.ErrPermission}
	assert.Equal(t, "config [CONFIG_LOAD] app.yaml: failed: permission denied", err.Error())
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.NotErrorIs(t, err, &Error{Code: CodeParse})
}
