package config

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"pkt.systems/zenlog/template"
)

//go:embed embedded/format.schema.json
var formatSchema []byte

var formatSchemaLoader = gojsonschema.NewBytesLoader(formatSchema)

// ResolveFormat turns a log_line.format value into a validated Format. A
// string names a built-in format; a list is checked against the format
// schema and decoded segment by segment. A nil value selects the default
// format.
func ResolveFormat(raw any) (template.Format, error) {
	switch v := raw.(type) {
	case nil:
		return template.Builtin(template.FormatDefault)
	case string:
		f, err := template.Builtin(v)
		if err != nil {
			return nil, newError(CodeInvalid, "", "log_line.format", err)
		}
		return f, nil
	case template.Format:
		if err := template.Validate(v); err != nil {
			return nil, newError(CodeInvalid, "", "log_line.format", err)
		}
		return cloneFormat(v), nil
	}

	data := normalize(raw)
	if problems := CheckFormatSchema(data); len(problems) > 0 {
		e := newError(CodeInvalid, "", "log_line.format does not match the format schema: "+strings.Join(problems, "; "), template.ErrMalformed)
		e.Details = map[string]any{"problems": problems}
		return nil, e
	}
	f, err := template.Decode(data)
	if err != nil {
		return nil, newError(CodeInvalid, "", "log_line.format", err)
	}
	return f, nil
}

// CheckFormatSchema validates the shape of an inline format and returns one
// line per violation, each prefixed with its JSON path.
func CheckFormatSchema(raw any) []string {
	result, err := gojsonschema.Validate(formatSchemaLoader, gojsonschema.NewGoLoader(normalize(raw)))
	if err != nil {
		return []string{err.Error()}
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
	}
	return problems
}

// normalize rewrites decoder-specific containers (map[any]any, typed slices
// of maps) into []any and map[string]any.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = val
		}
		return out
	default:
		return v
	}
}
