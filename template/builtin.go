package template

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed formats/*.yaml
var builtinFS embed.FS

// Built-in format names.
const (
	FormatDefault = "default"
	FormatSimple  = "simple"
	FormatMinimal = "minimal"
)

var (
	builtinOnce    sync.Once
	builtinFormats map[string]Format
	builtinErr     error
)

// Builtin returns the built-in format registered under name.
func Builtin(name string) (Format, error) {
	builtinOnce.Do(loadBuiltins)
	if builtinErr != nil {
		return nil, builtinErr
	}
	f, ok := builtinFormats[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, &ConfigError{
			Segment: -1, Parameter: -1,
			Message: fmt.Sprintf("unknown built-in format %q (have %s)", name, strings.Join(BuiltinNames(), ", ")),
			Err:     ErrMalformed,
		}
	}
	return slices.Clone(f), nil
}

// MustBuiltin is Builtin for names known to exist.
func MustBuiltin(name string) Format {
	f, err := Builtin(name)
	if err != nil {
		panic(err)
	}
	return f
}

// BuiltinNames lists the built-in format names in sorted order.
func BuiltinNames() []string {
	return []string{FormatDefault, FormatMinimal, FormatSimple}
}

func loadBuiltins() {
	builtinFormats = make(map[string]Format, 3)
	for _, name := range BuiltinNames() {
		data, err := builtinFS.ReadFile(path.Join("formats", name+".yaml"))
		if err != nil {
			builtinErr = err
			return
		}
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			builtinErr = fmt.Errorf("built-in format %s: %w", name, err)
			return
		}
		f, err := Decode(raw)
		if err != nil {
			builtinErr = fmt.Errorf("built-in format %s: %w", name, err)
			return
		}
		builtinFormats[name] = f
	}
}
