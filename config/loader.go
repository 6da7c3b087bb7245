package config

import (
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"pkt.systems/zenlog/ansi"
)

// EnvPrefix is the default prefix of ruleset environment variables. Nested
// keys are separated by a double underscore:
// ZENLOG_FORMATTING__ANSI=false sets formatting.ansi.
const EnvPrefix = "ZENLOG_"

//go:embed embedded/defaults.yaml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]any, error) {
	return nil, errors.New("not implemented")
}

type loadOptions struct {
	file      string
	overrides map[string]any
	env       bool
	envPrefix string
}

// Option adjusts Load.
type Option func(*loadOptions)

// WithFile layers a YAML (.yaml, .yml) or TOML (.toml) file over the
// defaults.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.file = path
	}
}

// WithOverrides layers values over everything else. Keys may be dotted
// ("formatting.ansi") or nested maps.
func WithOverrides(values map[string]any) Option {
	return func(o *loadOptions) {
		o.overrides = values
	}
}

// WithEnvPrefix changes the environment prefix from EnvPrefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.env = true
		o.envPrefix = prefix
	}
}

// WithoutEnv skips the environment layer.
func WithoutEnv() Option {
	return func(o *loadOptions) {
		o.env = false
	}
}

var (
	defaultOnce    sync.Once
	defaultRuleset *Ruleset
)

// Default returns a copy of the ruleset built from the embedded defaults
// alone.
func Default() *Ruleset {
	defaultOnce.Do(func() {
		rs, err := Load(WithoutEnv())
		if err != nil {
			panic(fmt.Sprintf("zenlog: embedded defaults are invalid: %v", err))
		}
		defaultRuleset = rs
	})
	return defaultRuleset.Clone()
}

// Load builds a Ruleset from the embedded defaults, the optional file, the
// environment and the overrides, in that order. Unknown keys and values of
// the wrong type are rejected, and log_line.format is resolved and
// validated before Load returns.
func Load(opts ...Option) (*Ruleset, error) {
	o := loadOptions{env: true, envPrefix: EnvPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, yaml.Parser()); err != nil {
		return nil, newError(CodeParse, "defaults", "failed to parse embedded defaults", err)
	}

	source := "defaults"
	if o.file != "" {
		source = o.file
		parser, err := parserFor(o.file)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(o.file), parser); err != nil {
			return nil, newError(CodeLoad, o.file, "failed to load config file", err)
		}
	}

	if o.env {
		if err := k.Load(env.Provider(o.envPrefix, ".", envKey(o.envPrefix)), nil); err != nil {
			return nil, newError(CodeLoad, "env", "failed to load environment", err)
		}
	}

	if len(o.overrides) > 0 {
		if err := k.Load(confmap.Provider(o.overrides, "."), nil); err != nil {
			return nil, newError(CodeLoad, "overrides", "failed to load overrides", err)
		}
	}

	var rs Ruleset
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &rs,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &rs, unmarshalConf); err != nil {
		return nil, newError(CodeParse, source, "failed to unmarshal configuration", err)
	}

	if err := rs.resolve(source); err != nil {
		return nil, err
	}
	return &rs, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	default:
		return nil, newError(CodeLoad, path, "unsupported config file extension (want .yaml, .yml or .toml)", nil)
	}
}

// envKey maps ZENLOG_LOG_LINE__FORMAT to log_line.format. Variables without
// a double underscore are not ruleset keys and are skipped.
func envKey(prefix string) func(string) string {
	return func(s string) string {
		s = strings.TrimPrefix(s, prefix)
		if !strings.Contains(s, "__") {
			return ""
		}
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}
}

// resolve checks values that decoding cannot and decodes the log line
// format.
func (r *Ruleset) resolve(source string) error {
	var problems []string
	if strings.TrimSpace(r.Timestamps.Format) == "" {
		problems = append(problems, "timestamps.format must not be empty")
	}
	if r.Formatting.FixedFormatWidth < 0 {
		problems = append(problems, fmt.Sprintf("formatting.fixed_format_width must not be negative, got %d", r.Formatting.FixedFormatWidth))
	}
	if _, ok := ansi.LookupPalette(r.Formatting.Palette); !ok {
		problems = append(problems, fmt.Sprintf("formatting.palette %q is unknown (have %s)", r.Formatting.Palette, strings.Join(ansi.AvailablePaletteNames(), ", ")))
	}
	if _, ok := styles.Registry[strings.ToLower(r.Formatting.Style)]; !ok {
		problems = append(problems, fmt.Sprintf("formatting.style %q is not a chroma style", r.Formatting.Style))
	}
	if len(problems) > 0 {
		e := newError(CodeInvalid, source, strings.Join(problems, "; "), nil)
		e.Details = map[string]any{"problems": problems}
		return e
	}

	f, err := ResolveFormat(r.LogLine.Format)
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			ce.Source = source
			return ce
		}
		return err
	}
	r.LogLine.Template = f
	return nil
}
