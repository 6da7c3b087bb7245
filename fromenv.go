package zenlog

import (
	"io"
	"os"
	"strconv"
	"strings"

	"pkt.systems/zenlog/ansi"
	"pkt.systems/zenlog/config"
)

// LoggerFromEnvOption customizes LoggerFromEnv behavior.
type LoggerFromEnvOption func(*loggerFromEnvConfig)

type loggerFromEnvConfig struct {
	prefix  string
	options Options
	writer  io.Writer
}

// WithEnvPrefix overrides the environment variable prefix used by
// LoggerFromEnv. The ruleset layer reads the same prefix.
func WithEnvPrefix(prefix string) LoggerFromEnvOption {
	return func(cfg *loggerFromEnvConfig) {
		cfg.prefix = prefix
	}
}

// WithEnvOptions seeds LoggerFromEnv with explicit Options values.
func WithEnvOptions(opts Options) LoggerFromEnvOption {
	return func(cfg *loggerFromEnvConfig) {
		cfg.options = opts
	}
}

// WithEnvWriter seeds LoggerFromEnv with a default output writer.
func WithEnvWriter(w io.Writer) LoggerFromEnvOption {
	return func(cfg *loggerFromEnvConfig) {
		cfg.writer = w
	}
}

// LoggerFromEnv builds a logger from environment variables, allowing optional
// seeded options and writers. Environment values override supplied options.
//
// Recognised variables are {prefix}LEVEL, CONFIG (a YAML or TOML ruleset
// file), NO_COLOR, FORCE_COLOR, PALETTE, UTC, WIDTH and OUTPUT. OUTPUT accepts
// stdout, stderr, default, a file path, or stdout+/stderr+/default+<path> to
// add a plain file output next to the stream. Ruleset keys are read from
// {prefix}SECTION__KEY variables, see config.Load.
//
// LoggerFromEnv never fails: problems are reported to the diagnostics logger
// and the affected setting keeps its default.
func LoggerFromEnv(opts ...LoggerFromEnvOption) *ConsoleLogger {
	cfg := loggerFromEnvConfig{prefix: config.EnvPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	resolvedOpts := cfg.options
	baseWriter := cfg.writer
	if baseWriter == nil {
		baseWriter = os.Stdout
	}
	diag := DefaultDiagnostics()
	if resolvedOpts.Diagnostics != nil {
		diag = *resolvedOpts.Diagnostics
	}
	prefix := cfg.prefix

	loadOpts := []config.Option{config.WithEnvPrefix(prefix)}
	configPath, hasConfig := lookupEnv(prefix, "CONFIG")
	if hasConfig && strings.TrimSpace(configPath) != "" {
		loadOpts = append(loadOpts, config.WithFile(strings.TrimSpace(configPath)))
	}
	if rules, err := config.Load(loadOpts...); err != nil {
		diag.Error().Err(err).Str("component", "zenlog").Msg("ruleset from environment rejected, using defaults")
	} else {
		resolvedOpts.Ruleset = rules
	}

	if value, ok := lookupEnv(prefix, "LEVEL"); ok {
		if level, ok := ParseLevel(value); ok {
			resolvedOpts.MinLevel = level
		}
	}
	if value, ok := lookupEnv(prefix, "NO_COLOR"); ok {
		if parsed, ok := parseEnvBool(value); ok {
			resolvedOpts.NoColor = parsed
		}
	}
	if value, ok := lookupEnv(prefix, "FORCE_COLOR"); ok {
		if parsed, ok := parseEnvBool(value); ok {
			resolvedOpts.ForceColor = parsed
		}
	}
	if value, ok := lookupEnv(prefix, "PALETTE"); ok {
		resolvedOpts.Palette = ansi.PaletteByName(value)
	}
	if value, ok := lookupEnv(prefix, "UTC"); ok {
		if parsed, ok := parseEnvBool(value); ok {
			rules := resolvedOpts.Ruleset
			if rules == nil {
				rules = config.Default()
			}
			rules = rules.Clone()
			rules.Timestamps.UseUTC = parsed
			resolvedOpts.Ruleset = rules
		}
	}
	if value, ok := lookupEnv(prefix, "WIDTH"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
			resolvedOpts.Width = n
		}
	}

	stream, filePath := baseWriter, ""
	if value, ok := lookupEnv(prefix, "OUTPUT"); ok {
		stream, filePath = parseEnvOutput(value, baseWriter)
	}

	logger, err := NewWithOptions(stream, resolvedOpts)
	if err != nil {
		diag.Error().Err(err).Str("component", "zenlog").Msg("logger options rejected, using defaults")
		resolvedOpts.Ruleset = nil
		resolvedOpts.Palette = nil
		logger = mustLogger(NewWithOptions(stream, resolvedOpts))
	}
	if filePath != "" {
		if err := logger.Outputs().AddFile(filePath, false, nil); err != nil {
			diag.Error().Err(err).Str("component", "zenlog").Str("output", filePath).Msg("log output open failed")
		}
	}
	return logger
}

func mustLogger(l *ConsoleLogger, err error) *ConsoleLogger {
	if err != nil {
		panic("zenlog: " + err.Error())
	}
	return l
}

func lookupEnv(prefix, key string) (string, bool) {
	if prefix == "" {
		return os.LookupEnv(key)
	}
	return os.LookupEnv(prefix + key)
}

func parseEnvBool(value string) (bool, bool) {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, false
	}
	return parsed, true
}

// parseEnvOutput splits an OUTPUT value into the stream to log to (nil for
// none) and an optional file path.
func parseEnvOutput(value string, base io.Writer) (io.Writer, string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return base, ""
	}
	lowered := strings.ToLower(trimmed)
	switch lowered {
	case "stdout":
		return os.Stdout, ""
	case "stderr":
		return os.Stderr, ""
	case "default":
		return base, ""
	}
	for _, p := range []struct {
		prefix string
		stream io.Writer
	}{
		{"stdout+", os.Stdout},
		{"stderr+", os.Stderr},
		{"default+", base},
	} {
		if strings.HasPrefix(lowered, p.prefix) {
			return p.stream, strings.TrimSpace(trimmed[len(p.prefix):])
		}
	}
	return nil, trimmed
}
