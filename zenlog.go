package zenlog

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pkt.systems/zenlog/ansi"
	"pkt.systems/zenlog/config"
)

// Base defines the smallest set of convenience methods that library authors can
// require when they want consumers to plug in their own logger. Every method
// takes the values to display; they are joined with the logger's separator.
type Base interface {
	Debug(values ...any)
	Info(values ...any)
	Success(values ...any)
	Warning(values ...any)
	Error(values ...any)
	// Lethal logs at LethalLevel. It does not exit.
	Lethal(values ...any)
}

// Logger is the main interface of zenlog.
type Logger interface {
	Base
	// Log emits values at the supplied level.
	Log(level Level, values ...any)
	// LogAt emits values attributed to site instead of the captured caller.
	LogAt(site CallSite, level Level, values ...any)

	// With returns a logger that renders the supplied key/value pairs below
	// every subsequent message. The receiver remains untouched.
	With(keyvals ...any) Logger

	// WithSeparator returns a logger joining values with sep.
	WithSeparator(sep string) Logger

	// LogLevel returns a logger derived from the receiver whose minimum level is
	// set to level. The receiver itself is not modified.
	LogLevel(Level) Logger

	// LogLevelFromEnv configures the logger's level using the value of key in the
	// environment. Recognised values are the same as ParseLevel. Missing or
	// invalid values leave the logger unchanged.
	LogLevelFromEnv(key string) Logger
}

// Options controls how a ConsoleLogger formats and filters output.
type Options struct {
	// Ruleset is the configuration of the initial output and the default for
	// outputs added later without one. Nil uses config.Default().
	Ruleset *config.Ruleset

	// MinLevel gates every output before its own filtering. Defaults to
	// DebugLevel.
	MinLevel Level

	// NoColor forces colour escape codes off regardless of terminal detection.
	NoColor bool

	// ForceColor bypasses terminal detection and emits colour even when the
	// destination is not a TTY. Useful for tests and forced-colour logs.
	ForceColor bool

	// Palette overrides the ruleset's palette for every output.
	Palette *ansi.Palette

	// Width pins the terminal width instead of querying each output.
	Width int

	// Separator joins the values of one call. Defaults to a single space.
	Separator string

	// Diagnostics receives zenlog's own warnings: directive fallbacks,
	// prompt accounting drift and failed writes. Defaults to a zerolog
	// console writer on stderr.
	Diagnostics *zerolog.Logger

	// StrictAccounting panics on prompt width accounting drift instead of
	// logging it.
	StrictAccounting bool

	// Now replaces time.Now as the entry clock.
	Now func() time.Time

	// OnWriteFailure is called for every failed write to any output.
	OnWriteFailure func(WriteFailure)
}

// New constructs a ConsoleLogger writing to w with the default ruleset.
func New(w io.Writer) *ConsoleLogger {
	l, err := NewWithOptions(w, Options{})
	if err != nil {
		panic("zenlog: default ruleset rejected: " + err.Error())
	}
	return l
}

// NewWithOptions builds a ConsoleLogger with explicit settings. A nil w
// starts without outputs; add them through Outputs. The ruleset's
// default_file_stream, when set, is opened as an additional file output.
func NewWithOptions(w io.Writer, opts Options) (*ConsoleLogger, error) {
	return buildLogger(w, opts)
}

// DefaultDiagnostics is the logger zenlog reports its own problems to when
// Options.Diagnostics is nil.
func DefaultDiagnostics() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

type loggerContextKey struct{}

// ContextWithLogger returns a child context carrying the supplied Logger
// implementation.
func ContextWithLogger(ctx context.Context, logger Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// ContextWithBaseLogger returns a child context carrying the supplied Base
// logger implementation.
func ContextWithBaseLogger(ctx context.Context, logger Base) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// LoggerFromContext extracts a Logger from context if present or returns a
// no-op logger.
func LoggerFromContext(ctx context.Context) Logger {
	if ctx == nil {
		return noopLogger{}
	}
	if logger, ok := ctx.Value(loggerContextKey{}).(Logger); ok && logger != nil {
		return logger
	}
	return noopLogger{}
}

// BaseLoggerFromContext extracts a Base logger from context if present or
// returns a no-op logger.
func BaseLoggerFromContext(ctx context.Context) Base {
	if ctx == nil {
		return noopLogger{}
	}
	if logger, ok := ctx.Value(loggerContextKey{}).(Base); ok && logger != nil {
		return logger
	}
	return noopLogger{}
}

// Ctx is shorthand for LoggerFromContext.
func Ctx(ctx context.Context) Logger {
	return LoggerFromContext(ctx)
}

// BCtx is shorthand for BaseLoggerFromContext.
func BCtx(ctx context.Context) Base {
	return BaseLoggerFromContext(ctx)
}

// LogLogger wraps a Logger into a stdlib *log.Logger. Lines starting with a
// level name ("warning: disk low", "[error] boom") are logged at that level,
// everything else at InfoLevel.
func LogLogger(logger Logger) *log.Logger {
	if logger == nil {
		logger = noopLogger{}
	}
	return log.New(loggerWriter{logger: logger}, "", 0)
}

// LogLoggerWithLevel wraps a Logger into a stdlib *log.Logger that pins every
// emitted entry to level.
func LogLoggerWithLevel(logger Logger, level Level) *log.Logger {
	if logger == nil {
		logger = noopLogger{}
	}
	return log.New(levelPinnedWriter{logger: logger, level: level}, "", 0)
}

// bridgeFramePrefixes are skipped when attributing a bridged line to its
// caller.
var bridgeFramePrefixes = []string{
	"log.",
	"pkt.systems/zenlog.loggerWriter.",
	"pkt.systems/zenlog.levelPinnedWriter.",
}

func classifyLineLevel(line string) (Level, string) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "[") {
		if end := strings.IndexRune(trimmed, ']'); end > 1 {
			candidate := trimmed[1:end]
			if lvl, ok := ParseLevel(candidate); ok && lvl != Disabled {
				msg := strings.TrimSpace(trimmed[end+1:])
				return lvl, msg
			}
		}
	}
	lowered := strings.ToLower(trimmed)
	trimTail := func(prefixLen int) string {
		tail := strings.TrimSpace(trimmed[prefixLen:])
		tail = strings.TrimLeft(tail, ":- ")
		return strings.TrimSpace(tail)
	}
	for _, p := range []struct {
		prefix string
		level  Level
	}{
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"success", SuccessLevel},
		{"warning", WarningLevel},
		{"warn", WarningLevel},
		{"error", ErrorLevel},
		{"lethal", LethalLevel},
		{"fatal", LethalLevel},
	} {
		if strings.HasPrefix(lowered, p.prefix) {
			return p.level, trimTail(len(p.prefix))
		}
	}
	return InfoLevel, trimmed
}

type loggerWriter struct {
	logger Logger
}

func (w loggerWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if w.logger == nil {
		return len(p), nil
	}
	site := callSiteOutside(0, bridgeFramePrefixes...)
	lines := bytes.SplitSeq(p, []byte{'\n'})
	for line := range lines {
		line = bytes.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(string(line))
		if trimmed == "" {
			continue
		}
		level, msg := classifyLineLevel(trimmed)
		w.logger.LogAt(site, level, msg)
	}
	return len(p), nil
}

type levelPinnedWriter struct {
	logger Logger
	level  Level
}

func (w levelPinnedWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if w.logger == nil {
		return len(p), nil
	}
	site := callSiteOutside(0, bridgeFramePrefixes...)
	lines := bytes.SplitSeq(p, []byte{'\n'})
	for line := range lines {
		line = bytes.TrimSpace(bytes.TrimSuffix(line, []byte{'\r'}))
		if len(line) == 0 {
			continue
		}
		w.logger.LogAt(site, w.level, string(line))
	}
	return len(p), nil
}
