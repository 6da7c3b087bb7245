package zenlog

import (
	"fmt"
	"io"
	"time"

	"pkt.systems/zenlog/config"
)

// ConsoleLogger renders every call as a templated prompt followed by the
// wrapped message and writes it to each registered output. Loggers derived
// through With, WithSeparator and LogLevel share the outputs of their parent.
type ConsoleLogger struct {
	outputs  *Outputs
	now      func() time.Time
	minLevel Level
	sep      string
	fields   []field
}

var _ Logger = (*ConsoleLogger)(nil)

func buildLogger(w io.Writer, opts Options) (*ConsoleLogger, error) {
	rules := opts.Ruleset
	if rules == nil {
		rules = config.Default()
	}
	rules = rules.Clone()

	diag := DefaultDiagnostics()
	if opts.Diagnostics != nil {
		diag = *opts.Diagnostics
	}
	settings := outputSettings{
		noColor:    opts.NoColor,
		forceColor: opts.ForceColor,
		palette:    opts.Palette,
		width:      opts.Width,
		strict:     opts.StrictAccounting,
		diag:       diag,
		onFailure:  opts.OnWriteFailure,
	}

	// Validate the ruleset up front so a logger without outputs still
	// rejects bad configuration.
	if _, err := compileOutput(rules.Clone(), w, false, settings); err != nil {
		return nil, err
	}

	outputs := newOutputs(rules, settings)
	if w != nil {
		if err := outputs.AddStream(w, nil); err != nil {
			return nil, err
		}
	}
	if path := rules.Output.DefaultFileStream; path != "" {
		if err := outputs.AddFile(path, false, nil); err != nil {
			return nil, fmt.Errorf("zenlog: default file stream: %w", err)
		}
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	sep := opts.Separator
	if sep == "" {
		sep = " "
	}
	return &ConsoleLogger{
		outputs:  outputs,
		now:      now,
		minLevel: opts.MinLevel,
		sep:      sep,
	}, nil
}

// Outputs returns the destinations shared by this logger and every logger
// derived from it.
func (l *ConsoleLogger) Outputs() *Outputs {
	return l.outputs
}

// Close closes the file outputs the logger opened. Caller-supplied streams
// stay registered and open, so logging after Close keeps working for them.
func (l *ConsoleLogger) Close() error {
	return l.outputs.Close()
}

func (l *ConsoleLogger) Debug(values ...any)   { l.logAt(Caller(1), DebugLevel, values) }
func (l *ConsoleLogger) Info(values ...any)    { l.logAt(Caller(1), InfoLevel, values) }
func (l *ConsoleLogger) Success(values ...any) { l.logAt(Caller(1), SuccessLevel, values) }
func (l *ConsoleLogger) Warning(values ...any) { l.logAt(Caller(1), WarningLevel, values) }
func (l *ConsoleLogger) Error(values ...any)   { l.logAt(Caller(1), ErrorLevel, values) }
func (l *ConsoleLogger) Lethal(values ...any)  { l.logAt(Caller(1), LethalLevel, values) }

func (l *ConsoleLogger) Log(level Level, values ...any) {
	l.logAt(Caller(1), level, values)
}

func (l *ConsoleLogger) LogAt(site CallSite, level Level, values ...any) {
	l.logAt(site, level, values)
}

func (l *ConsoleLogger) logAt(site CallSite, level Level, values []any) {
	if level < l.minLevel || level >= Disabled || level < DebugLevel {
		return
	}
	l.outputs.emit(&entry{
		site:   site,
		level:  level,
		values: values,
		fields: l.fields,
		sep:    l.sep,
		time:   l.now(),
	})
}

func (l *ConsoleLogger) clone() *ConsoleLogger {
	c := *l
	c.fields = cloneFields(l.fields)
	return &c
}

func (l *ConsoleLogger) With(keyvals ...any) Logger {
	additional := collectFields(keyvals)
	if len(additional) == 0 {
		return l
	}
	c := l.clone()
	c.fields = append(c.fields, additional...)
	return c
}

func (l *ConsoleLogger) WithSeparator(sep string) Logger {
	c := l.clone()
	c.sep = sep
	return c
}

func (l *ConsoleLogger) LogLevel(level Level) Logger {
	c := l.clone()
	c.minLevel = level
	return c
}

func (l *ConsoleLogger) LogLevelFromEnv(key string) Logger {
	if level, ok := LevelFromEnv(key); ok {
		return l.LogLevel(level)
	}
	return l
}
