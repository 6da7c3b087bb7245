// Package zenlog is a console logger that renders each entry as a templated,
// width-aware prompt followed by the message, wrapped and indented to the
// columns the prompt leaves free.
//
// # Design overview
//
//   - Prompt templates: the prompt is a list of segments (see the template
//     package). Segments resolve context keys such as timestamp, filename,
//     wrapfunc, linenum and level, and run them through directives that
//     align, truncate, colour and hide them depending on the live terminal
//     width. The engine reports the prompt's visible width.
//   - Message rendering: strings are shown as-is, containers are pretty
//     printed and syntax coloured by the render package, and the result is
//     wrapped by the wrap package without splitting escape sequences.
//   - Outputs: every destination carries its own ruleset (see the config
//     package). Streams get colour when they are terminals, files never do.
//     Unchanged timestamps are blanked per output.
//   - Construction-time setup: rulesets, palettes and prompt formats are
//     resolved once when an output is added or modified, never per call.
//
// # Usage
//
//	logger := zenlog.New(os.Stdout)
//	logger.Info("listening on", ":8080")
//	logger.With("user", "alice").Warning("quota at", 93, "%")
//
// Rulesets come from embedded defaults, a YAML or TOML file and ZENLOG_
// environment variables:
//
//	rules, err := config.Load(config.WithFile("zenlog.yaml"))
//	if err != nil {
//		return err
//	}
//	logger, err := zenlog.NewWithOptions(os.Stderr, zenlog.Options{Ruleset: rules})
//
// LoggerFromEnv does the same from ZENLOG_CONFIG, ZENLOG_LEVEL,
// ZENLOG_OUTPUT and friends and never fails.
//
// # Integration notes
//
//   - Use Logger.LogLevel to derive loggers with different minimum levels.
//   - Use Logger.LogAt when an instrumentation layer knows the call site
//     better than the runtime stack does.
//   - The ansi subpackage exposes palette controls (ansi.SetPalette).
//   - zenlog.LogLogger bridges to the standard library by returning a
//     *log.Logger that feeds through to zenlog.
//   - cmd/zenlog validates configuration files and previews prompts at
//     chosen widths.
package zenlog
