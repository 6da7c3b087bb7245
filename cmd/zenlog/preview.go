package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pkt.systems/zenlog"
	"pkt.systems/zenlog/config"
)

type previewOptions struct {
	widths  []int
	level   string
	message string
	format  string
}

func newPreviewCmd(flags *rootFlags) *cobra.Command {
	opts := &previewOptions{}
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render sample entries with a ruleset",
		Long: `preview renders one entry per level with the active ruleset at each of the
requested terminal widths, so width breakpoints in a prompt format can be
checked without resizing a terminal.`,
		Example: `  zenlog preview --width 120,80,50
  zenlog preview --config zenlog.yaml --format minimal --no-color`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules, err := loadRuleset(flags.configPath, true)
			if err != nil {
				printProblems(cmd.ErrOrStderr(), err)
				return err
			}
			if opts.format != "" {
				rules.LogLine.Format = opts.format
			}
			minLevel := zenlog.DebugLevel
			if opts.level != "" {
				level, ok := zenlog.ParseLevel(opts.level)
				if !ok {
					return fmt.Errorf("unknown level %q", opts.level)
				}
				minLevel = level
			}
			for _, width := range opts.widths {
				if width < 1 {
					return fmt.Errorf("width must be positive, got %d", width)
				}
				if err := preview(cmd.OutOrStdout(), cmd.ErrOrStderr(), rules, width, minLevel, !flags.noColor, opts.message); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntSliceVarP(&opts.widths, "width", "w", []int{120, 80, 60}, "terminal widths to render at")
	cmd.Flags().StringVarP(&opts.level, "level", "l", "", "minimum level to render")
	cmd.Flags().StringVarP(&opts.message, "message", "m", "", "message to log instead of the samples")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "built-in format to use instead of the ruleset's")
	return cmd
}

func preview(out, errOut io.Writer, rules *config.Ruleset, width int, minLevel zenlog.Level, color bool, message string) error {
	_, _ = fmt.Fprintf(out, "%s width %d %s\n", strings.Repeat("-", 3), width, strings.Repeat("-", max(width-12, 3)))
	logger, err := zenlog.NewWithOptions(out, zenlog.Options{
		Ruleset:     rules,
		MinLevel:    minLevel,
		NoColor:     !color,
		ForceColor:  color,
		Width:       width,
		Diagnostics: diagnostics(errOut),
	})
	if err != nil {
		printProblems(errOut, err)
		return err
	}
	defer logger.Close()

	if message != "" {
		for level := zenlog.DebugLevel; level < zenlog.Disabled; level++ {
			logger.Log(level, message)
		}
		return nil
	}
	logSamples(logger, time.Now())
	return nil
}

// logSamples writes one representative entry per level.
func logSamples(logger zenlog.Logger, started time.Time) {
	logger.Debug("cache warmed with", 1024, "entries")
	logger.Info("listening on", ":8080", "since", started.Format(time.Kitchen))
	logger.Success("migration 42 applied")
	logger.Warning("disk usage at", 91, "% on /var, consider rotating the archive volume before the weekend batch runs")
	logger.Error("upstream failed", map[string]any{"service": "billing", "status": 502, "retry": []int{1, 2, 4}})
	logger.Lethal("configuration could not be recovered")
}
