package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"pkt.systems/zenlog"
)

func newDemoCmd(flags *rootFlags) *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Log a tour of zenlog features",
		Long: `demo logs entries that exercise the logger: every level, container values,
fields attached with With, a long message wrapped under the prompt and the
standard library log bridge.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules, err := loadRuleset(flags.configPath, true)
			if err != nil {
				printProblems(cmd.ErrOrStderr(), err)
				return err
			}
			logger, err := zenlog.NewWithOptions(cmd.OutOrStdout(), zenlog.Options{
				Ruleset:     rules,
				NoColor:     flags.noColor,
				Width:       width,
				Diagnostics: diagnostics(cmd.ErrOrStderr()),
			})
			if err != nil {
				return err
			}
			defer logger.Close()
			runDemo(zenlog.ContextWithLogger(cmd.Context(), logger))
			return nil
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 0, "terminal width (default: detect)")
	return cmd
}

func runDemo(ctx context.Context) {
	logger := zenlog.Ctx(ctx)
	logSamples(logger, time.Now())

	requestLogger := logger.With("request_id", "7f3a9c", "route", "/api/orders")
	requestLogger.Info("handling request")
	requestLogger.Warning("slow query took", 1250*time.Millisecond)

	logger.Info("the message area wraps long text under the prompt so continuation lines stay aligned with the first one, whatever the terminal width happens to be")
	logger.WithSeparator(" | ").Info("joined", "with", "a custom separator")

	handleOrder(ctx, []string{"sku-1", "sku-2"})

	std := zenlog.LogLogger(logger)
	std.Println("warning: printed through the standard library logger")
	std.Println("plain lines default to info")
}

func handleOrder(ctx context.Context, items []string) {
	zenlog.BCtx(ctx).Success("order placed by", zenlog.CurrentFn(), map[string]any{"items": items, "total": 42.5})
}
