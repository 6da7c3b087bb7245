package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pkt.systems/zenlog/config"
)

func newValidateCmd(flags *rootFlags) *cobra.Command {
	var withEnv bool
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a ruleset file",
		Long: `validate loads a ruleset file on top of the embedded defaults and reports
every problem it finds: unknown keys, values of the wrong type, unknown
palettes or styles and malformed log_line.format entries. The file is read
from the argument or from --config.`,
		Example: `  zenlog validate zenlog.yaml
  zenlog validate --config zenlog.toml --env`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.configPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return errors.New("no ruleset file given")
			}
			rules, err := loadRuleset(path, withEnv)
			if err != nil {
				printProblems(cmd.ErrOrStderr(), err)
				return err
			}
			printSummary(cmd.OutOrStdout(), path, rules)
			return nil
		},
	}
	cmd.Flags().BoolVar(&withEnv, "env", false, "apply ZENLOG_ environment overrides before validating")
	return cmd
}

func printProblems(w io.Writer, err error) {
	var ce *config.Error
	if !errors.As(err, &ce) {
		return
	}
	problems, _ := ce.Details["problems"].([]string)
	for _, p := range problems {
		_, _ = fmt.Fprintf(w, "  - %s\n", p)
	}
}

func printSummary(w io.Writer, path string, rules *config.Ruleset) {
	format := fmt.Sprintf("custom, %d segments", len(rules.LogLine.Template))
	if name, ok := rules.LogLine.Format.(string); ok {
		format = name + " (built-in)"
	}
	_, _ = fmt.Fprintf(w, "ok %s\n", path)
	_, _ = fmt.Fprintf(w, "  palette    %s\n", rules.Formatting.Palette)
	_, _ = fmt.Fprintf(w, "  style      %s\n", rules.Formatting.Style)
	_, _ = fmt.Fprintf(w, "  format     %s\n", format)
	_, _ = fmt.Fprintf(w, "  min level  %s\n", rules.Filtering.MinLevel)
}
