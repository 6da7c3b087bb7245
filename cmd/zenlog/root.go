package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pkt.systems/zenlog/config"
)

type rootFlags struct {
	configPath string
	noColor    bool
}

// NewRootCmd builds the zenlog command tree. Every call returns fresh
// commands so tests can execute them independently.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "zenlog",
		Short: "Inspect and preview zenlog console log formats",
		Long: `zenlog works with the rulesets that drive the zenlog console logger.
It validates YAML and TOML ruleset files, renders sample entries with a
ruleset at several terminal widths, and lists the built-in palettes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "ruleset file (.yaml, .yml or .toml)")
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable ANSI colour in rendered output")

	cmd.AddCommand(
		newValidateCmd(flags),
		newPreviewCmd(flags),
		newPalettesCmd(flags),
		newDemoCmd(flags),
	)
	return cmd
}

// loadRuleset reads the ruleset named by path, or the defaults when it is
// empty. ZENLOG_ environment overrides apply unless withEnv is false.
func loadRuleset(path string, withEnv bool) (*config.Ruleset, error) {
	var opts []config.Option
	if path != "" {
		opts = append(opts, config.WithFile(path))
	}
	if !withEnv {
		opts = append(opts, config.WithoutEnv())
	}
	return config.Load(opts...)
}

func diagnostics(w io.Writer) *zerolog.Logger {
	diag := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).With().Timestamp().Logger()
	return &diag
}
