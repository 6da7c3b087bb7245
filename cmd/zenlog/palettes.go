package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pkt.systems/zenlog/ansi"
)

var sampleLevels = []string{"debug", "info", "success", "warning", "error", "lethal"}

func newPalettesCmd(flags *rootFlags) *cobra.Command {
	var sample bool
	cmd := &cobra.Command{
		Use:   "palettes",
		Short: "List the built-in palettes",
		Long: `palettes prints the names accepted by formatting.palette and ZENLOG_PALETTE.
With --sample each name is followed by the level names in its colours.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range ansi.AvailablePaletteNames() {
				if !sample {
					_, _ = fmt.Fprintln(out, name)
					continue
				}
				palette, _ := ansi.LookupPalette(name)
				_, _ = fmt.Fprintf(out, "%-16s %s\n", name, paletteSample(*palette, !flags.noColor))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&sample, "sample", "s", false, "show the level colours of each palette")
	return cmd
}

func paletteSample(p ansi.Palette, color bool) string {
	parts := make([]string, 0, len(sampleLevels))
	for _, level := range sampleLevels {
		if color {
			parts = append(parts, p.Level(level)+level+ansi.Reset)
			continue
		}
		parts = append(parts, level)
	}
	return strings.Join(parts, " ")
}
