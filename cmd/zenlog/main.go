// Command zenlog validates zenlog rulesets, previews prompt formats at
// chosen terminal widths and demonstrates the logger.
package main

import (
	"os"

	"pkt.systems/zenlog"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		zenlog.New(os.Stderr).Error(err)
		os.Exit(1)
	}
}
