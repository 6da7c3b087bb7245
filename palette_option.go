package zenlog

import (
	"fmt"

	"pkt.systems/zenlog/ansi"
	"pkt.systems/zenlog/config"
)

// resolvePaletteOption picks the palette an output paints with: the logger
// override when set, otherwise the ruleset's named palette.
func resolvePaletteOption(override *ansi.Palette, name string) (*ansi.Palette, error) {
	if override != nil {
		return override, nil
	}
	if p, ok := ansi.LookupPalette(name); ok {
		return p, nil
	}
	return nil, &config.Error{
		Code:    config.CodeInvalid,
		Message: fmt.Sprintf("formatting.palette %q is unknown", name),
	}
}
