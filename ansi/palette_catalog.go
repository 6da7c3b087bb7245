package ansi

import (
	"sort"
	"strings"
)

var namedPalettes = map[string]*Palette{
	"default":        &PaletteDefault,
	"one-dark":       &PaletteOneDark,
	"gruvbox":        &PaletteGruvbox,
	"nord":           &PaletteNord,
	"dracula":        &PaletteDracula,
	"tokyo-night":    &PaletteTokyoNight,
	"synthwave-84":   &PaletteSynthwave84,
	"solarized-dark": &PaletteSolarizedDark,
	"mono":           &PaletteMono,
}

var paletteAliases = map[string]string{
	"onedark":       "one-dark",
	"tokyonight":    "tokyo-night",
	"synthwave84":   "synthwave-84",
	"solarizeddark": "solarized-dark",
	"solarized":     "solarized-dark",
	"monochrome":    "mono",
	"plain":         "mono",
}

// LookupPalette is PaletteByName without the fallback: ok reports whether the
// name (or an alias) is known.
func LookupPalette(name string) (*Palette, bool) {
	normalized := normalizePaletteName(name)
	if canonical, ok := paletteAliases[normalized]; ok {
		normalized = canonical
	}
	palette, ok := namedPalettes[normalized]
	return palette, ok && palette != nil
}

// PaletteByName resolves a built-in palette by its canonical name.
// Names are case-insensitive and support compatibility aliases.
func PaletteByName(name string) *Palette {
	normalized := normalizePaletteName(name)
	if normalized == "" {
		return &PaletteDefault
	}
	if canonical, ok := paletteAliases[normalized]; ok {
		normalized = canonical
	}
	if palette, ok := namedPalettes[normalized]; ok && palette != nil {
		return palette
	}
	return &PaletteDefault
}

// AvailablePaletteNames returns canonical built-in palette names in sorted order.
func AvailablePaletteNames() []string {
	names := make([]string, 0, len(namedPalettes))
	for name := range namedPalettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizePaletteName(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")
	if strings.HasPrefix(s, "palette-") {
		s = strings.TrimPrefix(s, "palette-")
	} else if strings.HasPrefix(s, "palette") {
		s = strings.TrimPrefix(s, "palette")
		s = strings.TrimLeft(s, "-")
	}
	return s
}
