// Package ansi provides the escape sequences, colour tables and palettes used
// by zenlog's prompt templates, together with the width helpers every layer
// relies on to measure and manipulate text that already carries escapes. The
// exported palette strings can be swapped via SetPalette so callers can apply
// 16- or 256-colour schemes without touching zenlog internals.
package ansi

import "sync"

// Reset is the ANSI escape code that clears all terminal styling; the
// remaining constants expose the SGR sequences the style directive emits.
const (
	Reset     = "\x1b[0m"
	Bold      = "\x1b[1m"
	Dim       = "\x1b[2m"
	Italic    = "\x1b[3m"
	Underline = "\x1b[4m"
	Blink     = "\x1b[5m"
	Reverse   = "\x1b[7m"
	Faint     = "\x1b[90m"
)

// Semantic colours keyed by what zenlog paints with them. Level colours are
// looked up by level name, key colours by template segment key.
var (
	Debug     = "\x1b[34m"
	Info      = "\x1b[37m"
	Success   = "\x1b[32m"
	Warning   = "\x1b[33m"
	Error     = "\x1b[31m"
	Lethal    = "\x1b[35m"
	Timestamp = "\x1b[32m"
	Filename  = "\x1b[35m"
	Wrapfunc  = "\x1b[33m"
	Function  = "\x1b[33m"
	Linenum   = "\x1b[36m"
	Module    = "\x1b[34m"
	Metadata  = Dim
)

var paletteMu sync.RWMutex

// Palette is the input type to SetPalette, see the Palette* variables for
// examples. Empty fields keep the current value.
type Palette struct {
	Debug     string
	Info      string
	Success   string
	Warning   string
	Error     string
	Lethal    string
	Timestamp string
	Filename  string
	Wrapfunc  string
	Function  string
	Linenum   string
	Module    string
	Metadata  string
}

// SetPalette sets the package-level colour variables exposed by this package.
// Loggers can also pin a palette per instance through zenlog.Options.Palette.
//
//	ansi.SetPalette(ansi.PaletteNord)
//	// Reset to default
//	ansi.SetPalette(ansi.PaletteDefault)
func SetPalette(palette Palette) {
	paletteMu.Lock()
	defer paletteMu.Unlock()

	current := snapshotLocked()
	Debug = f(palette.Debug, current.Debug)
	Info = f(palette.Info, current.Info)
	Success = f(palette.Success, current.Success)
	Warning = f(palette.Warning, current.Warning)
	Error = f(palette.Error, current.Error)
	Lethal = f(palette.Lethal, current.Lethal)
	Timestamp = f(palette.Timestamp, current.Timestamp)
	Filename = f(palette.Filename, current.Filename)
	Wrapfunc = f(palette.Wrapfunc, current.Wrapfunc)
	Function = f(palette.Function, current.Function)
	Linenum = f(palette.Linenum, current.Linenum)
	Module = f(palette.Module, current.Module)
	Metadata = f(palette.Metadata, current.Metadata)
}

// Snapshot returns the current palette values.
//
// Typical usage in tests:
//
//	snap := ansi.Snapshot()
//	defer ansi.SetPalette(snap)
//	ansi.SetPalette(ansi.PaletteGruvbox)
func Snapshot() Palette {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return snapshotLocked()
}

func snapshotLocked() Palette {
	return Palette{
		Debug:     Debug,
		Info:      Info,
		Success:   Success,
		Warning:   Warning,
		Error:     Error,
		Lethal:    Lethal,
		Timestamp: Timestamp,
		Filename:  Filename,
		Wrapfunc:  Wrapfunc,
		Function:  Function,
		Linenum:   Linenum,
		Module:    Module,
		Metadata:  Metadata,
	}
}

// Level returns the colour for a level name, or "" when the name is unknown.
func (p Palette) Level(name string) string {
	switch name {
	case "debug":
		return p.Debug
	case "info":
		return p.Info
	case "success":
		return p.Success
	case "warning":
		return p.Warning
	case "error":
		return p.Error
	case "lethal":
		return p.Lethal
	}
	return ""
}

// Key returns the colour assigned to a template segment key. The level key
// resolves through levelName.
func (p Palette) Key(key, levelName string) string {
	switch key {
	case "timestamp":
		return p.Timestamp
	case "filename":
		return p.Filename
	case "wrapfunc":
		return p.Wrapfunc
	case "function":
		return p.Function
	case "linenum":
		return p.Linenum
	case "module":
		return p.Module
	case "level":
		return p.Level(levelName)
	}
	return ""
}

func f(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
