package ansi

// PaletteDefault mirrors the package defaults: plain 16-colour level and key
// colours that read well on both light and dark terminals.
var PaletteDefault = Palette{
	Debug:     "\x1b[34m",
	Info:      "\x1b[37m",
	Success:   "\x1b[32m",
	Warning:   "\x1b[33m",
	Error:     "\x1b[31m",
	Lethal:    "\x1b[35m",
	Timestamp: "\x1b[32m",
	Filename:  "\x1b[35m",
	Wrapfunc:  "\x1b[33m",
	Function:  "\x1b[33m",
	Linenum:   "\x1b[36m",
	Module:    "\x1b[34m",
	Metadata:  Dim,
}

var PaletteOneDark = Palette{
	Debug:     "\x1b[38;5;75m",
	Info:      "\x1b[38;5;252m",
	Success:   "\x1b[38;5;114m",
	Warning:   "\x1b[38;5;180m",
	Error:     "\x1b[38;5;204m",
	Lethal:    "\x1b[38;5;170m",
	Timestamp: "\x1b[38;5;114m",
	Filename:  "\x1b[38;5;170m",
	Wrapfunc:  "\x1b[38;5;180m",
	Function:  "\x1b[38;5;39m",
	Linenum:   "\x1b[38;5;38m",
	Module:    "\x1b[38;5;75m",
	Metadata:  "\x1b[38;5;59m",
}

var PaletteGruvbox = Palette{
	Debug:     "\x1b[38;5;109m",
	Info:      "\x1b[38;5;223m",
	Success:   "\x1b[38;5;142m",
	Warning:   "\x1b[38;5;214m",
	Error:     "\x1b[38;5;167m",
	Lethal:    "\x1b[38;5;175m",
	Timestamp: "\x1b[38;5;142m",
	Filename:  "\x1b[38;5;175m",
	Wrapfunc:  "\x1b[38;5;208m",
	Function:  "\x1b[38;5;214m",
	Linenum:   "\x1b[38;5;108m",
	Module:    "\x1b[38;5;109m",
	Metadata:  "\x1b[38;5;245m",
}

var PaletteNord = Palette{
	Debug:     "\x1b[38;5;110m",
	Info:      "\x1b[38;5;255m",
	Success:   "\x1b[38;5;150m",
	Warning:   "\x1b[38;5;222m",
	Error:     "\x1b[38;5;174m",
	Lethal:    "\x1b[38;5;139m",
	Timestamp: "\x1b[38;5;150m",
	Filename:  "\x1b[38;5;139m",
	Wrapfunc:  "\x1b[38;5;222m",
	Function:  "\x1b[38;5;116m",
	Linenum:   "\x1b[38;5;109m",
	Module:    "\x1b[38;5;110m",
	Metadata:  "\x1b[38;5;60m",
}

var PaletteDracula = Palette{
	Debug:     "\x1b[38;5;117m",
	Info:      "\x1b[38;5;255m",
	Success:   "\x1b[38;5;84m",
	Warning:   "\x1b[38;5;228m",
	Error:     "\x1b[38;5;203m",
	Lethal:    "\x1b[38;5;212m",
	Timestamp: "\x1b[38;5;84m",
	Filename:  "\x1b[38;5;212m",
	Wrapfunc:  "\x1b[38;5;215m",
	Function:  "\x1b[38;5;141m",
	Linenum:   "\x1b[38;5;117m",
	Module:    "\x1b[38;5;141m",
	Metadata:  "\x1b[38;5;61m",
}

var PaletteTokyoNight = Palette{
	Debug:     "\x1b[38;5;111m",
	Info:      "\x1b[38;5;189m",
	Success:   "\x1b[38;5;149m",
	Warning:   "\x1b[38;5;179m",
	Error:     "\x1b[38;5;203m",
	Lethal:    "\x1b[38;5;141m",
	Timestamp: "\x1b[38;5;149m",
	Filename:  "\x1b[38;5;141m",
	Wrapfunc:  "\x1b[38;5;179m",
	Function:  "\x1b[38;5;117m",
	Linenum:   "\x1b[38;5;80m",
	Module:    "\x1b[38;5;111m",
	Metadata:  "\x1b[38;5;60m",
}

var PaletteSynthwave84 = Palette{
	Debug:     "\x1b[38;5;51m",
	Info:      "\x1b[38;5;231m",
	Success:   "\x1b[38;5;49m",
	Warning:   "\x1b[38;5;227m",
	Error:     "\x1b[38;5;197m",
	Lethal:    "\x1b[38;5;201m",
	Timestamp: "\x1b[38;5;49m",
	Filename:  "\x1b[38;5;213m",
	Wrapfunc:  "\x1b[38;5;215m",
	Function:  "\x1b[38;5;207m",
	Linenum:   "\x1b[38;5;45m",
	Module:    "\x1b[38;5;99m",
	Metadata:  "\x1b[38;5;97m",
}

var PaletteSolarizedDark = Palette{
	Debug:     "\x1b[38;5;33m",
	Info:      "\x1b[38;5;250m",
	Success:   "\x1b[38;5;106m",
	Warning:   "\x1b[38;5;136m",
	Error:     "\x1b[38;5;160m",
	Lethal:    "\x1b[38;5;125m",
	Timestamp: "\x1b[38;5;106m",
	Filename:  "\x1b[38;5;125m",
	Wrapfunc:  "\x1b[38;5;166m",
	Function:  "\x1b[38;5;61m",
	Linenum:   "\x1b[38;5;37m",
	Module:    "\x1b[38;5;33m",
	Metadata:  "\x1b[38;5;241m",
}

// PaletteMono keeps every key the terminal's default colour and marks levels
// with weight only.
var PaletteMono = Palette{
	Debug:     Dim,
	Info:      "\x1b[39m",
	Success:   Bold,
	Warning:   Bold,
	Error:     Bold + Underline,
	Lethal:    Reverse,
	Timestamp: "\x1b[39m",
	Filename:  "\x1b[39m",
	Wrapfunc:  "\x1b[39m",
	Function:  "\x1b[39m",
	Linenum:   "\x1b[39m",
	Module:    "\x1b[39m",
	Metadata:  Dim,
}
