package zenlog

import (
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// DefaultWidth is the terminal width assumed when neither the output nor
// COLUMNS tell otherwise.
const DefaultWidth = 80

type fdWriter interface {
	Fd() uintptr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth reports the live column count of w. Writers that are not
// terminals fall back to COLUMNS and then DefaultWidth.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(fdWriter); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	return columnsFromEnv()
}

func columnsFromEnv() int {
	if value, ok := os.LookupEnv("COLUMNS"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
			return n
		}
	}
	return DefaultWidth
}
