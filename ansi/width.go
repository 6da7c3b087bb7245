package ansi

import (
	"strconv"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// VisibleLength returns the number of terminal cells s occupies once every
// escape sequence is ignored. Wide runes count two cells.
func VisibleLength(s string) int {
	if s == "" {
		return 0
	}
	return xansi.StringWidth(s)
}

// Strip removes every escape sequence from s.
func Strip(s string) string {
	if strings.IndexByte(s, '\x1b') < 0 {
		return s
	}
	return xansi.Strip(s)
}

// Cut returns the cells [left, right) of s, keeping escape sequences intact.
func Cut(s string, left, right int) string {
	if right <= left {
		return ""
	}
	return xansi.Cut(s, left, right)
}

// CursorForward returns the escape sequence that moves the cursor n columns
// to the right without painting.
func CursorForward(n int) string {
	if n <= 0 {
		return ""
	}
	return "\x1b[" + strconv.Itoa(n) + "C"
}

// maxCursorForward bounds the padding ExpandCursorForward emits for a single
// sequence.
const maxCursorForward = 4096

// ExpandCursorForward replaces every cursor-forward sequence (ESC [ n C) with
// n spaces so the text survives being written somewhere that is not a
// terminal.
func ExpandCursorForward(s string) string {
	if strings.IndexByte(s, '\x1b') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	sz := len(s)
	for i := 0; i < sz; i++ {
		if s[i] != '\x1b' || i+1 >= sz || s[i+1] != '[' {
			b.WriteByte(s[i])
			continue
		}
		j := i + 2
		for j < sz && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j >= sz || s[j] != 'C' {
			b.WriteByte(s[i])
			continue
		}
		n := 1
		if j > i+2 {
			v, err := strconv.Atoi(s[i+2 : j])
			if err != nil || v > maxCursorForward {
				v = maxCursorForward
			}
			n = v
		}
		b.WriteString(strings.Repeat(" ", n))
		i = j
	}
	return b.String()
}

// MapVisible applies fn to every run of printable text in s and copies escape
// sequences through untouched.
func MapVisible(s string, fn func(string) string) string {
	if strings.IndexByte(s, '\x1b') < 0 {
		return fn(s)
	}
	var b strings.Builder
	b.Grow(len(s))
	start := 0
	for i := 0; i < len(s); {
		if s[i] != '\x1b' {
			i++
			continue
		}
		if i > start {
			b.WriteString(fn(s[start:i]))
		}
		end := SequenceEnd(s, i)
		b.WriteString(s[i:end])
		i = end
		start = end
	}
	if start < len(s) {
		b.WriteString(fn(s[start:]))
	}
	return b.String()
}

// SequenceEnd returns the index just past the escape sequence starting at
// s[i], which must be ESC. Unterminated sequences run to the end of s.
func SequenceEnd(s string, i int) int {
	sz := len(s)
	if i+1 >= sz {
		return sz
	}
	switch s[i+1] {
	case '[':
		for j := i + 2; j < sz; j++ {
			if s[j] >= 0x40 && s[j] <= 0x7e {
				return j + 1
			}
		}
		return sz
	case ']':
		for j := i + 2; j < sz; j++ {
			if s[j] == '\a' {
				return j + 1
			}
			if s[j] == '\x1b' && j+1 < sz && s[j+1] == '\\' {
				return j + 2
			}
		}
		return sz
	}
	return i + 2
}

// HasEscape reports whether s contains an escape sequence.
func HasEscape(s string) bool {
	return strings.IndexByte(s, '\x1b') >= 0
}
