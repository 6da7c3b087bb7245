// Package wrap implements greedy word wrapping measured in visible terminal
// columns, so text that already carries ANSI styling wraps where the reader
// sees it wrap.
package wrap

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"pkt.systems/zenlog/ansi"
)

// Wrap breaks text into lines no wider than width visible columns.
//
// Every input line (split on '\n') wraps on its own. Words keep their
// trailing spaces while they sit inside a line and lose them at line end. A
// word wider than width is placed alone on a line rather than broken. Empty
// input lines are dropped unless the whole input is a single empty line, in
// which case Wrap returns one empty line. Widths below one are treated as one.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	paragraphs := strings.Split(text, "\n")
	if len(paragraphs) == 1 && strings.TrimSpace(ansi.Strip(text)) == "" {
		return []string{""}
	}
	lines := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		lines = wrapLine(lines, p, width)
	}
	return lines
}

func wrapLine(dst []string, line string, width int) []string {
	var (
		cur    strings.Builder
		curLen int
	)
	for _, tok := range Tokens(line) {
		tokLen := ansi.VisibleLength(strings.TrimRightFunc(tok, unicode.IsSpace))
		if cur.Len() > 0 && curLen+tokLen > width {
			dst = append(dst, trimRight(cur.String()))
			cur.Reset()
			curLen = 0
		}
		cur.WriteString(tok)
		curLen += ansi.VisibleLength(tok)
	}
	if rest := trimRight(cur.String()); ansi.Strip(rest) != "" {
		dst = append(dst, rest)
	}
	return dst
}

// trimRight drops the whitespace after the last visible character of s and
// keeps the escape sequences that follow it.
func trimRight(s string) string {
	end := 0
	for i := 0; i < len(s); {
		if s[i] == '\x1b' {
			i = ansi.SequenceEnd(s, i)
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			end = i + size
		}
		i += size
	}
	if end == len(s) {
		return s
	}
	var b strings.Builder
	b.WriteString(s[:end])
	for i := end; i < len(s); {
		if s[i] == '\x1b' {
			j := ansi.SequenceEnd(s, i)
			b.WriteString(s[i:j])
			i = j
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return b.String()
}

// Tokens splits a single line into words carrying their trailing whitespace.
// Leading indentation stays attached to the first word. Escape sequences are
// copied whole into the word that follows or contains them.
func Tokens(line string) []string {
	var tokens []string
	start := 0
	inSpace := false
	seenWord := false
	for i := 0; i < len(line); {
		if line[i] == '\x1b' {
			if inSpace && seenWord {
				tokens = append(tokens, line[start:i])
				start = i
			}
			inSpace = false
			seenWord = true
			i = ansi.SequenceEnd(line, i)
			continue
		}
		r, size := utf8.DecodeRuneInString(line[i:])
		switch {
		case unicode.IsSpace(r):
			inSpace = true
		case inSpace && seenWord:
			tokens = append(tokens, line[start:i])
			start = i
			inSpace = false
		default:
			inSpace = false
			seenWord = true
		}
		i += size
	}
	if start < len(line) && seenWord {
		tokens = append(tokens, line[start:])
	}
	return tokens
}
