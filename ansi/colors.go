package ansi

import (
	"math"
	"strconv"
	"strings"
)

var foregroundCodes = map[string]int{
	"black":          30,
	"red":            31,
	"green":          32,
	"yellow":         33,
	"blue":           34,
	"magenta":        35,
	"cyan":           36,
	"white":          37,
	"gray":           90,
	"grey":           90,
	"bright-black":   90,
	"bright-red":     91,
	"bright-green":   92,
	"bright-yellow":  93,
	"bright-blue":    94,
	"bright-magenta": 95,
	"bright-cyan":    96,
	"bright-white":   97,
}

// Foreground returns the SGR sequence for a named foreground colour.
func Foreground(name string) (string, bool) {
	code, ok := foregroundCodes[normalizeColorName(name)]
	if !ok {
		return "", false
	}
	return sgr(code), true
}

// Background returns the SGR sequence for a named background colour.
func Background(name string) (string, bool) {
	code, ok := foregroundCodes[normalizeColorName(name)]
	if !ok {
		return "", false
	}
	return sgr(code + 10), true
}

// ColorNames lists the accepted colour names in a stable order.
func ColorNames() []string {
	return []string{
		"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
		"gray", "grey", "bright-black", "bright-red", "bright-green",
		"bright-yellow", "bright-blue", "bright-magenta", "bright-cyan",
		"bright-white",
	}
}

// RGB256 quantises a 24-bit colour onto the 6x6x6 cube of the 256-colour
// table.
func RGB256(r, g, b uint8) int {
	return 16 + 36*cubeStep(r) + 6*cubeStep(g) + cubeStep(b)
}

// Foreground256 returns the SGR sequence selecting entry n of the 256-colour
// table as foreground.
func Foreground256(n int) string {
	return "\x1b[38;5;" + strconv.Itoa(n) + "m"
}

// Background256 is Foreground256 for the background.
func Background256(n int) string {
	return "\x1b[48;5;" + strconv.Itoa(n) + "m"
}

func cubeStep(c uint8) int {
	return int(math.Round(float64(c) / 255 * 5))
}

func sgr(code int) string {
	return "\x1b[" + strconv.Itoa(code) + "m"
}

func normalizeColorName(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	if rest, ok := strings.CutPrefix(s, "bright"); ok && rest != "" && rest[0] != '-' {
		s = "bright-" + rest
	}
	return s
}

// ToBackground converts an SGR foreground sequence into the matching
// background sequence. Attribute codes such as bold are kept as they are.
// Sequences that are not SGR are returned unchanged.
func ToBackground(seq string) string {
	body, ok := strings.CutPrefix(seq, "\x1b[")
	if !ok {
		return seq
	}
	body, ok = strings.CutSuffix(body, "m")
	if !ok || body == "" {
		return seq
	}
	params := strings.Split(body, ";")
	for i := 0; i < len(params); i++ {
		code, err := strconv.Atoi(params[i])
		if err != nil {
			return seq
		}
		switch {
		case code == 38 || code == 39:
			params[i] = strconv.Itoa(code + 10)
			if code == 38 && i+1 < len(params) {
				// 38;5;n and 38;2;r;g;b carry their arguments along.
				if params[i+1] == "5" {
					i += 2
				} else if params[i+1] == "2" {
					i += 4
				}
			}
		case code >= 30 && code <= 37, code >= 90 && code <= 97:
			params[i] = strconv.Itoa(code + 10)
		}
	}
	return "\x1b[" + strings.Join(params, ";") + "m"
}
