package zenlog

import (
	"os"
	"strconv"
	"strings"
)

// Level defines log levels, ordered by severity.
type Level int8

const (
	// DebugLevel defines debug log level.
	DebugLevel Level = iota
	// InfoLevel defines info log level.
	InfoLevel
	// SuccessLevel marks completed work worth calling out.
	SuccessLevel
	// WarningLevel defines warning log level.
	WarningLevel
	// ErrorLevel defines error log level.
	ErrorLevel
	// LethalLevel marks failures the program does not survive. Logging at
	// LethalLevel does not exit.
	LethalLevel
	// Disabled disables the logger.
	Disabled
)

// ParseLevel converts a textual level into a Level value. It accepts the
// level names, the aliases "warn", "fatal", "critical", "off" and
// "disabled", and the numbers 0 through 5 (case insensitive).
func ParseLevel(value string) (Level, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "debug":
		return DebugLevel, true
	case "info":
		return InfoLevel, true
	case "success":
		return SuccessLevel, true
	case "warn", "warning":
		return WarningLevel, true
	case "error":
		return ErrorLevel, true
	case "lethal", "fatal", "critical":
		return LethalLevel, true
	case "disabled", "disable", "off":
		return Disabled, true
	}
	if n, err := strconv.Atoi(v); err == nil && n >= int(DebugLevel) && n <= int(LethalLevel) {
		return Level(n), true
	}
	return InfoLevel, false
}

// LevelString returns the canonical string representation of a Level. The
// names double as the level key of prompt templates and the palette lookup.
func LevelString(level Level) string {
	switch level {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case SuccessLevel:
		return "success"
	case WarningLevel:
		return "warning"
	case ErrorLevel:
		return "error"
	case LethalLevel:
		return "lethal"
	case Disabled:
		return "disabled"
	default:
		return "info"
	}
}

func (l Level) String() string {
	return LevelString(l)
}

// LevelFromEnv looks up key in the environment and parses it into a Level.
func LevelFromEnv(key string) (Level, bool) {
	if key == "" {
		return InfoLevel, false
	}
	value, ok := os.LookupEnv(key)
	if !ok {
		return InfoLevel, false
	}
	return ParseLevel(value)
}
