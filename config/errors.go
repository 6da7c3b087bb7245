package config

import (
	"errors"
	"fmt"
)

// Code classifies configuration errors for stable matching.
type Code string

const (
	CodeLoad    Code = "CONFIG_LOAD"
	CodeParse   Code = "CONFIG_PARSE"
	CodeInvalid Code = "CONFIG_INVALID"
)

// Error is returned by Load and ResolveFormat. Source names the layer the
// problem came from: "defaults", "overrides", "env" or a file path.
type Error struct {
	Code    Code
	Source  string
	Message string
	Details map[string]any
	Wrapped error
}

func (e *Error) Error() string {
	prefix := fmt.Sprintf("config [%s]", e.Code)
	if e.Source != "" {
		prefix += " " + e.Source
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches another *Error with the same Code, so callers can test
// errors.Is(err, &config.Error{Code: config.CodeInvalid}).
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

func newError(code Code, source, msg string, wrapped error) *Error {
	return &Error{Code: code, Source: source, Message: msg, Wrapped: wrapped}
}
