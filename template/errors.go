package template

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormat is matched by every error Decode and Validate return.
var ErrInvalidFormat = errors.New("invalid log line format")

// Specific causes, each also matching ErrInvalidFormat.
var (
	ErrUnknownKey       = fmt.Errorf("%w: unknown segment key", ErrInvalidFormat)
	ErrUnknownParameter = fmt.Errorf("%w: unknown parameter kind", ErrInvalidFormat)
	ErrInvalidField     = fmt.Errorf("%w: invalid parameter field", ErrInvalidFormat)
	ErrMalformed        = fmt.Errorf("%w: malformed structure", ErrInvalidFormat)
)

// ConfigError locates a problem in a Format. Indexes are -1 when the error
// is not tied to a segment or parameter.
type ConfigError struct {
	Segment   int
	Parameter int
	// Path is the chain of nested parameter indexes below Parameter, for
	// directives inside if actions.
	Path    []int
	Key     string
	Kind    string
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("template")
	if e.Segment >= 0 {
		b.WriteString(": segment ")
		b.WriteString(strconv.Itoa(e.Segment))
		if e.Key != "" {
			b.WriteString(" (" + e.Key + ")")
		}
	}
	if e.Parameter >= 0 {
		b.WriteString(" parameter ")
		b.WriteString(strconv.Itoa(e.Parameter))
		for _, idx := range e.Path {
			b.WriteString(".action[" + strconv.Itoa(idx) + "]")
		}
		if e.Kind != "" {
			b.WriteString(" (" + e.Kind + ")")
		}
	}
	if e.Field != "" {
		b.WriteString(" field " + e.Field)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

// Unwrap implements the errors.Unwrap interface.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// RenderInconsistency reports that the width accounted for a segment differs
// from the visible width of what was emitted.
type RenderInconsistency struct {
	Key      string
	Counted  int
	Measured int
	Emitted  string
}

func (e *RenderInconsistency) Error() string {
	return fmt.Sprintf("template: segment %q accounted %d columns but emitted %d (%q)", e.Key, e.Counted, e.Measured, e.Emitted)
}
