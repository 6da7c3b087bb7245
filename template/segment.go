// Package template renders the prompt of a log line from a declarative list
// of segments. A segment is either static text or a context key whose value
// is pushed through an ordered list of parameter directives (align, case,
// filter, affix, truncate, visible, color, style, pad, repeat and if). The
// engine reports the visible width of what it emitted so callers can size the
// message area next to it.
package template

import "slices"

// Format is an ordered list of segments. The engine treats it as read-only.
type Format []Segment

// Segment is either static text (Key empty) or a template segment that
// resolves Key from the Context and applies Parameters in order.
type Segment struct {
	Static     string      `mapstructure:"static"`
	Key        string      `mapstructure:"key"`
	Parameters []Parameter `mapstructure:"parameters"`
}

// Static returns a static segment.
func Static(text string) Segment {
	return Segment{Static: text}
}

// Template returns a template segment for key.
func Template(key string, params ...Parameter) Segment {
	return Segment{Key: key, Parameters: params}
}

// IsStatic reports whether s carries literal text only.
func (s Segment) IsStatic() bool {
	return s.Key == ""
}

// Known segment keys. The logger fills every one of them for each call.
const (
	KeyTimestamp  = "timestamp"
	KeyFilename   = "filename"
	KeyWrapfunc   = "wrapfunc"
	KeyFunction   = "function"
	KeyLinenum    = "linenum"
	KeyLevel      = "level"
	KeyModule     = "module"
	KeyValueCount = "valuecount"
)

var knownKeys = []string{
	KeyTimestamp,
	KeyFilename,
	KeyWrapfunc,
	KeyFunction,
	KeyLinenum,
	KeyLevel,
	KeyModule,
	KeyValueCount,
}

// KnownKeys returns the segment keys a Format may reference.
func KnownKeys() []string {
	return slices.Clone(knownKeys)
}

// IsKnownKey reports whether key names a context slot.
func IsKnownKey(key string) bool {
	return slices.Contains(knownKeys, key)
}

// Context holds the per-call values segments resolve their keys against.
type Context struct {
	Values map[string]string
	// BlankTimestamp marks the timestamp as unchanged since the previous
	// line. The engine then emits cursor movement instead of the text.
	BlankTimestamp bool
}

// Get returns the value for key, or "" when absent.
func (c Context) Get(key string) string {
	return c.Values[key]
}
