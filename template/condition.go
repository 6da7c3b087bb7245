package template

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type conditionOp uint8

const (
	condConst conditionOp = iota
	condGreater
	condLess
	condAtLeast
)

// Condition decides visibility against the live terminal width. It is one
// of a constant, ">N" (width strictly greater than N), "<N" (width strictly
// less than N) or a bare N (width at least N). The zero Condition is false.
type Condition struct {
	op    conditionOp
	n     int
	value bool
}

// Always returns a constant condition.
func Always(v bool) Condition {
	return Condition{op: condConst, value: v}
}

// WiderThan is true when the width is strictly greater than n.
func WiderThan(n int) Condition {
	return Condition{op: condGreater, n: n}
}

// NarrowerThan is true when the width is strictly less than n.
func NarrowerThan(n int) Condition {
	return Condition{op: condLess, n: n}
}

// AtLeast is true when the width is n or more.
func AtLeast(n int) Condition {
	return Condition{op: condAtLeast, n: n}
}

// ParseCondition parses "true", "false", ">N", "<N" or "N".
func ParseCondition(s string) (Condition, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "true":
		return Always(true), nil
	case "false":
		return Always(false), nil
	case "":
		return Condition{}, fmt.Errorf("empty condition")
	}
	op := condAtLeast
	digits := s
	switch s[0] {
	case '>':
		op, digits = condGreater, strings.TrimSpace(s[1:])
	case '<':
		op, digits = condLess, strings.TrimSpace(s[1:])
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Condition{}, fmt.Errorf("condition %q: width is not an integer", s)
	}
	return Condition{op: op, n: n}, nil
}

// Eval reports whether the condition holds at width.
func (c Condition) Eval(width int) bool {
	switch c.op {
	case condGreater:
		return width > c.n
	case condLess:
		return width < c.n
	case condAtLeast:
		return width >= c.n
	}
	return c.value
}

func (c Condition) String() string {
	switch c.op {
	case condGreater:
		return ">" + strconv.Itoa(c.n)
	case condLess:
		return "<" + strconv.Itoa(c.n)
	case condAtLeast:
		return strconv.Itoa(c.n)
	}
	return strconv.FormatBool(c.value)
}

// Breakpoint is a terminal width range. Min is inclusive and defaults to 0;
// Max is exclusive and defaults to unbounded.
type Breakpoint struct {
	Min *int `mapstructure:"min"`
	Max *int `mapstructure:"max"`
}

// Between returns the breakpoint [lo, hi).
func Between(lo, hi int) Breakpoint {
	return Breakpoint{Min: Int(lo), Max: Int(hi)}
}

// From returns the breakpoint [lo, ∞).
func From(lo int) Breakpoint {
	return Breakpoint{Min: Int(lo)}
}

// Below returns the breakpoint [0, hi).
func Below(hi int) Breakpoint {
	return Breakpoint{Max: Int(hi)}
}

// Matches reports whether width falls inside the breakpoint.
func (b Breakpoint) Matches(width int) bool {
	lo, hi := b.bounds()
	return width >= lo && width < hi
}

func (b Breakpoint) bounds() (int, int) {
	lo, hi := 0, math.MaxInt
	if b.Min != nil {
		lo = *b.Min
	}
	if b.Max != nil {
		hi = *b.Max
	}
	return lo, hi
}

func (b Breakpoint) String() string {
	lo, hi := b.bounds()
	if hi == math.MaxInt {
		return fmt.Sprintf("[%d,∞)", lo)
	}
	return fmt.Sprintf("[%d,%d)", lo, hi)
}

// ColorDynamic selects the palette colour of the segment key, or of the
// level for the level key.
const ColorDynamic = "dynamic"

// ColorValue is a named colour, an RGB triple or ColorDynamic. The zero
// value means no colour.
type ColorValue struct {
	Name string
	RGB  []int
}

// Named returns a ColorValue for a colour name or ColorDynamic.
func Named(name string) ColorValue {
	return ColorValue{Name: name}
}

// RGB returns a ColorValue quantised onto the 256-colour table.
func RGB(r, g, b int) ColorValue {
	return ColorValue{RGB: []int{r, g, b}}
}

// IsZero reports whether no colour is set.
func (c ColorValue) IsZero() bool {
	return c.Name == "" && len(c.RGB) == 0
}

// IsDynamic reports whether the colour comes from the palette.
func (c ColorValue) IsDynamic() bool {
	return strings.EqualFold(c.Name, ColorDynamic)
}

func (c ColorValue) String() string {
	if len(c.RGB) > 0 {
		return fmt.Sprint(c.RGB)
	}
	return c.Name
}
