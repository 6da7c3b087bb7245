package template

// Parameter is one directive. Exactly one field is set; the field name is
// the directive kind.
type Parameter struct {
	Align    *Align    `mapstructure:"align"`
	Case     *Case     `mapstructure:"case"`
	Filter   *Filter   `mapstructure:"filter"`
	Affix    *Affix    `mapstructure:"affix"`
	Truncate *Truncate `mapstructure:"truncate"`
	Visible  *Visible  `mapstructure:"visible"`
	Color    *Color    `mapstructure:"color"`
	Style    Style     `mapstructure:"style"`
	Pad      *Pad      `mapstructure:"pad"`
	Repeat   *Repeat   `mapstructure:"repeat"`
	If       *If       `mapstructure:"if"`
}

// Directive kinds, as they appear in configuration.
const (
	KindAlign    = "align"
	KindCase     = "case"
	KindFilter   = "filter"
	KindAffix    = "affix"
	KindTruncate = "truncate"
	KindVisible  = "visible"
	KindColor    = "color"
	KindStyle    = "style"
	KindPad      = "pad"
	KindRepeat   = "repeat"
	KindIf       = "if"
)

// Kinds lists every directive kind set on p, in declaration order. A valid
// parameter has exactly one.
func (p Parameter) Kinds() []string {
	var kinds []string
	if p.Align != nil {
		kinds = append(kinds, KindAlign)
	}
	if p.Case != nil {
		kinds = append(kinds, KindCase)
	}
	if p.Filter != nil {
		kinds = append(kinds, KindFilter)
	}
	if p.Affix != nil {
		kinds = append(kinds, KindAffix)
	}
	if p.Truncate != nil {
		kinds = append(kinds, KindTruncate)
	}
	if p.Visible != nil {
		kinds = append(kinds, KindVisible)
	}
	if p.Color != nil {
		kinds = append(kinds, KindColor)
	}
	if p.Style != nil {
		kinds = append(kinds, KindStyle)
	}
	if p.Pad != nil {
		kinds = append(kinds, KindPad)
	}
	if p.Repeat != nil {
		kinds = append(kinds, KindRepeat)
	}
	if p.If != nil {
		kinds = append(kinds, KindIf)
	}
	return kinds
}

// Kind returns the directive kind, or "" when p sets none or several.
func (p Parameter) Kind() string {
	kinds := p.Kinds()
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

// Alignments.
const (
	AlignLeft   = "left"
	AlignRight  = "right"
	AlignCenter = "center"
)

// Align pads the value to Width visible columns with Fillchar. Values that
// are already wider are left alone. Width defaults to 10, Fillchar to a
// space and Alignment to left.
type Align struct {
	Alignment string  `mapstructure:"alignment"`
	Width     *int    `mapstructure:"width"`
	Fillchar  *string `mapstructure:"fillchar"`
}

// Case modes.
const (
	CaseUpper      = "upper"
	CaseLower      = "lower"
	CaseCapitalize = "capitalize"
	CaseSwap       = "swap"
	CaseTitle      = "title"
)

// Case changes the letter case of the visible text.
type Case struct {
	Mode string `mapstructure:"mode"`
}

// Filter modes.
const (
	FilterExclude = "exclude"
	FilterInclude = "include"
)

// Filter replaces the whole value with Replace when it contains one of
// Items (exclude) or none of them (include). Matching ignores case unless
// CaseSensitive is set. Mode defaults to exclude.
type Filter struct {
	Mode          string   `mapstructure:"mode"`
	Items         []string `mapstructure:"items"`
	Replace       string   `mapstructure:"replace"`
	CaseSensitive bool     `mapstructure:"case_sensitive"`
}

// Affix wraps the value in Prefix and Suffix.
type Affix struct {
	Prefix string `mapstructure:"prefix"`
	Suffix string `mapstructure:"suffix"`
}

// Truncate positions.
const (
	TruncateEnd    = "end"
	TruncateStart  = "start"
	TruncateCenter = "center"
)

// Truncate shortens values wider than Width visible columns and marks the
// cut with Ending. Width defaults to 10, Ending to "…" and Position to end.
type Truncate struct {
	Width    *int    `mapstructure:"width"`
	Ending   *string `mapstructure:"ending"`
	Position string  `mapstructure:"position"`
}

// Visible shows or hides the segment depending on the live terminal width.
type Visible struct {
	Condition Condition `mapstructure:"condition"`
}

// Color sets the foreground and background of the segment. Later color
// directives replace earlier ones side by side.
type Color struct {
	Foreground ColorValue `mapstructure:"foreground"`
	Background ColorValue `mapstructure:"background"`
}

// Style attributes.
const (
	StyleBold      = "bold"
	StyleItalic    = "italic"
	StyleUnderline = "underline"
	StyleBlink     = "blink"
	StyleReverse   = "reverse"
)

var styleOrder = []string{StyleBold, StyleItalic, StyleUnderline, StyleBlink, StyleReverse}

// Style lists text attributes in the order their codes are emitted.
// Successive style directives accumulate.
type Style []string

// Pad adds Left and Right copies of Fillchar around the value.
type Pad struct {
	Left     int     `mapstructure:"left"`
	Right    int     `mapstructure:"right"`
	Fillchar *string `mapstructure:"fillchar"`
}

// MaxRepeat bounds Repeat.Count.
const MaxRepeat = 256

// Repeat repeats the value Count times. Count defaults to 1.
type Repeat struct {
	Count *int `mapstructure:"count"`
}

// If splices Action into the remaining directives of the segment when the
// live terminal width falls inside Condition.
type If struct {
	Condition Breakpoint  `mapstructure:"condition"`
	Action    []Parameter `mapstructure:"action"`
}

// Int returns a pointer to v, for the optional integer fields.
func Int(v int) *int {
	return &v
}

// String returns a pointer to v, for the optional string fields.
func String(v string) *string {
	return &v
}
