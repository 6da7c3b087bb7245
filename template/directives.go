package template

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pkt.systems/zenlog/ansi"
)

// Directive defaults used when a field is absent or cannot be applied.
const (
	DefaultAlignWidth    = 10
	DefaultTruncateWidth = 10
	DefaultFillchar      = " "
	DefaultEnding        = "…"
)

func (e *Engine) apply(kind string, p Parameter, key string, sv *segmentValue, st *renderState) {
	switch kind {
	case KindAlign:
		sv.text = e.align(key, *p.Align, sv.text)
	case KindCase:
		sv.text = e.changeCase(key, p.Case.Mode, sv.text)
	case KindFilter:
		sv.text = e.filter(key, *p.Filter, sv.text)
	case KindAffix:
		sv.text = p.Affix.Prefix + sv.text + p.Affix.Suffix
	case KindTruncate:
		sv.text = e.truncate(key, *p.Truncate, sv.text)
	case KindVisible:
		sv.visible = p.Visible.Condition.Eval(st.width)
	case KindColor:
		e.color(key, *p.Color, sv, st)
	case KindStyle:
		sv.style = append(sv.style, e.styleCodes(key, p.Style)...)
	case KindPad:
		sv.text = e.pad(key, *p.Pad, sv.text)
	case KindRepeat:
		sv.text = e.repeat(key, *p.Repeat, sv.text)
	}
}

func (e *Engine) align(key string, a Align, text string) string {
	width := e.widthField(key, KindAlign, a.Width, DefaultAlignWidth)
	fill := e.fillchar(key, KindAlign, a.Fillchar)
	pad := width - ansi.VisibleLength(text)
	if pad <= 0 {
		return text
	}
	switch a.Alignment {
	case AlignRight:
		return strings.Repeat(fill, pad) + text
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(fill, left) + text + strings.Repeat(fill, pad-left)
	case AlignLeft, "":
	default:
		e.warn(key, KindAlign, "alignment", AlignLeft, "unknown alignment %q", a.Alignment)
	}
	return text + strings.Repeat(fill, pad)
}

func (e *Engine) changeCase(key, mode, text string) string {
	switch mode {
	case CaseUpper:
		c := cases.Upper(language.Und)
		return ansi.MapVisible(text, c.String)
	case CaseLower:
		c := cases.Lower(language.Und)
		return ansi.MapVisible(text, c.String)
	case CaseTitle:
		c := cases.Title(language.Und)
		return ansi.MapVisible(text, c.String)
	case CaseCapitalize:
		lower := cases.Lower(language.Und)
		first := true
		return ansi.MapVisible(text, func(run string) string {
			run = lower.String(run)
			if !first || run == "" {
				return run
			}
			first = false
			r, size := utf8.DecodeRuneInString(run)
			return string(unicode.ToUpper(r)) + run[size:]
		})
	case CaseSwap:
		return ansi.MapVisible(text, func(run string) string {
			return strings.Map(swapRune, run)
		})
	}
	e.warn(key, KindCase, "mode", "value unchanged", "unknown case mode %q", mode)
	return text
}

func swapRune(r rune) rune {
	switch {
	case unicode.IsUpper(r):
		return unicode.ToLower(r)
	case unicode.IsLower(r):
		return unicode.ToUpper(r)
	}
	return r
}

func (e *Engine) filter(key string, f Filter, text string) string {
	haystack := ansi.Strip(text)
	if !f.CaseSensitive {
		haystack = strings.ToLower(haystack)
	}
	found := slices.ContainsFunc(f.Items, func(item string) bool {
		if !f.CaseSensitive {
			item = strings.ToLower(item)
		}
		return strings.Contains(haystack, item)
	})
	switch f.Mode {
	case FilterInclude:
		if !found {
			return f.Replace
		}
		return text
	case FilterExclude, "":
	default:
		e.warn(key, KindFilter, "mode", FilterExclude, "unknown filter mode %q", f.Mode)
	}
	if found {
		return f.Replace
	}
	return text
}

func (e *Engine) truncate(key string, t Truncate, text string) string {
	width := e.widthField(key, KindTruncate, t.Width, DefaultTruncateWidth)
	ending := DefaultEnding
	if t.Ending != nil {
		ending = *t.Ending
	}
	total := ansi.VisibleLength(text)
	if total <= width {
		return text
	}
	endWidth := ansi.VisibleLength(ending)
	switch t.Position {
	case TruncateStart:
		keep := max(width-endWidth, 0)
		return ending + ansi.Cut(text, total-keep, total)
	case TruncateCenter:
		keep := max(width-2*endWidth, 0)
		removed := total - keep
		left := removed / 2
		return ending + ansi.Cut(text, left, total-(removed-left)) + ending
	case TruncateEnd, "":
	default:
		e.warn(key, KindTruncate, "position", TruncateEnd, "unknown truncate position %q", t.Position)
	}
	keep := max(width-endWidth, 0)
	return ansi.Cut(text, 0, keep) + ending
}

func (e *Engine) color(key string, c Color, sv *segmentValue, st *renderState) {
	if !c.Foreground.IsZero() {
		if seq, ok := e.resolveColor(key, c.Foreground, "foreground", st); ok {
			sv.fg = seq
		}
	}
	if !c.Background.IsZero() {
		if seq, ok := e.resolveColor(key, c.Background, "background", st); ok {
			sv.bg = ansi.ToBackground(seq)
		}
	}
}

// resolveColor returns the foreground sequence for c; callers convert it for
// the background side.
func (e *Engine) resolveColor(key string, c ColorValue, field string, st *renderState) (string, bool) {
	switch {
	case len(c.RGB) > 0:
		if len(c.RGB) != 3 || slices.ContainsFunc(c.RGB, func(v int) bool { return v < 0 || v > 255 }) {
			e.warn(key, KindColor, field, "no colour", "rgb colour must be three components in 0..255, got %v", c.RGB)
			return "", false
		}
		return ansi.Foreground256(ansi.RGB256(uint8(c.RGB[0]), uint8(c.RGB[1]), uint8(c.RGB[2]))), true
	case c.IsDynamic():
		seq := st.palette.Key(key, st.level)
		return seq, seq != ""
	}
	seq, ok := ansi.Foreground(c.Name)
	if !ok {
		e.warn(key, KindColor, field, "no colour", "unknown colour %q", c.Name)
	}
	return seq, ok
}

func (e *Engine) styleCodes(key string, style Style) []string {
	codes := make([]string, 0, len(style))
	for _, name := range style {
		seq, ok := styleSequence(name)
		if !ok {
			e.warn(key, KindStyle, name, "attribute skipped", "unknown style attribute %q", name)
			continue
		}
		codes = append(codes, seq)
	}
	return codes
}

func styleSequence(name string) (string, bool) {
	switch strings.ToLower(name) {
	case StyleBold:
		return ansi.Bold, true
	case StyleItalic:
		return ansi.Italic, true
	case StyleUnderline:
		return ansi.Underline, true
	case StyleBlink:
		return ansi.Blink, true
	case StyleReverse:
		return ansi.Reverse, true
	}
	return "", false
}

func (e *Engine) pad(key string, p Pad, text string) string {
	fill := e.fillchar(key, KindPad, p.Fillchar)
	left, right := p.Left, p.Right
	if left < 0 {
		e.warn(key, KindPad, "left", "0", "negative padding %d", left)
		left = 0
	}
	if right < 0 {
		e.warn(key, KindPad, "right", "0", "negative padding %d", right)
		right = 0
	}
	return strings.Repeat(fill, left) + text + strings.Repeat(fill, right)
}

func (e *Engine) repeat(key string, r Repeat, text string) string {
	count := 1
	if r.Count != nil {
		count = *r.Count
	}
	if count < 0 || count > MaxRepeat {
		e.warn(key, KindRepeat, "count", "1", "repeat count %d outside 0..%d", count, MaxRepeat)
		count = 1
	}
	return strings.Repeat(text, count)
}

// widthField resolves an optional width field, falling back to def when it is
// missing or negative.
func (e *Engine) widthField(key, kind string, w *int, def int) int {
	if w == nil {
		return def
	}
	if *w < 0 {
		e.warn(key, kind, "width", "default width", "negative width %d", *w)
		return def
	}
	return *w
}

func (e *Engine) fillchar(key, kind string, f *string) string {
	if f == nil {
		return DefaultFillchar
	}
	if ansi.HasEscape(*f) || ansi.VisibleLength(*f) != 1 {
		e.warn(key, kind, "fillchar", "space", "fillchar %q must be a single column", *f)
		return DefaultFillchar
	}
	return *f
}
