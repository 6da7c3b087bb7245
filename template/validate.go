package template

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"pkt.systems/zenlog/ansi"
)

// Validate checks a Format before it is used: segment keys must be known,
// every parameter must set exactly one directive, and enum, numeric and
// colour fields must hold values the engine can apply. All problems are
// returned joined; each is a *ConfigError.
func Validate(f Format) error {
	if len(f) == 0 {
		return &ConfigError{Segment: -1, Parameter: -1, Message: "format has no segments", Err: ErrMalformed}
	}
	var errs []error
	for i, seg := range f {
		if seg.IsStatic() {
			if len(seg.Parameters) > 0 {
				errs = append(errs, &ConfigError{Segment: i, Parameter: -1, Message: "static segments take no parameters", Err: ErrMalformed})
			}
			continue
		}
		if !IsKnownKey(seg.Key) {
			errs = append(errs, &ConfigError{
				Segment: i, Parameter: -1, Key: seg.Key,
				Message: fmt.Sprintf("expected one of %s", strings.Join(knownKeys, ", ")),
				Err:     ErrUnknownKey,
			})
		}
		if seg.Static != "" {
			errs = append(errs, &ConfigError{Segment: i, Parameter: -1, Key: seg.Key, Message: "segment sets both static and key", Err: ErrMalformed})
		}
		for j, p := range seg.Parameters {
			v := paramValidator{seg: i, param: j, key: seg.Key}
			errs = append(errs, v.check(p, 0)...)
		}
	}
	return errors.Join(errs...)
}

// maxIfDepth bounds the nesting of if actions.
const maxIfDepth = 8

type paramValidator struct {
	seg   int
	param int
	path  []int
	key   string
}

func (v paramValidator) fail(kind, field, format string, args ...any) error {
	return &ConfigError{
		Segment:   v.seg,
		Parameter: v.param,
		Path:      v.path,
		Key:       v.key,
		Kind:      kind,
		Field:     field,
		Message:   fmt.Sprintf(format, args...),
		Err:       ErrInvalidField,
	}
}

func (v paramValidator) check(p Parameter, depth int) []error {
	kinds := p.Kinds()
	switch len(kinds) {
	case 0:
		return []error{&ConfigError{Segment: v.seg, Parameter: v.param, Path: v.path, Key: v.key, Message: "parameter sets no directive", Err: ErrUnknownParameter}}
	case 1:
	default:
		return []error{&ConfigError{Segment: v.seg, Parameter: v.param, Path: v.path, Key: v.key, Message: "parameter sets several directives: " + strings.Join(kinds, ", "), Err: ErrMalformed}}
	}
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	switch kinds[0] {
	case KindAlign:
		a := p.Align
		add(v.enum(KindAlign, "alignment", a.Alignment, true, AlignLeft, AlignRight, AlignCenter))
		add(v.nonNegative(KindAlign, "width", a.Width))
		add(v.fillchar(KindAlign, a.Fillchar))
	case KindCase:
		add(v.enum(KindCase, "mode", p.Case.Mode, false, CaseUpper, CaseLower, CaseCapitalize, CaseSwap, CaseTitle))
	case KindFilter:
		add(v.enum(KindFilter, "mode", p.Filter.Mode, true, FilterExclude, FilterInclude))
		if len(p.Filter.Items) == 0 {
			add(v.fail(KindFilter, "items", "at least one item is required"))
		}
	case KindTruncate:
		t := p.Truncate
		add(v.nonNegative(KindTruncate, "width", t.Width))
		add(v.enum(KindTruncate, "position", t.Position, true, TruncateEnd, TruncateStart, TruncateCenter))
		if t.Ending != nil && ansi.HasEscape(*t.Ending) {
			add(v.fail(KindTruncate, "ending", "ending must not contain escape sequences"))
		}
	case KindColor:
		if p.Color.Foreground.IsZero() && p.Color.Background.IsZero() {
			add(v.fail(KindColor, "", "set foreground, background or both"))
		}
		add(v.color("foreground", p.Color.Foreground))
		add(v.color("background", p.Color.Background))
	case KindStyle:
		for _, name := range p.Style {
			if _, ok := styleSequence(name); !ok {
				add(v.fail(KindStyle, name, "expected one of %s", strings.Join(styleOrder, ", ")))
			}
		}
	case KindPad:
		if p.Pad.Left < 0 {
			add(v.fail(KindPad, "left", "must not be negative"))
		}
		if p.Pad.Right < 0 {
			add(v.fail(KindPad, "right", "must not be negative"))
		}
		add(v.fillchar(KindPad, p.Pad.Fillchar))
	case KindRepeat:
		if c := p.Repeat.Count; c != nil && (*c < 0 || *c > MaxRepeat) {
			add(v.fail(KindRepeat, "count", "must be between 0 and %d", MaxRepeat))
		}
	case KindIf:
		lo, hi := p.If.Condition.bounds()
		if lo < 0 {
			add(v.fail(KindIf, "condition.min", "must not be negative"))
		}
		if hi <= lo {
			add(v.fail(KindIf, "condition", "max must be greater than min"))
		}
		if len(p.If.Action) == 0 {
			add(v.fail(KindIf, "action", "at least one directive is required"))
		}
		if depth >= maxIfDepth {
			add(v.fail(KindIf, "action", "if directives nest deeper than %d", maxIfDepth))
			break
		}
		for k, child := range p.If.Action {
			cv := v
			cv.path = append(slices.Clone(v.path), k)
			errs = append(errs, cv.check(child, depth+1)...)
		}
	}
	return errs
}

func (v paramValidator) enum(kind, field, value string, optional bool, allowed ...string) error {
	if value == "" && optional {
		return nil
	}
	if slices.Contains(allowed, value) {
		return nil
	}
	return v.fail(kind, field, "%q is not one of %s", value, strings.Join(allowed, ", "))
}

func (v paramValidator) nonNegative(kind, field string, n *int) error {
	if n != nil && *n < 0 {
		return v.fail(kind, field, "must not be negative")
	}
	return nil
}

func (v paramValidator) fillchar(kind string, f *string) error {
	if f == nil {
		return nil
	}
	if ansi.HasEscape(*f) || ansi.VisibleLength(*f) != 1 {
		return v.fail(kind, "fillchar", "%q must be a single column", *f)
	}
	return nil
}

func (v paramValidator) color(field string, c ColorValue) error {
	switch {
	case c.IsZero(), c.IsDynamic():
		return nil
	case len(c.RGB) > 0:
		if c.Name != "" || len(c.RGB) != 3 || slices.ContainsFunc(c.RGB, func(x int) bool { return x < 0 || x > 255 }) {
			return v.fail(KindColor, field, "rgb colour must be three components in 0..255")
		}
		return nil
	}
	if _, ok := ansi.Foreground(c.Name); !ok {
		return v.fail(KindColor, field, "unknown colour %q", c.Name)
	}
	return nil
}
