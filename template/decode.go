package template

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

var (
	conditionType  = reflect.TypeFor[Condition]()
	colorValueType = reflect.TypeFor[ColorValue]()
	styleType      = reflect.TypeFor[Style]()
	visibleType    = reflect.TypeFor[Visible]()
	colorType      = reflect.TypeFor[Color]()
	caseType       = reflect.TypeFor[Case]()
	repeatType     = reflect.TypeFor[Repeat]()
)

var parameterKinds = []string{
	KindAlign, KindCase, KindFilter, KindAffix, KindTruncate, KindVisible,
	KindColor, KindStyle, KindPad, KindRepeat, KindIf,
}

// ParameterKinds returns every directive kind in configuration order.
func ParameterKinds() []string {
	return slices.Clone(parameterKinds)
}

// Decode builds a Format from generic configuration data (a list of
// segment mappings as produced by YAML, TOML or JSON decoders) and validates
// it. Unknown segment fields, unknown directive kinds, unknown directive
// fields and numbers where text is expected (or the reverse) are rejected.
func Decode(raw any) (Format, error) {
	if err := checkKinds(raw); err != nil {
		return nil, err
	}
	var f Format
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &f,
		ErrorUnused: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			shorthandHook(),
			conditionHook(),
			colorValueHook(),
			styleHook(),
		),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, &ConfigError{Segment: -1, Parameter: -1, Message: err.Error(), Err: ErrMalformed}
	}
	if err := Validate(f); err != nil {
		return nil, err
	}
	return f, nil
}

// checkKinds rejects unknown directive kinds with their location before the
// generic decoder reports them less precisely.
func checkKinds(raw any) error {
	segments, ok := raw.([]any)
	if !ok {
		if raw == nil {
			return &ConfigError{Segment: -1, Parameter: -1, Message: "format is empty", Err: ErrMalformed}
		}
		if reflect.ValueOf(raw).Kind() == reflect.Slice {
			return nil
		}
		return &ConfigError{Segment: -1, Parameter: -1, Message: fmt.Sprintf("format must be a list of segments, got %T", raw), Err: ErrMalformed}
	}
	var errs []error
	for i, s := range segments {
		seg, ok := s.(map[string]any)
		if !ok {
			continue
		}
		key, _ := seg["key"].(string)
		params, _ := seg["parameters"].([]any)
		errs = append(errs, checkParamKinds(i, key, -1, nil, params)...)
	}
	return errors.Join(errs...)
}

func checkParamKinds(seg int, key string, top int, path []int, params []any) []error {
	var errs []error
	for j, p := range params {
		m, ok := p.(map[string]any)
		if !ok {
			continue
		}
		paramIdx, sub := j, path
		if top >= 0 {
			paramIdx, sub = top, append(slices.Clone(path), j)
		}
		for kind, body := range m {
			if !slices.Contains(parameterKinds, kind) {
				errs = append(errs, &ConfigError{
					Segment: seg, Parameter: paramIdx, Path: sub, Key: key, Kind: kind,
					Message: fmt.Sprintf("expected one of %s", strings.Join(parameterKinds, ", ")),
					Err:     ErrUnknownParameter,
				})
				continue
			}
			if kind != KindIf {
				continue
			}
			if ifBody, ok := body.(map[string]any); ok {
				actions, _ := ifBody["action"].([]any)
				errs = append(errs, checkParamKinds(seg, key, paramIdx, sub, actions)...)
			}
		}
	}
	return errs
}

// shorthandHook lets single-field directives be written as a scalar:
// visible: ">85", color: dynamic, case: upper, repeat: 3.
func shorthandHook() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, t reflect.Type, data any) (any, error) {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if _, isMap := data.(map[string]any); isMap || data == nil {
			return data, nil
		}
		switch t {
		case visibleType:
			return map[string]any{"condition": data}, nil
		case colorType:
			return map[string]any{"foreground": data}, nil
		case caseType:
			return map[string]any{"mode": data}, nil
		case repeatType:
			return map[string]any{"count": data}, nil
		}
		return data, nil
	}
}

func conditionHook() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, t reflect.Type, data any) (any, error) {
		if t != conditionType {
			return data, nil
		}
		switch v := data.(type) {
		case Condition:
			return v, nil
		case bool:
			return Always(v), nil
		case string:
			return ParseCondition(v)
		}
		if n, ok := integral(data); ok {
			return AtLeast(n), nil
		}
		return nil, fmt.Errorf("condition must be a bool, \">N\", \"<N\" or an integer, got %T", data)
	}
}

func colorValueHook() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, t reflect.Type, data any) (any, error) {
		if t != colorValueType {
			return data, nil
		}
		switch v := data.(type) {
		case ColorValue:
			return v, nil
		case string:
			return Named(v), nil
		case []any:
			rgb := make([]int, 0, len(v))
			for _, c := range v {
				n, ok := integral(c)
				if !ok {
					return nil, fmt.Errorf("rgb component %v is not an integer", c)
				}
				rgb = append(rgb, n)
			}
			return ColorValue{RGB: rgb}, nil
		}
		return nil, fmt.Errorf("colour must be a name, %q or an [r, g, b] list, got %T", ColorDynamic, data)
	}
}

// styleHook accepts a list of attribute names (emitted in list order), a
// single name, or a mapping of attribute flags (emitted in canonical order).
func styleHook() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, t reflect.Type, data any) (any, error) {
		if t != styleType {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return Style{v}, nil
		case map[string]any:
			for name := range v {
				if !slices.Contains(styleOrder, name) {
					return nil, fmt.Errorf("unknown style attribute %q", name)
				}
			}
			style := Style{}
			for _, name := range styleOrder {
				on, present := v[name]
				if !present {
					continue
				}
				b, ok := on.(bool)
				if !ok {
					return nil, fmt.Errorf("style attribute %q must be a bool, got %T", name, on)
				}
				if b {
					style = append(style, name)
				}
			}
			return style, nil
		}
		return data, nil
	}
}

func integral(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
