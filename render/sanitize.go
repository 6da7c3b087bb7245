package render

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"unicode/utf8"
)

var (
	stringerType = reflect.TypeFor[fmt.Stringer]()
	errorType    = reflect.TypeFor[error]()
)

// Sanitize rebuilds v as a tree the JSON encoder can always handle: nil,
// bool, int64, uint64, float64, string, []any and map[string]any. Values
// without a literal form (structs, funcs, channels, errors, types with a
// String method, self-referencing containers) become the string tag+text,
// where text is their fmt representation. Unsanitize removes the tags again.
func Sanitize(v any, tag Tag) any {
	return SanitizeWithPolicy(v, tag, NonFiniteFloatAsText)
}

// SanitizeWithPolicy is Sanitize with an explicit non-finite float policy.
func SanitizeWithPolicy(v any, tag Tag, policy NonFiniteFloatPolicy) any {
	s := sanitizer{
		tag:    string(tag),
		policy: normalizeNonFiniteFloatPolicy(policy),
		active: make(map[uintptr]struct{}),
	}
	return s.walk(reflect.ValueOf(v))
}

type sanitizer struct {
	tag    string
	policy NonFiniteFloatPolicy
	// active holds the containers on the current path, for cycle detection.
	active map[uintptr]struct{}
}

func (s *sanitizer) walk(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		return s.walk(rv.Elem())
	}
	if hasTextForm(rv) {
		return s.opaque(rv)
	}
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if isFinite(f) {
			return f
		}
		if s.policy == NonFiniteFloatAsNull {
			return nil
		}
		return s.tag + nonFiniteText(f)
	case reflect.String:
		return rv.String()
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		if s.enter(rv.Pointer()) {
			return s.tag + "<cycle>"
		}
		defer s.leave(rv.Pointer())
		return s.walk(rv.Elem())
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := rv.Bytes()
			if utf8.Valid(b) {
				return string(b)
			}
			return s.opaque(rv)
		}
		if s.enter(rv.Pointer()) {
			return s.tag + "[...]"
		}
		defer s.leave(rv.Pointer())
		return s.list(rv)
	case reflect.Array:
		return s.list(rv)
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		if s.enter(rv.Pointer()) {
			return s.tag + "{...}"
		}
		defer s.leave(rv.Pointer())
		return s.mapping(rv)
	}
	return s.opaque(rv)
}

func (s *sanitizer) list(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = s.walk(rv.Index(i))
	}
	return out
}

// mapping sanitizes a map. Keys whose text forms collide are suffixed with
// their type, and then with a counter, so no entry is lost.
func (s *sanitizer) mapping(rv reflect.Value) map[string]any {
	type entry struct {
		key   string
		typ   string
		value any
	}
	entries := make([]entry, 0, rv.Len())
	seen := make(map[string]int, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, typ := s.key(iter.Key())
		entries = append(entries, entry{key: key, typ: typ, value: s.walk(iter.Value())})
		seen[key]++
	}
	out := make(map[string]any, len(entries))
	var collided []entry
	for _, e := range entries {
		if seen[e.key] > 1 {
			collided = append(collided, e)
			continue
		}
		out[e.key] = e.value
	}
	slices.SortStableFunc(collided, func(a, b entry) int { return cmp.Compare(a.typ, b.typ) })
	for _, e := range collided {
		key := e.key + " (" + e.typ + ")"
		for n := 2; ; n++ {
			if _, taken := out[key]; !taken {
				break
			}
			key = e.key + " (" + e.typ + " #" + strconv.Itoa(n) + ")"
		}
		out[key] = e.value
	}
	return out
}

// key returns the text form of a map key and the name of its dynamic type.
func (s *sanitizer) key(rv reflect.Value) (string, string) {
	for rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "<nil>", "nil"
		}
		rv = rv.Elem()
	}
	typ := rv.Type().String()
	if rv.Kind() == reflect.String && !hasTextForm(rv) {
		return rv.String(), typ
	}
	switch rv.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if !hasTextForm(rv) && rv.CanInterface() {
			return fmt.Sprint(rv.Interface()), typ
		}
	}
	return s.opaque(rv).(string), typ
}

func (s *sanitizer) opaque(rv reflect.Value) any {
	if !rv.CanInterface() {
		return s.tag + rv.Type().String()
	}
	return s.tag + Text(rv.Interface())
}

func (s *sanitizer) enter(p uintptr) bool {
	if p == 0 {
		return false
	}
	if _, ok := s.active[p]; ok {
		return true
	}
	s.active[p] = struct{}{}
	return false
}

func (s *sanitizer) leave(p uintptr) {
	delete(s.active, p)
}

// hasTextForm reports whether rv belongs to a named type that describes
// itself through Error or String.
func hasTextForm(rv reflect.Value) bool {
	t := rv.Type()
	if t.Name() == "" && t.Kind() != reflect.Pointer {
		return false
	}
	if t.Kind() == reflect.Pointer && rv.IsNil() {
		return false
	}
	return t.Implements(errorType) || t.Implements(stringerType)
}
