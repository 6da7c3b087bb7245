package render

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Text returns the fmt %v form of v. When fmt would recurse forever because
// a map or slice reachable from v contains itself, the value is printed by
// a reflect walk that writes map[...] or [...] where the cycle closes.
func Text(v any) string {
	rv := reflect.ValueOf(v)
	if !reachesCycle(rv, 0, make(map[uintptr]struct{})) {
		return fmt.Sprint(v)
	}
	var b strings.Builder
	p := cyclePrinter{b: &b, active: make(map[uintptr]struct{})}
	p.print(rv, 0)
	return b.String()
}

// describesItself mirrors fmt: values reachable through Interface that
// implement error or fmt.Stringer are printed by their own method.
func describesItself(rv reflect.Value) bool {
	if !rv.CanInterface() {
		return false
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		if rv.IsNil() {
			return false
		}
	}
	t := rv.Type()
	return t.Implements(errorType) || t.Implements(stringerType)
}

// reachesCycle follows the same path fmt takes through rv: pointers are only
// dereferenced at the top level and self-describing values stop the walk.
func reachesCycle(rv reflect.Value, depth int, active map[uintptr]struct{}) bool {
	if !rv.IsValid() || describesItself(rv) {
		return false
	}
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return reachesCycle(rv.Elem(), depth+1, active)
	case reflect.Pointer:
		if depth > 0 || rv.IsNil() {
			return false
		}
		return reachesCycle(rv.Elem(), depth+1, active)
	case reflect.Struct:
		for i := range rv.NumField() {
			if reachesCycle(rv.Field(i), depth+1, active) {
				return true
			}
		}
		return false
	case reflect.Array:
		for i := range rv.Len() {
			if reachesCycle(rv.Index(i), depth+1, active) {
				return true
			}
		}
		return false
	case reflect.Slice, reflect.Map:
		if rv.IsNil() || rv.Len() == 0 {
			return false
		}
		p := rv.Pointer()
		if _, ok := active[p]; ok {
			return true
		}
		active[p] = struct{}{}
		defer delete(active, p)
		if rv.Kind() == reflect.Map {
			iter := rv.MapRange()
			for iter.Next() {
				if reachesCycle(iter.Key(), depth+1, active) || reachesCycle(iter.Value(), depth+1, active) {
					return true
				}
			}
			return false
		}
		for i := range rv.Len() {
			if reachesCycle(rv.Index(i), depth+1, active) {
				return true
			}
		}
	}
	return false
}

type cyclePrinter struct {
	b      *strings.Builder
	active map[uintptr]struct{}
}

func (p *cyclePrinter) print(rv reflect.Value, depth int) {
	if !rv.IsValid() {
		p.b.WriteString("<nil>")
		return
	}
	if describesItself(rv) {
		p.b.WriteString(fmt.Sprint(rv.Interface()))
		return
	}
	switch rv.Kind() {
	case reflect.Bool:
		p.b.WriteString(strconv.FormatBool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		p.b.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		p.b.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		p.b.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits()))
	case reflect.Complex64, reflect.Complex128:
		p.b.WriteString(fmt.Sprint(rv.Complex()))
	case reflect.String:
		p.b.WriteString(rv.String())
	case reflect.Interface:
		if rv.IsNil() {
			p.b.WriteString("<nil>")
			return
		}
		p.print(rv.Elem(), depth+1)
	case reflect.Pointer:
		if depth == 0 && !rv.IsNil() {
			switch rv.Elem().Kind() {
			case reflect.Struct, reflect.Array, reflect.Slice, reflect.Map:
				p.b.WriteByte('&')
				p.print(rv.Elem(), depth+1)
				return
			}
		}
		p.address(rv)
	case reflect.Struct:
		p.b.WriteByte('{')
		for i := range rv.NumField() {
			if i > 0 {
				p.b.WriteByte(' ')
			}
			p.print(rv.Field(i), depth+1)
		}
		p.b.WriteByte('}')
	case reflect.Array:
		p.list(rv, depth)
	case reflect.Slice:
		if p.enter(rv) {
			p.b.WriteString("[...]")
			return
		}
		defer p.leave(rv)
		p.list(rv, depth)
	case reflect.Map:
		if p.enter(rv) {
			p.b.WriteString("map[...]")
			return
		}
		defer p.leave(rv)
		p.mapping(rv, depth)
	default:
		p.address(rv)
	}
}

func (p *cyclePrinter) list(rv reflect.Value, depth int) {
	p.b.WriteByte('[')
	for i := range rv.Len() {
		if i > 0 {
			p.b.WriteByte(' ')
		}
		p.print(rv.Index(i), depth+1)
	}
	p.b.WriteByte(']')
}

func (p *cyclePrinter) mapping(rv reflect.Value, depth int) {
	type pair struct{ key, value string }
	pairs := make([]pair, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		var key, value strings.Builder
		kp := cyclePrinter{b: &key, active: p.active}
		kp.print(iter.Key(), depth+1)
		vp := cyclePrinter{b: &value, active: p.active}
		vp.print(iter.Value(), depth+1)
		pairs = append(pairs, pair{key.String(), value.String()})
	}
	slices.SortFunc(pairs, func(a, b pair) int { return strings.Compare(a.key, b.key) })
	p.b.WriteString("map[")
	for i, kv := range pairs {
		if i > 0 {
			p.b.WriteByte(' ')
		}
		p.b.WriteString(kv.key)
		p.b.WriteByte(':')
		p.b.WriteString(kv.value)
	}
	p.b.WriteByte(']')
}

func (p *cyclePrinter) address(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			p.b.WriteString("<nil>")
			return
		}
		p.b.WriteString("0x" + strconv.FormatUint(uint64(rv.Pointer()), 16))
		return
	}
	p.b.WriteString(rv.Type().String())
}

func (p *cyclePrinter) enter(rv reflect.Value) bool {
	if rv.IsNil() {
		return false
	}
	ptr := rv.Pointer()
	if _, ok := p.active[ptr]; ok {
		return true
	}
	p.active[ptr] = struct{}{}
	return false
}

func (p *cyclePrinter) leave(rv reflect.Value) {
	if !rv.IsNil() {
		delete(p.active, rv.Pointer())
	}
}
