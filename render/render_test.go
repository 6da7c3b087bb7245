package render

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"pkt.systems/zenlog/ansi"
)

type opaquePoint struct {
	X, Y int
}

type mapHolder struct {
	M map[string]any
}

func TestNewTagDeterministicWithSeed(t *testing.T) {
	t.Parallel()

	a := NewTag(rand.NewPCG(1, 2))
	b := NewTag(rand.NewPCG(1, 2))
	if a != b {
		t.Fatalf("same seed produced %q and %q", a, b)
	}
	if len(a) != TagLength {
		t.Fatalf("tag length = %d", len(a))
	}
	for _, c := range a {
		if !strings.ContainsRune(tagAlphabet, c) {
			t.Fatalf("tag %q contains %q", a, c)
		}
	}
	if NewTag(nil) == "" {
		t.Fatalf("expected nil source to produce a tag")
	}
}

func TestSanitizeShapes(t *testing.T) {
	t.Parallel()

	const tag = Tag("Zx9Q")
	in := map[string]any{
		"list":   []int{1, 2},
		"nested": map[int]string{7: "seven"},
		"point":  opaquePoint{1, 2},
		"nil":    nil,
		"ok":     true,
		"bytes":  []byte("raw"),
	}
	got, ok := Sanitize(in, tag).(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", got)
	}
	list, ok := got["list"].([]any)
	if !ok || len(list) != 2 || list[0] != int64(1) || list[1] != int64(2) {
		t.Fatalf("unexpected list %#v", got["list"])
	}
	nested, ok := got["nested"].(map[string]any)
	if !ok || nested["7"] != "seven" {
		t.Fatalf("unexpected nested map %#v", got["nested"])
	}
	if got["point"] != "Zx9Q{1 2}" {
		t.Fatalf("unexpected opaque value %#v", got["point"])
	}
	if got["nil"] != nil || got["ok"] != true || got["bytes"] != "raw" {
		t.Fatalf("primitives changed: %#v", got)
	}
}

func TestSanitizeTextForms(t *testing.T) {
	t.Parallel()

	const tag = Tag("abcd")
	cases := []struct {
		in   any
		want any
	}{
		{errors.New("boom"), "abcdboom"},
		{1500 * time.Millisecond, "abcd1.5s"},
		{math.NaN(), "abcdNaN"},
		{math.Inf(-1), "abcd-Inf"},
		{func() {}, nil},
		{(*opaquePoint)(nil), nil},
		{&opaquePoint{3, 4}, "abcd{3 4}"},
	}
	for _, tc := range cases {
		got := Sanitize(tc.in, tag)
		if tc.want == nil {
			if _, isFunc := tc.in.(func()); isFunc {
				s, ok := got.(string)
				if !ok || !strings.HasPrefix(s, "abcd") {
					t.Fatalf("func should be opaque, got %#v", got)
				}
				continue
			}
		}
		if got != tc.want {
			t.Fatalf("Sanitize(%#v) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
	if got := SanitizeWithPolicy(math.Inf(1), tag, NonFiniteFloatAsNull); got != nil {
		t.Fatalf("null policy produced %#v", got)
	}
}

func TestSanitizeCycles(t *testing.T) {
	t.Parallel()

	m := map[string]any{"name": "loop"}
	m["self"] = m
	got := Sanitize(m, "Tg00").(map[string]any)
	if got["self"] != "Tg00{...}" {
		t.Fatalf("cycle not broken: %#v", got["self"])
	}

	s := []any{1, nil}
	s[1] = s
	list := Sanitize(s, "Tg00").([]any)
	if list[1] != "Tg00[...]" {
		t.Fatalf("slice cycle not broken: %#v", list[1])
	}

	shared := []int{1}
	pair := Sanitize([]any{shared, shared}, "Tg00").([]any)
	if _, ok := pair[1].([]any); !ok {
		t.Fatalf("shared sibling mistaken for a cycle: %#v", pair[1])
	}
}

func TestRenderUnquotesOpaqueValues(t *testing.T) {
	t.Parallel()

	r := New(Options{PrettyPrint: true, Highlight: true})
	tag := NewTag(rand.NewPCG(7, 7))
	value := map[string]any{"a": []any{1, 2, opaquePoint{5, 6}}}
	out := r.Render(Sanitize(value, tag), tag, 80)
	plain := ansi.Strip(out)
	if strings.Contains(plain, string(tag)) {
		t.Fatalf("tag leaked into output: %q", plain)
	}
	if !strings.Contains(plain, "[1, 2, {5 6}]") {
		t.Fatalf("opaque element not restored unquoted: %q", plain)
	}
	if strings.Contains(plain, `"{5 6}"`) {
		t.Fatalf("opaque element still quoted: %q", plain)
	}
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected highlighted output, got %q", out)
	}
}

func TestRenderCompactWithoutPrettyPrint(t *testing.T) {
	t.Parallel()

	r := New(Options{})
	tag := Tag("QQQQ")
	out := r.Render(Sanitize(map[string]any{"k": []any{"<v>", opaquePoint{}}}, tag), tag, 80)
	if out != `{"k":["<v>",{0 0}]}` {
		t.Fatalf("unexpected compact render %q", out)
	}
}

func TestFormatScalarsAndContainers(t *testing.T) {
	t.Parallel()

	r := New(Options{PrettyPrint: true, Source: func() rand.Source { return rand.NewPCG(1, 1) }})
	if got := r.Format("text", 40); got != "text" {
		t.Fatalf("string changed: %q", got)
	}
	if got := r.Format(42, 40); got != "42" {
		t.Fatalf("int rendered as %q", got)
	}
	if got := r.Format(opaquePoint{1, 2}, 40); got != "{1 2}" {
		t.Fatalf("struct rendered as %q", got)
	}
	got := r.Format(map[string]int{"b": 2, "a": 1}, 40)
	if !strings.Contains(got, "\n") || strings.Index(got, `"a"`) > strings.Index(got, `"b"`) {
		t.Fatalf("map not pretty printed in key order: %q", got)
	}
	if got := r.FormatAll([]any{"x", 1, []int{3}}, " | ", 40); got != "x | 1 | [3]" {
		t.Fatalf("FormatAll = %q", got)
	}
}

func TestUnsanitizeDecodesEscapes(t *testing.T) {
	t.Parallel()

	in := `["Ab12line\nnext \"q\"", "plain", "Ab12"]`
	got := Unsanitize(in, "Ab12")
	want := "[line\nnext \"q\", \"plain\", ]"
	if got != want {
		t.Fatalf("Unsanitize = %q, want %q", got, want)
	}
	if got := Unsanitize(in, ""); got != in {
		t.Fatalf("empty tag must be a no-op")
	}
}

func TestRenderNeverPanics(t *testing.T) {
	t.Parallel()

	r := New(Options{PrettyPrint: true, Highlight: true})
	ch := make(chan int)
	values := []any{
		nil,
		ch,
		[]any{ch, func() {}, complex(1, 2)},
		map[any]any{nil: 1, opaquePoint{}: 2, 3.5: "x"},
		[2]float64{math.NaN(), 1},
		struct{ m map[string]any }{},
	}
	for _, v := range values {
		_ = r.Format(v, 10)
	}
}

func TestFormatSurvivesSelfReferencingValues(t *testing.T) {
	t.Parallel()

	m := map[string]any{}
	m["self"] = m
	got := New(Options{PrettyPrint: true}).Format([]any{1, mapHolder{M: m}}, 40)
	if !strings.Contains(got, "{map[self:map[...]]}") {
		t.Fatalf("unexpected rendering %q", got)
	}
	if got := New(Options{}).Format(mapHolder{M: m}, 40); got != "{map[self:map[...]]}" {
		t.Fatalf("unexpected scalar rendering %q", got)
	}

	s := []any{1, nil}
	s[1] = s
	if got := Text(struct{ S []any }{s}); got != "{[1 [...]]}" {
		t.Fatalf("unexpected slice cycle text %q", got)
	}
	if got := Text(&mapHolder{M: m}); got != "&{map[self:map[...]]}" {
		t.Fatalf("unexpected pointer cycle text %q", got)
	}
}

func TestTextMatchesFmtWithoutCycles(t *testing.T) {
	t.Parallel()

	shared := map[string]any{"k": 1}
	values := []any{
		nil,
		42,
		opaquePoint{1, 2},
		&opaquePoint{3, 4},
		mapHolder{M: map[string]any{"a": shared, "b": shared}},
		errors.New("boom"),
		[]float32{1.5, 2},
	}
	for _, v := range values {
		if got, want := Text(v), fmt.Sprint(v); got != want {
			t.Fatalf("Text(%#v) = %q, want %q", v, got, want)
		}
	}
}

func TestSanitizeKeepsCollidingKeys(t *testing.T) {
	t.Parallel()

	got := Sanitize(map[any]any{1: "a", "1": "b", 2: "c"}, "Tg00").(map[string]any)
	if len(got) != 3 {
		t.Fatalf("entries were lost: %#v", got)
	}
	if got["1 (int)"] != "a" || got["1 (string)"] != "b" || got["2"] != "c" {
		t.Fatalf("unexpected keys %#v", got)
	}

	nan := math.NaN()
	twice := Sanitize(map[float64]int{nan: 1, nan: 2}, "Tg00").(map[string]any)
	if len(twice) != 2 || twice["NaN (float64)"] == nil || twice["NaN (float64 #2)"] == nil {
		t.Fatalf("identical key texts were merged: %#v", twice)
	}
}
