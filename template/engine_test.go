package template

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"pkt.systems/zenlog/ansi"
)

func newTestEngine(opts ...Option) *Engine {
	base := []Option{
		WithLogger(zerolog.Nop()),
		WithPalette(&ansi.PaletteDefault),
		WithStrictAccounting(true),
	}
	return New(append(base, opts...)...)
}

func ctxOf(kv ...string) Context {
	values := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		values[kv[i]] = kv[i+1]
	}
	return Context{Values: values}
}

func TestProcessLinenumScenario(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	format := Format{
		Static(" "),
		Template(KeyLinenum, Parameter{Align: &Align{Alignment: AlignLeft, Width: Int(3), Fillchar: String(" ")}}),
	}
	out, n := e.ProcessWidth(format, ctxOf(KeyLinenum, "7"), "info", 100)
	if out != " 7  " {
		t.Fatalf("rendered %q, want %q", out, " 7  ")
	}
	if n != 4 {
		t.Fatalf("prompt length %d, want 4", n)
	}
}

func TestVisibleBreakpointBoundary(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	format := Format{Template(KeyFilename, Parameter{Visible: &Visible{Condition: WiderThan(85)}})}
	ctx := ctxOf(KeyFilename, "main.go")

	cases := []struct {
		width int
		want  string
	}{
		{84, ""},
		{85, ""},
		{86, "main.go"},
	}
	for _, tc := range cases {
		out, n := e.ProcessWidth(format, ctx, "info", tc.width)
		if out != tc.want || n != len(tc.want) {
			t.Fatalf("width %d: got %q (%d), want %q", tc.width, out, n, tc.want)
		}
	}
}

func TestVisibleConditionForms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		cond  Condition
		width int
		want  bool
	}{
		{Always(true), 1, true},
		{Always(false), 500, false},
		{NarrowerThan(80), 79, true},
		{NarrowerThan(80), 80, false},
		{AtLeast(80), 80, true},
		{AtLeast(80), 79, false},
	}
	for _, tc := range cases {
		if got := tc.cond.Eval(tc.width); got != tc.want {
			t.Fatalf("%s at %d = %v, want %v", tc.cond, tc.width, got, tc.want)
		}
	}
}

func TestInvisibleSegmentStillRunsLaterDirectives(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	format := Format{
		Template(KeyLevel,
			Parameter{Visible: &Visible{Condition: Always(false)}},
			Parameter{If: &If{Condition: From(50), Action: []Parameter{{Visible: &Visible{Condition: Always(true)}}}}},
		),
	}
	out, n := e.ProcessWidth(format, ctxOf(KeyLevel, "info"), "info", 60)
	if out != "info" || n != 4 {
		t.Fatalf("if action should restore visibility: %q %d", out, n)
	}
	out, n = e.ProcessWidth(format, ctxOf(KeyLevel, "info"), "info", 40)
	if out != "" || n != 0 {
		t.Fatalf("invisible segment emitted %q (%d)", out, n)
	}
}

func TestIfSplicesActionAfterCurrentPosition(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	format := Format{
		Template(KeyWrapfunc,
			Parameter{If: &If{Condition: Between(76, 86), Action: []Parameter{
				{Affix: &Affix{Prefix: "["}},
			}}},
			Parameter{Affix: &Affix{Suffix: "]"}},
		),
	}
	cases := []struct {
		width int
		want  string
	}{
		{75, "run]"},
		{76, "[run]"},
		{85, "[run]"},
		{86, "run]"},
	}
	for _, tc := range cases {
		out, _ := e.ProcessWidth(format, ctxOf(KeyWrapfunc, "run"), "info", tc.width)
		if out != tc.want {
			t.Fatalf("width %d: got %q want %q", tc.width, out, tc.want)
		}
	}
}

func TestNestedIfActionsAreVisited(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	inner := Parameter{If: &If{Condition: From(0), Action: []Parameter{{Case: &Case{Mode: CaseUpper}}}}}
	format := Format{Template(KeyLevel, Parameter{If: &If{Condition: From(0), Action: []Parameter{inner}}})}
	out, _ := e.ProcessWidth(format, ctxOf(KeyLevel, "warn"), "warning", 80)
	if out != "WARN" {
		t.Fatalf("nested if not applied: %q", out)
	}
}

func TestDirectives(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	cases := []struct {
		name  string
		value string
		param Parameter
		want  string
	}{
		{"align right", "ab", Parameter{Align: &Align{Alignment: AlignRight, Width: Int(5), Fillchar: String(".")}}, "...ab"},
		{"align center odd", "ab", Parameter{Align: &Align{Alignment: AlignCenter, Width: Int(5)}}, " ab  "},
		{"align default width", "x", Parameter{Align: &Align{}}, "x         "},
		{"align no shrink", "abcdef", Parameter{Align: &Align{Width: Int(3)}}, "abcdef"},
		{"upper", "MiXed", Parameter{Case: &Case{Mode: CaseUpper}}, "MIXED"},
		{"lower", "MiXed", Parameter{Case: &Case{Mode: CaseLower}}, "mixed"},
		{"capitalize", "hELLO world", Parameter{Case: &Case{Mode: CaseCapitalize}}, "Hello world"},
		{"swap", "MiXed", Parameter{Case: &Case{Mode: CaseSwap}}, "mIxED"},
		{"title", "hello big world", Parameter{Case: &Case{Mode: CaseTitle}}, "Hello Big World"},
		{"exclude hit", "<module>", Parameter{Filter: &Filter{Mode: FilterExclude, Items: []string{"<MODULE>"}, Replace: "module"}}, "module"},
		{"exclude case sensitive miss", "<module>", Parameter{Filter: &Filter{Items: []string{"<MODULE>"}, Replace: "x", CaseSensitive: true}}, "<module>"},
		{"include miss", "handler", Parameter{Filter: &Filter{Mode: FilterInclude, Items: []string{"main"}, Replace: "-"}}, "-"},
		{"include hit", "main.run", Parameter{Filter: &Filter{Mode: FilterInclude, Items: []string{"main"}, Replace: "-"}}, "main.run"},
		{"affix", "7", Parameter{Affix: &Affix{Prefix: ":", Suffix: ";"}}, ":7;"},
		{"truncate end", "abcdefghijkl", Parameter{Truncate: &Truncate{Width: Int(6)}}, "abcde…"},
		{"truncate start", "abcdefghijkl", Parameter{Truncate: &Truncate{Width: Int(6), Ending: String(".."), Position: TruncateStart}}, "..ijkl"},
		{"truncate center", "abcdefghijkl", Parameter{Truncate: &Truncate{Width: Int(6), Ending: String("~"), Position: TruncateCenter}}, "~efgh~"},
		{"truncate short", "abc", Parameter{Truncate: &Truncate{Width: Int(6)}}, "abc"},
		{"truncate default width", "abcdefghijkl", Parameter{Truncate: &Truncate{}}, "abcdefghi…"},
		{"pad", "x", Parameter{Pad: &Pad{Left: 2, Right: 1, Fillchar: String("*")}}, "**x*"},
		{"repeat", "ab", Parameter{Repeat: &Repeat{Count: Int(3)}}, "ababab"},
		{"repeat zero", "ab", Parameter{Repeat: &Repeat{Count: Int(0)}}, ""},
		{"repeat default", "ab", Parameter{Repeat: &Repeat{}}, "ab"},
	}
	for _, tc := range cases {
		out, n := e.ProcessWidth(Format{Template(KeyModule, tc.param)}, ctxOf(KeyModule, tc.value), "info", 100)
		if out != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, out, tc.want)
		}
		if n != ansi.VisibleLength(tc.want) {
			t.Fatalf("%s: length %d want %d", tc.name, n, ansi.VisibleLength(tc.want))
		}
	}
}

func TestDirectivesApplyInOrder(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	alignThenAffix := Format{Template(KeyLinenum,
		Parameter{Align: &Align{Width: Int(3)}},
		Parameter{Affix: &Affix{Prefix: ":"}},
	)}
	affixThenAlign := Format{Template(KeyLinenum,
		Parameter{Affix: &Affix{Prefix: ":"}},
		Parameter{Align: &Align{Width: Int(3)}},
	)}
	a, _ := e.ProcessWidth(alignThenAffix, ctxOf(KeyLinenum, "7"), "info", 80)
	b, _ := e.ProcessWidth(affixThenAlign, ctxOf(KeyLinenum, "7"), "info", 80)
	if a != ":7  " || b != ":7 " {
		t.Fatalf("order not respected: %q %q", a, b)
	}
}

func TestColorAndStyleWrapSegmentAndReset(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	format := Format{
		Template(KeyLevel,
			Parameter{Color: &Color{Foreground: Named(ColorDynamic), Background: Named("blue")}},
			Parameter{Style: Style{StyleUnderline, StyleBold}},
		),
		Static("|"),
	}
	out, n := e.ProcessWidth(format, ctxOf(KeyLevel, "error"), "error", 80)
	want := ansi.PaletteDefault.Error + "\x1b[44m" + ansi.Underline + ansi.Bold + "error" + ansi.Reset + "|"
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
	if n != 6 {
		t.Fatalf("length %d, want 6", n)
	}
}

func TestColorRGBQuantised(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	format := Format{Template(KeyModule, Parameter{Color: &Color{Foreground: RGB(255, 0, 0)}})}
	out, _ := e.ProcessWidth(format, ctxOf(KeyModule, "m"), "info", 80)
	if out != "\x1b[38;5;196mm"+ansi.Reset {
		t.Fatalf("unexpected rgb output %q", out)
	}
}

func TestDynamicColorFollowsKeyAndLevel(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	dyn := Parameter{Color: &Color{Foreground: Named(ColorDynamic)}}
	cases := []struct {
		key   string
		level string
		want  string
	}{
		{KeyTimestamp, "info", ansi.PaletteDefault.Timestamp},
		{KeyFilename, "info", ansi.PaletteDefault.Filename},
		{KeyLinenum, "info", ansi.PaletteDefault.Linenum},
		{KeyLevel, "warning", ansi.PaletteDefault.Warning},
		{KeyLevel, "lethal", ansi.PaletteDefault.Lethal},
	}
	for _, tc := range cases {
		out, _ := e.ProcessWidth(Format{Template(tc.key, dyn)}, ctxOf(tc.key, "v"), tc.level, 80)
		if !strings.HasPrefix(out, tc.want+"v") {
			t.Fatalf("%s/%s: got %q", tc.key, tc.level, out)
		}
	}
	out, _ := e.ProcessWidth(Format{Template(KeyValueCount, dyn)}, ctxOf(KeyValueCount, "3"), "info", 80)
	if out != "3" {
		t.Fatalf("key without palette colour should stay plain, got %q", out)
	}
}

func TestTimestampBlanking(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	format := Format{
		Template(KeyTimestamp, Parameter{Color: &Color{Foreground: Named("green")}}),
		Static(" "),
	}
	ctx := ctxOf(KeyTimestamp, "12:30:01")
	shown, n1 := e.ProcessWidth(format, ctx, "info", 80)
	ctx.BlankTimestamp = true
	blank, n2 := e.ProcessWidth(format, ctx, "info", 80)
	if n1 != 9 || n2 != 9 {
		t.Fatalf("lengths %d/%d, want 9", n1, n2)
	}
	if !strings.Contains(shown, "12:30:01") {
		t.Fatalf("timestamp missing: %q", shown)
	}
	if blank != "\x1b[8C " {
		t.Fatalf("blank timestamp rendered %q", blank)
	}
	if ansi.ExpandCursorForward(blank) != "         " {
		t.Fatalf("cursor-forward expands to %q", ansi.ExpandCursorForward(blank))
	}
}

func TestEscapeAwareAlignAndTruncate(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	ctx := ctxOf(KeyModule, "\x1b[31mred\x1b[0m")
	out, n := e.ProcessWidth(Format{Template(KeyModule, Parameter{Align: &Align{Width: Int(6)}})}, ctx, "info", 80)
	if ansi.Strip(out) != "red   " || n != 6 {
		t.Fatalf("align with escapes: %q (%d)", out, n)
	}
	long := ctxOf(KeyModule, "\x1b[32mabcdefghij\x1b[0m")
	out, n = e.ProcessWidth(Format{Template(KeyModule, Parameter{Truncate: &Truncate{Width: Int(5)}})}, long, "info", 80)
	if ansi.Strip(out) != "abcd…" || n != 5 {
		t.Fatalf("truncate with escapes: %q (%d)", out, n)
	}
	if !strings.HasSuffix(out, ansi.Reset) {
		t.Fatalf("segment carrying escapes must end with a reset: %q", out)
	}
}

func TestCaseLeavesEscapesAlone(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	ctx := ctxOf(KeyModule, "\x1b[38;5;75mmixed\x1b[0m")
	out, _ := e.ProcessWidth(Format{Template(KeyModule, Parameter{Case: &Case{Mode: CaseUpper}})}, ctx, "info", 80)
	if out != "\x1b[38;5;75mMIXED\x1b[0m"+ansi.Reset {
		t.Fatalf("case touched escape sequence: %q", out)
	}
}

func TestMalformedDirectivesFallBackAndWarnOnce(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := New(WithLogger(zerolog.New(&buf)), WithPalette(&ansi.PaletteDefault), WithStrictAccounting(true))
	format := Format{Template(KeyModule,
		Parameter{Align: &Align{Alignment: "diagonal", Width: Int(-4), Fillchar: String("ab")}},
		Parameter{Color: &Color{Foreground: Named("chartreuse")}},
		Parameter{Repeat: &Repeat{Count: Int(-1)}},
		Parameter{},
	)}
	out, n := e.ProcessWidth(format, ctxOf(KeyModule, "m"), "info", 80)
	if out != "m         " || n != 10 {
		t.Fatalf("fallbacks not applied: %q (%d)", out, n)
	}
	first := buf.String()
	for _, want := range []string{"unknown alignment", "negative width", "fillchar", "unknown colour", "repeat count", "exactly one directive"} {
		if !strings.Contains(first, want) {
			t.Fatalf("missing warning %q in %s", want, first)
		}
	}
	e.ProcessWidth(format, ctxOf(KeyModule, "m"), "info", 80)
	if buf.String() != first {
		t.Fatalf("warnings repeated on second render")
	}
}

func TestRenderInconsistencyPanicsInStrictMode(t *testing.T) {
	t.Parallel()

	bad := ansi.PaletteDefault
	bad.Module = "not-an-escape"
	e := New(WithLogger(zerolog.Nop()), WithPalette(&bad), WithStrictAccounting(true))
	defer func() {
		r := recover()
		if _, ok := r.(*RenderInconsistency); !ok {
			t.Fatalf("expected RenderInconsistency panic, got %v", r)
		}
	}()
	e.ProcessWidth(Format{Template(KeyModule, Parameter{Color: &Color{Foreground: Named(ColorDynamic)}})}, ctxOf(KeyModule, "m"), "info", 80)
}

func TestRenderInconsistencyLoggedWhenLenient(t *testing.T) {
	t.Parallel()

	bad := ansi.PaletteDefault
	bad.Module = "XX"
	var buf bytes.Buffer
	e := New(WithLogger(zerolog.New(&buf)), WithPalette(&bad))
	_, n := e.ProcessWidth(Format{Template(KeyModule, Parameter{Color: &Color{Foreground: Named(ColorDynamic)}})}, ctxOf(KeyModule, "m"), "info", 80)
	if n != 1 {
		t.Fatalf("counted %d", n)
	}
	if !strings.Contains(buf.String(), "accounting drifted") {
		t.Fatalf("expected inconsistency to be logged, got %s", buf.String())
	}
}

func TestProcessQueriesWidthEveryCall(t *testing.T) {
	t.Parallel()

	widths := []int{100, 60}
	var mu sync.Mutex
	e := newTestEngine(WithWidthFunc(func() int {
		mu.Lock()
		defer mu.Unlock()
		w := widths[0]
		widths = widths[1:]
		return w
	}))
	format := Format{Template(KeyFilename, Parameter{Visible: &Visible{Condition: WiderThan(85)}})}
	first, _ := e.Process(format, ctxOf(KeyFilename, "f.go"), "info")
	second, _ := e.Process(format, ctxOf(KeyFilename, "f.go"), "info")
	if first != "f.go" || second != "" {
		t.Fatalf("width not re-queried: %q %q", first, second)
	}
}

func TestProcessIsDeterministicAndConcurrent(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	format := MustBuiltin(FormatDefault)
	ctx := ctxOf(KeyTimestamp, "10:00:00", KeyFilename, "main.go", KeyWrapfunc, "serve", KeyLinenum, "42", KeyLevel, "warning")
	want, wantN := e.ProcessWidth(format, ctx, "warning", 120)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				got, n := e.ProcessWidth(format, ctx, "warning", 120)
				if got != want || n != wantN {
					t.Errorf("non-deterministic render %q (%d)", got, n)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestSelfSplicingIfIsBounded(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	loop := &If{Condition: From(0)}
	loop.Action = []Parameter{{If: loop}}
	out, _ := e.ProcessWidth(Format{Template(KeyModule, Parameter{If: loop})}, ctxOf(KeyModule, "m"), "info", 80)
	if out != "m" {
		t.Fatalf("unexpected output %q", out)
	}
}
