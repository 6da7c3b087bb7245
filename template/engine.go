package template

import (
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"pkt.systems/zenlog/ansi"
)

// DefaultWidth is the terminal width assumed when no width function is set.
const DefaultWidth = 80

// maxDirectiveSteps bounds the directive work-list of one segment so if
// actions that splice each other cannot loop forever.
const maxDirectiveSteps = 1024

// Engine renders Formats. It holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	log     zerolog.Logger
	palette *ansi.Palette
	width   func() int
	strict  bool
	warned  sync.Map
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger that receives directive warnings and render
// inconsistencies.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithPalette pins the palette used for dynamic colours. Without it the
// engine reads the package palette from ansi on every call.
func WithPalette(p *ansi.Palette) Option {
	return func(e *Engine) {
		e.palette = p
	}
}

// WithWidthFunc sets the function Process queries for the live terminal
// width on every call.
func WithWidthFunc(fn func() int) Option {
	return func(e *Engine) {
		if fn != nil {
			e.width = fn
		}
	}
}

// WithStrictAccounting makes a render inconsistency panic instead of being
// logged.
func WithStrictAccounting(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// New returns an Engine. Diagnostics go to stderr unless WithLogger is used.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:   zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
		width: func() int { return DefaultWidth },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.log = e.log.With().Str("component", "template").Logger()
	return e
}

// renderState is the accumulator of one Process call.
type renderState struct {
	length  int
	width   int
	level   string
	palette ansi.Palette
}

// segmentValue is the evolving value of one template segment.
type segmentValue struct {
	text    string
	visible bool
	fg      string
	bg      string
	style   []string
}

// Process renders format against ctx at the current terminal width and
// returns the rendered prompt and its visible width.
func (e *Engine) Process(format Format, ctx Context, level string) (string, int) {
	return e.ProcessWidth(format, ctx, level, e.width())
}

// ProcessWidth is Process with an explicit terminal width.
func (e *Engine) ProcessWidth(format Format, ctx Context, level string, width int) (string, int) {
	st := renderState{width: width, level: level}
	if e.palette != nil {
		st.palette = *e.palette
	} else {
		st.palette = ansi.Snapshot()
	}
	var b strings.Builder
	for i, seg := range format {
		if seg.IsStatic() {
			b.WriteString(seg.Static)
			st.length += ansi.VisibleLength(seg.Static)
			continue
		}
		out, n := e.renderSegment(i, seg, ctx, &st)
		b.WriteString(out)
		st.length += n
	}
	return b.String(), st.length
}

func (e *Engine) renderSegment(idx int, seg Segment, ctx Context, st *renderState) (string, int) {
	sv := segmentValue{text: ctx.Get(seg.Key), visible: true}
	work := slices.Clone(seg.Parameters)
	for pos := 0; pos < len(work); pos++ {
		if pos >= maxDirectiveSteps {
			e.warn(seg.Key, KindIf, "action", "remaining directives skipped", "directive work-list exceeded %d steps", maxDirectiveSteps)
			break
		}
		p := work[pos]
		kind := p.Kind()
		if kind == "" {
			e.warn(seg.Key, strings.Join(p.Kinds(), "+"), "", "directive skipped", "parameter must set exactly one directive")
			continue
		}
		if kind == KindIf {
			if p.If.Condition.Matches(st.width) && len(p.If.Action) > 0 {
				work = slices.Insert(work, pos+1, p.If.Action...)
			}
			continue
		}
		e.apply(kind, p, seg.Key, &sv, st)
	}
	if !sv.visible {
		return "", 0
	}

	counted := ansi.VisibleLength(sv.text)
	out := sv.text
	if codes := sv.codes(); codes != "" {
		out = codes + out
	}
	if ansi.HasEscape(out) {
		out += ansi.Reset
	}
	if seg.Key == KeyTimestamp && ctx.BlankTimestamp {
		out = ansi.CursorForward(counted)
	}
	e.checkAccounting(idx, seg.Key, counted, out)
	return out, counted
}

func (sv *segmentValue) codes() string {
	if sv.fg == "" && sv.bg == "" && len(sv.style) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(sv.fg)
	b.WriteString(sv.bg)
	for _, s := range sv.style {
		b.WriteString(s)
	}
	return b.String()
}

// checkAccounting verifies that counted matches what out occupies on screen,
// cursor movement included.
func (e *Engine) checkAccounting(idx int, key string, counted int, out string) {
	measured := ansi.VisibleLength(ansi.ExpandCursorForward(out))
	if measured == counted {
		return
	}
	err := &RenderInconsistency{Key: key, Counted: counted, Measured: measured, Emitted: out}
	if e.strict {
		panic(err)
	}
	e.log.Error().Err(err).Int("segment", idx).Msg("prompt width accounting drifted")
}

// warn reports a directive that could not be applied as written. Each
// distinct problem is logged once per Engine.
func (e *Engine) warn(key, directive, field, fallback, format string, args ...any) {
	id := key + "\x00" + directive + "\x00" + field + "\x00" + format
	if _, seen := e.warned.LoadOrStore(id, struct{}{}); seen {
		return
	}
	e.log.Warn().
		Str("segment", key).
		Str("directive", directive).
		Str("field", field).
		Str("fallback", fallback).
		Msgf(format, args...)
}
