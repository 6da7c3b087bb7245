// Package render turns arbitrary log values into display text. Containers are
// sanitized into a literal-only tree, encoded as JSON, reflowed to the
// available width and syntax-coloured; opaque leaves are then restored to
// their natural text form.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"reflect"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/tidwall/pretty"
)

// DefaultStyle is the chroma style used when Options.Style is empty.
const DefaultStyle = "onedark"

// Options configures a Renderer.
type Options struct {
	// PrettyPrint reflows containers over several lines to fit the width.
	PrettyPrint bool
	// Highlight colours rendered containers with ANSI escapes.
	Highlight bool
	// Style names the chroma style used for highlighting.
	Style string
	// Indent is the indentation unit for pretty printing. Defaults to two
	// spaces.
	Indent string
	// NonFiniteFloatPolicy decides how NaN and infinities appear.
	NonFiniteFloatPolicy NonFiniteFloatPolicy
	// Source, when set, supplies the random source for each value's tag.
	// Tests use it to make tags deterministic.
	Source func() rand.Source
}

// Renderer formats values for the message area of a log line. A Renderer is
// safe for concurrent use; every call allocates its own tag and buffers.
type Renderer struct {
	opts      Options
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
}

// New resolves the chroma lexer, style and formatter once.
func New(opts Options) *Renderer {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	if opts.Style == "" {
		opts.Style = DefaultStyle
	}
	opts.NonFiniteFloatPolicy = normalizeNonFiniteFloatPolicy(opts.NonFiniteFloatPolicy)
	r := &Renderer{opts: opts}
	if opts.Highlight {
		r.lexer = lexers.Get("json")
		r.style = styles.Get(opts.Style)
		r.formatter = formatters.Get("terminal256")
	}
	return r
}

// Options returns the resolved options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Format renders a single log value for a message area width columns wide.
// Strings are returned unchanged, scalars use their fmt form and containers
// (slices, arrays, maps, and pointers to them) go through Sanitize and
// Render. Format never panics.
func (r *Renderer) Format(value any, width int) (out string) {
	if s, ok := value.(string); ok {
		return s
	}
	defer func() {
		if recover() != nil {
			out = fallbackText(value)
		}
	}()
	if !isContainer(value) {
		return Text(value)
	}
	tag := r.newTag()
	return r.Render(SanitizeWithPolicy(value, tag, r.opts.NonFiniteFloatPolicy), tag, width)
}

// FormatAll formats every value and joins them with sep.
func (r *Renderer) FormatAll(values []any, sep string, width int) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return r.Format(values[0], width)
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = r.Format(v, width)
	}
	return strings.Join(parts, sep)
}

// Render encodes an already sanitized value, reflows it to width columns,
// highlights it and strips the tag markers. Any stage that fails is skipped
// and the text produced so far is used.
func (r *Renderer) Render(sanitized any, tag Tag, width int) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(sanitized); err != nil {
		return Unsanitize(fmt.Sprint(sanitized), tag)
	}
	text := buf.Bytes()
	if r.opts.PrettyPrint {
		text = pretty.PrettyOptions(text, &pretty.Options{
			Width:  max(width, 1),
			Indent: r.opts.Indent,
		})
	}
	out := strings.TrimRight(string(text), "\n")
	if r.opts.Highlight {
		out = r.highlight(out)
	}
	return Unsanitize(out, tag)
}

func (r *Renderer) highlight(text string) string {
	if r.lexer == nil || r.formatter == nil || r.style == nil {
		return text
	}
	it, err := r.lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}
	var buf bytes.Buffer
	if err := r.formatter.Format(&buf, r.style, it); err != nil {
		return text
	}
	return buf.String()
}

func (r *Renderer) newTag() Tag {
	if r.opts.Source != nil {
		return NewTag(r.opts.Source())
	}
	return NewTag(nil)
}

// Unsanitize replaces every JSON string literal that starts with tag by its
// decoded content, unquoted.
func Unsanitize(text string, tag Tag) string {
	if tag == "" || !strings.Contains(text, string(tag)) {
		return text
	}
	re := regexp.MustCompile(`"` + regexp.QuoteMeta(string(tag)) + `((?:[^"\\]|\\.)*)"`)
	return re.ReplaceAllStringFunc(text, func(m string) string {
		inner := m[1+len(tag) : len(m)-1]
		var decoded string
		if err := json.Unmarshal([]byte(`"`+inner+`"`), &decoded); err != nil {
			return inner
		}
		return decoded
	})
}

func isContainer(v any) bool {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || hasTextForm(rv) {
		return false
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Array:
		return true
	case reflect.Slice:
		return rv.Type().Elem().Kind() != reflect.Uint8
	}
	return false
}

func fallbackText(v any) (out string) {
	defer func() {
		if recover() != nil {
			out = fmt.Sprintf("%T", v)
		}
	}()
	return Text(v)
}
