package zenlog

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"pkt.systems/zenlog/ansi"
	"pkt.systems/zenlog/config"
	"pkt.systems/zenlog/render"
	"pkt.systems/zenlog/template"
)

// ErrOutputNotFound is returned when an output to remove or modify is not
// registered.
var ErrOutputNotFound = errors.New("zenlog: output not found")

// outputSettings are the logger-wide knobs every output is compiled with.
type outputSettings struct {
	noColor    bool
	forceColor bool
	palette    *ansi.Palette
	width      int
	strict     bool
	diag       zerolog.Logger
	onFailure  func(WriteFailure)
}

// Outputs is the set of destinations a logger writes to. Each output
// carries its own ruleset, so one stream can show colour and metadata while
// a file next to it stays plain. Outputs is safe for concurrent use and is
// shared by every logger derived through With or LogLevel.
type Outputs struct {
	mu       sync.RWMutex
	list     []*output
	base     *config.Ruleset
	settings outputSettings
}

func newOutputs(base *config.Ruleset, settings outputSettings) *Outputs {
	return &Outputs{base: base, settings: settings}
}

// AddStream registers w with rules, or with the logger's ruleset when rules
// is nil. Adding a writer that is already registered is a no-op.
func (o *Outputs) AddStream(w io.Writer, rules *config.Ruleset) error {
	if w == nil {
		return errors.New("zenlog: nil stream")
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.findStreamLocked(w) >= 0 {
		return nil
	}
	out, err := o.newOutputLocked(w, "stream", "", nil, rules)
	if err != nil {
		return err
	}
	o.list = append(o.list, out)
	return nil
}

// AddFile registers a file output. Entries are appended unless reset is
// set, in which case the file is truncated first. File outputs never carry
// escape sequences. Adding a path that is already registered is a no-op.
func (o *Outputs) AddFile(path string, reset bool, rules *config.Ruleset) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("zenlog: resolve log file %q: %w", path, err)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.findFileLocked(abs) >= 0 {
		return nil
	}
	file, err := openLogFile(abs, reset)
	if err != nil {
		return err
	}
	out, err := o.newOutputLocked(newOwnedOutput(file, file), abs, abs, file, rules)
	if err != nil {
		_ = file.Close()
		return err
	}
	o.list = append(o.list, out)
	return nil
}

// Remove unregisters the stream w. The writer is not closed.
func (o *Outputs) Remove(w io.Writer) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	i := o.findStreamLocked(w)
	if i < 0 {
		return false
	}
	o.list = without(o.list, i)
	return true
}

// RemoveFile unregisters and closes the file output for path.
func (o *Outputs) RemoveFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("zenlog: resolve log file %q: %w", path, err)
	}
	o.mu.Lock()
	i := o.findFileLocked(abs)
	if i < 0 {
		o.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrOutputNotFound, abs)
	}
	out := o.list[i]
	o.list = without(o.list, i)
	o.mu.Unlock()
	return out.close()
}

// Modify replaces the ruleset of the stream w. fn receives a copy of the
// output's current ruleset, or of the ruleset it was added with when
// useOriginal is set. The change is compiled before it is swapped in, so an
// invalid ruleset leaves the output untouched.
func (o *Outputs) Modify(w io.Writer, useOriginal bool, fn func(*config.Ruleset)) error {
	o.mu.RLock()
	i := o.findStreamLocked(w)
	var out *output
	if i >= 0 {
		out = o.list[i]
	}
	o.mu.RUnlock()
	if out == nil {
		return ErrOutputNotFound
	}
	return o.modify(out, useOriginal, fn)
}

// ModifyFile is Modify for the file output registered for path.
func (o *Outputs) ModifyFile(path string, useOriginal bool, fn func(*config.Ruleset)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("zenlog: resolve log file %q: %w", path, err)
	}
	o.mu.RLock()
	i := o.findFileLocked(abs)
	var out *output
	if i >= 0 {
		out = o.list[i]
	}
	o.mu.RUnlock()
	if out == nil {
		return fmt.Errorf("%w: %s", ErrOutputNotFound, abs)
	}
	return o.modify(out, useOriginal, fn)
}

func (o *Outputs) modify(out *output, useOriginal bool, fn func(*config.Ruleset)) error {
	out.mu.Lock()
	defer out.mu.Unlock()
	rules := out.state.rules.Clone()
	if useOriginal {
		rules = out.original.Clone()
	}
	if fn != nil {
		fn(rules)
	}
	st, err := compileOutput(rules, out.target, out.path != "", o.settings)
	if err != nil {
		return err
	}
	out.state = st
	return nil
}

// Reset restores every output to the ruleset it was added with.
func (o *Outputs) Reset() {
	o.mu.RLock()
	list := slices.Clone(o.list)
	o.mu.RUnlock()
	for _, out := range list {
		out.mu.Lock()
		if st, err := compileOutput(out.original.Clone(), out.target, out.path != "", o.settings); err == nil {
			out.state = st
		}
		out.mu.Unlock()
	}
}

// Len reports the number of registered outputs.
func (o *Outputs) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.list)
}

// OutputStats reports the write counters of one output.
type OutputStats struct {
	Name string
	ObservedWriterStats
}

// Stats returns the counters of every output in registration order.
func (o *Outputs) Stats() []OutputStats {
	o.mu.RLock()
	defer o.mu.RUnlock()
	stats := make([]OutputStats, 0, len(o.list))
	for _, out := range o.list {
		stats = append(stats, OutputStats{Name: out.name, ObservedWriterStats: out.sink.Stats()})
	}
	return stats
}

// Close closes and unregisters every file output. Streams stay registered.
func (o *Outputs) Close() error {
	o.mu.Lock()
	var owned, kept []*output
	for _, out := range o.list {
		if out.path != "" {
			owned = append(owned, out)
			continue
		}
		kept = append(kept, out)
	}
	o.list = kept
	o.mu.Unlock()

	var errs []error
	for _, out := range owned {
		if err := out.close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// without returns a new slice so snapshots taken by emit stay intact.
func without(list []*output, i int) []*output {
	return slices.Concat(list[:i], list[i+1:])
}

func (o *Outputs) emit(e *entry) {
	o.mu.RLock()
	list := o.list
	o.mu.RUnlock()
	for _, out := range list {
		out.write(e)
	}
}

func (o *Outputs) findStreamLocked(w io.Writer) int {
	return slices.IndexFunc(o.list, func(out *output) bool {
		return out.path == "" && sameWriter(out.target, w)
	})
}

// sameWriter compares writers by identity. Writers whose dynamic type is not
// comparable never match.
func sameWriter(a, b io.Writer) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

func (o *Outputs) findFileLocked(abs string) int {
	return slices.IndexFunc(o.list, func(out *output) bool {
		return out.path == abs
	})
}

func (o *Outputs) newOutputLocked(w io.Writer, name, path string, target io.Writer, rules *config.Ruleset) (*output, error) {
	if rules == nil {
		rules = o.base
	}
	rules = rules.Clone()
	if target == nil {
		target = w
	}
	onFailure := func(f WriteFailure) {
		o.settings.diag.Warn().Err(f.Err).
			Str("component", "output").
			Str("output", f.Output).
			Int("written", f.Written).
			Int("attempted", f.Attempted).
			Msg("log entry write failed")
		if o.settings.onFailure != nil {
			o.settings.onFailure(f)
		}
	}
	sink := newObservedWriter(w, name, onFailure)
	st, err := compileOutput(rules, target, path != "", o.settings)
	if err != nil {
		return nil, err
	}
	return &output{
		name:     name,
		path:     path,
		target:   target,
		sink:     sink,
		original: rules,
		state:    st,
	}, nil
}

// outputState is everything a ruleset compiles to. It is replaced as a
// whole on Modify and Reset.
type outputState struct {
	rules    *config.Ruleset
	format   template.Format
	color    bool
	palette  ansi.Palette
	minLevel Level
	width    func() int
	engine   *template.Engine
	renderer *render.Renderer
}

func compileOutput(rules *config.Ruleset, target io.Writer, isFile bool, s outputSettings) (*outputState, error) {
	format, err := config.ResolveFormat(rules.LogLine.Format)
	if err != nil {
		return nil, err
	}
	rules.LogLine.Template = format

	minLevel, ok := ParseLevel(rules.Filtering.MinLevel)
	if !ok {
		return nil, &config.Error{
			Code:    config.CodeInvalid,
			Message: fmt.Sprintf("filtering.min_level %q is not a level", rules.Filtering.MinLevel),
		}
	}

	palette, err := resolvePaletteOption(s.palette, rules.Formatting.Palette)
	if err != nil {
		return nil, err
	}

	color := !isFile && rules.Formatting.ANSI && !s.noColor && (s.forceColor || isTerminal(target))

	width := func() int { return columnsFromEnv() }
	switch {
	case s.width > 0:
		pinned := s.width
		width = func() int { return pinned }
	case !isFile:
		width = func() int { return terminalWidth(target) }
	}

	return &outputState{
		rules:    rules,
		format:   format,
		color:    color,
		palette:  *palette,
		minLevel: minLevel,
		width:    width,
		engine: template.New(
			template.WithLogger(s.diag),
			template.WithPalette(palette),
			template.WithStrictAccounting(s.strict),
		),
		renderer: render.New(render.Options{
			PrettyPrint: rules.Formatting.PrettyPrint,
			Highlight:   color && rules.Formatting.Highlighting,
			Style:       rules.Formatting.Style,
		}),
	}, nil
}
