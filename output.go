package zenlog

import (
	"io"
	"strconv"
	"strings"
	"sync"

	"pkt.systems/zenlog/ansi"
	"pkt.systems/zenlog/config"
	"pkt.systems/zenlog/template"
	"pkt.systems/zenlog/wrap"
)

// minMessageSpace is the narrowest message area worth wrapping into. When
// the prompt leaves less, the body starts on its own line at full width.
const minMessageSpace = 8

// output is one registered destination.
type output struct {
	name   string
	path   string
	target io.Writer
	sink   *ObservedWriter

	// mu serialises writes and guards state and lastTimestamp.
	mu            sync.Mutex
	original      *config.Ruleset
	state         *outputState
	lastTimestamp string
}

func (o *output) close() error {
	return o.sink.Close()
}

func (o *output) write(e *entry) {
	o.mu.Lock()
	defer o.mu.Unlock()
	st := o.state
	if !st.accepts(e) {
		return
	}

	ts := st.timestamp(e)
	blank := !st.rules.Timestamps.AlwaysShow && ts == o.lastTimestamp
	o.lastTimestamp = ts

	lb := acquireLineBuffer()
	st.render(lb, e, ts, blank, st.width())
	_, _ = o.sink.Write(lb.buf)
	releaseLineBuffer(lb)
}

// accepts applies the level and message filters of the ruleset.
func (st *outputState) accepts(e *entry) bool {
	if e.level < st.minLevel {
		return false
	}
	f := st.rules.Filtering
	if len(f.ExcludeMessages) == 0 && len(f.IncludeOnlyMessages) == 0 {
		return true
	}
	msg := e.plainMessage()
	for _, s := range f.ExcludeMessages {
		if strings.Contains(msg, s) {
			return false
		}
	}
	if len(f.IncludeOnlyMessages) == 0 {
		return true
	}
	for _, s := range f.IncludeOnlyMessages {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

func (st *outputState) timestamp(e *entry) string {
	t := e.time
	if st.rules.Timestamps.UseUTC {
		t = t.UTC()
	} else {
		t = t.Local()
	}
	return t.Format(st.rules.Timestamps.Format)
}

func (st *outputState) context(e *entry, ts string, blank bool) template.Context {
	level := LevelString(e.level)
	return template.Context{
		Values: map[string]string{
			template.KeyTimestamp:  ts,
			template.KeyFilename:   e.site.File,
			template.KeyWrapfunc:   e.site.WrapFunc,
			template.KeyFunction:   e.site.Function,
			template.KeyLinenum:    strconv.Itoa(e.site.Line),
			template.KeyLevel:      level,
			template.KeyModule:     e.site.Module,
			template.KeyValueCount: strconv.Itoa(len(e.values)),
		},
		BlankTimestamp: blank,
	}
}

// render writes one complete entry: the prompt, the wrapped message with
// continuation lines indented to the prompt width, and the metadata strip.
func (st *outputState) render(lb *lineBuffer, e *entry, ts string, blank bool, width int) {
	if width < 1 {
		width = DefaultWidth
	}
	level := LevelString(e.level)
	prompt, promptLen := st.engine.ProcessWidth(st.format, st.context(e, ts, blank), level, width)
	if !st.color {
		prompt = ansi.Strip(ansi.ExpandCursorForward(prompt))
	}

	indent := promptLen
	space := width - promptLen
	if space < minMessageSpace {
		space, indent = width, 0
	}
	formatWidth := space
	if st.rules.Formatting.FixedFormatWidth > 0 {
		formatWidth = st.rules.Formatting.FixedFormatWidth
	}

	message := st.renderer.FormatAll(e.values, e.sep, formatWidth)
	if fields := fieldMap(e.fields); fields != nil {
		message += "\n" + st.renderer.Format(fields, formatWidth)
	}
	if !st.color {
		message = ansi.Strip(message)
	}
	lines := wrap.Wrap(message, space)
	if len(lines) == 0 {
		lines = []string{""}
	}
	meta := st.metadata(e, ts, level)

	lb.writeString(prompt)
	if indent == 0 && promptLen > 0 {
		lb.writeByte('\n')
	}
	for i, line := range lines {
		if i > 0 && indent > 0 {
			if st.color {
				lb.writeString(ansi.CursorForward(indent))
			} else {
				lb.writeSpaces(indent)
			}
		}
		lb.writeString(line)
		if st.color && ansi.HasEscape(line) {
			lb.writeString(ansi.Reset)
		}
		if i == len(lines)-1 && meta != "" {
			st.writeMetadata(lb, meta, space-ansi.VisibleLength(line), width)
		}
		lb.writeByte('\n')
	}
}

// metadata builds the plain strip text, or "" when it is disabled or empty.
func (st *outputState) metadata(e *entry, ts, level string) string {
	m := st.rules.Metadata
	if !m.ShowMetadata {
		return ""
	}
	var items []string
	add := func(on bool, tag, value string) {
		if on {
			items = append(items, "["+tag+": "+value+"]")
		}
	}
	add(m.IncludeTimestamp, "tms", ts)
	add(m.IncludeLevelName, "lvl", level)
	add(m.IncludeFileName, "fl", e.site.File)
	add(m.IncludeWrappingFunction, "wfc", e.site.WrapFunc)
	add(m.IncludeFunction, "fnc", e.site.Function)
	add(m.IncludeLineNumber, "ln", strconv.Itoa(e.site.Line))
	add(m.IncludeValueCount, "vlc", strconv.Itoa(len(e.values)))
	return strings.Join(items, " ")
}

// writeMetadata right-justifies the strip on the current line when it fits
// in the columns left there, otherwise on a line of its own.
func (st *outputState) writeMetadata(lb *lineBuffer, meta string, remaining, width int) {
	n := ansi.VisibleLength(meta)
	if remaining >= n+1 {
		lb.writeSpaces(remaining - n)
	} else {
		lb.writeByte('\n')
		lb.writeSpaces(width - n)
	}
	if st.color {
		lb.writeString(ansi.Reset)
		lb.writeString(st.palette.Metadata)
		lb.writeString(meta)
		lb.writeString(ansi.Reset)
		return
	}
	lb.writeString(meta)
}
