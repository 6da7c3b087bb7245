// Package config loads the zenlog ruleset: timestamp, formatting, filtering,
// output, metadata and log line settings. Rulesets are layered from embedded
// defaults, an optional YAML or TOML file and ZENLOG_ environment variables,
// then resolved once; a loaded Ruleset is treated as immutable.
package config

import (
	"slices"

	"pkt.systems/zenlog/template"
)

// Ruleset is the resolved configuration of one logger output.
type Ruleset struct {
	Timestamps Timestamps `koanf:"timestamps"`
	Formatting Formatting `koanf:"formatting"`
	Filtering  Filtering  `koanf:"filtering"`
	Output     Output     `koanf:"output"`
	Metadata   Metadata   `koanf:"metadata"`
	LogLine    LogLine    `koanf:"log_line"`
}

// Timestamps controls the timestamp key.
type Timestamps struct {
	// AlwaysShow disables blanking of a timestamp equal to the previous one.
	AlwaysShow bool `koanf:"always_show"`
	UseUTC     bool `koanf:"use_utc"`
	// Format is a Go time layout.
	Format string `koanf:"format"`
}

// Formatting controls colour and value rendering.
type Formatting struct {
	ANSI         bool `koanf:"ansi"`
	Highlighting bool `koanf:"highlighting"`
	PrettyPrint  bool `koanf:"pretty_print"`
	// FixedFormatWidth pins the width values are reflowed to. Zero uses the
	// message area.
	FixedFormatWidth int    `koanf:"fixed_format_width"`
	Palette          string `koanf:"palette"`
	Style            string `koanf:"style"`
}

// Filtering decides which messages are written.
type Filtering struct {
	MinLevel            string   `koanf:"min_level"`
	ExcludeMessages     []string `koanf:"exclude_messages"`
	IncludeOnlyMessages []string `koanf:"include_only_messages"`
}

// Output names a file every logger built from the ruleset also writes to.
type Output struct {
	DefaultFileStream string `koanf:"default_file_stream"`
}

// Metadata controls the dim strip written after the prompt.
type Metadata struct {
	ShowMetadata            bool `koanf:"show_metadata"`
	IncludeTimestamp        bool `koanf:"include_timestamp"`
	IncludeLevelName        bool `koanf:"include_level_name"`
	IncludeFileName         bool `koanf:"include_file_name"`
	IncludeWrappingFunction bool `koanf:"include_wrapping_function"`
	IncludeFunction         bool `koanf:"include_function"`
	IncludeLineNumber       bool `koanf:"include_line_number"`
	IncludeValueCount       bool `koanf:"include_value_count"`
}

// LogLine holds the prompt format. Format is either a built-in name or an
// inline segment list; Template is its decoded form.
type LogLine struct {
	Format   any             `koanf:"format"`
	Template template.Format `koanf:"-"`
}

// Clone returns a deep copy of r that can be modified independently.
func (r *Ruleset) Clone() *Ruleset {
	if r == nil {
		return nil
	}
	c := *r
	c.Filtering.ExcludeMessages = slices.Clone(r.Filtering.ExcludeMessages)
	c.Filtering.IncludeOnlyMessages = slices.Clone(r.Filtering.IncludeOnlyMessages)
	c.LogLine.Template = cloneFormat(r.LogLine.Template)
	return &c
}

func cloneFormat(f template.Format) template.Format {
	if f == nil {
		return nil
	}
	out := make(template.Format, len(f))
	for i, seg := range f {
		seg.Parameters = slices.Clone(seg.Parameters)
		out[i] = seg
	}
	return out
}
