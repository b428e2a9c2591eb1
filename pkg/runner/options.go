// Package runner orchestrates one compilation from source file to
// written output: load, parse, encode, reflow, write.
package runner

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/goqbc/pkg/compile"
)

// Layout defaults applied when the caller leaves them zero.
const (
	DefaultIndent    = 2
	DefaultLineWidth = 80
)

// debugClock is the pinned timestamp used for metadata defaults in
// debug mode, so debug output is byte-stable across runs.
var debugClock = time.Date(2000, 12, 20, 12, 0, 0, 0, time.UTC)

// Options controls one compilation.
type Options struct {
	// Input is the source file to compile.
	Input string

	// Output is the file to write. Empty derives it from Input by
	// swapping the extension for the format's default.
	Output string

	// Format selects the output encoding. Zero means BoostBook.
	Format compile.Format

	// PrettyPrint enables the layout pass over the generated markup.
	PrettyPrint bool

	// Indent and LineWidth configure the layout pass. Zero values take
	// the defaults above.
	Indent    int
	LineWidth int

	// IncludePaths is the ordered search path for include directives,
	// tried after the including file's own directory.
	IncludePaths []string

	// Defines holds NAME=VALUE macro definitions applied before the
	// input is parsed.
	Defines []string

	// Now overrides the clock used for metadata defaults. Zero means
	// the wall clock, unless Debug pins it.
	Now time.Time

	// Debug enables developer logging and pins the clock.
	Debug bool
}

// effectiveFormat returns the output format, defaulting to BoostBook.
func (o Options) effectiveFormat() compile.Format {
	if o.Format.IsValid() {
		return o.Format
	}
	return compile.FormatBoostbook
}

// outputPath returns the file the compiled output goes to.
func (o Options) outputPath() string {
	if o.Output != "" {
		return o.Output
	}
	base := strings.TrimSuffix(o.Input, filepath.Ext(o.Input))
	return base + o.effectiveFormat().Extension()
}

// clock returns the timestamp used for metadata defaults.
func (o Options) clock() time.Time {
	if o.Debug {
		return debugClock
	}
	if !o.Now.IsZero() {
		return o.Now
	}
	return time.Now()
}

// effectiveIndent returns the layout indent, defaulting if zero.
func (o Options) effectiveIndent() int {
	if o.Indent > 0 {
		return o.Indent
	}
	return DefaultIndent
}

// effectiveLineWidth returns the wrap column, defaulting if zero.
func (o Options) effectiveLineWidth() int {
	if o.LineWidth > 0 {
		return o.LineWidth
	}
	return DefaultLineWidth
}
