// Package compile holds the mutable state threaded through one
// compilation unit and all of its includes, plus the document metadata
// model and its resolver.
package compile

import "time"

// MaxIncludeDepth bounds recursive includes. The depth counter exists so
// the state shape can host cycle detection; the bound keeps a runaway
// include chain from recursing forever in the meantime.
const MaxIncludeDepth = 64

// Options is the immutable configuration for one compilation unit,
// constructed once at startup and passed by reference into the pipeline.
// Nothing inside the core reads ambient global state.
type Options struct {
	// Format selects the output encoding.
	Format Format

	// IncludePaths is the ordered include search path list.
	IncludePaths []string

	// Defines holds command-line macro definitions of the form NAME=VALUE,
	// applied before any file is parsed.
	Defines []string

	// Now is the clock used for metadata defaults (last-revised).
	Now time.Time

	// Debug enables developer logging; the driver also pins Now when set.
	Debug bool
}

// State is the mutable context for one compilation unit. Exactly one
// instance exists per top-level invocation; it is passed by reference
// into every grammar and action call, including recursive parses
// triggered by include directives, so error counts and macro/template
// definitions are compilation-unit global rather than per-file.
//
// Only the semantic action layer mutates it; the grammar engine and the
// encoders never touch it directly.
type State struct {
	// SectionLevel is the current section nesting depth, floored at 0.
	SectionLevel int

	// ErrorCount is monotonic non-decreasing across the whole unit.
	ErrorCount int

	// WarningCount counts structural warnings.
	WarningCount int

	// Macros and Templates are shared across nested includes.
	Macros    MacroTable
	Templates TemplateTable

	// IncludeStack holds the chain of files currently being included,
	// innermost last, for depth and cycle diagnostics.
	IncludeStack []string

	// Diagnostics collects everything reported during the unit, in order.
	Diagnostics []Diagnostic
}

// NewState creates the state for a fresh compilation unit.
func NewState() *State {
	return &State{
		Macros:    make(MacroTable),
		Templates: make(TemplateTable),
	}
}

// IncludeDepth returns the current include nesting depth.
func (s *State) IncludeDepth() int {
	return len(s.IncludeStack)
}

// PushInclude records entry into an included file.
func (s *State) PushInclude(path string) {
	s.IncludeStack = append(s.IncludeStack, path)
}

// PopInclude records return from an included file.
func (s *State) PopInclude() {
	if len(s.IncludeStack) > 0 {
		s.IncludeStack = s.IncludeStack[:len(s.IncludeStack)-1]
	}
}
