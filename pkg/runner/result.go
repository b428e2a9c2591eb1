package runner

import (
	"fmt"

	"github.com/yaklabco/goqbc/pkg/compile"
)

// Result is the outcome of one compilation.
type Result struct {
	// Input is the source file that was compiled.
	Input string

	// OutputPath is where the output was (or would have been) written.
	OutputPath string

	// Output is the generated markup. Nil when the compilation failed,
	// so a failed run can never leave plausible-looking output behind.
	Output []byte

	// Written reports whether OutputPath was actually written.
	Written bool

	// Diagnostics holds everything reported during the unit, in order.
	Diagnostics []compile.Diagnostic

	// ErrorCount and WarningCount are the unit's final tallies.
	ErrorCount   int
	WarningCount int

	// SectionLevel is the section nesting depth left at end of input.
	// Anything above zero produced a missing [endsect] warning.
	SectionLevel int
}

// Summary returns the trailing error-count line for a failed run, or
// an empty string on success.
func (r *Result) Summary() string {
	if r.OK() {
		return ""
	}
	return fmt.Sprintf("error count: %d", r.ErrorCount)
}

// OK reports whether the compilation succeeded. Warnings alone never
// flip the verdict.
func (r *Result) OK() bool {
	return r != nil && r.ErrorCount == 0
}
