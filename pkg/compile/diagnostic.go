package compile

import (
	"fmt"

	"github.com/yaklabco/goqbc/pkg/qbsource"
)

// Severity classifies a diagnostic.
type Severity string

// Diagnostic severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is one reported problem, carrying the source position it
// was detected at.
type Diagnostic struct {
	Severity Severity
	Pos      qbsource.Position
	Message  string
}

// Errorf records an error diagnostic at pos and increments the unit's
// error count. The count is monotonic: nothing ever decrements it.
func (s *State) Errorf(pos qbsource.Position, format string, args ...any) {
	s.ErrorCount++
	s.Diagnostics = append(s.Diagnostics, Diagnostic{
		Severity: SeverityError,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Notef records an informational diagnostic at pos, used to point at
// the invocation site when a macro or template expansion fails. It
// affects no counters.
func (s *State) Notef(pos qbsource.Position, format string, args ...any) {
	s.Diagnostics = append(s.Diagnostics, Diagnostic{
		Severity: SeverityInfo,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warnf records a structural warning at pos. Warnings never touch the
// error count and never change the success verdict by themselves.
func (s *State) Warnf(pos qbsource.Position, format string, args ...any) {
	s.WarningCount++
	s.Diagnostics = append(s.Diagnostics, Diagnostic{
		Severity: SeverityWarning,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}
