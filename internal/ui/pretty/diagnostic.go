package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/goqbc/pkg/compile"
)

// FormatDiagnostic formats a single diagnostic in the default layout:
// file:line:col: severity: message.
func (s *Styles) FormatDiagnostic(diag *compile.Diagnostic, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.Pos.File),
		diag.Pos.Line,
		diag.Pos.Column,
	)

	builder.WriteString(fmt.Sprintf("%s: %s: %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
	))

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.Pos.Column))
	}

	return builder.String()
}

// FormatDiagnosticMS formats a diagnostic in Visual Studio layout:
// file(line): severity: message. Build systems that parse MSVC output
// pick these up as clickable locations.
func (s *Styles) FormatDiagnosticMS(diag *compile.Diagnostic) string {
	return fmt.Sprintf("%s(%d): %s: %s\n",
		s.FilePath.Render(diag.Pos.File),
		diag.Pos.Line,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
	)
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev compile.Severity) string {
	switch sev {
	case compile.SeverityError:
		return s.Error.Render("error")
	case compile.SeverityWarning:
		return s.Warning.Render("warning")
	case compile.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "    "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}
