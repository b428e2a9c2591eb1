package pretty

import "fmt"

// FormatRunSummary formats the trailing line for a finished compile.
// Failed runs report the error tally; clean runs stay quiet unless
// warnings were raised.
func (s *Styles) FormatRunSummary(errorCount, warningCount int) string {
	switch {
	case errorCount > 0:
		return s.Failure.Render(fmt.Sprintf("error count: %d", errorCount)) + "\n"
	case warningCount > 0:
		word := "warnings"
		if warningCount == 1 {
			word = "warning"
		}
		return s.Warning.Render(fmt.Sprintf("compiled with %d %s", warningCount, word)) + "\n"
	default:
		return ""
	}
}
