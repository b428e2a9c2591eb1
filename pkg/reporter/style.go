package reporter

import "fmt"

// Style selects the diagnostic line layout.
type Style string

// Diagnostic styles.
const (
	// StylePlain is file:line:col, the layout most Unix tools emit.
	StylePlain Style = "plain"

	// StyleMS is file(line), the layout Visual Studio build logs parse.
	StyleMS Style = "ms"
)

// ParseStyle parses a style string, returning an error for unknown styles.
func ParseStyle(styleStr string) (Style, error) {
	switch styleStr {
	case "plain", "":
		return StylePlain, nil
	case "ms":
		return StyleMS, nil
	default:
		return "", fmt.Errorf("unknown diagnostic style %q; valid styles: plain, ms", styleStr)
	}
}

// String returns the string representation of the style.
func (s Style) String() string {
	return string(s)
}

// IsValid returns true if the style is known.
func (s Style) IsValid() bool {
	return s == StylePlain || s == StyleMS
}
