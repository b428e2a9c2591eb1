package compile

import "fmt"

// Format selects the output encoding.
type Format string

// Output encodings supported by the compiler.
const (
	FormatBoostbook Format = "boostbook"
	FormatHTML      Format = "html"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	switch formatStr {
	case "boostbook", "":
		return FormatBoostbook, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: boostbook, html", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatBoostbook, FormatHTML:
		return true
	default:
		return false
	}
}

// Extension returns the default output file extension for the format.
func (f Format) Extension() string {
	if f == FormatHTML {
		return ".html"
	}
	return ".xml"
}
