package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for the output writer (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for diagnostics (typically os.Stderr,
	// keeping stdout free for compiled output when requested).
	Writer io.Writer

	// Style selects the diagnostic line layout.
	Style Style

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never".
	Color string

	// ShowContext includes the offending source line with a caret
	// marker under each diagnostic. Only the plain style supports it.
	ShowContext bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stderr,
		Style:       StylePlain,
		Color:       "auto",
		ShowContext: true,
	}
}
