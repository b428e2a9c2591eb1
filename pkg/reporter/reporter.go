// Package reporter formats compiler diagnostics for the terminal.
package reporter

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/yaklabco/goqbc/internal/ui/pretty"
	"github.com/yaklabco/goqbc/pkg/qbsource"
	"github.com/yaklabco/goqbc/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// Reporter writes styled diagnostic lines and the run summary.
type Reporter struct {
	opts   Options
	styles *pretty.Styles
	width  int

	// sources caches loaded files for source-line context, keyed by
	// path. A load failure caches nil so it is not retried.
	sources map[string]*qbsource.File
}

// New creates a Reporter for the given options.
func New(opts Options) (*Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Style == "" {
		opts.Style = StylePlain
	}
	if !opts.Style.IsValid() {
		return nil, fmt.Errorf("unsupported diagnostic style: %s", opts.Style)
	}

	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &Reporter{
		opts:    opts,
		styles:  pretty.NewStyles(colorEnabled),
		width:   terminalWidth(opts.Writer),
		sources: make(map[string]*qbsource.File),
	}, nil
}

// terminalWidth returns the width of the terminal behind w, or the
// default for non-terminal writers.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultTermWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}

// Report writes every diagnostic from the result followed by the run
// summary line. It returns the number of diagnostics written.
func (r *Reporter) Report(result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	for i := range result.Diagnostics {
		diag := &result.Diagnostics[i]
		if r.opts.Style == StyleMS {
			fmt.Fprint(bw, r.styles.FormatDiagnosticMS(diag))
			continue
		}

		var sourceLine string
		if r.opts.ShowContext {
			sourceLine = r.sourceLine(diag.Pos)
		}
		fmt.Fprint(bw, r.styles.FormatDiagnostic(diag, sourceLine))
	}

	fmt.Fprint(bw, r.styles.FormatRunSummary(result.ErrorCount, result.WarningCount))
	return len(result.Diagnostics), nil
}

// sourceLine returns the text of the line a diagnostic points at, or
// an empty string when the file cannot be read back.
func (r *Reporter) sourceLine(pos qbsource.Position) string {
	if pos.File == "" || pos.Line <= 0 {
		return ""
	}

	f, seen := r.sources[pos.File]
	if !seen {
		loaded, err := qbsource.Load(pos.File)
		if err != nil {
			loaded = nil
		}
		r.sources[pos.File] = loaded
		f = loaded
	}
	if f == nil {
		return ""
	}

	line := string(f.LineContent(pos.Line))
	if limit := r.width - 8; limit > 0 && len(line) > limit {
		line = line[:limit] + "..."
	}
	return line
}
