// Package encoder renders the output event stream into target markup.
// The set of encodings is closed and small, so selection is an explicit
// tag dispatch rather than open-ended plumbing.
package encoder

import (
	"errors"
	"strings"

	"github.com/yaklabco/goqbc/pkg/compile"
	"github.com/yaklabco/goqbc/pkg/event"
)

// ErrUnbalanced reports an event stream whose nesting is broken. The
// sink makes this impossible for streams produced by a successful
// parse, so seeing it indicates an implementation bug, not a bad
// document.
var ErrUnbalanced = errors.New("encoder: unbalanced event stream")

// Encoder renders a well-formed event stream into markup text. Both
// variants are total over any balanced stream: unknown element names
// get a generic rendering instead of failing.
type Encoder interface {
	Format() compile.Format
	Encode(events []event.Event) ([]byte, error)
}

// New returns the encoder for the selected format.
func New(format compile.Format) Encoder {
	if format == compile.FormatHTML {
		return &htmlEncoder{}
	}
	return &boostbookEncoder{}
}

func escapeText(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func escapeAttr(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
