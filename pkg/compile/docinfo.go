package compile

import (
	"strings"
	"time"

	"github.com/yaklabco/goqbc/pkg/qbsource"
)

// Author is one entry of the ordered author sequence.
type Author struct {
	First string
	Last  string
}

// Copyright is one copyright line: a list of years and a holder.
type Copyright struct {
	Years  []string
	Holder string
}

// DocInfo is the document metadata block, built once per compilation
// unit. After Resolve it is immutable except for the derived
// close-of-document event appended at end of file.
type DocInfo struct {
	// Kind is the document kind: article, book, chapter or library.
	Kind string

	Title      string
	ID         string
	Authors    []Author
	Copyrights []Copyright
	Purpose    string
	License    string
	Lang       string

	// Version is the quickbook language version declared by the document.
	Version string

	// LastRevised is derived from the configured clock during Resolve.
	LastRevised string

	// Ignore skips validation and header output, used for included
	// fragments and body-only parses.
	Ignore bool
}

// DocKinds is the closed set of accepted document kinds.
var DocKinds = map[string]bool{
	"article": true,
	"book":    true,
	"chapter": true,
	"library": true,
}

// lastRevisedLayout is the timestamp layout written into the header.
const lastRevisedLayout = "2006/01/02 15:04:05"

// Resolve validates the metadata block against the selected encoding and
// fills encoder defaults. With Ignore set, validation is skipped entirely.
// Missing mandatory fields are counted as metadata errors on st; the
// remainder of the pipeline decides whether that is fatal.
func (d *DocInfo) Resolve(format Format, now time.Time, st *State, pos qbsource.Position) {
	if d.Ignore {
		return
	}

	if d.Kind == "" {
		d.Kind = "article"
	}
	if !DocKinds[d.Kind] {
		st.Errorf(pos, "document info: unknown document kind %q", d.Kind)
	}

	// Title and id are mandatory for boostbook output; HTML can fall
	// back to an untitled page.
	if d.Title == "" {
		if format == FormatBoostbook {
			st.Errorf(pos, "document info: no title given")
		} else {
			d.Title = "Untitled"
		}
	}
	if d.ID == "" {
		d.ID = DeriveID(d.Title)
	}
	if d.Lang == "" {
		d.Lang = "en"
	}
	d.LastRevised = now.Format(lastRevisedLayout)
}

// DeriveID builds a document id from a title: lowercased, words joined
// with underscores, everything else dropped.
func DeriveID(title string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	return b.String()
}
