// Package parser implements the quickbook grammar engine and its
// semantic action layer.
//
// The grammar is ordered-choice with backtracking: every alternative
// marks the cursor and the event sink before matching, and a failed
// alternative rewinds both, so no partial side effects survive. All
// state mutation and event emission happens through the actions layer
// on confirmed matches only.
package parser

import (
	"os"
	"path/filepath"

	"github.com/yaklabco/goqbc/pkg/compile"
	"github.com/yaklabco/goqbc/pkg/event"
	"github.com/yaklabco/goqbc/pkg/qbsource"
)

// maxExpansionDepth bounds macro/template expansion recursion.
const maxExpansionDepth = 64

// Parser drives the grammar over one compilation unit. The same parser
// instance is reused for every recursive include, so tables, counters
// and the event stream stay compilation-unit global.
type Parser struct {
	*actions

	st   *compile.State
	opts compile.Options

	// expansionDepth guards against runaway macro/template recursion.
	expansionDepth int

	// bracketDepth counts enclosing bracketed block constructs
	// (admonitions, blurbs) so nested block content stops at their ']'.
	bracketDepth int
}

// New creates a parser writing events to sink and diagnostics to st.
func New(st *compile.State, opts compile.Options, sink *event.Sink) *Parser {
	return &Parser{
		actions: &actions{st: st, opts: opts, sink: sink},
		st:      st,
		opts:    opts,
	}
}

// DefinePresetMacros applies command-line NAME=VALUE definitions using
// the same macro-definition action the in-document grammar uses. They
// run before any file is parsed.
func (p *Parser) DefinePresetMacros() {
	for _, def := range p.opts.Defines {
		p.parsePresetMacro(def)
	}
}

// parsePresetMacro parses one NAME=VALUE definition.
func (p *Parser) parsePresetMacro(def string) {
	f := qbsource.NewFile("command line parameter", []byte(def))
	cur := qbsource.NewCursor(f)

	name := readMacroName(&cur)
	if name == "" || !cur.ConsumePrefix("=") {
		p.st.Errorf(cur.Position(), "invalid macro definition %q", def)
		return
	}
	p.defineMacro(name, string(cur.Rest()), cur.Position())
}

// phase is the explicit two-phase state machine for one unit.
type phase int

const (
	phaseAwaitingDocInfo phase = iota
	phaseBodyPending
	phaseDone
	phaseFailed
)

// ParseUnit runs the two-phase grammar over one source.
//
// The metadata rule is attempted first. If it succeeds, or the caller
// asked for metadata to be ignored (included fragments), the body rule
// runs from whichever of {metadata end, original start} applies. The
// body rule must consume the entire remaining input; anything less is a
// hard syntax error at the first unconsumed position.
func (p *Parser) ParseUnit(f *qbsource.File, ignoreDocInfo bool) bool {
	cur := qbsource.NewCursor(f)
	start := cur

	var info compile.DocInfo
	ph := phaseAwaitingDocInfo

	for {
		switch ph {
		case phaseAwaitingDocInfo:
			if p.parseDocInfo(&cur, &info) {
				ph = phaseBodyPending
				break
			}
			if ignoreDocInfo {
				// Explicit edge back to the original start cursor.
				cur = start
				ph = phaseBodyPending
				break
			}
			pos := cur.Position()
			p.st.Errorf(pos, "document info error near column %d", pos.Column)
			ph = phaseFailed

		case phaseBodyPending:
			info.Ignore = ignoreDocInfo
			info.Resolve(p.opts.Format, p.opts.Now, p.st, start.Position())
			if !ignoreDocInfo {
				p.beginDocument(&info)
			}

			ok := p.parseBlocks(&cur)
			if !ok || !cur.AtEnd() {
				pos := cur.Position()
				p.st.Errorf(pos, "syntax error near column %d", pos.Column)
				ph = phaseFailed
				break
			}
			if !ignoreDocInfo {
				p.endDocument()
			}
			ph = phaseDone

		case phaseDone:
			return true

		case phaseFailed:
			return false
		}
	}
}

// include resolves, loads and recursively parses an included file,
// sharing this parser's state so macros, templates and error counts
// propagate across the include boundary.
func (p *Parser) include(path string, from *qbsource.File, pos qbsource.Position) {
	if p.st.IncludeDepth() >= compile.MaxIncludeDepth {
		p.st.Errorf(pos, "include depth limit exceeded at %q", path)
		return
	}

	resolved, ok := p.resolveInclude(path, from)
	if !ok {
		p.st.Errorf(pos, "unable to open included file %q", path)
		return
	}

	f, err := qbsource.Load(resolved)
	if err != nil {
		p.st.Errorf(pos, "unable to read included file %q: %v", resolved, err)
		return
	}

	p.st.PushInclude(resolved)
	p.ParseUnit(f, true)
	p.st.PopInclude()
}

// resolveInclude searches for an include target: first relative to the
// including file's directory, then along the -I paths in order.
func (p *Parser) resolveInclude(path string, from *qbsource.File) (string, bool) {
	if filepath.IsAbs(path) {
		return path, fileExists(path)
	}

	candidate := filepath.Join(filepath.Dir(from.Name), path)
	if fileExists(candidate) {
		return candidate, true
	}
	for _, dir := range p.opts.IncludePaths {
		candidate = filepath.Join(dir, path)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// readMacroName consumes a macro/template identifier: letters, digits
// and the punctuation quickbook allows in names.
func readMacroName(cur *qbsource.Cursor) string {
	mark := cur.Mark()
	for !cur.AtEnd() && isNameChar(cur.Peek()) {
		cur.Advance(1)
	}
	return cur.Text(mark)
}

func isNameChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_' || b == '-' || b == '.':
		return true
	default:
		return false
	}
}
