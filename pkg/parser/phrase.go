package parser

import (
	"strings"

	"github.com/yaklabco/goqbc/pkg/event"
	"github.com/yaklabco/goqbc/pkg/qbsource"
)

// Inline span markers and the internal element they open.
var spanMarkers = map[byte]string{
	'*': "bold",
	'\'': "italic",
	'_': "underline",
	'^': "teletype",
}

// parsePhrase consumes inline content. It stops, without consuming, at:
//   - an unescaped ']' (end of the enclosing bracket construct)
//   - a newline, when stopAtNewline is set (paragraph segments)
//   - a '[' opening a block-only construct, when allowBlockStop is set
//   - end of input
//
// Structural problems inside the phrase (undefined macro references,
// unterminated constructs) are reported and locally recovered from, so a
// single pass accumulates every error in the unit.
func (p *Parser) parsePhrase(cur *qbsource.Cursor, stopAtNewline, allowBlockStop bool) {
	for !cur.AtEnd() {
		b := cur.Peek()
		switch {
		case b == ']':
			return
		case b == '\n' || b == '\r':
			if stopAtNewline {
				return
			}
			consumeNewline(cur)
			p.text("\n")
		case b == '\\':
			cur.Advance(1)
			if c := cur.Next(); c != 0 {
				p.text(string(c))
			} else {
				p.text("\\")
			}
		case b == '`':
			p.parseInlineCode(cur)
		case b == '[':
			if !p.parseInline(cur, allowBlockStop) {
				return
			}
		case b == ' ' || b == '\t':
			mark := cur.Mark()
			skipSpaces(cur)
			p.text(cur.Text(mark))
		default:
			p.parseWord(cur)
		}
	}
}

// parseWord consumes a run of plain characters. Words are looked up in
// the macro table at match time; a hit re-invokes the grammar over the
// expansion text, so forward references stay unresolved by design.
func (p *Parser) parseWord(cur *qbsource.Cursor) {
	pos := cur.Position()
	mark := cur.Mark()
	for !cur.AtEnd() && !isPhraseSpecial(cur.Peek()) {
		cur.Advance(1)
	}
	word := cur.Text(mark)
	if expansion, ok := p.st.Macros.Lookup(word); ok {
		p.expand(word, expansion, pos)
		return
	}
	p.text(word)
}

func isPhraseSpecial(b byte) bool {
	switch b {
	case '\\', '`', '[', ']', '\n', '\r', ' ', '\t':
		return true
	default:
		return false
	}
}

// parseInlineCode consumes a backtick-delimited inline code span. An
// unterminated backtick on the same line is taken literally.
func (p *Parser) parseInlineCode(cur *qbsource.Cursor) {
	mark := cur.Mark()
	cur.Advance(1)
	start := cur.Mark()
	for !cur.AtEnd() {
		switch cur.Peek() {
		case '`':
			content := cur.Text(start)
			cur.Advance(1)
			p.start("inlinecode")
			p.text(content)
			p.end()
			return
		case '\n', '\r':
			cur.Rewind(mark)
			cur.Advance(1)
			p.text("`")
			return
		default:
			cur.Advance(1)
		}
	}
	cur.Rewind(mark)
	cur.Advance(1)
	p.text("`")
}

// parseInline handles a '[' in phrase context. It returns false when the
// bracket opens a block-only construct and allowBlockStop is set, leaving
// the cursor on the '[' for the block grammar to claim.
func (p *Parser) parseInline(cur *qbsource.Cursor, allowBlockStop bool) bool {
	pos := cur.Position()
	mark := cur.Mark()
	cur.Advance(1) // '['

	if marker, ok := spanMarkers[cur.Peek()]; ok {
		markerChar := cur.Peek()
		cur.Advance(1)
		p.start(marker)
		p.parsePhrase(cur, false, false)
		p.end()
		p.expectClose(cur, pos, "["+string(markerChar))
		return true
	}

	switch cur.Peek() {
	case '@':
		cur.Advance(1)
		p.parseLink(cur, pos)
		return true
	case '#':
		cur.Advance(1)
		name := strings.TrimSpace(readUntilAny(cur, "]\n"))
		p.start("anchor", event.Attr{Name: "id", Value: name})
		p.end()
		p.expectClose(cur, pos, "[#")
		return true
	case '/':
		cur.Advance(1)
		p.skipComment(cur, pos)
		return true
	case '?':
		cur.Advance(1)
		p.parseConditional(cur, pos)
		return true
	}

	name := readMacroName(cur)
	if name == "" {
		p.st.Errorf(pos, "stray '[' in phrase")
		p.text("[")
		return true
	}

	if isBlockKeyword(name) {
		if allowBlockStop {
			cur.Rewind(mark)
			return false
		}
		p.st.Errorf(pos, "block markup [%s] not allowed here", name)
		p.skipBalancedOrEnd(cur, pos, "["+name)
		return true
	}

	if tmpl, ok := p.st.Templates.Lookup(name); ok {
		p.invokeTemplate(cur, tmpl, pos)
		return true
	}
	if expansion, ok := p.st.Macros.Lookup(name); ok {
		p.expand(name, expansion, pos)
		p.expectClose(cur, pos, "["+name)
		return true
	}

	p.st.Errorf(pos, "undefined template or macro %q", name)
	p.skipBalancedOrEnd(cur, pos, "["+name)
	return true
}

// parseLink matches [@url optional text].
func (p *Parser) parseLink(cur *qbsource.Cursor, pos qbsource.Position) {
	url := readUntilAny(cur, " \t\n]")
	skipSpaces(cur)
	p.start("link", event.Attr{Name: "url", Value: url})
	if cur.Peek() == ']' {
		p.text(url)
	} else {
		p.parsePhrase(cur, false, false)
	}
	p.end()
	p.expectClose(cur, pos, "[@")
}

// parseConditional matches [? MACRO content]: the content is parsed only
// when the macro is defined, otherwise it is skipped untouched.
func (p *Parser) parseConditional(cur *qbsource.Cursor, pos qbsource.Position) {
	skipSpaces(cur)
	name := readMacroName(cur)
	if name == "" {
		p.st.Errorf(pos, "conditional phrase without a macro name")
		p.skipBalancedOrEnd(cur, pos, "[?")
		return
	}
	skipSpaces(cur)
	if p.st.Macros.IsDefined(name) {
		p.parsePhrase(cur, false, false)
		p.expectClose(cur, pos, "[?")
		return
	}
	p.skipBalancedOrEnd(cur, pos, "[?")
}

// skipComment discards [/ ... ] including nested brackets.
func (p *Parser) skipComment(cur *qbsource.Cursor, pos qbsource.Position) {
	p.skipBalancedOrEnd(cur, pos, "[/")
}

// expectClose consumes the closing ']' of a construct, reporting and
// recovering when it is missing.
func (p *Parser) expectClose(cur *qbsource.Cursor, pos qbsource.Position, what string) {
	skipSpaces(cur)
	if cur.ConsumePrefix("]") {
		return
	}
	p.st.Errorf(pos, "unterminated %s...] markup", what)
	if _, ok := readBalancedText(cur); ok {
		cur.Advance(1)
	} else {
		cur.Advance(cur.Remaining())
	}
}

// skipBalancedOrEnd consumes up to and including the closing bracket of
// the current construct. Hitting end of input first is reported once.
func (p *Parser) skipBalancedOrEnd(cur *qbsource.Cursor, pos qbsource.Position, what string) {
	if _, ok := readBalancedText(cur); !ok {
		p.st.Errorf(pos, "unterminated %s...] markup", what)
		cur.Advance(cur.Remaining())
		return
	}
	cur.Advance(1) // ']'
}

func consumeNewline(cur *qbsource.Cursor) {
	if cur.Peek() == '\r' {
		cur.Advance(1)
	}
	if cur.Peek() == '\n' {
		cur.Advance(1)
	}
}
