package parser

import (
	"strings"

	"github.com/yaklabco/goqbc/pkg/compile"
	"github.com/yaklabco/goqbc/pkg/event"
	"github.com/yaklabco/goqbc/pkg/langdetect"
	"github.com/yaklabco/goqbc/pkg/qbsource"
)

// blockKeywords are bracket constructs that only open at block level.
// Meeting one of these in phrase context ends the enclosing paragraph.
var blockKeywords = map[string]bool{
	"section": true, "endsect": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"note": true, "tip": true, "important": true, "caution": true, "warning": true,
	"blurb": true, "table": true,
	"def": true, "template": true,
	"include": true, "xinclude": true,
}

var admonitions = map[string]bool{
	"note": true, "tip": true, "important": true, "caution": true, "warning": true,
}

func isBlockKeyword(name string) bool {
	return blockKeywords[name]
}

// parseBlocks matches block constructs until end of input, or until the
// closing bracket of the enclosing construct when one is open. It
// returns false only when no alternative can make progress; the cursor
// then sits at the first position the grammar cannot account for.
func (p *Parser) parseBlocks(cur *qbsource.Cursor) bool {
	for {
		skipBlankLines(cur)
		if cur.AtEnd() {
			return true
		}
		if p.bracketDepth > 0 && cur.Peek() == ']' {
			return true
		}
		if !p.parseBlock(cur) {
			return false
		}
	}
}

// parseBlock tries each block alternative in order, paragraph last.
func (p *Parser) parseBlock(cur *qbsource.Cursor) bool {
	if p.parseCodeBlock(cur) {
		return true
	}
	if cur.Peek() == '[' && p.parseBracketBlock(cur) {
		return true
	}
	if p.parseList(cur) {
		return true
	}
	return p.parseParagraph(cur)
}

// parseBracketBlock dispatches on the keyword after '['. A false return
// means the bracket is not a (well-formed) block construct and the
// cursor has been restored for the paragraph fallback.
func (p *Parser) parseBracketBlock(cur *qbsource.Cursor) bool {
	probe := *cur
	probe.Advance(1)

	if probe.Peek() == '/' {
		pos := cur.Position()
		cur.Advance(2)
		p.skipComment(cur, pos)
		return true
	}

	name := readMacroName(&probe)
	switch {
	case name == "section":
		return p.parseSection(cur)
	case name == "endsect":
		return p.parseEndsect(cur)
	case len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6':
		return p.parseHeading(cur, name)
	case admonitions[name]:
		return p.parseWrappedBlocks(cur, name)
	case name == "blurb":
		return p.parseWrappedBlocks(cur, "blurb")
	case name == "table":
		return p.parseTable(cur)
	case name == "def":
		return p.parseDef(cur)
	case name == "template":
		return p.parseTemplateDef(cur)
	case name == "include":
		return p.parseInclude(cur, false)
	case name == "xinclude":
		return p.parseInclude(cur, true)
	default:
		return false
	}
}

// parseSection matches [section Title] and opens a section.
func (p *Parser) parseSection(cur *qbsource.Cursor) bool {
	mark := cur.Mark()
	sm := p.sink.Mark()
	level := p.st.SectionLevel

	cur.ConsumePrefix("[section")
	if !isSpaceByte(cur.Peek()) {
		cur.Rewind(mark)
		return false
	}
	skipSpaces(cur)

	titleMark := cur.Mark()
	raw, ok := readBalancedText(cur)
	if !ok {
		cur.Rewind(mark)
		return false
	}
	cur.Rewind(titleMark)

	p.beginSection(compile.DeriveID(raw))
	p.start("title")
	p.parsePhrase(cur, false, false)
	p.end()

	if !cur.ConsumePrefix("]") {
		cur.Rewind(mark)
		p.sink.Rollback(sm)
		p.st.SectionLevel = level
		return false
	}
	return true
}

// parseEndsect matches [endsect] and closes a section.
func (p *Parser) parseEndsect(cur *qbsource.Cursor) bool {
	pos := cur.Position()
	mark := cur.Mark()

	cur.ConsumePrefix("[endsect")
	skipSpaces(cur)
	if !cur.ConsumePrefix("]") {
		cur.Rewind(mark)
		return false
	}
	p.endSection(pos)
	return true
}

// parseHeading matches [h1 ...] through [h6 ...].
func (p *Parser) parseHeading(cur *qbsource.Cursor, name string) bool {
	mark := cur.Mark()
	sm := p.sink.Mark()

	cur.ConsumePrefix("[" + name)
	if !isSpaceByte(cur.Peek()) {
		cur.Rewind(mark)
		return false
	}
	skipSpaces(cur)

	p.start("heading", event.Attr{Name: "level", Value: name[1:]})
	p.parsePhrase(cur, false, false)
	p.end()

	if !cur.ConsumePrefix("]") {
		cur.Rewind(mark)
		p.sink.Rollback(sm)
		return false
	}
	return true
}

// parseWrappedBlocks matches an admonition or blurb: a bracket wrapping
// full block content.
func (p *Parser) parseWrappedBlocks(cur *qbsource.Cursor, name string) bool {
	mark := cur.Mark()
	sm := p.sink.Mark()

	cur.ConsumePrefix("[" + name)
	if !isSpaceByte(cur.Peek()) && cur.Peek() != ']' {
		cur.Rewind(mark)
		return false
	}

	p.start(name)
	p.bracketDepth++
	ok := p.parseBlocks(cur)
	p.bracketDepth--
	if !ok {
		// Propagate the inner failure position untouched.
		return false
	}

	if !cur.ConsumePrefix("]") {
		cur.Rewind(mark)
		p.sink.Rollback(sm)
		return false
	}
	p.end()
	return true
}

// parseTable matches [table Title [[h][h]] [[c][c]] ...].
func (p *Parser) parseTable(cur *qbsource.Cursor) bool {
	mark := cur.Mark()
	sm := p.sink.Mark()
	fail := func() bool {
		cur.Rewind(mark)
		p.sink.Rollback(sm)
		return false
	}

	cur.ConsumePrefix("[table")
	if !isSpaceByte(cur.Peek()) {
		return fail()
	}
	skipSpaces(cur)

	title := strings.TrimSpace(readUntilAny(cur, "[\n]"))
	p.start("table", event.Attr{Name: "title", Value: title})

	for {
		skipAllSpace(cur)
		if cur.ConsumePrefix("]") {
			p.end()
			return true
		}
		if !cur.ConsumePrefix("[") {
			return fail()
		}
		p.start("row")
		for {
			skipAllSpace(cur)
			if cur.ConsumePrefix("]") {
				break
			}
			if !cur.ConsumePrefix("[") {
				return fail()
			}
			p.start("cell")
			p.parsePhrase(cur, false, false)
			p.end()
			if !cur.ConsumePrefix("]") {
				return fail()
			}
		}
		p.end() // row
	}
}

// parseDef matches [def NAME expansion] and records the macro.
func (p *Parser) parseDef(cur *qbsource.Cursor) bool {
	pos := cur.Position()
	mark := cur.Mark()

	cur.ConsumePrefix("[def")
	if !isSpaceByte(cur.Peek()) {
		cur.Rewind(mark)
		return false
	}
	skipSpaces(cur)

	name := readMacroName(cur)
	if name == "" {
		cur.Rewind(mark)
		return false
	}

	body, ok := readBalancedText(cur)
	if !ok {
		cur.Rewind(mark)
		return false
	}
	cur.Advance(1) // ']'

	p.defineMacro(name, strings.TrimSpace(body), pos)
	return true
}

// parseInclude matches [include file] and [xinclude file].
func (p *Parser) parseInclude(cur *qbsource.Cursor, xinc bool) bool {
	pos := cur.Position()
	mark := cur.Mark()

	keyword := "include"
	if xinc {
		keyword = "xinclude"
	}
	cur.ConsumePrefix("[" + keyword)
	if !isSpaceByte(cur.Peek()) {
		cur.Rewind(mark)
		return false
	}
	skipSpaces(cur)

	path := strings.TrimSpace(readUntilAny(cur, "]\n"))
	if path == "" || !cur.ConsumePrefix("]") {
		cur.Rewind(mark)
		return false
	}

	if xinc {
		p.xinclude(path, pos)
	} else {
		p.include(path, cur.File(), pos)
	}
	return true
}

// parseList matches consecutive lines starting with '*' or '#' markers,
// marker repetition giving the nesting depth.
func (p *Parser) parseList(cur *qbsource.Cursor) bool {
	if _, _, ok := peekListMarker(*cur); !ok {
		return false
	}

	var stack []byte // marker kinds of open lists, outermost first
	for {
		depth, kind, ok := peekListMarker(*cur)
		if !ok {
			break
		}
		cur.Advance(depth)
		skipSpaces(cur)

		for len(stack) > depth {
			p.end()
			stack = stack[:len(stack)-1]
		}
		if len(stack) == depth && depth > 0 && stack[depth-1] != kind {
			p.end()
			stack = stack[:depth-1]
		}
		for len(stack) < depth {
			p.start("list", event.Attr{Name: "kind", Value: listKind(kind)})
			stack = append(stack, kind)
		}

		p.start("listitem")
		p.parsePhrase(cur, true, false)
		p.end()

		if cur.Peek() != '\n' && cur.Peek() != '\r' {
			break
		}
		consumeNewline(cur)
	}

	for range stack {
		p.end()
	}
	return true
}

func listKind(marker byte) string {
	if marker == '#' {
		return "ordered"
	}
	return "itemized"
}

// peekListMarker reads a run of identical list markers followed by a
// space, without consuming.
func peekListMarker(cur qbsource.Cursor) (int, byte, bool) {
	kind := cur.Peek()
	if kind != '*' && kind != '#' {
		return 0, 0, false
	}
	depth := 0
	for cur.Peek() == kind {
		depth++
		cur.Advance(1)
	}
	if !isSpaceByte(cur.Peek()) {
		return 0, 0, false
	}
	return depth, kind, true
}

// parseCodeBlock matches a run of lines indented by four spaces or a
// tab, emitted verbatim with an auto-detected language attribute.
func (p *Parser) parseCodeBlock(cur *qbsource.Cursor) bool {
	if !hasCodeIndent(*cur) {
		return false
	}

	var lines []string
	for !cur.AtEnd() {
		if p.bracketDepth > 0 && cur.Peek() == ']' {
			break
		}
		if hasCodeIndent(*cur) {
			stripCodeIndent(cur)
			lines = append(lines, readUntilAny(cur, "\n"))
			consumeNewline(cur)
			continue
		}
		mark := cur.Mark()
		skipSpaces(cur)
		if cur.Peek() == '\n' || cur.Peek() == '\r' {
			consumeNewline(cur)
			lines = append(lines, "")
			continue
		}
		cur.Rewind(mark)
		break
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	text := strings.Join(lines, "\n") + "\n"

	p.start("code", event.Attr{Name: "language", Value: langdetect.Detect([]byte(text))})
	p.text(text)
	p.end()
	return true
}

// hasCodeIndent reports whether the line at the cursor starts with code
// indentation and carries non-space content.
func hasCodeIndent(cur qbsource.Cursor) bool {
	if cur.Peek() == '\t' {
		cur.Advance(1)
	} else if cur.HasPrefix("    ") {
		cur.Advance(4)
	} else {
		return false
	}
	for {
		switch cur.Peek() {
		case ' ', '\t':
			cur.Advance(1)
		case '\n', '\r', 0:
			return false
		default:
			return true
		}
	}
}

func stripCodeIndent(cur *qbsource.Cursor) {
	if cur.Peek() == '\t' {
		cur.Advance(1)
		return
	}
	cur.Advance(4)
}

// parseParagraph is the body fallback: inline content up to a blank
// line, a block construct, or the end of the enclosing bracket. It fails
// without side effects when it cannot consume anything.
func (p *Parser) parseParagraph(cur *qbsource.Cursor) bool {
	mark := cur.Mark()
	sm := p.sink.Mark()

	p.start("para")
	for {
		p.parsePhrase(cur, true, true)
		if cur.AtEnd() || cur.Peek() == ']' || cur.Peek() == '[' {
			break
		}
		consumeNewline(cur)
		if cur.AtEnd() || p.atParagraphBreak(*cur) {
			break
		}
		p.text("\n")
	}

	if cur.Offset() == mark {
		p.sink.Rollback(sm)
		return false
	}
	p.end()
	return true
}

// atParagraphBreak reports whether the line at the cursor ends the
// current paragraph: a blank line or the start of a block construct.
func (p *Parser) atParagraphBreak(cur qbsource.Cursor) bool {
	probe := cur
	skipSpaces(&probe)
	if probe.AtEnd() || probe.Peek() == '\n' || probe.Peek() == '\r' {
		return true
	}
	if hasCodeIndent(cur) {
		return true
	}
	if _, _, ok := peekListMarker(cur); ok {
		return true
	}
	if cur.Peek() == '[' {
		probe = cur
		probe.Advance(1)
		if probe.Peek() == '/' {
			return false
		}
		return isBlockKeyword(readMacroName(&probe))
	}
	return false
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// skipBlankLines consumes whole blank lines, leaving the indentation of
// the next contentful line untouched so code blocks keep their prefix.
func skipBlankLines(cur *qbsource.Cursor) {
	for {
		mark := cur.Mark()
		skipSpaces(cur)
		if cur.Peek() == '\n' || cur.Peek() == '\r' {
			consumeNewline(cur)
			continue
		}
		if cur.AtEnd() {
			return
		}
		cur.Rewind(mark)
		return
	}
}
