package parser

import (
	"strings"

	"github.com/yaklabco/goqbc/pkg/compile"
	"github.com/yaklabco/goqbc/pkg/qbsource"
)

// parseDocInfo matches the leading document-info block:
//
//	[article Title
//	    [quickbook 1.5]
//	    [id doc.id]
//	    [authors [Last, First], [Last, First]]
//	    [copyright 2002 2004 Holder]
//	    [purpose ...]
//	    [license ...]
//	    [lang en]
//	]
//
// On failure the cursor is left at the point the match broke down so the
// driver can report the metadata error there; the driver keeps its own
// copy of the start cursor for the body-only fallback.
func (p *Parser) parseDocInfo(cur *qbsource.Cursor, info *compile.DocInfo) bool {
	skipAllSpace(cur)

	if !cur.ConsumePrefix("[") {
		return false
	}
	kind := readMacroName(cur)
	if !compile.DocKinds[kind] {
		return false
	}
	skipSpaces(cur)

	title := strings.TrimSpace(readUntilAny(cur, "[]\n"))
	if title == "" {
		return false
	}

	info.Kind = kind
	info.Title = title

	for {
		skipAllSpace(cur)
		switch cur.Peek() {
		case ']':
			cur.Advance(1)
			return true
		case '[':
			if !p.parseDocInfoEntry(cur, info) {
				return false
			}
		default:
			return false
		}
	}
}

// parseDocInfoEntry matches one bracketed key/value entry of the
// metadata block. Unknown keys fail the whole metadata rule.
func (p *Parser) parseDocInfoEntry(cur *qbsource.Cursor, info *compile.DocInfo) bool {
	cur.Advance(1) // consume '['
	key := readMacroName(cur)
	skipSpaces(cur)

	switch key {
	case "quickbook":
		info.Version = strings.TrimSpace(readUntilAny(cur, "]"))
	case "id":
		info.ID = strings.TrimSpace(readUntilAny(cur, "]"))
	case "lang":
		info.Lang = strings.TrimSpace(readUntilAny(cur, "]"))
	case "purpose":
		body, ok := readBalancedText(cur)
		if !ok {
			return false
		}
		info.Purpose = strings.TrimSpace(body)
	case "license":
		body, ok := readBalancedText(cur)
		if !ok {
			return false
		}
		info.License = strings.TrimSpace(body)
	case "authors":
		if !parseAuthors(cur, info) {
			return false
		}
	case "copyright":
		if !parseCopyright(cur, info) {
			return false
		}
	default:
		return false
	}

	return cur.ConsumePrefix("]")
}

// parseAuthors matches a comma-separated sequence of [Last, First] pairs.
func parseAuthors(cur *qbsource.Cursor, info *compile.DocInfo) bool {
	for {
		skipAllSpace(cur)
		if cur.Peek() != '[' {
			return false
		}
		cur.Advance(1)

		last := strings.TrimSpace(readUntilAny(cur, ",]"))
		var first string
		if cur.ConsumePrefix(",") {
			first = strings.TrimSpace(readUntilAny(cur, "]"))
		}
		if !cur.ConsumePrefix("]") || last == "" {
			return false
		}
		info.Authors = append(info.Authors, compile.Author{First: first, Last: last})

		skipAllSpace(cur)
		if !cur.ConsumePrefix(",") {
			return true
		}
	}
}

// parseCopyright matches leading year tokens followed by the holder text.
func parseCopyright(cur *qbsource.Cursor, info *compile.DocInfo) bool {
	var c compile.Copyright
	for {
		skipSpaces(cur)
		mark := cur.Mark()
		token := readUntilAny(cur, " \t\n]")
		if token != "" && isAllDigits(token) {
			c.Years = append(c.Years, token)
			continue
		}
		cur.Rewind(mark)
		break
	}
	if len(c.Years) == 0 {
		return false
	}
	c.Holder = strings.TrimSpace(readUntilAny(cur, "]"))
	if c.Holder == "" {
		return false
	}
	info.Copyrights = append(info.Copyrights, c)
	return true
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// skipSpaces consumes spaces and tabs.
func skipSpaces(cur *qbsource.Cursor) {
	for {
		b := cur.Peek()
		if b != ' ' && b != '\t' {
			return
		}
		cur.Advance(1)
	}
}

// skipAllSpace consumes spaces, tabs and newlines.
func skipAllSpace(cur *qbsource.Cursor) {
	for {
		b := cur.Peek()
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			return
		}
		cur.Advance(1)
	}
}

// readUntilAny consumes text up to (not including) any byte in stops or
// end of input.
func readUntilAny(cur *qbsource.Cursor, stops string) string {
	mark := cur.Mark()
	for !cur.AtEnd() && !strings.ContainsRune(stops, rune(cur.Peek())) {
		cur.Advance(1)
	}
	return cur.Text(mark)
}

// readBalancedText consumes raw text up to the closing bracket of the
// current construct, honoring nested brackets and backslash escapes.
// The closing bracket itself is not consumed. Returns false when the
// input ends before the construct is closed.
func readBalancedText(cur *qbsource.Cursor) (string, bool) {
	mark := cur.Mark()
	depth := 0
	for !cur.AtEnd() {
		switch cur.Peek() {
		case '\\':
			cur.Advance(2)
		case '[':
			depth++
			cur.Advance(1)
		case ']':
			if depth == 0 {
				return cur.Text(mark), true
			}
			depth--
			cur.Advance(1)
		default:
			cur.Advance(1)
		}
	}
	return "", false
}
