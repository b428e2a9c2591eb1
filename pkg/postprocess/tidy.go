// Package postprocess reflows generated markup into a stable layout:
// block tags on their own indented lines, inline content word-wrapped
// at a column limit. The pass is idempotent and never changes content,
// only whitespace between tokens. Verbatim elements are copied through
// untouched.
package postprocess

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed reports input this pass cannot lay out. The encoders only
// produce well-formed markup, so hitting it means an upstream bug rather
// than a bad source document.
var ErrMalformed = errors.New("postprocess: malformed markup")

// Layout defaults.
const (
	DefaultIndent    = 2
	DefaultLineWidth = 80
)

// verbatimTags enclose content whose whitespace is significant.
var verbatimTags = map[string]bool{
	"programlisting": true,
	"pre":            true,
	"literallayout":  true,
	"screen":         true,
}

// inlineTags stay in the text flow instead of forcing line breaks.
// The set covers both output vocabularies.
var inlineTags = map[string]bool{
	"emphasis": true,
	"literal":  true,
	"code":     true,
	"ulink":    true,
	"anchor":   true,
	"phrase":   true,

	"a":    true,
	"b":    true,
	"i":    true,
	"u":    true,
	"tt":   true,
	"span": true,
}

// flowSeg is one unbreakable unit of inline content. glue means no
// space separated it from the previous segment in the input.
type flowSeg struct {
	text string
	glue bool
}

// Tidy rewrites markup with indent spaces per nesting level and lines
// wrapped at width columns. Wrapping only happens at whitespace, never
// inside a tag, an entity or a word, so a single oversized token may
// still exceed width.
func Tidy(input []byte, indent, width int) ([]byte, error) {
	if indent < 0 {
		indent = DefaultIndent
	}
	if width <= 0 {
		width = DefaultLineWidth
	}

	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}

	p := &printer{indent: indent, width: width}
	var open []string

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.kind {
		case tokText:
			p.addText(tok.text)

		case tokDecl:
			p.flushFlow()
			p.writeLine(tok.text)

		case tokSelfClose:
			if inlineTags[tok.name] {
				p.addSeg(tok.text)
				break
			}
			p.flushFlow()
			p.writeLine(tok.text)

		case tokOpen:
			if verbatimTags[tok.name] {
				end, err := findVerbatimEnd(tokens, i)
				if err != nil {
					return nil, err
				}
				p.flushFlow()
				p.writeVerbatim(tokens[i : end+1])
				i = end
				break
			}
			if inlineTags[tok.name] {
				p.addSeg(tok.text)
				open = append(open, tok.name)
				break
			}
			p.flushFlow()
			p.writeLine(tok.text)
			p.depth++
			open = append(open, tok.name)

		case tokClose:
			if len(open) == 0 || open[len(open)-1] != tok.name {
				return nil, fmt.Errorf("%w: unexpected </%s>", ErrMalformed, tok.name)
			}
			open = open[:len(open)-1]
			if inlineTags[tok.name] {
				p.addGluedSeg(tok.text)
				break
			}
			p.flushFlow()
			p.depth--
			p.writeLine(tok.text)
		}
	}

	if len(open) != 0 {
		return nil, fmt.Errorf("%w: unclosed <%s>", ErrMalformed, open[len(open)-1])
	}
	p.flushFlow()
	return []byte(p.out.String()), nil
}

// findVerbatimEnd returns the index of the close tag matching the
// verbatim open tag at start, honoring same-name nesting.
func findVerbatimEnd(tokens []token, start int) (int, error) {
	name := tokens[start].name
	depth := 0
	for i := start; i < len(tokens); i++ {
		switch {
		case tokens[i].kind == tokOpen && tokens[i].name == name:
			depth++
		case tokens[i].kind == tokClose && tokens[i].name == name:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unclosed <%s>", ErrMalformed, name)
}

// printer accumulates output and tracks the wrap column.
type printer struct {
	out    strings.Builder
	indent int
	width  int
	depth  int

	flow       []flowSeg
	glueNext   bool
	flowActive bool
}

// addText splits a text run into word segments. Whitespace boundaries
// in the run decide where wrapping is later allowed.
func (p *printer) addText(text string) {
	glue := p.glueNext && p.flowActive && !startsWithSpace(text)
	for _, word := range strings.Fields(text) {
		p.flow = append(p.flow, flowSeg{text: word, glue: glue})
		glue = false
	}
	p.flowActive = true
	p.glueNext = !endsWithSpace(text)
}

// addSeg appends an inline tag, glued to the previous segment only when
// no whitespace separated them in the input.
func (p *printer) addSeg(text string) {
	p.flow = append(p.flow, flowSeg{text: text, glue: p.glueNext && p.flowActive})
	p.flowActive = true
	p.glueNext = true
}

// addGluedSeg appends an inline close tag, always attached to the
// content it closes.
func (p *printer) addGluedSeg(text string) {
	p.flow = append(p.flow, flowSeg{text: text, glue: true})
	p.flowActive = true
	p.glueNext = true
}

// flushFlow wraps and emits the pending inline content.
func (p *printer) flushFlow() {
	defer func() {
		p.flow = p.flow[:0]
		p.flowActive = false
		p.glueNext = false
	}()

	if len(p.flow) == 0 {
		return
	}

	prefix := strings.Repeat(" ", p.depth*p.indent)
	p.out.WriteString(prefix)
	col := len(prefix)
	lineStart := true

	for _, seg := range p.flow {
		switch {
		case lineStart || seg.glue:
			// No break opportunity.
		case col+1+len(seg.text) > p.width:
			p.out.WriteString("\n" + prefix)
			col = len(prefix)
		default:
			p.out.WriteByte(' ')
			col++
		}
		p.out.WriteString(seg.text)
		col += len(seg.text)
		lineStart = false
	}
	p.out.WriteByte('\n')
}

// writeLine emits text on its own line at the current depth.
func (p *printer) writeLine(text string) {
	p.out.WriteString(strings.Repeat(" ", p.depth*p.indent))
	p.out.WriteString(text)
	p.out.WriteByte('\n')
}

// writeVerbatim emits a verbatim element. The open tag gets the current
// indentation; everything through the close tag is copied byte for byte.
func (p *printer) writeVerbatim(tokens []token) {
	p.out.WriteString(strings.Repeat(" ", p.depth*p.indent))
	for _, tok := range tokens {
		p.out.WriteString(tok.text)
	}
	p.out.WriteByte('\n')
}

func startsWithSpace(s string) bool {
	return s != "" && isSpace(s[0])
}

func endsWithSpace(s string) bool {
	return s != "" && isSpace(s[len(s)-1])
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
