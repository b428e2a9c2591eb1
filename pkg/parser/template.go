package parser

import (
	"strings"

	"github.com/yaklabco/goqbc/pkg/compile"
	"github.com/yaklabco/goqbc/pkg/qbsource"
)

// parseTemplateDef matches [template name[p1 p2] body...] and records
// the template.
func (p *Parser) parseTemplateDef(cur *qbsource.Cursor) bool {
	pos := cur.Position()
	mark := cur.Mark()
	fail := func() bool {
		cur.Rewind(mark)
		return false
	}

	cur.ConsumePrefix("[template")
	if !isSpaceByte(cur.Peek()) {
		return fail()
	}
	skipSpaces(cur)

	name := readMacroName(cur)
	if name == "" {
		return fail()
	}

	var params []string
	if cur.Peek() == '[' {
		cur.Advance(1)
		params = strings.Fields(readUntilAny(cur, "]"))
		if !cur.ConsumePrefix("]") {
			return fail()
		}
	}

	body, ok := readBalancedText(cur)
	if !ok {
		return fail()
	}
	cur.Advance(1) // ']'

	p.defineTemplate(compile.Template{
		Name:   name,
		Params: params,
		Body:   strings.TrimSpace(body),
		Pos:    pos,
	}, pos)
	return true
}

// invokeTemplate matches the argument list of a template call, binds the
// formal parameters as scoped macros, and re-invokes the grammar over
// the template body.
func (p *Parser) invokeTemplate(cur *qbsource.Cursor, tmpl compile.Template, pos qbsource.Position) {
	raw, ok := readBalancedText(cur)
	if !ok {
		p.st.Errorf(pos, "unterminated template call [%s...]", tmpl.Name)
		cur.Advance(cur.Remaining())
		return
	}
	cur.Advance(1) // ']'

	args := splitTemplateArgs(raw)
	if len(args) != len(tmpl.Params) {
		p.st.Errorf(pos, "template %q expects %d argument(s), got %d",
			tmpl.Name, len(tmpl.Params), len(args))
		return
	}

	// Bind parameters as macros for the duration of the expansion,
	// shadowing (and afterwards restoring) any same-named macros.
	saved := make(map[string]*string, len(tmpl.Params))
	for i, param := range tmpl.Params {
		if old, exists := p.st.Macros.Lookup(param); exists {
			prev := old
			saved[param] = &prev
		} else {
			saved[param] = nil
		}
		p.st.Macros[param] = args[i]
	}

	p.expand(tmpl.Name, tmpl.Body, pos)

	for param, old := range saved {
		if old == nil {
			delete(p.st.Macros, param)
		} else {
			p.st.Macros[param] = *old
		}
	}
}

// splitTemplateArgs splits an argument list on top-level whitespace;
// bracketed groups count as single arguments.
func splitTemplateArgs(raw string) []string {
	var args []string
	var current strings.Builder
	depth := 0

	flush := func() {
		if current.Len() > 0 {
			args = append(args, current.String())
			current.Reset()
		}
	}

	for i := 0; i < len(raw); i++ {
		b := raw[i]
		switch {
		case b == '\\' && i+1 < len(raw):
			current.WriteByte(b)
			i++
			current.WriteByte(raw[i])
		case b == '[':
			depth++
			current.WriteByte(b)
		case b == ']':
			depth--
			current.WriteByte(b)
		case depth == 0 && (b == ' ' || b == '\t' || b == '\n' || b == '\r'):
			flush()
		default:
			current.WriteByte(b)
		}
	}
	flush()
	return args
}

// expand re-invokes the phrase grammar over macro or template expansion
// text. Problems inside the expansion are reported against the expansion
// body, with the invocation position noted so the user can find the call
// site.
func (p *Parser) expand(name, body string, pos qbsource.Position) {
	if body == "" {
		return
	}
	if p.expansionDepth >= maxExpansionDepth {
		p.st.Errorf(pos, "expansion of %q nested too deeply", name)
		return
	}
	p.expansionDepth++
	defer func() { p.expansionDepth-- }()

	before := p.st.ErrorCount

	f := qbsource.NewFile("<"+name+">", []byte(body))
	cur := qbsource.NewCursor(f)
	p.parsePhrase(&cur, false, false)
	if !cur.AtEnd() {
		p.st.Errorf(cur.Position(), "mismatched ']' in expansion of %q", name)
	}

	if p.st.ErrorCount > before {
		p.st.Notef(pos, "expanded from here")
	}
}
