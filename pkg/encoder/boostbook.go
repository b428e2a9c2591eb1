package encoder

import (
	"strings"

	"github.com/yaklabco/goqbc/pkg/compile"
	"github.com/yaklabco/goqbc/pkg/event"
)

// boostbookEncoder maps the internal element vocabulary 1:1 onto
// BoostBook tag names, escaping reserved characters and preserving
// attribute order.
type boostbookEncoder struct{}

func (e *boostbookEncoder) Format() compile.Format {
	return compile.FormatBoostbook
}

func (e *boostbookEncoder) Encode(events []event.Event) ([]byte, error) {
	var out strings.Builder
	var ends []string // closing text per open element

	for _, ev := range events {
		switch ev.Kind {
		case event.KindStartElement:
			opening, closing := e.renderElement(ev)
			out.WriteString(opening)
			ends = append(ends, closing)
		case event.KindEndElement:
			if len(ends) == 0 {
				return nil, ErrUnbalanced
			}
			out.WriteString(ends[len(ends)-1])
			ends = ends[:len(ends)-1]
		case event.KindText:
			out.WriteString(escapeText(ev.Content))
		case event.KindRaw:
			out.WriteString(ev.Content)
		}
	}
	if len(ends) != 0 {
		return nil, ErrUnbalanced
	}
	return []byte(out.String()), nil
}

// renderElement returns the opening text for an element and the closing
// text to emit when its EndElement arrives.
func (e *boostbookEncoder) renderElement(ev event.Event) (string, string) {
	attr := func(name string) string {
		v, _ := ev.Attribute(name)
		return v
	}

	switch ev.Name {
	case "document":
		kind := attr("kind")
		if !compile.DocKinds[kind] {
			kind = "article"
		}
		open := "<" + kind +
			` id="` + escapeAttr(attr("id")) + `"` +
			` lang="` + escapeAttr(attr("lang")) + `"` +
			` last-revision="` + escapeAttr(attr("last-revision")) + `"` +
			` xmlns:xi="http://www.w3.org/2001/XInclude">`
		return open, "</" + kind + ">"
	case "docheader":
		return "", ""
	case "title":
		return "<title>", "</title>"
	case "authorgroup":
		return "<authorgroup>", "</authorgroup>"
	case "author":
		open := "<author><firstname>" + escapeText(attr("firstname")) +
			"</firstname><surname>" + escapeText(attr("surname")) +
			"</surname></author>"
		return open, ""
	case "copyright":
		var b strings.Builder
		b.WriteString("<copyright>")
		for _, year := range strings.Fields(attr("years")) {
			b.WriteString("<year>" + escapeText(year) + "</year>")
		}
		b.WriteString("<holder>" + escapeText(attr("holder")) + "</holder></copyright>")
		return b.String(), ""
	case "purpose":
		return "<articlepurpose>", "</articlepurpose>"
	case "license":
		return "<legalnotice><para>", "</para></legalnotice>"
	case "section":
		return `<section id="` + escapeAttr(attr("id")) + `">`, "</section>"
	case "heading":
		return `<bridgehead renderas="sect` + escapeAttr(attr("level")) + `">`, "</bridgehead>"
	case "para":
		return "<para>", "</para>"
	case "bold":
		return `<emphasis role="bold">`, "</emphasis>"
	case "italic":
		return "<emphasis>", "</emphasis>"
	case "underline":
		return `<emphasis role="underline">`, "</emphasis>"
	case "teletype":
		return "<literal>", "</literal>"
	case "inlinecode":
		return "<code>", "</code>"
	case "link":
		return `<ulink url="` + escapeAttr(attr("url")) + `">`, "</ulink>"
	case "anchor":
		return `<anchor id="` + escapeAttr(attr("id")) + `" />`, ""
	case "code":
		open := "<programlisting"
		if lang := attr("language"); lang != "" {
			open += ` language="` + escapeAttr(lang) + `"`
		}
		return open + ">", "</programlisting>"
	case "list":
		if attr("kind") == "ordered" {
			return "<orderedlist>", "</orderedlist>"
		}
		return "<itemizedlist>", "</itemizedlist>"
	case "listitem":
		return "<listitem>", "</listitem>"
	case "table":
		if title := attr("title"); title != "" {
			return "<table><title>" + escapeText(title) + "</title>", "</table>"
		}
		return "<informaltable>", "</informaltable>"
	case "row":
		return "<row>", "</row>"
	case "cell":
		return "<entry>", "</entry>"
	case "note", "tip", "important", "caution", "warning":
		return "<" + ev.Name + ">", "</" + ev.Name + ">"
	case "blurb":
		return "<sidebar>", "</sidebar>"
	default:
		// Unknown internal names pass through so the encoder stays
		// total over any well-formed stream.
		return "<" + ev.Name + ">", "</" + ev.Name + ">"
	}
}
