package encoder

import (
	"strconv"
	"strings"

	"github.com/yaklabco/goqbc/pkg/compile"
	"github.com/yaklabco/goqbc/pkg/event"
)

// htmlEncoder maps the internal element vocabulary onto HTML. Sections
// become div/heading structure keyed by their depth, which is why the
// encoder tracks the stack of open internal elements.
type htmlEncoder struct{}

func (e *htmlEncoder) Format() compile.Format {
	return compile.FormatHTML
}

// htmlFrame is one open internal element during encoding.
type htmlFrame struct {
	name    string
	level   int
	closing string
}

func (e *htmlEncoder) Encode(events []event.Event) ([]byte, error) {
	var out strings.Builder
	var stack []htmlFrame

	for _, ev := range events {
		switch ev.Kind {
		case event.KindStartElement:
			frame := e.renderElement(ev, stack, &out)
			stack = append(stack, frame)
		case event.KindEndElement:
			if len(stack) == 0 {
				return nil, ErrUnbalanced
			}
			out.WriteString(stack[len(stack)-1].closing)
			stack = stack[:len(stack)-1]
		case event.KindText:
			out.WriteString(escapeText(ev.Content))
		case event.KindRaw:
			out.WriteString(ev.Content)
		}
	}
	if len(stack) != 0 {
		return nil, ErrUnbalanced
	}
	return []byte(out.String()), nil
}

// renderElement writes the opening markup for ev and returns the frame
// holding its closing text.
func (e *htmlEncoder) renderElement(ev event.Event, stack []htmlFrame, out *strings.Builder) htmlFrame {
	attr := func(name string) string {
		v, _ := ev.Attribute(name)
		return v
	}
	parent := ""
	if len(stack) > 0 {
		parent = stack[len(stack)-1].name
	}
	frame := htmlFrame{name: ev.Name}

	emit := func(opening, closing string) htmlFrame {
		out.WriteString(opening)
		frame.closing = closing
		return frame
	}

	switch ev.Name {
	case "document":
		return emit("<html>", "</body></html>")
	case "docheader":
		return emit("<head>", "</head><body>")
	case "title":
		if parent == "section" {
			level := stack[len(stack)-1].level
			if level > 5 {
				level = 5
			}
			tag := "h" + strconv.Itoa(level+1)
			return emit("<"+tag+">", "</"+tag+">")
		}
		if parent == "docheader" {
			return emit("<title>", "</title>")
		}
		return emit("<b>", "</b>")
	case "authorgroup":
		return emit(`<span class="authors">`, "</span>")
	case "author":
		name := strings.TrimSpace(attr("firstname") + " " + attr("surname"))
		return emit(`<span class="author">`+escapeText(name)+`</span>`, "")
	case "copyright":
		text := strings.TrimSpace(attr("years") + " " + attr("holder"))
		return emit(`<span class="copyright">&copy; `+escapeText(text)+`</span>`, "")
	case "purpose":
		return emit(`<span class="purpose">`, "</span>")
	case "license":
		return emit(`<span class="license">`, "</span>")
	case "section":
		level, err := strconv.Atoi(attr("level"))
		if err != nil || level < 1 {
			level = 1
		}
		frame.level = level
		opening := `<div class="section"`
		if id := attr("id"); id != "" {
			opening += ` id="` + escapeAttr(id) + `"`
		}
		out.WriteString(opening + ">")
		frame.closing = "</div>"
		return frame
	case "heading":
		level, err := strconv.Atoi(attr("level"))
		if err != nil || level < 1 || level > 6 {
			level = 1
		}
		tag := "h" + strconv.Itoa(level)
		return emit("<"+tag+">", "</"+tag+">")
	case "para":
		return emit("<p>", "</p>")
	case "bold":
		return emit("<b>", "</b>")
	case "italic":
		return emit("<i>", "</i>")
	case "underline":
		return emit("<u>", "</u>")
	case "teletype":
		return emit("<tt>", "</tt>")
	case "inlinecode":
		return emit("<code>", "</code>")
	case "link":
		return emit(`<a href="`+escapeAttr(attr("url"))+`">`, "</a>")
	case "anchor":
		return emit(`<a id="`+escapeAttr(attr("id"))+`"></a>`, "")
	case "code":
		opening := "<pre"
		if lang := attr("language"); lang != "" {
			opening += ` class="language-` + escapeAttr(lang) + `"`
		}
		return emit(opening+">", "</pre>")
	case "list":
		if attr("kind") == "ordered" {
			return emit("<ol>", "</ol>")
		}
		return emit("<ul>", "</ul>")
	case "listitem":
		return emit("<li>", "</li>")
	case "table":
		if title := attr("title"); title != "" {
			return emit("<table><caption>"+escapeText(title)+"</caption>", "</table>")
		}
		return emit("<table>", "</table>")
	case "row":
		return emit("<tr>", "</tr>")
	case "cell":
		return emit("<td>", "</td>")
	case "note", "tip", "important", "caution", "warning", "blurb":
		return emit(`<div class="`+ev.Name+`">`, "</div>")
	default:
		return emit(`<div class="`+escapeAttr(ev.Name)+`">`, "</div>")
	}
}
