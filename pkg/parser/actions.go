package parser

import (
	"strconv"
	"strings"

	"github.com/yaklabco/goqbc/pkg/compile"
	"github.com/yaklabco/goqbc/pkg/event"
	"github.com/yaklabco/goqbc/pkg/qbsource"
)

// actions is the semantic action layer: the only place that mutates
// compiler state or appends to the output event stream. Grammar rules
// call into it on confirmed matches; failed alternatives roll the sink
// back to a mark instead, so abandoned branches leave no ghost state.
type actions struct {
	st   *compile.State
	opts compile.Options
	sink *event.Sink
}

func (a *actions) text(s string) {
	a.sink.Text(s)
}

func (a *actions) start(name string, attrs ...event.Attr) {
	a.sink.Start(name, attrs...)
}

func (a *actions) end() {
	a.sink.End()
}

// beginDocument emits the document header derived from resolved metadata.
func (a *actions) beginDocument(info *compile.DocInfo) {
	attrs := []event.Attr{
		{Name: "kind", Value: info.Kind},
		{Name: "id", Value: info.ID},
		{Name: "lang", Value: info.Lang},
		{Name: "last-revision", Value: info.LastRevised},
	}
	if info.Version != "" {
		attrs = append(attrs, event.Attr{Name: "version", Value: info.Version})
	}
	a.sink.Start("document", attrs...)

	a.sink.Start("docheader")
	a.sink.Start("title")
	a.sink.Text(info.Title)
	a.sink.End()
	if len(info.Authors) > 0 {
		a.sink.Start("authorgroup")
		for _, author := range info.Authors {
			a.sink.Start("author",
				event.Attr{Name: "firstname", Value: author.First},
				event.Attr{Name: "surname", Value: author.Last})
			a.sink.End()
		}
		a.sink.End()
	}
	for _, c := range info.Copyrights {
		a.sink.Start("copyright",
			event.Attr{Name: "years", Value: strings.Join(c.Years, " ")},
			event.Attr{Name: "holder", Value: c.Holder})
		a.sink.End()
	}
	if info.Purpose != "" {
		a.sink.Start("purpose")
		a.sink.Text(info.Purpose)
		a.sink.End()
	}
	if info.License != "" {
		a.sink.Start("license")
		a.sink.Text(info.License)
		a.sink.End()
	}
	a.sink.End() // docheader
}

// endDocument emits the close-of-document events. Sections left open by
// unbalanced markers are closed here so the stream stays well formed; the
// unbalance itself is reported by the driver as a warning.
func (a *actions) endDocument() {
	for a.sink.Depth() > 1 {
		a.sink.End()
	}
	a.sink.End() // document
}

// beginSection opens a section: depth increases, and the emitted element
// carries its depth so the HTML encoder can derive heading levels.
func (a *actions) beginSection(id string) {
	a.st.SectionLevel++
	a.sink.Start("section",
		event.Attr{Name: "id", Value: id},
		event.Attr{Name: "level", Value: strconv.Itoa(a.st.SectionLevel)})
}

// endSection closes a section. Closing below depth zero is a recoverable
// structural warning, not an error.
func (a *actions) endSection(pos qbsource.Position) {
	if a.st.SectionLevel == 0 {
		a.st.Warnf(pos, "unmatched [endsect]")
		return
	}
	a.st.SectionLevel--
	a.sink.End()
}

// defineMacro records a macro. Redefinition overwrites silently but is
// surfaced as a structural warning.
func (a *actions) defineMacro(name, expansion string, pos qbsource.Position) {
	if a.st.Macros.Define(name, expansion) {
		a.st.Warnf(pos, "redefining macro %q", name)
	}
}

// defineTemplate records a template, warning on redefinition like macros.
func (a *actions) defineTemplate(tmpl compile.Template, pos qbsource.Position) {
	if a.st.Templates.Define(tmpl) {
		a.st.Warnf(pos, "redefining template %q", tmpl.Name)
	}
}

// xinclude emits a raw XInclude reference for boostbook output. HTML has
// no XInclude equivalent, so the directive is dropped with a warning.
func (a *actions) xinclude(href string, pos qbsource.Position) {
	if a.opts.Format == compile.FormatHTML {
		a.st.Warnf(pos, "[xinclude %s] ignored for html output", href)
		return
	}
	a.sink.Raw(`<xi:include href="` + escapeAttr(href) + `" />`)
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
