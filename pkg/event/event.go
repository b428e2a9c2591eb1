// Package event defines the output event stream produced by semantic
// actions and consumed by the encoders. The stream is the canonical
// intermediate representation between parsing and markup generation.
package event

//go:generate stringer -type=Kind -trimprefix=Kind

// Kind classifies an output event.
type Kind uint8

// Event kinds.
const (
	KindStartElement Kind = iota
	KindEndElement
	KindText
	KindRaw
)

// Attr is a single element attribute. Attribute order is preserved.
type Attr struct {
	Name  string
	Value string
}

// Event is one entry in the output stream.
// StartElement carries Name and Attrs; EndElement carries Name;
// Text and Raw carry Content.
type Event struct {
	Kind    Kind
	Name    string
	Attrs   []Attr
	Content string
}

// Start constructs a StartElement event.
func Start(name string, attrs ...Attr) Event {
	return Event{Kind: KindStartElement, Name: name, Attrs: attrs}
}

// End constructs an EndElement event.
func End(name string) Event {
	return Event{Kind: KindEndElement, Name: name}
}

// Text constructs a Text event.
func Text(content string) Event {
	return Event{Kind: KindText, Content: content}
}

// Raw constructs a Raw event, emitted verbatim by the encoders.
func Raw(content string) Event {
	return Event{Kind: KindRaw, Content: content}
}

// Attribute returns the value of the named attribute and whether it exists.
func (e Event) Attribute(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
