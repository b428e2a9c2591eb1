package event

// Sink accumulates the output event stream for one compilation unit.
//
// Start/End nesting is balanced by construction: End pops the open-element
// stack and emits the matching EndElement, so an unmatched end cannot be
// produced. Mark/Rollback give the grammar engine a transactional append:
// a failed alternative rolls the stream (and the open stack) back to its
// mark, leaving no ghost events behind.
type Sink struct {
	events []Event
	open   []string
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Start appends a StartElement and pushes it on the open-element stack.
func (s *Sink) Start(name string, attrs ...Attr) {
	s.events = append(s.events, Start(name, attrs...))
	s.open = append(s.open, name)
}

// End closes the innermost open element. It is a no-op when nothing is
// open, so callers cannot unbalance the stream.
func (s *Sink) End() {
	if len(s.open) == 0 {
		return
	}
	name := s.open[len(s.open)-1]
	s.open = s.open[:len(s.open)-1]
	s.events = append(s.events, End(name))
}

// Text appends a Text event. Empty content is dropped.
func (s *Sink) Text(content string) {
	if content == "" {
		return
	}
	s.events = append(s.events, Text(content))
}

// Raw appends a Raw event. Empty content is dropped.
func (s *Sink) Raw(content string) {
	if content == "" {
		return
	}
	s.events = append(s.events, Raw(content))
}

// Depth returns the number of currently open elements.
func (s *Sink) Depth() int {
	return len(s.open)
}

// Mark captures the sink state for a later Rollback.
type Mark struct {
	events int
	open   int
}

// Mark returns a transaction mark for the current stream state.
func (s *Sink) Mark() Mark {
	return Mark{events: len(s.events), open: len(s.open)}
}

// Rollback discards every event appended since the mark was taken.
func (s *Sink) Rollback(m Mark) {
	if m.events <= len(s.events) {
		s.events = s.events[:m.events]
	}
	if m.open <= len(s.open) {
		s.open = s.open[:m.open]
	}
}

// Events returns the accumulated stream. The slice is owned by the sink
// and must be treated as read-only once parsing has finished.
func (s *Sink) Events() []Event {
	return s.events
}

// Balanced reports whether every StartElement has been closed.
func (s *Sink) Balanced() bool {
	return len(s.open) == 0
}
