package event_test

import (
	"testing"

	"github.com/yaklabco/goqbc/pkg/event"
)

func TestSinkBalancedByConstruction(t *testing.T) {
	t.Parallel()

	s := event.NewSink()
	s.Start("document")
	s.Start("para")
	s.Text("hello")
	s.End()
	s.End()

	// Extra End is a no-op, not an unmatched EndElement.
	s.End()

	if !s.Balanced() {
		t.Fatal("Balanced() = false, want true")
	}
	events := s.Events()
	if len(events) != 5 {
		t.Fatalf("len(Events()) = %d, want 5", len(events))
	}

	wantKinds := []event.Kind{
		event.KindStartElement,
		event.KindStartElement,
		event.KindText,
		event.KindEndElement,
		event.KindEndElement,
	}
	for i, want := range wantKinds {
		if events[i].Kind != want {
			t.Errorf("events[%d].Kind = %v, want %v", i, events[i].Kind, want)
		}
	}

	// End events carry the name of the element they close.
	if events[3].Name != "para" {
		t.Errorf("events[3].Name = %q, want %q", events[3].Name, "para")
	}
	if events[4].Name != "document" {
		t.Errorf("events[4].Name = %q, want %q", events[4].Name, "document")
	}
}

func TestSinkDepth(t *testing.T) {
	t.Parallel()

	s := event.NewSink()
	if s.Depth() != 0 {
		t.Fatalf("Depth() = %d, want 0", s.Depth())
	}
	s.Start("a")
	s.Start("b")
	if s.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", s.Depth())
	}
	s.End()
	if s.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", s.Depth())
	}
}

func TestSinkDropsEmptyContent(t *testing.T) {
	t.Parallel()

	s := event.NewSink()
	s.Text("")
	s.Raw("")
	if len(s.Events()) != 0 {
		t.Fatalf("len(Events()) = %d, want 0", len(s.Events()))
	}
}

func TestSinkRollback(t *testing.T) {
	t.Parallel()

	s := event.NewSink()
	s.Start("document")
	s.Text("kept")

	m := s.Mark()
	s.Start("section", event.Attr{Name: "id", Value: "x"})
	s.Text("discarded")
	if s.Depth() != 2 {
		t.Fatalf("Depth() before rollback = %d, want 2", s.Depth())
	}

	s.Rollback(m)

	if s.Depth() != 1 {
		t.Fatalf("Depth() after rollback = %d, want 1", s.Depth())
	}
	events := s.Events()
	if len(events) != 2 {
		t.Fatalf("len(Events()) after rollback = %d, want 2", len(events))
	}
	if events[1].Content != "kept" {
		t.Errorf("events[1].Content = %q, want %q", events[1].Content, "kept")
	}

	// The open stack is consistent after rollback: End now closes document.
	s.End()
	if !s.Balanced() {
		t.Error("Balanced() = false after closing rolled-back stream")
	}
}

func TestSinkRollbackToEmpty(t *testing.T) {
	t.Parallel()

	s := event.NewSink()
	m := s.Mark()
	s.Start("para")
	s.Text("x")
	s.Rollback(m)

	if len(s.Events()) != 0 {
		t.Fatalf("len(Events()) = %d, want 0", len(s.Events()))
	}
	if !s.Balanced() {
		t.Error("Balanced() = false, want true")
	}
}

func TestEventAttribute(t *testing.T) {
	t.Parallel()

	ev := event.Start("link",
		event.Attr{Name: "url", Value: "http://boost.org"},
		event.Attr{Name: "class", Value: "external"})

	if v, ok := ev.Attribute("url"); !ok || v != "http://boost.org" {
		t.Errorf(`Attribute("url") = (%q, %v), want ("http://boost.org", true)`, v, ok)
	}
	if v, ok := ev.Attribute("missing"); ok || v != "" {
		t.Errorf(`Attribute("missing") = (%q, %v), want ("", false)`, v, ok)
	}
}
