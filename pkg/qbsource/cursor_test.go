package qbsource_test

import (
	"testing"

	"github.com/yaklabco/goqbc/pkg/qbsource"
)

func newCursor(content string) qbsource.Cursor {
	return qbsource.NewCursor(qbsource.NewFile("test.qbk", []byte(content)))
}

func TestCursorPeekAdvance(t *testing.T) {
	t.Parallel()

	cur := newCursor("abc")

	if got := cur.Peek(); got != 'a' {
		t.Errorf("Peek() = %q, want 'a'", got)
	}
	if got := cur.PeekAt(2); got != 'c' {
		t.Errorf("PeekAt(2) = %q, want 'c'", got)
	}
	if got := cur.PeekAt(3); got != 0 {
		t.Errorf("PeekAt(3) = %q, want 0", got)
	}

	cur.Advance(2)
	if got := cur.Peek(); got != 'c' {
		t.Errorf("Peek() after Advance(2) = %q, want 'c'", got)
	}

	// Advancing past the end clamps.
	cur.Advance(10)
	if !cur.AtEnd() {
		t.Error("AtEnd() = false after over-advance, want true")
	}
	if got := cur.Peek(); got != 0 {
		t.Errorf("Peek() at end = %q, want 0", got)
	}
	if got := cur.Offset(); got != 3 {
		t.Errorf("Offset() = %d, want 3", got)
	}
}

func TestCursorNext(t *testing.T) {
	t.Parallel()

	cur := newCursor("ab")

	if got := cur.Next(); got != 'a' {
		t.Errorf("Next() = %q, want 'a'", got)
	}
	if got := cur.Next(); got != 'b' {
		t.Errorf("Next() = %q, want 'b'", got)
	}
	if got := cur.Next(); got != 0 {
		t.Errorf("Next() at end = %q, want 0", got)
	}
	if got := cur.Offset(); got != 2 {
		t.Errorf("Offset() = %d, want 2 (Next must not advance past end)", got)
	}
}

func TestCursorPrefix(t *testing.T) {
	t.Parallel()

	cur := newCursor("[section Intro]")

	if !cur.HasPrefix("[section") {
		t.Fatal(`HasPrefix("[section") = false, want true`)
	}
	if cur.ConsumePrefix("[endsect") {
		t.Fatal(`ConsumePrefix("[endsect") = true, want false`)
	}
	if got := cur.Offset(); got != 0 {
		t.Fatalf("failed ConsumePrefix moved the cursor to %d", got)
	}
	if !cur.ConsumePrefix("[section ") {
		t.Fatal(`ConsumePrefix("[section ") = false, want true`)
	}
	if got := string(cur.Rest()); got != "Intro]" {
		t.Errorf("Rest() = %q, want %q", got, "Intro]")
	}
	if got := cur.Remaining(); got != 6 {
		t.Errorf("Remaining() = %d, want 6", got)
	}
}

func TestCursorMarkRewind(t *testing.T) {
	t.Parallel()

	cur := newCursor("hello world")

	mark := cur.Mark()
	cur.Advance(5)
	if got := cur.Text(mark); got != "hello" {
		t.Errorf("Text(mark) = %q, want %q", got, "hello")
	}

	cur.Rewind(mark)
	if got := cur.Offset(); got != 0 {
		t.Errorf("Offset() after Rewind = %d, want 0", got)
	}
	if got := cur.Peek(); got != 'h' {
		t.Errorf("Peek() after Rewind = %q, want 'h'", got)
	}
}

func TestCursorCopyIsIndependent(t *testing.T) {
	t.Parallel()

	cur := newCursor("abcdef")
	probe := cur
	probe.Advance(3)

	if got := cur.Offset(); got != 0 {
		t.Errorf("original cursor moved to %d after copy advanced", got)
	}
	if got := probe.Offset(); got != 3 {
		t.Errorf("copy Offset() = %d, want 3", got)
	}
}

func TestCursorAtLineStart(t *testing.T) {
	t.Parallel()

	cur := newCursor("ab\ncd")

	if !cur.AtLineStart() {
		t.Error("AtLineStart() at offset 0 = false, want true")
	}
	cur.Advance(1)
	if cur.AtLineStart() {
		t.Error("AtLineStart() at offset 1 = true, want false")
	}
	cur.Advance(2)
	if !cur.AtLineStart() {
		t.Error("AtLineStart() after newline = false, want true")
	}
}

func TestCursorPosition(t *testing.T) {
	t.Parallel()

	cur := newCursor("one\ntwo\n")
	cur.Advance(5)

	pos := cur.Position()
	if pos.Line != 2 || pos.Column != 2 {
		t.Errorf("Position() = %d:%d, want 2:2", pos.Line, pos.Column)
	}
	if pos.File != "test.qbk" {
		t.Errorf("Position().File = %q, want %q", pos.File, "test.qbk")
	}
}
