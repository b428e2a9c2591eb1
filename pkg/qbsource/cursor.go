package qbsource

import "bytes"

// Cursor is a position into a source buffer supporting peek/advance and
// mark/rewind. Cursors are plain values: copying one is cheap, and two
// cursors over the same File may coexist read-only.
type Cursor struct {
	file   *File
	offset int
}

// NewCursor returns a cursor at the start of the file.
func NewCursor(f *File) Cursor {
	return Cursor{file: f}
}

// File returns the underlying source file.
func (c Cursor) File() *File {
	return c.file
}

// AtEnd returns true when the cursor has consumed all input.
func (c Cursor) AtEnd() bool {
	return c.offset >= len(c.file.Content)
}

// Peek returns the byte at the cursor without advancing, or 0 at end of input.
func (c Cursor) Peek() byte {
	if c.AtEnd() {
		return 0
	}
	return c.file.Content[c.offset]
}

// PeekAt returns the byte n positions ahead of the cursor, or 0 past the end.
func (c Cursor) PeekAt(n int) byte {
	if c.offset+n >= len(c.file.Content) {
		return 0
	}
	return c.file.Content[c.offset+n]
}

// Advance moves the cursor forward by n bytes, clamping at end of input.
func (c *Cursor) Advance(n int) {
	c.offset += n
	if c.offset > len(c.file.Content) {
		c.offset = len(c.file.Content)
	}
}

// Next consumes and returns the byte at the cursor, or 0 at end of input.
func (c *Cursor) Next() byte {
	b := c.Peek()
	if b != 0 || !c.AtEnd() {
		c.offset++
	}
	return b
}

// HasPrefix reports whether the remaining input starts with s.
func (c Cursor) HasPrefix(s string) bool {
	return bytes.HasPrefix(c.file.Content[c.offset:], []byte(s))
}

// ConsumePrefix advances past s if the remaining input starts with it.
func (c *Cursor) ConsumePrefix(s string) bool {
	if !c.HasPrefix(s) {
		return false
	}
	c.offset += len(s)
	return true
}

// Mark returns the current offset for a later Rewind.
func (c Cursor) Mark() int {
	return c.offset
}

// Rewind restores the cursor to a previously taken mark. Rewinding is how
// failed grammar alternatives are discarded without side effects.
func (c *Cursor) Rewind(mark int) {
	c.offset = mark
}

// Offset returns the current byte offset.
func (c Cursor) Offset() int {
	return c.offset
}

// Rest returns the unconsumed input. The returned slice must not be mutated.
func (c Cursor) Rest() []byte {
	return c.file.Content[c.offset:]
}

// Remaining returns the number of unconsumed bytes.
func (c Cursor) Remaining() int {
	return len(c.file.Content) - c.offset
}

// AtLineStart reports whether the cursor sits at the start of a line.
func (c Cursor) AtLineStart() bool {
	return c.offset == 0 || c.file.Content[c.offset-1] == '\n'
}

// Position returns a diagnostic position for the cursor.
func (c Cursor) Position() Position {
	return c.file.PositionAt(c.offset)
}

// Text returns the source text between a mark and the current offset.
func (c Cursor) Text(mark int) string {
	if mark < 0 || mark > c.offset {
		return ""
	}
	return string(c.file.Content[mark:c.offset])
}
