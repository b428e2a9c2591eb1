package qbsource

import "fmt"

// Position is an immutable snapshot of a location in a source, produced on
// demand from a Cursor and used only for diagnostics.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) line/column values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// String renders the position as "file:line:column".
func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}
