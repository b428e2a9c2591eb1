// Package qbsource provides the source-buffer representation for goqbc.
// It defines:
// - File: an immutable, lossless view of one quickbook source
// - Line index: byte-offset metadata for every line
// - Cursor: a copyable position with mark/rewind for backtracking
package qbsource

import "sort"

// File is an immutable view of a quickbook source at load time.
// It holds the raw content and a pre-computed line index.
type File struct {
	// Name is the source name (a file path, or a synthetic name such as
	// "command line parameter" for preset macro definitions).
	Name string

	// Content is the full source bytes.
	Content []byte

	// Lines contains metadata for each line in the source.
	Lines []LineInfo
}

// LineInfo holds metadata for a single line in a source.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of source).
	EndOffset int
}

// NewFile creates a File from in-memory content and builds its line index.
func NewFile(name string, content []byte) *File {
	return &File{
		Name:    name,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// BuildLines constructs line metadata from source content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	// Handle last line (may not have trailing newline).
	if lineStart <= len(content) {
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return lines
}

// LineCount returns the number of lines in the source.
func (f *File) LineCount() int {
	return len(f.Lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (f *File) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(f.Content) {
		lastLine := f.Lines[len(f.Lines)-1]
		return len(f.Lines), offset - lastLine.StartOffset + 1
	}

	// Binary search to find the line containing the offset.
	lineIdx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})

	if lineIdx >= len(f.Lines) {
		lineIdx = len(f.Lines) - 1
	}

	lineInfo := f.Lines[lineIdx]

	if offset < lineInfo.StartOffset {
		return 0, 0
	}

	return lineIdx + 1, offset - lineInfo.StartOffset + 1
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (f *File) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}

	lineInfo := f.Lines[line-1]
	return f.Content[lineInfo.StartOffset:lineInfo.NewlineStart]
}

// PositionAt returns the full source position for a byte offset.
func (f *File) PositionAt(offset int) Position {
	line, col := f.LineAt(offset)
	return Position{
		File:   f.Name,
		Offset: offset,
		Line:   line,
		Column: col,
	}
}
