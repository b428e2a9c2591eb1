package qbsource_test

import (
	"testing"

	"github.com/yaklabco/goqbc/pkg/qbsource"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []qbsource.LineInfo
	}{
		{
			name:    "empty content",
			content: "",
			want:    []qbsource.LineInfo{},
		},
		{
			name:    "single line no newline",
			content: "hello",
			want: []qbsource.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 5},
			},
		},
		{
			name:    "single line with newline",
			content: "hello\n",
			want: []qbsource.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 6, EndOffset: 6},
			},
		},
		{
			name:    "two lines lf",
			content: "one\ntwo",
			want: []qbsource.LineInfo{
				{StartOffset: 0, NewlineStart: 3, EndOffset: 4},
				{StartOffset: 4, NewlineStart: 7, EndOffset: 7},
			},
		},
		{
			name:    "crlf line endings",
			content: "one\r\ntwo",
			want: []qbsource.LineInfo{
				{StartOffset: 0, NewlineStart: 3, EndOffset: 5},
				{StartOffset: 5, NewlineStart: 8, EndOffset: 8},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := qbsource.BuildLines([]byte(tt.content))

			if len(got) != len(tt.want) {
				t.Fatalf("BuildLines() returned %d lines, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLineAt(t *testing.T) {
	t.Parallel()

	f := qbsource.NewFile("test.qbk", []byte("first\nsecond\nthird"))

	tests := []struct {
		name     string
		offset   int
		wantLine int
		wantCol  int
	}{
		{"start of file", 0, 1, 1},
		{"middle of first line", 3, 1, 4},
		{"start of second line", 6, 2, 1},
		{"middle of second line", 9, 2, 4},
		{"start of third line", 13, 3, 1},
		{"end of content", 18, 3, 6},
		{"negative offset", -1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			line, col := f.LineAt(tt.offset)
			if line != tt.wantLine || col != tt.wantCol {
				t.Errorf("LineAt(%d) = (%d, %d), want (%d, %d)",
					tt.offset, line, col, tt.wantLine, tt.wantCol)
			}
		})
	}
}

func TestLineContent(t *testing.T) {
	t.Parallel()

	f := qbsource.NewFile("test.qbk", []byte("first\r\nsecond\nthird"))

	if got := string(f.LineContent(1)); got != "first" {
		t.Errorf("LineContent(1) = %q, want %q", got, "first")
	}
	if got := string(f.LineContent(2)); got != "second" {
		t.Errorf("LineContent(2) = %q, want %q", got, "second")
	}
	if got := string(f.LineContent(3)); got != "third" {
		t.Errorf("LineContent(3) = %q, want %q", got, "third")
	}
	if got := f.LineContent(0); got != nil {
		t.Errorf("LineContent(0) = %q, want nil", got)
	}
	if got := f.LineContent(4); got != nil {
		t.Errorf("LineContent(4) = %q, want nil", got)
	}
}

func TestPositionAt(t *testing.T) {
	t.Parallel()

	f := qbsource.NewFile("doc.qbk", []byte("abc\ndef\n"))
	pos := f.PositionAt(5)

	if pos.File != "doc.qbk" {
		t.Errorf("pos.File = %q, want %q", pos.File, "doc.qbk")
	}
	if pos.Offset != 5 {
		t.Errorf("pos.Offset = %d, want 5", pos.Offset)
	}
	if pos.Line != 2 || pos.Column != 2 {
		t.Errorf("pos = %d:%d, want 2:2", pos.Line, pos.Column)
	}
	if got := pos.String(); got != "doc.qbk:2:2" {
		t.Errorf("pos.String() = %q, want %q", got, "doc.qbk:2:2")
	}
	if !pos.IsValid() {
		t.Error("pos.IsValid() = false, want true")
	}
}
