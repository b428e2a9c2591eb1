package compile_test

import (
	"testing"

	"github.com/yaklabco/goqbc/pkg/compile"
	"github.com/yaklabco/goqbc/pkg/qbsource"
)

func pos(line, col int) qbsource.Position {
	return qbsource.Position{File: "test.qbk", Line: line, Column: col}
}

func TestStateDiagnosticCounters(t *testing.T) {
	t.Parallel()

	st := compile.NewState()

	st.Errorf(pos(1, 1), "bad %s", "thing")
	st.Warnf(pos(2, 1), "odd thing")
	st.Notef(pos(3, 1), "for the record")
	st.Errorf(pos(4, 1), "worse thing")

	if st.ErrorCount != 2 {
		t.Errorf("ErrorCount = %d, want 2", st.ErrorCount)
	}
	if st.WarningCount != 1 {
		t.Errorf("WarningCount = %d, want 1", st.WarningCount)
	}
	if len(st.Diagnostics) != 4 {
		t.Fatalf("len(Diagnostics) = %d, want 4", len(st.Diagnostics))
	}

	// Order of recording is preserved.
	wantSeverities := []compile.Severity{
		compile.SeverityError,
		compile.SeverityWarning,
		compile.SeverityInfo,
		compile.SeverityError,
	}
	for i, want := range wantSeverities {
		if st.Diagnostics[i].Severity != want {
			t.Errorf("Diagnostics[%d].Severity = %q, want %q", i, st.Diagnostics[i].Severity, want)
		}
	}
	if st.Diagnostics[0].Message != "bad thing" {
		t.Errorf("Diagnostics[0].Message = %q, want %q", st.Diagnostics[0].Message, "bad thing")
	}
	if st.Diagnostics[0].Pos != pos(1, 1) {
		t.Errorf("Diagnostics[0].Pos = %v, want %v", st.Diagnostics[0].Pos, pos(1, 1))
	}
}

func TestStateIncludeStack(t *testing.T) {
	t.Parallel()

	st := compile.NewState()
	if st.IncludeDepth() != 0 {
		t.Fatalf("IncludeDepth() = %d, want 0", st.IncludeDepth())
	}

	st.PushInclude("a.qbk")
	st.PushInclude("b.qbk")
	if st.IncludeDepth() != 2 {
		t.Fatalf("IncludeDepth() = %d, want 2", st.IncludeDepth())
	}

	st.PopInclude()
	if st.IncludeDepth() != 1 {
		t.Fatalf("IncludeDepth() = %d, want 1", st.IncludeDepth())
	}

	// Popping an empty stack is a no-op.
	st.PopInclude()
	st.PopInclude()
	if st.IncludeDepth() != 0 {
		t.Fatalf("IncludeDepth() = %d, want 0", st.IncludeDepth())
	}
}

func TestMacroTable(t *testing.T) {
	t.Parallel()

	m := make(compile.MacroTable)

	if existed := m.Define("__version__", "1.0"); existed {
		t.Error("Define() on fresh table reported an existing definition")
	}
	if existed := m.Define("__version__", "2.0"); !existed {
		t.Error("Define() did not report overwrite of existing definition")
	}

	expansion, ok := m.Lookup("__version__")
	if !ok || expansion != "2.0" {
		t.Errorf("Lookup() = (%q, %v), want (\"2.0\", true)", expansion, ok)
	}
	if !m.IsDefined("__version__") {
		t.Error("IsDefined() = false for defined macro")
	}
	if m.IsDefined("__other__") {
		t.Error("IsDefined() = true for undefined macro")
	}
}

func TestTemplateTable(t *testing.T) {
	t.Parallel()

	tt := make(compile.TemplateTable)

	tmpl := compile.Template{Name: "alert", Params: []string{"text"}, Body: "[note [text]]"}
	if existed := tt.Define(tmpl); existed {
		t.Error("Define() on fresh table reported an existing definition")
	}

	got, ok := tt.Lookup("alert")
	if !ok {
		t.Fatal("Lookup() = false for defined template")
	}
	if got.Body != tmpl.Body || len(got.Params) != 1 {
		t.Errorf("Lookup() = %+v, want %+v", got, tmpl)
	}

	redefined := compile.Template{Name: "alert", Body: "[tip [text]]"}
	if existed := tt.Define(redefined); !existed {
		t.Error("Define() did not report overwrite of existing definition")
	}
	got, _ = tt.Lookup("alert")
	if got.Body != redefined.Body {
		t.Errorf("redefinition did not win: Body = %q", got.Body)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    compile.Format
		wantErr bool
	}{
		{"boostbook", compile.FormatBoostbook, false},
		{"html", compile.FormatHTML, false},
		{"", compile.FormatBoostbook, false},
		{"docbook", "", true},
		{"HTML", "", true},
	}

	for _, tc := range tests {
		got, err := compile.ParseFormat(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q) error = nil, want error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) error = %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestFormatExtension(t *testing.T) {
	t.Parallel()

	if got := compile.FormatBoostbook.Extension(); got != ".xml" {
		t.Errorf("boostbook Extension() = %q, want %q", got, ".xml")
	}
	if got := compile.FormatHTML.Extension(); got != ".html" {
		t.Errorf("html Extension() = %q, want %q", got, ".html")
	}
}
