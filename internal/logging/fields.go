package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldFormat       = "format"
	FieldIndent       = "indent"
	FieldLineWidth    = "line_width"
	FieldIncludePaths = "include_paths"
	FieldDefines      = "defines"

	// Compilation fields.
	FieldErrors       = "errors"
	FieldWarnings     = "warnings"
	FieldSectionLevel = "section_level"
	FieldBytes        = "bytes"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
