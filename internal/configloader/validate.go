package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/goqbc/pkg/compile"
	"github.com/yaklabco/goqbc/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "line_width").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// validLogLevels matches what internal/logging accepts.
//
//nolint:gochecknoglobals // Read-only lookup table.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks a merged configuration for values the compiler
// cannot work with.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}

	if cfg.Format != "" {
		if _, err := compile.ParseFormat(cfg.Format); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "format",
				Value:   cfg.Format,
				Message: err.Error(),
			})
		}
	}

	if cfg.Indent < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "indent",
			Value:   cfg.Indent,
			Message: "must not be negative",
		})
	}
	if cfg.LineWidth < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "line_width",
			Value:   cfg.LineWidth,
			Message: "must not be negative",
		})
	}

	for _, def := range cfg.Defines {
		if !strings.Contains(def, "=") {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "defines",
				Value:   def,
				Message: "must have the form NAME=VALUE",
			})
		}
	}

	if cfg.LogLevel != "" && !validLogLevels[cfg.LogLevel] {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "log_level",
			Value:   cfg.LogLevel,
			Message: "unknown level, falling back to warn",
		})
	}

	return result
}
