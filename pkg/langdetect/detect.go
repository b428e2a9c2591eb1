// Package langdetect guesses the programming language of code blocks.
// Quickbook code blocks carry no language tag, so the encoders use this
// to fill the language attribute of generated programlisting/pre output.
// It uses go-enry, with a few cheap pattern checks ahead of the
// classifier for the languages Boost documentation quotes most.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

const (
	langCpp    = "c++"
	langC      = "c"
	langGo     = "go"
	langPython = "python"
	langJSON   = "json"
	langXML    = "xml"
	langSQL    = "sql"
	langBash   = "bash"
	langText   = "text"
)

// classifierCandidates narrows the enry classifier to languages that
// plausibly appear inside technical documentation.
var classifierCandidates = []string{
	"C++", "C", "Go", "Python", "Shell", "JavaScript",
	"SQL", "JSON", "XML", "YAML", "CMake", "Makefile",
}

// Detect returns a lowercase language tag for code content, or "text"
// when nothing can be said with confidence.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return langText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}
	if lang := detectByPattern(trimmed); lang != "" {
		return lang
	}
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}
	return langText
}

// detectByPattern applies high-precision checks in order of specificity.
func detectByPattern(trimmed []byte) string {
	text := string(trimmed)

	switch {
	case isCpp(text):
		return langCpp
	case bytes.HasPrefix(trimmed, []byte("package ")):
		return langGo
	case isPython(text):
		return langPython
	case isXML(trimmed):
		return langXML
	case isJSON(trimmed):
		return langJSON
	case isSQL(text):
		return langSQL
	default:
		return ""
	}
}

func isCpp(text string) bool {
	if strings.Contains(text, "#include") {
		return true
	}
	if strings.Contains(text, "template<") || strings.Contains(text, "template <") {
		return true
	}
	return strings.Contains(text, "namespace ") && strings.Contains(text, "{")
}

func isPython(text string) bool {
	if strings.Contains(text, "def ") && strings.Contains(text, "):") {
		return true
	}
	return strings.Contains(text, "__name__") || strings.Contains(text, "__main__")
}

func isXML(trimmed []byte) bool {
	if bytes.HasPrefix(trimmed, []byte("<?xml")) {
		return true
	}
	return bytes.HasPrefix(trimmed, []byte("<")) && bytes.Contains(trimmed, []byte("</"))
}

func isJSON(trimmed []byte) bool {
	return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`))
}

func isSQL(text string) bool {
	upper := strings.ToUpper(strings.TrimSpace(text))
	for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE TABLE"} {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}

// normalize converts go-enry language names to lowercase tags.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return langBash
	case "C++":
		return langCpp
	case "C":
		return langC
	default:
		return strings.ToLower(lang)
	}
}
