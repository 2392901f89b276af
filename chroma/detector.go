package chroma

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/revi-dev/revi"
)

// Compile-time interface verification.
var _ revi.LanguageDetector = (*Detector)(nil)

// Detector detects programming languages from file paths using chroma.
type Detector struct{}

// NewDetector creates a new chroma-based language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectFromPath returns the chroma lexer name for the given path, or
// revi.PlainText if the language cannot be determined. Matching uses the
// file extension and well-known file names (Makefile, Dockerfile, ...).
// Strips "a/" or "b/" prefixes common in diff output.
func (d *Detector) DetectFromPath(path string) string {
	// Strip common diff prefixes
	path = strings.TrimPrefix(path, "a/")
	path = strings.TrimPrefix(path, "b/")

	// Get just the filename for extension matching
	filename := filepath.Base(path)

	lexer := lexers.Match(filename)
	if lexer == nil {
		// Names like "makefile" or "DOCKERFILE" only match in canonical case.
		lexer = lexers.Match(canonicalName(filename))
	}
	if lexer == nil {
		return revi.PlainText
	}

	return lexer.Config().Name
}

// canonicalName capitalizes extension-less file names so that
// case-sensitive filename patterns still match.
func canonicalName(filename string) string {
	if filename == "" || strings.Contains(filename, ".") {
		return filename
	}
	lower := strings.ToLower(filename)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
