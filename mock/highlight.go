package mock

import "github.com/revi-dev/revi"

// Compile-time interface verification.
var (
	_ revi.Highlighter      = (*Highlighter)(nil)
	_ revi.LanguageDetector = (*LanguageDetector)(nil)
	_ revi.WordDiffer       = (*WordDiffer)(nil)
)

// Highlighter is a mock implementation of revi.Highlighter.
type Highlighter struct {
	HighlightFn func(language, text string) []revi.Span
}

func (h *Highlighter) Highlight(language, text string) []revi.Span {
	return h.HighlightFn(language, text)
}

// LanguageDetector is a mock implementation of revi.LanguageDetector.
type LanguageDetector struct {
	DetectFromPathFn func(path string) string
}

func (d *LanguageDetector) DetectFromPath(path string) string {
	return d.DetectFromPathFn(path)
}

// WordDiffer is a mock implementation of revi.WordDiffer.
type WordDiffer struct {
	RangesFn func(old, new string) (oldRanges, newRanges []revi.Range)
}

func (d *WordDiffer) Ranges(old, new string) (oldRanges, newRanges []revi.Range) {
	return d.RangesFn(old, new)
}
