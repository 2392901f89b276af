package revi

import (
	"sort"
	"strings"
)

// PlainText is the language identifier used when no language can be detected.
const PlainText = "plaintext"

// Span categories. Syntax categories describe what a byte range is;
// word-change categories mark finer-grained changes within modified lines.
const (
	CategoryKeyword         = "keyword"
	CategoryType            = "type"
	CategoryTypeBuiltin     = "type.builtin"
	CategoryString          = "string"
	CategoryStringSpecial   = "string.special"
	CategoryEscape          = "escape"
	CategoryNumber          = "number"
	CategoryComment         = "comment"
	CategoryOperator        = "operator"
	CategoryPunctuation     = "punctuation"
	CategoryFunction        = "function"
	CategoryFunctionBuiltin = "function.builtin"
	CategoryFunctionMacro   = "function.macro"
	CategoryConstant        = "constant"
	CategoryConstantBuiltin = "constant.builtin"
	CategoryVariable        = "variable"
	CategoryVariableBuiltin = "variable.builtin"
	CategoryProperty        = "property"
	CategoryAttribute       = "attribute"
	CategoryTag             = "tag"
	CategoryNamespace       = "namespace"
	CategoryLabel           = "label"

	CategoryWordAdded   = "word-added"
	CategoryWordDeleted = "word-deleted"
)

// Highlighter produces syntax spans for source text.
type Highlighter interface {
	// Highlight returns byte-range spans over text for the given language.
	// Returns an empty result if the language is not supported.
	Highlight(language, text string) []Span
}

// LanguageDetector determines the programming language from a file path.
type LanguageDetector interface {
	// DetectFromPath returns the language identifier for the given path,
	// or PlainText if the language cannot be determined.
	DetectFromPath(path string) string
}

// HighlightLine highlights a single line in isolation. Spans are relative
// to the start of the line. It is the fallback when whole-file spans are
// unavailable for a line.
func HighlightLine(h Highlighter, language, line string) []Span {
	if h == nil || line == "" {
		return nil
	}
	return normalizeSpans(h.Highlight(language, line), len(line))
}

// LineSpans holds syntax spans of a whole file indexed by line.
// Spans of each line are relative to the start of that line.
type LineSpans [][]Span

// Line returns the spans of the 1-based line n.
// The second result is false if n is outside the file.
func (ls LineSpans) Line(n int) ([]Span, bool) {
	if n < 1 || n > len(ls) {
		return nil, false
	}
	return ls[n-1], true
}

// NewLineSpans splits whole-file spans into per-line spans. Spans that
// cross line boundaries are split, newline bytes are excluded.
func NewLineSpans(text string, spans []Span) LineSpans {
	lines := SplitLines(text)
	if len(lines) == 0 {
		return LineSpans{}
	}

	// Byte offset at which each line starts.
	starts := make([]int, len(lines))
	offset := 0
	for i, line := range lines {
		starts[i] = offset
		offset += len(line)
		if offset < len(text) && text[offset] == '\r' {
			offset++
		}
		offset++ // '\n'
	}

	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	result := make(LineSpans, len(lines))
	for _, span := range sorted {
		if span.Category == "" || span.End <= span.Start {
			continue
		}
		// Last line starting at or before span.Start.
		idx := sort.Search(len(starts), func(i int) bool { return starts[i] > span.Start }) - 1
		if idx < 0 {
			idx = 0
		}
		for ; idx < len(lines) && starts[idx] < span.End; idx++ {
			lineStart, lineLen := starts[idx], len(lines[idx])
			start := max(span.Start-lineStart, 0)
			end := min(span.End-lineStart, lineLen)
			if start >= end {
				continue
			}
			result[idx] = appendSpan(result[idx], Span{Start: start, End: end, Category: span.Category})
		}
	}
	return result
}

// SplitLines splits text into lines. A trailing newline does not start an
// extra line and a "\r" before "\n" is dropped.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// normalizeSpans sorts spans, clips them to n bytes, drops overlaps and
// merges adjacent spans sharing a category.
func normalizeSpans(spans []Span, n int) []Span {
	if len(spans) == 0 {
		return nil
	}
	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var out []Span
	for _, s := range sorted {
		s.Start = max(s.Start, 0)
		s.End = min(s.End, n)
		if s.Category == "" || s.Start >= s.End {
			continue
		}
		out = appendSpan(out, s)
	}
	return out
}

// appendSpan appends s to sorted spans, trimming any overlap with the last
// span and merging it when adjacent with the same category.
func appendSpan(spans []Span, s Span) []Span {
	if len(spans) == 0 {
		return append(spans, s)
	}
	last := &spans[len(spans)-1]
	if s.Start < last.End {
		s.Start = last.End
		if s.Start >= s.End {
			return spans
		}
	}
	if s.Start == last.End && s.Category == last.Category {
		last.End = s.End
		return spans
	}
	return append(spans, s)
}
