// Package chroma provides syntax highlighting and language detection
// using the chroma library.
package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/revi-dev/revi"
)

// Compile-time interface verification.
var _ revi.Highlighter = (*Highlighter)(nil)

// tokeniseOptions keeps the input byte-for-byte: chroma's defaults rewrite
// "\r\n" to "\n", which would shift every offset after it.
var tokeniseOptions = &chromalib.TokeniseOptions{State: "root", EnsureLF: false}

// Highlighter extracts syntax spans using chroma.
type Highlighter struct{}

// NewHighlighter creates a new chroma-based highlighter.
func NewHighlighter() *Highlighter {
	return &Highlighter{}
}

// Highlight returns byte-range spans over text for the given language.
// Returns nil if the language is not supported, an error occurs, or text is empty.
// Tokens that map to no category produce no span.
func (h *Highlighter) Highlight(language, text string) []revi.Span {
	if text == "" {
		return nil
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}

	// Coalesce for better performance with consecutive tokens of the same type
	lexer = chromalib.Coalesce(lexer)

	iterator, err := lexer.Tokenise(tokeniseOptions, text)
	if err != nil {
		return nil
	}

	var spans []revi.Span
	offset := 0
	for token := iterator(); token != chromalib.EOF; token = iterator() {
		start := offset
		offset += len(token.Value)
		if offset > len(text) {
			// Lexers may append a trailing newline; never point past the input.
			offset = len(text)
		}

		category := CategoryFor(token.Type)
		if category == "" || start >= offset {
			continue
		}

		// Adjacent tokens of different types can share a category.
		if n := len(spans); n > 0 && spans[n-1].End == start && spans[n-1].Category == category {
			spans[n-1].End = offset
			continue
		}
		spans = append(spans, revi.Span{Start: start, End: offset, Category: category})
	}

	return spans
}
