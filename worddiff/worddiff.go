// Package worddiff computes word-level change ranges between two lines
// using Myers' algorithm from sergi/go-diff over word tokens.
package worddiff

import (
	"unicode/utf8"

	"github.com/revi-dev/revi"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Compile-time interface verification.
var _ revi.WordDiffer = (*Differ)(nil)

// Differ tokenizes lines and computes word-level diffs.
type Differ struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewDiffer creates a new Differ instance.
func NewDiffer() *Differ {
	dmp := diffmatchpatch.New()
	// No deadline: the edit script must be minimal.
	dmp.DiffTimeout = 0
	return &Differ{dmp: dmp}
}

// Tokenize splits a string into tokens using a hand-written scanner.
// Token types: identifiers, numbers, operators, punctuation, whitespace.
// Quotes are punctuation, so words inside string literals diff separately.
func (d *Differ) Tokenize(s string) []string {
	if len(s) == 0 {
		return nil
	}

	// Pre-allocate with estimated capacity (avoid reallocations)
	tokens := make([]string, 0, len(s)/3+1)
	i := 0

	for i < len(s) {
		start := i
		c := s[i]

		switch {
		case isIdentifierStart(c):
			// Identifier: [a-zA-Z_][a-zA-Z0-9_]*
			i++
			for i < len(s) && isIdentifierChar(s[i]) {
				i++
			}

		case isDigit(c):
			// Number: [0-9]+(\.[0-9]+)?
			i++
			for i < len(s) && isDigit(s[i]) {
				i++
			}
			if i < len(s) && s[i] == '.' && i+1 < len(s) && isDigit(s[i+1]) {
				i++
				for i < len(s) && isDigit(s[i]) {
					i++
				}
			}

		case isOperatorChar(c):
			// Operator: [+\-*/=<>!&|^%:]+
			i++
			for i < len(s) && isOperatorChar(s[i]) {
				i++
			}

		case isPunctuation(c):
			i++

		case isWhitespace(c):
			i++
			for i < len(s) && isWhitespace(s[i]) {
				i++
			}

		default:
			// Single character (catch-all for UTF-8 and other chars)
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
		}

		tokens = append(tokens, s[start:i])
	}

	return tokens
}

func isIdentifierStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentifierChar(c byte) bool {
	return isIdentifierStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isOperatorChar(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '=', '<', '>', '!', '&', '|', '^', '%', ':':
		return true
	}
	return false
}

func isPunctuation(c byte) bool {
	switch c {
	case '(', ')', '{', '}', '[', ']', ';', ',', '.', '"', '\'', '`':
		return true
	}
	return false
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Ranges returns the byte ranges of old that were deleted and the byte
// ranges of new that were inserted, at word granularity. Identical lines
// yield no ranges.
func (d *Differ) Ranges(old, new string) (oldRanges, newRanges []revi.Range) {
	if old == new {
		return nil, nil
	}

	oldTokens := d.Tokenize(old)
	newTokens := d.Tokenize(new)

	// Map every distinct token to one rune so the character-level Myers
	// implementation runs over tokens.
	enc := newTokenEncoder()
	oldRunes := enc.encode(oldTokens)
	newRunes := enc.encode(newTokens)

	diffs := d.dmp.DiffMainRunes(oldRunes, newRunes, false)

	var oldPos, newPos int
	for _, diff := range diffs {
		n := 0
		for _, r := range diff.Text {
			n += len(enc.tokens[decodeRune(r)])
		}
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			oldRanges = append(oldRanges, revi.Range{Start: oldPos, End: oldPos + n})
			oldPos += n
		case diffmatchpatch.DiffInsert:
			newRanges = append(newRanges, revi.Range{Start: newPos, End: newPos + n})
			newPos += n
		case diffmatchpatch.DiffEqual:
			oldPos += n
			newPos += n
		}
	}

	return revi.MergeRanges(oldRanges), revi.MergeRanges(newRanges)
}

// tokenEncoder assigns each distinct token a stand-in rune.
type tokenEncoder struct {
	index  map[string]int
	tokens []string
}

func newTokenEncoder() *tokenEncoder {
	return &tokenEncoder{index: make(map[string]int)}
}

func (e *tokenEncoder) encode(tokens []string) []rune {
	runes := make([]rune, len(tokens))
	for i, tok := range tokens {
		id, ok := e.index[tok]
		if !ok {
			id = len(e.tokens)
			e.index[tok] = id
			e.tokens = append(e.tokens, tok)
		}
		runes[i] = encodeRune(id)
	}
	return runes
}

// Stand-in runes skip the surrogate block, which does not survive a
// round trip through a Go string.
const (
	surrogateMin = 0xD800
	surrogateLen = 0x800
)

func encodeRune(id int) rune {
	r := rune(id + 1)
	if r >= surrogateMin {
		r += surrogateLen
	}
	return r
}

func decodeRune(r rune) int {
	if r >= surrogateMin+surrogateLen {
		r -= surrogateLen
	}
	return int(r) - 1
}
