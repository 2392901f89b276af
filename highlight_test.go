package revi_test

import (
	"testing"

	"github.com/revi-dev/revi"
	"github.com/revi-dev/revi/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"blank lines", "a\n\n\nb\n", []string{"a", "", "", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"single newline", "\n", []string{""}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, revi.SplitLines(tc.in))
		})
	}
}

func TestNewLineSpans(t *testing.T) {
	t.Parallel()

	t.Run("rebases spans to line starts", func(t *testing.T) {
		t.Parallel()

		text := "var a\nvar bb\n"
		spans := []revi.Span{
			{Start: 0, End: 3, Category: revi.CategoryKeyword},
			{Start: 6, End: 9, Category: revi.CategoryKeyword},
			{Start: 10, End: 12, Category: revi.CategoryVariable},
		}

		lines := revi.NewLineSpans(text, spans)

		require.Len(t, lines, 2)
		assert.Equal(t, []revi.Span{{Start: 0, End: 3, Category: revi.CategoryKeyword}}, lines[0])
		assert.Equal(t, []revi.Span{
			{Start: 0, End: 3, Category: revi.CategoryKeyword},
			{Start: 4, End: 6, Category: revi.CategoryVariable},
		}, lines[1])
	})

	t.Run("splits spans across lines", func(t *testing.T) {
		t.Parallel()

		text := "/* a\n\nb */\n"
		spans := []revi.Span{{Start: 0, End: 10, Category: revi.CategoryComment}}

		lines := revi.NewLineSpans(text, spans)

		require.Len(t, lines, 3)
		assert.Equal(t, []revi.Span{{Start: 0, End: 4, Category: revi.CategoryComment}}, lines[0])
		assert.Empty(t, lines[1])
		assert.Equal(t, []revi.Span{{Start: 0, End: 4, Category: revi.CategoryComment}}, lines[2])
	})

	t.Run("skips carriage returns", func(t *testing.T) {
		t.Parallel()

		text := "ab\r\ncd\r\n"
		spans := []revi.Span{{Start: 4, End: 6, Category: revi.CategoryString}}

		lines := revi.NewLineSpans(text, spans)

		require.Len(t, lines, 2)
		assert.Empty(t, lines[0])
		assert.Equal(t, []revi.Span{{Start: 0, End: 2, Category: revi.CategoryString}}, lines[1])
	})

	t.Run("accepts unsorted input", func(t *testing.T) {
		t.Parallel()

		text := "abcd\n"
		spans := []revi.Span{
			{Start: 2, End: 4, Category: revi.CategoryNumber},
			{Start: 0, End: 2, Category: revi.CategoryOperator},
		}

		lines := revi.NewLineSpans(text, spans)

		assert.Equal(t, []revi.Span{
			{Start: 0, End: 2, Category: revi.CategoryOperator},
			{Start: 2, End: 4, Category: revi.CategoryNumber},
		}, lines[0])
	})

	t.Run("line lookup is one-based and bounded", func(t *testing.T) {
		t.Parallel()

		lines := revi.NewLineSpans("a\nb\n", nil)

		_, ok := lines.Line(0)
		assert.False(t, ok)
		_, ok = lines.Line(2)
		assert.True(t, ok)
		_, ok = lines.Line(3)
		assert.False(t, ok)

		var missing revi.LineSpans
		_, ok = missing.Line(1)
		assert.False(t, ok)
	})
}

func TestHighlightLine(t *testing.T) {
	t.Parallel()

	t.Run("normalizes highlighter output", func(t *testing.T) {
		t.Parallel()

		h := &mock.Highlighter{
			HighlightFn: func(language, text string) []revi.Span {
				assert.Equal(t, "go", language)
				return []revi.Span{
					{Start: 3, End: 99, Category: revi.CategoryString},
					{Start: 0, End: 3, Category: revi.CategoryKeyword},
					{Start: 1, End: 1, Category: revi.CategoryNumber},
				}
			},
		}

		got := revi.HighlightLine(h, "go", "var x")

		assert.Equal(t, []revi.Span{
			{Start: 0, End: 3, Category: revi.CategoryKeyword},
			{Start: 3, End: 5, Category: revi.CategoryString},
		}, got)
	})

	t.Run("empty line needs no highlighting", func(t *testing.T) {
		t.Parallel()

		h := &mock.Highlighter{
			HighlightFn: func(language, text string) []revi.Span {
				t.Fatal("highlighter should not be called")
				return nil
			},
		}

		assert.Nil(t, revi.HighlightLine(h, "go", ""))
	})
}
