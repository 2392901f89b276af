package unidiff

import "github.com/revi-dev/revi"

// NewFile builds the diff of a file that exists only in the head revision:
// one hunk with every line added. spans are the whole-file spans of content.
// An empty file yields no hunks.
func NewFile(content string, spans revi.LineSpans) ([]revi.Hunk, revi.DiffStats) {
	lines := revi.SplitLines(content)
	n := len(lines)
	if n == 0 {
		return nil, revi.DiffStats{}
	}

	hunk := revi.Hunk{
		Header:   revi.FormatHunkHeader(0, 0, 1, n),
		NewStart: 1,
		NewCount: n,
		Lines:    make([]revi.DiffLine, 0, n),
	}
	for i, text := range lines {
		lineSpans, _ := spans.Line(i + 1)
		hunk.Lines = append(hunk.Lines, revi.DiffLine{
			Kind:      revi.LineAdded,
			Text:      text,
			NewLineNo: i + 1,
			Spans:     lineSpans,
		})
	}

	return []revi.Hunk{hunk}, revi.DiffStats{Additions: n}
}

// DeletedFile builds the diff of a file that exists only in the base
// revision: one hunk with every line deleted. An empty file yields no hunks.
func DeletedFile(content string, spans revi.LineSpans) ([]revi.Hunk, revi.DiffStats) {
	lines := revi.SplitLines(content)
	n := len(lines)
	if n == 0 {
		return nil, revi.DiffStats{}
	}

	hunk := revi.Hunk{
		Header:   revi.FormatHunkHeader(1, n, 0, 0),
		OldStart: 1,
		OldCount: n,
		Lines:    make([]revi.DiffLine, 0, n),
	}
	for i, text := range lines {
		lineSpans, _ := spans.Line(i + 1)
		hunk.Lines = append(hunk.Lines, revi.DiffLine{
			Kind:      revi.LineDeleted,
			Text:      text,
			OldLineNo: i + 1,
			Spans:     lineSpans,
		})
	}

	return []revi.Hunk{hunk}, revi.DiffStats{Deletions: n}
}
