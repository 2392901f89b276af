// Package unidiff turns the unified diff text of a single file into
// annotated hunks, and builds equivalent hunks for wholly added or
// deleted files.
package unidiff

import (
	"strconv"
	"strings"

	"github.com/revi-dev/revi"
)

// Sources supplies syntax spans for the lines of a diff.
type Sources struct {
	Old revi.LineSpans // Whole-file spans of the base version, may be nil
	New revi.LineSpans // Whole-file spans of the head version, may be nil

	// Fallback highlights a line in isolation when the whole-file spans do
	// not cover it. May be nil.
	Fallback func(line string) []revi.Span
}

func (s Sources) lookup(index revi.LineSpans, lineNo int, text string) []revi.Span {
	if spans, ok := index.Line(lineNo); ok {
		return spans
	}
	if s.Fallback != nil {
		return s.Fallback(text)
	}
	return nil
}

// Parse splits the unified diff text of one file into hunks.
//
// Lines before the first hunk header (diff, index, ---/+++ lines) and lines
// that are neither context nor changes (e.g. "\ No newline at end of file")
// are skipped without affecting line numbers. A hunk whose header cannot be
// parsed is dropped together with its lines.
func Parse(text string, src Sources) ([]revi.Hunk, revi.DiffStats) {
	var (
		hunks   []revi.Hunk
		current *revi.Hunk
		stats   revi.DiffStats
		oldNo   int
		newNo   int
	)

	flush := func() {
		if current != nil {
			hunks = append(hunks, *current)
			current = nil
		}
	}

	for _, line := range revi.SplitLines(text) {
		if strings.HasPrefix(line, "@@") {
			flush()
			oldStart, oldCount, newStart, newCount, ok := ParseHunkHeader(line)
			if !ok {
				continue
			}
			current = &revi.Hunk{
				Header:   line,
				OldStart: oldStart,
				OldCount: oldCount,
				NewStart: newStart,
				NewCount: newCount,
			}
			oldNo, newNo = oldStart, newStart
			continue
		}
		if current == nil {
			continue
		}

		var dl revi.DiffLine
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			content := line[1:]
			dl = revi.DiffLine{
				Kind:      revi.LineAdded,
				Text:      content,
				NewLineNo: newNo,
				Spans:     src.lookup(src.New, newNo, content),
			}
			newNo++
			stats.Additions++
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			content := line[1:]
			dl = revi.DiffLine{
				Kind:      revi.LineDeleted,
				Text:      content,
				OldLineNo: oldNo,
				Spans:     src.lookup(src.Old, oldNo, content),
			}
			oldNo++
			stats.Deletions++
		case line == "" || strings.HasPrefix(line, " "):
			content := ""
			if line != "" {
				content = line[1:]
			}
			dl = revi.DiffLine{
				Kind:      revi.LineContext,
				Text:      content,
				OldLineNo: oldNo,
				NewLineNo: newNo,
				Spans:     src.lookup(src.New, newNo, content),
			}
			oldNo++
			newNo++
		default:
			continue
		}
		current.Lines = append(current.Lines, dl)
	}
	flush()

	return hunks, stats
}

// ParseHunkHeader parses "@@ -a,b +c,d @@ section". A missing count
// defaults to 1. The final result is false if the header is malformed.
func ParseHunkHeader(header string) (oldStart, oldCount, newStart, newCount int, ok bool) {
	fields := strings.Split(header, " ")
	if len(fields) < 3 || !strings.HasPrefix(fields[1], "-") || !strings.HasPrefix(fields[2], "+") {
		return 0, 0, 0, 0, false
	}
	oldStart, oldCount, ok = parseRange(fields[1][1:])
	if !ok {
		return 0, 0, 0, 0, false
	}
	newStart, newCount, ok = parseRange(fields[2][1:])
	if !ok {
		return 0, 0, 0, 0, false
	}
	return oldStart, oldCount, newStart, newCount, true
}

func parseRange(s string) (start, count int, ok bool) {
	startStr, countStr, hasCount := strings.Cut(s, ",")
	start, err := strconv.Atoi(startStr)
	if err != nil || start < 0 {
		return 0, 0, false
	}
	if !hasCount {
		return start, 1, true
	}
	count, err = strconv.Atoi(countStr)
	if err != nil || count < 0 {
		return 0, 0, false
	}
	return start, count, true
}
