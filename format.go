package revi

import (
	"bufio"
	"fmt"
	"io"
)

// WriteUnified writes the result back out as unified diff text with
// "--- a/" and "+++ b/" file headers. Synthetic diffs use /dev/null for
// the missing side.
func WriteUnified(w io.Writer, r *FileDiffResult) error {
	if len(r.Hunks) == 0 {
		return nil
	}

	bw := bufio.NewWriter(w)
	oldName, newName := "a/"+r.Path, "b/"+r.Path
	switch {
	case r.Stats.Deletions == 0 && r.Hunks[0].OldStart == 0 && r.Hunks[0].OldCount == 0:
		oldName = "/dev/null"
	case r.Stats.Additions == 0 && r.Hunks[0].NewStart == 0 && r.Hunks[0].NewCount == 0:
		newName = "/dev/null"
	}
	fmt.Fprintf(bw, "--- %s\n+++ %s\n", oldName, newName)

	for _, hunk := range r.Hunks {
		header := hunk.Header
		if header == "" {
			header = FormatHunkHeader(hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)
		}
		bw.WriteString(header)
		bw.WriteByte('\n')
		for _, line := range hunk.Lines {
			bw.WriteString(linePrefix(line.Kind))
			bw.WriteString(line.Text)
			bw.WriteByte('\n')
		}
	}

	return bw.Flush()
}

// FormatHunkHeader renders a "@@ -a,b +c,d @@" header.
func FormatHunkHeader(oldStart, oldCount, newStart, newCount int) string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount)
}

func linePrefix(k LineKind) string {
	switch k {
	case LineAdded:
		return "+"
	case LineDeleted:
		return "-"
	default:
		return " "
	}
}
