package revi

import "fmt"

// ValidationReason identifies why a diff result is inconsistent.
type ValidationReason string

// Validation error reasons.
const (
	ErrSpanOutOfBounds ValidationReason = "span_out_of_bounds"
	ErrSpanOverlap     ValidationReason = "span_overlap"
	ErrSpanUnmerged    ValidationReason = "span_unmerged"
	ErrLineNumber      ValidationReason = "line_number"
	ErrHunkCount       ValidationReason = "hunk_count"
	ErrStatsMismatch   ValidationReason = "stats_mismatch"
)

// ValidationError describes a single inconsistency in a FileDiffResult.
type ValidationError struct {
	Hunk   int              // Index of the hunk, -1 for file-level errors
	Line   int              // Index of the line within the hunk, -1 for hunk-level errors
	Reason ValidationReason // What is wrong
	Detail string           // Human-readable specifics
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	switch {
	case e.Hunk < 0:
		return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
	case e.Line < 0:
		return fmt.Sprintf("hunk %d: %s: %s", e.Hunk, e.Reason, e.Detail)
	default:
		return fmt.Sprintf("hunk %d line %d: %s: %s", e.Hunk, e.Line, e.Reason, e.Detail)
	}
}

// Validate checks the structural invariants of a diff result: spans are
// in bounds, sorted, non-overlapping and merged; line numbers advance from
// the hunk header; hunk line counts match the header; stats match the lines.
// Returns nil if the result is valid.
func Validate(r *FileDiffResult) []ValidationError {
	var errs []ValidationError
	additions, deletions := 0, 0

	for h, hunk := range r.Hunks {
		oldNo, newNo := hunk.OldStart, hunk.NewStart
		oldSeen, newSeen := 0, 0

		for l, line := range hunk.Lines {
			wantOld, wantNew := 0, 0
			switch line.Kind {
			case LineContext:
				wantOld, wantNew = oldNo, newNo
				oldNo++
				newNo++
				oldSeen++
				newSeen++
			case LineAdded:
				wantNew = newNo
				newNo++
				newSeen++
				additions++
			case LineDeleted:
				wantOld = oldNo
				oldNo++
				oldSeen++
				deletions++
			}
			if line.OldLineNo != wantOld || line.NewLineNo != wantNew {
				errs = append(errs, ValidationError{
					Hunk: h, Line: l, Reason: ErrLineNumber,
					Detail: fmt.Sprintf("got old=%d new=%d, want old=%d new=%d",
						line.OldLineNo, line.NewLineNo, wantOld, wantNew),
				})
			}
			errs = append(errs, validateSpans(h, l, line)...)
		}

		if oldSeen != hunk.OldCount || newSeen != hunk.NewCount {
			errs = append(errs, ValidationError{
				Hunk: h, Line: -1, Reason: ErrHunkCount,
				Detail: fmt.Sprintf("header says -%d +%d, lines give -%d +%d",
					hunk.OldCount, hunk.NewCount, oldSeen, newSeen),
			})
		}
	}

	if additions != r.Stats.Additions || deletions != r.Stats.Deletions {
		errs = append(errs, ValidationError{
			Hunk: -1, Line: -1, Reason: ErrStatsMismatch,
			Detail: fmt.Sprintf("stats say +%d -%d, lines give +%d -%d",
				r.Stats.Additions, r.Stats.Deletions, additions, deletions),
		})
	}

	return errs
}

func validateSpans(h, l int, line DiffLine) []ValidationError {
	var errs []ValidationError
	for i, s := range line.Spans {
		if s.Start < 0 || s.End > len(line.Text) || s.Start >= s.End {
			errs = append(errs, ValidationError{
				Hunk: h, Line: l, Reason: ErrSpanOutOfBounds,
				Detail: fmt.Sprintf("span %d [%d,%d) in %d-byte line", i, s.Start, s.End, len(line.Text)),
			})
			continue
		}
		if i == 0 {
			continue
		}
		prev := line.Spans[i-1]
		switch {
		case s.Start < prev.End:
			errs = append(errs, ValidationError{
				Hunk: h, Line: l, Reason: ErrSpanOverlap,
				Detail: fmt.Sprintf("span %d starts at %d before previous end %d", i, s.Start, prev.End),
			})
		case s.Start == prev.End && s.Category == prev.Category:
			errs = append(errs, ValidationError{
				Hunk: h, Line: l, Reason: ErrSpanUnmerged,
				Detail: fmt.Sprintf("spans %d and %d share category %q", i-1, i, s.Category),
			})
		}
	}
	return errs
}
