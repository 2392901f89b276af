package revi

import "sort"

// Span tags a half-open byte range of a line with a category.
type Span struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Category string `json:"category"`
}

// Range is a half-open byte range within a line.
type Range struct {
	Start int
	End   int
}

// MergeRanges sorts ranges by start and merges overlapping or adjacent ones.
// Empty ranges are dropped.
func MergeRanges(ranges []Range) []Range {
	var sorted []Range
	for _, r := range ranges {
		if r.Start < r.End {
			sorted = append(sorted, r)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	merged := []Range{sorted[0]}
	for _, r := range sorted[1:] {
		cur := &merged[len(merged)-1]
		if r.Start <= cur.End {
			cur.End = max(cur.End, r.End)
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// FuseSpans merges syntax spans and word-change ranges of one line into a
// single ordered, non-overlapping span list. Where both cover a byte, the
// word-change category wins. Bytes covered by neither are left out.
// Offsets are byte offsets into text.
func FuseSpans(text string, syntax []Span, words []Range, category string) []Span {
	n := len(text)
	if n == 0 {
		return nil
	}

	cats := make([]string, n)
	for _, s := range syntax {
		start, end := clamp(s.Start, n), clamp(s.End, n)
		for i := start; i < end; i++ {
			cats[i] = s.Category
		}
	}
	if category != "" {
		for _, r := range words {
			start, end := clamp(r.Start, n), clamp(r.End, n)
			for i := start; i < end; i++ {
				cats[i] = category
			}
		}
	}

	var spans []Span
	for i := 0; i < n; {
		cat := cats[i]
		if cat == "" {
			i++
			continue
		}
		start := i
		for i < n && cats[i] == cat {
			i++
		}
		spans = append(spans, Span{Start: start, End: i, Category: cat})
	}
	return spans
}

func clamp(v, n int) int {
	return min(max(v, 0), n)
}
