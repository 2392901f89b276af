package revi

// WordDiffer computes word-level differences between two lines.
type WordDiffer interface {
	// Ranges returns the changed byte ranges of old (deleted content) and
	// of new (inserted content). Ranges are sorted and merged.
	Ranges(old, new string) (oldRanges, newRanges []Range)
}

// MarkWordChanges overlays word-level change markers on modified lines.
//
// Within each hunk, every maximal run of deleted lines immediately followed
// by a run of added lines forms a replace block. The i-th deleted line is
// paired with the i-th added line; lines without a partner are left alone,
// as are deleted runs with no added run after them.
func MarkWordChanges(hunks []Hunk, d WordDiffer) {
	for h := range hunks {
		lines := hunks[h].Lines
		i := 0
		for i < len(lines) {
			if lines[i].Kind != LineDeleted {
				i++
				continue
			}

			delStart := i
			for i < len(lines) && lines[i].Kind == LineDeleted {
				i++
			}
			delEnd := i

			addStart := i
			for i < len(lines) && lines[i].Kind == LineAdded {
				i++
			}
			addEnd := i

			if addStart == addEnd {
				continue
			}

			pairs := min(delEnd-delStart, addEnd-addStart)
			for k := 0; k < pairs; k++ {
				markPair(&lines[delStart+k], &lines[addStart+k], d)
			}
		}
	}
}

func markPair(deleted, added *DiffLine, d WordDiffer) {
	oldRanges, newRanges := d.Ranges(deleted.Text, added.Text)
	if len(oldRanges) > 0 {
		deleted.Spans = FuseSpans(deleted.Text, deleted.Spans, oldRanges, CategoryWordDeleted)
	}
	if len(newRanges) > 0 {
		added.Spans = FuseSpans(added.Text, added.Spans, newRanges, CategoryWordAdded)
	}
}
