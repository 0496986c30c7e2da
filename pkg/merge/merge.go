package merge

import "bytes"

// Conflict markers embedded in merged output. A conflicted merge is a
// valid result carrying these blocks, not an error.
const (
	MarkerOurs   = "<<<<<<< ours"
	MarkerSplit  = "======="
	MarkerTheirs = ">>>>>>> theirs"
)

// Result is the outcome of a content merge.
type Result struct {
	Merged       []byte // merged content, with conflict blocks where needed
	HasConflicts bool
	Conflicts    int // number of conflict blocks in Merged
}

// ThreeWay merges ours and theirs against their common base.
//
// Both sides are diffed against the base, the diffs are converted into
// spans over base line ranges, and the spans are walked in parallel. A
// base region changed on only one side takes that side; a region both
// sides changed identically is clean; divergent changes to the same
// region become a conflict block.
func ThreeWay(base, ours, theirs []byte) Result {
	baseLines := SplitLines(string(base))
	return mergeSpans(baseLines,
		buildSpans(baseLines, SplitLines(string(ours))),
		buildSpans(baseLines, SplitLines(string(theirs))))
}

// TwoWay merges ours directly against theirs with no common base. Equal
// runs of the edit script pass through; every divergent run becomes a
// conflict block, since without a base there is no way to tell an
// addition on one side from a deletion on the other.
func TwoWay(ours, theirs []byte) Result {
	ops := Diff(SplitLines(string(ours)), SplitLines(string(theirs)))

	var out bytes.Buffer
	conflicts := 0

	i := 0
	for i < len(ops) {
		if ops[i].Kind == OpEqual {
			out.WriteString(ops[i].Text)
			out.WriteByte('\n')
			i++
			continue
		}
		var oursRun, theirsRun []string
		for i < len(ops) && ops[i].Kind != OpEqual {
			switch ops[i].Kind {
			case OpDelete:
				oursRun = append(oursRun, ops[i].Text)
			case OpInsert:
				theirsRun = append(theirsRun, ops[i].Text)
			}
			i++
		}
		conflicts++
		writeConflict(&out, oursRun, theirsRun)
	}

	return Result{
		Merged:       out.Bytes(),
		HasConflicts: conflicts > 0,
		Conflicts:    conflicts,
	}
}

// span is a contiguous region of one side's content mapped onto the base
// line range [lo, hi). Unedited spans cover exactly one base line; edited
// spans cover the deleted base range and carry the replacement text.
type span struct {
	lo, hi int
	text   []string
	edited bool
}

// buildSpans converts diff(base, side) into spans over base positions.
func buildSpans(base, side []string) []span {
	ops := Diff(base, side)

	var spans []span
	basePos := 0

	i := 0
	for i < len(ops) {
		if ops[i].Kind == OpEqual {
			spans = append(spans, span{
				lo:   basePos,
				hi:   basePos + 1,
				text: []string{ops[i].Text},
			})
			basePos++
			i++
			continue
		}

		lo := basePos
		var text []string
		for i < len(ops) && ops[i].Kind != OpEqual {
			if ops[i].Kind == OpDelete {
				basePos++
			} else {
				text = append(text, ops[i].Text)
			}
			i++
		}
		spans = append(spans, span{lo: lo, hi: basePos, text: text, edited: true})
	}
	return spans
}

// mergeSpans walks the two span sequences in parallel, aligned on base
// positions.
func mergeSpans(baseLines []string, ours, theirs []span) Result {
	var out bytes.Buffer
	conflicts := 0

	oi, ti := 0, 0
	for oi < len(ours) || ti < len(theirs) {
		var os, ts *span
		if oi < len(ours) {
			os = &ours[oi]
		}
		if ti < len(theirs) {
			ts = &theirs[ti]
		}

		// Tail inserts past the last base line can leave one side with
		// spans the other lacks.
		if os == nil {
			writeLines(&out, ts.text)
			ti++
			continue
		}
		if ts == nil {
			writeLines(&out, os.text)
			oi++
			continue
		}

		if os.lo == ts.lo && os.hi == ts.hi {
			switch {
			case os.edited && ts.edited:
				if sameLines(os.text, ts.text) {
					writeLines(&out, os.text)
				} else {
					conflicts++
					writeConflict(&out, os.text, ts.text)
				}
			case os.edited:
				writeLines(&out, os.text)
			default:
				writeLines(&out, ts.text)
			}
			oi++
			ti++
			continue
		}

		// Misaligned spans: one side's edit covers a base range the
		// other splits differently. Close over the overlapping region
		// and compare the assembled sides as a whole.
		end := maxInt(os.hi, ts.hi)

		var oursRegion, theirsRegion []span
		for oi < len(ours) && ours[oi].lo < end {
			oursRegion = append(oursRegion, ours[oi])
			if ours[oi].hi > end {
				end = ours[oi].hi
			}
			oi++
		}
		for ti < len(theirs) && theirs[ti].lo < end {
			theirsRegion = append(theirsRegion, theirs[ti])
			if theirs[ti].hi > end {
				end = theirs[ti].hi
			}
			ti++
		}

		oursText := flatten(oursRegion)
		theirsText := flatten(theirsRegion)

		switch {
		case edited(oursRegion) && edited(theirsRegion):
			if sameLines(oursText, theirsText) {
				writeLines(&out, oursText)
			} else {
				conflicts++
				writeConflict(&out, oursText, theirsText)
			}
		case edited(oursRegion):
			writeLines(&out, oursText)
		default:
			writeLines(&out, theirsText)
		}
	}

	return Result{
		Merged:       out.Bytes(),
		HasConflicts: conflicts > 0,
		Conflicts:    conflicts,
	}
}

func writeLines(buf *bytes.Buffer, lines []string) {
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
}

func writeConflict(buf *bytes.Buffer, oursLines, theirsLines []string) {
	buf.WriteString(MarkerOurs)
	buf.WriteByte('\n')
	writeLines(buf, oursLines)
	buf.WriteString(MarkerSplit)
	buf.WriteByte('\n')
	writeLines(buf, theirsLines)
	buf.WriteString(MarkerTheirs)
	buf.WriteByte('\n')
}

func sameLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func flatten(spans []span) []string {
	var lines []string
	for _, s := range spans {
		lines = append(lines, s.text...)
	}
	return lines
}

func edited(spans []span) bool {
	for _, s := range spans {
		if s.edited {
			return true
		}
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
