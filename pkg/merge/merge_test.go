package merge

import (
	"strings"
	"testing"
)

func TestDiffIdentical(t *testing.T) {
	lines := []string{"a", "b", "c"}
	for _, op := range Diff(lines, lines) {
		if op.Kind != OpEqual {
			t.Errorf("Diff of identical inputs produced %v %q", op.Kind, op.Text)
		}
	}
}

func TestDiffInsertDelete(t *testing.T) {
	ops := Diff([]string{"a", "b"}, []string{"a", "x", "b"})
	inserts, deletes := 0, 0
	for _, op := range ops {
		switch op.Kind {
		case OpInsert:
			inserts++
		case OpDelete:
			deletes++
		}
	}
	if inserts != 1 || deletes != 0 {
		t.Errorf("Got %d inserts / %d deletes, want 1 / 0", inserts, deletes)
	}

	ops = Diff([]string{"a", "x", "b"}, []string{"a", "b"})
	inserts, deletes = 0, 0
	for _, op := range ops {
		switch op.Kind {
		case OpInsert:
			inserts++
		case OpDelete:
			deletes++
		}
	}
	if inserts != 0 || deletes != 1 {
		t.Errorf("Got %d inserts / %d deletes, want 0 / 1", inserts, deletes)
	}
}

func TestDiffEmptySides(t *testing.T) {
	if ops := Diff(nil, nil); ops != nil {
		t.Errorf("Diff(nil, nil): got %v, want nil", ops)
	}
	ops := Diff(nil, []string{"a", "b"})
	if len(ops) != 2 || ops[0].Kind != OpInsert || ops[1].Kind != OpInsert {
		t.Errorf("Diff from empty: got %v, want two inserts", ops)
	}
	ops = Diff([]string{"a"}, nil)
	if len(ops) != 1 || ops[0].Kind != OpDelete {
		t.Errorf("Diff to empty: got %v, want one delete", ops)
	}
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"a\n", 1},
		{"a\nb", 2},
		{"a\nb\n", 2},
		{"\n", 1},
	}
	for _, c := range cases {
		if got := SplitLines(c.in); len(got) != c.want {
			t.Errorf("SplitLines(%q): got %d lines, want %d", c.in, len(got), c.want)
		}
	}
}

func TestThreeWayAllIdentical(t *testing.T) {
	x := []byte("line one\nline two\nline three\n")
	r := ThreeWay(x, x, x)
	if r.HasConflicts {
		t.Error("Identical inputs should not conflict")
	}
	if string(r.Merged) != string(x) {
		t.Errorf("Merged: got %q, want %q", r.Merged, x)
	}
}

func TestThreeWayOneSideChanged(t *testing.T) {
	base := []byte("a\nb\nc\n")
	ours := []byte("a\nB\nc\n")

	r := ThreeWay(base, ours, base)
	if r.HasConflicts {
		t.Error("Single-side change should not conflict")
	}
	if string(r.Merged) != string(ours) {
		t.Errorf("Merged: got %q, want %q", r.Merged, ours)
	}

	r = ThreeWay(base, base, ours)
	if r.HasConflicts {
		t.Error("Single-side change should not conflict")
	}
	if string(r.Merged) != string(ours) {
		t.Errorf("Merged: got %q, want %q", r.Merged, ours)
	}
}

func TestThreeWayNonOverlapping(t *testing.T) {
	base := []byte("a\nb\nc\nd\ne\n")
	ours := []byte("A\nb\nc\nd\ne\n")
	theirs := []byte("a\nb\nc\nd\nE\n")

	r := ThreeWay(base, ours, theirs)
	if r.HasConflicts {
		t.Fatalf("Non-overlapping edits should merge cleanly, got %q", r.Merged)
	}
	want := "A\nb\nc\nd\nE\n"
	if string(r.Merged) != want {
		t.Errorf("Merged: got %q, want %q", r.Merged, want)
	}
}

func TestThreeWayIdenticalChange(t *testing.T) {
	base := []byte("a\nb\nc\n")
	both := []byte("a\nX\nc\n")
	r := ThreeWay(base, both, both)
	if r.HasConflicts {
		t.Error("Identical changes on both sides should not conflict")
	}
	if string(r.Merged) != string(both) {
		t.Errorf("Merged: got %q, want %q", r.Merged, both)
	}
}

func TestThreeWayConflict(t *testing.T) {
	base := []byte("a\nb\nc\n")
	ours := []byte("a\nOURS\nc\n")
	theirs := []byte("a\nTHEIRS\nc\n")

	r := ThreeWay(base, ours, theirs)
	if !r.HasConflicts {
		t.Fatalf("Divergent edits to the same line should conflict, got %q", r.Merged)
	}
	if r.Conflicts != 1 {
		t.Errorf("Conflicts: got %d, want 1", r.Conflicts)
	}
	merged := string(r.Merged)
	for _, marker := range []string{MarkerOurs, MarkerSplit, MarkerTheirs} {
		if !strings.Contains(merged, marker) {
			t.Errorf("Merged output missing marker %q:\n%s", marker, merged)
		}
	}
	if !strings.Contains(merged, "OURS") || !strings.Contains(merged, "THEIRS") {
		t.Errorf("Merged output missing conflicting content:\n%s", merged)
	}
	// Surrounding context survives outside the conflict block.
	if !strings.HasPrefix(merged, "a\n") || !strings.HasSuffix(merged, "c\n") {
		t.Errorf("Context lines lost:\n%s", merged)
	}
	// Ours section precedes theirs section.
	if strings.Index(merged, "OURS") > strings.Index(merged, "THEIRS") {
		t.Errorf("Conflict block sections out of order:\n%s", merged)
	}
}

func TestThreeWayBothAppend(t *testing.T) {
	base := []byte("a\n")
	ours := []byte("a\nours tail\n")
	theirs := []byte("a\ntheirs tail\n")

	r := ThreeWay(base, ours, theirs)
	if !r.HasConflicts {
		t.Fatalf("Divergent appends should conflict, got %q", r.Merged)
	}
}

func TestThreeWayDeleteVsEdit(t *testing.T) {
	base := []byte("a\nb\nc\n")
	ours := []byte("a\nc\n")       // deleted b
	theirs := []byte("a\nB!\nc\n") // edited b

	r := ThreeWay(base, ours, theirs)
	if !r.HasConflicts {
		t.Fatalf("Delete vs edit of the same line should conflict, got %q", r.Merged)
	}
}

func TestThreeWayBothDelete(t *testing.T) {
	base := []byte("a\nb\nc\n")
	both := []byte("a\nc\n")
	r := ThreeWay(base, both, both)
	if r.HasConflicts {
		t.Error("Identical deletions should not conflict")
	}
	if string(r.Merged) != string(both) {
		t.Errorf("Merged: got %q, want %q", r.Merged, both)
	}
}

func TestThreeWayEmptyBase(t *testing.T) {
	ours := []byte("from ours\n")
	theirs := []byte("from theirs\n")
	r := ThreeWay(nil, ours, theirs)
	if !r.HasConflicts {
		t.Fatalf("Divergent content with empty base should conflict, got %q", r.Merged)
	}
}

func TestTwoWayIdentical(t *testing.T) {
	x := []byte("same\ncontent\n")
	r := TwoWay(x, x)
	if r.HasConflicts {
		t.Error("Identical inputs should not conflict")
	}
	if string(r.Merged) != string(x) {
		t.Errorf("Merged: got %q, want %q", r.Merged, x)
	}
}

func TestTwoWayDivergence(t *testing.T) {
	ours := []byte("a\nours line\nc\n")
	theirs := []byte("a\ntheirs line\nc\n")

	r := TwoWay(ours, theirs)
	if !r.HasConflicts {
		t.Fatalf("Divergent content should conflict, got %q", r.Merged)
	}
	merged := string(r.Merged)
	if !strings.Contains(merged, MarkerOurs) || !strings.Contains(merged, MarkerTheirs) {
		t.Errorf("Missing conflict markers:\n%s", merged)
	}
	if !strings.Contains(merged, "ours line") || !strings.Contains(merged, "theirs line") {
		t.Errorf("Missing divergent content:\n%s", merged)
	}
}

func TestTwoWayOneSidedRun(t *testing.T) {
	ours := []byte("a\nextra\nb\n")
	theirs := []byte("a\nb\n")

	// With no base there is no way to tell addition from deletion, so a
	// one-sided run still becomes a conflict block.
	r := TwoWay(ours, theirs)
	if !r.HasConflicts {
		t.Fatalf("One-sided run should conflict in a two-way merge, got %q", r.Merged)
	}
}

func TestThreeWayMultipleConflicts(t *testing.T) {
	base := []byte("one\ntwo\nthree\nfour\nfive\n")
	ours := []byte("ONE-ours\ntwo\nthree\nfour\nFIVE-ours\n")
	theirs := []byte("ONE-theirs\ntwo\nthree\nfour\nFIVE-theirs\n")

	r := ThreeWay(base, ours, theirs)
	if !r.HasConflicts {
		t.Fatal("Expected conflicts")
	}
	if r.Conflicts != 2 {
		t.Errorf("Conflicts: got %d, want 2\n%s", r.Conflicts, r.Merged)
	}
	if !strings.Contains(string(r.Merged), "two\nthree\nfour\n") {
		t.Errorf("Unchanged middle lost:\n%s", r.Merged)
	}
}
