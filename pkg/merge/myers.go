package merge

import "strings"

// OpKind classifies a line in an edit script.
type OpKind int

const (
	OpEqual  OpKind = iota // line present in both sequences
	OpInsert               // line present only in the target
	OpDelete               // line present only in the source
)

// Op is one step of an edit script produced by Diff.
type Op struct {
	Kind OpKind
	Text string
}

// Diff computes a shortest edit script turning a into b with the Myers
// algorithm over whole lines. Runtime is O((N+M)*D) where D is the edit
// distance.
func Diff(a, b []string) []Op {
	n, m := len(a), len(b)

	if n == 0 && m == 0 {
		return nil
	}
	if n == 0 {
		ops := make([]Op, m)
		for i, line := range b {
			ops[i] = Op{Kind: OpInsert, Text: line}
		}
		return ops
	}
	if m == 0 {
		ops := make([]Op, n)
		for i, line := range a {
			ops[i] = Op{Kind: OpDelete, Text: line}
		}
		return ops
	}

	limit := n + m
	width := 2*limit + 1
	frontier := make([]int, width)

	// rounds[d] is the frontier state after edit distance d, kept for
	// the backward reconstruction pass.
	var rounds [][]int

	for d := 0; d <= limit; d++ {
		for k := -d; k <= d; k += 2 {
			idx := k + limit
			var x int
			if k == -d || (k != d && frontier[idx-1] < frontier[idx+1]) {
				x = frontier[idx+1] // down: insert from b
			} else {
				x = frontier[idx-1] + 1 // right: delete from a
			}
			y := x - k

			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			frontier[idx] = x

			if x >= n && y >= m {
				snap := make([]int, width)
				copy(snap, frontier)
				rounds = append(rounds, snap)
				return reconstruct(rounds, a, b, d)
			}
		}
		snap := make([]int, width)
		copy(snap, frontier)
		rounds = append(rounds, snap)
	}
	return nil
}

// reconstruct walks the saved frontiers backwards from the final edit
// distance, emitting the script in reverse and flipping it at the end.
func reconstruct(rounds [][]int, a, b []string, dFinal int) []Op {
	n, m := len(a), len(b)
	limit := n + m

	x, y := n, m
	var ops []Op

	for d := dFinal; d > 0; d-- {
		k := x - y
		idx := k + limit
		prev := rounds[d-1]

		var prevK int
		if k == -d || (k != d && prev[idx-1] < prev[idx+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := prev[prevK+limit]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			ops = append(ops, Op{Kind: OpEqual, Text: a[x]})
		}
		if k == prevK+1 {
			x--
			ops = append(ops, Op{Kind: OpDelete, Text: a[x]})
		} else {
			y--
			ops = append(ops, Op{Kind: OpInsert, Text: b[y]})
		}
	}
	for x > 0 && y > 0 {
		x--
		y--
		ops = append(ops, Op{Kind: OpEqual, Text: a[x]})
	}

	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return ops
}

// SplitLines splits text into lines without a phantom trailing element
// for a final newline.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
