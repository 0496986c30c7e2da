package repo

import (
	"fmt"

	"github.com/bgit-dev/bgit/pkg/object"
)

// Ancestors enumerates the commits reachable from oid, oid itself first,
// in breadth-first order over all parent edges, each commit once. The
// order is part of the contract: MergeBase keys off it.
func (r *Repo) Ancestors(oid object.Hash) ([]object.Hash, error) {
	return r.bfs([]object.Hash{oid})
}

// TopologicalUnique enumerates the commits reachable from any of the
// given starting points, each once, in breadth-first order.
func (r *Repo) TopologicalUnique(oids []object.Hash) ([]object.Hash, error) {
	return r.bfs(oids)
}

func (r *Repo) bfs(start []object.Hash) ([]object.Hash, error) {
	var order []object.Hash
	seen := map[object.Hash]bool{}
	queue := append([]object.Hash(nil), start...)

	for len(queue) > 0 {
		oid := queue[0]
		queue = queue[1:]
		if oid == "" || seen[oid] {
			continue
		}
		seen[oid] = true
		order = append(order, oid)

		c, err := r.Store.ReadCommit(oid)
		if err != nil {
			return nil, fmt.Errorf("walk commits: %w", err)
		}
		queue = append(queue, c.Parents...)
	}
	return order, nil
}

// MergeBase returns a common ancestor of a and b: the first commit in
// breadth-first order from a that is also reachable from b. Equal inputs
// short-circuit to themselves. The result is a common ancestor but not
// necessarily a lowest one; with criss-cross histories the BFS order
// breaks the tie. ErrNoCommonAncestor reports disjoint histories.
func (r *Repo) MergeBase(a, b object.Hash) (object.Hash, error) {
	if a == b {
		return a, nil
	}

	fromB, err := r.Ancestors(b)
	if err != nil {
		return "", err
	}
	reachable := make(map[object.Hash]bool, len(fromB))
	for _, oid := range fromB {
		reachable[oid] = true
	}

	fromA, err := r.Ancestors(a)
	if err != nil {
		return "", err
	}
	for _, oid := range fromA {
		if reachable[oid] {
			return oid, nil
		}
	}
	return "", fmt.Errorf("merge base of %s and %s: %w", a, b, ErrNoCommonAncestor)
}

// Visualize renders the commit graph reachable from all refs as
// Graphviz DOT text. Refs become labeled box nodes pointing at their
// commits; commits point at their parents.
func (r *Repo) Visualize() (string, error) {
	refs, err := r.IterRefs("", false)
	if err != nil {
		return "", err
	}

	var roots []object.Hash
	out := "digraph commits {\n"
	for _, ref := range refs {
		out += fmt.Sprintf("%q [shape=note]\n", ref.Name)
		if ref.Value.Symbolic {
			out += fmt.Sprintf("%q -> %q\n", ref.Name, ref.Value.Value)
			continue
		}
		oid := object.Hash(ref.Value.Value)
		out += fmt.Sprintf("%q -> %q\n", ref.Name, string(oid))
		roots = append(roots, oid)
	}

	oids, err := r.TopologicalUnique(roots)
	if err != nil {
		return "", err
	}
	for _, oid := range oids {
		c, err := r.Store.ReadCommit(oid)
		if err != nil {
			return "", fmt.Errorf("visualize: %w", err)
		}
		out += fmt.Sprintf("%q [shape=box style=filled label=%q]\n", string(oid), string(oid[:10]))
		for _, p := range c.Parents {
			out += fmt.Sprintf("%q -> %q\n", string(oid), string(p))
		}
	}
	out += "}\n"
	return out, nil
}
