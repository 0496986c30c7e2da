package repo

import (
	"fmt"
	"time"

	"github.com/bgit-dev/bgit/pkg/object"
)

// Rebase replays the commits unique to the current branch on top of the
// commit named by name, oldest first. Each replayed commit's changes are
// carried over by a three-way tree merge of its tree against the rebase
// tip, with the merge base's tree as the three-way base; conflict
// markers land in the replayed content when the changes collide. The new
// commits keep the original messages. At the end the current branch
// points at the new tip (or HEAD does directly when detached) and the
// working tree matches it. Rebasing onto a descendant fast-forwards.
func (r *Repo) Rebase(name string) (object.Hash, error) {
	target, err := r.ResolveOID(name)
	if err != nil {
		return "", fmt.Errorf("rebase: %w", err)
	}
	head, err := r.ResolveOID(HEAD)
	if err != nil {
		return "", fmt.Errorf("rebase: %w", err)
	}

	base, err := r.MergeBase(head, target)
	if err != nil {
		return "", fmt.Errorf("rebase: %w", err)
	}
	if base == head {
		// Nothing unique to replay: fast-forward onto the target.
		if err := r.finishRebase(target); err != nil {
			return "", err
		}
		return target, nil
	}

	unique, err := r.branchUniqueCommits(head, target)
	if err != nil {
		return "", fmt.Errorf("rebase: %w", err)
	}

	baseCommit, err := r.Store.ReadCommit(base)
	if err != nil {
		return "", fmt.Errorf("rebase: %w", err)
	}
	baseTree := baseCommit.TreeHash

	tip := target
	for _, oid := range unique {
		c, err := r.Store.ReadCommit(oid)
		if err != nil {
			return "", fmt.Errorf("rebase: %w", err)
		}
		tipCommit, err := r.Store.ReadCommit(tip)
		if err != nil {
			return "", fmt.Errorf("rebase: %w", err)
		}

		merged, _, err := r.MergeTrees(baseTree, tipCommit.TreeHash, c.TreeHash)
		if err != nil {
			return "", fmt.Errorf("rebase %s: %w", oid, err)
		}
		newTree, err := r.writeMergedTree(merged)
		if err != nil {
			return "", fmt.Errorf("rebase %s: %w", oid, err)
		}

		tip, err = r.Store.WriteCommit(&object.Commit{
			TreeHash:  newTree,
			Parents:   []object.Hash{tip},
			Timestamp: time.Now().UTC().Format(timestampLayout),
			Message:   c.Message,
		})
		if err != nil {
			return "", fmt.Errorf("rebase %s: %w", oid, err)
		}
	}

	if err := r.finishRebase(tip); err != nil {
		return "", err
	}
	return tip, nil
}

// branchUniqueCommits returns the commits reachable from head but not
// from other, oldest first.
func (r *Repo) branchUniqueCommits(head, other object.Hash) ([]object.Hash, error) {
	fromOther, err := r.Ancestors(other)
	if err != nil {
		return nil, err
	}
	reachable := make(map[object.Hash]bool, len(fromOther))
	for _, oid := range fromOther {
		reachable[oid] = true
	}

	fromHead, err := r.Ancestors(head)
	if err != nil {
		return nil, err
	}
	var unique []object.Hash
	for _, oid := range fromHead {
		if !reachable[oid] {
			unique = append(unique, oid)
		}
	}
	// BFS order is newest first; replay wants oldest first.
	for i, j := 0, len(unique)-1; i < j; i, j = i+1, j-1 {
		unique[i], unique[j] = unique[j], unique[i]
	}
	return unique, nil
}

// finishRebase points the current branch (or detached HEAD) at tip and
// materializes its tree.
func (r *Repo) finishRebase(tip object.Hash) error {
	c, err := r.Store.ReadCommit(tip)
	if err != nil {
		return fmt.Errorf("rebase: %w", err)
	}
	if err := r.ReadTree(c.TreeHash, ""); err != nil {
		return fmt.Errorf("rebase: %w", err)
	}
	if err := r.SetRef(HEAD, RefValue{Value: string(tip)}, true); err != nil {
		return fmt.Errorf("rebase: %w", err)
	}
	return nil
}
