package repo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bgit-dev/bgit/pkg/diff"
	"github.com/bgit-dev/bgit/pkg/object"
)

// Status describes where HEAD points and what differs between the HEAD
// commit and the working tree.
type Status struct {
	Branch          string      // "" when detached
	Detached        object.Hash // set when Branch is ""
	MergeInProgress bool
	Changes         []diff.Change
}

// Status reports the current branch (or detached commit), a pending
// merge, and the working-tree changes against HEAD.
func (r *Repo) Status() (*Status, error) {
	st := &Status{}

	branch, err := r.CurrentBranchName()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	st.Branch = branch

	head, err := r.ResolveOID(HEAD)
	if err != nil && !errors.Is(err, ErrNameNotFound) {
		return nil, fmt.Errorf("status: %w", err)
	}
	if branch == "" && head != "" {
		st.Detached = head
	}

	mergeHead, err := r.GetRef(MergeHead, true)
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	st.MergeInProgress = mergeHead.Value != ""

	var headTree object.Hash
	if head != "" {
		c, err := r.Store.ReadCommit(head)
		if err != nil {
			return nil, fmt.Errorf("status: %w", err)
		}
		headTree = c.TreeHash
	}
	workTree, err := r.WorkingTreeOID()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	st.Changes, err = diff.NewDiffer(r.Store).ChangedFiles(headTree, workTree)
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	return st, nil
}

// WorkingTreeOID snapshots the working tree into a transient tree
// object and returns its hash. The objects it writes are ordinary store
// objects; nothing references them until a commit does.
func (r *Repo) WorkingTreeOID() (object.Hash, error) {
	return r.BuildTree("")
}

// DiffWorkingTree renders the unified diff between the commit named by
// name ("@" for HEAD) and the working tree. Before the first commit,
// HEAD diffs against an empty tree so every file shows as added.
func (r *Repo) DiffWorkingTree(name string) (string, error) {
	var commitTree object.Hash
	oid, err := r.ResolveOID(name)
	switch {
	case err == nil:
		c, err := r.Store.ReadCommit(oid)
		if err != nil {
			return "", fmt.Errorf("diff: %w", err)
		}
		commitTree = c.TreeHash
	case (name == "@" || name == HEAD) && errors.Is(err, ErrNameNotFound):
		// No commit yet.
	default:
		return "", fmt.Errorf("diff: %w", err)
	}

	workTree, err := r.WorkingTreeOID()
	if err != nil {
		return "", fmt.Errorf("diff: %w", err)
	}
	return diff.NewDiffer(r.Store).DiffTrees(commitTree, workTree)
}

// Show renders a commit header followed by its diff against its first
// parent. A root commit diffs against nothing, so every file shows as
// added.
func (r *Repo) Show(oid object.Hash) (string, error) {
	c, err := r.Store.ReadCommit(oid)
	if err != nil {
		return "", fmt.Errorf("show: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "commit %s\n", oid)
	fmt.Fprintf(&b, "date   %s\n\n", c.Timestamp)
	for _, line := range strings.Split(c.Message, "\n") {
		fmt.Fprintf(&b, "    %s\n", line)
	}
	b.WriteString("\n")

	var parentTree object.Hash
	if len(c.Parents) > 0 {
		parent, err := r.Store.ReadCommit(c.Parents[0])
		if err != nil {
			return "", fmt.Errorf("show: %w", err)
		}
		parentTree = parent.TreeHash
	}
	text, err := diff.NewDiffer(r.Store).DiffTrees(parentTree, c.TreeHash)
	if err != nil {
		return "", fmt.Errorf("show: %w", err)
	}
	b.WriteString(text)
	return b.String(), nil
}
