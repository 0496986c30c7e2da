package repo

import (
	"fmt"

	"github.com/bgit-dev/bgit/pkg/object"
)

// CreateBranch creates a branch pointing at the given commit. It does
// not move HEAD.
func (r *Repo) CreateBranch(name string, oid object.Hash) error {
	if err := r.SetRef("refs/heads/"+name, RefValue{Value: string(oid)}, true); err != nil {
		return fmt.Errorf("create branch: %w", err)
	}
	return nil
}

// Branch pairs a branch name with its tip and whether HEAD is attached
// to it.
type Branch struct {
	Name    string
	Tip     object.Hash
	Current bool
}

// ListBranches lists all branches sorted by name.
func (r *Repo) ListBranches() ([]Branch, error) {
	current, err := r.CurrentBranchName()
	if err != nil {
		return nil, err
	}
	refs, err := r.IterRefs("refs/heads/", true)
	if err != nil {
		return nil, err
	}

	branches := make([]Branch, 0, len(refs))
	for _, ref := range refs {
		name := ref.Name[len("refs/heads/"):]
		branches = append(branches, Branch{
			Name:    name,
			Tip:     object.Hash(ref.Value.Value),
			Current: name == current,
		})
	}
	return branches, nil
}
