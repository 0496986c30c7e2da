package repo

import "fmt"

// Checkout materializes the commit named by name into the working tree
// and moves HEAD. Checking out a branch name attaches HEAD to the
// branch; anything else (tag, raw hash) detaches HEAD at the resolved
// commit.
func (r *Repo) Checkout(name string) error {
	oid, err := r.ResolveOID(name)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	c, err := r.Store.ReadCommit(oid)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	if err := r.ReadTree(c.TreeHash, ""); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	isBranch, err := r.IsBranch(name)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	var head RefValue
	if isBranch {
		head = RefValue{Symbolic: true, Value: "refs/heads/" + name}
	} else {
		head = RefValue{Value: string(oid)}
	}
	// deref=false: HEAD itself moves, never the branch it pointed at.
	if err := r.SetRef(HEAD, head, false); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	return nil
}
