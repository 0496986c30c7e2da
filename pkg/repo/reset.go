package repo

import "fmt"

// Reset hard-resets: HEAD (or the branch it is attached to) moves to the
// named commit and the working tree is overwritten with its content.
func (r *Repo) Reset(name string) error {
	oid, err := r.ResolveOID(name)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	c, err := r.Store.ReadCommit(oid)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := r.ReadTree(c.TreeHash, ""); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := r.SetRef(HEAD, RefValue{Value: string(oid)}, true); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}
