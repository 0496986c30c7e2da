package repo

import (
	"fmt"

	"github.com/bgit-dev/bgit/pkg/object"
)

// CreateTag creates a tag pointing at the given commit.
func (r *Repo) CreateTag(name string, oid object.Hash) error {
	if err := r.SetRef("refs/tags/"+name, RefValue{Value: string(oid)}, true); err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}
