// Package repo implements the repository layer: refs, working-tree
// snapshot and materialization, the commit graph, and the commit,
// checkout, branch, tag, reset, merge, and rebase operations.
package repo

import (
	"sync"

	"github.com/bgit-dev/bgit/pkg/object"
)

// Repo is an opened repository.
type Repo struct {
	RootDir string        // working directory root
	BgitDir string        // .bgit/ directory
	Store   *object.Store // content-addressed object store
	Config  Config

	ignoreOnce sync.Once
	ignore     *IgnoreChecker
}

// Ignore returns the repository's ignore checker, built lazily from the
// built-in patterns and the root .bgitignore file.
func (r *Repo) Ignore() *IgnoreChecker {
	r.ignoreOnce.Do(func() {
		r.ignore = NewIgnoreChecker(r.RootDir)
	})
	return r.ignore
}
