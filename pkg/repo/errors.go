package repo

import "errors"

var (
	// ErrNameNotFound reports a revision name that resolves to nothing:
	// not a hash, not a ref, not a tag, not a branch.
	ErrNameNotFound = errors.New("name not found")

	// ErrEmptyMessage rejects a commit whose message is empty after
	// trimming whitespace.
	ErrEmptyMessage = errors.New("empty commit message")

	// ErrNoCommonAncestor reports two commits with disjoint histories.
	ErrNoCommonAncestor = errors.New("no common ancestor")

	// ErrUnexpectedSubmodule reports a gitlink (mode 160000) entry, which
	// this engine recognizes but does not merge.
	ErrUnexpectedSubmodule = errors.New("unexpected submodule entry")

	// ErrMergeConflictPath reports a path that is a file in one merged
	// tree and a directory in another.
	ErrMergeConflictPath = errors.New("path is both file and directory")
)
