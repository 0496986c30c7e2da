package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bgit-dev/bgit/pkg/diff"
	"github.com/bgit-dev/bgit/pkg/merge"
	"github.com/bgit-dev/bgit/pkg/object"
)

// MergedPath is one path of a merged tree: either a directory that must
// exist, or a file with its merged content.
type MergedPath struct {
	Path string
	Dir  bool
	Data []byte
}

// MergeOutcome reports what a Merge did.
type MergeOutcome struct {
	UpToDate    bool
	FastForward bool
	Conflicts   bool
}

// FastForwardEligible reports whether moving from head to other needs no
// merge commit, i.e. head already is an ancestor of other.
func (r *Repo) FastForwardEligible(head, other object.Hash) (bool, error) {
	base, err := r.MergeBase(head, other)
	if err != nil {
		if errors.Is(err, ErrNoCommonAncestor) {
			return false, nil
		}
		return false, err
	}
	return base == head, nil
}

// Merge merges the commit named by name into HEAD.
//
// When HEAD is an ancestor of the other commit the merge fast-forwards:
// the working tree becomes the other commit's tree and the current
// branch (or detached HEAD) moves there, with no merge commit.
//
// Otherwise the merged tree is materialized into the working tree,
// conflict markers included, and MERGE_HEAD is set so the next commit
// records both parents. Disjoint histories degrade to a two-way content
// merge instead of failing.
func (r *Repo) Merge(name string) (MergeOutcome, error) {
	other, err := r.ResolveOID(name)
	if err != nil {
		return MergeOutcome{}, fmt.Errorf("merge: %w", err)
	}
	head, err := r.ResolveOID(HEAD)
	if err != nil {
		return MergeOutcome{}, fmt.Errorf("merge: %w", err)
	}

	var base object.Hash
	if b, err := r.MergeBase(head, other); err == nil {
		base = b
	} else if !errors.Is(err, ErrNoCommonAncestor) {
		return MergeOutcome{}, fmt.Errorf("merge: %w", err)
	}

	if base == other {
		// HEAD already contains the other commit.
		return MergeOutcome{UpToDate: true}, nil
	}

	otherCommit, err := r.Store.ReadCommit(other)
	if err != nil {
		return MergeOutcome{}, fmt.Errorf("merge: %w", err)
	}

	if base == head {
		if err := r.ReadTree(otherCommit.TreeHash, ""); err != nil {
			return MergeOutcome{}, fmt.Errorf("merge: %w", err)
		}
		if err := r.SetRef(HEAD, RefValue{Value: string(other)}, true); err != nil {
			return MergeOutcome{}, fmt.Errorf("merge: %w", err)
		}
		return MergeOutcome{FastForward: true}, nil
	}

	headCommit, err := r.Store.ReadCommit(head)
	if err != nil {
		return MergeOutcome{}, fmt.Errorf("merge: %w", err)
	}
	var baseTree object.Hash
	if base != "" {
		baseCommit, err := r.Store.ReadCommit(base)
		if err != nil {
			return MergeOutcome{}, fmt.Errorf("merge: %w", err)
		}
		baseTree = baseCommit.TreeHash
	}

	if err := r.SetRef(MergeHead, RefValue{Value: string(other)}, false); err != nil {
		return MergeOutcome{}, fmt.Errorf("merge: %w", err)
	}

	conflicts, err := r.ReadTreeMerged(baseTree, headCommit.TreeHash, otherCommit.TreeHash)
	if err != nil {
		return MergeOutcome{}, fmt.Errorf("merge: %w", err)
	}
	return MergeOutcome{Conflicts: conflicts}, nil
}

// MergeTrees merges the trees ours and theirs against base ("" for no
// common ancestor), returning every path of the merged tree sorted by
// path, plus whether any file carries conflict markers.
//
// A path deleted on both sides (or deleted on one and untouched on the
// other) disappears. A path changed on one side only takes that side
// wholesale. Divergent file content goes through the three-way line
// merge, or the two-way merge when the path has no base version.
func (r *Repo) MergeTrees(base, ours, theirs object.Hash) ([]MergedPath, bool, error) {
	rows, err := diff.NewDiffer(r.Store).CompareTrees([]object.Hash{base, ours, theirs})
	if err != nil {
		return nil, false, fmt.Errorf("merge trees: %w", err)
	}

	var merged []MergedPath
	hasConflicts := false

	for _, row := range rows {
		switch row.Kind {
		case object.TypeCommit:
			return nil, false, fmt.Errorf("merge trees: %s: %w", row.Path, ErrUnexpectedSubmodule)

		case object.TypeTree:
			// A side where this path is a blob means the path is a file
			// in one input and a directory in another.
			for _, oid := range row.OIDs {
				if oid == "" {
					continue
				}
				kind, _, err := r.Store.Read(oid)
				if err != nil {
					return nil, false, fmt.Errorf("merge trees: %s: %w", row.Path, err)
				}
				if kind == object.TypeBlob {
					return nil, false, fmt.Errorf("merge trees: %s: %w", row.Path, ErrMergeConflictPath)
				}
			}
			// Deletion wins for directories like it does for files: a
			// directory removed on one side and untouched on the other
			// stays gone.
			b, o, t := row.OIDs[0], row.OIDs[1], row.OIDs[2]
			deleted := (o == "" && t == "") || (o == "" && t == b) || (t == "" && o == b)
			if !deleted {
				merged = append(merged, MergedPath{Path: row.Path, Dir: true})
			}

		case object.TypeBlob:
			b, o, t := row.OIDs[0], row.OIDs[1], row.OIDs[2]
			data, conflicted, keep, err := r.mergeBlobRow(b, o, t)
			if err != nil {
				return nil, false, fmt.Errorf("merge trees: %s: %w", row.Path, err)
			}
			if !keep {
				continue
			}
			if conflicted {
				hasConflicts = true
			}
			merged = append(merged, MergedPath{Path: row.Path, Data: data})
		}
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].Path < merged[j].Path })
	return merged, hasConflicts, nil
}

// mergeBlobRow merges one file's three versions by hash, short-circuiting
// on agreement before touching content. keep=false drops the path from
// the merged tree (deletion wins when the surviving side never touched
// the file).
func (r *Repo) mergeBlobRow(base, ours, theirs object.Hash) (data []byte, conflicted, keep bool, err error) {
	if ours == theirs {
		if ours == "" {
			return nil, false, false, nil
		}
		d, err := r.Store.ReadBlob(ours)
		return d, false, true, err
	}
	if ours == base {
		if theirs == "" {
			return nil, false, false, nil
		}
		d, err := r.Store.ReadBlob(theirs)
		return d, false, true, err
	}
	if theirs == base {
		if ours == "" {
			return nil, false, false, nil
		}
		d, err := r.Store.ReadBlob(ours)
		return d, false, true, err
	}

	readOrEmpty := func(h object.Hash) ([]byte, error) {
		if h == "" {
			return nil, nil
		}
		return r.Store.ReadBlob(h)
	}
	oursData, err := readOrEmpty(ours)
	if err != nil {
		return nil, false, false, err
	}
	theirsData, err := readOrEmpty(theirs)
	if err != nil {
		return nil, false, false, err
	}

	var res merge.Result
	if base == "" {
		res = merge.TwoWay(oursData, theirsData)
	} else {
		baseData, err := r.Store.ReadBlob(base)
		if err != nil {
			return nil, false, false, err
		}
		res = merge.ThreeWay(baseData, oursData, theirsData)
	}
	return res.Merged, res.HasConflicts, true, nil
}

// ReadTreeMerged materializes the merge of ours and theirs against base
// into the working tree, which is emptied first (ignored paths spared).
// Paths are written in sorted order, parents before children. Returns
// whether any written file carries conflict markers.
func (r *Repo) ReadTreeMerged(base, ours, theirs object.Hash) (bool, error) {
	merged, hasConflicts, err := r.MergeTrees(base, ours, theirs)
	if err != nil {
		return false, err
	}
	if err := r.emptyDir(r.RootDir, ""); err != nil {
		return false, err
	}

	for _, mp := range merged {
		absPath := filepath.Join(r.RootDir, filepath.FromSlash(mp.Path))
		if mp.Dir {
			if err := os.MkdirAll(absPath, 0o755); err != nil {
				return false, fmt.Errorf("read tree merged: mkdir %q: %w", mp.Path, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return false, fmt.Errorf("read tree merged: mkdir %q: %w", mp.Path, err)
		}
		if err := os.WriteFile(absPath, mp.Data, 0o644); err != nil {
			return false, fmt.Errorf("read tree merged: write %q: %w", mp.Path, err)
		}
	}
	return hasConflicts, nil
}

// writeMergedTree stores a merged path listing as tree objects without
// touching the working tree, returning the root tree hash. Used by
// rebase to replay commits in memory.
func (r *Repo) writeMergedTree(merged []MergedPath) (object.Hash, error) {
	type node struct {
		blobs map[string]object.Hash
		subs  map[string]*node
	}
	newNode := func() *node {
		return &node{blobs: map[string]object.Hash{}, subs: map[string]*node{}}
	}
	root := newNode()

	locate := func(dir string) *node {
		n := root
		if dir == "" {
			return n
		}
		for _, seg := range strings.Split(dir, "/") {
			if n.subs[seg] == nil {
				n.subs[seg] = newNode()
			}
			n = n.subs[seg]
		}
		return n
	}

	for _, mp := range merged {
		if mp.Dir {
			locate(mp.Path)
			continue
		}
		blobHash, err := r.Store.WriteBlob(mp.Data)
		if err != nil {
			return "", fmt.Errorf("write merged tree: %w", err)
		}
		dir, name := splitPath(mp.Path)
		locate(dir).blobs[name] = blobHash
	}

	var write func(n *node) (object.Hash, error)
	write = func(n *node) (object.Hash, error) {
		var entries []object.TreeEntry
		for name, h := range n.blobs {
			entries = append(entries, object.TreeEntry{
				Mode: object.TreeModeFile, Name: name, OID: h,
			})
		}
		for name, sub := range n.subs {
			subHash, err := write(sub)
			if err != nil {
				return "", err
			}
			entries = append(entries, object.TreeEntry{
				Mode: object.TreeModeDir, Name: name, OID: subHash,
			})
		}
		return r.Store.WriteTreeEntries(entries)
	}
	return write(root)
}

func splitPath(p string) (dir, name string) {
	idx := strings.LastIndexByte(p, '/')
	if idx < 0 {
		return "", p
	}
	return p[:idx], p[idx+1:]
}
