// Package diff compares any number of tree objects path by path and
// renders line-level diffs between tree revisions.
package diff

import (
	"fmt"
	"path"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/bgit-dev/bgit/pkg/object"
)

// Row is one path's alignment across the compared trees. OIDs holds one
// hash per input tree, in input order, with "" where the path is absent
// from that tree.
type Row struct {
	Path string
	Kind object.ObjectType
	OIDs []object.Hash
}

// Differ walks tree objects out of a store.
type Differ struct {
	store *object.Store
}

func NewDiffer(store *object.Store) *Differ {
	return &Differ{store: store}
}

// CompareTrees aligns the given trees by full relative path. The walk is
// an explicit worklist that descends to arbitrary depth; every path that
// exists in at least one input produces a row, including paths whose
// hashes agree everywhere. Rows come back sorted by path.
//
// When the same path is a directory in one tree and a file in another,
// the row's Kind is the tree kind and the walk still descends on the
// directory sides.
//
// A subtree that cannot be read is logged and treated as empty rather
// than failing the whole comparison.
func (d *Differ) CompareTrees(trees []object.Hash) ([]Row, error) {
	type frame struct {
		prefix string
		oids   []object.Hash
	}

	var rows []Row
	work := []frame{{prefix: "", oids: trees}}

	for len(work) > 0 {
		f := work[0]
		work = work[1:]

		// Entries of each input's subtree at this prefix, keyed by name.
		perInput := make([]map[string]object.TreeEntry, len(f.oids))
		names := map[string]bool{}
		for i, oid := range f.oids {
			if oid == "" {
				continue
			}
			entries, err := d.store.ReadTreeEntries(oid)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"path": f.prefix,
					"oid":  oid,
				}).Warnf("skipping unreadable subtree: %v", err)
				continue
			}
			perInput[i] = make(map[string]object.TreeEntry, len(entries))
			for _, e := range entries {
				perInput[i][e.Name] = e
				names[e.Name] = true
			}
		}

		for name := range names {
			rowPath := path.Join(f.prefix, name)
			oids := make([]object.Hash, len(f.oids))
			kind := object.ObjectType("")
			for i := range f.oids {
				e, ok := perInput[i][name]
				if !ok {
					continue
				}
				oids[i] = e.OID
				k, err := e.Kind()
				if err != nil {
					return nil, fmt.Errorf("compare trees: %s: %w", rowPath, err)
				}
				if kind == "" || k == object.TypeTree {
					kind = k
				}
			}

			rows = append(rows, Row{Path: rowPath, Kind: kind, OIDs: oids})

			if kind == object.TypeTree {
				// Descend only on the sides where this path is a
				// directory; blob and absent sides contribute nothing
				// below it.
				child := make([]object.Hash, len(f.oids))
				for i := range f.oids {
					if e, ok := perInput[i][name]; ok {
						if k, err := e.Kind(); err == nil && k == object.TypeTree {
							child[i] = e.OID
						}
					}
				}
				work = append(work, frame{prefix: rowPath, oids: child})
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Path < rows[j].Path })
	return rows, nil
}

// ChangeKind classifies what happened to a path between two trees.
type ChangeKind int

const (
	Added ChangeKind = iota
	Deleted
	Modified
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Deleted:
		return "deleted"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

// Change records a single file-level change between two trees.
type Change struct {
	Path          string
	Kind          ChangeKind
	Before, After object.Hash
}

// ChangedFiles reports the blob-level changes from the before tree to
// the after tree, sorted by path. Directory rows are skipped; they show
// up indirectly through the files beneath them.
func (d *Differ) ChangedFiles(before, after object.Hash) ([]Change, error) {
	rows, err := d.CompareTrees([]object.Hash{before, after})
	if err != nil {
		return nil, err
	}

	var changes []Change
	for _, row := range rows {
		if row.Kind != object.TypeBlob {
			continue
		}
		b, a := row.OIDs[0], row.OIDs[1]
		if b == a {
			continue
		}
		c := Change{Path: row.Path, Before: b, After: a}
		switch {
		case b == "":
			c.Kind = Added
		case a == "":
			c.Kind = Deleted
		default:
			c.Kind = Modified
		}
		changes = append(changes, c)
	}
	return changes, nil
}
