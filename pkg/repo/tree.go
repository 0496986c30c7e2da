package repo

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bgit-dev/bgit/pkg/object"
)

// BuildTree snapshots the directory at dir (relative to the repository
// root, "" for the whole working tree) into tree objects and returns the
// root tree hash. Ignored paths are skipped; a directory with no
// recordable children still produces a valid empty tree object.
func (r *Repo) BuildTree(dir string) (object.Hash, error) {
	return r.buildTreeDir(filepath.Join(r.RootDir, dir), dir)
}

func (r *Repo) buildTreeDir(absDir, relDir string) (object.Hash, error) {
	dirEntries, err := os.ReadDir(absDir)
	if err != nil {
		return "", fmt.Errorf("build tree %q: %w", relDir, err)
	}

	var entries []object.TreeEntry
	for _, de := range dirEntries {
		relPath := path.Join(filepath.ToSlash(relDir), de.Name())
		if r.Ignore().IsIgnored(relPath) {
			continue
		}

		if de.IsDir() {
			subHash, err := r.buildTreeDir(filepath.Join(absDir, de.Name()), relPath)
			if err != nil {
				return "", err
			}
			entries = append(entries, object.TreeEntry{
				Mode: object.TreeModeDir,
				Name: de.Name(),
				OID:  subHash,
			})
			continue
		}
		if !de.Type().IsRegular() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(absDir, de.Name()))
		if err != nil {
			return "", fmt.Errorf("build tree: read %q: %w", relPath, err)
		}
		blobHash, err := r.Store.WriteBlob(data)
		if err != nil {
			return "", fmt.Errorf("build tree: store %q: %w", relPath, err)
		}
		entries = append(entries, object.TreeEntry{
			Mode: object.TreeModeFile,
			Name: de.Name(),
			OID:  blobHash,
		})
	}

	h, err := r.Store.WriteTreeEntries(entries)
	if err != nil {
		return "", fmt.Errorf("build tree %q: %w", relDir, err)
	}
	return h, nil
}

// ReadTree materializes the tree at oid into dest (relative to the
// repository root, "" for the working tree). The destination is emptied
// first, sparing ignored paths, so the result mirrors the tree exactly.
func (r *Repo) ReadTree(oid object.Hash, dest string) error {
	absDest := filepath.Join(r.RootDir, dest)
	if err := r.emptyDir(absDest, filepath.ToSlash(dest)); err != nil {
		return err
	}
	return r.materializeTree(oid, absDest, filepath.ToSlash(dest))
}

// emptyDir removes everything under absDir except ignored paths. An
// ignored directory is skipped whole.
func (r *Repo) emptyDir(absDir, relDir string) error {
	dirEntries, err := os.ReadDir(absDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("empty dir %q: %w", relDir, err)
	}

	for _, de := range dirEntries {
		relPath := path.Join(relDir, de.Name())
		if r.Ignore().IsIgnored(relPath) {
			continue
		}
		absPath := filepath.Join(absDir, de.Name())

		if de.IsDir() {
			if err := r.emptyDir(absPath, relPath); err != nil {
				return err
			}
			// Removal fails while ignored files remain inside; that is
			// the intended outcome, not an error.
			_ = os.Remove(absPath)
			continue
		}
		if err := os.Remove(absPath); err != nil {
			return fmt.Errorf("empty dir: remove %q: %w", relPath, err)
		}
	}
	return nil
}

func (r *Repo) materializeTree(oid object.Hash, absDir, relDir string) error {
	entries, err := r.Store.ReadTreeEntries(oid)
	if err != nil {
		return fmt.Errorf("read tree %q: %w", relDir, err)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return fmt.Errorf("read tree: mkdir %q: %w", relDir, err)
	}

	for _, e := range entries {
		kind, err := e.Kind()
		if err != nil {
			return fmt.Errorf("read tree %q: entry %q: %w", relDir, e.Name, err)
		}
		absPath := filepath.Join(absDir, e.Name)
		relPath := path.Join(relDir, e.Name)

		switch kind {
		case object.TypeTree:
			if err := r.materializeTree(e.OID, absPath, relPath); err != nil {
				return err
			}
		case object.TypeBlob:
			data, err := r.Store.ReadBlob(e.OID)
			if err != nil {
				return fmt.Errorf("read tree: blob %q: %w", relPath, err)
			}
			if err := os.WriteFile(absPath, data, 0o644); err != nil {
				return fmt.Errorf("read tree: write %q: %w", relPath, err)
			}
		default:
			return fmt.Errorf("read tree %q: entry %q: mode %s: %w",
				relDir, e.Name, e.Mode, object.ErrUnsupportedMode)
		}
	}
	return nil
}

// ListTree returns a tree's single-level entries sorted by name.
func (r *Repo) ListTree(oid object.Hash) ([]object.TreeEntry, error) {
	entries, err := r.Store.ReadTreeEntries(oid)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}
