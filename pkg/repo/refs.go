package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bgit-dev/bgit/pkg/object"
)

const (
	// HEAD is the ref naming the current commit. Attached, it points
	// symbolically at a branch; detached, it holds a hash directly.
	HEAD = "HEAD"

	// MergeHead is set while a non-fast-forward merge awaits its commit.
	// The next commit consumes it as a second parent and deletes it.
	MergeHead = "MERGE_HEAD"

	symbolicPrefix = "ref: "

	// maxSymbolicDepth bounds symbolic ref chains.
	maxSymbolicDepth = 16
)

// RefValue is the content of a ref: either a hash, or a symbolic pointer
// to another ref.
type RefValue struct {
	Symbolic bool
	Value    string
}

// GetRef reads the ref with the given name ("HEAD", "refs/heads/x",
// ...). With deref set, symbolic refs are followed to the final hash
// value. A missing or empty ref file yields a zero RefValue, not an
// error.
func (r *Repo) GetRef(name string, deref bool) (RefValue, error) {
	_, val, err := r.getRefInternal(name, deref)
	return val, err
}

// getRefInternal also returns the name of the ref where the value was
// found, which is the write target for deref updates.
func (r *Repo) getRefInternal(name string, deref bool) (string, RefValue, error) {
	depth := 0
	for {
		data, err := os.ReadFile(filepath.Join(r.BgitDir, filepath.FromSlash(name)))
		if err != nil {
			if os.IsNotExist(err) {
				return name, RefValue{}, nil
			}
			return "", RefValue{}, fmt.Errorf("get ref %q: %w", name, err)
		}
		content := strings.TrimSpace(string(data))

		if !strings.HasPrefix(content, symbolicPrefix) {
			return name, RefValue{Symbolic: false, Value: content}, nil
		}

		target := strings.TrimPrefix(content, symbolicPrefix)
		if !deref {
			return name, RefValue{Symbolic: true, Value: target}, nil
		}
		depth++
		if depth > maxSymbolicDepth {
			return "", RefValue{}, fmt.Errorf("get ref %q: symbolic chain deeper than %d", name, maxSymbolicDepth)
		}
		name = target
	}
}

// SetRef writes a ref. With deref set, a symbolic ref is followed and
// the final ref in the chain is updated, which is how a commit under an
// attached HEAD moves the branch rather than HEAD itself.
func (r *Repo) SetRef(name string, val RefValue, deref bool) error {
	target, _, err := r.getRefInternal(name, deref)
	if err != nil {
		return err
	}

	var content string
	if val.Symbolic {
		content = symbolicPrefix + val.Value
	} else {
		content = val.Value
	}

	path := filepath.Join(r.BgitDir, filepath.FromSlash(target))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("set ref %q: mkdir: %w", target, err)
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return fmt.Errorf("set ref %q: %w", target, err)
	}
	return nil
}

// DeleteRef removes a ref. With deref set, the final ref in a symbolic
// chain is the one removed.
func (r *Repo) DeleteRef(name string, deref bool) error {
	target, _, err := r.getRefInternal(name, deref)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(r.BgitDir, filepath.FromSlash(target))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete ref %q: %w", target, err)
	}
	return nil
}

// Ref pairs a ref name with its value for enumeration.
type Ref struct {
	Name  string
	Value RefValue
}

// IterRefs enumerates refs whose slash-relative name starts with prefix,
// sorted by name. HEAD and MERGE_HEAD are included when the prefix
// allows; housekeeping files (lock files, .DS_Store) are skipped. With
// deref set, symbolic refs resolve to hashes and refs with no value yet
// are omitted.
func (r *Repo) IterRefs(prefix string, deref bool) ([]Ref, error) {
	names := []string{HEAD, MergeHead}

	root := filepath.Join(r.BgitDir, "refs")
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		base := d.Name()
		if base == ".DS_Store" || strings.HasSuffix(base, ".lock") {
			return nil
		}
		rel, err := filepath.Rel(r.BgitDir, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("iter refs: %w", err)
	}

	var refs []Ref
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		val, err := r.GetRef(name, deref)
		if err != nil {
			return nil, err
		}
		if val.Value == "" {
			continue
		}
		refs = append(refs, Ref{Name: name, Value: val})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// ResolveOID resolves a user-supplied revision name to an object hash.
// "@" is an alias for HEAD. Ref candidates are tried in order: the name
// itself, refs/<name>, refs/tags/<name>, refs/heads/<name>. A name that
// is no ref but has the shape of a full hash resolves to itself.
func (r *Repo) ResolveOID(name string) (object.Hash, error) {
	if name == "@" {
		name = HEAD
	}

	candidates := []string{
		name,
		"refs/" + name,
		"refs/tags/" + name,
		"refs/heads/" + name,
	}
	for _, c := range candidates {
		val, err := r.GetRef(c, true)
		if err != nil {
			return "", err
		}
		if val.Value != "" {
			return object.Hash(val.Value), nil
		}
	}

	if object.IsHash(name) {
		return object.Hash(name), nil
	}
	return "", fmt.Errorf("resolve %q: %w", name, ErrNameNotFound)
}

// CurrentBranchName returns the branch HEAD is attached to, or "" when
// HEAD is detached.
func (r *Repo) CurrentBranchName() (string, error) {
	val, err := r.GetRef(HEAD, false)
	if err != nil {
		return "", err
	}
	if !val.Symbolic {
		return "", nil
	}
	return strings.TrimPrefix(val.Value, "refs/heads/"), nil
}

// IsBranch reports whether a branch with the given name exists and has
// at least one commit.
func (r *Repo) IsBranch(name string) (bool, error) {
	val, err := r.GetRef("refs/heads/"+name, true)
	if err != nil {
		return false, err
	}
	return val.Value != "", nil
}
