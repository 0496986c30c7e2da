package diff

import (
	"strings"
	"testing"

	"github.com/bgit-dev/bgit/pkg/object"
)

// buildTree writes files (path -> content) into the store as a nested
// tree structure and returns the root tree hash.
func buildTree(t *testing.T, s *object.Store, files map[string]string) object.Hash {
	t.Helper()

	type dir struct {
		blobs map[string]object.Hash
		subs  map[string]*dir
	}
	newDir := func() *dir {
		return &dir{blobs: map[string]object.Hash{}, subs: map[string]*dir{}}
	}
	root := newDir()

	for p, content := range files {
		h, err := s.WriteBlob([]byte(content))
		if err != nil {
			t.Fatalf("WriteBlob: %v", err)
		}
		parts := strings.Split(p, "/")
		d := root
		for _, part := range parts[:len(parts)-1] {
			if d.subs[part] == nil {
				d.subs[part] = newDir()
			}
			d = d.subs[part]
		}
		d.blobs[parts[len(parts)-1]] = h
	}

	var write func(d *dir) object.Hash
	write = func(d *dir) object.Hash {
		var entries []object.TreeEntry
		for name, h := range d.blobs {
			entries = append(entries, object.TreeEntry{
				Mode: object.TreeModeFile, Name: name, OID: h,
			})
		}
		for name, sub := range d.subs {
			entries = append(entries, object.TreeEntry{
				Mode: object.TreeModeDir, Name: name, OID: write(sub),
			})
		}
		h, err := s.WriteTreeEntries(entries)
		if err != nil {
			t.Fatalf("WriteTreeEntries: %v", err)
		}
		return h
	}
	return write(root)
}

func TestCompareTreesIdentical(t *testing.T) {
	s := object.NewStore(t.TempDir())
	tree := buildTree(t, s, map[string]string{
		"a.txt":     "alpha\n",
		"sub/b.txt": "beta\n",
	})

	rows, err := NewDiffer(s).CompareTrees([]object.Hash{tree, tree})
	if err != nil {
		t.Fatalf("CompareTrees: %v", err)
	}
	for _, row := range rows {
		if row.OIDs[0] != row.OIDs[1] {
			t.Errorf("Path %s: OIDs differ between identical trees", row.Path)
		}
	}
}

func TestCompareTreesDeepNesting(t *testing.T) {
	s := object.NewStore(t.TempDir())
	before := buildTree(t, s, map[string]string{
		"a/b/c/deep.txt": "old\n",
	})
	after := buildTree(t, s, map[string]string{
		"a/b/c/deep.txt": "new\n",
	})

	rows, err := NewDiffer(s).CompareTrees([]object.Hash{before, after})
	if err != nil {
		t.Fatalf("CompareTrees: %v", err)
	}

	found := false
	for _, row := range rows {
		if row.Path == "a/b/c/deep.txt" {
			found = true
			if row.Kind != object.TypeBlob {
				t.Errorf("Kind: got %q, want blob", row.Kind)
			}
			if row.OIDs[0] == row.OIDs[1] {
				t.Error("Expected differing OIDs for changed file")
			}
		}
	}
	if !found {
		t.Error("Comparison did not descend to a/b/c/deep.txt")
	}
}

func TestCompareTreesSortedByPath(t *testing.T) {
	s := object.NewStore(t.TempDir())
	tree := buildTree(t, s, map[string]string{
		"z.txt":     "z\n",
		"a.txt":     "a\n",
		"mid/m.txt": "m\n",
	})
	rows, err := NewDiffer(s).CompareTrees([]object.Hash{tree})
	if err != nil {
		t.Fatalf("CompareTrees: %v", err)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Path >= rows[i].Path {
			t.Errorf("Rows not sorted: %q before %q", rows[i-1].Path, rows[i].Path)
		}
	}
}

func TestCompareTreesAbsentSides(t *testing.T) {
	s := object.NewStore(t.TempDir())
	left := buildTree(t, s, map[string]string{"only-left.txt": "l\n"})
	right := buildTree(t, s, map[string]string{"only-right.txt": "r\n"})

	rows, err := NewDiffer(s).CompareTrees([]object.Hash{left, right})
	if err != nil {
		t.Fatalf("CompareTrees: %v", err)
	}
	byPath := map[string]Row{}
	for _, row := range rows {
		byPath[row.Path] = row
	}

	l := byPath["only-left.txt"]
	if l.OIDs[0] == "" || l.OIDs[1] != "" {
		t.Errorf("only-left.txt OIDs: got %v", l.OIDs)
	}
	r := byPath["only-right.txt"]
	if r.OIDs[0] != "" || r.OIDs[1] == "" {
		t.Errorf("only-right.txt OIDs: got %v", r.OIDs)
	}
}

func TestCompareTreesKindPrefersTree(t *testing.T) {
	s := object.NewStore(t.TempDir())
	asFile := buildTree(t, s, map[string]string{"thing": "file content\n"})
	asDir := buildTree(t, s, map[string]string{"thing/inner.txt": "nested\n"})

	rows, err := NewDiffer(s).CompareTrees([]object.Hash{asFile, asDir})
	if err != nil {
		t.Fatalf("CompareTrees: %v", err)
	}
	for _, row := range rows {
		if row.Path == "thing" && row.Kind != object.TypeTree {
			t.Errorf("thing Kind: got %q, want tree", row.Kind)
		}
	}
}

func TestChangedFiles(t *testing.T) {
	s := object.NewStore(t.TempDir())
	before := buildTree(t, s, map[string]string{
		"keep.txt":   "same\n",
		"gone.txt":   "bye\n",
		"change.txt": "v1\n",
	})
	after := buildTree(t, s, map[string]string{
		"keep.txt":   "same\n",
		"new.txt":    "hi\n",
		"change.txt": "v2\n",
	})

	changes, err := NewDiffer(s).ChangedFiles(before, after)
	if err != nil {
		t.Fatalf("ChangedFiles: %v", err)
	}
	got := map[string]ChangeKind{}
	for _, c := range changes {
		got[c.Path] = c.Kind
	}
	if len(changes) != 3 {
		t.Errorf("Change count: got %d, want 3 (%v)", len(changes), got)
	}
	if got["gone.txt"] != Deleted {
		t.Errorf("gone.txt: got %v, want deleted", got["gone.txt"])
	}
	if got["new.txt"] != Added {
		t.Errorf("new.txt: got %v, want added", got["new.txt"])
	}
	if got["change.txt"] != Modified {
		t.Errorf("change.txt: got %v, want modified", got["change.txt"])
	}
	if _, ok := got["keep.txt"]; ok {
		t.Error("keep.txt reported as changed")
	}
}

func TestDiffTreesIdenticalEmpty(t *testing.T) {
	s := object.NewStore(t.TempDir())
	tree := buildTree(t, s, map[string]string{"f.txt": "content\n"})
	out, err := NewDiffer(s).DiffTrees(tree, tree)
	if err != nil {
		t.Fatalf("DiffTrees: %v", err)
	}
	if out != "" {
		t.Errorf("Diff of identical trees: got %q, want empty", out)
	}
}

func TestDiffTreesUnifiedOutput(t *testing.T) {
	s := object.NewStore(t.TempDir())
	before := buildTree(t, s, map[string]string{"f.txt": "one\ntwo\nthree\n"})
	after := buildTree(t, s, map[string]string{"f.txt": "one\nTWO\nthree\n"})

	out, err := NewDiffer(s).DiffTrees(before, after)
	if err != nil {
		t.Fatalf("DiffTrees: %v", err)
	}
	for _, want := range []string{"--- a/f.txt", "+++ b/f.txt", "-two", "+TWO"} {
		if !strings.Contains(out, want) {
			t.Errorf("Diff output missing %q:\n%s", want, out)
		}
	}
}

func TestDiffTreesAddedFile(t *testing.T) {
	s := object.NewStore(t.TempDir())
	before := buildTree(t, s, map[string]string{"a.txt": "a\n"})
	after := buildTree(t, s, map[string]string{"a.txt": "a\n", "b.txt": "b\n"})

	out, err := NewDiffer(s).DiffTrees(before, after)
	if err != nil {
		t.Fatalf("DiffTrees: %v", err)
	}
	if !strings.Contains(out, "--- /dev/null") || !strings.Contains(out, "+++ b/b.txt") {
		t.Errorf("Added-file diff headers wrong:\n%s", out)
	}
	if !strings.Contains(out, "+b") {
		t.Errorf("Added-file diff body missing:\n%s", out)
	}
}
