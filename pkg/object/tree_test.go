package object

import (
	"errors"
	"strings"
	"testing"
)

func fakeHash(b byte) Hash {
	return Hash(strings.Repeat(string([]byte{b}), HexHashSize))
}

func TestMarshalTreeDeterministic(t *testing.T) {
	a := TreeEntry{Mode: TreeModeFile, Name: "a.txt", OID: fakeHash('a')}
	b := TreeEntry{Mode: TreeModeDir, Name: "sub", OID: fakeHash('b')}

	data1, err := MarshalTree([]TreeEntry{a, b})
	if err != nil {
		t.Fatalf("MarshalTree: %v", err)
	}
	data2, err := MarshalTree([]TreeEntry{b, a})
	if err != nil {
		t.Fatalf("MarshalTree: %v", err)
	}
	if string(data1) != string(data2) {
		t.Error("MarshalTree output depends on input order")
	}
}

func TestTreeRoundTrip(t *testing.T) {
	entries := []TreeEntry{
		{Mode: TreeModeFile, Name: "README", OID: fakeHash('1')},
		{Mode: TreeModeDir, Name: "docs", OID: fakeHash('2')},
		{Mode: TreeModeFile, Name: "main.go", OID: fakeHash('3')},
	}
	data, err := MarshalTree(entries)
	if err != nil {
		t.Fatalf("MarshalTree: %v", err)
	}
	got, err := ParseTree(data)
	if err != nil {
		t.Fatalf("ParseTree: %v", err)
	}
	if len(got) != len(entries) {
		t.Fatalf("Entry count: got %d, want %d", len(got), len(entries))
	}
	// MarshalTree sorts by name.
	wantOrder := []string{"README", "docs", "main.go"}
	for i, e := range got {
		if e.Name != wantOrder[i] {
			t.Errorf("Entry %d: got name %q, want %q", i, e.Name, wantOrder[i])
		}
	}
	for _, e := range got {
		for _, orig := range entries {
			if orig.Name == e.Name {
				if e.Mode != orig.Mode || e.OID != orig.OID {
					t.Errorf("Entry %q: got {%s %s}, want {%s %s}",
						e.Name, e.Mode, e.OID, orig.Mode, orig.OID)
				}
			}
		}
	}
}

func TestMarshalTreeEmpty(t *testing.T) {
	data, err := MarshalTree(nil)
	if err != nil {
		t.Fatalf("MarshalTree: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("Empty tree payload: got %d bytes, want 0", len(data))
	}
	entries, err := ParseTree(data)
	if err != nil {
		t.Fatalf("ParseTree: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Empty tree entries: got %d, want 0", len(entries))
	}
}

func TestMarshalTreeRejectsSlashInName(t *testing.T) {
	_, err := MarshalTree([]TreeEntry{{Name: "a/b", OID: fakeHash('a')}})
	if err == nil {
		t.Error("Expected error for name containing '/'")
	}
}

func TestMarshalTreeRejectsBadHash(t *testing.T) {
	_, err := MarshalTree([]TreeEntry{{Name: "f", OID: "nothex"}})
	if !errors.Is(err, ErrInvalidHash) {
		t.Errorf("Got %v, want ErrInvalidHash", err)
	}
}

func TestMarshalTreeDefaultMode(t *testing.T) {
	data, err := MarshalTree([]TreeEntry{{Name: "f", OID: fakeHash('c')}})
	if err != nil {
		t.Fatalf("MarshalTree: %v", err)
	}
	entries, err := ParseTree(data)
	if err != nil {
		t.Fatalf("ParseTree: %v", err)
	}
	if entries[0].Mode != TreeModeFile {
		t.Errorf("Default mode: got %q, want %q", entries[0].Mode, TreeModeFile)
	}
}

func TestParseTreeMissingNul(t *testing.T) {
	_, err := ParseTree([]byte("100644 file-without-nul"))
	if !errors.Is(err, ErrCorruptTree) {
		t.Errorf("Got %v, want ErrCorruptTree", err)
	}
}

func TestParseTreeTruncatedHash(t *testing.T) {
	payload := append([]byte("100644 f\x00"), []byte("short")...)
	_, err := ParseTree(payload)
	if !errors.Is(err, ErrCorruptTree) {
		t.Errorf("Got %v, want ErrCorruptTree", err)
	}
}

func TestKindForMode(t *testing.T) {
	cases := []struct {
		mode string
		want ObjectType
	}{
		{TreeModeFile, TypeBlob},
		{TreeModeDir, TypeTree},
		{TreeModeCommit, TypeCommit},
	}
	for _, c := range cases {
		got, err := KindForMode(c.mode)
		if err != nil {
			t.Errorf("KindForMode(%q): %v", c.mode, err)
		}
		if got != c.want {
			t.Errorf("KindForMode(%q): got %q, want %q", c.mode, got, c.want)
		}
	}
	if _, err := KindForMode("777"); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("KindForMode(777): got %v, want ErrUnsupportedMode", err)
	}
}

func TestTreeEntryKind(t *testing.T) {
	e := TreeEntry{Mode: TreeModeDir, Name: "d", OID: fakeHash('d')}
	kind, err := e.Kind()
	if err != nil {
		t.Fatalf("Kind: %v", err)
	}
	if kind != TypeTree {
		t.Errorf("Kind: got %q, want %q", kind, TypeTree)
	}
}
