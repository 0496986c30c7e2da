package object

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// KindForMode maps a tree entry mode string to the object kind it points at.
func KindForMode(mode string) (ObjectType, error) {
	switch mode {
	case TreeModeFile:
		return TypeBlob, nil
	case TreeModeDir:
		return TypeTree, nil
	case TreeModeCommit:
		return TypeCommit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
	}
}

// MarshalTree serializes tree entries as concatenated binary records:
//
//	"<mode> <name>\x00" + raw hash bytes (RawHashSize wide)
//
// Entries are sorted by name for deterministic output, so two trees with
// identical contents hash identically regardless of enumeration order.
func MarshalTree(entries []TreeEntry) ([]byte, error) {
	sorted := make([]TreeEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	var buf bytes.Buffer
	for _, e := range sorted {
		if e.Name == "" || strings.ContainsRune(e.Name, '/') {
			return nil, fmt.Errorf("marshal tree: invalid entry name %q", e.Name)
		}
		raw, err := hex.DecodeString(string(e.OID))
		if err != nil || len(raw) != RawHashSize {
			return nil, fmt.Errorf("marshal tree: entry %q: %w", e.Name, ErrInvalidHash)
		}
		fmt.Fprintf(&buf, "%s %s\x00", treeModeOrDefault(e), e.Name)
		buf.Write(raw)
	}
	return buf.Bytes(), nil
}

func treeModeOrDefault(e TreeEntry) string {
	if e.Mode == "" {
		return TreeModeFile
	}
	return e.Mode
}

// ParseTree parses a tree payload into its single-level entries. Each record
// is "<mode> <name>\x00" followed by exactly RawHashSize raw hash bytes; a
// missing NUL or a short hash field reports ErrCorruptTree.
func ParseTree(data []byte) ([]TreeEntry, error) {
	var entries []TreeEntry
	pos := 0
	for pos < len(data) {
		nul := bytes.IndexByte(data[pos:], 0)
		if nul < 0 {
			return nil, fmt.Errorf("tree entry at offset %d: missing NUL separator: %w", pos, ErrCorruptTree)
		}
		head := string(data[pos : pos+nul])
		mode, name, ok := strings.Cut(head, " ")
		if !ok || mode == "" || name == "" {
			return nil, fmt.Errorf("tree entry %q: malformed mode/name: %w", head, ErrCorruptTree)
		}

		hashStart := pos + nul + 1
		hashEnd := hashStart + RawHashSize
		if hashEnd > len(data) {
			return nil, fmt.Errorf("tree entry %q: truncated hash: %w", name, ErrCorruptTree)
		}

		entries = append(entries, TreeEntry{
			Mode: mode,
			Name: name,
			OID:  Hash(hex.EncodeToString(data[hashStart:hashEnd])),
		})
		pos = hashEnd
	}
	return entries, nil
}
