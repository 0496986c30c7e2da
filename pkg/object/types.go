package object

import "crypto/sha256"

// Hash is a 64-character hex-encoded SHA-256 digest identifying a stored object.
type Hash string

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
)

const (
	// RawHashSize is the width in bytes of the binary hash embedded in tree
	// entries. The tree codec and OID validation consume this constant so a
	// different hash function substitutes without touching the formats.
	RawHashSize = sha256.Size

	// HexHashSize is the length of a hex-encoded Hash.
	HexHashSize = 2 * RawHashSize
)

const (
	// Tree mode constants compatible with Git's canonical mode strings.
	TreeModeDir    = "40000"
	TreeModeFile   = "100644"
	TreeModeCommit = "160000"
)

// TreeEntry is one entry in a tree object: a named child with its mode.
type TreeEntry struct {
	Mode string
	Name string
	OID  Hash
}

// Kind maps the entry's mode to the object kind it references.
func (e TreeEntry) Kind() (ObjectType, error) {
	return KindForMode(e.Mode)
}

// Commit represents a commit pointing to a tree with metadata. Timestamp is
// an opaque string so stored commits round-trip byte for byte.
type Commit struct {
	TreeHash  Hash
	Parents   []Hash
	Timestamp string
	Message   string
}
