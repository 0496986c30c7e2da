package repo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bgit-dev/bgit/pkg/object"
)

// timestampLayout is the format commits are stamped with at creation.
// Stored timestamps are opaque strings and round-trip verbatim.
const timestampLayout = "2006-01-02 15:04:05"

// Commit snapshots the whole working tree and records a commit on HEAD.
// The current HEAD commit, when there is one, becomes the first parent;
// a pending MERGE_HEAD becomes the second parent and is cleared. Under
// an attached HEAD the branch advances; detached, HEAD itself does.
func (r *Repo) Commit(message string) (object.Hash, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	treeHash, err := r.BuildTree("")
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	c := &object.Commit{
		TreeHash:  treeHash,
		Timestamp: time.Now().UTC().Format(timestampLayout),
		Message:   message,
	}

	if head, err := r.ResolveOID(HEAD); err == nil {
		c.Parents = append(c.Parents, head)
	} else if !errors.Is(err, ErrNameNotFound) {
		return "", fmt.Errorf("commit: %w", err)
	}

	mergeHead, err := r.GetRef(MergeHead, true)
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	if mergeHead.Value != "" {
		c.Parents = append(c.Parents, object.Hash(mergeHead.Value))
		if err := r.DeleteRef(MergeHead, false); err != nil {
			return "", fmt.Errorf("commit: %w", err)
		}
	}

	oid, err := r.Store.WriteCommit(c)
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	if err := r.SetRef(HEAD, RefValue{Value: string(oid)}, true); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return oid, nil
}

// LogEntry is one commit in a history listing, with the refs that point
// at it.
type LogEntry struct {
	OID    object.Hash
	Commit *object.Commit
	Refs   []string
}

// Log lists the history reachable from the given commit, the commit
// itself first, decorated with the refs pointing at each entry.
func (r *Repo) Log(from object.Hash) ([]LogEntry, error) {
	refs, err := r.IterRefs("", true)
	if err != nil {
		return nil, err
	}
	byOID := map[object.Hash][]string{}
	for _, ref := range refs {
		oid := object.Hash(ref.Value.Value)
		byOID[oid] = append(byOID[oid], ref.Name)
	}

	oids, err := r.Ancestors(from)
	if err != nil {
		return nil, err
	}

	entries := make([]LogEntry, 0, len(oids))
	for _, oid := range oids {
		c, err := r.Store.ReadCommit(oid)
		if err != nil {
			return nil, fmt.Errorf("log: %w", err)
		}
		entries = append(entries, LogEntry{OID: oid, Commit: c, Refs: byOID[oid]})
	}
	return entries, nil
}
