package object

import (
	"errors"
	"strings"
	"testing"
)

func TestCommitRoundTrip(t *testing.T) {
	orig := &Commit{
		TreeHash:  fakeHash('1'),
		Parents:   []Hash{fakeHash('2')},
		Timestamp: "2026-08-27 12:00:00",
		Message:   "initial commit",
	}
	got, err := UnmarshalCommit(MarshalCommit(orig))
	if err != nil {
		t.Fatalf("UnmarshalCommit: %v", err)
	}
	if got.TreeHash != orig.TreeHash {
		t.Errorf("TreeHash: got %q, want %q", got.TreeHash, orig.TreeHash)
	}
	if len(got.Parents) != 1 || got.Parents[0] != orig.Parents[0] {
		t.Errorf("Parents: got %v, want %v", got.Parents, orig.Parents)
	}
	if got.Timestamp != orig.Timestamp {
		t.Errorf("Timestamp: got %q, want %q", got.Timestamp, orig.Timestamp)
	}
	if got.Message != orig.Message {
		t.Errorf("Message: got %q, want %q", got.Message, orig.Message)
	}
}

func TestCommitNoParents(t *testing.T) {
	c := &Commit{
		TreeHash:  fakeHash('a'),
		Timestamp: "2026-01-01 00:00:00",
		Message:   "root",
	}
	data := MarshalCommit(c)
	if strings.Contains(string(data), "parent") {
		t.Error("Root commit serialization should carry no parent lines")
	}
	got, err := UnmarshalCommit(data)
	if err != nil {
		t.Fatalf("UnmarshalCommit: %v", err)
	}
	if len(got.Parents) != 0 {
		t.Errorf("Parents: got %v, want none", got.Parents)
	}
}

func TestCommitMergeParentsOrdered(t *testing.T) {
	c := &Commit{
		TreeHash:  fakeHash('a'),
		Parents:   []Hash{fakeHash('b'), fakeHash('c')},
		Timestamp: "2026-01-01 00:00:00",
		Message:   "merge branch",
	}
	got, err := UnmarshalCommit(MarshalCommit(c))
	if err != nil {
		t.Fatalf("UnmarshalCommit: %v", err)
	}
	if len(got.Parents) != 2 {
		t.Fatalf("Parents: got %d, want 2", len(got.Parents))
	}
	if got.Parents[0] != c.Parents[0] || got.Parents[1] != c.Parents[1] {
		t.Errorf("Parent order not preserved: got %v, want %v", got.Parents, c.Parents)
	}
}

func TestCommitMultilineMessage(t *testing.T) {
	c := &Commit{
		TreeHash:  fakeHash('a'),
		Timestamp: "2026-01-01 00:00:00",
		Message:   "subject\n\nbody line one\nbody line two",
	}
	got, err := UnmarshalCommit(MarshalCommit(c))
	if err != nil {
		t.Fatalf("UnmarshalCommit: %v", err)
	}
	if got.Message != c.Message {
		t.Errorf("Message: got %q, want %q", got.Message, c.Message)
	}
}

func TestCommitSerializedShape(t *testing.T) {
	c := &Commit{
		TreeHash:  fakeHash('a'),
		Parents:   []Hash{fakeHash('b')},
		Timestamp: "2026-01-01 00:00:00",
		Message:   "msg",
	}
	want := "tree " + string(fakeHash('a')) + "\n" +
		"parent " + string(fakeHash('b')) + "\n" +
		"timestamp 2026-01-01 00:00:00\n" +
		"\n" +
		"msg\n"
	if got := string(MarshalCommit(c)); got != want {
		t.Errorf("Serialized commit:\ngot  %q\nwant %q", got, want)
	}
}

func TestUnmarshalCommitMissingSeparator(t *testing.T) {
	_, err := UnmarshalCommit([]byte("tree abc\ntimestamp now"))
	if !errors.Is(err, ErrMalformedCommit) {
		t.Errorf("Got %v, want ErrMalformedCommit", err)
	}
}

func TestUnmarshalCommitMissingTree(t *testing.T) {
	_, err := UnmarshalCommit([]byte("timestamp 2026-01-01 00:00:00\n\nmsg\n"))
	if !errors.Is(err, ErrMalformedCommit) {
		t.Errorf("Got %v, want ErrMalformedCommit", err)
	}
}

func TestUnmarshalCommitUnknownHeader(t *testing.T) {
	data := "tree " + string(fakeHash('a')) + "\nauthor nobody\ntimestamp t\n\nmsg\n"
	_, err := UnmarshalCommit([]byte(data))
	if !errors.Is(err, ErrMalformedCommit) {
		t.Errorf("Got %v, want ErrMalformedCommit", err)
	}
}
