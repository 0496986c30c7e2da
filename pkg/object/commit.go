package object

import (
	"bytes"
	"fmt"
	"strings"
)

// MarshalCommit serializes a Commit:
//
//	tree H
//	parent H     (zero or more, ordered)
//	timestamp T
//
//	message
//
// The message is stored with a single trailing newline.
func MarshalCommit(c *Commit) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", string(c.TreeHash))
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", string(p))
	}
	fmt.Fprintf(&buf, "timestamp %s\n", c.Timestamp)
	buf.WriteByte('\n')
	buf.WriteString(strings.TrimSuffix(c.Message, "\n"))
	buf.WriteByte('\n')
	return buf.Bytes()
}

// UnmarshalCommit parses a Commit from its serialized form. Every parent
// line is collected in order, so merge commits with two or more parents
// round-trip. A commit without a tree or timestamp header reports
// ErrMalformedCommit.
func UnmarshalCommit(data []byte) (*Commit, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("missing header/message separator: %w", ErrMalformedCommit)
	}
	header := string(data[:idx])
	message := strings.TrimSuffix(string(data[idx+2:]), "\n")

	c := &Commit{Message: message}
	sawTree := false
	sawTimestamp := false
	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("malformed header line %q: %w", line, ErrMalformedCommit)
		}
		switch key {
		case "tree":
			c.TreeHash = Hash(val)
			sawTree = true
		case "parent":
			c.Parents = append(c.Parents, Hash(val))
		case "timestamp":
			c.Timestamp = val
			sawTimestamp = true
		default:
			return nil, fmt.Errorf("unknown header key %q: %w", key, ErrMalformedCommit)
		}
	}
	if !sawTree {
		return nil, fmt.Errorf("missing tree header: %w", ErrMalformedCommit)
	}
	if !sawTimestamp {
		return nil, fmt.Errorf("missing timestamp header: %w", ErrMalformedCommit)
	}
	return c, nil
}
