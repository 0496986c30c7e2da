package object

import "errors"

var (
	// ErrNotFound reports a lookup for an object that is not in the store.
	ErrNotFound = errors.New("object not found")

	// ErrCorruptObject reports stored bytes that violate the envelope
	// contract "<kind> <len>\x00<content>".
	ErrCorruptObject = errors.New("corrupt object")

	// ErrCorruptTree reports a tree payload with a truncated or malformed
	// entry record.
	ErrCorruptTree = errors.New("corrupt tree")

	// ErrMalformedCommit reports a commit payload missing required headers.
	ErrMalformedCommit = errors.New("malformed commit")

	// ErrInvalidHash reports a caller-supplied OID that is not lowercase
	// hex of the expected length.
	ErrInvalidHash = errors.New("invalid hash format")

	// ErrUnsupportedMode reports a tree entry mode outside the recognized set.
	ErrUnsupportedMode = errors.New("unsupported tree entry mode")
)
