package object

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HashObject computes the SHA-256 of the envelope "<kind> <len>\x00<content>"
// and returns it as a lowercase hex-encoded Hash. Two objects with identical
// kind and content always collide to the same Hash, which is what makes
// store writes idempotent.
func HashObject(objType ObjectType, data []byte) Hash {
	header := fmt.Sprintf("%s %d\x00", objType, len(data))
	h := sha256.New()
	h.Write([]byte(header))
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// IsHash reports whether s has the shape of a hex-encoded object hash.
func IsHash(s string) bool {
	if len(s) != HexHashSize {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// ValidateHash returns ErrInvalidHash when h is not a well-formed hash.
func ValidateHash(h Hash) error {
	if !IsHash(string(h)) {
		return fmt.Errorf("%w: %q", ErrInvalidHash, h)
	}
	return nil
}
