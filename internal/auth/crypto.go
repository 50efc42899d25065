package auth

import (
	"crypto/sha256"
	"crypto/subtle"
)

// ConstantTimeEqual compares two secrets without leaking where they differ or
// how long either is. Both sides are reduced to fixed-size digests first.
func ConstantTimeEqual(a, b string) bool {
	aSum := sha256.Sum256([]byte(a))
	bSum := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(aSum[:], bSum[:]) == 1
}
