package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(text string) uint64 {
	return xxhash.Sum64String(text)
}

// New returns a streaming xxHash64 digest for fingerprinting structured
// content piece by piece.
func New() *xxhash.Digest {
	return xxhash.New()
}
