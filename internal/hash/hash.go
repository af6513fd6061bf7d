// Package hash computes composite cache keys for chunks of build elements.
//
// A composite key summarizes the full keys of every element in a chunk. Keys
// are sorted before hashing so the result depends only on the set of keys,
// not on the order round-robin striping placed them in. The package provides
// a real implementation using crypto/sha256 and a fake implementation for testing.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
)

// KeySeparator joins sorted element keys before hashing.
const KeySeparator = "\n"

// Hasher provides an abstraction for digest operations.
type Hasher interface {
	// HashString computes the hex-encoded digest of s.
	HashString(s string) string
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashString computes the lowercase hex SHA-256 digest of s.
func (h *SHA256Hasher) HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Canonical drops empty keys, sorts the rest ascending and joins them with
// KeySeparator. It returns "" if no non-empty key remains.
func Canonical(keys []string) string {
	nonEmpty := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			nonEmpty = append(nonEmpty, k)
		}
	}
	if len(nonEmpty) == 0 {
		return ""
	}
	slices.Sort(nonEmpty)
	return strings.Join(nonEmpty, KeySeparator)
}

// CompositeKey returns the digest of the canonical form of keys, or "" when
// every key is empty.
func CompositeKey(h Hasher, keys []string) string {
	canonical := Canonical(keys)
	if canonical == "" {
		return ""
	}
	return h.HashString(canonical)
}

// FakeHasher implements Hasher with deterministic hashes for testing.
type FakeHasher struct {
	hashes map[string]string
	inputs []string
}

// NewFakeHasher creates a new FakeHasher.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{
		hashes: make(map[string]string),
	}
}

// SetHash sets the digest returned for a specific input (for testing).
func (h *FakeHasher) SetHash(input, hash string) {
	h.hashes[input] = hash
}

// Inputs returns every string passed to HashString, in call order.
func (h *FakeHasher) Inputs() []string {
	return h.inputs
}

// HashString returns the predetermined digest for the given input.
func (h *FakeHasher) HashString(s string) string {
	h.inputs = append(h.inputs, s)
	if hash, ok := h.hashes[s]; ok {
		return hash
	}
	// Default hash if not set
	return "fakehash"
}
