// Package fair implements the provably-fair wagering core: pre-committed
// seed chains, the dealer that consumes them one bet at a time, the
// deterministic roll function, and the verification protocol.
//
// A chain is built once from a single random terminal secret hashed
// forward N times and reversed, so that every published digest commits to
// all the still-secret ones after it. The first entry (the anchor) is
// public from the start; each bet reveals the next secret, and anyone can
// check that the reveal hashes back to the previously known anchor.
package fair

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// digestHexLen is the length of a hex-encoded SHA-256 digest.
const digestHexLen = 64

// Chain is an ordered sequence of hex-encoded SHA-256 digests where each
// entry is the hash of the one after it: sha256(chain[i]) == chain[i-1].
// Index 0 is the public anchor; index len-1 is the terminal secret. A
// chain is immutable once built — only the dealer's cursor into it moves.
type Chain []string

// Generate builds a fresh chain with size playable seeds (size+1 digests).
// The terminal secret is drawn from crypto/rand, hashed forward size
// times, and the list is reversed so the anchor lands at index 0.
func Generate(size int) (Chain, error) {
	if size < 1 {
		return nil, fmt.Errorf("chain size must be at least 1, got %d", size)
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to draw terminal secret: %w", err)
	}

	seeds := make([]string, 0, size+1)
	current := hex.EncodeToString(secret)
	seeds = append(seeds, current)

	for i := 0; i < size; i++ {
		current = HashSeed(current)
		seeds = append(seeds, current)
	}

	// The list is terminal-secret-first; flip it so index 0 is the anchor.
	for i, j := 0, len(seeds)-1; i < j; i, j = i+1, j-1 {
		seeds[i], seeds[j] = seeds[j], seeds[i]
	}

	return Chain(seeds), nil
}

// HashSeed returns the hex-encoded SHA-256 of a hex-encoded seed string.
// Hashing operates on the hex text, not the decoded bytes, so a client
// can reproduce it with any off-the-shelf sha256 tool.
func HashSeed(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}

// CheckSeed rejects anything that is not a 64-character hex digest.
func CheckSeed(seed string) error {
	if len(seed) != digestHexLen {
		return fmt.Errorf("%w: length %d", ErrInvalidSeed, len(seed))
	}
	if _, err := hex.DecodeString(seed); err != nil {
		return ErrInvalidSeed
	}
	return nil
}

// Validate checks every digest's shape and the hash-chain invariant.
func (c Chain) Validate() error {
	if len(c) < 2 {
		return ErrChainTooSmall
	}
	for i, seed := range c {
		if err := CheckSeed(seed); err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
	}
	for i := 1; i < len(c); i++ {
		if HashSeed(c[i]) != c[i-1] {
			return fmt.Errorf("%w: index %d", ErrBrokenChain, i)
		}
	}
	return nil
}

// Anchor returns the public commitment at index 0.
func (c Chain) Anchor() string {
	return c[0]
}

// Size returns the number of playable seeds (one less than the digest count).
func (c Chain) Size() int {
	return len(c) - 1
}
