package fair

import "errors"

var (
	// ErrChainExhausted means every seed in the chain has been consumed.
	// It is terminal for the chain instance: a new chain must be generated
	// and the dealer reconfigured. Rolling over automatically would reuse
	// indices and break the at-most-once guarantee.
	ErrChainExhausted = errors.New("seed chain exhausted")

	// ErrChainTooSmall means a chain has fewer than two entries, so it
	// has no playable seed beyond the anchor.
	ErrChainTooSmall = errors.New("seed chain must contain at least two digests")

	// ErrBrokenChain means the hash-chain invariant does not hold at
	// some index: sha256(chain[i]) != chain[i-1].
	ErrBrokenChain = errors.New("seed chain integrity check failed")

	// ErrInvalidSeed means a digest is not a 64-character hex string.
	ErrInvalidSeed = errors.New("seed is not a valid sha256 hex digest")

	// ErrInvalidNonce means a sequence number is out of range.
	ErrInvalidNonce = errors.New("sequence number must be non-negative")
)
