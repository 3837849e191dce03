package fair

import (
	"fmt"
	"math"
	"strings"
)

// VerifyResult reports the two independent fairness checks separately so
// a disputed bet can be diagnosed: MathValid false means the roll formula
// disagrees, ChainValid false means the revealed seed is not the preimage
// of the committed anchor.
type VerifyResult struct {
	MathValid  bool `json:"math_valid"`
	ChainValid bool `json:"chain_valid"`
}

// Valid reports whether both checks passed.
func (r VerifyResult) Valid() bool {
	return r.MathValid && r.ChainValid
}

// Verify recomputes a bet from already-disclosed history. claimedAnchor
// is the anchor published before the bet; revealedSeed, clientSeed, nonce
// and claimedRoll are what the server reported afterwards. It needs no
// access to the live dealer and can run anywhere, including client side.
//
// Rolls are compared at two decimal places to sidestep float formatting
// noise. Malformed digests are rejected before any computation.
func Verify(claimedAnchor, revealedSeed, clientSeed string, nonce int64, claimedRoll float64) (VerifyResult, error) {
	claimedAnchor = strings.ToLower(claimedAnchor)
	revealedSeed = strings.ToLower(revealedSeed)

	if err := CheckSeed(claimedAnchor); err != nil {
		return VerifyResult{}, fmt.Errorf("anchor: %w", err)
	}
	if err := CheckSeed(revealedSeed); err != nil {
		return VerifyResult{}, fmt.Errorf("revealed seed: %w", err)
	}

	roll, err := RollFromSeed(revealedSeed, clientSeed, nonce)
	if err != nil {
		return VerifyResult{}, err
	}

	return VerifyResult{
		MathValid:  math.Round(roll*100) == math.Round(claimedRoll*100),
		ChainValid: HashSeed(revealedSeed) == claimedAnchor,
	}, nil
}
