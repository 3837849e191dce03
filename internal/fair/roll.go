package fair

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// RollFromSeed computes the deterministic roll for one bet. The server
// seed keys an HMAC-SHA256 over "{clientSeed}:{nonce}"; the first four
// digest bytes, read as a big-endian uint32, are reduced mod 10001 and
// scaled to [0.00, 100.00] with two decimal places.
//
// The function is pure. Any independent verifier, in any language, must
// reproduce it bit-for-bit: same byte order, same modulus, same first
// eight hex characters of the digest.
func RollFromSeed(serverSeed, clientSeed string, nonce int64) (float64, error) {
	if err := CheckSeed(serverSeed); err != nil {
		return 0, err
	}
	if nonce < 0 {
		return 0, ErrInvalidNonce
	}

	message := fmt.Sprintf("%s:%d", clientSeed, nonce)
	h := hmac.New(sha256.New, []byte(serverSeed))
	h.Write([]byte(message))
	sum := h.Sum(nil)

	r := binary.BigEndian.Uint32(sum[:4])
	return float64(r%10001) / 100, nil
}
