package fair_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairdice-backend/internal/fair"
)

func TestVerifyRoundTrip(t *testing.T) {
	chain := buildChain(t, testTerminalSecret, 8)
	dealer, err := fair.NewDealer(chain)
	require.NoError(t, err)

	for k := 1; k <= 8; k++ {
		anchorBefore := dealer.CurrentAnchor()
		clientSeed := fmt.Sprintf("client-%d", k)

		out, err := dealer.ConsumeNext(clientSeed)
		require.NoError(t, err)

		result, err := fair.Verify(anchorBefore, out.ServerSeed, clientSeed, out.SequenceNumber, out.Roll)
		require.NoError(t, err)

		assert.True(t, result.MathValid, "bet %d math", k)
		assert.True(t, result.ChainValid, "bet %d chain", k)
		assert.True(t, result.Valid())
	}
}

func TestVerifyDetectsTamperedSeed(t *testing.T) {
	chain := buildChain(t, testTerminalSecret, 3)
	dealer, err := fair.NewDealer(chain)
	require.NoError(t, err)

	anchorBefore := dealer.CurrentAnchor()
	out, err := dealer.ConsumeNext("abc")
	require.NoError(t, err)

	tampered := flipHexChar(out.ServerSeed, 17)
	result, err := fair.Verify(anchorBefore, tampered, "abc", out.SequenceNumber, out.Roll)
	require.NoError(t, err)

	assert.False(t, result.ChainValid, "tampered seed must not hash to the anchor")
	assert.False(t, result.Valid())
}

func TestVerifyDetectsTamperedRoll(t *testing.T) {
	chain := buildChain(t, testTerminalSecret, 3)
	dealer, err := fair.NewDealer(chain)
	require.NoError(t, err)

	anchorBefore := dealer.CurrentAnchor()
	out, err := dealer.ConsumeNext("abc")
	require.NoError(t, err)

	wrongRoll := out.Roll + 0.01
	if wrongRoll > 100 {
		wrongRoll = out.Roll - 0.01
	}

	result, err := fair.Verify(anchorBefore, out.ServerSeed, "abc", out.SequenceNumber, wrongRoll)
	require.NoError(t, err)

	assert.False(t, result.MathValid)
	assert.True(t, result.ChainValid, "chain check is independent of the roll")
}

func TestVerifyChecksAreIndependent(t *testing.T) {
	chain := buildChain(t, testTerminalSecret, 3)
	dealer, err := fair.NewDealer(chain)
	require.NoError(t, err)

	out, err := dealer.ConsumeNext("abc")
	require.NoError(t, err)

	// Wrong anchor, correct math: only the chain check fails.
	wrongAnchor := flipHexChar(chain[0], 3)
	result, err := fair.Verify(wrongAnchor, out.ServerSeed, "abc", out.SequenceNumber, out.Roll)
	require.NoError(t, err)
	assert.True(t, result.MathValid)
	assert.False(t, result.ChainValid)
}

func TestVerifyAcceptsUppercaseDigests(t *testing.T) {
	chain := buildChain(t, testTerminalSecret, 2)
	dealer, err := fair.NewDealer(chain)
	require.NoError(t, err)

	anchorBefore := dealer.CurrentAnchor()
	out, err := dealer.ConsumeNext("abc")
	require.NoError(t, err)

	result, err := fair.Verify(strings.ToUpper(anchorBefore), strings.ToUpper(out.ServerSeed), "abc", out.SequenceNumber, out.Roll)
	require.NoError(t, err)
	assert.True(t, result.Valid())
}

func TestVerifyRejectsMalformedInput(t *testing.T) {
	chain := buildChain(t, testTerminalSecret, 2)

	_, err := fair.Verify("short", chain[1], "abc", 1, 50)
	assert.ErrorIs(t, err, fair.ErrInvalidSeed)

	_, err = fair.Verify(chain[0], "zz"+chain[1][2:], "abc", 1, 50)
	assert.ErrorIs(t, err, fair.ErrInvalidSeed)

	_, err = fair.Verify(chain[0], chain[1], "abc", -5, 50)
	assert.ErrorIs(t, err, fair.ErrInvalidNonce)
}
