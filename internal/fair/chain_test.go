package fair_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairdice-backend/internal/fair"
)

// buildChain constructs a chain from a fixed terminal secret the same way
// the generator does, so tests can pin down exact digests.
func buildChain(t *testing.T, terminalSecret string, size int) fair.Chain {
	t.Helper()
	require.NoError(t, fair.CheckSeed(terminalSecret))

	seeds := make([]string, 0, size+1)
	current := terminalSecret
	seeds = append(seeds, current)
	for i := 0; i < size; i++ {
		current = fair.HashSeed(current)
		seeds = append(seeds, current)
	}
	for i, j := 0, len(seeds)-1; i < j; i, j = i+1, j-1 {
		seeds[i], seeds[j] = seeds[j], seeds[i]
	}
	return fair.Chain(seeds)
}

const testTerminalSecret = "7f3e2a9c1b5d8e0f4a6c3b2d9e8f1a0c5b4d7e6f3a2c1b0d9e8f7a6c5b4d3e2f"

func TestGenerateChainIntegrity(t *testing.T) {
	for _, size := range []int{1, 2, 3, 10, 64} {
		chain, err := fair.Generate(size)
		require.NoError(t, err)
		require.Len(t, chain, size+1)

		assert.NoError(t, chain.Validate())
		assert.Equal(t, size, chain.Size())

		for i := 1; i <= size; i++ {
			assert.Equal(t, chain[i-1], fair.HashSeed(chain[i]), "index %d", i)
		}
	}
}

func TestGenerateRejectsInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -100} {
		_, err := fair.Generate(size)
		assert.Error(t, err, "size %d", size)
	}
}

func TestGenerateChainsAreIndependent(t *testing.T) {
	a, err := fair.Generate(5)
	require.NoError(t, err)
	b, err := fair.Generate(5)
	require.NoError(t, err)

	assert.NotEqual(t, a.Anchor(), b.Anchor())
}

func TestCheckSeed(t *testing.T) {
	require.NoError(t, fair.CheckSeed(testTerminalSecret))

	cases := []string{
		"",
		"abc123",
		strings.Repeat("a", 63),
		strings.Repeat("a", 65),
		strings.Repeat("g", 64), // not hex
		strings.Repeat("a", 32),
	}
	for _, seed := range cases {
		assert.ErrorIs(t, fair.CheckSeed(seed), fair.ErrInvalidSeed, "seed %q", seed)
	}
}

func TestValidateDetectsBrokenChain(t *testing.T) {
	chain := buildChain(t, testTerminalSecret, 5)
	require.NoError(t, chain.Validate())

	tampered := make(fair.Chain, len(chain))
	copy(tampered, chain)
	tampered[3] = flipHexChar(tampered[3], 0)

	assert.ErrorIs(t, tampered.Validate(), fair.ErrBrokenChain)
}

func TestValidateRejectsTinyChain(t *testing.T) {
	assert.ErrorIs(t, fair.Chain{}.Validate(), fair.ErrChainTooSmall)
	assert.ErrorIs(t, fair.Chain{testTerminalSecret}.Validate(), fair.ErrChainTooSmall)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	chain, err := fair.Generate(8)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "chain.txt")
	require.NoError(t, fair.SaveChain(path, chain))

	loaded, err := fair.LoadChain(path)
	require.NoError(t, err)
	assert.Equal(t, chain, loaded)
}

func TestSaveRefusesOverwrite(t *testing.T) {
	chain, err := fair.Generate(3)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "chain.txt")
	require.NoError(t, fair.SaveChain(path, chain))

	other, err := fair.Generate(3)
	require.NoError(t, err)
	assert.Error(t, fair.SaveChain(path, other))

	// The original commitment must survive the refused overwrite.
	loaded, err := fair.LoadChain(path)
	require.NoError(t, err)
	assert.Equal(t, chain.Anchor(), loaded.Anchor())
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()

	corrupt := filepath.Join(dir, "corrupt.txt")
	require.NoError(t, os.WriteFile(corrupt, []byte("not-a-digest\n"), 0o600))
	_, err := fair.LoadChain(corrupt)
	assert.Error(t, err)

	// A structurally valid file with a broken link must also fail.
	chain := buildChain(t, testTerminalSecret, 4)
	chain[2] = flipHexChar(chain[2], 5)
	broken := filepath.Join(dir, "broken.txt")
	require.NoError(t, os.WriteFile(broken, []byte(strings.Join(chain, "\n")+"\n"), 0o600))
	_, err = fair.LoadChain(broken)
	assert.ErrorIs(t, err, fair.ErrBrokenChain)

	_, err = fair.LoadChain(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

// flipHexChar swaps one hex character for a different valid one.
func flipHexChar(s string, pos int) string {
	b := []byte(s)
	if b[pos] == 'a' {
		b[pos] = 'b'
	} else {
		b[pos] = 'a'
	}
	return string(b)
}
