package fair

import (
	"fmt"
	"os"
	"strings"
)

// SaveChain persists a chain as one hex digest per line, anchor first.
// It refuses to overwrite an existing file: once the anchor has been
// published, regenerating the chain on top of it would silently void the
// commitment, so replacing a chain file is an explicit operator action.
func SaveChain(path string, c Chain) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("refusing to save: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create chain file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(strings.Join(c, "\n") + "\n"); err != nil {
		return fmt.Errorf("failed to write chain file: %w", err)
	}

	return nil
}

// LoadChain reads a chain file written by SaveChain and re-validates the
// hash-chain invariant before handing it to a dealer. A corrupt or
// truncated file is an error — never a trigger to regenerate.
func LoadChain(path string) (Chain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain file: %w", err)
	}

	var chain Chain
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		chain = append(chain, line)
	}

	if err := chain.Validate(); err != nil {
		return nil, fmt.Errorf("chain file %s: %w", path, err)
	}

	return chain, nil
}
