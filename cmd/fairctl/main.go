// fairctl is the operator and player companion tool: it generates seed
// chains offline, audits chain files, and verifies individual bets from
// public data without talking to the server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fairdice-backend/internal/fair"
)

func main() {
	root := &cobra.Command{
		Use:   "fairctl",
		Short: "Provably-fair chain and bet tooling",
	}

	root.AddCommand(chainCmd(), verifyCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func chainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Generate and audit seed chains",
	}

	var size int
	var out string

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate a fresh seed chain and write it to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := fair.Generate(size)
			if err != nil {
				return err
			}

			// SaveChain refuses to overwrite: replacing a published
			// chain is a manual, deliberate operation.
			if err := fair.SaveChain(out, chain); err != nil {
				return err
			}

			fmt.Printf("wrote %d digests to %s\n", len(chain), out)
			fmt.Printf("anchor (publish this): %s\n", chain.Anchor())
			return nil
		},
	}
	generate.Flags().IntVar(&size, "size", 10000, "number of playable seeds")
	generate.Flags().StringVar(&out, "out", "seed_chain.txt", "output file")

	check := &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a chain file's hash-chain invariant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := fair.LoadChain(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("chain ok: %d playable seeds\n", chain.Size())
			fmt.Printf("anchor: %s\n", chain.Anchor())
			return nil
		},
	}

	cmd.AddCommand(generate, check)
	return cmd
}

func verifyCmd() *cobra.Command {
	var (
		anchor     string
		seed       string
		clientSeed string
		nonce      int64
		roll       float64
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify one bet from its disclosed data",
		Long: "Recomputes the roll from the revealed seed and checks that the seed\n" +
			"hashes to the anchor that was published before the bet was placed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := fair.Verify(anchor, seed, clientSeed, nonce, roll)
			if err != nil {
				return err
			}

			fmt.Printf("math valid:  %v\n", result.MathValid)
			fmt.Printf("chain valid: %v\n", result.ChainValid)

			if !result.Valid() {
				return fmt.Errorf("bet failed verification")
			}
			fmt.Println("bet verified")
			return nil
		},
	}

	cmd.Flags().StringVar(&anchor, "anchor", "", "anchor published before the bet")
	cmd.Flags().StringVar(&seed, "seed", "", "server seed revealed after the bet")
	cmd.Flags().StringVar(&clientSeed, "client", "", "client seed used for the bet")
	cmd.Flags().Int64Var(&nonce, "nonce", 0, "sequence number of the bet")
	cmd.Flags().Float64Var(&roll, "roll", 0, "roll the server reported")
	cmd.MarkFlagRequired("anchor")
	cmd.MarkFlagRequired("seed")
	cmd.MarkFlagRequired("nonce")
	cmd.MarkFlagRequired("roll")

	return cmd
}
