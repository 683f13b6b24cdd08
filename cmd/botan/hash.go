package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	botan "github.com/andviro/go-botan"
)

var hashCmd = &cobra.Command{
	Use:   "hash [FILE...]",
	Short: "Compute message digest of files or standard input",
	RunE:  runHash,
}

var randCmd = &cobra.Command{
	Use:   "rand N",
	Short: "Print N random bytes as hex",
	Args:  cobra.ExactArgs(1),
	RunE:  runRand,
}

func init() {
	hashCmd.Flags().String("algo", "", "Hash algorithm (default from config)")
	randCmd.Flags().String("rng", string(botan.RNGSystem), "Random number generator kind")
}

func hashReader(algo string, r io.Reader) ([]byte, error) {
	h, err := botan.NewHash(algo)
	if err != nil {
		return nil, err
	}
	defer h.Close()
	if _, err := io.Copy(h, r); err != nil {
		return nil, err
	}
	return h.Final()
}

func runHash(cmd *cobra.Command, args []string) error {
	algo := stringFlag(cmd, "algo", cfg.Hash)
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		sum, err := hashReader(algo, cmd.InOrStdin())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  -\n", botan.HexEncodeLower(sum))
		return nil
	}
	for _, path := range args {
		fp, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		sum, err := hashReader(algo, fp)
		fp.Close()
		if err != nil {
			return fmt.Errorf("failed to hash %s: %w", path, err)
		}
		fmt.Fprintf(out, "%s  %s\n", botan.HexEncodeLower(sum), path)
	}
	return nil
}

func runRand(cmd *cobra.Command, args []string) error {
	var n int
	if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil || n < 0 {
		return fmt.Errorf("invalid byte count %q", args[0])
	}
	kind, _ := cmd.Flags().GetString("rng")
	rng, err := botan.NewRNG(botan.RNGKind(kind))
	if err != nil {
		return err
	}
	defer rng.Close()
	buf, err := rng.Get(n)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), botan.HexEncodeLower(buf))
	return nil
}
