package main

import (
	"fmt"

	"github.com/spf13/cobra"

	botan "github.com/andviro/go-botan"
)

var kdfCmd = &cobra.Command{
	Use:   "kdf PASSPHRASE",
	Short: "Derive key from passphrase",
	Long: `Derive key material from passphrase with PBKDF2, scrypt or bcrypt.

Examples:
  botan kdf --salt 0011223344556677 secret
  botan kdf --mode scrypt --length 64 --salt 4E61436C password
  botan kdf --mode bcrypt password`,
	Args: cobra.ExactArgs(1),
	RunE: runKDF,
}

func init() {
	kdfCmd.Flags().String("mode", "pbkdf2", "Derivation scheme: pbkdf2, scrypt or bcrypt")
	kdfCmd.Flags().String("salt", "", "Hex encoded salt")
	kdfCmd.Flags().Int("length", 32, "Output length in bytes")
	kdfCmd.Flags().Int("iterations", 0, "PBKDF2 iterations (default from config)")
	kdfCmd.Flags().Int("cost", 10, "bcrypt work factor")
	kdfCmd.Flags().Int("n", 16384, "scrypt N parameter")
	kdfCmd.Flags().Int("r", 8, "scrypt r parameter")
	kdfCmd.Flags().Int("p", 1, "scrypt p parameter")
}

func runKDF(cmd *cobra.Command, args []string) error {
	mode, _ := cmd.Flags().GetString("mode")
	saltHex, _ := cmd.Flags().GetString("salt")
	length, _ := cmd.Flags().GetInt("length")
	out := cmd.OutOrStdout()

	if mode == "bcrypt" {
		cost, _ := cmd.Flags().GetInt("cost")
		h, err := botan.BcryptHash(args[0], nil, cost)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, h)
		return nil
	}

	salt, err := botan.HexDecode(saltHex)
	if err != nil {
		return fmt.Errorf("invalid salt: %w", err)
	}
	var key []byte
	switch mode {
	case "pbkdf2":
		iterations := intFlag(cmd, "iterations", cfg.PBKDFIterations)
		key, err = botan.PBKDF("PBKDF2("+cfg.Hash+")", length, args[0], salt, iterations)
	case "scrypt":
		n, _ := cmd.Flags().GetInt("n")
		r, _ := cmd.Flags().GetInt("r")
		p, _ := cmd.Flags().GetInt("p")
		key, err = botan.Scrypt(length, args[0], salt, n, r, p)
	default:
		return fmt.Errorf("unsupported mode %q", mode)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, botan.HexEncodeLower(key))
	return nil
}
