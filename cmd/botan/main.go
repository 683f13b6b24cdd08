// Command botan is a small command line front-end to the Botan library
// binding: hashing, random bytes, key generation, signatures, certificate
// inspection and key derivation.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	botan "github.com/andviro/go-botan"
)

// Global flags
var (
	configPath string
	verbose    bool
	cfg        = DefaultConfig()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "botan",
	Short: "Cryptographic utilities backed by the Botan library",
	Long: `botan exposes common cryptographic operations of the Botan library.

Examples:
  # Hash a file
  botan hash --algo SHA-256 file.txt

  # Generate an ECDSA key pair
  botan genkey --algo ECDSA --params secp384r1 --out key.pem

  # Sign and verify
  botan sign --key key.pem file.txt > file.sig
  botan verify --pubkey key.pub --signature file.sig file.txt`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
		botan.SetLogger(logrus.StandardLogger())
		if configPath == "" {
			configPath = os.Getenv("BOTAN_CONFIG")
		}
		if configPath == "" {
			return nil
		}
		loaded, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logrus.WithField("path", configPath).Debug("configuration loaded")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to YAML configuration file (or set BOTAN_CONFIG env var)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(randCmd)
	rootCmd.AddCommand(genkeyCmd)
	rootCmd.AddCommand(pubkeyCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(certCmd)
	rootCmd.AddCommand(kdfCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print library version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := botan.GetVersion()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\nFFI API %d\n", v.String, v.FFIAPI)
		return nil
	},
}

// stringFlag returns flag value if it was set on command line and fallback
// otherwise.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return fallback
}

func intFlag(cmd *cobra.Command, name string, fallback int) int {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}
	return fallback
}

// readInput reads named file or standard input when path is empty or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(cmd.InOrStdin()); err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}
		return buf.Bytes(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes data to named file or standard output when path is
// empty.
func writeOutput(cmd *cobra.Command, path string, data []byte, perm os.FileMode) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
