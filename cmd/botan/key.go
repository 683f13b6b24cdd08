package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	botan "github.com/andviro/go-botan"
)

var genkeyCmd = &cobra.Command{
	Use:   "genkey",
	Short: "Generate a private key",
	Long: `Generate a private key and write it as PKCS#8 PEM.

Examples:
  botan genkey --algo RSA --params 2048 --out rsa.pem
  botan genkey --algo ECDSA --params secp384r1 --out ec.pem --pubout ec.pub
  botan genkey --algo ECDH --password secret --out ecdh.pem`,
	Args: cobra.NoArgs,
	RunE: runGenkey,
}

var pubkeyCmd = &cobra.Command{
	Use:   "pubkey KEYFILE",
	Short: "Extract public key from a private key",
	Args:  cobra.ExactArgs(1),
	RunE:  runPubkey,
}

func init() {
	genkeyCmd.Flags().String("algo", "", "Key algorithm (default from config)")
	genkeyCmd.Flags().String("params", "", "Algorithm parameters (default from config)")
	genkeyCmd.Flags().String("out", "", "Private key output file (default stdout)")
	genkeyCmd.Flags().String("pubout", "", "Public key output file")
	genkeyCmd.Flags().String("password", "", "Encrypt private key with password")

	pubkeyCmd.Flags().String("password", "", "Private key password")
	pubkeyCmd.Flags().Bool("der", false, "Write DER instead of PEM")
	pubkeyCmd.Flags().String("out", "", "Output file (default stdout)")
}

func runGenkey(cmd *cobra.Command, args []string) error {
	algo := stringFlag(cmd, "algo", cfg.Key.Algorithm)
	params := stringFlag(cmd, "params", cfg.Key.Params)
	out, _ := cmd.Flags().GetString("out")
	pubOut, _ := cmd.Flags().GetString("pubout")
	password, _ := cmd.Flags().GetString("password")

	logrus.WithFields(logrus.Fields{"algo": algo, "params": params}).Debug("generating key")
	kp, err := botan.GenerateKeyPair(algo, params, nil)
	if err != nil {
		return err
	}
	defer kp.Close()

	var privPEM string
	if password != "" {
		privPEM, err = kp.Private.EncryptedPEM(password, nil, botan.PBEOptions{Iterations: cfg.PBKDFIterations})
	} else {
		privPEM, err = kp.Private.PEM()
	}
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, out, []byte(privPEM), 0600); err != nil {
		return err
	}
	if pubOut == "" {
		return nil
	}
	pubPEM, err := kp.Public.PEM()
	if err != nil {
		return err
	}
	return writeOutput(cmd, pubOut, []byte(pubPEM), 0644)
}

func loadPrivateKey(path, password string) (*botan.PrivateKey, error) {
	key, err := botan.LoadPrivateKeyFile(path, password)
	if err != nil {
		return nil, fmt.Errorf("failed to load private key %s: %w", path, err)
	}
	return key, nil
}

func runPubkey(cmd *cobra.Command, args []string) error {
	password, _ := cmd.Flags().GetString("password")
	der, _ := cmd.Flags().GetBool("der")
	out, _ := cmd.Flags().GetString("out")

	priv, err := loadPrivateKey(args[0], password)
	if err != nil {
		return err
	}
	defer priv.Close()
	pub, err := priv.PublicKey()
	if err != nil {
		return err
	}
	defer pub.Close()

	var data []byte
	if der {
		data, err = pub.DER()
	} else {
		var s string
		s, err = pub.PEM()
		data = []byte(s)
	}
	if err != nil {
		return err
	}
	return writeOutput(cmd, out, data, 0644)
}

// defaultPadding picks signature padding for key algorithm when it is not
// configured explicitly.
func defaultPadding(algo, hash string) string {
	switch strings.ToUpper(algo) {
	case "RSA":
		return "EMSA-PKCS1-v1_5(" + hash + ")"
	case "ED25519":
		return "Pure"
	}
	return "EMSA1(" + hash + ")"
}

func readKeyFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
