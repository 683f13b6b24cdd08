package main

import (
	"fmt"

	"github.com/spf13/cobra"

	botan "github.com/andviro/go-botan"
)

var signCmd = &cobra.Command{
	Use:   "sign --key KEYFILE [FILE]",
	Short: "Sign file or standard input, writing raw signature",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSign,
}

var verifyCmd = &cobra.Command{
	Use:   "verify --pubkey KEYFILE --signature SIGFILE [FILE]",
	Short: "Verify signature of file or standard input",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVerify,
}

func init() {
	signCmd.Flags().String("key", "", "Private key file")
	signCmd.Flags().String("password", "", "Private key password")
	signCmd.Flags().String("padding", "", "Signature padding (default from config or key algorithm)")
	signCmd.Flags().Bool("der", false, "Produce DER encoded ECDSA signature")
	signCmd.Flags().String("out", "", "Signature output file (default stdout)")
	_ = signCmd.MarkFlagRequired("key")

	verifyCmd.Flags().String("pubkey", "", "Public key file")
	verifyCmd.Flags().String("signature", "", "Signature file")
	verifyCmd.Flags().String("padding", "", "Signature padding (default from config or key algorithm)")
	verifyCmd.Flags().Bool("der", false, "Signature is DER encoded")
	_ = verifyCmd.MarkFlagRequired("pubkey")
	_ = verifyCmd.MarkFlagRequired("signature")
}

func inputPath(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func paddingFor(cmd *cobra.Command, algo string) string {
	if cmd.Flags().Changed("padding") {
		v, _ := cmd.Flags().GetString("padding")
		return v
	}
	if padding, ok := cfg.Padding[algo]; ok {
		return padding
	}
	return defaultPadding(algo, cfg.Hash)
}

func runSign(cmd *cobra.Command, args []string) error {
	keyPath, _ := cmd.Flags().GetString("key")
	password, _ := cmd.Flags().GetString("password")
	der, _ := cmd.Flags().GetBool("der")
	out, _ := cmd.Flags().GetString("out")

	msg, err := readInput(cmd, inputPath(args))
	if err != nil {
		return err
	}
	key, err := loadPrivateKey(keyPath, password)
	if err != nil {
		return err
	}
	defer key.Close()
	algo, err := key.AlgorithmName()
	if err != nil {
		return err
	}
	newSigner := botan.NewSigner
	if der {
		newSigner = botan.NewSignerDER
	}
	signer, err := newSigner(key, paddingFor(cmd, algo))
	if err != nil {
		return err
	}
	defer signer.Close()
	if err := signer.Update(msg); err != nil {
		return err
	}
	sig, err := signer.Finish(nil)
	if err != nil {
		return err
	}
	return writeOutput(cmd, out, sig, 0644)
}

func runVerify(cmd *cobra.Command, args []string) error {
	keyPath, _ := cmd.Flags().GetString("pubkey")
	sigPath, _ := cmd.Flags().GetString("signature")
	der, _ := cmd.Flags().GetBool("der")

	msg, err := readInput(cmd, inputPath(args))
	if err != nil {
		return err
	}
	sig, err := readKeyFile(sigPath)
	if err != nil {
		return err
	}
	keyData, err := readKeyFile(keyPath)
	if err != nil {
		return err
	}
	key, err := botan.LoadPublicKey(keyData)
	if err != nil {
		return fmt.Errorf("failed to load public key %s: %w", keyPath, err)
	}
	defer key.Close()
	algo, err := key.AlgorithmName()
	if err != nil {
		return err
	}
	newVerifier := botan.NewVerifier
	if der {
		newVerifier = botan.NewVerifierDER
	}
	verifier, err := newVerifier(key, paddingFor(cmd, algo))
	if err != nil {
		return err
	}
	defer verifier.Close()
	if err := verifier.Update(msg); err != nil {
		return err
	}
	ok, err := verifier.Finish(sig)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("signature verification failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Signature OK")
	return nil
}
