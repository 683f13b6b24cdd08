package main

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	botan "github.com/andviro/go-botan"
)

var certCmd = &cobra.Command{
	Use:   "cert CERTFILE",
	Short: "Display certificate information and optionally validate it",
	Long: `Display certificate subject, issuer, validity and key identifiers.

With --trusted the certificate path is validated against given roots.

Examples:
  botan cert server.crt
  botan cert server.crt --trusted root.crt --hostname example.com
  botan cert server.crt --text`,
	Args: cobra.ExactArgs(1),
	RunE: runCert,
}

func init() {
	certCmd.Flags().Bool("text", false, "Print full library description")
	certCmd.Flags().StringSlice("trusted", nil, "Trusted root certificate files")
	certCmd.Flags().StringSlice("intermediate", nil, "Intermediate certificate files")
	certCmd.Flags().String("hostname", "", "Expected host name")
}

var dnFields = []string{"Name", "Organization", "Organizational Unit", "Country"}

func printDN(cmd *cobra.Command, title string, get func(key string, index int) (string, error)) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s:\n", title)
	for _, key := range dnFields {
		if v, err := get(key, 0); err == nil && v != "" {
			fmt.Fprintf(out, "  %s: %s\n", key, v)
		}
	}
}

func loadCerts(paths []string) ([]*botan.Certificate, error) {
	res := make([]*botan.Certificate, 0, len(paths))
	for _, path := range paths {
		c, err := botan.LoadCertificateFile(path)
		if err != nil {
			closeCerts(res)
			return nil, fmt.Errorf("failed to load certificate %s: %w", path, err)
		}
		res = append(res, c)
	}
	return res, nil
}

func closeCerts(certs []*botan.Certificate) {
	for _, c := range certs {
		c.Close()
	}
}

func runCert(cmd *cobra.Command, args []string) error {
	cert, err := botan.LoadCertificateFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load certificate %s: %w", args[0], err)
	}
	defer cert.Close()
	out := cmd.OutOrStdout()

	if text, _ := cmd.Flags().GetBool("text"); text {
		s, err := cert.Text()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
		return nil
	}

	printDN(cmd, "Subject", cert.SubjectDN)
	printDN(cmd, "Issuer", cert.IssuerDN)
	if serial, err := cert.SerialNumber(); err == nil {
		fmt.Fprintf(out, "Serial: %s\n", hex.EncodeToString(serial))
	}
	notBefore, err := cert.NotBefore()
	if err != nil {
		return err
	}
	notAfter, err := cert.NotAfter()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Valid: %s - %s\n", notBefore.Format(time.RFC3339), notAfter.Format(time.RFC3339))
	if id, err := cert.SubjectID(); err == nil && id != "" {
		fmt.Fprintf(out, "Subject key id: %s\n", id)
	}
	if fp, err := cert.Fingerprint(cfg.Hash); err == nil {
		fmt.Fprintf(out, "Fingerprint (%s): %s\n", cfg.Hash, fp)
	}
	if pub, err := cert.PublicKey(); err == nil {
		algo, _ := pub.AlgorithmName()
		strength, _ := pub.EstimatedStrength()
		fmt.Fprintf(out, "Public key: %s (%d bits strength)\n", algo, strength)
		pub.Close()
	}

	trustedPaths, _ := cmd.Flags().GetStringSlice("trusted")
	if len(trustedPaths) == 0 {
		return nil
	}
	trusted, err := loadCerts(trustedPaths)
	if err != nil {
		return err
	}
	defer closeCerts(trusted)
	intermediatePaths, _ := cmd.Flags().GetStringSlice("intermediate")
	intermediates, err := loadCerts(intermediatePaths)
	if err != nil {
		return err
	}
	defer closeCerts(intermediates)
	hostname, _ := cmd.Flags().GetString("hostname")
	ok, code, err := cert.Verify(botan.VerifyOptions{
		Trusted:       trusted,
		Intermediates: intermediates,
		Hostname:      hostname,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Validation: %s\n", botan.ValidationStatus(code))
	if !ok {
		return fmt.Errorf("certificate is not valid")
	}
	return nil
}
