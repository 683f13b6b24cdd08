package main

import (
	"flag"
	"os"
	"path/filepath"

	botan "github.com/andviro/go-botan"
	"github.com/mcesar/must"
)

func writeKeyPair(dir, name string, kp *botan.KeyPair, password string, rng *botan.RNG) {
	var privPEM string
	if password == "" {
		privPEM = must.Do(kp.Private.PEM())
	} else {
		privPEM = must.Do(kp.Private.EncryptedPEM(password, rng, botan.PBEOptions{}))
	}
	must.Do0(os.WriteFile(filepath.Join(dir, name+".key"), []byte(privPEM), 0600))
	pubPEM := must.Do(kp.Public.PEM())
	must.Do0(os.WriteFile(filepath.Join(dir, name+".pub"), []byte(pubPEM), 0644))
}

func main() {
	dir := flag.String("dir", ".", "output directory")
	curve := flag.String("curve", "secp256r1", "elliptic curve")
	password := flag.String("password", "", "private key password")
	flag.Parse()
	defer must.HandleFunc(func(err error) {
		if err != nil {
			panic(err)
		}
	})

	rng := must.Do(botan.NewSystemRNG())
	defer rng.Close()

	sKey := must.Do(botan.GenerateKeyPair("ECDSA", *curve, rng))
	defer sKey.Close()

	eKey := must.Do(botan.GenerateKeyPair("ECDH", *curve, rng))
	defer eKey.Close()

	must.Do0(os.MkdirAll(*dir, 0755))
	writeKeyPair(*dir, "signature", sKey, *password, rng)
	writeKeyPair(*dir, "exchange", eKey, *password, rng)
}
