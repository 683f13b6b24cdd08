package botan

//#include "common.h"
import "C"

import (
	"time"
)

// derive runs a key derivation call writing exactly outLen bytes. No handle
// outlives the call.
func derive(msg string, outLen int, call func(out *C.uint8_t) C.int) ([]byte, error) {
	if err := initialize(); err != nil {
		return nil, err
	}
	if outLen <= 0 {
		return nil, newError(msg+": output length must be positive", CodeBadParameter, ErrInvalidInput)
	}
	return fixedOutput(msg, outLen, call)
}

// KDF derives outLen bytes from secret, salt and label using named key
// derivation function, e.g. "HKDF(SHA-256)" or "KDF2(SHA-384)".
func KDF(algo string, outLen int, secret, salt, label []byte) ([]byte, error) {
	cAlgo, err := cString(algo)
	if err != nil {
		return nil, err
	}
	defer freePtr(cAlgo)
	return derive("Error deriving key with "+algo, outLen, func(out *C.uint8_t) C.int {
		return C.botan_kdf(cAlgo, out, sizeT(outLen),
			bytesPtr(secret), sizeT(len(secret)),
			bytesPtr(salt), sizeT(len(salt)),
			bytesPtr(label), sizeT(len(label)))
	})
}

// PBKDF derives outLen bytes from passphrase using password based key
// derivation function, e.g. "PBKDF2(SHA-256)", with given iteration count.
func PBKDF(algo string, outLen int, passphrase string, salt []byte, iterations int) ([]byte, error) {
	if err := checkMin("Error deriving key with "+algo, "iterations", iterations, 1); err != nil {
		return nil, err
	}
	cAlgo, err := cString(algo)
	if err != nil {
		return nil, err
	}
	defer freePtr(cAlgo)
	cPass, err := cString(passphrase)
	if err != nil {
		return nil, err
	}
	defer freePtr(cPass)
	return derive("Error deriving key with "+algo, outLen, func(out *C.uint8_t) C.int {
		return C.botan_pbkdf(cAlgo, out, sizeT(outLen), cPass,
			bytesPtr(salt), sizeT(len(salt)), sizeT(iterations))
	})
}

// PBKDFTimed works like PBKDF but selects iteration count so that
// derivation takes about d. The iteration count used is returned so the
// derivation can be repeated with PBKDF.
func PBKDFTimed(algo string, outLen int, passphrase string, salt []byte, d time.Duration) ([]byte, int, error) {
	if err := checkMin("Error deriving key with "+algo, "duration in milliseconds", int(d/time.Millisecond), 0); err != nil {
		return nil, 0, err
	}
	cAlgo, err := cString(algo)
	if err != nil {
		return nil, 0, err
	}
	defer freePtr(cAlgo)
	cPass, err := cString(passphrase)
	if err != nil {
		return nil, 0, err
	}
	defer freePtr(cPass)
	var iterations C.size_t
	res, err := derive("Error deriving key with "+algo, outLen, func(out *C.uint8_t) C.int {
		return C.botan_pbkdf_timed(cAlgo, out, sizeT(outLen), cPass,
			bytesPtr(salt), sizeT(len(salt)), sizeT(int(d/time.Millisecond)), &iterations)
	})
	if err != nil {
		return nil, 0, err
	}
	return res, int(iterations), nil
}

// Scrypt derives outLen bytes from passphrase with scrypt parameters n, r
// and p.
func Scrypt(outLen int, passphrase string, salt []byte, n, r, p int) ([]byte, error) {
	for _, param := range []struct {
		name  string
		value int
	}{{"N", n}, {"r", r}, {"p", p}} {
		if err := checkMin("Error deriving key with scrypt", param.name, param.value, 1); err != nil {
			return nil, err
		}
	}
	cPass, err := cString(passphrase)
	if err != nil {
		return nil, err
	}
	defer freePtr(cPass)
	return derive("Error deriving key with scrypt", outLen, func(out *C.uint8_t) C.int {
		return C.botan_scrypt(out, sizeT(outLen), cPass,
			bytesPtr(salt), sizeT(len(salt)), sizeT(n), sizeT(r), sizeT(p))
	})
}
