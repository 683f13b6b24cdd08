package botan

//#include "common.h"
import "C"

import (
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// objectKind tags a native handle with its capability category.
type objectKind int

const (
	kindRNG objectKind = iota
	kindHash
	kindMAC
	kindBlockCipher
	kindCipher
	kindMPI
	kindPrivateKey
	kindPublicKey
	kindSigner
	kindVerifier
	kindEncryptor
	kindDecryptor
	kindKeyAgreement
	kindCertificate
	kindFPE
)

var kindNames = [...]string{
	kindRNG:          "RNG",
	kindHash:         "hash",
	kindMAC:          "MAC",
	kindBlockCipher:  "block cipher",
	kindCipher:       "cipher",
	kindMPI:          "MPI",
	kindPrivateKey:   "private key",
	kindPublicKey:    "public key",
	kindSigner:       "signer",
	kindVerifier:     "verifier",
	kindEncryptor:    "encryptor",
	kindDecryptor:    "decryptor",
	kindKeyAgreement: "key agreement",
	kindCertificate:  "certificate",
	kindFPE:          "FPE",
}

func (k objectKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "object"
}

// handle owns exactly one native object. The zero value of T marks a
// released handle; the raw object never leaves the wrapper that owns the
// handle.
type handle[T comparable] struct {
	obj     T
	kind    objectKind
	destroy func(T) C.int
}

// acquire runs the native constructor and takes ownership of the created
// object.
func acquire[T comparable](kind objectKind, destroy func(T) C.int, create func(*T) C.int) (*handle[T], error) {
	if err := initialize(); err != nil {
		return nil, err
	}
	var obj T
	if rc := create(&obj); rc != 0 {
		return nil, getErr("Error creating "+kind.String(), rc)
	}
	return &handle[T]{obj: obj, kind: kind, destroy: destroy}, nil
}

func (h *handle[T]) live() bool {
	var zero T
	return h != nil && h.obj != zero
}

// kindOf maps native object type to its kind, for wrappers whose handle
// was never acquired.
func kindOf[T comparable]() objectKind {
	var zero T
	switch any(zero).(type) {
	case C.botan_rng_t:
		return kindRNG
	case C.botan_hash_t:
		return kindHash
	case C.botan_mac_t:
		return kindMAC
	case C.botan_block_cipher_t:
		return kindBlockCipher
	case C.botan_cipher_t:
		return kindCipher
	case C.botan_mp_t:
		return kindMPI
	case C.botan_privkey_t:
		return kindPrivateKey
	case C.botan_pubkey_t:
		return kindPublicKey
	case C.botan_pk_op_sign_t:
		return kindSigner
	case C.botan_pk_op_verify_t:
		return kindVerifier
	case C.botan_pk_op_encrypt_t:
		return kindEncryptor
	case C.botan_pk_op_decrypt_t:
		return kindDecryptor
	case C.botan_pk_op_ka_t:
		return kindKeyAgreement
	case C.botan_x509_cert_t:
		return kindCertificate
	case C.botan_fpe_t:
		return kindFPE
	}
	return -1
}

func (h *handle[T]) get() (T, error) {
	if !h.live() {
		var zero T
		if h == nil {
			return zero, releasedErr(kindOf[T]())
		}
		return zero, releasedErr(h.kind)
	}
	return h.obj, nil
}

// call invokes fn on the live object, translating its status code.
func (h *handle[T]) call(msg string, fn func(obj T) C.int) error {
	obj, err := h.get()
	if err != nil {
		return err
	}
	return getErr(msg, fn(obj))
}

// duplicate creates an independent handle holding a copy of the object
// state. Kinds without a native clone operation pass nil clone.
func (h *handle[T]) duplicate(clone func(dst *T, src T) C.int) (*handle[T], error) {
	src, err := h.get()
	if err != nil {
		return nil, err
	}
	if clone == nil {
		return nil, newError("Duplicating "+h.kind.String()+" is not supported", CodeNotImplemented, ErrNotImplemented)
	}
	var dst T
	if rc := clone(&dst, src); rc != 0 {
		return nil, getErr("Error duplicating "+h.kind.String(), rc)
	}
	return &handle[T]{obj: dst, kind: h.kind, destroy: h.destroy}, nil
}

// release destroys the native object once. Destruction failures can not
// be handled by the caller and are only logged.
func (h *handle[T]) release() {
	if !h.live() {
		return
	}
	obj := h.obj
	var zero T
	h.obj = zero
	if rc := h.destroy(obj); rc != 0 {
		log().WithFields(logrus.Fields{
			"kind": h.kind.String(),
			"code": ErrorCode(rc).String(),
		}).Warn("failed to destroy native object")
	}
}

// CloseAll closes every non-nil closer and returns the combined errors.
func CloseAll(closers ...io.Closer) error {
	var res *multierror.Error
	for _, c := range closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			res = multierror.Append(res, err)
		}
	}
	return res.ErrorOrNil()
}
