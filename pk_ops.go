package botan

//#include "common.h"
import "C"

// Signature formats
const (
	sigFormatStandard C.uint32_t = 0
	sigFormatDER      C.uint32_t = 1
)

// Signer creates signatures with private key. Message is fed with Update
// or Write and the signature is produced by Finish, which also resets the
// signer for the next message.
type Signer struct {
	h    *handle[C.botan_pk_op_sign_t]
	size int
}

func destroySigner(obj C.botan_pk_op_sign_t) C.int {
	return C.botan_pk_op_sign_destroy(obj)
}

// NewSigner creates signer for key with hash and padding specification,
// e.g. "EMSA-PKCS1-v1_5(SHA-256)" for RSA or "EMSA1(SHA-256)" for ECDSA.
// Elliptic curve signatures are produced in IEEE 1363 format.
func NewSigner(key *PrivateKey, padding string) (*Signer, error) {
	return newSigner(key, padding, sigFormatStandard)
}

// NewSignerDER works like NewSigner but produces DER encoded elliptic curve
// signatures, as expected by crypto/ecdsa and X.509.
func NewSignerDER(key *PrivateKey, padding string) (*Signer, error) {
	return newSigner(key, padding, sigFormatDER)
}

func newSigner(key *PrivateKey, padding string, flags C.uint32_t) (_ *Signer, rErr error) {
	priv, err := key.obj()
	if err != nil {
		return nil, err
	}
	h, err := construct(kindSigner, padding, destroySigner, func(obj *C.botan_pk_op_sign_t, padding *C.char) C.int {
		return C.botan_pk_op_sign_create(obj, priv, padding, flags)
	})
	if err != nil {
		return nil, err
	}
	res := &Signer{h: h}
	defer func() {
		if rErr != nil {
			res.Close()
		}
	}()
	var n C.size_t
	if err := h.call("Error getting signature length", func(obj C.botan_pk_op_sign_t) C.int {
		return C.botan_pk_op_sign_output_length(obj, &n)
	}); err != nil {
		return nil, err
	}
	res.size = int(n)
	return res, nil
}

// OutputLength returns maximal signature length.
func (s *Signer) OutputLength() int {
	return s.size
}

// Update feeds message data.
func (s *Signer) Update(buf []byte) error {
	return s.h.call("Error updating signer", func(obj C.botan_pk_op_sign_t) C.int {
		return C.botan_pk_op_sign_update(obj, bytesPtr(buf), sizeT(len(buf)))
	})
}

// Write implements io.Writer.
func (s *Signer) Write(buf []byte) (int, error) {
	if err := s.Update(buf); err != nil {
		return 0, err
	}
	return len(buf), nil
}

// Finish signs message data written so far. Randomized schemes draw from
// rng, nil rng means the shared system generator.
func (s *Signer) Finish(rng *RNG) ([]byte, error) {
	obj, err := s.h.get()
	if err != nil {
		return nil, err
	}
	r, err := rng.obj()
	if err != nil {
		return nil, err
	}
	// finishing consumes signer state, so output size is never queried
	buf := make([]byte, s.size)
	n := sizeT(len(buf))
	if err := getErr("Error signing message", C.botan_pk_op_sign_finish(obj, r, bytesPtr(buf), &n)); err != nil {
		return nil, err
	}
	if int(n) > len(buf) {
		return nil, newError("Error signing message: signature exceeds reported length", CodeInternalError, ErrGeneric)
	}
	return buf[:n], nil
}

// Copy is not supported for signers and fails with ErrNotImplemented.
func (s *Signer) Copy() (*Signer, error) {
	_, err := s.h.duplicate(nil)
	return nil, err
}

// Close releases signer handle.
func (s *Signer) Close() error {
	if s == nil {
		return nil
	}
	s.h.release()
	return nil
}

// Verifier checks signatures with public key.
type Verifier struct {
	h *handle[C.botan_pk_op_verify_t]
}

func destroyVerifier(obj C.botan_pk_op_verify_t) C.int {
	return C.botan_pk_op_verify_destroy(obj)
}

// NewVerifier creates verifier for signatures produced by NewSigner with
// the same padding.
func NewVerifier(key *PublicKey, padding string) (*Verifier, error) {
	return newVerifier(key, padding, sigFormatStandard)
}

// NewVerifierDER creates verifier for DER encoded signatures.
func NewVerifierDER(key *PublicKey, padding string) (*Verifier, error) {
	return newVerifier(key, padding, sigFormatDER)
}

func newVerifier(key *PublicKey, padding string, flags C.uint32_t) (*Verifier, error) {
	pub, err := key.obj()
	if err != nil {
		return nil, err
	}
	h, err := construct(kindVerifier, padding, destroyVerifier, func(obj *C.botan_pk_op_verify_t, padding *C.char) C.int {
		return C.botan_pk_op_verify_create(obj, pub, padding, flags)
	})
	if err != nil {
		return nil, err
	}
	return &Verifier{h: h}, nil
}

// Update feeds message data.
func (v *Verifier) Update(buf []byte) error {
	return v.h.call("Error updating verifier", func(obj C.botan_pk_op_verify_t) C.int {
		return C.botan_pk_op_verify_update(obj, bytesPtr(buf), sizeT(len(buf)))
	})
}

// Write implements io.Writer.
func (v *Verifier) Write(buf []byte) (int, error) {
	if err := v.Update(buf); err != nil {
		return 0, err
	}
	return len(buf), nil
}

// Finish checks sig against message data written so far and resets the
// verifier. A well formed signature that does not match is reported as
// false without error.
func (v *Verifier) Finish(sig []byte) (bool, error) {
	obj, err := v.h.get()
	if err != nil {
		return false, err
	}
	switch rc := C.botan_pk_op_verify_finish(obj, bytesPtr(sig), sizeT(len(sig))); ErrorCode(rc) {
	case CodeSuccess:
		return true, nil
	case CodeInvalidVerifier:
		return false, nil
	default:
		return false, getErr("Error verifying signature", rc)
	}
}

// Close releases verifier handle.
func (v *Verifier) Close() error {
	if v == nil {
		return nil
	}
	v.h.release()
	return nil
}

// Encryptor encrypts messages with public key.
type Encryptor struct {
	h *handle[C.botan_pk_op_encrypt_t]
}

func destroyEncryptor(obj C.botan_pk_op_encrypt_t) C.int {
	return C.botan_pk_op_encrypt_destroy(obj)
}

// NewEncryptor creates encryptor with padding such as "OAEP(SHA-256)".
func NewEncryptor(key *PublicKey, padding string) (*Encryptor, error) {
	pub, err := key.obj()
	if err != nil {
		return nil, err
	}
	h, err := construct(kindEncryptor, padding, destroyEncryptor, func(obj *C.botan_pk_op_encrypt_t, padding *C.char) C.int {
		return C.botan_pk_op_encrypt_create(obj, pub, padding, 0)
	})
	if err != nil {
		return nil, err
	}
	return &Encryptor{h: h}, nil
}

// OutputLength returns ciphertext length for plaintext of n bytes.
func (e *Encryptor) OutputLength(n int) (int, error) {
	if err := checkMin("Error getting ciphertext length", "length", n, 0); err != nil {
		return 0, err
	}
	var res C.size_t
	if err := e.h.call("Error getting ciphertext length", func(obj C.botan_pk_op_encrypt_t) C.int {
		return C.botan_pk_op_encrypt_output_length(obj, sizeT(n), &res)
	}); err != nil {
		return 0, err
	}
	return int(res), nil
}

// Encrypt encrypts msg using randomness from rng.
func (e *Encryptor) Encrypt(msg []byte, rng *RNG) ([]byte, error) {
	size, err := e.OutputLength(len(msg))
	if err != nil {
		return nil, err
	}
	obj, err := e.h.get()
	if err != nil {
		return nil, err
	}
	r, err := rng.obj()
	if err != nil {
		return nil, err
	}
	return negotiate("Error encrypting message", size, func(out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_pk_op_encrypt(obj, r, out, outLen, bytesPtr(msg), sizeT(len(msg)))
	})
}

// Close releases encryptor handle.
func (e *Encryptor) Close() error {
	if e == nil {
		return nil
	}
	e.h.release()
	return nil
}

// Decryptor decrypts messages with private key.
type Decryptor struct {
	h *handle[C.botan_pk_op_decrypt_t]
}

func destroyDecryptor(obj C.botan_pk_op_decrypt_t) C.int {
	return C.botan_pk_op_decrypt_destroy(obj)
}

// NewDecryptor creates decryptor with padding matching the encryptor.
func NewDecryptor(key *PrivateKey, padding string) (*Decryptor, error) {
	priv, err := key.obj()
	if err != nil {
		return nil, err
	}
	h, err := construct(kindDecryptor, padding, destroyDecryptor, func(obj *C.botan_pk_op_decrypt_t, padding *C.char) C.int {
		return C.botan_pk_op_decrypt_create(obj, priv, padding, 0)
	})
	if err != nil {
		return nil, err
	}
	return &Decryptor{h: h}, nil
}

// OutputLength returns maximal plaintext length for ciphertext of n bytes.
func (d *Decryptor) OutputLength(n int) (int, error) {
	if err := checkMin("Error getting plaintext length", "length", n, 0); err != nil {
		return 0, err
	}
	var res C.size_t
	if err := d.h.call("Error getting plaintext length", func(obj C.botan_pk_op_decrypt_t) C.int {
		return C.botan_pk_op_decrypt_output_length(obj, sizeT(n), &res)
	}); err != nil {
		return 0, err
	}
	return int(res), nil
}

// Decrypt decrypts ct.
func (d *Decryptor) Decrypt(ct []byte) ([]byte, error) {
	size, err := d.OutputLength(len(ct))
	if err != nil {
		return nil, err
	}
	obj, err := d.h.get()
	if err != nil {
		return nil, err
	}
	return negotiate("Error decrypting message", size, func(out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_pk_op_decrypt(obj, out, outLen, bytesPtr(ct), sizeT(len(ct)))
	})
}

// Close releases decryptor handle.
func (d *Decryptor) Close() error {
	if d == nil {
		return nil
	}
	d.h.release()
	return nil
}

// KeyAgreement derives shared secrets from own private key and peer public
// value.
type KeyAgreement struct {
	h *handle[C.botan_pk_op_ka_t]
}

func destroyKeyAgreement(obj C.botan_pk_op_ka_t) C.int {
	return C.botan_pk_op_key_agreement_destroy(obj)
}

// NewKeyAgreement creates key agreement operation. The kdf, such as
// "KDF2(SHA-384)", is applied to the raw shared value; "Raw" returns it
// unchanged.
func NewKeyAgreement(key *PrivateKey, kdf string) (*KeyAgreement, error) {
	priv, err := key.obj()
	if err != nil {
		return nil, err
	}
	h, err := construct(kindKeyAgreement, kdf, destroyKeyAgreement, func(obj *C.botan_pk_op_ka_t, kdf *C.char) C.int {
		return C.botan_pk_op_key_agreement_create(obj, priv, kdf, 0)
	})
	if err != nil {
		return nil, err
	}
	return &KeyAgreement{h: h}, nil
}

// Size returns length of the raw shared value.
func (ka *KeyAgreement) Size() (int, error) {
	var n C.size_t
	if err := ka.h.call("Error getting key agreement size", func(obj C.botan_pk_op_ka_t) C.int {
		return C.botan_pk_op_key_agreement_size(obj, &n)
	}); err != nil {
		return 0, err
	}
	return int(n), nil
}

// Agree derives outLen bytes of shared secret from peer public value as
// returned by PrivateKey.KeyAgreementKey. With "Raw" kdf the whole raw
// value is returned and salt is ignored; outLen 0 is accepted there.
func (ka *KeyAgreement) Agree(outLen int, peer, salt []byte) ([]byte, error) {
	if err := checkMin("Error agreeing on key", "output length", outLen, 0); err != nil {
		return nil, err
	}
	obj, err := ka.h.get()
	if err != nil {
		return nil, err
	}
	return negotiate("Error agreeing on key", outLen, func(out *C.uint8_t, n *C.size_t) C.int {
		return C.botan_pk_op_key_agreement(obj, out, n,
			bytesPtr(peer), sizeT(len(peer)), bytesPtr(salt), sizeT(len(salt)))
	})
}

// Close releases key agreement handle.
func (ka *KeyAgreement) Close() error {
	if ka == nil {
		return nil
	}
	ka.h.release()
	return nil
}
