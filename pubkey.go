package botan

//#include "common.h"
import "C"

import (
	"crypto"
	"crypto/x509"
	"os"

	"github.com/hashicorp/go-multierror"
)

// Key export formats
const (
	exportDER C.uint32_t = 0
	exportPEM C.uint32_t = 1
)

const (
	checkExpensive    C.uint32_t = 1
	encryptedKeyHint             = 8192
	defaultIterations            = 150000
)

// PBEOptions control password based encryption of exported private keys.
// Zero values select library defaults.
type PBEOptions struct {
	Iterations int    // PBKDF iteration count, 150000 when zero
	Cipher     string // Key encryption cipher, e.g. "AES-256/CBC"
	PBKDFHash  string // PBKDF hash, e.g. "SHA-512"
}

// PrivateKey encapsulates native private key
type PrivateKey struct {
	h *handle[C.botan_privkey_t]
}

// PublicKey encapsulates native public key
type PublicKey struct {
	h *handle[C.botan_pubkey_t]
}

// KeyPair holds private key along with its public half.
type KeyPair struct {
	Private *PrivateKey
	Public  *PublicKey
}

func destroyPrivateKey(obj C.botan_privkey_t) C.int {
	return C.botan_privkey_destroy(obj)
}

func destroyPublicKey(obj C.botan_pubkey_t) C.int {
	return C.botan_pubkey_destroy(obj)
}

func newPrivateKey(msg string, create func(obj *C.botan_privkey_t) C.int) (*PrivateKey, error) {
	h, err := acquire(kindPrivateKey, destroyPrivateKey, create)
	if err != nil {
		if e, ok := err.(Error); ok {
			e.msg = msg
			return nil, e
		}
		return nil, err
	}
	return &PrivateKey{h: h}, nil
}

func newPublicKey(msg string, create func(obj *C.botan_pubkey_t) C.int) (*PublicKey, error) {
	h, err := acquire(kindPublicKey, destroyPublicKey, create)
	if err != nil {
		if e, ok := err.(Error); ok {
			e.msg = msg
			return nil, e
		}
		return nil, err
	}
	return &PublicKey{h: h}, nil
}

// GeneratePrivateKey creates new private key. Algorithm parameters depend
// on algo: modulus bits for "RSA" ("2048"), curve name for "ECDSA" and
// "ECDH" ("secp256r1"), empty string selects defaults.
func GeneratePrivateKey(algo, params string, rng *RNG) (*PrivateKey, error) {
	cAlgo, err := cString(algo)
	if err != nil {
		return nil, err
	}
	defer freePtr(cAlgo)
	cParams, err := cStringOrNil(params)
	if err != nil {
		return nil, err
	}
	defer freePtr(cParams)
	r, err := rng.obj()
	if err != nil {
		return nil, err
	}
	return newPrivateKey("Error generating "+algo+" key", func(obj *C.botan_privkey_t) C.int {
		return C.botan_privkey_create(obj, cAlgo, cParams, r)
	})
}

// GenerateKeyPair creates new private key and derives its public key.
func GenerateKeyPair(algo, params string, rng *RNG) (_ *KeyPair, rErr error) {
	priv, err := GeneratePrivateKey(algo, params, rng)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rErr != nil {
			priv.Close()
		}
	}()
	pub, err := priv.PublicKey()
	if err != nil {
		return nil, err
	}
	return &KeyPair{Private: priv, Public: pub}, nil
}

// Close releases both keys of the pair.
func (kp *KeyPair) Close() error {
	if kp == nil {
		return nil
	}
	var res *multierror.Error
	if err := kp.Private.Close(); err != nil {
		res = multierror.Append(res, err)
	}
	if err := kp.Public.Close(); err != nil {
		res = multierror.Append(res, err)
	}
	return res.ErrorOrNil()
}

// LoadPrivateKey decodes unencrypted private key in PKCS#8 DER or PEM form.
func LoadPrivateKey(data []byte) (*PrivateKey, error) {
	return loadPrivateKey(data, nil)
}

// LoadPrivateKeyEncrypted decodes password protected PKCS#8 key in DER or
// PEM form.
func LoadPrivateKeyEncrypted(data []byte, password string) (*PrivateKey, error) {
	cPass, err := cString(password)
	if err != nil {
		return nil, err
	}
	defer freePtr(cPass)
	return loadPrivateKey(data, cPass)
}

func loadPrivateKey(data []byte, cPass *C.char) (*PrivateKey, error) {
	res, err := newPrivateKey("Error loading private key", func(obj *C.botan_privkey_t) C.int {
		return C.botan_privkey_load(obj, nil, bytesPtr(data), sizeT(len(data)), cPass)
	})
	return res, asConversion(err)
}

// LoadPrivateKeyDER decodes unencrypted PKCS#8 DER key.
func LoadPrivateKeyDER(der []byte) (*PrivateKey, error) {
	return LoadPrivateKey(der)
}

// LoadPrivateKeyPEM decodes unencrypted PKCS#8 PEM key.
func LoadPrivateKeyPEM(pem string) (*PrivateKey, error) {
	return LoadPrivateKey([]byte(pem))
}

// LoadPrivateKeyFile reads private key from file, decrypting it when
// password is not empty.
func LoadPrivateKeyFile(path, password string) (*PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return LoadPrivateKey(data)
	}
	return LoadPrivateKeyEncrypted(data, password)
}

// LoadPrivateKeyRSA builds RSA private key from primes p, q and public
// exponent e.
func LoadPrivateKeyRSA(p, q, e *MPI) (*PrivateKey, error) {
	po, err := p.obj()
	if err != nil {
		return nil, err
	}
	qo, err := q.obj()
	if err != nil {
		return nil, err
	}
	eo, err := e.obj()
	if err != nil {
		return nil, err
	}
	return newPrivateKey("Error loading RSA private key", func(obj *C.botan_privkey_t) C.int {
		return C.botan_privkey_load_rsa(obj, po, qo, eo)
	})
}

type ecPrivateLoader func(obj *C.botan_privkey_t, scalar C.botan_mp_t, curve *C.char) C.int

func loadPrivateKeyEC(msg string, scalar *MPI, curve string, load ecPrivateLoader) (*PrivateKey, error) {
	so, err := scalar.obj()
	if err != nil {
		return nil, err
	}
	cCurve, err := cString(curve)
	if err != nil {
		return nil, err
	}
	defer freePtr(cCurve)
	return newPrivateKey(msg, func(obj *C.botan_privkey_t) C.int {
		return load(obj, so, cCurve)
	})
}

// LoadPrivateKeyECDSA builds ECDSA private key from secret scalar.
func LoadPrivateKeyECDSA(scalar *MPI, curve string) (*PrivateKey, error) {
	return loadPrivateKeyEC("Error loading ECDSA private key", scalar, curve, func(obj *C.botan_privkey_t, s C.botan_mp_t, c *C.char) C.int {
		return C.botan_privkey_load_ecdsa(obj, s, c)
	})
}

// LoadPrivateKeyECDH builds ECDH private key from secret scalar.
func LoadPrivateKeyECDH(scalar *MPI, curve string) (*PrivateKey, error) {
	return loadPrivateKeyEC("Error loading ECDH private key", scalar, curve, func(obj *C.botan_privkey_t, s C.botan_mp_t, c *C.char) C.int {
		return C.botan_privkey_load_ecdh(obj, s, c)
	})
}

func (k *PrivateKey) obj() (C.botan_privkey_t, error) {
	if k == nil {
		return nil, releasedErr(kindPrivateKey)
	}
	return k.h.get()
}

// AlgorithmName returns key algorithm, e.g. "RSA" or "ECDSA".
func (k *PrivateKey) AlgorithmName() (string, error) {
	obj, err := k.obj()
	if err != nil {
		return "", err
	}
	return negotiateString("Error getting key algorithm", 32, func(out *C.char, outLen *C.size_t) C.int {
		return C.botan_privkey_algo_name(obj, out, outLen)
	})
}

// keyCheck interprets status of key consistency checks where a failed
// check is reported as invalid input.
func keyCheck(rc C.int) (bool, error) {
	switch ErrorCode(rc) {
	case CodeSuccess:
		return true, nil
	case CodeInvalidInput:
		return false, nil
	}
	return false, getErr("Error checking key", rc)
}

// Check tests key consistency. With expensive set, slow primality tests
// are run as well.
func (k *PrivateKey) Check(rng *RNG, expensive bool) (bool, error) {
	obj, err := k.obj()
	if err != nil {
		return false, err
	}
	r, err := rng.obj()
	if err != nil {
		return false, err
	}
	var flags C.uint32_t
	if expensive {
		flags = checkExpensive
	}
	return keyCheck(C.botan_privkey_check_key(obj, r, flags))
}

// PublicKey derives public key.
func (k *PrivateKey) PublicKey() (*PublicKey, error) {
	priv, err := k.obj()
	if err != nil {
		return nil, err
	}
	return newPublicKey("Error exporting public key", func(obj *C.botan_pubkey_t) C.int {
		return C.botan_privkey_export_pubkey(obj, priv)
	})
}

// Field returns named numeric key parameter, e.g. "n", "e", "p", "q" for RSA
// or "order", "x" for elliptic curve keys. Fields not applicable to the key
// algorithm are reported as errors.
func (k *PrivateKey) Field(name string) (*MPI, error) {
	priv, err := k.obj()
	if err != nil {
		return nil, err
	}
	return keyField(name, func(mp C.botan_mp_t, field *C.char) C.int {
		return C.botan_privkey_get_field(mp, priv, field)
	})
}

func keyField(name string, get func(mp C.botan_mp_t, field *C.char) C.int) (*MPI, error) {
	cName, err := cString(name)
	if err != nil {
		return nil, err
	}
	defer freePtr(cName)
	return newMPIWith(func(res *MPI) error {
		return res.call("Error getting key field "+name, func(obj C.botan_mp_t) C.int {
			return get(obj, cName)
		})
	})
}

func (k *PrivateKey) export(flags C.uint32_t) ([]byte, error) {
	obj, err := k.obj()
	if err != nil {
		return nil, err
	}
	return negotiate("Error exporting private key", 0, func(out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_privkey_export(obj, out, outLen, flags)
	})
}

// DER returns unencrypted PKCS#8 encoding.
func (k *PrivateKey) DER() ([]byte, error) {
	return k.export(exportDER)
}

// PEM returns unencrypted PKCS#8 encoding armoured as "PRIVATE KEY".
func (k *PrivateKey) PEM() (string, error) {
	res, err := k.export(exportPEM)
	if err != nil {
		return "", err
	}
	return trimNul(res), nil
}

func (k *PrivateKey) exportEncrypted(password string, rng *RNG, opts PBEOptions, flags C.uint32_t) ([]byte, error) {
	obj, err := k.obj()
	if err != nil {
		return nil, err
	}
	r, err := rng.obj()
	if err != nil {
		return nil, err
	}
	cPass, err := cString(password)
	if err != nil {
		return nil, err
	}
	defer freePtr(cPass)
	cCipher, err := cStringOrNil(opts.Cipher)
	if err != nil {
		return nil, err
	}
	defer freePtr(cCipher)
	cHash, err := cStringOrNil(opts.PBKDFHash)
	if err != nil {
		return nil, err
	}
	defer freePtr(cHash)
	iter := opts.Iterations
	if iter <= 0 {
		iter = defaultIterations
	}
	return negotiate("Error exporting encrypted private key", encryptedKeyHint, func(out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_privkey_export_encrypted_pbkdf_iter(obj, out, outLen, r, cPass,
			sizeT(iter), cCipher, cHash, flags)
	})
}

// EncryptedDER returns PKCS#8 encoding encrypted with password.
func (k *PrivateKey) EncryptedDER(password string, rng *RNG, opts PBEOptions) ([]byte, error) {
	return k.exportEncrypted(password, rng, opts, exportDER)
}

// EncryptedPEM returns PKCS#8 encoding encrypted with password and armoured
// as "ENCRYPTED PRIVATE KEY".
func (k *PrivateKey) EncryptedPEM(password string, rng *RNG, opts PBEOptions) (string, error) {
	res, err := k.exportEncrypted(password, rng, opts, exportPEM)
	if err != nil {
		return "", err
	}
	return trimNul(res), nil
}

// KeyAgreementKey returns public value sent to the peer in key agreement.
// Keys of algorithms without key agreement support fail.
func (k *PrivateKey) KeyAgreementKey() ([]byte, error) {
	obj, err := k.obj()
	if err != nil {
		return nil, err
	}
	return negotiate("Error exporting key agreement key", 0, func(out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_pk_op_key_agreement_export_public(obj, out, outLen)
	})
}

// Close releases private key handle.
func (k *PrivateKey) Close() error {
	if k == nil {
		return nil
	}
	k.h.release()
	return nil
}

// LoadPublicKey decodes X.509 SubjectPublicKeyInfo in DER or PEM form.
func LoadPublicKey(data []byte) (*PublicKey, error) {
	res, err := newPublicKey("Error loading public key", func(obj *C.botan_pubkey_t) C.int {
		return C.botan_pubkey_load(obj, bytesPtr(data), sizeT(len(data)))
	})
	return res, asConversion(err)
}

// LoadPublicKeyFile reads public key from file.
func LoadPublicKeyFile(path string) (*PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadPublicKey(data)
}

// LoadPublicKeyRSA builds RSA public key from modulus n and exponent e.
func LoadPublicKeyRSA(n, e *MPI) (*PublicKey, error) {
	no, err := n.obj()
	if err != nil {
		return nil, err
	}
	eo, err := e.obj()
	if err != nil {
		return nil, err
	}
	return newPublicKey("Error loading RSA public key", func(obj *C.botan_pubkey_t) C.int {
		return C.botan_pubkey_load_rsa(obj, no, eo)
	})
}

type ecPublicLoader func(obj *C.botan_pubkey_t, x, y C.botan_mp_t, curve *C.char) C.int

func loadPublicKeyEC(msg string, x, y *MPI, curve string, load ecPublicLoader) (*PublicKey, error) {
	xo, err := x.obj()
	if err != nil {
		return nil, err
	}
	yo, err := y.obj()
	if err != nil {
		return nil, err
	}
	cCurve, err := cString(curve)
	if err != nil {
		return nil, err
	}
	defer freePtr(cCurve)
	return newPublicKey(msg, func(obj *C.botan_pubkey_t) C.int {
		return load(obj, xo, yo, cCurve)
	})
}

// LoadPublicKeyECDSA builds ECDSA public key from point coordinates.
func LoadPublicKeyECDSA(x, y *MPI, curve string) (*PublicKey, error) {
	return loadPublicKeyEC("Error loading ECDSA public key", x, y, curve, func(obj *C.botan_pubkey_t, x, y C.botan_mp_t, c *C.char) C.int {
		return C.botan_pubkey_load_ecdsa(obj, x, y, c)
	})
}

// LoadPublicKeyECDH builds ECDH public key from point coordinates.
func LoadPublicKeyECDH(x, y *MPI, curve string) (*PublicKey, error) {
	return loadPublicKeyEC("Error loading ECDH public key", x, y, curve, func(obj *C.botan_pubkey_t, x, y C.botan_mp_t, c *C.char) C.int {
		return C.botan_pubkey_load_ecdh(obj, x, y, c)
	})
}

func (k *PublicKey) obj() (C.botan_pubkey_t, error) {
	if k == nil {
		return nil, releasedErr(kindPublicKey)
	}
	return k.h.get()
}

// AlgorithmName returns key algorithm.
func (k *PublicKey) AlgorithmName() (string, error) {
	obj, err := k.obj()
	if err != nil {
		return "", err
	}
	return negotiateString("Error getting key algorithm", 32, func(out *C.char, outLen *C.size_t) C.int {
		return C.botan_pubkey_algo_name(obj, out, outLen)
	})
}

// Check tests key consistency.
func (k *PublicKey) Check(rng *RNG, expensive bool) (bool, error) {
	obj, err := k.obj()
	if err != nil {
		return false, err
	}
	r, err := rng.obj()
	if err != nil {
		return false, err
	}
	var flags C.uint32_t
	if expensive {
		flags = checkExpensive
	}
	return keyCheck(C.botan_pubkey_check_key(obj, r, flags))
}

// Field returns named numeric key parameter.
func (k *PublicKey) Field(name string) (*MPI, error) {
	pub, err := k.obj()
	if err != nil {
		return nil, err
	}
	return keyField(name, func(mp C.botan_mp_t, field *C.char) C.int {
		return C.botan_pubkey_get_field(mp, pub, field)
	})
}

func (k *PublicKey) export(flags C.uint32_t) ([]byte, error) {
	obj, err := k.obj()
	if err != nil {
		return nil, err
	}
	return negotiate("Error exporting public key", 0, func(out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_pubkey_export(obj, out, outLen, flags)
	})
}

// DER returns SubjectPublicKeyInfo encoding.
func (k *PublicKey) DER() ([]byte, error) {
	return k.export(exportDER)
}

// PEM returns SubjectPublicKeyInfo encoding armoured as "PUBLIC KEY".
func (k *PublicKey) PEM() (string, error) {
	res, err := k.export(exportPEM)
	if err != nil {
		return "", err
	}
	return trimNul(res), nil
}

// EstimatedStrength returns estimated key strength in bits.
func (k *PublicKey) EstimatedStrength() (int, error) {
	var n C.size_t
	obj, err := k.obj()
	if err != nil {
		return 0, err
	}
	if err := getErr("Error estimating key strength", C.botan_pubkey_estimated_strength(obj, &n)); err != nil {
		return 0, err
	}
	return int(n), nil
}

// Fingerprint returns hash of the key encoding computed with named hash.
func (k *PublicKey) Fingerprint(hash string) ([]byte, error) {
	obj, err := k.obj()
	if err != nil {
		return nil, err
	}
	cHash, err := cString(hash)
	if err != nil {
		return nil, err
	}
	defer freePtr(cHash)
	return negotiate("Error computing key fingerprint", 64, func(out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_pubkey_fingerprint(obj, cHash, out, outLen)
	})
}

// CryptoPublicKey converts key to its standard library counterpart, such
// as *rsa.PublicKey or *ecdsa.PublicKey. Keys on curves unknown to the
// standard library can not be converted.
func (k *PublicKey) CryptoPublicKey() (crypto.PublicKey, error) {
	der, err := k.DER()
	if err != nil {
		return nil, err
	}
	return x509.ParsePKIXPublicKey(der)
}

// Close releases public key handle.
func (k *PublicKey) Close() error {
	if k == nil {
		return nil
	}
	k.h.release()
	return nil
}
