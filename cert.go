package botan

//#include "common.h"
import "C"

import (
	"encoding/hex"
	"os"
	"time"
)

// KeyUsage is a set of X.509 key usage bits
type KeyUsage uint

// Key usage constraints
const (
	NoConstraints    KeyUsage = 0
	DigitalSignature KeyUsage = 32768
	NonRepudiation   KeyUsage = 16384
	KeyEncipherment  KeyUsage = 8192
	DataEncipherment KeyUsage = 4096
	KeyAgreementUse  KeyUsage = 2048
	KeyCertSign      KeyUsage = 1024
	CRLSign          KeyUsage = 512
	EncipherOnly     KeyUsage = 256
	DecipherOnly     KeyUsage = 128
)

// Certificate encapsulates X.509 certificate
type Certificate struct {
	h   *handle[C.botan_x509_cert_t]
	der []byte
}

func destroyCertificate(obj C.botan_x509_cert_t) C.int {
	return C.botan_x509_cert_destroy(obj)
}

// LoadCertificate decodes certificate from DER or PEM bytes.
func LoadCertificate(buf []byte) (*Certificate, error) {
	h, err := acquire(kindCertificate, destroyCertificate, func(obj *C.botan_x509_cert_t) C.int {
		return C.botan_x509_cert_load(obj, bytesPtr(buf), sizeT(len(buf)))
	})
	if err != nil {
		return nil, asConversion(err)
	}
	return &Certificate{h: h, der: append([]byte(nil), buf...)}, nil
}

// LoadCertificateFile reads certificate from file.
func LoadCertificateFile(path string) (*Certificate, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadCertificate(buf)
}

// Close releases certificate handle
func (c *Certificate) Close() error {
	if c == nil {
		return nil
	}
	c.h.release()
	return nil
}

// Copy returns independent certificate object.
func (c *Certificate) Copy() (*Certificate, error) {
	h, err := c.h.duplicate(func(dst *C.botan_x509_cert_t, src C.botan_x509_cert_t) C.int {
		return C.botan_x509_cert_dup(dst, src)
	})
	if err != nil {
		return nil, err
	}
	return &Certificate{h: h, der: c.der}, nil
}

// Bytes returns certificate encoding as it was loaded
func (c *Certificate) Bytes() []byte {
	return append([]byte(nil), c.der...)
}

type certOutputFunc func(obj C.botan_x509_cert_t, out *C.uint8_t, outLen *C.size_t) C.int

// property is a base function for extracting binary certificate fields
func (c *Certificate) property(msg string, fn certOutputFunc) ([]byte, error) {
	obj, err := c.h.get()
	if err != nil {
		return nil, err
	}
	return negotiate(msg, 0, func(out *C.uint8_t, outLen *C.size_t) C.int {
		return fn(obj, out, outLen)
	})
}

// SerialNumber returns big-endian serial number
func (c *Certificate) SerialNumber() ([]byte, error) {
	return c.property("Error getting serial number", func(obj C.botan_x509_cert_t, out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_x509_cert_get_serial_number(obj, out, outLen)
	})
}

// AuthorityKeyID returns authority key identifier extension value
func (c *Certificate) AuthorityKeyID() ([]byte, error) {
	return c.property("Error getting authority key id", func(obj C.botan_x509_cert_t, out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_x509_cert_get_authority_key_id(obj, out, outLen)
	})
}

// SubjectKeyID returns subject key identifier extension value
func (c *Certificate) SubjectKeyID() ([]byte, error) {
	return c.property("Error getting subject key id", func(obj C.botan_x509_cert_t, out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_x509_cert_get_subject_key_id(obj, out, outLen)
	})
}

// SubjectID returns subject key identifier as a hexadecimal string
func (c *Certificate) SubjectID() (string, error) {
	id, err := c.SubjectKeyID()
	return hex.EncodeToString(id), err
}

// MustSubjectID returns subject key identifier or panics
func (c *Certificate) MustSubjectID() string {
	id, err := c.SubjectID()
	if err != nil {
		panic(err)
	}
	return id
}

// PublicKeyBits returns encoded subject public key
func (c *Certificate) PublicKeyBits() ([]byte, error) {
	return c.property("Error getting public key bits", func(obj C.botan_x509_cert_t, out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_x509_cert_get_public_key_bits(obj, out, outLen)
	})
}

// PublicKey returns subject public key
func (c *Certificate) PublicKey() (*PublicKey, error) {
	cert, err := c.h.get()
	if err != nil {
		return nil, err
	}
	return newPublicKey("Error getting certificate public key", func(obj *C.botan_pubkey_t) C.int {
		return C.botan_x509_cert_get_public_key(cert, obj)
	})
}

// Fingerprint returns certificate hash formatted by the library as colon
// separated hex bytes.
func (c *Certificate) Fingerprint(hash string) (string, error) {
	obj, err := c.h.get()
	if err != nil {
		return "", err
	}
	cHash, err := cString(hash)
	if err != nil {
		return "", err
	}
	defer freePtr(cHash)
	res, err := negotiate("Error getting certificate fingerprint", 0, func(out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_x509_cert_get_fingerprint(obj, cHash, out, outLen)
	})
	if err != nil {
		return "", err
	}
	return trimNul(res), nil
}

// ThumbPrint returns SHA-1 hash of certificate encoding as a hexadecimal
// string
func (c *Certificate) ThumbPrint() (string, error) {
	h, err := NewHash("SHA-1")
	if err != nil {
		return "", err
	}
	defer h.Close()
	if err := h.Update(c.der); err != nil {
		return "", err
	}
	sum, err := h.Final()
	return hex.EncodeToString(sum), err
}

// MustThumbPrint returns certificate hash as a hexadecimal string or panics
func (c *Certificate) MustThumbPrint() string {
	thumb, err := c.ThumbPrint()
	if err != nil {
		panic(err)
	}
	return thumb
}

func (c *Certificate) timestamp(msg string, fn func(obj C.botan_x509_cert_t, t *C.uint64_t) C.int) (time.Time, error) {
	var t C.uint64_t
	if err := c.h.call(msg, func(obj C.botan_x509_cert_t) C.int {
		return fn(obj, &t)
	}); err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(t), 0).UTC(), nil
}

// NotBefore returns start of validity period
func (c *Certificate) NotBefore() (time.Time, error) {
	return c.timestamp("Error getting certificate start time", func(obj C.botan_x509_cert_t, t *C.uint64_t) C.int {
		return C.botan_x509_cert_not_before(obj, t)
	})
}

// NotAfter returns end of validity period
func (c *Certificate) NotAfter() (time.Time, error) {
	return c.timestamp("Error getting certificate expiration time", func(obj C.botan_x509_cert_t, t *C.uint64_t) C.int {
		return C.botan_x509_cert_not_after(obj, t)
	})
}

type dnFunc func(obj C.botan_x509_cert_t, key *C.char, index C.size_t, out *C.uint8_t, outLen *C.size_t) C.int

func (c *Certificate) dn(msg, key string, index int, fn dnFunc) (string, error) {
	if err := checkMin(msg, "index", index, 0); err != nil {
		return "", err
	}
	obj, err := c.h.get()
	if err != nil {
		return "", err
	}
	cKey, err := cString(key)
	if err != nil {
		return "", err
	}
	defer freePtr(cKey)
	res, err := negotiate(msg, 0, func(out *C.uint8_t, outLen *C.size_t) C.int {
		return fn(obj, cKey, sizeT(index), out, outLen)
	})
	if err != nil {
		return "", err
	}
	return trimNul(res), nil
}

// SubjectDN returns index-th value of subject attribute key, such as
// "Name", "Country", "Organization" or "Organizational Unit".
func (c *Certificate) SubjectDN(key string, index int) (string, error) {
	return c.dn("Error getting subject "+key, key, index, func(obj C.botan_x509_cert_t, key *C.char, index C.size_t, out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_x509_cert_get_subject_dn(obj, key, index, out, outLen)
	})
}

// IssuerDN returns index-th value of issuer attribute key.
func (c *Certificate) IssuerDN(key string, index int) (string, error) {
	return c.dn("Error getting issuer "+key, key, index, func(obj C.botan_x509_cert_t, key *C.char, index C.size_t, out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_x509_cert_get_issuer_dn(obj, key, index, out, outLen)
	})
}

// Text returns human readable description of the certificate
func (c *Certificate) Text() (string, error) {
	obj, err := c.h.get()
	if err != nil {
		return "", err
	}
	return negotiateString("Error formatting certificate", 4096, func(out *C.char, outLen *C.size_t) C.int {
		return C.botan_x509_cert_to_string(obj, out, outLen)
	})
}

// AllowedUsage reports whether key usage extension permits usage.
func (c *Certificate) AllowedUsage(usage KeyUsage) (bool, error) {
	obj, err := c.h.get()
	if err != nil {
		return false, err
	}
	switch rc := C.botan_x509_cert_allowed_usage(obj, C.uint(usage)); rc {
	case 0:
		return true, nil
	case 1:
		return false, nil
	default:
		return false, getErr("Error checking key usage", rc)
	}
}

// HostnameMatch reports whether certificate is issued for hostname.
func (c *Certificate) HostnameMatch(hostname string) (bool, error) {
	obj, err := c.h.get()
	if err != nil {
		return false, err
	}
	cHost, err := cString(hostname)
	if err != nil {
		return false, err
	}
	defer freePtr(cHost)
	return hostnameMatchResult(ErrorCode(C.botan_x509_cert_hostname_match(obj, cHost)))
}

// hostnameMatchResult interprets hostname match status: -1 is a mismatch,
// any other failure is an error.
func hostnameMatchResult(code ErrorCode) (bool, error) {
	switch code {
	case CodeSuccess:
		return true, nil
	case CodeInvalidInput:
		return false, nil
	default:
		return false, codeErr("Error matching hostname", code)
	}
}

// VerifyOptions configure certificate path validation.
type VerifyOptions struct {
	Intermediates    []*Certificate
	Trusted          []*Certificate
	TrustedPath      string    // Directory with trusted certificates
	RequiredStrength int       // Minimal signature strength in bits, library default when zero
	Hostname         string    // Expected host name, not checked when empty
	ReferenceTime    time.Time // Validation time, current time when zero
}

func certObjects(certs []*Certificate) ([]C.botan_x509_cert_t, error) {
	res := make([]C.botan_x509_cert_t, 0, len(certs))
	for _, c := range certs {
		obj, err := c.h.get()
		if err != nil {
			return nil, err
		}
		res = append(res, obj)
	}
	return res, nil
}

func certArray(objs []C.botan_x509_cert_t) *C.botan_x509_cert_t {
	if len(objs) == 0 {
		return nil
	}
	return &objs[0]
}

// Verify validates certificate path. It returns whether the certificate is
// valid along with the library validation status code, which can be
// described with ValidationStatus.
func (c *Certificate) Verify(opts VerifyOptions) (bool, int, error) {
	obj, err := c.h.get()
	if err != nil {
		return false, 0, err
	}
	intermediates, err := certObjects(opts.Intermediates)
	if err != nil {
		return false, 0, err
	}
	trusted, err := certObjects(opts.Trusted)
	if err != nil {
		return false, 0, err
	}
	cPath, err := cStringOrNil(opts.TrustedPath)
	if err != nil {
		return false, 0, err
	}
	defer freePtr(cPath)
	cHost, err := cStringOrNil(opts.Hostname)
	if err != nil {
		return false, 0, err
	}
	defer freePtr(cHost)
	if err := checkMin("Error verifying certificate", "required strength", opts.RequiredStrength, 0); err != nil {
		return false, 0, err
	}
	var refTime C.uint64_t
	if !opts.ReferenceTime.IsZero() {
		refTime = C.uint64_t(opts.ReferenceTime.Unix())
	}
	var status C.int
	rc := C.botan_x509_cert_verify(&status, obj,
		certArray(intermediates), sizeT(len(intermediates)),
		certArray(trusted), sizeT(len(trusted)),
		cPath, sizeT(opts.RequiredStrength), cHost, refTime)
	switch rc {
	case 0:
		return true, int(status), nil
	case 1:
		return false, int(status), nil
	default:
		return false, int(status), getErr("Error verifying certificate", rc)
	}
}

// ValidationStatus describes validation status code returned by Verify.
func ValidationStatus(code int) string {
	if s := C.botan_x509_cert_validation_status(C.int(code)); s != nil {
		return C.GoString(s)
	}
	return "Unknown validation status"
}
