package botan

//#include "common.h"
import "C"

import (
	"unsafe"
)

const hexLowerCase C.uint32_t = 1

// HexEncode returns uppercase hexadecimal encoding of buf.
func HexEncode(buf []byte) string {
	return hexEncode(buf, 0)
}

// HexEncodeLower returns lowercase hexadecimal encoding of buf.
func HexEncodeLower(buf []byte) string {
	return hexEncode(buf, hexLowerCase)
}

func hexEncode(buf []byte, flags C.uint32_t) string {
	if len(buf) == 0 {
		return ""
	}
	// botan_hex_encode is present at every API level, so encoding proceeds
	// even when initialization rejects the library
	_ = initialize()
	out := make([]byte, 2*len(buf))
	// encoding into a buffer of exact size can not fail
	C.botan_hex_encode(bytesPtr(buf), sizeT(len(buf)), charPtr(out), flags)
	return string(out)
}

// HexDecode decodes hexadecimal string in either case. Malformed input
// fails with ErrConversion.
func HexDecode(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	in := []byte(s)
	res, err := negotiate("Error decoding hex", len(in)/2+1, func(out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_hex_decode(charPtr(in), sizeT(len(in)), out, outLen)
	})
	return res, asConversion(err)
}

// Base64Encode returns standard base64 encoding of buf with padding.
func Base64Encode(buf []byte) (string, error) {
	if len(buf) == 0 {
		return "", nil
	}
	return negotiateString("Error encoding base64", 4*((len(buf)+2)/3)+1, func(out *C.char, outLen *C.size_t) C.int {
		return C.botan_base64_encode(bytesPtr(buf), sizeT(len(buf)), out, outLen)
	})
}

// Base64Decode decodes standard base64. Malformed input fails with
// ErrConversion.
func Base64Decode(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	in := []byte(s)
	res, err := negotiate("Error decoding base64", (len(in)+3)/4*3, func(out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_base64_decode(charPtr(in), sizeT(len(in)), out, outLen)
	})
	return res, asConversion(err)
}

// ConstantTimeCompare reports whether a and b are equal. Slices of
// different length are unequal right away; otherwise comparison time does
// not depend on content.
func ConstantTimeCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	if initialize() != nil {
		return false
	}
	return C.botan_constant_time_compare(bytesPtr(a), bytesPtr(b), sizeT(len(a))) == 0
}

// Numeric is any fixed size numeric element type.
type Numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr |
		~float32 | ~float64
}

// ScrubMem overwrites buf with zeros in a way the compiler can not elide.
func ScrubMem[T Numeric](buf []T) {
	if len(buf) == 0 {
		return
	}
	if initialize() != nil {
		clear(buf)
		return
	}
	size := int(unsafe.Sizeof(buf[0])) * len(buf)
	C.botan_scrub_mem(unsafe.Pointer(&buf[0]), sizeT(size))
}

// NISTKeyWrap wraps key under kek with RFC 3394 AES key wrap. Key length
// must be a multiple of 8 bytes.
func NISTKeyWrap(kek, key []byte) ([]byte, error) {
	if err := checkKeyWrap("Error wrapping key", kek, key, 16); err != nil {
		return nil, err
	}
	return negotiate("Error wrapping key", len(key)+8, func(out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_key_wrap3394(bytesPtr(key), sizeT(len(key)),
			bytesPtr(kek), sizeT(len(kek)), out, outLen)
	})
}

// NISTKeyUnwrap reverses NISTKeyWrap. Integrity check failure is reported
// as ErrBadMAC.
func NISTKeyUnwrap(kek, wrapped []byte) ([]byte, error) {
	if err := checkKeyWrap("Error unwrapping key", kek, wrapped, 24); err != nil {
		return nil, err
	}
	res, err := negotiate("Error unwrapping key", len(wrapped)-8, func(out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_key_unwrap3394(bytesPtr(wrapped), sizeT(len(wrapped)),
			bytesPtr(kek), sizeT(len(kek)), out, outLen)
	})
	if err != nil {
		// arguments are valid at this point, failure means integrity check
		return nil, asKind(err, ErrBadMAC)
	}
	return res, nil
}

// checkKeyWrap validates key wrap arguments: kek must be an AES key and
// data a multiple of 8 bytes of at least min bytes.
func checkKeyWrap(msg string, kek, data []byte, min int) error {
	if err := initialize(); err != nil {
		return err
	}
	switch len(kek) {
	case 16, 24, 32:
	default:
		return newError(msg+": key encryption key must be 16, 24 or 32 bytes", CodeInvalidKeyLength, ErrInvalidKeyLength)
	}
	if len(data) < min || len(data)%8 != 0 {
		return newError(msg+": input must be a multiple of 8 bytes", CodeInvalidInput, ErrInvalidInput)
	}
	return nil
}

// PKCSHashID returns DER encoded AlgorithmIdentifier prefix used in PKCS#1
// v1.5 signatures for named hash. Unknown hashes fail with
// ErrNotImplemented.
func PKCSHashID(hash string) ([]byte, error) {
	if err := initialize(); err != nil {
		return nil, err
	}
	cHash, err := cString(hash)
	if err != nil {
		return nil, err
	}
	defer freePtr(cHash)
	res, err := negotiate("Error getting PKCS hash id for "+hash, 32, func(out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_pkcs_hash_id(cHash, out, outLen)
	})
	if err != nil {
		return nil, asKind(err, ErrNotImplemented)
	}
	return res, nil
}
