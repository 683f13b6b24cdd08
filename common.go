// Package botan provides a safe Go binding to the Botan 2 cryptographic
// library through its C FFI. Native objects are owned by wrapper values
// that must be released with their Close method; variable length outputs
// are sized by the library itself and never exposed as raw buffers.
package botan

/*
#cgo pkg-config: botan-2
#cgo windows LDFLAGS: -lbotan-2
#include "common.h"
*/
import "C"

import (
	"bytes"
	"strings"
	"unsafe"
)

// cString converts s to a C string that must be released with freePtr.
// Strings with embedded NUL bytes are rejected since the native side would
// silently truncate them.
func cString(s string) (*C.char, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, newError("String contains NUL byte", CodeBadParameter, ErrConversion)
	}
	return C.CString(s), nil
}

// cStringOrNil works like cString but maps an empty string to NULL.
func cStringOrNil(s string) (*C.char, error) {
	if s == "" {
		return nil, nil
	}
	return cString(s)
}

func freePtr(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

// bytesPtr returns pointer to the first element of buf or nil for empty
// slices.
func bytesPtr(buf []byte) *C.uint8_t {
	if len(buf) == 0 {
		return nil
	}
	return (*C.uint8_t)(unsafe.Pointer(&buf[0]))
}

func charPtr(buf []byte) *C.char {
	if len(buf) == 0 {
		return nil
	}
	return (*C.char)(unsafe.Pointer(&buf[0]))
}

func sizeT(n int) C.size_t {
	return C.size_t(n)
}

// trimNul cuts buf at the first NUL byte written by the native string
// output functions.
func trimNul(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf)
}
