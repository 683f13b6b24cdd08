package botan

//#include "common.h"
import "C"

import (
	"github.com/sirupsen/logrus"
)

// fillFunc performs one native output call into buf. It returns the length
// reported by the library (written length on success, required length on
// CodeInsufficientBufferSpace) and the status code.
type fillFunc func(buf []byte) (int, ErrorCode)

// negotiateBytes runs the query-then-fill protocol. With hint <= 0 the call
// is first made with zero capacity to learn the required length; a size query
// reporting zero required length yields empty result. A positive
// hint is used as the initial capacity. If the library still reports
// insufficient space after allocation, the buffer is reallocated to the
// newly reported length once; a further report is fatal. The result is
// truncated to the length actually written.
func negotiateBytes(msg string, hint int, fill fillFunc) ([]byte, error) {
	var buf []byte
	if hint > 0 {
		buf = make([]byte, hint)
	} else {
		n, code := fill(nil)
		switch {
		case code == CodeSuccess:
			return []byte{}, nil
		case code != CodeInsufficientBufferSpace:
			return nil, codeErr(msg, code)
		case n == 0:
			// nil output is always reported as insufficient, even when
			// nothing is to be written
			return []byte{}, nil
		}
		buf = make([]byte, n)
	}
	for retry := 0; ; retry++ {
		n, code := fill(buf)
		switch {
		case code == CodeSuccess:
			if n > len(buf) {
				return nil, newError(msg+": library reported more output than buffer capacity", CodeInternalError, ErrGeneric)
			}
			return buf[:n], nil
		case code != CodeInsufficientBufferSpace:
			return nil, codeErr(msg, code)
		case retry > 0 && hint <= 0, retry > 1:
			return nil, codeErr(msg, code)
		}
		log().WithFields(logrus.Fields{"op": msg, "size": n}).Debug("output buffer resized")
		buf = make([]byte, n)
	}
}

// outputFunc is a native call with the (out, *out_len) output convention.
type outputFunc func(out *C.uint8_t, outLen *C.size_t) C.int

// charOutputFunc is outputFunc for calls that write char strings.
type charOutputFunc func(out *C.char, outLen *C.size_t) C.int

func negotiate(msg string, hint int, call outputFunc) ([]byte, error) {
	return negotiateBytes(msg, hint, func(buf []byte) (int, ErrorCode) {
		n := sizeT(len(buf))
		rc := call(bytesPtr(buf), &n)
		return int(n), ErrorCode(rc)
	})
}

// negotiateString negotiates a NUL terminated string output.
func negotiateString(msg string, hint int, call charOutputFunc) (string, error) {
	buf, err := negotiateBytes(msg, hint, func(buf []byte) (int, ErrorCode) {
		n := sizeT(len(buf))
		rc := call(charPtr(buf), &n)
		return int(n), ErrorCode(rc)
	})
	if err != nil {
		return "", err
	}
	return trimNul(buf), nil
}

// fixedOutput makes a single native call into a buffer of known size,
// bypassing negotiation.
func fixedOutput(msg string, size int, call func(out *C.uint8_t) C.int) ([]byte, error) {
	buf := make([]byte, size)
	if err := getErr(msg, call(bytesPtr(buf))); err != nil {
		return nil, err
	}
	return buf, nil
}
