package botan

//#include "common.h"
import "C"

import (
	"fmt"
)

//go:generate go run ./cmd/gen_errors -out error_strings.go

// ErrorCode corresponds to a status code returned by the Botan FFI
type ErrorCode int

// Botan FFI status codes translated to Go constants
const (
	CodeSuccess                 ErrorCode = 0
	CodeInvalidVerifier         ErrorCode = 1    // Verification finished but the signature does not match
	CodeInvalidInput            ErrorCode = -1   // Malformed input
	CodeBadMAC                  ErrorCode = -2   // Authentication tag mismatch
	CodeInsufficientBufferSpace ErrorCode = -10  // Output buffer is too small, required size reported
	CodeExceptionThrown         ErrorCode = -20  // Unclassified native exception
	CodeOutOfMemory             ErrorCode = -21  // Allocation failure
	CodeSystemError             ErrorCode = -22  // Operating system failure
	CodeInternalError           ErrorCode = -23  // Internal library error
	CodeBadFlag                 ErrorCode = -30  // Unknown flag passed
	CodeNullPointer             ErrorCode = -31  // NULL passed where object expected
	CodeBadParameter            ErrorCode = -32  // Parameter out of range
	CodeKeyNotSet               ErrorCode = -33  // Keyed object used before key was set
	CodeInvalidKeyLength        ErrorCode = -34  // Key length is not acceptable for algorithm
	CodeInvalidObjectState      ErrorCode = -35  // Operation is not valid in current object state
	CodeNotImplemented          ErrorCode = -40  // Unknown algorithm or unsupported operation
	CodeInvalidObject           ErrorCode = -50  // Object handle is invalid or released
	CodeTLSError                ErrorCode = -75  // TLS failure
	CodeHTTPError               ErrorCode = -76  // HTTP failure
	CodeUnknownError            ErrorCode = -100 // Unknown native failure
)

func (c ErrorCode) String() string {
	if s, ok := errorStringMap[c]; ok {
		return s
	}
	return fmt.Sprintf("BOTAN_FFI_ERROR(%d)", int(c))
}

// Kind is the closed set of failure classes surfaced to callers. Every
// Error unwraps to one of the Kind values, so errors.Is can be used to test
// for a class.
type Kind int

// Error kinds
const (
	ErrGeneric                 Kind = iota // Unmapped native failure
	ErrNotImplemented                      // Unknown algorithm or unsupported operation
	ErrInvalidKeyLength                    // Key length rejected by algorithm
	ErrInvalidInput                        // Malformed argument or wrong object state
	ErrInsufficientBufferSpace             // Output could not be sized after retry
	ErrBadMAC                              // Authentication failure on decryption
	ErrConversion                          // Malformed encoded data
)

var kindStrings = [...]string{
	ErrGeneric:                 "generic error",
	ErrNotImplemented:          "not implemented",
	ErrInvalidKeyLength:        "invalid key length",
	ErrInvalidInput:            "invalid input",
	ErrInsufficientBufferSpace: "insufficient buffer space",
	ErrBadMAC:                  "bad MAC",
	ErrConversion:              "conversion error",
}

func (k Kind) Error() string {
	if k >= 0 && int(k) < len(kindStrings) {
		return kindStrings[k]
	}
	return kindStrings[ErrGeneric]
}

// Error provides error type
type Error struct {
	Code ErrorCode // Code indicates exact Botan FFI status code
	Kind Kind      // Kind classifies the failure
	msg  string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.msg, e.Kind.Error(), e.Code)
}

// Unwrap returns the error Kind.
func (e Error) Unwrap() error {
	return e.Kind
}

// translate maps a native status code to error Kind. It is total: codes
// unknown to this package become ErrGeneric.
func translate(code ErrorCode) Kind {
	switch code {
	case CodeInvalidInput, CodeBadFlag, CodeNullPointer, CodeBadParameter,
		CodeKeyNotSet, CodeInvalidObjectState, CodeInvalidObject:
		return ErrInvalidInput
	case CodeBadMAC:
		return ErrBadMAC
	case CodeInsufficientBufferSpace:
		return ErrInsufficientBufferSpace
	case CodeInvalidKeyLength:
		return ErrInvalidKeyLength
	case CodeNotImplemented:
		return ErrNotImplemented
	}
	return ErrGeneric
}

func newError(msg string, code ErrorCode, kind Kind) error {
	return Error{msg: msg, Code: code, Kind: kind}
}

// codeErr translates a status code, returning nil on success. Positive
// codes are only produced by verification calls, which handle them before
// reaching here; elsewhere they are failures.
func codeErr(msg string, code ErrorCode) error {
	if code == CodeSuccess {
		return nil
	}
	return newError(msg, code, translate(code))
}

func getErr(msg string, rc C.int) error {
	return codeErr(msg, ErrorCode(rc))
}

// asConversion reclassifies failures of decoding calls: malformed input
// reported by the library is a conversion error for the caller.
func asConversion(err error) error {
	if e, ok := err.(Error); ok {
		switch e.Kind {
		case ErrInvalidInput, ErrGeneric:
			e.Kind = ErrConversion
			return e
		}
	}
	return err
}

// asKind forces the Kind of a native failure unless it concerns buffer
// sizing.
func asKind(err error, kind Kind) error {
	if e, ok := err.(Error); ok && e.Kind != ErrInsufficientBufferSpace {
		e.Kind = kind
		return e
	}
	return err
}

func releasedErr(kind objectKind) error {
	return newError(fmt.Sprintf("Use of released %s handle", kind), CodeInvalidObject, ErrInvalidInput)
}

// checkMin rejects count arguments below least before they are converted to
// size_t.
func checkMin(msg, name string, v, least int) error {
	if v < least {
		return newError(fmt.Sprintf("%s: %s must be at least %d, got %d", msg, name, least, v), CodeBadParameter, ErrInvalidInput)
	}
	return nil
}
