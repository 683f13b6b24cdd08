package botan

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	for code, kind := range map[ErrorCode]Kind{
		CodeInvalidInput:            ErrInvalidInput,
		CodeBadFlag:                 ErrInvalidInput,
		CodeNullPointer:             ErrInvalidInput,
		CodeBadParameter:            ErrInvalidInput,
		CodeKeyNotSet:               ErrInvalidInput,
		CodeInvalidObjectState:      ErrInvalidInput,
		CodeInvalidObject:           ErrInvalidInput,
		CodeBadMAC:                  ErrBadMAC,
		CodeInsufficientBufferSpace: ErrInsufficientBufferSpace,
		CodeInvalidKeyLength:        ErrInvalidKeyLength,
		CodeNotImplemented:          ErrNotImplemented,
		CodeExceptionThrown:         ErrGeneric,
		CodeOutOfMemory:             ErrGeneric,
		CodeUnknownError:            ErrGeneric,
		ErrorCode(-12345):           ErrGeneric,
		ErrorCode(42):               ErrGeneric,
	} {
		assert.Equal(t, kind, translate(code), "code %d", int(code))
	}
}

func TestCodeErr(t *testing.T) {
	assert.NoError(t, codeErr("ok", CodeSuccess))

	err := codeErr("Error doing things", CodeBadMAC)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadMAC))
	assert.False(t, errors.Is(err, ErrInvalidInput))

	var e Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, CodeBadMAC, e.Code)
	assert.Equal(t, "Error doing things: bad MAC (BOTAN_FFI_ERROR_BAD_MAC)", err.Error())

	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, errors.Is(wrapped, ErrBadMAC))
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "BOTAN_FFI_SUCCESS", CodeSuccess.String())
	assert.Equal(t, "BOTAN_FFI_INVALID_VERIFIER", CodeInvalidVerifier.String())
	assert.Equal(t, "BOTAN_FFI_ERROR_INSUFFICIENT_BUFFER_SPACE", CodeInsufficientBufferSpace.String())
	assert.Equal(t, "BOTAN_FFI_ERROR_UNKNOWN_ERROR", CodeUnknownError.String())
	assert.Equal(t, "BOTAN_FFI_ERROR(-999)", ErrorCode(-999).String())
}

func TestKind_Error(t *testing.T) {
	assert.Equal(t, "not implemented", ErrNotImplemented.Error())
	assert.Equal(t, "conversion error", ErrConversion.Error())
	assert.Equal(t, "generic error", Kind(100).Error())
}

func TestAsConversion(t *testing.T) {
	err := asConversion(codeErr("decode", CodeInvalidInput))
	assert.True(t, errors.Is(err, ErrConversion))
	err = asConversion(codeErr("decode", CodeExceptionThrown))
	assert.True(t, errors.Is(err, ErrConversion))
	err = asConversion(codeErr("decode", CodeInsufficientBufferSpace))
	assert.True(t, errors.Is(err, ErrInsufficientBufferSpace))
	assert.NoError(t, asConversion(nil))
}

func TestAsKind(t *testing.T) {
	err := asKind(codeErr("lookup", CodeExceptionThrown), ErrNotImplemented)
	assert.True(t, errors.Is(err, ErrNotImplemented))
	var e Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, CodeExceptionThrown, e.Code)

	err = asKind(codeErr("lookup", CodeInsufficientBufferSpace), ErrNotImplemented)
	assert.True(t, errors.Is(err, ErrInsufficientBufferSpace))
	assert.NoError(t, asKind(nil, ErrBadMAC))
}

func TestReleasedErr(t *testing.T) {
	err := releasedErr(kindHash)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "released hash handle")
}

func TestNegativeCountsRejected(t *testing.T) {
	rng, err := NewSystemRNG()
	require.NoError(t, err)
	defer rng.Close()
	m := mpi(t, "1234567")

	for name, fn := range map[string]func() error{
		"PBKDF iterations": func() error {
			_, err := PBKDF("PBKDF2(SHA-256)", 16, "pass", nil, -1)
			return err
		},
		"PBKDFTimed duration": func() error {
			_, _, err := PBKDFTimed("PBKDF2(SHA-256)", 16, "pass", nil, -time.Second)
			return err
		},
		"Scrypt N": func() error {
			_, err := Scrypt(16, "pass", nil, -1, 8, 1)
			return err
		},
		"Scrypt r": func() error {
			_, err := Scrypt(16, "pass", nil, 1024, -8, 1)
			return err
		},
		"Scrypt p": func() error {
			_, err := Scrypt(16, "pass", nil, 1024, 8, 0)
			return err
		},
		"RNG Get": func() error {
			_, err := rng.Get(-1)
			return err
		},
		"RNG Reseed":         func() error { return rng.Reseed(-1) },
		"RNG ReseedFromRNG":  func() error { return rng.ReseedFromRNG(nil, -256) },
		"MPI RandomBits":     func() error { return m.RandomBits(rng, -1) },
		"bcrypt work factor": func() error {
			_, err := BcryptHash("pass", rng, -4)
			return err
		},
		"MPI IsPrime": func() error {
			_, err := m.IsPrime(rng, -1)
			return err
		},
	} {
		err := fn()
		assert.True(t, errors.Is(err, ErrInvalidInput), "%s: %v", name, err)
		var e Error
		if assert.True(t, errors.As(err, &e), name) {
			assert.Equal(t, CodeBadParameter, e.Code, name)
		}
	}
	assert.Equal(t, "1234567", m.String())
}
