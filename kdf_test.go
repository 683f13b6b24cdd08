package botan

import (
	"crypto/sha256"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/andviro/goldie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

func TestKDF_HKDF(t *testing.T) {
	secret := mustHex(t, "0B0B0B0B0B0B0B0B0B0B0B0B0B0B0B0B0B0B0B0B0B0B")
	salt := mustHex(t, "000102030405060708090A0B0C")
	info := mustHex(t, "F0F1F2F3F4F5F6F7F8F9")

	res, err := KDF("HKDF(SHA-256)", 42, secret, salt, info)
	require.NoError(t, err)
	goldie.Assert(t, "hkdf_sha256", res)

	ref := make([]byte, 42)
	_, err = io.ReadFull(hkdf.New(sha256.New, secret, salt, info), ref)
	require.NoError(t, err)
	assert.Equal(t, ref, res)
}

func TestKDF_Errors(t *testing.T) {
	_, err := KDF("HKDF(SHA-256)", 0, []byte("secret"), nil, nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = KDF("BunnyKDF", 16, []byte("secret"), nil, nil)
	assert.True(t, errors.Is(err, ErrNotImplemented), "%v", err)
	_, err = PBKDF("BunnyPBKDF", 16, "pass", nil, 1000)
	assert.True(t, errors.Is(err, ErrNotImplemented), "%v", err)
}

func TestPBKDF(t *testing.T) {
	salt := mustHex(t, "0001020304050607")
	res, err := PBKDF("PBKDF2(SHA-256)", 27, "xyz", salt, 10000)
	require.NoError(t, err)
	goldie.Assert(t, "pbkdf2_sha256", res)
	assert.Equal(t, pbkdf2.Key([]byte("xyz"), salt, 10000, 27, sha256.New), res)
}

func TestPBKDFTimed(t *testing.T) {
	salt := []byte("timed salt")
	res, iterations, err := PBKDFTimed("PBKDF2(SHA-256)", 32, "passphrase", salt, 20*time.Millisecond)
	require.NoError(t, err)
	require.Positive(t, iterations)
	again, err := PBKDF("PBKDF2(SHA-256)", 32, "passphrase", salt, iterations)
	require.NoError(t, err)
	assert.Equal(t, res, again)
}

func TestScrypt(t *testing.T) {
	res, err := Scrypt(33, "password", []byte("NaCl"), 1024, 8, 16)
	require.NoError(t, err)
	goldie.Assert(t, "scrypt", res)

	ref, err := scrypt.Key([]byte("password"), []byte("NaCl"), 1024, 8, 16, 33)
	require.NoError(t, err)
	assert.Equal(t, ref, res)
}
