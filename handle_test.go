package botan

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClose_Idempotent(t *testing.T) {
	h, err := NewHash("SHA-256")
	require.NoError(t, err)
	assert.NoError(t, h.Close())
	assert.NoError(t, h.Close())

	var nilHash *Hash
	assert.NoError(t, nilHash.Close())
}

func TestUseAfterClose(t *testing.T) {
	h, err := NewHash("SHA-256")
	require.NoError(t, err)
	require.NoError(t, h.Close())

	err = h.Update([]byte("abc"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	var e Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, CodeInvalidObject, e.Code)

	_, err = h.Final()
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = h.Copy()
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = h.Name()
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestZeroValueWrapper(t *testing.T) {
	for kind, err := range map[string]error{
		"hash":          (&Hash{}).Update([]byte("abc")),
		"encryptor":     func() error { _, err := (&Encryptor{}).OutputLength(16); return err }(),
		"key agreement": func() error { _, err := (&KeyAgreement{}).Size(); return err }(),
	} {
		require.Error(t, err, kind)
		assert.True(t, errors.Is(err, ErrInvalidInput), kind)
		assert.Contains(t, err.Error(), "Use of released "+kind+" handle")
	}
}

func TestCopyIndependent(t *testing.T) {
	h, err := NewHash("SHA-256")
	require.NoError(t, err)
	dup, err := h.Copy()
	require.NoError(t, err)
	require.NoError(t, h.Close())

	// the copy outlives the original
	require.NoError(t, dup.Update([]byte("abc")))
	_, err = dup.Final()
	assert.NoError(t, err)
	assert.NoError(t, dup.Close())
}

type failingCloser struct{ err error }

func (f failingCloser) Close() error { return f.err }

func TestCloseAll(t *testing.T) {
	h, err := NewHash("SHA-1")
	require.NoError(t, err)
	rng, err := NewSystemRNG()
	require.NoError(t, err)
	assert.NoError(t, CloseAll(h, rng, nil))

	_, err = h.Final()
	assert.True(t, errors.Is(err, ErrInvalidInput))

	errA, errB := errors.New("a"), errors.New("b")
	err = CloseAll(failingCloser{errA}, failingCloser{nil}, failingCloser{errB})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errA))
	assert.True(t, errors.Is(err, errB))

	var closers []io.Closer
	assert.NoError(t, CloseAll(closers...))
}
