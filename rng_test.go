package botan

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNG(t *testing.T) {
	for _, kind := range []RNGKind{RNGSystem, RNGUser, RNGUserThreadsafe} {
		t.Run(string(kind), func(t *testing.T) {
			rng, err := NewRNG(kind)
			require.NoError(t, err)
			defer rng.Close()

			a, err := rng.Get(32)
			require.NoError(t, err)
			b, err := rng.Get(32)
			require.NoError(t, err)
			assert.Len(t, a, 32)
			assert.False(t, bytes.Equal(a, b))

			empty, err := rng.Get(0)
			require.NoError(t, err)
			assert.Len(t, empty, 0)

			assert.NoError(t, rng.Reseed(256))
		})
	}
}

func TestRNG_Default(t *testing.T) {
	var rng *RNG
	buf := make([]byte, 16)
	n, err := rng.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.NotEqual(t, make([]byte, 16), buf)
	// closing the shared generator through nil is a no-op
	assert.NoError(t, rng.Close())
	_, err = rng.Get(4)
	assert.NoError(t, err)
}

func TestRNG_Unknown(t *testing.T) {
	_, err := NewRNG("bunny")
	assert.True(t, errors.Is(err, ErrNotImplemented))
}

func TestRNG_Closed(t *testing.T) {
	rng, err := NewSystemRNG()
	require.NoError(t, err)
	require.NoError(t, rng.Close())
	_, err = rng.Get(1)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
