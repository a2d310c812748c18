package sampling

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyedPRNGDeterminism(t *testing.T) {

	key := []byte("prng test key")

	prng0, err := NewKeyedPRNG(key)
	require.NoError(t, err)
	prng1, err := NewKeyedPRNG(key)
	require.NoError(t, err)

	buf0 := make([]byte, 512)
	buf1 := make([]byte, 512)

	_, err = prng0.Read(buf0)
	require.NoError(t, err)
	_, err = prng1.Read(buf1)
	require.NoError(t, err)

	require.Equal(t, buf0, buf1)

	// Reset replays the stream from the start.
	prng0.Reset()
	buf2 := make([]byte, 512)
	_, err = prng0.Read(buf2)
	require.NoError(t, err)
	require.Equal(t, buf0, buf2)

	require.Equal(t, key, prng0.Key())
}

func TestKeyedPRNGDifferentKeys(t *testing.T) {

	prng0, err := NewKeyedPRNG([]byte("key A"))
	require.NoError(t, err)
	prng1, err := NewKeyedPRNG([]byte("key B"))
	require.NoError(t, err)

	buf0 := make([]byte, 64)
	buf1 := make([]byte, 64)

	_, err = prng0.Read(buf0)
	require.NoError(t, err)
	_, err = prng1.Read(buf1)
	require.NoError(t, err)

	require.NotEqual(t, buf0, buf1)
}

func TestThreadSafePRNG(t *testing.T) {

	prng, err := NewPRNG()
	require.NoError(t, err)

	buf := make([]byte, 64)
	n, err := prng.Read(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
}
