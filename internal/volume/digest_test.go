package volume

import (
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	data := []byte("hello world")
	sum := sha1.Sum(data)

	require.True(t, Verify(data, sum))
	require.False(t, Verify([]byte("goodbye world"), sum))
}

func TestHexToDigest(t *testing.T) {
	data := []byte("hello world")
	sum := sha1.Sum(data)

	digest, err := HexToDigest(hex.EncodeToString(sum[:]))
	require.NoError(t, err)
	require.Equal(t, sum, digest)

	_, err = HexToDigest("not-hex")
	require.Error(t, err)

	_, err = HexToDigest("abcd")
	require.Error(t, err)
}
