package volume

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenAndBootGeometry(t *testing.T) {
	_, vol := newTestImage(t)
	defer vol.Close()

	boot := vol.Boot()
	require.Equal(t, uint16(testBytesPerSector), boot.BytesPerSector)
	require.Equal(t, uint8(testSectorsPerCluster), boot.SectorsPerCluster)
	require.Equal(t, uint32(testRootCluster), boot.RootCluster)
	require.Equal(t, uint32(testBytesPerSector), vol.ClusterBytes())
	require.Equal(t, 2, vol.FATCount())
}

func TestOpenRejectsMissingBootSignature(t *testing.T) {
	img := make([]byte, 2048)
	backing := NewMemoryBacking(img)
	_, err := Open(backing)
	require.Error(t, err)

	var volErr *Error
	require.ErrorAs(t, err, &volErr)
	require.Equal(t, MalformedBootSector, volErr.Kind)
}

func TestOpenRejectsTruncatedImage(t *testing.T) {
	backing := NewMemoryBacking(make([]byte, 100))
	_, err := Open(backing)
	require.Error(t, err)
}

func TestRootChainFollowsFATLinks(t *testing.T) {
	_, vol := newTestImage(t)

	require.NoError(t, vol.SetFAT(0, testRootCluster, 9))
	require.NoError(t, vol.SetFAT(0, 9, EOCMarker))

	chain, err := vol.RootChain()
	require.NoError(t, err)
	require.Equal(t, []uint32{testRootCluster, 9}, chain)
}

func TestRootChainSingleClusterWhenRootIsFree(t *testing.T) {
	_, vol := newTestImage(t)

	chain, err := vol.RootChain()
	require.NoError(t, err)
	require.Equal(t, []uint32{testRootCluster}, chain)
}

func TestFATReadWriteRoundTrip(t *testing.T) {
	_, vol := newTestImage(t)

	require.NoError(t, vol.SetFAT(0, 15, 0x0FFFFFF8))
	v, err := vol.FAT(0, 15)
	require.NoError(t, err)
	require.True(t, IsEOC(v))

	require.NoError(t, vol.SetFAT(1, 16, 0))
	v2, err := vol.FAT(1, 16)
	require.NoError(t, err)
	require.True(t, IsFree(v2))
}
