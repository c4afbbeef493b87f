package volume

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSynthesizeContiguous(t *testing.T) {
	require.Equal(t, []uint32(nil), SynthesizeContiguous(5, 0, 512))
	require.Equal(t, []uint32{5}, SynthesizeContiguous(5, 100, 512))
	require.Equal(t, []uint32{5}, SynthesizeContiguous(5, 512, 512))
	require.Equal(t, []uint32{5, 6, 7}, SynthesizeContiguous(5, 1025, 512))
}

func TestReadFollowingFATStopsWhenChainIsErased(t *testing.T) {
	_, vol := newTestImage(t)

	data := make([]byte, vol.ClusterBytes())
	copy(data, []byte("hello world"))
	require.NoError(t, vol.WriteClusterData(5, data))
	// FAT entry for cluster 5 left at zero (free), as a freshly deleted
	// file's chain would be.

	got, err := vol.ReadFollowingFAT(5, 11)
	require.NoError(t, err)
	require.Equal(t, []byte("hello world"), got)
}

func TestReadFollowingFATFollowsLiveLinks(t *testing.T) {
	_, vol := newTestImage(t)

	c1 := make([]byte, vol.ClusterBytes())
	copy(c1, []byte("AAAA"))
	c2 := make([]byte, vol.ClusterBytes())
	copy(c2, []byte("BBBB"))
	require.NoError(t, vol.WriteClusterData(10, c1))
	require.NoError(t, vol.WriteClusterData(11, c2))
	require.NoError(t, vol.SetFAT(0, 10, 11))
	require.NoError(t, vol.SetFAT(0, 11, EOCMarker))

	got, err := vol.ReadFollowingFAT(10, vol.ClusterBytes()+4)
	require.NoError(t, err)
	require.Equal(t, "AAAA", string(got[:4]))
	require.Equal(t, "BBBB", string(got[vol.ClusterBytes():vol.ClusterBytes()+4]))
}

func TestReadSequenceIgnoresFAT(t *testing.T) {
	_, vol := newTestImage(t)

	c4 := make([]byte, vol.ClusterBytes())
	copy(c4, []byte("SECOND"))
	c7 := make([]byte, vol.ClusterBytes())
	copy(c7, []byte("FIRST"))
	require.NoError(t, vol.WriteClusterData(4, c4))
	require.NoError(t, vol.WriteClusterData(7, c7))
	// FAT left untouched/zero for both clusters.

	got, err := vol.ReadSequence([]uint32{7, 4}, 2*vol.ClusterBytes())
	require.NoError(t, err)
	require.Equal(t, "FIRST", string(got[:5]))
	require.Equal(t, "SECOND", string(got[vol.ClusterBytes():vol.ClusterBytes()+6]))
}
