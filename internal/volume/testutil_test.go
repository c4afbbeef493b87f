package volume

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// testGeometry is the fixed BPB used by every synthetic image in this
// package's tests: 512-byte sectors, 1 sector/cluster (so cluster_bytes ==
// bytes_per_sector), 1 reserved sector, 2 FAT copies of 1 sector each, root
// directory starting at cluster 2.
const (
	testBytesPerSector    = 512
	testSectorsPerCluster = 1
	testReservedSectors   = 1
	testFATCount          = 2
	testFATSectors        = 1
	testRootCluster       = 2
	testImageClusters     = 40
)

func newTestImage(t *testing.T) ([]byte, *Volume) {
	t.Helper()

	dataOffset := (testReservedSectors + testFATCount*testFATSectors) * testBytesPerSector
	size := dataOffset + testImageClusters*testBytesPerSector
	img := make([]byte, size)

	binary.LittleEndian.PutUint16(img[offBytesPerSector:], testBytesPerSector)
	img[offSectorsPerCluster] = testSectorsPerCluster
	binary.LittleEndian.PutUint16(img[offReservedSectors:], testReservedSectors)
	img[offFATCount] = testFATCount
	binary.LittleEndian.PutUint32(img[offFAT32Sectors:], testFATSectors)
	binary.LittleEndian.PutUint32(img[offRootCluster:], testRootCluster)
	binary.LittleEndian.PutUint16(img[offBootSignature:], bootSignature)

	backing := NewMemoryBacking(img)
	vol, err := Open(backing)
	require.NoError(t, err)

	return img, vol
}

// writeDirSlotRaw writes an 11-byte name, attr, first-cluster and file-size
// into directory slot index of cluster, via the volume accessors under
// test.
func writeDirSlotRaw(t *testing.T, vol *Volume, cluster uint32, index int, name [11]byte, attr byte, firstCluster, fileSize uint32) {
	t.Helper()

	raw := make([]byte, 32)
	copy(raw[0:11], name[:])
	raw[11] = attr
	binary.LittleEndian.PutUint16(raw[20:22], uint16(firstCluster>>16))
	binary.LittleEndian.PutUint16(raw[26:28], uint16(firstCluster))
	binary.LittleEndian.PutUint32(raw[28:32], fileSize)

	require.NoError(t, vol.WriteDirSlot(cluster, index, raw))
}

func nameBytes(s string) [11]byte {
	var out [11]byte
	for i := range out {
		out[i] = ' '
	}
	copy(out[:], s)
	return out
}
