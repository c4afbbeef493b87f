package recovery

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nullhaus/fat32recover/internal/volume"
)

// Fixed BPB mirrored from internal/volume's own test fixture: 512-byte
// sectors, 1 sector/cluster, 2 FAT copies of 1 sector each, root directory
// at cluster 2. Offsets duplicated here rather than imported since they are
// unexported constants of internal/volume.
const (
	bytesPerSector    = 512
	sectorsPerCluster = 1
	reservedSectors   = 1
	fatCount          = 2
	fatSectors        = 1
	rootCluster       = 2
	imageClusters     = 64

	offBytesPerSector    = 0x0B
	offSectorsPerCluster = 0x0D
	offReservedSectors   = 0x0E
	offFATCount          = 0x10
	offFAT32Sectors      = 0x24
	offRootCluster       = 0x2C
	offBootSignature     = 0x1FE
	bootSignature        = 0xAA55
)

func newTestVolume(t *testing.T) *volume.Volume {
	t.Helper()

	dataOffset := (reservedSectors + fatCount*fatSectors) * bytesPerSector
	size := dataOffset + imageClusters*bytesPerSector
	img := make([]byte, size)

	binary.LittleEndian.PutUint16(img[offBytesPerSector:], bytesPerSector)
	img[offSectorsPerCluster] = sectorsPerCluster
	binary.LittleEndian.PutUint16(img[offReservedSectors:], reservedSectors)
	img[offFATCount] = fatCount
	binary.LittleEndian.PutUint32(img[offFAT32Sectors:], fatSectors)
	binary.LittleEndian.PutUint32(img[offRootCluster:], rootCluster)
	binary.LittleEndian.PutUint16(img[offBootSignature:], bootSignature)

	backing := volume.NewMemoryBacking(img)
	vol, err := volume.Open(backing)
	require.NoError(t, err)
	return vol
}

func nameBytes(s string) [11]byte {
	var out [11]byte
	for i := range out {
		out[i] = ' '
	}
	copy(out[:], s)
	return out
}

// writeSlot writes an 11-byte name, attr, first-cluster and file-size into
// directory slot index of cluster.
func writeSlot(t *testing.T, vol *volume.Volume, cluster uint32, index int, name [11]byte, attr byte, firstCluster, fileSize uint32) {
	t.Helper()

	raw := make([]byte, 32)
	copy(raw[0:11], name[:])
	raw[11] = attr
	binary.LittleEndian.PutUint16(raw[20:22], uint16(firstCluster>>16))
	binary.LittleEndian.PutUint16(raw[26:28], uint16(firstCluster))
	binary.LittleEndian.PutUint32(raw[28:32], fileSize)

	require.NoError(t, vol.WriteDirSlot(cluster, index, raw))
}

// writeTerminator marks the directory slot at index as the end-of-directory
// marker (all-zero name).
func writeTerminator(t *testing.T, vol *volume.Volume, cluster uint32, index int) {
	t.Helper()
	writeSlot(t, vol, cluster, index, [11]byte{}, 0, 0, 0)
}
