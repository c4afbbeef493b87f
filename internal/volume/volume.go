// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package volume

import (
	"encoding/binary"
)

// EOCMarker is the canonical end-of-chain value this package writes. Any FAT
// value >= EOCMarker is treated as end-of-chain on read.
const EOCMarker uint32 = 0x0FFFFFF8

// fatEntryBytes is the width of one FAT32 entry.
const fatEntryBytes = 4

// dirEntryBytes is the width of one directory slot.
const dirEntryBytes = 32

// Volume is the byte-addressable view over a FAT32 image, parameterized on
// a Backing rather than a raw pointer: all accessors below go through it.
type Volume struct {
	boot    *BootSector
	backing Backing
}

// Open decodes the boot sector from the first sector read through backing
// and returns a Volume bound to it. Open does not take ownership of backing
// beyond what Close does; callers are expected to Close the Volume when
// finished with the image.
func Open(backing Backing) (*Volume, error) {
	sector := make([]byte, bootSectorSize)
	if _, err := backing.ReadAt(sector, 0); err != nil {
		return nil, newError(VolumeAccessError, "failed to read boot sector", err)
	}

	bs, err := DecodeBootSector(sector)
	if err != nil {
		return nil, err
	}
	return &Volume{boot: bs, backing: backing}, nil
}

// Close releases the underlying backing. The Volume must not be used
// afterward.
func (v *Volume) Close() error {
	return v.backing.Close()
}

// Backing exposes the raw io.ReaderAt a Volume reads through, for callers
// that need direct byte access alongside the decoded view — notably a FUSE
// mount of the live directory.
func (v *Volume) Backing() Backing {
	return v.backing
}

// Boot exposes the decoded geometry for reporting (component "Info").
func (v *Volume) Boot() BootSector { return *v.boot }

// ClusterBytes is the size in bytes of one cluster.
func (v *Volume) ClusterBytes() uint32 {
	return v.boot.clusterBytes()
}

// RootCluster is the first cluster of the root directory chain.
func (v *Volume) RootCluster() uint32 {
	return v.boot.RootCluster
}

// FATCount is the number of FAT copies present on the volume.
func (v *Volume) FATCount() int {
	return int(v.boot.FATCount)
}

// clusterOffset returns the byte offset of cluster (must be >= 2).
func (v *Volume) clusterOffset(cluster uint32) int64 {
	return v.boot.dataOffset() + int64(cluster-2)*int64(v.ClusterBytes())
}

// ClusterOffset exposes clusterOffset for callers outside this package that
// need the flat byte address of a cluster directly — notably a FUSE mount
// of the live directory, which reads file content straight out of the
// backing image under the contiguous-layout assumption of fuse.FileEntry.
func (v *Volume) ClusterOffset(cluster uint32) int64 {
	return v.clusterOffset(cluster)
}

// ClusterData reads the full contents of cluster into a freshly allocated
// slice of length ClusterBytes().
func (v *Volume) ClusterData(cluster uint32) ([]byte, error) {
	buf := make([]byte, v.ClusterBytes())
	if _, err := v.backing.ReadAt(buf, v.clusterOffset(cluster)); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteClusterData overwrites the contents of cluster with data, which must
// be exactly ClusterBytes() long.
func (v *Volume) WriteClusterData(cluster uint32, data []byte) error {
	_, err := v.backing.WriteAt(data, v.clusterOffset(cluster))
	return err
}

// FAT reads the 32-bit entry for cluster from FAT copy n (0-based).
func (v *Volume) FAT(n int, cluster uint32) (uint32, error) {
	buf := make([]byte, fatEntryBytes)
	off := v.boot.fatNOffset(n) + int64(cluster)*fatEntryBytes
	if _, err := v.backing.ReadAt(buf, off); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf) & 0x0FFFFFFF, nil
}

// SetFAT writes value into the entry for cluster in FAT copy n.
func (v *Volume) SetFAT(n int, cluster uint32, value uint32) error {
	buf := make([]byte, fatEntryBytes)
	binary.LittleEndian.PutUint32(buf, value&0x0FFFFFFF)
	off := v.boot.fatNOffset(n) + int64(cluster)*fatEntryBytes
	_, err := v.backing.WriteAt(buf, off)
	return err
}

// IsEOC reports whether a raw FAT entry value denotes end-of-chain.
func IsEOC(entry uint32) bool {
	return entry >= EOCMarker
}

// IsFree reports whether a raw FAT entry value denotes a free cluster.
func IsFree(entry uint32) bool {
	return entry == 0
}

// DirSlot reads the 32-byte directory record at (cluster, index) where index
// is the zero-based slot position within the cluster.
func (v *Volume) DirSlot(cluster uint32, index int) ([]byte, error) {
	buf := make([]byte, dirEntryBytes)
	off := v.clusterOffset(cluster) + int64(index)*dirEntryBytes
	if _, err := v.backing.ReadAt(buf, off); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteDirSlot overwrites the 32-byte directory record at (cluster, index).
func (v *Volume) WriteDirSlot(cluster uint32, index int, slot []byte) error {
	off := v.clusterOffset(cluster) + int64(index)*dirEntryBytes
	_, err := v.backing.WriteAt(slot, off)
	return err
}

// SlotsPerCluster is the number of 32-byte directory slots in one cluster.
func (v *Volume) SlotsPerCluster() int {
	return int(v.ClusterBytes()) / dirEntryBytes
}

// RootChain returns the cluster indices of the root directory chain in
// order, following FAT copy 0 from RootCluster() until EOC or free. The
// directory scanner walks the root directory through it.
func (v *Volume) RootChain() ([]uint32, error) {
	var chain []uint32
	seen := make(map[uint32]bool)

	cur := v.RootCluster()
	for cur >= 2 && !seen[cur] {
		chain = append(chain, cur)
		seen[cur] = true

		next, err := v.FAT(0, cur)
		if err != nil {
			return chain, err
		}
		if IsEOC(next) || IsFree(next) {
			break
		}
		cur = next
	}
	return chain, nil
}
