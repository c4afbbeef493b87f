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

import "encoding/binary"

// Byte offsets of the BIOS Parameter Block fields this package cares about.
// FAT32 only: FAT12/16 BPBs lay out the tail of the block differently and are
// out of scope.
const (
	offBytesPerSector    = 0x0B
	offSectorsPerCluster = 0x0D
	offReservedSectors   = 0x0E
	offFATCount          = 0x10
	offFAT32Sectors      = 0x24
	offRootCluster       = 0x2C
	offBootSignature     = 0x1FE

	bootSectorSize   = 512
	bootSignature    = 0xAA55
	minFATCount      = 1
	maxFATCount      = 4
	minReservedSecs  = 1
	maxClusterBytes  = 32 * 1024
	minRootClusterNo = 2
)

// BootSector holds the fields of the BIOS Parameter Block needed to locate
// the FATs, the root directory and the data area. Fields are decoded
// directly from byte offsets rather than via a Go struct overlay, so the
// decoding stays correct regardless of host struct padding or endianness.
type BootSector struct {
	BytesPerSector    uint16
	SectorsPerCluster uint8
	ReservedSectors   uint16
	FATCount          uint8
	FATSectors        uint32
	RootCluster       uint32
}

// DecodeBootSector parses the first sector of a FAT32 image.
func DecodeBootSector(sector []byte) (*BootSector, error) {
	if len(sector) < bootSectorSize {
		return nil, newError(MalformedBootSector, "boot sector shorter than 512 bytes", nil)
	}

	bs := &BootSector{
		BytesPerSector:    binary.LittleEndian.Uint16(sector[offBytesPerSector:]),
		SectorsPerCluster: sector[offSectorsPerCluster],
		ReservedSectors:   binary.LittleEndian.Uint16(sector[offReservedSectors:]),
		FATCount:          sector[offFATCount],
		FATSectors:        binary.LittleEndian.Uint32(sector[offFAT32Sectors:]),
		RootCluster:       binary.LittleEndian.Uint32(sector[offRootCluster:]),
	}

	if marker := binary.LittleEndian.Uint16(sector[offBootSignature:]); marker != bootSignature {
		return nil, newError(MalformedBootSector, "missing 0xAA55 boot signature", nil)
	}
	if err := bs.validate(); err != nil {
		return nil, err
	}
	return bs, nil
}

func (bs *BootSector) validate() error {
	switch bs.BytesPerSector {
	case 512, 1024, 2048, 4096:
	default:
		return newError(MalformedBootSector, "bytes_per_sector out of range", nil)
	}
	if bs.SectorsPerCluster == 0 || bs.SectorsPerCluster&(bs.SectorsPerCluster-1) != 0 {
		return newError(MalformedBootSector, "sectors_per_cluster not a power of two", nil)
	}
	if bs.clusterBytes() > maxClusterBytes {
		return newError(MalformedBootSector, "cluster size exceeds 32 KiB", nil)
	}
	if bs.ReservedSectors < minReservedSecs {
		return newError(MalformedBootSector, "reserved_sectors is zero", nil)
	}
	if bs.FATCount < minFATCount || bs.FATCount > maxFATCount {
		return newError(MalformedBootSector, "fat_count out of range", nil)
	}
	if bs.FATSectors == 0 {
		return newError(MalformedBootSector, "fat_sectors is zero", nil)
	}
	if bs.RootCluster < minRootClusterNo {
		return newError(MalformedBootSector, "root_cluster below first data cluster", nil)
	}
	return nil
}

func (bs *BootSector) clusterBytes() uint32 {
	return uint32(bs.BytesPerSector) * uint32(bs.SectorsPerCluster)
}

// fat0Offset is the byte offset of the first FAT copy.
func (bs *BootSector) fat0Offset() int64 {
	return int64(bs.ReservedSectors) * int64(bs.BytesPerSector)
}

// fatNOffset is the byte offset of FAT copy n (0-based).
func (bs *BootSector) fatNOffset(n int) int64 {
	fatSpan := int64(bs.FATSectors) * int64(bs.BytesPerSector)
	return bs.fat0Offset() + int64(n)*fatSpan
}

// dataOffset is the byte offset of cluster 2, the first data cluster.
func (bs *BootSector) dataOffset() int64 {
	return bs.fat0Offset() + int64(bs.FATCount)*int64(bs.FATSectors)*int64(bs.BytesPerSector)
}
