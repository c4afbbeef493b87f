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

// SlotKind classifies a 32-byte directory record by its leading name byte
// and, for records that are neither terminators nor tombstones, by its
// attribute byte.
type SlotKind int

const (
	SlotLive SlotKind = iota
	SlotTombstone
	SlotTerminator
	SlotLongName
	SlotSystem // volume label or directory entry
)

const (
	attrLongName  = 0x0F // composite value, not a bitmask
	attrVolume    = 0x08
	attrDirectory = 0x10

	nameTerminator = 0x00
	nameTombstone  = 0xE5
)

// Slot is a reference into a live directory record, sufficient to decode a
// name, read its chain and mutate it in place.
type Slot struct {
	Cluster      uint32
	Index        int
	Kind         SlotKind
	Name         [11]byte
	Attr         byte
	FirstCluster uint32
	FileSize     uint32
}

func classifySlot(cluster uint32, index int, raw []byte) *Slot {
	var name [11]byte
	copy(name[:], raw[0:11])
	attr := raw[11]

	hi := binary.LittleEndian.Uint16(raw[20:22])
	lo := binary.LittleEndian.Uint16(raw[26:28])
	firstCluster := uint32(hi)<<16 | uint32(lo)
	fileSize := binary.LittleEndian.Uint32(raw[28:32])

	kind := SlotLive
	switch {
	case name[0] == nameTerminator:
		kind = SlotTerminator
	case name[0] == nameTombstone:
		kind = SlotTombstone
	case attr == attrLongName:
		kind = SlotLongName
	case attr == attrVolume || attr == attrDirectory:
		kind = SlotSystem
	}

	return &Slot{
		Cluster:      cluster,
		Index:        index,
		Kind:         kind,
		Name:         name,
		Attr:         attr,
		FirstCluster: firstCluster,
		FileSize:     fileSize,
	}
}

// IsFileCandidate reports whether a slot is eligible to be considered a
// deleted-file candidate: tombstoned, and not a long-name component, volume
// label or directory entry. attr==0x10 (directory) is filtered consistently
// here and everywhere else in this package by attribute, never by
// name[0] — see DESIGN.md for why the targeted-mode name[0]==0x10 check
// from the source is not reproduced.
func (s *Slot) IsFileCandidate() bool {
	return s.Kind == SlotTombstone && !s.skipByAttr()
}

// skipByAttr applies the attr-based filter (long-name, volume label,
// directory) independently of the name[0]-based Kind classification, since
// a tombstoned slot's attr byte is still meaningful. Exact equality, not a
// bitmask test, matching fatrec32.c's attr checks.
func (s *Slot) skipByAttr() bool {
	return s.Attr == attrLongName || s.Attr == attrVolume || s.Attr == attrDirectory
}

// IsListable reports whether a live slot belongs in a root directory
// listing: not a long-name component and not a volume label. Directory
// entries ARE listable (the listing marks them with a trailing '/').
func (s *Slot) IsListable() bool {
	if s.Kind == SlotSystem {
		return s.Attr == attrDirectory
	}
	return s.Kind == SlotLive && s.Attr != attrLongName && s.Attr != attrVolume
}

// IsDirectory reports whether a live slot's attr marks it as a directory.
func (s *Slot) IsDirectory() bool {
	return s.Attr == attrDirectory
}

// Scanner walks the root directory chain lazily, one slot at a time,
// mirroring the on-disk iteration order: cluster by cluster along the FAT
// chain, slot by slot within a cluster, stopping early within a cluster on
// a terminator.
type Scanner struct {
	vol             *Volume
	chain           []uint32
	chainIdx        int
	slotIdx         int
	slotsPerCluster int
}

// NewScanner builds a Scanner over the volume's root directory chain.
func NewScanner(vol *Volume) (*Scanner, error) {
	chain, err := vol.RootChain()
	if err != nil {
		return nil, err
	}
	return &Scanner{
		vol:             vol,
		chain:           chain,
		slotsPerCluster: vol.SlotsPerCluster(),
	}, nil
}

// Next returns the next slot in iteration order, or ok=false once the chain
// is exhausted.
func (s *Scanner) Next() (slot *Slot, ok bool, err error) {
	for {
		if s.chainIdx >= len(s.chain) {
			return nil, false, nil
		}
		if s.slotIdx >= s.slotsPerCluster {
			s.chainIdx++
			s.slotIdx = 0
			continue
		}

		cluster := s.chain[s.chainIdx]
		raw, err := s.vol.DirSlot(cluster, s.slotIdx)
		if err != nil {
			return nil, false, err
		}
		index := s.slotIdx
		s.slotIdx++

		slot := classifySlot(cluster, index, raw)
		if slot.Kind == SlotTerminator {
			s.slotIdx = s.slotsPerCluster
		}
		return slot, true, nil
	}
}

// All drains the scanner into a slice; convenience for callers that need
// the whole directory rather than a lazy walk.
func (s *Scanner) All() ([]*Slot, error) {
	var slots []*Slot
	for {
		slot, ok, err := s.Next()
		if err != nil {
			return slots, err
		}
		if !ok {
			return slots, nil
		}
		slots = append(slots, slot)
	}
}
