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

import "fmt"

// CommitChain writes chain into every FAT copy: fat(n, chain[i]) = chain[i+1]
// for i < len(chain)-1, and fat(n, chain[last]) = EOCMarker. A single-cluster
// chain writes only the EOC marker. Free-cluster marks elsewhere and FSInfo
// are untouched.
//
// Ordering requirement: a recovery is only considered committed once every
// FAT copy has been updated. If the process dies between copies the backup
// FAT diverges — this utility makes no recovery-from-crash guarantee.
func (v *Volume) CommitChain(chain []uint32) error {
	if len(chain) == 0 {
		return fmt.Errorf("volume: cannot commit an empty chain")
	}

	for n := 0; n < v.FATCount(); n++ {
		for i := 0; i < len(chain)-1; i++ {
			if err := v.SetFAT(n, chain[i], chain[i+1]); err != nil {
				return fmt.Errorf("volume: commit chain: fat copy %d cluster %d: %w", n, chain[i], err)
			}
		}
		last := chain[len(chain)-1]
		if err := v.SetFAT(n, last, EOCMarker); err != nil {
			return fmt.Errorf("volume: commit chain: fat copy %d cluster %d: %w", n, last, err)
		}
	}
	return nil
}

// RestoreTombstone overwrites the leading byte of a directory slot's name,
// undoing the 0xE5 tombstone marker.
func (v *Volume) RestoreTombstone(slot *Slot, firstChar byte) error {
	raw, err := v.DirSlot(slot.Cluster, slot.Index)
	if err != nil {
		return err
	}
	raw[0] = firstChar
	if err := v.WriteDirSlot(slot.Cluster, slot.Index, raw); err != nil {
		return err
	}
	slot.Name[0] = firstChar
	return nil
}
