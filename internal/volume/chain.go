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

import "github.com/noxer/bytewriter"

// ReadFollowingFAT assembles up to nBytes of file content starting at
// cluster start, following FAT copy 0 from cluster to cluster until nBytes
// are assembled or the chain terminates (EOC, free, or a cycle).
//
// A freshly deleted file's FAT links have already been cleared, so in
// practice this reads exactly one cluster for any tombstone whose chain was
// erased — preserved faithfully; see DESIGN.md's Open Question decision 2.
func (v *Volume) ReadFollowingFAT(start uint32, nBytes uint32) ([]byte, error) {
	out := make([]byte, nBytes)
	w := bytewriter.New(out)

	seen := make(map[uint32]bool)
	cur := start
	remaining := nBytes
	for remaining > 0 && cur >= 2 && !seen[cur] {
		seen[cur] = true

		data, err := v.ClusterData(cur)
		if err != nil {
			return out[:len(out)-int(remaining)], err
		}

		take := uint32(len(data))
		if take > remaining {
			take = remaining
		}
		n, err := w.Write(data[:take])
		if err != nil {
			return out[:len(out)-int(remaining)], err
		}
		remaining -= uint32(n)

		next, err := v.FAT(0, cur)
		if err != nil {
			return out[:len(out)-int(remaining)], err
		}
		if IsEOC(next) || IsFree(next) {
			break
		}
		cur = next
	}
	return out[:len(out)-int(remaining)], nil
}

// ReadSequence assembles up to nBytes of file content by concatenating the
// given clusters in order. It never consults the FAT — the sequence is
// externally supplied, as used by the non-contiguous permutation search.
func (v *Volume) ReadSequence(clusters []uint32, nBytes uint32) ([]byte, error) {
	out := make([]byte, nBytes)
	w := bytewriter.New(out)

	remaining := nBytes
	for _, c := range clusters {
		if remaining == 0 {
			break
		}
		data, err := v.ClusterData(c)
		if err != nil {
			return out[:len(out)-int(remaining)], err
		}
		take := uint32(len(data))
		if take > remaining {
			take = remaining
		}
		n, err := w.Write(data[:take])
		if err != nil {
			return out[:len(out)-int(remaining)], err
		}
		remaining -= uint32(n)
	}
	return out[:len(out)-int(remaining)], nil
}

// SynthesizeContiguous returns the cluster indices [start, start+1, ...]
// needed to cover size bytes at clusterBytes per cluster, assuming no
// fragmentation.
func SynthesizeContiguous(start uint32, size uint32, clusterBytes uint32) []uint32 {
	if size == 0 {
		return nil
	}
	n := (size + clusterBytes - 1) / clusterBytes
	chain := make([]uint32, n)
	for i := range chain {
		chain[i] = start + uint32(i)
	}
	return chain
}
