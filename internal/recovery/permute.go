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
package recovery

import (
	"fmt"

	bitmap "github.com/boljen/go-bitmap"

	"github.com/nullhaus/fat32recover/internal/volume"
)

// NextPermutation advances a to its lexicographic successor in place and
// reports whether one existed. Standard algorithm: find the largest index i
// such that a[i-1] < a[i]; find the largest index j such that a[j] > a[i-1];
// swap a[i-1] and a[j]; reverse the suffix starting at i. Returns false
// (leaving a unchanged) once a is in reverse-sorted order.
func NextPermutation(a []uint32) bool {
	n := len(a)
	i := n - 1
	for i > 0 && a[i-1] >= a[i] {
		i--
	}
	if i <= 0 {
		return false
	}

	j := n - 1
	for a[j] <= a[i-1] {
		j--
	}
	a[i-1], a[j] = a[j], a[i-1]

	for l, r := i, n-1; l < r; l, r = l+1, r-1 {
		a[l], a[r] = a[r], a[l]
	}
	return true
}

// FindFreeClusters returns the first k free clusters found scanning FAT
// copy 0 from cluster 2 up to (not including) scanLimit. A cluster is free
// iff its FAT entry is zero. The scan window is cached in a bitmap rather
// than re-probed per permutation attempt.
func FindFreeClusters(vol *volume.Volume, k int, scanLimit uint32) ([]uint32, error) {
	if scanLimit < 2 {
		return nil, fmt.Errorf("recovery: free-cluster scan limit must exceed 2")
	}

	free := bitmap.New(int(scanLimit))
	for c := uint32(2); c < scanLimit; c++ {
		entry, err := vol.FAT(0, c)
		if err != nil {
			return nil, err
		}
		free.Set(int(c), volume.IsFree(entry))
	}

	var clusters []uint32
	for c := 2; c < int(scanLimit) && len(clusters) < k; c++ {
		if free.Get(c) {
			clusters = append(clusters, uint32(c))
		}
	}
	if len(clusters) < k {
		return nil, fmt.Errorf("recovery: found only %d free clusters in [2,%d), need %d", len(clusters), scanLimit, k)
	}
	return clusters, nil
}
