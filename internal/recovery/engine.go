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
	"encoding/hex"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/nullhaus/fat32recover/internal/volume"
)

// Default heuristic constants from the source, exposed as configuration
// per DESIGN.md's Open Question decision 3.
const (
	DefaultMaxFragments  = 5
	DefaultFreeScanLimit = 20
)

// Options parameterizes the search bounds and ambiguity policy of the
// engine, rather than embedding the source's constants.
type Options struct {
	MaxFragments    int
	FreeScanLimit   uint32
	StrictAmbiguous bool
}

// DefaultOptions returns the heuristic bounds observed in the source.
func DefaultOptions() Options {
	return Options{
		MaxFragments:  DefaultMaxFragments,
		FreeScanLimit: DefaultFreeScanLimit,
	}
}

// Engine orchestrates the three recovery modes over a single volume.
type Engine struct {
	vol  *volume.Volume
	opts Options
}

// New binds an Engine to an already-open volume.
func New(vol *volume.Volume, opts Options) *Engine {
	return &Engine{vol: vol, opts: opts}
}

// ValidateRequest performs the usage-error checks the source makes before
// ever touching the image: empty filename, malformed hex digest, and a
// missing digest where one is required (permutation mode). Callers run
// this before volume.Open, per SPEC_FULL.md §8's supplemented
// usage-validation ordering.
func ValidateRequest(name string, digestHex string, digestRequired bool) error {
	if name == "" {
		return newError(UsageError, "filename must not be empty")
	}
	if digestHex == "" {
		if digestRequired {
			return newError(UsageError, "a SHA-1 digest is required for fragmented recovery")
		}
		return nil
	}
	if len(digestHex) != hex.EncodedLen(volume.DigestSize) {
		return newError(UsageError, fmt.Sprintf("digest must be %d hex characters", hex.EncodedLen(volume.DigestSize)))
	}
	if _, err := volume.HexToDigest(digestHex); err != nil {
		return newError(UsageError, "invalid hex digest")
	}
	return nil
}

// GeometryInfo is the data behind the Info command.
type GeometryInfo struct {
	FATCount          int
	BytesPerSector    uint16
	SectorsPerCluster uint8
	ReservedSectors   uint16
	RootCluster       uint32
}

// Info reports volume geometry.
func (e *Engine) Info() GeometryInfo {
	boot := e.vol.Boot()
	return GeometryInfo{
		FATCount:          e.vol.FATCount(),
		BytesPerSector:    boot.BytesPerSector,
		SectorsPerCluster: boot.SectorsPerCluster,
		ReservedSectors:   boot.ReservedSectors,
		RootCluster:       boot.RootCluster,
	}
}

// ListEntry is one live root-directory entry.
type ListEntry struct {
	Name         string
	IsDir        bool
	Size         uint32
	StartCluster uint32
}

// List enumerates the live root directory entries.
func (e *Engine) List() ([]ListEntry, error) {
	scanner, err := volume.NewScanner(e.vol)
	if err != nil {
		return nil, err
	}

	var entries []ListEntry
	for {
		slot, ok, err := scanner.Next()
		if err != nil {
			return entries, err
		}
		if !ok {
			break
		}
		if !slot.IsListable() {
			continue
		}
		entries = append(entries, ListEntry{
			Name:         volume.DisplayName(slot.Name),
			IsDir:        slot.IsDirectory(),
			Size:         slot.FileSize,
			StartCluster: slot.FirstCluster,
		})
	}
	return entries, nil
}

// SingleResult is the outcome of RecoverOne / RecoverPossiblyFragmented.
type SingleResult struct {
	Name       string
	Recovered  bool
	WithDigest bool
	Ambiguous  bool
}

// matchingTombstones returns every tombstoned file-candidate slot whose
// reconstructed name equals target, in discovery order.
func (e *Engine) matchingTombstones(target string) ([]*volume.Slot, error) {
	scanner, err := volume.NewScanner(e.vol)
	if err != nil {
		return nil, err
	}

	var matches []*volume.Slot
	for {
		slot, ok, err := scanner.Next()
		if err != nil {
			return matches, err
		}
		if !ok {
			return matches, nil
		}
		if !slot.IsFileCandidate() {
			continue
		}
		if volume.NameMatches(slot.Name, target) {
			matches = append(matches, slot)
		}
	}
}

// commitContiguous synthesizes and writes a contiguous chain for slot, then
// restores its tombstone.
func (e *Engine) commitContiguous(slot *volume.Slot, firstChar byte) error {
	chain := volume.SynthesizeContiguous(slot.FirstCluster, slot.FileSize, e.vol.ClusterBytes())
	if len(chain) > 0 {
		if err := e.vol.CommitChain(chain); err != nil {
			return err
		}
	}
	return e.vol.RestoreTombstone(slot, firstChar)
}

// RecoverOne implements Mode 1 (no digest) and the contiguous submode of
// Mode 2 (digest supplied).
func (e *Engine) RecoverOne(target string, digestHex string) (*SingleResult, error) {
	matches, err := e.matchingTombstones(target)
	if err != nil {
		return nil, err
	}

	if digestHex == "" {
		return e.recoverContiguousNoDigest(target, matches)
	}
	return e.recoverContiguousWithDigest(target, digestHex, matches)
}

func (e *Engine) recoverContiguousNoDigest(target string, matches []*volume.Slot) (*SingleResult, error) {
	if len(matches) == 0 {
		return &SingleResult{Name: target, Recovered: false}, nil
	}

	chosen := matches[0]
	ambiguous := len(matches) > 1
	if ambiguous && e.opts.StrictAmbiguous {
		return nil, newError(AmbiguousCandidates, fmt.Sprintf("%d candidates match %q", len(matches), target))
	}

	if err := e.commitContiguous(chosen, target[0]); err != nil {
		return nil, err
	}
	return &SingleResult{Name: target, Recovered: true, Ambiguous: ambiguous}, nil
}

func (e *Engine) recoverContiguousWithDigest(target string, digestHex string, matches []*volume.Slot) (*SingleResult, error) {
	digest, err := volume.HexToDigest(digestHex)
	if err != nil {
		return nil, newError(UsageError, "invalid hex digest")
	}

	var verified []*volume.Slot
	for _, slot := range matches {
		data, err := e.vol.ReadFollowingFAT(slot.FirstCluster, slot.FileSize)
		if err != nil {
			continue
		}
		if volume.Verify(data, digest) {
			verified = append(verified, slot)
		}
	}

	if len(verified) == 0 {
		return &SingleResult{Name: target, Recovered: false}, nil
	}

	chosen := verified[0]
	ambiguous := len(verified) > 1
	if ambiguous && e.opts.StrictAmbiguous {
		return nil, newError(AmbiguousCandidates, fmt.Sprintf("%d candidates verified for %q", len(verified), target))
	}

	if err := e.commitContiguous(chosen, target[0]); err != nil {
		return nil, err
	}
	return &SingleResult{Name: target, Recovered: true, WithDigest: true, Ambiguous: ambiguous}, nil
}

// RecoverPossiblyFragmented implements the non-contiguous permutation
// submode of Mode 2. A digest is required.
func (e *Engine) RecoverPossiblyFragmented(target string, digestHex string) (*SingleResult, error) {
	if digestHex == "" {
		return nil, newError(UsageError, "a SHA-1 digest is required for fragmented recovery")
	}
	digest, err := volume.HexToDigest(digestHex)
	if err != nil {
		return nil, newError(UsageError, "invalid hex digest")
	}

	matches, err := e.matchingTombstones(target)
	if err != nil {
		return nil, err
	}

	var verified []*volume.Slot
	var verifiedChain []uint32
	for _, slot := range matches {
		chain, ok, err := e.findVerifiedPermutation(slot, digest)
		if err != nil {
			return nil, err
		}
		if ok {
			verified = append(verified, slot)
			if verifiedChain == nil {
				verifiedChain = chain
			}
		}
	}

	if len(verified) == 0 {
		return &SingleResult{Name: target, Recovered: false}, nil
	}

	chosen := verified[0]
	ambiguous := len(verified) > 1
	if ambiguous && e.opts.StrictAmbiguous {
		return nil, newError(AmbiguousCandidates, fmt.Sprintf("%d candidates verified for %q", len(verified), target))
	}

	if err := e.vol.CommitChain(verifiedChain); err != nil {
		return nil, err
	}
	if err := e.vol.RestoreTombstone(chosen, target[0]); err != nil {
		return nil, err
	}
	return &SingleResult{Name: target, Recovered: true, WithDigest: true, Ambiguous: ambiguous}, nil
}

// findVerifiedPermutation searches every ordering of the first k free
// clusters (k = ceil(size/cluster_bytes)) for one whose concatenated bytes
// match digest.
func (e *Engine) findVerifiedPermutation(slot *volume.Slot, digest [volume.DigestSize]byte) ([]uint32, bool, error) {
	clusterBytes := e.vol.ClusterBytes()
	k := int((slot.FileSize + clusterBytes - 1) / clusterBytes)
	if k == 0 {
		return nil, false, nil
	}
	if k > e.opts.MaxFragments {
		return nil, false, newError(PermutationUnresolved, fmt.Sprintf("file requires %d clusters, exceeds bound %d", k, e.opts.MaxFragments))
	}

	candidates, err := FindFreeClusters(e.vol, k, e.opts.FreeScanLimit)
	if err != nil {
		return nil, false, nil // no usable free clusters: treated as RecoveryNotFound by caller
	}

	perm := append([]uint32{}, candidates...)
	for {
		data, err := e.vol.ReadSequence(perm, slot.FileSize)
		if err != nil {
			return nil, false, err
		}
		if volume.Verify(data, digest) {
			return append([]uint32{}, perm...), true, nil
		}
		if !NextPermutation(perm) {
			break
		}
	}
	return nil, false, nil
}

// BulkByNameResult is the outcome of RecoverAllByName.
type BulkByNameResult struct {
	Name  string
	Count int
}

// RecoverAllByName implements Mode 3's by-name variant: every
// name-matching tombstone is recovered, in discovery order.
func (e *Engine) RecoverAllByName(target string) (*BulkByNameResult, error) {
	matches, err := e.matchingTombstones(target)
	if err != nil {
		return nil, err
	}

	var errs *multierror.Error
	count := 0
	for _, slot := range matches {
		if err := e.commitContiguous(slot, target[0]); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("slot %d/%d: %w", slot.Cluster, slot.Index, err))
			continue
		}
		count++
	}
	return &BulkByNameResult{Name: target, Count: count}, errs.ErrorOrNil()
}

// RecoveredFile is one file recovered in bulk-all mode.
type RecoveredFile struct {
	Name string
}

// BulkAllResult is the outcome of RecoverAllDeleted.
type BulkAllResult struct {
	Files []RecoveredFile
}

const bulkAllFirstChar = '_'

// RecoverAllDeleted implements Mode 3's all-deleted variant: every
// tombstone, regardless of name, is reconstructed with '_' substituted for
// the erased first character. A tombstone with file_size == 0 or
// first_cluster < 2 is reported but its FAT is left untouched.
func (e *Engine) RecoverAllDeleted() (*BulkAllResult, error) {
	scanner, err := volume.NewScanner(e.vol)
	if err != nil {
		return nil, err
	}

	var errs *multierror.Error
	result := &BulkAllResult{}
	for {
		slot, ok, err := scanner.Next()
		if err != nil {
			return result, err
		}
		if !ok {
			break
		}
		if !slot.IsFileCandidate() {
			continue
		}

		name := volume.DecodeName(slot.Name, bulkAllFirstChar)
		if slot.FileSize == 0 || slot.FirstCluster < 2 {
			result.Files = append(result.Files, RecoveredFile{Name: name})
			if err := e.vol.RestoreTombstone(slot, bulkAllFirstChar); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", name, err))
			}
			continue
		}

		if err := e.commitContiguous(slot, bulkAllFirstChar); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		result.Files = append(result.Files, RecoveredFile{Name: name})
	}
	return result, errs.ErrorOrNil()
}
