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
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/nullhaus/fat32recover/internal/logger"
	"github.com/nullhaus/fat32recover/internal/mmap"
	"github.com/nullhaus/fat32recover/internal/recovery"
	"github.com/nullhaus/fat32recover/internal/volume"
)

// ioMode selects which Backing realization the CLI drives, one flag
// argument per concrete mechanism spec.md §1 names.
type ioMode string

const (
	ioFile   ioMode = "file"
	ioMmap   ioMode = "mmap"
	ioMemory ioMode = "memory"
)

var log = logger.New(os.Stderr, logger.InfoLevel)

// openVolume opens image according to mode. info and mount pass
// writable=false; list (which mirrors the original's read-write -l open, per
// SPEC_FULL.md §8.2) and every recovery mode pass true.
//
// --io=memory loads the whole image into a buffer and never writes it back;
// it exists for inspection and for exercising the in-memory Backing from the
// command line. The recover* commands accept it as well: under it a recovery
// changes only the in-memory copy and the image file is left as it was.
func openVolume(imagePath string, mode ioMode, writable bool) (*volume.Volume, error) {
	switch mode {
	case ioMmap:
		return openMmapVolume(imagePath, writable)
	case ioMemory:
		return openMemoryVolume(imagePath)
	case ioFile, "":
		return volume.OpenPath(imagePath, writable)
	default:
		return nil, fmt.Errorf("unknown --io mode %q", mode)
	}
}

func openMmapVolume(imagePath string, writable bool) (*volume.Volume, error) {
	var (
		mf  *mmap.MmapFile
		err error
	)
	if writable {
		mf, err = mmap.NewWritableMmapFileRegion(imagePath, 0, 0)
	} else {
		mf, err = mmap.NewMmapFileRegion(imagePath, 0, 0)
	}
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", imagePath, err)
	}
	return volume.Open(mf.Backing())
}

func openMemoryVolume(imagePath string) (*volume.Volume, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", imagePath, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s into memory: %w", imagePath, err)
	}
	return volume.Open(volume.NewMemoryBacking(data))
}

func newEngine(vol *volume.Volume, maxFragments int, freeScanLimit uint32, strictAmbiguous bool) *recovery.Engine {
	opts := recovery.DefaultOptions()
	if maxFragments > 0 {
		opts.MaxFragments = maxFragments
	}
	if freeScanLimit > 0 {
		opts.FreeScanLimit = freeScanLimit
	}
	opts.StrictAmbiguous = strictAmbiguous
	return recovery.New(vol, opts)
}
