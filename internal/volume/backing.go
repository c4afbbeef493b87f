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
	"fmt"
	"io"
	"sync"

	"github.com/xaionaro-go/bytesextra"
)

// Backing is the owning handle over the mutable byte region of a volume.
// It is the only way the rest of this package touches volume bytes; no code
// outside this file does raw pointer or slice-index arithmetic against the
// image. Three concrete mechanisms satisfy it: a memory-mapped file region,
// an in-memory buffer, and a plain block-device/file handle.
type Backing interface {
	io.ReaderAt
	io.WriterAt
	Close() error
}

// SliceBacking addresses a flat, already-resident byte slice — the region
// returned by a memory-mapped file. Bounds are checked explicitly because
// slicing past the mapped region would panic rather than return io.EOF.
type SliceBacking struct {
	data []byte
	on   func() error
}

// NewSliceBacking wraps data (typically an mmap.MmapFile.Data slice). onClose
// is invoked by Close, typically to unmap and close the underlying file.
func NewSliceBacking(data []byte, onClose func() error) *SliceBacking {
	return &SliceBacking{data: data, on: onClose}
}

func (s *SliceBacking) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(s.data)) {
		return 0, fmt.Errorf("volume: read offset %d out of range", off)
	}
	n := copy(p, s.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (s *SliceBacking) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(len(s.data)) {
		return 0, fmt.Errorf("volume: write [%d,%d) out of range (size %d)", off, off+int64(len(p)), len(s.data))
	}
	return copy(s.data[off:], p), nil
}

func (s *SliceBacking) Close() error {
	if s.on != nil {
		return s.on()
	}
	return nil
}

// SeekerBacking adapts an io.ReadWriteSeeker — notably
// bytesextra.NewReadWriteSeeker over a []byte — to the ReadAt/WriteAt shape
// Backing requires, serializing Seek+Read/Write pairs with a mutex since
// ReadWriteSeeker carries implicit cursor state that ReaderAt/WriterAt must
// not expose.
type SeekerBacking struct {
	mu  sync.Mutex
	rws io.ReadWriteSeeker
	on  func() error
}

func NewSeekerBacking(rws io.ReadWriteSeeker, onClose func() error) *SeekerBacking {
	return &SeekerBacking{rws: rws, on: onClose}
}

// NewMemoryBacking creates an in-memory Backing over buf, the concrete
// realization of the "in-memory buffer" I/O mechanism.
func NewMemoryBacking(buf []byte) *SeekerBacking {
	return NewSeekerBacking(bytesextra.NewReadWriteSeeker(buf), nil)
}

func (s *SeekerBacking) ReadAt(p []byte, off int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.rws.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	return io.ReadFull(s.rws, p)
}

func (s *SeekerBacking) WriteAt(p []byte, off int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.rws.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	return s.rws.Write(p)
}

func (s *SeekerBacking) Close() error {
	if s.on != nil {
		return s.on()
	}
	return nil
}
