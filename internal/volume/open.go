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

	"github.com/nullhaus/fat32recover/internal/disk"
)

// OpenPath opens a regular file or block device at path and returns a
// decoded Volume over it. writable selects read-write access; a read-only
// caller (e.g. the info or mount commands) should pass false so a
// mounted, in-use device is never risked. The underlying open mechanism
// (openHandle) is platform-specific: a plain *os.File on POSIX, a raw
// CreateFile handle on Windows so physical drives are addressable.
func OpenPath(path string, writable bool) (*Volume, error) {
	path = disk.NormalizeVolumePath(path)

	backing, err := openHandle(path, writable)
	if err != nil {
		return nil, newError(VolumeAccessError, fmt.Sprintf("opening %s", path), err)
	}

	vol, err := Open(backing)
	if err != nil {
		backing.Close()
		return nil, err
	}
	return vol, nil
}
