//go:build !windows
// +build !windows

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
	"os"
	"strings"
	"syscall"
)

// openHandle opens path as a plain file or block device. The first attempt
// is exclusive; a mounted volume or a device already claimed elsewhere
// fails that with EBUSY/EPERM/EINVAL, in which case the open is retried
// without O_EXCL so the caller can still work read-write against a live
// device.
func openHandle(path string, writable bool) (Backing, error) {
	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR
	}

	f, err := os.OpenFile(path, flag|syscall.O_EXCL, 0)
	if err == nil {
		return f, nil
	}
	if !isRetryableExclusiveError(err) {
		return nil, err
	}
	return os.OpenFile(path, flag, 0)
}

func isRetryableExclusiveError(err error) bool {
	return os.IsPermission(err) ||
		strings.Contains(err.Error(), "resource busy") ||
		strings.Contains(err.Error(), "invalid argument")
}
