//go:build !windows
// +build !windows

package fs

import "os"

// Open opens path for reading, or reading and writing when writable is
// true. On this platform a plain *os.File already satisfies File.
func Open(path string, writable bool) (File, error) {
	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR
	}
	return os.OpenFile(path, flag, 0)
}
