package fs

import (
	"io"
	"os"
)

type File interface {
	io.ReadCloser
	io.ReaderAt
	io.WriterAt
	Stat() (os.FileInfo, error)
}
