// Package datasource implements concrete object.DataSource backends: a
// memory-backed one for composing with data already resident in memory or
// for tests, and a file-backed one grounded on the teacher's io/io.go.
package datasource

import (
	"os"

	"github.com/rolandomar/kodo/coder"
	"github.com/rolandomar/kodo/errs"
)

// Memory is an object.DataSource backed by an in-memory byte slice.
type Memory struct {
	data []byte
}

// NewMemory wraps data as a data source. data is not copied; callers must
// not mutate it while an Encoder built over it is in use.
func NewMemory(data []byte) *Memory {
	return &Memory{data: data}
}

func (m *Memory) Size() int { return len(m.data) }

// Read copies length bytes starting at offset into c's symbol storage. If
// length is shorter than c's block size (the last block's trailing padding,
// per spec.md §4.4 invariant 4), the remainder of c's storage is
// overwritten with zeros. A range that runs past the end of data panics.
func (m *Memory) Read(c *coder.Coder, offset, length int) error {
	if offset < 0 || offset+length > len(m.data) {
		panic("datasource: read range out of bounds")
	}
	buf := make([]byte, c.BlockSize())
	copy(buf, m.data[offset:offset+length])
	c.SetSymbols(buf)
	return nil
}

// File is an object.DataSource backed by an *os.File, grounded on the
// teacher's io/io.go (CreateFile/OpenFile/FileSize/ReadFrom).
type File struct {
	f    *os.File
	size int
}

// OpenFile opens filepath and wraps it as a data source.
func OpenFile(filepath string) (*File, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, errs.Wrap("open file", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errs.Wrap("stat file", err)
	}
	return &File{f: f, size: int(fi.Size())}, nil
}

func (fs *File) Size() int { return fs.size }

// Read seeks to offset and reads length bytes into c's symbol storage.
func (fs *File) Read(c *coder.Coder, offset, length int) error {
	if offset < 0 || offset+length > fs.size {
		panic("datasource: read range out of bounds")
	}
	buf := make([]byte, c.BlockSize())
	if _, err := fs.f.ReadAt(buf[:length], int64(offset)); err != nil {
		return errs.Wrap("read at offset", err)
	}
	c.SetSymbols(buf)
	return nil
}

// Close releases the underlying file handle.
func (fs *File) Close() error {
	return fs.f.Close()
}
