package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/sciops/mzml/mzmlerr"
)

// PlainFile is a memory-mapped, seekable plain (non-gzip) mzML file,
// modeled on saferwall/pe's file.go: open the file descriptor, mmap it
// read-only, and serve every read from the mapped region. Random-access
// cursors are cheap byte-slice reads rather than fresh syscalls.
type PlainFile struct {
	f        *os.File
	data     mmap.MMap
	textPath string
	tempPath string // non-empty if this file was decompressed from a .gz, removed on Close
}

// OpenPlainFile mmaps path read-only.
func OpenPlainFile(path string) (*PlainFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}

	return &PlainFile{f: f, data: data, textPath: path}, nil
}

func (p *PlainFile) SupportsRandomAccess() bool { return true }

func (p *PlainFile) Size() (int64, bool) { return int64(len(p.data)), true }

func (p *PlainFile) ReadTail(n int) ([]byte, error) {
	size := len(p.data)
	if n > size {
		n = size
	}
	out := make([]byte, n)
	copy(out, p.data[size-n:])
	return out, nil
}

func (p *PlainFile) NewReaderAt(offset int64) (io.ReadCloser, error) {
	if offset < 0 || offset > int64(len(p.data)) {
		return nil, fmt.Errorf("%w: offset %d beyond file length %d", mzmlerr.ErrOutOfRange, offset, len(p.data))
	}
	return io.NopCloser(bytes.NewReader(p.data[offset:])), nil
}

func (p *PlainFile) NewTextReader() (io.ReadCloser, error) {
	f, err := os.Open(p.textPath)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (p *PlainFile) Close() error {
	var errs []error
	if err := p.data.Unmap(); err != nil {
		errs = append(errs, err)
	}
	if err := p.f.Close(); err != nil {
		errs = append(errs, err)
	}
	if p.tempPath != "" {
		if err := os.Remove(p.tempPath); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
