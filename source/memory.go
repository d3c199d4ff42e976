package source

import (
	"bytes"
	"fmt"
	"io"

	"github.com/sciops/mzml/mzmlerr"
)

// MemorySource serves reads from an owned in-memory byte buffer. New
// cursors are cheap re-slices rather than file opens, so the indexer and
// extractor can open and drop them freely.
type MemorySource struct {
	data []byte
}

// NewMemorySource wraps data. It takes ownership of the slice; callers
// must not mutate it afterward.
func NewMemorySource(data []byte) *MemorySource {
	return &MemorySource{data: data}
}

func (m *MemorySource) SupportsRandomAccess() bool { return true }

func (m *MemorySource) Size() (int64, bool) { return int64(len(m.data)), true }

func (m *MemorySource) ReadTail(n int) ([]byte, error) {
	size := len(m.data)
	if n > size {
		n = size
	}
	out := make([]byte, n)
	copy(out, m.data[size-n:])
	return out, nil
}

func (m *MemorySource) NewReaderAt(offset int64) (io.ReadCloser, error) {
	if offset < 0 || offset > int64(len(m.data)) {
		return nil, fmt.Errorf("%w: offset %d beyond buffer length %d", mzmlerr.ErrOutOfRange, offset, len(m.data))
	}
	return io.NopCloser(bytes.NewReader(m.data[offset:])), nil
}

func (m *MemorySource) NewTextReader() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.data)), nil
}

func (m *MemorySource) Close() error { return nil }
