package source

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/sciops/mzml/mzmlerr"
)

// GzipSource streams a .gz file with no seek capability. The index and
// subtree-extraction packages cannot operate against it; every
// random-access request a Reader makes over a GzipSource must fall back to
// a full forward scan of the streaming XML parser instead.
type GzipSource struct {
	path string
}

// NewGzipSource wraps a .gz file path in streaming (non-extracted) mode.
func NewGzipSource(path string) *GzipSource {
	return &GzipSource{path: path}
}

func (g *GzipSource) SupportsRandomAccess() bool { return false }

func (g *GzipSource) Size() (int64, bool) { return 0, false }

func (g *GzipSource) ReadTail(int) ([]byte, error) {
	return nil, fmt.Errorf("%w: gzip stream does not support random access", mzmlerr.ErrUnsupportedFeature)
}

func (g *GzipSource) NewReaderAt(int64) (io.ReadCloser, error) {
	return nil, fmt.Errorf("%w: gzip stream does not support random access", mzmlerr.ErrUnsupportedFeature)
}

// NewTextReader reopens the gzip file from the start and returns a fresh
// decompressing reader. Every call re-reads from byte zero; there is no
// cheaper way to "rewind" a gzip stream.
func (g *GzipSource) NewTextReader() (io.ReadCloser, error) {
	f, err := os.Open(g.path)
	if err != nil {
		return nil, err
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &gzipReadCloser{zr: zr, f: f}, nil
}

func (g *GzipSource) Close() error { return nil }

type gzipReadCloser struct {
	zr *gzip.Reader
	f  *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.zr.Read(p) }

func (g *gzipReadCloser) Close() error {
	err1 := g.zr.Close()
	err2 := g.f.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
