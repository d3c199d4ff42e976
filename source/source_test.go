package source

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?><mzML id="x"></mzML>`

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func writeTempGzip(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := gzip.NewWriter(f)
	_, err = zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}

func TestPlainFile_RandomAccess(t *testing.T) {
	path := writeTemp(t, "doc.mzML", []byte(sampleDoc))

	src, err := OpenPlainFile(path)
	require.NoError(t, err)
	defer src.Close()

	assert.True(t, src.SupportsRandomAccess())
	size, ok := src.Size()
	require.True(t, ok)
	assert.Equal(t, int64(len(sampleDoc)), size)

	tail, err := src.ReadTail(6)
	require.NoError(t, err)
	assert.Equal(t, "mzML>", string(tail[1:]))

	r, err := src.NewReaderAt(5)
	require.NoError(t, err)
	defer r.Close()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, sampleDoc[5:], string(got))
}

func TestMemorySource_RandomAccess(t *testing.T) {
	src := NewMemorySource([]byte(sampleDoc))
	assert.True(t, src.SupportsRandomAccess())

	r, err := src.NewReaderAt(0)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, sampleDoc, string(got))
}

func TestGzipSource_NoRandomAccess(t *testing.T) {
	path := writeTempGzip(t, "doc.mzML.gz", []byte(sampleDoc))
	src := NewGzipSource(path)

	assert.False(t, src.SupportsRandomAccess())
	_, err := src.ReadTail(10)
	require.Error(t, err)

	r, err := src.NewTextReader()
	require.NoError(t, err)
	defer r.Close()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, sampleDoc, string(got))
}

func TestOpen_GzipExtractToPlainFile(t *testing.T) {
	path := writeTempGzip(t, "doc.mzML.gz", []byte(sampleDoc))

	src, err := Open(path, true, true)
	require.NoError(t, err)
	defer src.Close()

	assert.True(t, src.SupportsRandomAccess())
	r, err := src.NewReaderAt(0)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, sampleDoc, string(got))
}

func TestOpen_GzipInMemoryNoExtract(t *testing.T) {
	path := writeTempGzip(t, "doc.mzML.gz", []byte(sampleDoc))

	src, err := Open(path, false, true)
	require.NoError(t, err)
	defer src.Close()

	assert.True(t, src.SupportsRandomAccess())
}

func TestOpen_GzipStreaming(t *testing.T) {
	path := writeTempGzip(t, "doc.mzML.gz", []byte(sampleDoc))

	src, err := Open(path, false, false)
	require.NoError(t, err)
	defer src.Close()

	assert.False(t, src.SupportsRandomAccess())
}

func TestDetectEncoding(t *testing.T) {
	enc, err := DetectEncoding(bufio.NewReader(strings.NewReader(sampleDoc)))
	require.NoError(t, err)
	assert.Equal(t, "UTF-8", enc)

	enc, err = DetectEncoding(bufio.NewReader(strings.NewReader("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<mzML/>")))
	require.NoError(t, err)
	assert.Equal(t, "ISO-8859-1", enc)

	enc, err = DetectEncoding(bufio.NewReader(strings.NewReader("<mzML/>")))
	require.NoError(t, err)
	assert.Equal(t, "UTF-8", enc)
}

func TestDetectEncoding_PreservesStreamForSubsequentRead(t *testing.T) {
	br := bufio.NewReader(strings.NewReader(sampleDoc))
	_, err := DetectEncoding(br)
	require.NoError(t, err)

	rest, err := io.ReadAll(br)
	require.NoError(t, err)
	assert.Equal(t, sampleDoc, string(rest))
}

func TestIsEncodingSupported(t *testing.T) {
	assert.True(t, IsEncodingSupported("UTF-8"))
	assert.True(t, IsEncodingSupported("utf8"))
	assert.True(t, IsEncodingSupported("US-ASCII"))
	assert.True(t, IsEncodingSupported(""))
	assert.False(t, IsEncodingSupported("ISO-8859-1"))
	assert.False(t, IsEncodingSupported("Shift_JIS"))
}
