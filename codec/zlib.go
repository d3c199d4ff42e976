package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/sciops/mzml/mzmlerr"
)

// Zlib decompresses and compresses DEFLATE-with-zlib-headers payloads, the
// scheme mzML's MS:1000574 compression accession names.
type Zlib struct{}

// Decompress inflates a zlib-framed payload.
func (Zlib) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", mzmlerr.ErrCodec, err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", mzmlerr.ErrCodec, err)
	}

	return out, nil
}

// Compress deflates data with a zlib header, for round-trip testing.
func (Zlib) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", mzmlerr.ErrCodec, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", mzmlerr.ErrCodec, err)
	}

	return buf.Bytes(), nil
}
