package numpress

import (
	"fmt"
	"math"

	"github.com/sciops/mzml/mzmlerr"
)

// EncodePIC implements MS-Numpress positive-integer compression: each value
// is rounded to the nearest non-negative integer and halfbyte-coded with no
// header and no further prediction. The element count is implied by the
// stream, as in linear.
func EncodePIC(data []float64) ([]byte, error) {
	w := &halfByteWriter{}
	for i, v := range data {
		if v < 0 {
			return nil, fmt.Errorf("%w: numpress pic: negative value %v at index %d", mzmlerr.ErrCodec, v, i)
		}
		rounded := v + 0.5
		if rounded > math.MaxUint32 {
			return nil, fmt.Errorf("%w: numpress pic: value overflow at index %d", mzmlerr.ErrCodec, i)
		}
		encodeInt(w, uint32(rounded))
	}
	return w.bytes(), nil
}

// DecodePIC reverses EncodePIC, running until the halfbyte stream is
// exhausted and skipping a final 0x0 pad halfbyte.
func DecodePIC(data []byte) ([]float64, error) {
	r := newHalfByteReader(data)

	var out []float64
	for r.remaining() > 0 {
		if r.atTrailingPad() {
			break
		}
		x, err := decodeInt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: numpress pic: %v", mzmlerr.ErrCodec, err)
		}
		out = append(out, float64(x))
	}

	return out, nil
}
