package numpress

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeInt_ReferenceByteLayout(t *testing.T) {
	cases := []struct {
		x    uint32
		want []byte
	}{
		// head 7 (seven leading zero halfbytes), one data halfbyte.
		{0x3, []byte{0x73}},
		// head 8: zero needs no data halfbytes; low nibble is padding.
		{0x0, []byte{0x80}},
		// -1: head 15 (seven leading 0xF halfbytes), one data halfbyte.
		{0xFFFFFFFF, []byte{0xFF}},
		// No leading run at all: head 0 plus all eight halfbytes,
		// least-significant-first.
		{0x12345678, []byte{0x08, 0x76, 0x54, 0x32, 0x10}},
	}

	for _, c := range cases {
		w := &halfByteWriter{}
		encodeInt(w, c.x)
		assert.Equal(t, c.want, w.bytes(), "encodeInt(%#x)", c.x)
	}
}

func TestEncodeInt_RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 15, 16, 255, 4095, 1 << 20, 0x12345678, math.MaxUint32}
	signed := []int32{0, 1, -1, 7, -8, 127, -128, 1 << 20, -(1 << 20), math.MaxInt32, math.MinInt32}
	for _, v := range signed {
		values = append(values, uint32(v))
	}

	w := &halfByteWriter{}
	for _, v := range values {
		encodeInt(w, v)
	}

	r := newHalfByteReader(w.bytes())
	for _, want := range values {
		got, err := decodeInt(r)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDecodeInt_TruncatedStream(t *testing.T) {
	r := newHalfByteReader(nil)
	_, err := decodeInt(r)
	require.Error(t, err)

	// A head announcing more data halfbytes than remain in the stream.
	r = newHalfByteReader([]byte{0x00})
	_, err = decodeInt(r)
	require.Error(t, err)
}

func TestHalfByteReader_TrailingPad(t *testing.T) {
	w := &halfByteWriter{}
	encodeInt(w, 0x3) // one full byte, no pad
	encodeInt(w, 0x0) // head 8 fills a high nibble, leaving a 0x0 pad

	r := newHalfByteReader(w.bytes())
	_, err := decodeInt(r)
	require.NoError(t, err)
	_, err = decodeInt(r)
	require.NoError(t, err)
	assert.True(t, r.atTrailingPad())
}
