package numpress

import (
	"errors"
	"math"
	"testing"

	"github.com/sciops/mzml/mzmlerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relativeError(got, want []float64) float64 {
	var maxRel float64
	for i := range want {
		d := math.Abs(got[i] - want[i])
		denom := math.Abs(want[i])
		if denom == 0 {
			denom = 1
		}
		rel := d / denom
		if rel > maxRel {
			maxRel = rel
		}
	}
	return maxRel
}

func TestLinear_RoundTrip_Empty(t *testing.T) {
	encoded, err := EncodeLinear(nil, 0)
	require.NoError(t, err)

	decoded, err := DecodeLinear(encoded)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestLinear_RoundTrip_SingleAndDouble(t *testing.T) {
	for _, data := range [][]float64{{1.5}, {1.5, 2.25}} {
		decoded, err := roundTripLinear(t, data, 0)
		require.NoError(t, err)
		assert.InDeltaSlice(t, data, decoded, 1e-9)
	}
}

func TestLinear_RoundTrip_Tolerance(t *testing.T) {
	data := make([]float64, 200)
	for i := range data {
		data[i] = 400.0 + float64(i)*1.3 + math.Sin(float64(i))
	}

	decoded, err := roundTripLinear(t, data, DefaultLinearFixedPoint)
	require.NoError(t, err)
	require.Len(t, decoded, len(data))

	assert.LessOrEqual(t, relativeError(decoded, data), 1e-6)
}

func TestLinear_Decode_TruncatedHeader(t *testing.T) {
	_, err := DecodeLinear([]byte{1, 2, 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, mzmlerr.ErrFormat))
}

func TestPIC_RoundTrip(t *testing.T) {
	data := []float64{0, 1, 100, 65535, 123456789}
	encoded, err := EncodePIC(data)
	require.NoError(t, err)

	decoded, err := DecodePIC(encoded)
	require.NoError(t, err)
	require.Equal(t, data, decoded)
}

func TestPIC_RoundTrip_Empty(t *testing.T) {
	encoded, err := EncodePIC(nil)
	require.NoError(t, err)

	decoded, err := DecodePIC(encoded)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestPIC_NegativeRejected(t *testing.T) {
	_, err := EncodePIC([]float64{-1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, mzmlerr.ErrCodec))
}

func TestSLOF_RoundTrip_Tolerance(t *testing.T) {
	data := make([]float64, 200)
	for i := range data {
		data[i] = float64(i) * 137.5
	}

	encoded, err := EncodeSLOF(data, 0)
	require.NoError(t, err)

	decoded, err := DecodeSLOF(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(data))

	assert.LessOrEqual(t, relativeError(decoded, data), 5e-4)
}

func TestSLOF_RoundTrip_Empty(t *testing.T) {
	encoded, err := EncodeSLOF(nil, 0)
	require.NoError(t, err)

	decoded, err := DecodeSLOF(encoded)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestSLOF_NegativeRejected(t *testing.T) {
	_, err := EncodeSLOF([]float64{-1}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mzmlerr.ErrCodec))
}

func TestSLOF_Decode_OddLength(t *testing.T) {
	header := make([]byte, 9)
	encodeFixedPoint(1000, header)
	_, err := DecodeSLOF(header)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mzmlerr.ErrFormat))
}

func roundTripLinear(t *testing.T, data []float64, fixedPoint float64) ([]float64, error) {
	t.Helper()
	encoded, err := EncodeLinear(data, fixedPoint)
	require.NoError(t, err)
	return DecodeLinear(encoded)
}
