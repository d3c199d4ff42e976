package numpress

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/sciops/mzml/mzmlerr"
)

// DefaultLinearFixedPoint is the fallback scale used when no usable fixed
// point can be derived from the data itself; it gives 1e-5 precision over a
// signal with magnitude up to roughly 2e4, comfortably inside the 1e-6
// relative-error tolerance the linear codec is held to.
const DefaultLinearFixedPoint = 1e5

// encodeFixedPoint stores fp as the 8 bytes of its float64 representation
// in big-endian order, the byte order the reference codec writes regardless
// of platform.
func encodeFixedPoint(fp float64, out []byte) {
	binary.BigEndian.PutUint64(out, math.Float64bits(fp))
}

func decodeFixedPoint(in []byte) float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(in))
}

// OptimalLinearFixedPoint derives the largest fixed point whose
// linear-prediction residuals over data still fit a signed 32-bit integer,
// the same heuristic the reference codec applies when the caller does not
// supply a scale. Returns 0 for empty input.
func OptimalLinearFixedPoint(data []float64) float64 {
	switch len(data) {
	case 0:
		return 0
	case 1:
		return math.Floor(float64(math.MaxInt32) / data[0])
	}
	maxDouble := math.Max(data[0], data[1])
	for i := 2; i < len(data); i++ {
		extrapol := data[i-1] + (data[i-1] - data[i-2])
		diff := data[i] - extrapol
		maxDouble = math.Max(maxDouble, math.Ceil(math.Abs(diff)+1))
	}
	return math.Floor(float64(math.MaxInt32) / maxDouble)
}

// EncodeLinear implements MS-Numpress linear prediction: the fixed point is
// stored big-endian in the first 8 bytes, the first two values follow
// verbatim as 4-byte little-endian fixed-point integer seeds, and every
// subsequent value is stored as the halfbyte-coded residual against a
// first-order linear extrapolation from the previous two fixed-point
// integers. A fixedPoint of zero or below selects
// OptimalLinearFixedPoint(data).
func EncodeLinear(data []float64, fixedPoint float64) ([]byte, error) {
	if fixedPoint <= 0 {
		fixedPoint = OptimalLinearFixedPoint(data)
		if fixedPoint <= 0 || math.IsInf(fixedPoint, 0) {
			fixedPoint = DefaultLinearFixedPoint
		}
	}

	out := make([]byte, 8, 16+5*len(data))
	encodeFixedPoint(fixedPoint, out)

	if len(data) == 0 {
		return out, nil
	}

	ints1 := int64(data[0]*fixedPoint + 0.5)
	if ints1 < 0 || ints1 > math.MaxUint32 {
		return nil, fmt.Errorf("%w: numpress linear: first value out of fixed-point range", mzmlerr.ErrCodec)
	}
	out = binary.LittleEndian.AppendUint32(out, uint32(ints1))
	if len(data) == 1 {
		return out, nil
	}

	ints2 := int64(data[1]*fixedPoint + 0.5)
	if ints2 < 0 || ints2 > math.MaxUint32 {
		return nil, fmt.Errorf("%w: numpress linear: second value out of fixed-point range", mzmlerr.ErrCodec)
	}
	out = binary.LittleEndian.AppendUint32(out, uint32(ints2))

	w := &halfByteWriter{}
	for i := 2; i < len(data); i++ {
		truncated := int64(data[i]*fixedPoint + 0.5)
		extrapol := ints2 + (ints2 - ints1)
		diff := truncated - extrapol
		if diff > math.MaxInt32 || diff < math.MinInt32 {
			return nil, fmt.Errorf("%w: numpress linear: residual overflow at index %d", mzmlerr.ErrCodec, i)
		}
		encodeInt(w, uint32(int32(diff)))
		ints1, ints2 = ints2, truncated
	}

	return append(out, w.bytes()...), nil
}

// DecodeLinear reverses EncodeLinear. The element count is implied by the
// stream: decoding runs until the halfbyte stream is exhausted, skipping a
// final 0x0 pad halfbyte.
func DecodeLinear(data []byte) ([]float64, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("%w: numpress linear: not enough bytes to read fixed point", mzmlerr.ErrFormat)
	}
	fixedPoint := decodeFixedPoint(data[0:8])
	if fixedPoint <= 0 || math.IsNaN(fixedPoint) {
		return nil, fmt.Errorf("%w: numpress linear: invalid fixed point %v", mzmlerr.ErrFormat, fixedPoint)
	}
	if len(data) == 8 {
		return nil, nil
	}

	if len(data) < 12 {
		return nil, fmt.Errorf("%w: numpress linear: not enough bytes to read first value", mzmlerr.ErrFormat)
	}
	ints1 := int64(binary.LittleEndian.Uint32(data[8:12]))
	out := []float64{float64(ints1) / fixedPoint}
	if len(data) == 12 {
		return out, nil
	}

	if len(data) < 16 {
		return nil, fmt.Errorf("%w: numpress linear: not enough bytes to read second value", mzmlerr.ErrFormat)
	}
	ints2 := int64(binary.LittleEndian.Uint32(data[12:16]))
	out = append(out, float64(ints2)/fixedPoint)

	r := newHalfByteReader(data[16:])
	for r.remaining() > 0 {
		if r.atTrailingPad() {
			break
		}
		x, err := decodeInt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: numpress linear: %v", mzmlerr.ErrCodec, err)
		}
		extrapol := ints2 + (ints2 - ints1)
		y := extrapol + int64(int32(x))
		out = append(out, float64(y)/fixedPoint)
		ints1, ints2 = ints2, y
	}

	return out, nil
}
