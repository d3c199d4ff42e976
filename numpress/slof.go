package numpress

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/sciops/mzml/mzmlerr"
)

// OptimalSlofFixedPoint derives the largest scale that keeps the logged
// maximum of data inside the unsigned 16-bit range, the reference codec's
// own heuristic. Returns 0 for empty input.
func OptimalSlofFixedPoint(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	maxDouble := 1.0
	for _, v := range data {
		maxDouble = math.Max(maxDouble, math.Log(v+1))
	}
	return math.Floor(float64(math.MaxUint16) / maxDouble)
}

// DefaultSlofFixedPoint is the fallback scale for empty input; it gives
// roughly 4-5 significant digits across the log-scaled uint16 range,
// comfortably inside the 5e-4 relative-error tolerance the SLOF codec is
// held to over its positive domain.
const DefaultSlofFixedPoint = 65535.0 / 16.0

// EncodeSLOF implements MS-Numpress short-logged-float: the fixed point is
// stored big-endian in the first 8 bytes, then each value is scaled by it
// after taking the natural log (offset by 1 so zero is representable) and
// stored as a little-endian unsigned 16-bit integer. Unlike linear and PIC,
// each value occupies exactly 2 bytes, so the count needs no pad handling.
// A fixedPoint of zero or below selects OptimalSlofFixedPoint(data).
func EncodeSLOF(data []float64, fixedPoint float64) ([]byte, error) {
	if fixedPoint <= 0 {
		fixedPoint = OptimalSlofFixedPoint(data)
		if fixedPoint <= 0 {
			fixedPoint = DefaultSlofFixedPoint
		}
	}

	out := make([]byte, 8, 8+2*len(data))
	encodeFixedPoint(fixedPoint, out)

	for i, v := range data {
		if v < 0 {
			return nil, fmt.Errorf("%w: numpress slof: negative value %v at index %d", mzmlerr.ErrCodec, v, i)
		}
		y := fixedPoint*math.Log(v+1) + 0.5
		if y < 0 || y > math.MaxUint16+1 {
			return nil, fmt.Errorf("%w: numpress slof: value out of range at index %d", mzmlerr.ErrCodec, i)
		}
		if y > math.MaxUint16 {
			y = math.MaxUint16
		}
		out = binary.LittleEndian.AppendUint16(out, uint16(y))
	}

	return out, nil
}

// DecodeSLOF reverses EncodeSLOF.
func DecodeSLOF(data []byte) ([]float64, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("%w: numpress slof: not enough bytes to read fixed point", mzmlerr.ErrFormat)
	}
	fixedPoint := decodeFixedPoint(data[0:8])
	if fixedPoint <= 0 || math.IsNaN(fixedPoint) {
		return nil, fmt.Errorf("%w: numpress slof: invalid fixed point %v", mzmlerr.ErrFormat, fixedPoint)
	}
	rest := data[8:]
	if len(rest)%2 != 0 {
		return nil, fmt.Errorf("%w: numpress slof: odd payload length", mzmlerr.ErrFormat)
	}

	n := len(rest) / 2
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		y := binary.LittleEndian.Uint16(rest[2*i : 2*i+2])
		out[i] = math.Exp(float64(y)/fixedPoint) - 1
	}

	return out, nil
}
