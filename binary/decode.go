// Package binary implements the binary-array decode pipeline: given an
// accession.BinaryDataArray, resolve its compression and numeric-type CV
// params and drive the base64 -> decompression -> optional numpress ->
// typed-numeric-buffer chain the resolved compression selects.
package binary

import (
	"fmt"
	"math"

	"github.com/sciops/mzml/accession"
	"github.com/sciops/mzml/codec"
	"github.com/sciops/mzml/endian"
	"github.com/sciops/mzml/mzmlerr"
	"github.com/sciops/mzml/numpress"
)

// Decode runs arr's base64 payload through the pipeline selected by its
// compression and numeric-type CV params, returning the decoded 64-bit
// float sequence plus any non-fatal warnings encountered along the way.
// Missing compression/numeric-type defaults with a warning; an empty
// payload returns an empty sequence with a warning; a rejected compression
// accession returns mzmlerr.ErrUnsupportedFeature. A compression accession
// outside the closed set is indistinguishable from a missing one and takes
// the same no-compression default with a WarningMissingCompression.
func Decode(arr accession.BinaryDataArray) ([]float64, []mzmlerr.Warning, error) {
	var warnings []mzmlerr.Warning

	comp := arr.Compression()
	if comp == accession.CompressionUnknown {
		warnings = append(warnings, mzmlerr.Warning{
			Kind:    mzmlerr.WarningMissingCompression,
			Message: "binary data array has no recognized compression cvParam; defaulting to no compression",
		})
		comp = accession.CompressionNone
	}

	numType := arr.NumericType()
	if numType == accession.NumericTypeUnknown {
		warnings = append(warnings, mzmlerr.Warning{
			Kind:    mzmlerr.WarningMissingNumericType,
			Message: "binary data array has no recognized numeric-type cvParam; defaulting to 64-bit float",
		})
		numType = accession.NumericTypeFloat64
	}

	if arr.Binary == "" {
		warnings = append(warnings, mzmlerr.Warning{
			Kind:    mzmlerr.WarningEmptyPayload,
			Message: "binary data array payload was empty",
		})
		return nil, warnings, nil
	}

	if comp.Rejected() {
		return nil, warnings, fmt.Errorf("%w: compression %s is not decodable", mzmlerr.ErrUnsupportedFeature, comp)
	}

	raw, err := codec.Base64Decode(arr.Binary)
	if err != nil {
		return nil, warnings, err
	}

	vals, err := decodePipeline(raw, comp, numType)
	return vals, warnings, err
}

func decodePipeline(raw []byte, comp accession.Compression, numType accession.NumericType) ([]float64, error) {
	switch comp {
	case accession.CompressionNone:
		return widen(raw, numType)

	case accession.CompressionZlib:
		inflated, err := (codec.Zlib{}).Decompress(raw)
		if err != nil {
			return nil, err
		}
		return widen(inflated, numType)

	case accession.CompressionZstd:
		inflated, err := (codec.Zstd{}).Decompress(raw)
		if err != nil {
			return nil, err
		}
		return widen(inflated, numType)

	case accession.CompressionNumpressLinear:
		return numpress.DecodeLinear(raw)
	case accession.CompressionNumpressPIC:
		return numpress.DecodePIC(raw)
	case accession.CompressionNumpressSLOF:
		return numpress.DecodeSLOF(raw)

	case accession.CompressionNumpressLinearZlib:
		inflated, err := (codec.Zlib{}).Decompress(raw)
		if err != nil {
			return nil, err
		}
		return numpress.DecodeLinear(inflated)
	case accession.CompressionNumpressPICZlib:
		inflated, err := (codec.Zlib{}).Decompress(raw)
		if err != nil {
			return nil, err
		}
		return numpress.DecodePIC(inflated)
	case accession.CompressionNumpressSLOFZlib:
		inflated, err := (codec.Zlib{}).Decompress(raw)
		if err != nil {
			return nil, err
		}
		return numpress.DecodeSLOF(inflated)

	case accession.CompressionNumpressLinearZstd:
		inflated, err := (codec.Zstd{}).Decompress(raw)
		if err != nil {
			return nil, err
		}
		return numpress.DecodeLinear(inflated)
	case accession.CompressionNumpressPICZstd:
		inflated, err := (codec.Zstd{}).Decompress(raw)
		if err != nil {
			return nil, err
		}
		return numpress.DecodePIC(inflated)
	case accession.CompressionNumpressSLOFZstd:
		inflated, err := (codec.Zstd{}).Decompress(raw)
		if err != nil {
			return nil, err
		}
		return numpress.DecodeSLOF(inflated)

	case accession.CompressionTruncationZlib:
		inflated, err := (codec.Zlib{}).Decompress(raw)
		if err != nil {
			return nil, err
		}
		return widen(inflated, numType)

	default:
		return nil, fmt.Errorf("%w: unrecognized compression accession", mzmlerr.ErrUnsupportedFeature)
	}
}

// widen reinterprets raw as a sequence of numType elements and casts each
// to float64. raw's length must be an exact multiple of numType's element
// size.
func widen(raw []byte, numType accession.NumericType) ([]float64, error) {
	size := numType.Size()
	if size == 0 {
		size = 8
	}
	if len(raw) == 0 {
		return nil, nil
	}
	if len(raw)%size != 0 {
		return nil, fmt.Errorf("%w: payload length %d is not a multiple of element size %d", mzmlerr.ErrFormat, len(raw), size)
	}

	engine := endian.GetLittleEndianEngine()
	n := len(raw) / size
	out := make([]float64, n)

	for i := 0; i < n; i++ {
		chunk := raw[i*size : (i+1)*size]
		switch numType {
		case accession.NumericTypeFloat32:
			out[i] = float64(math.Float32frombits(engine.Uint32(chunk)))
		case accession.NumericTypeInt32:
			out[i] = float64(int32(engine.Uint32(chunk)))
		case accession.NumericTypeInt64:
			out[i] = float64(int64(engine.Uint64(chunk)))
		default: // NumericTypeFloat64 and any unresolved default
			out[i] = math.Float64frombits(engine.Uint64(chunk))
		}
	}

	return out, nil
}
