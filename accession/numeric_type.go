// Package accession holds the closed controlled-vocabulary enumerations the
// binary-array decoder and element wrapper layer dispatch on, plus the
// lightweight CvParam/ParamGroup/BinaryDataArray projections over parsed
// XML subtrees. Each enumeration is a uint8-backed tagged type with a
// String method and an Unknown variant, so accession-to-variant resolution
// is a single table lookup.
package accession

// NumericType identifies the numeric width and kind a binary array's raw
// bytes must be reinterpreted as before widening to float64.
type NumericType uint8

const (
	NumericTypeUnknown NumericType = iota
	NumericTypeFloat32
	NumericTypeFloat64
	NumericTypeInt32
	NumericTypeInt64
)

// Numeric type accessions.
const (
	AccFloat32 = "MS:1000521"
	AccFloat64 = "MS:1000523"
	AccInt32   = "MS:1000519"
	AccInt64   = "MS:1000522"
)

var numericTypeByAccession = map[string]NumericType{
	AccFloat32: NumericTypeFloat32,
	AccFloat64: NumericTypeFloat64,
	AccInt32:   NumericTypeInt32,
	AccInt64:   NumericTypeInt64,
}

// ParseNumericType resolves a CV accession string to a NumericType, or
// NumericTypeUnknown if the accession is not one of the closed set.
func ParseNumericType(acc string) NumericType {
	if t, ok := numericTypeByAccession[acc]; ok {
		return t
	}
	return NumericTypeUnknown
}

// Size returns the element width in bytes, or 0 for Unknown.
func (t NumericType) Size() int {
	switch t {
	case NumericTypeFloat32, NumericTypeInt32:
		return 4
	case NumericTypeFloat64, NumericTypeInt64:
		return 8
	default:
		return 0
	}
}

func (t NumericType) String() string {
	switch t {
	case NumericTypeFloat32:
		return "float32"
	case NumericTypeFloat64:
		return "float64"
	case NumericTypeInt32:
		return "int32"
	case NumericTypeInt64:
		return "int64"
	default:
		return "unknown"
	}
}
