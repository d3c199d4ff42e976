package accession

import "github.com/sciops/mzml/subtree"

// BinaryDataArray is a thin wrapper over a <binaryDataArray> subtree: it
// locates the single <binary> child and its text, and resolves the
// compression, numeric-type, and semantic array-type CV params a decoder
// dispatches on. Each resolution is first-accession-in-the-closed-set
// wins, in document order.
type BinaryDataArray struct {
	Params ParamGroup
	Binary string
}

// NewBinaryDataArray builds a BinaryDataArray from a <binaryDataArray>
// element, resolving referenceableParamGroupRef children against groups.
func NewBinaryDataArray(el *subtree.Element, groups map[string]*subtree.Element) BinaryDataArray {
	if el == nil {
		return BinaryDataArray{}
	}

	var text string
	if bin := el.FirstChildTagged("binary"); bin != nil {
		text = bin.Text
	}

	return BinaryDataArray{
		Params: NewParamGroupResolved(el, groups),
		Binary: text,
	}
}

// Compression returns the first cvParam accession matching the closed
// compression enumeration, or CompressionUnknown if none does.
func (b BinaryDataArray) Compression() Compression {
	for _, p := range b.Params.CvParams {
		if c := ParseCompression(p.Accession); c != CompressionUnknown {
			return c
		}
	}
	return CompressionUnknown
}

// NumericType returns the first cvParam accession matching the closed
// numeric-type enumeration, or NumericTypeUnknown if none does.
func (b BinaryDataArray) NumericType() NumericType {
	for _, p := range b.Params.CvParams {
		if t := ParseNumericType(p.Accession); t != NumericTypeUnknown {
			return t
		}
	}
	return NumericTypeUnknown
}

// ArrayType returns the first cvParam accession matching the closed
// semantic array-type enumeration, or ArrayTypeUnknown if none does.
func (b BinaryDataArray) ArrayType() ArrayType {
	for _, p := range b.Params.CvParams {
		if t := ParseArrayType(p.Accession); t != ArrayTypeUnknown {
			return t
		}
	}
	return ArrayTypeUnknown
}

// BinaryDataArrays scans a spectrum or chromatogram element's
// binaryDataArrayList and returns each child wrapped as a BinaryDataArray,
// in document order.
func BinaryDataArrays(parent *subtree.Element, groups map[string]*subtree.Element) []BinaryDataArray {
	if parent == nil {
		return nil
	}
	list := parent.FirstChildTagged("binaryDataArrayList")
	if list == nil {
		return nil
	}

	var out []BinaryDataArray
	for _, c := range list.ChildrenTagged("binaryDataArray") {
		out = append(out, NewBinaryDataArray(c, groups))
	}
	return out
}

// FindBySemanticType returns the first binary data array whose resolved
// ArrayType equals want.
func FindBySemanticType(parent *subtree.Element, groups map[string]*subtree.Element, want ArrayType) (BinaryDataArray, bool) {
	for _, a := range BinaryDataArrays(parent, groups) {
		if a.ArrayType() == want {
			return a, true
		}
	}
	return BinaryDataArray{}, false
}
