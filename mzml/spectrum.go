package mzml

import (
	"github.com/sciops/mzml/accession"
	"github.com/sciops/mzml/binary"
	"github.com/sciops/mzml/mzmlerr"
	"github.com/sciops/mzml/subtree"
)

// Spectrum is a thin projection over a captured <spectrum> subtree: id,
// msLevel, spectrum type, TIC, scans, precursors, and binary data arrays,
// rather than a general-purpose XML node wrapper.
type Spectrum struct {
	el     *subtree.Element
	groups map[string]*subtree.Element
	params accession.ParamGroup
}

func newSpectrum(el *subtree.Element, groups map[string]*subtree.Element) Spectrum {
	return Spectrum{el: el, groups: groups, params: accession.NewParamGroupResolved(el, groups)}
}

// ID returns the spectrum's native identifier.
func (s Spectrum) ID() string {
	id, _ := s.el.Attr("id")
	return id
}

// Index returns the spectrum's index attribute, if present.
func (s Spectrum) Index() (int, bool) {
	return intAttr(s.el.Attr("index"))
}

// DefaultArrayLength returns the spectrum's defaultArrayLength attribute,
// if present.
func (s Spectrum) DefaultArrayLength() (int, bool) {
	return intAttr(s.el.Attr("defaultArrayLength"))
}

// DataProcessingRef returns the dataProcessingRef attribute, if present.
func (s Spectrum) DataProcessingRef() (string, bool) {
	return s.el.Attr("dataProcessingRef")
}

// SourceFileRef returns the sourceFileRef attribute, if present.
func (s Spectrum) SourceFileRef() (string, bool) {
	return s.el.Attr("sourceFileRef")
}

// MSLevel returns the spectrum's MS level, if present.
func (s Spectrum) MSLevel() (int, bool) {
	return intParam(s.params, accession.AccMSLevel)
}

// TotalIonCurrent returns the spectrum's total ion current, if present.
func (s Spectrum) TotalIonCurrent() (float64, bool) {
	return floatParam(s.params, accession.AccTotalIonCurrent)
}

// SpectrumType reports whether the spectrum is centroid or profile data,
// or "" if neither cvParam is present.
func (s Spectrum) SpectrumType() string {
	if _, ok := s.params.CvParam(accession.AccCentroidSpectrum); ok {
		return "centroid"
	}
	if _, ok := s.params.CvParam(accession.AccProfileSpectrum); ok {
		return "profile"
	}
	return ""
}

// Scans returns every scan under this spectrum's scanList, in document
// order.
func (s Spectrum) Scans() []Scan {
	return scansFrom(s.el, s.groups)
}

// Precursors returns every precursor under this spectrum's precursorList,
// in document order.
func (s Spectrum) Precursors() []Precursor {
	return precursorsFrom(s.el, s.groups)
}

// BinaryDataArrays returns every binary data array attached to this
// spectrum, in document order.
func (s Spectrum) BinaryDataArrays() []accession.BinaryDataArray {
	return accession.BinaryDataArrays(s.el, s.groups)
}

// MZArray decodes the m/z binary data array, if present.
func (s Spectrum) MZArray() ([]float64, []mzmlerr.Warning, error) {
	return decodeArrayByType(s.el, s.groups, accession.ArrayTypeMZ)
}

// IntensityArray decodes the intensity binary data array, if present.
func (s Spectrum) IntensityArray() ([]float64, []mzmlerr.Warning, error) {
	return decodeArrayByType(s.el, s.groups, accession.ArrayTypeIntensity)
}

func decodeArrayByType(el *subtree.Element, groups map[string]*subtree.Element, want accession.ArrayType) ([]float64, []mzmlerr.Warning, error) {
	arr, ok := accession.FindBySemanticType(el, groups, want)
	if !ok {
		return nil, nil, nil
	}
	return binary.Decode(arr)
}
