package mzml

import (
	"github.com/sciops/mzml/accession"
	"github.com/sciops/mzml/mzmlerr"
	"github.com/sciops/mzml/subtree"
)

// Chromatogram is a thin projection over a captured <chromatogram>
// subtree, mirroring Spectrum's shape minus scans/MS level.
type Chromatogram struct {
	el     *subtree.Element
	groups map[string]*subtree.Element
	params accession.ParamGroup
}

func newChromatogram(el *subtree.Element, groups map[string]*subtree.Element) Chromatogram {
	return Chromatogram{el: el, groups: groups, params: accession.NewParamGroupResolved(el, groups)}
}

// ID returns the chromatogram's native identifier.
func (c Chromatogram) ID() string {
	id, _ := c.el.Attr("id")
	return id
}

// DefaultArrayLength returns the chromatogram's defaultArrayLength
// attribute, if present.
func (c Chromatogram) DefaultArrayLength() (int, bool) {
	return intAttr(c.el.Attr("defaultArrayLength"))
}

// DataProcessingRef returns the dataProcessingRef attribute, if present.
func (c Chromatogram) DataProcessingRef() (string, bool) {
	return c.el.Attr("dataProcessingRef")
}

// SourceFileRef returns the sourceFileRef attribute, if present.
func (c Chromatogram) SourceFileRef() (string, bool) {
	return c.el.Attr("sourceFileRef")
}

// ChromatogramType returns the first recognized semantic chromatogram-type
// accession (TIC, SIC, BPC), or ChromatogramTypeUnknown if none is
// present.
func (c Chromatogram) ChromatogramType() accession.ChromatogramType {
	for _, p := range c.params.CvParams {
		if t := accession.ParseChromatogramType(p.Accession); t != accession.ChromatogramTypeUnknown {
			return t
		}
	}
	return accession.ChromatogramTypeUnknown
}

// Precursor returns the chromatogram's precursor, if present (SRM/SIC
// chromatograms typically carry one).
func (c Chromatogram) Precursor() (Precursor, bool) {
	return singlePrecursorFrom(c.el, c.groups)
}

// BinaryDataArrays returns every binary data array attached to this
// chromatogram, in document order.
func (c Chromatogram) BinaryDataArrays() []accession.BinaryDataArray {
	return accession.BinaryDataArrays(c.el, c.groups)
}

// TimeArray decodes the time binary data array, if present.
func (c Chromatogram) TimeArray() ([]float64, []mzmlerr.Warning, error) {
	return decodeArrayByType(c.el, c.groups, accession.ArrayTypeTime)
}

// IntensityArray decodes the intensity binary data array, if present.
func (c Chromatogram) IntensityArray() ([]float64, []mzmlerr.Warning, error) {
	return decodeArrayByType(c.el, c.groups, accession.ArrayTypeIntensity)
}
