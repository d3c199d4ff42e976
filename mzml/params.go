package mzml

import (
	"strconv"

	"github.com/sciops/mzml/accession"
)

// floatParam returns the float64 value of the first cvParam matching acc,
// and whether it was present and parsed cleanly.
func floatParam(pg accession.ParamGroup, acc string) (float64, bool) {
	p, ok := pg.CvParam(acc)
	if !ok || !p.HasValue {
		return 0, false
	}
	v, err := strconv.ParseFloat(p.Value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// floatParamSeconds behaves like floatParam but additionally normalizes the
// value to seconds when the matched cvParam carries a unitAccession of
// AccUnitMinute.
func floatParamSeconds(pg accession.ParamGroup, acc string) (float64, bool) {
	p, ok := pg.CvParam(acc)
	if !ok || !p.HasValue {
		return 0, false
	}
	v, err := strconv.ParseFloat(p.Value, 64)
	if err != nil {
		return 0, false
	}
	if p.HasUnit && p.Unit.Accession == accession.AccUnitMinute {
		v *= 60
	}
	return v, true
}

// intParam returns the int value of the first cvParam matching acc, and
// whether it was present and parsed cleanly.
func intParam(pg accession.ParamGroup, acc string) (int, bool) {
	p, ok := pg.CvParam(acc)
	if !ok || !p.HasValue {
		return 0, false
	}
	v, err := strconv.Atoi(p.Value)
	if err != nil {
		return 0, false
	}
	return v, true
}

// intAttr parses el's named attribute as an int, returning (0, false) if
// absent or malformed rather than erroring; a malformed index or
// defaultArrayLength attribute is treated as absent, not fatal.
func intAttr(attr string, ok bool) (int, bool) {
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(attr)
	if err != nil {
		return 0, false
	}
	return v, true
}
