package mzml

import (
	"github.com/sciops/mzml/accession"
	"github.com/sciops/mzml/subtree"
)

// ScanWindow is one <scanWindow> entry within a scan's scanWindowList.
type ScanWindow struct {
	params accession.ParamGroup
}

func newScanWindow(el *subtree.Element, groups map[string]*subtree.Element) ScanWindow {
	return ScanWindow{params: accession.NewParamGroupResolved(el, groups)}
}

// LowerLimit returns the scan window's lower m/z limit, if present.
func (w ScanWindow) LowerLimit() (float64, bool) {
	return floatParam(w.params, accession.AccScanWindowLowerLimit)
}

// UpperLimit returns the scan window's upper m/z limit, if present.
func (w ScanWindow) UpperLimit() (float64, bool) {
	return floatParam(w.params, accession.AccScanWindowUpperLimit)
}

// Scan is one <scan> entry within a spectrum's scanList.
type Scan struct {
	el     *subtree.Element
	groups map[string]*subtree.Element
	params accession.ParamGroup
}

func newScan(el *subtree.Element, groups map[string]*subtree.Element) Scan {
	return Scan{el: el, groups: groups, params: accession.NewParamGroupResolved(el, groups)}
}

// StartTime returns the scan's start time normalized to seconds: the raw
// cvParam value is scaled by 60 when its unitAccession is AccUnitMinute
// (the document's usual unit), left as-is otherwise. Returns false if the
// cvParam was not present.
func (s Scan) StartTime() (float64, bool) {
	return floatParamSeconds(s.params, accession.AccScanStartTime)
}

// ScanWindows returns every scan window under this scan's scanWindowList,
// in document order.
func (s Scan) ScanWindows() []ScanWindow {
	list := s.el.FirstChildTagged("scanWindowList")
	if list == nil {
		return nil
	}
	var out []ScanWindow
	for _, w := range list.ChildrenTagged("scanWindow") {
		out = append(out, newScanWindow(w, s.groups))
	}
	return out
}

func scansFrom(parent *subtree.Element, groups map[string]*subtree.Element) []Scan {
	list := parent.FirstChildTagged("scanList")
	if list == nil {
		return nil
	}
	var out []Scan
	for _, s := range list.ChildrenTagged("scan") {
		out = append(out, newScan(s, groups))
	}
	return out
}
