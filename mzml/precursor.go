package mzml

import (
	"github.com/sciops/mzml/accession"
	"github.com/sciops/mzml/subtree"
)

// IsolationWindow is a precursor's <isolationWindow>.
type IsolationWindow struct {
	params accession.ParamGroup
}

func newIsolationWindow(el *subtree.Element, groups map[string]*subtree.Element) IsolationWindow {
	return IsolationWindow{params: accession.NewParamGroupResolved(el, groups)}
}

// TargetMZ returns the isolation window's target m/z, if present.
func (w IsolationWindow) TargetMZ() (float64, bool) {
	return floatParam(w.params, accession.AccIsolationWindowTarget)
}

// LowerOffset returns the isolation window's lower m/z offset, if present.
func (w IsolationWindow) LowerOffset() (float64, bool) {
	return floatParam(w.params, accession.AccIsolationWindowLowerOffset)
}

// UpperOffset returns the isolation window's upper m/z offset, if present.
func (w IsolationWindow) UpperOffset() (float64, bool) {
	return floatParam(w.params, accession.AccIsolationWindowUpperOffset)
}

// SelectedIon is one <selectedIon> entry within a precursor's
// selectedIonList.
type SelectedIon struct {
	params accession.ParamGroup
}

func newSelectedIon(el *subtree.Element, groups map[string]*subtree.Element) SelectedIon {
	return SelectedIon{params: accession.NewParamGroupResolved(el, groups)}
}

// MZ returns the selected ion's m/z, if present.
func (s SelectedIon) MZ() (float64, bool) {
	return floatParam(s.params, accession.AccSelectedIonMZ)
}

// PeakIntensity returns the selected ion's peak intensity, if present.
func (s SelectedIon) PeakIntensity() (float64, bool) {
	return floatParam(s.params, accession.AccPeakIntensity)
}

// ChargeState returns the selected ion's charge state, if present.
func (s SelectedIon) ChargeState() (int, bool) {
	return intParam(s.params, accession.AccChargeState)
}

// Activation is a precursor's <activation>.
type Activation struct {
	params accession.ParamGroup
}

func newActivation(el *subtree.Element, groups map[string]*subtree.Element) Activation {
	return Activation{params: accession.NewParamGroupResolved(el, groups)}
}

// Type returns the first recognized fragmentation-method accession (CID,
// HCD, ETD), or ActivationTypeUnknown if none is present.
func (a Activation) Type() accession.ActivationType {
	for _, p := range a.params.CvParams {
		if t := accession.ParseActivationType(p.Accession); t != accession.ActivationTypeUnknown {
			return t
		}
	}
	return accession.ActivationTypeUnknown
}

// CollisionEnergy returns the activation's collision energy, if present.
func (a Activation) CollisionEnergy() (float64, bool) {
	return floatParam(a.params, accession.AccCollisionEnergy)
}

// Precursor is one <precursor> entry within a spectrum's precursorList, or
// a chromatogram's lone precursor element.
type Precursor struct {
	el     *subtree.Element
	groups map[string]*subtree.Element
}

func newPrecursor(el *subtree.Element, groups map[string]*subtree.Element) Precursor {
	return Precursor{el: el, groups: groups}
}

// SpectrumRef returns the spectrumRef attribute, if present.
func (p Precursor) SpectrumRef() (string, bool) {
	return p.el.Attr("spectrumRef")
}

// SourceFileRef returns the sourceFileRef attribute, if present.
func (p Precursor) SourceFileRef() (string, bool) {
	return p.el.Attr("sourceFileRef")
}

// ExternalSpectrumID returns the externalSpectrumID attribute, if present.
func (p Precursor) ExternalSpectrumID() (string, bool) {
	return p.el.Attr("externalSpectrumID")
}

// IsolationWindow returns the precursor's isolation window, if present.
func (p Precursor) IsolationWindow() (IsolationWindow, bool) {
	el := p.el.FirstChildTagged("isolationWindow")
	if el == nil {
		return IsolationWindow{}, false
	}
	return newIsolationWindow(el, p.groups), true
}

// SelectedIons returns every selected ion under this precursor's
// selectedIonList, in document order.
func (p Precursor) SelectedIons() []SelectedIon {
	list := p.el.FirstChildTagged("selectedIonList")
	if list == nil {
		return nil
	}
	var out []SelectedIon
	for _, s := range list.ChildrenTagged("selectedIon") {
		out = append(out, newSelectedIon(s, p.groups))
	}
	return out
}

// Activation returns the precursor's activation, if present.
func (p Precursor) Activation() (Activation, bool) {
	el := p.el.FirstChildTagged("activation")
	if el == nil {
		return Activation{}, false
	}
	return newActivation(el, p.groups), true
}

func precursorsFrom(parent *subtree.Element, groups map[string]*subtree.Element) []Precursor {
	list := parent.FirstChildTagged("precursorList")
	if list == nil {
		return nil
	}
	var out []Precursor
	for _, pr := range list.ChildrenTagged("precursor") {
		out = append(out, newPrecursor(pr, groups))
	}
	return out
}

func singlePrecursorFrom(parent *subtree.Element, groups map[string]*subtree.Element) (Precursor, bool) {
	el := parent.FirstChildTagged("precursor")
	if el == nil {
		return Precursor{}, false
	}
	return newPrecursor(el, groups), true
}
