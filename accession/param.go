package accession

import "github.com/sciops/mzml/subtree"

// UnitParam is the optional unit triple attached to a CvParam.
type UnitParam struct {
	Accession string
	Name      string
	CVRef     string
}

// CvParam is the 5-tuple every controlled-vocabulary parameter carries:
// CV reference, accession, name, optional value, optional unit triple.
type CvParam struct {
	CVRef      string
	Accession  string
	Name       string
	Value      string
	HasValue   bool
	Unit       UnitParam
	HasUnit    bool
}

// UserParam is a free-form (name, value, type) tuple not backed by a CV
// accession.
type UserParam struct {
	Name  string
	Value string
	Type  string
}

// ParamGroup locates the <cvParam> and <userParam> children under an
// element's immediate children and exposes lookup by accession or by name.
// Both return the first match in document order.
type ParamGroup struct {
	CvParams   []CvParam
	UserParams []UserParam
}

// NewParamGroup scans el's immediate children for cvParam/userParam tags.
func NewParamGroup(el *subtree.Element) ParamGroup {
	var pg ParamGroup
	if el == nil {
		return pg
	}

	for _, c := range el.Children {
		switch c.Tag {
		case "cvParam":
			pg.CvParams = append(pg.CvParams, cvParamFromElement(c))
		case "userParam":
			name, _ := c.Attr("name")
			value, _ := c.Attr("value")
			typ, _ := c.Attr("type")
			pg.UserParams = append(pg.UserParams, UserParam{Name: name, Value: value, Type: typ})
		}
	}

	return pg
}

func cvParamFromElement(el *subtree.Element) CvParam {
	cvRef, _ := el.Attr("cvRef")
	acc, _ := el.Attr("accession")
	name, _ := el.Attr("name")
	value, hasValue := el.Attr("value")

	p := CvParam{CVRef: cvRef, Accession: acc, Name: name, Value: value, HasValue: hasValue}

	if unitAcc, ok := el.Attr("unitAccession"); ok {
		unitName, _ := el.Attr("unitName")
		unitCVRef, _ := el.Attr("unitCvRef")
		p.Unit = UnitParam{Accession: unitAcc, Name: unitName, CVRef: unitCVRef}
		p.HasUnit = true
	}

	return p
}

// CvParam returns the first CvParam whose accession or name equals
// idOrName, and whether one was found.
func (pg ParamGroup) CvParam(idOrName string) (CvParam, bool) {
	for _, p := range pg.CvParams {
		if p.Accession == idOrName || p.Name == idOrName {
			return p, true
		}
	}
	return CvParam{}, false
}

// UserParam returns the first UserParam with the given name, and whether
// one was found.
func (pg ParamGroup) UserParam(name string) (UserParam, bool) {
	for _, p := range pg.UserParams {
		if p.Name == name {
			return p, true
		}
	}
	return UserParam{}, false
}

// NewParamGroupResolved scans el's immediate children the same way
// NewParamGroup does, but additionally substitutes in the cvParams and
// userParams of any referenceableParamGroupRef child by resolving it
// against groups (keyed by referenceableParamGroup id). Params are
// collected in document order, exactly where each element or ref appears
// among el's children, matching the order a reader merging refs inline
// would observe.
func NewParamGroupResolved(el *subtree.Element, groups map[string]*subtree.Element) ParamGroup {
	var pg ParamGroup
	if el == nil {
		return pg
	}

	for _, c := range el.Children {
		switch c.Tag {
		case "cvParam":
			pg.CvParams = append(pg.CvParams, cvParamFromElement(c))
		case "userParam":
			name, _ := c.Attr("name")
			value, _ := c.Attr("value")
			typ, _ := c.Attr("type")
			pg.UserParams = append(pg.UserParams, UserParam{Name: name, Value: value, Type: typ})
		case "referenceableParamGroupRef":
			ref, ok := c.Attr("ref")
			if !ok {
				continue
			}
			group, ok := groups[ref]
			if !ok {
				continue
			}
			resolved := NewParamGroupResolved(group, groups)
			pg.CvParams = append(pg.CvParams, resolved.CvParams...)
			pg.UserParams = append(pg.UserParams, resolved.UserParams...)
		}
	}

	return pg
}

// RefParams returns the referenceableParamGroupRef ids this element
// points at, in document order, for the caller to resolve against the
// document's referenceable-param-group table.
func RefParams(el *subtree.Element) []string {
	if el == nil {
		return nil
	}
	var refs []string
	for _, ref := range el.ChildrenTagged("referenceableParamGroupRef") {
		if id, ok := ref.Attr("ref"); ok {
			refs = append(refs, id)
		}
	}
	return refs
}
