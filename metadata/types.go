package metadata

import (
	"github.com/sciops/mzml/accession"
	"github.com/sciops/mzml/subtree"
)

// CV is a controlled-vocabulary definition from the document's <cvList>.
type CV struct {
	ID       string
	FullName string
	Version  string
	URI      string
}

// Content is the immutable header metadata record: everything the header
// streaming parser captures before it reaches <run>.
type Content struct {
	ID         string
	Version    string
	OBOVersion string

	CVList                   []CV
	FileDescription          *FileDescription
	ReferenceableParamGroups map[string]*subtree.Element
	Softwares                []Software
	Samples                  []Sample
	ScanSettings             *ByIDList[ScanSetting]
	InstrumentConfigurations *ByIDList[InstrumentConfiguration]
	DataProcessing           *ByIDList[DataProcessing]
	Run                      *Run
}

// namedElement is the common shape behind Software, Sample, ScanSetting,
// InstrumentConfiguration, and DataProcessing: an id plus a resolved
// cvParam/userParam group. These are mechanical projections over a
// captured subtree, not independently parsed structures.
type namedElement struct {
	id     string
	el     *subtree.Element
	groups map[string]*subtree.Element
}

func newNamedElement(el *subtree.Element, groups map[string]*subtree.Element) namedElement {
	id, _ := el.Attr("id")
	return namedElement{id: id, el: el, groups: groups}
}

// ID returns the element's id attribute.
func (n namedElement) ID() string { return n.id }

// Params resolves the element's own cvParam/userParam children plus any
// referenceableParamGroupRef it points at.
func (n namedElement) Params() accession.ParamGroup {
	return accession.NewParamGroupResolved(n.el, n.groups)
}

// Software is one <software> entry from <softwareList>.
type Software struct {
	namedElement
	Version string
}

func newSoftware(el *subtree.Element, groups map[string]*subtree.Element) Software {
	version, _ := el.Attr("version")
	return Software{namedElement: newNamedElement(el, groups), Version: version}
}

// Sample is one <sample> entry from <sampleList>.
type Sample struct {
	namedElement
	Name string
}

func newSample(el *subtree.Element, groups map[string]*subtree.Element) Sample {
	name, _ := el.Attr("name")
	return Sample{namedElement: newNamedElement(el, groups), Name: name}
}

// ScanSetting is one <scanSettings> entry from <scanSettingsList>.
type ScanSetting struct {
	namedElement
}

func newScanSetting(el *subtree.Element, groups map[string]*subtree.Element) ScanSetting {
	return ScanSetting{namedElement: newNamedElement(el, groups)}
}

// InstrumentConfiguration is one <instrumentConfiguration> entry from
// <instrumentConfigurationList>.
type InstrumentConfiguration struct {
	namedElement
	ScanSettingsRef string
}

func newInstrumentConfiguration(el *subtree.Element, groups map[string]*subtree.Element) InstrumentConfiguration {
	ref, _ := el.Attr("scanSettingsRef")
	return InstrumentConfiguration{namedElement: newNamedElement(el, groups), ScanSettingsRef: ref}
}

// DataProcessing is one <dataProcessing> entry from <dataProcessingList>.
type DataProcessing struct {
	namedElement
}

func newDataProcessing(el *subtree.Element, groups map[string]*subtree.Element) DataProcessing {
	return DataProcessing{namedElement: newNamedElement(el, groups)}
}

// SourceFile is one <sourceFile> entry from fileDescription/sourceFileList.
type SourceFile struct {
	namedElement
	Name     string
	Location string
}

// Contact is one <contact> entry from fileDescription.
type Contact struct {
	Params accession.ParamGroup
}

// FileDescription wraps the captured <fileDescription> subtree: overall
// file content params, the list of source files, and contacts.
type FileDescription struct {
	el     *subtree.Element
	groups map[string]*subtree.Element
}

func newFileDescription(el *subtree.Element, groups map[string]*subtree.Element) *FileDescription {
	return &FileDescription{el: el, groups: groups}
}

// FileContent returns the <fileContent> param group.
func (fd *FileDescription) FileContent() accession.ParamGroup {
	return accession.NewParamGroupResolved(fd.el.FirstChildTagged("fileContent"), fd.groups)
}

// SourceFiles returns every <sourceFile> under <sourceFileList>, in
// document order.
func (fd *FileDescription) SourceFiles() []SourceFile {
	list := fd.el.FirstChildTagged("sourceFileList")
	if list == nil {
		return nil
	}

	var out []SourceFile
	for _, sf := range list.ChildrenTagged("sourceFile") {
		name, _ := sf.Attr("name")
		location, _ := sf.Attr("location")
		out = append(out, SourceFile{
			namedElement: newNamedElement(sf, fd.groups),
			Name:         name,
			Location:     location,
		})
	}
	return out
}

// Contacts returns every <contact> child, in document order.
func (fd *FileDescription) Contacts() []Contact {
	var out []Contact
	for _, c := range fd.el.ChildrenTagged("contact") {
		out = append(out, Contact{Params: accession.NewParamGroupResolved(c, fd.groups)})
	}
	return out
}

// Run is the run descriptor: id, default instrument ref, default
// source-file ref, sample ref, and start timestamp.
type Run struct {
	ID                                string
	DefaultInstrumentConfigurationRef string
	DefaultSourceFileRef              string
	SampleRef                         string
	StartTimeStamp                    string
}
