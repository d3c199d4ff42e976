package metadata

import (
	"strings"
	"testing"

	"github.com/sciops/mzml/mzmlerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const headerFixture = `<?xml version="1.0" encoding="UTF-8"?>
<indexedmzML>
<mzML id="doc1" version="1.1.0">
  <cvList>
    <cv id="MS" fullName="PSI-MS" version="4.1.0" URI="http://purl.obolibrary.org/obo/ms.obo"/>
  </cvList>
  <fileDescription>
    <fileContent>
      <cvParam cvRef="MS" accession="MS:1000580" name="MSn spectrum" value=""/>
    </fileContent>
    <sourceFileList count="1">
      <sourceFile id="sf1" name="input.raw" location="file:///data">
        <cvParam cvRef="MS" accession="MS:1000569" name="SHA-1" value="abc"/>
      </sourceFile>
    </sourceFileList>
    <contact>
      <cvParam cvRef="MS" accession="MS:1000586" name="contact name" value="Jane Doe"/>
    </contact>
  </fileDescription>
  <referenceableParamGroupList count="1">
    <referenceableParamGroup id="common">
      <cvParam cvRef="MS" accession="MS:1000127" name="centroid spectrum" value=""/>
    </referenceableParamGroup>
  </referenceableParamGroupList>
  <softwareList count="1">
    <software id="sw1" version="2.0">
      <cvParam cvRef="MS" accession="MS:1000799" name="custom unreleased software tool" value="Acme"/>
    </software>
  </softwareList>
  <sampleList count="1">
    <sample id="sample1" name="Sample A"/>
  </sampleList>
  <scanSettingsList count="1">
    <scanSettings id="ss1"/>
  </scanSettingsList>
  <instrumentConfigurationList count="1">
    <instrumentConfiguration id="ic1" scanSettingsRef="ss1">
      <referenceableParamGroupRef ref="common"/>
    </instrumentConfiguration>
  </instrumentConfigurationList>
  <dataProcessingList count="1">
    <dataProcessing id="dp1"/>
  </dataProcessingList>
  <run id="run1" defaultInstrumentConfigurationRef="ic1" defaultSourceFileRef="sf1" sampleRef="sample1" startTimeStamp="2020-01-01T00:00:00Z">
    <spectrumList count="1">
      <spectrum id="scan=1"></spectrum>
    </spectrumList>
  </run>
</mzML>
</indexedmzML>
`

func TestParse_HeaderFixture(t *testing.T) {
	c, err := Parse(strings.NewReader(headerFixture))
	require.NoError(t, err)

	assert.Equal(t, "doc1", c.ID)
	assert.Equal(t, "1.1.0", c.Version)
	assert.Equal(t, "4.1.0", c.OBOVersion)
	require.Len(t, c.CVList, 1)
	assert.Equal(t, "MS", c.CVList[0].ID)

	require.NotNil(t, c.FileDescription)
	fc := c.FileDescription.FileContent()
	_, ok := fc.CvParam("MS:1000580")
	assert.True(t, ok)

	sfs := c.FileDescription.SourceFiles()
	require.Len(t, sfs, 1)
	assert.Equal(t, "sf1", sfs[0].ID())
	assert.Equal(t, "input.raw", sfs[0].Name)

	contacts := c.FileDescription.Contacts()
	require.Len(t, contacts, 1)
	nameParam, ok := contacts[0].Params.CvParam("MS:1000586")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", nameParam.Value)

	require.Contains(t, c.ReferenceableParamGroups, "common")

	require.Len(t, c.Softwares, 1)
	assert.Equal(t, "sw1", c.Softwares[0].ID())
	assert.Equal(t, "2.0", c.Softwares[0].Version)

	require.Len(t, c.Samples, 1)
	assert.Equal(t, "Sample A", c.Samples[0].Name)

	_, ok = c.ScanSettings.ByID("ss1")
	require.True(t, ok)

	ic, ok := c.InstrumentConfigurations.ByID("ic1")
	require.True(t, ok)
	assert.Equal(t, "ss1", ic.ScanSettingsRef)
	// resolved through referenceableParamGroupRef
	_, ok = ic.Params().CvParam("MS:1000127")
	assert.True(t, ok)

	_, ok = c.DataProcessing.ByID("dp1")
	require.True(t, ok)

	require.NotNil(t, c.Run)
	assert.Equal(t, "run1", c.Run.ID)
	assert.Equal(t, "ic1", c.Run.DefaultInstrumentConfigurationRef)
	assert.Equal(t, "sf1", c.Run.DefaultSourceFileRef)
	assert.Equal(t, "sample1", c.Run.SampleRef)
	assert.Equal(t, "2020-01-01T00:00:00Z", c.Run.StartTimeStamp)
}

func TestParse_VersionFromSchemaLocation(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<mzML xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
      xsi:schemaLocation="http://psi.hupo.org/ms/mzml http://psidev.info/files/ms/mzML/xsd/mzML1.1.2_idx.xsd">
  <run id="r"></run>
</mzML>`
	c, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "1.1.2", c.Version)
}

func TestParse_RejectsUnsupportedDeclaredEncoding(t *testing.T) {
	doc := `<?xml version="1.0" encoding="ISO-8859-1"?>
<mzML id="x"><run id="r"></run></mzML>`
	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, mzmlerr.ErrUnsupportedFeature)
}

func TestParse_TruncatedBeforeRunErrors(t *testing.T) {
	doc := `<?xml version="1.0"?><mzML id="doc1" version="1.1.0"><cvList>`
	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)
}
