package mzml

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"testing"

	"github.com/sciops/mzml/accession"
	"github.com/sciops/mzml/mzmlerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeFloat64LE(vals []float64) string {
	buf := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return base64.StdEncoding.EncodeToString(buf)
}

func binaryDataArrayXML(accession string, vals []float64) string {
	return fmt.Sprintf(
		`<binaryDataArray encodedLength="0">`+
			`<cvParam cvRef="MS" accession="MS:1000523" name="64-bit float" value=""/>`+
			`<cvParam cvRef="MS" accession="MS:1000576" name="no compression" value=""/>`+
			`<cvParam cvRef="MS" accession="%s" name="array" value=""/>`+
			`<binary>%s</binary></binaryDataArray>`,
		accession, encodeFloat64LE(vals),
	)
}

// emptyBinaryDataArrayXML builds a <binaryDataArray> carrying an empty
// <binary> payload, for the defaultArrayLength==0 case: binary.Decode
// reports WarningEmptyPayload for these rather than erroring.
func emptyBinaryDataArrayXML(accession string) string {
	return fmt.Sprintf(
		`<binaryDataArray encodedLength="0">`+
			`<cvParam cvRef="MS" accession="MS:1000523" name="64-bit float" value=""/>`+
			`<cvParam cvRef="MS" accession="MS:1000576" name="no compression" value=""/>`+
			`<cvParam cvRef="MS" accession="%s" name="array" value=""/>`+
			`<binary></binary></binaryDataArray>`,
		accession,
	)
}

// buildFixtureDoc constructs a small but complete mzML document: two
// centroid MS1 spectra, an MS2 spectrum carrying a precursor (isolation
// window, selected ion, activation), a defaultArrayLength==0 spectrum,
// and two chromatograms ("TIC" and "sic"), each carrying real binary data
// arrays, wrapped in an <indexedmzML> with a trailing <indexList> whose
// offsets are computed to exactly match where each element starts.
func buildFixtureDoc(t *testing.T) []byte {
	t.Helper()

	spec1MZ := []float64{100.1, 100.2, 100.3}
	spec1Int := []float64{10, 20, 30}
	spec2MZ := []float64{200.1, 200.2, 200.3}
	spec2Int := []float64{40, 50, 60}
	ticTime := []float64{0.1, 0.2, 0.3}
	ticInt := []float64{1000, 2000, 1500}
	sicTime := []float64{0.1, 0.2, 0.3}
	sicInt := []float64{300, 400, 350}

	header := `<?xml version="1.0" encoding="UTF-8"?><indexedmzML><mzML id="doc1" version="1.1.0">` +
		`<cvList count="1"><cv id="MS" fullName="PSI-MS" version="4.1.0" URI="http://purl.obolibrary.org/obo/ms.obo"/></cvList>` +
		`<fileDescription><fileContent><cvParam cvRef="MS" accession="MS:1000580" name="MSn spectrum" value=""/></fileContent></fileDescription>` +
		`<run id="run1">` +
		`<spectrumList count="4">`

	spec1 := fmt.Sprintf(
		`<spectrum id="scan=19" index="0" defaultArrayLength="3">`+
			`<cvParam cvRef="MS" accession="MS:1000511" name="ms level" value="1"/>`+
			`<cvParam cvRef="MS" accession="MS:1000127" name="centroid spectrum" value=""/>`+
			`<cvParam cvRef="MS" accession="MS:1000285" name="total ion current" value="1234.5"/>`+
			`<scanList count="1"><scan>`+
			`<cvParam cvRef="MS" accession="MS:1000016" name="scan start time" value="5.8905" unitAccession="UO:0000031" unitName="minute" unitCvRef="UO"/>`+
			`<scanWindowList count="1"><scanWindow>`+
			`<cvParam cvRef="MS" accession="MS:1000501" name="scan window lower limit" value="400.0"/>`+
			`<cvParam cvRef="MS" accession="MS:1000500" name="scan window upper limit" value="1800.0"/>`+
			`</scanWindow></scanWindowList></scan></scanList>`+
			`<binaryDataArrayList count="2">%s%s</binaryDataArrayList></spectrum>`,
		binaryDataArrayXML("MS:1000514", spec1MZ), binaryDataArrayXML("MS:1000515", spec1Int),
	)
	spec2 := fmt.Sprintf(
		`<spectrum id="scan=20" index="1" defaultArrayLength="3">`+
			`<cvParam cvRef="MS" accession="MS:1000511" name="ms level" value="1"/>`+
			`<cvParam cvRef="MS" accession="MS:1000127" name="centroid spectrum" value=""/>`+
			`<cvParam cvRef="MS" accession="MS:1000285" name="total ion current" value="5678.9"/>`+
			`<binaryDataArrayList count="2">%s%s</binaryDataArrayList></spectrum>`,
		binaryDataArrayXML("MS:1000514", spec2MZ), binaryDataArrayXML("MS:1000515", spec2Int),
	)
	spec3 := `<spectrum id="scan=21" index="2" defaultArrayLength="3">` +
		`<cvParam cvRef="MS" accession="MS:1000511" name="ms level" value="2"/>` +
		`<cvParam cvRef="MS" accession="MS:1000127" name="centroid spectrum" value=""/>` +
		`<precursorList count="1">` +
		`<precursor spectrumRef="scan=19">` +
		`<isolationWindow>` +
		`<cvParam cvRef="MS" accession="MS:1000827" name="isolation window target m/z" value="445.3"/>` +
		`<cvParam cvRef="MS" accession="MS:1000828" name="isolation window lower offset" value="0.5"/>` +
		`<cvParam cvRef="MS" accession="MS:1000829" name="isolation window upper offset" value="0.5"/>` +
		`</isolationWindow>` +
		`<selectedIonList count="1">` +
		`<selectedIon>` +
		`<cvParam cvRef="MS" accession="MS:1000744" name="selected ion m/z" value="445.34"/>` +
		`<cvParam cvRef="MS" accession="MS:1000042" name="peak intensity" value="120053.0"/>` +
		`<cvParam cvRef="MS" accession="MS:1000041" name="charge state" value="2"/>` +
		`</selectedIon>` +
		`</selectedIonList>` +
		`<activation>` +
		`<cvParam cvRef="MS" accession="MS:1000133" name="collision-induced dissociation" value=""/>` +
		`<cvParam cvRef="MS" accession="MS:1000045" name="collision energy" value="35.0"/>` +
		`</activation>` +
		`</precursor>` +
		`</precursorList>` +
		fmt.Sprintf(`<binaryDataArrayList count="2">%s%s</binaryDataArrayList></spectrum>`,
			binaryDataArrayXML("MS:1000514", spec1MZ), binaryDataArrayXML("MS:1000515", spec1Int),
		)
	spec4 := fmt.Sprintf(
		`<spectrum id="scan=22" index="3" defaultArrayLength="0">`+
			`<cvParam cvRef="MS" accession="MS:1000511" name="ms level" value="1"/>`+
			`<cvParam cvRef="MS" accession="MS:1000127" name="centroid spectrum" value=""/>`+
			`<binaryDataArrayList count="2">%s%s</binaryDataArrayList></spectrum>`,
		emptyBinaryDataArrayXML("MS:1000514"), emptyBinaryDataArrayXML("MS:1000515"),
	)

	middle := `</spectrumList><chromatogramList count="2">`

	chrom1 := fmt.Sprintf(
		`<chromatogram id="TIC" index="0" defaultArrayLength="3">`+
			`<cvParam cvRef="MS" accession="MS:1000235" name="total ion current chromatogram" value=""/>`+
			`<binaryDataArrayList count="2">%s%s</binaryDataArrayList></chromatogram>`,
		binaryDataArrayXML("MS:1000595", ticTime), binaryDataArrayXML("MS:1000515", ticInt),
	)
	chrom2 := fmt.Sprintf(
		`<chromatogram id="sic" index="1" defaultArrayLength="3">`+
			`<cvParam cvRef="MS" accession="MS:1000627" name="selected ion current chromatogram" value=""/>`+
			`<binaryDataArrayList count="2">%s%s</binaryDataArrayList></chromatogram>`,
		binaryDataArrayXML("MS:1000595", sicTime), binaryDataArrayXML("MS:1000515", sicInt),
	)

	tail := `</chromatogramList></run></mzML>`

	buf := header
	spec1Off := int64(len(buf))
	buf += spec1
	spec2Off := int64(len(buf))
	buf += spec2
	spec3Off := int64(len(buf))
	buf += spec3
	spec4Off := int64(len(buf))
	buf += spec4
	buf += middle
	chrom1Off := int64(len(buf))
	buf += chrom1
	chrom2Off := int64(len(buf))
	buf += chrom2
	buf += tail

	indexListOffset := int64(len(buf))
	idx := fmt.Sprintf(
		"<indexList>\n<index name=\"spectrum\">\n<offset idRef=\"scan=19\">%d</offset>\n"+
			"<offset idRef=\"scan=20\">%d</offset>\n"+
			"<offset idRef=\"scan=21\">%d</offset>\n"+
			"<offset idRef=\"scan=22\">%d</offset>\n</index>\n"+
			"<index name=\"chromatogram\">\n<offset idRef=\"TIC\">%d</offset>\n"+
			"<offset idRef=\"sic\">%d</offset>\n</index>\n</indexList>\n",
		spec1Off, spec2Off, spec3Off, spec4Off, chrom1Off, chrom2Off,
	)
	buf += idx
	buf += fmt.Sprintf(`<indexListOffset>%d</indexListOffset></indexedmzML>`, indexListOffset)

	return []byte(buf)
}

func TestReader_HeaderAndSpectra(t *testing.T) {
	doc := buildFixtureDoc(t)
	r, err := OpenBytes(doc)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "doc1", r.ID())
	assert.Equal(t, "1.1.0", r.Version())
	require.Len(t, r.CVList(), 1)
	assert.True(t, r.SupportsRandomAccess())
	assert.Empty(t, r.Warnings())

	require.Equal(t, 4, r.Spectra().Count())

	s, err := r.Spectra().ByID("scan=19")
	require.NoError(t, err)
	assert.Equal(t, "scan=19", s.ID())
	idx, ok := s.Index()
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	level, ok := s.MSLevel()
	require.True(t, ok)
	assert.Equal(t, 1, level)
	assert.Equal(t, "centroid", s.SpectrumType())

	tic, ok := s.TotalIonCurrent()
	require.True(t, ok)
	assert.Equal(t, 1234.5, tic)

	mz, warnings, err := s.MZArray()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []float64{100.1, 100.2, 100.3}, mz)

	intensity, _, err := s.IntensityArray()
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, intensity)

	s2, err := r.Spectra().ByIndex(1)
	require.NoError(t, err)
	assert.Equal(t, "scan=20", s2.ID())
}

func TestReader_SpectrumScan(t *testing.T) {
	doc := buildFixtureDoc(t)
	r, err := OpenBytes(doc)
	require.NoError(t, err)
	defer r.Close()

	s, err := r.Spectra().ByID("scan=19")
	require.NoError(t, err)

	scans := s.Scans()
	require.Len(t, scans, 1)

	// The document stores 5.8905 minutes; StartTime normalizes to seconds.
	start, ok := scans[0].StartTime()
	require.True(t, ok)
	assert.InDelta(t, 353.43, start, 1e-9)

	windows := scans[0].ScanWindows()
	require.Len(t, windows, 1)
	lower, ok := windows[0].LowerLimit()
	require.True(t, ok)
	assert.Equal(t, 400.0, lower)
	upper, ok := windows[0].UpperLimit()
	require.True(t, ok)
	assert.Equal(t, 1800.0, upper)
}

func TestLookup_BySlice(t *testing.T) {
	doc := buildFixtureDoc(t)
	r, err := OpenBytes(doc)
	require.NoError(t, err)
	defer r.Close()

	// A stop beyond the count clamps rather than erroring.
	tail, err := r.Spectra().BySlice(1, 100, 1)
	require.NoError(t, err)
	require.Len(t, tail, 3)
	assert.Equal(t, "scan=20", tail[0].ID())
	assert.Equal(t, "scan=22", tail[2].ID())

	stepped, err := r.Spectra().BySlice(0, 4, 2)
	require.NoError(t, err)
	require.Len(t, stepped, 2)
	assert.Equal(t, "scan=19", stepped[0].ID())
	assert.Equal(t, "scan=21", stepped[1].ID())

	_, err = r.Spectra().BySlice(0, 4, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, mzmlerr.ErrOutOfRange)
}

func TestReader_Chromatograms(t *testing.T) {
	doc := buildFixtureDoc(t)
	r, err := OpenBytes(doc)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, 2, r.Chromatograms().Count())

	tic, ok := r.TIC()
	require.True(t, ok)
	assert.Equal(t, "TIC", tic.ID())
	assert.Equal(t, accession.ChromatogramTypeTIC, tic.ChromatogramType())

	times, _, err := tic.TimeArray()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, times)

	intensities, _, err := tic.IntensityArray()
	require.NoError(t, err)
	assert.Equal(t, []float64{1000, 2000, 1500}, intensities)

	sic, err := r.Chromatograms().ByIndex(1)
	require.NoError(t, err)
	assert.Equal(t, "sic", sic.ID())
}

func TestReader_SpectrumPrecursor(t *testing.T) {
	doc := buildFixtureDoc(t)
	r, err := OpenBytes(doc)
	require.NoError(t, err)
	defer r.Close()

	s, err := r.Spectra().ByID("scan=21")
	require.NoError(t, err)

	level, ok := s.MSLevel()
	require.True(t, ok)
	assert.Equal(t, 2, level)

	precursors := s.Precursors()
	require.Len(t, precursors, 1)
	p := precursors[0]

	ref, ok := p.SpectrumRef()
	require.True(t, ok)
	assert.Equal(t, "scan=19", ref)

	iw, ok := p.IsolationWindow()
	require.True(t, ok)
	target, ok := iw.TargetMZ()
	require.True(t, ok)
	assert.Equal(t, 445.3, target)
	lower, ok := iw.LowerOffset()
	require.True(t, ok)
	assert.Equal(t, 0.5, lower)
	upper, ok := iw.UpperOffset()
	require.True(t, ok)
	assert.Equal(t, 0.5, upper)

	ions := p.SelectedIons()
	require.Len(t, ions, 1)
	mz, ok := ions[0].MZ()
	require.True(t, ok)
	assert.Equal(t, 445.34, mz)
	intensity, ok := ions[0].PeakIntensity()
	require.True(t, ok)
	assert.Equal(t, 120053.0, intensity)
	charge, ok := ions[0].ChargeState()
	require.True(t, ok)
	assert.Equal(t, 2, charge)

	act, ok := p.Activation()
	require.True(t, ok)
	assert.Equal(t, accession.ActivationTypeCID, act.Type())
	energy, ok := act.CollisionEnergy()
	require.True(t, ok)
	assert.Equal(t, 35.0, energy)
}

func TestReader_EmptyArraySpectrum(t *testing.T) {
	doc := buildFixtureDoc(t)
	r, err := OpenBytes(doc)
	require.NoError(t, err)
	defer r.Close()

	s, err := r.Spectra().ByID("scan=22")
	require.NoError(t, err)

	length, ok := s.DefaultArrayLength()
	require.True(t, ok)
	assert.Equal(t, 0, length)

	mz, warnings, err := s.MZArray()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, mzmlerr.WarningEmptyPayload, warnings[0].Kind)
	assert.Empty(t, mz)

	intensity, warnings, err := s.IntensityArray()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, mzmlerr.WarningEmptyPayload, warnings[0].Kind)
	assert.Empty(t, intensity)
}

func TestReader_NotFound(t *testing.T) {
	doc := buildFixtureDoc(t)
	r, err := OpenBytes(doc)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Spectra().ByID("does-not-exist")
	require.Error(t, err)
}

func TestReader_BuildIndexFromScratchMatchesFastPath(t *testing.T) {
	doc := buildFixtureDoc(t)

	fast, err := OpenBytes(doc)
	require.NoError(t, err)
	defer fast.Close()

	rebuilt, err := OpenBytes(doc, WithBuildIndexFromScratch())
	require.NoError(t, err)
	defer rebuilt.Close()

	assert.Equal(t, fast.Spectra().Count(), rebuilt.Spectra().Count())
	assert.Equal(t, fast.Chromatograms().Count(), rebuilt.Chromatograms().Count())
}
