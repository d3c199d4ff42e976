package metadata

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"

	"github.com/sciops/mzml/mzmlerr"
	"github.com/sciops/mzml/source"
	"github.com/sciops/mzml/subtree"
)

// versionPattern extracts the first d.d.d token from the mzML root's
// xsi:schemaLocation attribute, the fallback source for the document
// version when the version attribute itself is absent. The first match
// wins: every real-world mzML schemaLocation lists the version token
// before anything else that could also match the pattern.
var versionPattern = regexp.MustCompile(`[0-9]+\.[0-9]+\.[0-9]+`)

// schemaLocationLocal is the local name xml.Decoder reports for
// xsi:schemaLocation regardless of the xsi prefix bound in the document.
const schemaLocationLocal = "schemaLocation"

// Parse reads header metadata from r, stopping the instant it reaches the
// <run> element's start tag without consuming any of run's children.
// Attribute-only elements (mzML, cv, run; the last of these ends the
// parse) are read from their start tags; list elements are captured whole
// via subtree.Capture, which consumes an element through to its matching
// end token by the time it returns.
func Parse(r io.Reader) (*Content, error) {
	br := bufio.NewReader(r)
	enc, err := source.DetectEncoding(br)
	if err != nil {
		return nil, fmt.Errorf("%w: header parse: detecting encoding: %v", mzmlerr.ErrFormat, err)
	}
	if !source.IsEncodingSupported(enc) {
		return nil, fmt.Errorf("%w: header parse: declared encoding %q has no decoder wired in", mzmlerr.ErrUnsupportedFeature, enc)
	}

	dec := xml.NewDecoder(br)
	dec.Strict = false
	dec.CharsetReader = passthroughCharsetReader

	c := &Content{
		ReferenceableParamGroups: make(map[string]*subtree.Element),
		ScanSettings:             newByIDList[ScanSetting](),
		InstrumentConfigurations: newByIDList[InstrumentConfiguration](),
		DataProcessing:           newByIDList[DataProcessing](),
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("%w: header parse: reached end of file before <run>", mzmlerr.ErrFormat)
			}
			return nil, fmt.Errorf("%w: header parse: %v", mzmlerr.ErrFormat, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "mzML":
			applyMzMLAttrs(c, start)

		case "run":
			c.Run = runFromAttrs(start)
			return c, nil

		case "cv":
			cv := cvFromAttrs(start)
			c.CVList = append(c.CVList, cv)
			if cv.ID == "MS" {
				c.OBOVersion = cv.Version
			}

		case "fileDescription":
			el, err := subtree.Capture(dec, start)
			if err != nil {
				return nil, err
			}
			c.FileDescription = newFileDescription(el, c.ReferenceableParamGroups)

		case "referenceableParamGroupList":
			el, err := subtree.Capture(dec, start)
			if err != nil {
				return nil, err
			}
			for _, g := range el.ChildrenTagged("referenceableParamGroup") {
				if id, ok := g.Attr("id"); ok {
					c.ReferenceableParamGroups[id] = g
				}
			}

		case "softwareList":
			el, err := subtree.Capture(dec, start)
			if err != nil {
				return nil, err
			}
			for _, s := range el.ChildrenTagged("software") {
				c.Softwares = append(c.Softwares, newSoftware(s, c.ReferenceableParamGroups))
			}

		case "sampleList":
			el, err := subtree.Capture(dec, start)
			if err != nil {
				return nil, err
			}
			for _, s := range el.ChildrenTagged("sample") {
				c.Samples = append(c.Samples, newSample(s, c.ReferenceableParamGroups))
			}

		case "scanSettingsList":
			el, err := subtree.Capture(dec, start)
			if err != nil {
				return nil, err
			}
			for _, s := range el.ChildrenTagged("scanSettings") {
				ss := newScanSetting(s, c.ReferenceableParamGroups)
				c.ScanSettings.Add(ss.ID(), ss)
			}

		case "instrumentConfigurationList":
			el, err := subtree.Capture(dec, start)
			if err != nil {
				return nil, err
			}
			for _, s := range el.ChildrenTagged("instrumentConfiguration") {
				ic := newInstrumentConfiguration(s, c.ReferenceableParamGroups)
				c.InstrumentConfigurations.Add(ic.ID(), ic)
			}

		case "dataProcessingList":
			el, err := subtree.Capture(dec, start)
			if err != nil {
				return nil, err
			}
			for _, s := range el.ChildrenTagged("dataProcessing") {
				dp := newDataProcessing(s, c.ReferenceableParamGroups)
				c.DataProcessing.Add(dp.ID(), dp)
			}
		}
	}
}

func applyMzMLAttrs(c *Content, start xml.StartElement) {
	var schemaLocation string
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "version":
			c.Version = a.Value
		case "id":
			c.ID = a.Value
		case schemaLocationLocal:
			schemaLocation = a.Value
		}
	}
	if c.Version == "" && schemaLocation != "" {
		if m := versionPattern.FindString(schemaLocation); m != "" {
			c.Version = m
		}
	}
}

func cvFromAttrs(start xml.StartElement) CV {
	var cv CV
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "id":
			cv.ID = a.Value
		case "fullName":
			cv.FullName = a.Value
		case "version":
			cv.Version = a.Value
		case "URI":
			cv.URI = a.Value
		}
	}
	return cv
}

func runFromAttrs(start xml.StartElement) *Run {
	run := &Run{}
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "id":
			run.ID = a.Value
		case "defaultInstrumentConfigurationRef":
			run.DefaultInstrumentConfigurationRef = a.Value
		case "defaultSourceFileRef":
			run.DefaultSourceFileRef = a.Value
		case "sampleRef":
			run.SampleRef = a.Value
		case "startTimeStamp":
			run.StartTimeStamp = a.Value
		}
	}
	return run
}

// passthroughCharsetReader hands the raw byte stream back unchanged. By
// the time xml.Decoder calls this (for any encoding name other than the
// UTF-8/US-ASCII it already treats as identity), Parse has already
// rejected any declared encoding source.IsEncodingSupported doesn't
// recognize, so this is only ever reached for an encoding already known
// to be safe to read as raw UTF-8 bytes.
func passthroughCharsetReader(_ string, input io.Reader) (io.Reader, error) {
	return input, nil
}
