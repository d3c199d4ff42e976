package index

import "regexp"

// The byte patterns the indexer matches against raw file content. The
// offset tables are only as good as these, so they are deliberately
// narrow: attribute order and quoting are taken as mzML writers emit them.
var (
	indexListOffsetRe = regexp.MustCompile(`<indexListOffset>(\d+)</indexListOffset>`)
	indexSectionRe    = regexp.MustCompile(`<index name="([^"]+)">`)
	indexEntryRe      = regexp.MustCompile(`<offset idRef="([^"]+)"[^>]*>(\d+)</offset>`)
	indexListCloseTag = []byte("</indexList>")

	spectrumStartRe     = regexp.MustCompile(`<\s*spectrum[^>]*id="([^"]+)"`)
	chromatogramStartRe = regexp.MustCompile(`<\s*chromatogram[^>]*id="([^"]+)"`)
	spectrumListCountRe = regexp.MustCompile(`<\s*spectrumList\s*count="([^"]+)"`)
	chromListCountRe    = regexp.MustCompile(`<\s*chromatogramList\s*count="([^"]+)"`)
)
