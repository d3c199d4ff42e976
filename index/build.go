package index

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/sciops/mzml/internal/options"
	"github.com/sciops/mzml/mzmlerr"
	"github.com/sciops/mzml/source"
)

// tailWindow is how far from the end of the file the fast path searches
// for <indexListOffset>.
const tailWindow = 10 * 1024

// The fallback scan reads 8KiB chunks with a 100-byte overlap so an
// element-start pattern straddling a chunk boundary is still captured
// exactly once in the overlap region.
const (
	fallbackChunkSize = 8 * 1024
	fallbackOverlap   = 100
)

// Build locates or reconstructs the spectrum and chromatogram offset
// tables for src. It tries the embedded-index fast path first unless
// WithForceRebuild is given, falling back to a full scan on any fast-path
// failure. Duplicate-offset violations are fatal regardless of which path
// produced them; a found-vs-declared count mismatch on the fallback path
// is reported as a non-fatal Warning.
func Build(src source.Source, opts ...BuildOption) (spectra, chromatograms *Table, warnings []mzmlerr.Warning, err error) {
	cfg := &buildConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, nil, nil, err
	}

	if !cfg.forceRebuild {
		spectra, chromatograms, fastErr := fastPathBuild(src)
		if fastErr == nil {
			if verr := validateUnique(spectra, chromatograms); verr != nil {
				return nil, nil, nil, verr
			}
			return spectra, chromatograms, nil, nil
		}
		// Fast-path failure (no indexListOffset, malformed index) recovers
		// by falling back.
	}

	spectra, chromatograms, declaredSpectra, declaredChromatograms, err := fallbackBuild(src)
	if err != nil {
		return nil, nil, nil, err
	}

	if verr := validateUnique(spectra, chromatograms); verr != nil {
		return nil, nil, nil, verr
	}

	if declaredSpectra >= 0 && declaredSpectra != spectra.Len() {
		warnings = append(warnings, mzmlerr.Warning{
			Kind:    mzmlerr.WarningCountMismatch,
			Message: fmt.Sprintf("spectrumList declared count=%d but found %d spectra; file may be truncated", declaredSpectra, spectra.Len()),
		})
	}
	if declaredChromatograms >= 0 && declaredChromatograms != chromatograms.Len() {
		warnings = append(warnings, mzmlerr.Warning{
			Kind:    mzmlerr.WarningCountMismatch,
			Message: fmt.Sprintf("chromatogramList declared count=%d but found %d chromatograms; file may be truncated", declaredChromatograms, chromatograms.Len()),
		})
	}

	return spectra, chromatograms, warnings, nil
}

// validateUnique checks that no offset is duplicated within a table and no
// offset is shared between the two tables, in a single pass: any offset
// seen twice, whether within one table or across both, is a violation.
func validateUnique(spectra, chromatograms *Table) error {
	seen := make(map[int64]string, spectra.Len()+chromatograms.Len())
	for _, id := range spectra.Keys() {
		off, _ := spectra.Offset(id)
		if prev, ok := seen[off]; ok {
			return fmt.Errorf("%w: offset %d shared by %q and %q", mzmlerr.ErrFormat, off, prev, id)
		}
		seen[off] = id
	}
	for _, id := range chromatograms.Keys() {
		off, _ := chromatograms.Offset(id)
		if prev, ok := seen[off]; ok {
			return fmt.Errorf("%w: offset %d shared by %q and %q", mzmlerr.ErrFormat, off, prev, id)
		}
		seen[off] = id
	}
	return nil
}

func fastPathBuild(src source.Source) (spectra, chromatograms *Table, err error) {
	if !src.SupportsRandomAccess() {
		return nil, nil, fmt.Errorf("%w: source does not support random access", mzmlerr.ErrUnsupportedFeature)
	}

	tail, err := src.ReadTail(tailWindow)
	if err != nil {
		return nil, nil, err
	}

	m := indexListOffsetRe.FindSubmatch(tail)
	if m == nil {
		return nil, nil, fmt.Errorf("no indexListOffset found in last %d bytes", tailWindow)
	}

	offset, err := strconv.ParseInt(string(m[1]), 10, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid indexListOffset %q: %w", m[1], err)
	}

	r, err := src.NewReaderAt(offset)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}

	spectra = NewTable()
	chromatograms = NewTable()

	var current *Table
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.Contains(line, indexListCloseTag) {
			break
		}
		if sm := indexSectionRe.FindSubmatch(line); sm != nil {
			switch string(sm[1]) {
			case "spectrum":
				current = spectra
			case "chromatogram":
				current = chromatograms
			default:
				current = nil
			}
			continue
		}
		if em := indexEntryRe.FindSubmatch(line); em != nil && current != nil {
			off, perr := strconv.ParseInt(string(em[2]), 10, 64)
			if perr != nil {
				continue
			}
			current.Add(string(em[1]), off)
		}
	}

	if spectra.Len() == 0 && chromatograms.Len() == 0 {
		return nil, nil, fmt.Errorf("embedded index at offset %d produced no entries", offset)
	}

	return spectra, chromatograms, nil
}

func fallbackBuild(src source.Source) (spectra, chromatograms *Table, declaredSpectra, declaredChromatograms int, err error) {
	if !src.SupportsRandomAccess() {
		return nil, nil, -1, -1, fmt.Errorf("%w: source does not support random access", mzmlerr.ErrUnsupportedFeature)
	}

	r, err := src.NewReaderAt(0)
	if err != nil {
		return nil, nil, -1, -1, err
	}
	defer r.Close()

	spectra = NewTable()
	chromatograms = NewTable()
	declaredSpectra = -1
	declaredChromatograms = -1

	chunk := make([]byte, fallbackChunkSize)
	var window []byte
	var windowStart int64

	for {
		n, rerr := io.ReadFull(r, chunk)
		if n > 0 {
			window = append(window, chunk[:n]...)
		}

		eof := rerr == io.EOF || rerr == io.ErrUnexpectedEOF
		if rerr != nil && !eof {
			return nil, nil, -1, -1, rerr
		}

		scanStarts(window, windowStart, spectrumStartRe, spectra)
		scanStarts(window, windowStart, chromatogramStartRe, chromatograms)

		if declaredSpectra < 0 {
			if sm := spectrumListCountRe.FindSubmatch(window); sm != nil {
				if v, perr := strconv.Atoi(string(sm[1])); perr == nil {
					declaredSpectra = v
				}
			}
		}
		if declaredChromatograms < 0 {
			if cm := chromListCountRe.FindSubmatch(window); cm != nil {
				if v, perr := strconv.Atoi(string(cm[1])); perr == nil {
					declaredChromatograms = v
				}
			}
		}

		if eof {
			break
		}

		if len(window) > fallbackOverlap {
			keep := len(window) - fallbackOverlap
			windowStart += int64(keep)
			window = append([]byte(nil), window[keep:]...)
		}
	}

	return spectra, chromatograms, declaredSpectra, declaredChromatograms, nil
}

// scanStarts finds every match of re in window and records it in table at
// its absolute offset (windowStart + match start). Re-finding the same
// element in the carried-over overlap region just re-Adds the same
// (id, offset) pair, which Table.Add treats as a no-op for ordering.
func scanStarts(window []byte, windowStart int64, re interface {
	FindAllSubmatchIndex([]byte, int) [][]int
}, table *Table) {
	for _, loc := range re.FindAllSubmatchIndex(window, -1) {
		start, idStart, idEnd := loc[0], loc[2], loc[3]
		id := string(window[idStart:idEnd])
		table.Add(id, windowStart+int64(start))
	}
}
