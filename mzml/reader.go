// Package mzml is the top-level reader: it wires the source multiplexer,
// header streaming parser, offset index, and binary decode pipeline
// together behind a single Reader, random-access-by-default with a
// streaming fallback for non-seekable (gzip) sources.
package mzml

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"iter"

	"github.com/sciops/mzml/index"
	"github.com/sciops/mzml/internal/options"
	"github.com/sciops/mzml/metadata"
	"github.com/sciops/mzml/mzmlerr"
	"github.com/sciops/mzml/source"
	"github.com/sciops/mzml/subtree"
)

// Reader is a parsed mzML document: resolved header metadata plus
// random-access (or streaming-fallback) lookups over its spectra and
// chromatograms. Not safe for concurrent use without external locking.
type Reader struct {
	src     source.Source
	content *metadata.Content

	spectraTable      *index.Table
	chromatogramTable *index.Table

	warnings []mzmlerr.Warning

	spectra       *Lookup[Spectrum]
	chromatograms *Lookup[Chromatogram]
}

// Open opens path (plain, or gzip-compressed with a ".gz" suffix) and
// parses its header metadata and offset index.
func Open(path string, opts ...OpenOption) (*Reader, error) {
	cfg := defaultOpenConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	src, err := source.Open(path, !cfg.withoutGzipExtract, cfg.inMemory)
	if err != nil {
		return nil, err
	}
	return newReader(src, cfg)
}

// OpenBytes parses an in-memory mzML document, ignoring any gzip-related
// options (the bytes are assumed to already be decompressed mzML XML).
func OpenBytes(data []byte, opts ...OpenOption) (*Reader, error) {
	cfg := defaultOpenConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}
	return newReader(source.NewMemorySource(data), cfg)
}

func newReader(src source.Source, cfg openConfig) (r *Reader, err error) {
	defer func() {
		if err != nil {
			src.Close()
		}
	}()

	textReader, err := src.NewTextReader()
	if err != nil {
		return nil, err
	}
	content, err := metadata.Parse(textReader)
	textReader.Close()
	if err != nil {
		return nil, err
	}

	r = &Reader{src: src, content: content}

	if src.SupportsRandomAccess() {
		var buildOpts []index.BuildOption
		if cfg.forceRebuild {
			buildOpts = append(buildOpts, index.WithForceRebuild())
		}
		spectra, chromatograms, warnings, err := index.Build(src, buildOpts...)
		if err != nil {
			return nil, err
		}
		r.spectraTable = spectra
		r.chromatogramTable = chromatograms
		r.warnings = warnings
		r.spectra = randomAccessLookup(r, spectra, subtree.KindSpectrum, newSpectrum)
		r.chromatograms = randomAccessLookup(r, chromatograms, subtree.KindChromatogram, newChromatogram)
	} else {
		r.spectra = streamingLookup(r, "spectrum", newSpectrum)
		r.chromatograms = streamingLookup(r, "chromatogram", newChromatogram)
	}

	return r, nil
}

func randomAccessLookup[T any](r *Reader, table *index.Table, kind subtree.ElementKind, wrap func(*subtree.Element, map[string]*subtree.Element) T) *Lookup[T] {
	groups := r.content.ReferenceableParamGroups

	byID := func(id string) (T, error) {
		var zero T
		offset, ok := table.Offset(id)
		if !ok {
			return zero, fmt.Errorf("%w: id %q", mzmlerr.ErrNotFound, id)
		}
		el, err := r.extractAt(offset, kind)
		if err != nil {
			return zero, err
		}
		return wrap(el, groups), nil
	}

	byIndex := func(i int) (T, error) {
		var zero T
		id, ok := table.KeyAt(i)
		if !ok {
			return zero, fmt.Errorf("%w: index %d", mzmlerr.ErrOutOfRange, i)
		}
		return byID(id)
	}

	count := func() int { return table.Len() }

	all := func() iter.Seq2[T, error] {
		return func(yield func(T, error) bool) {
			for _, id := range table.Keys() {
				item, err := byID(id)
				if !yield(item, err) {
					return
				}
				if err != nil {
					return
				}
			}
		}
	}

	return &Lookup[T]{byID: byID, byIndex: byIndex, count: count, all: all}
}

func (r *Reader) extractAt(offset int64, kind subtree.ElementKind) (*subtree.Element, error) {
	rc, err := r.src.NewReaderAt(offset)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return subtree.Extract(rc, kind)
}

// streamingLookup builds a Lookup backed by a full forward token scan,
// used for non-seekable gzip sources. Every access reopens the source from
// the start and scans forward, since there is no index to consult.
func streamingLookup[T any](r *Reader, tag string, wrap func(*subtree.Element, map[string]*subtree.Element) T) *Lookup[T] {
	groups := r.content.ReferenceableParamGroups

	all := func() iter.Seq2[T, error] {
		return func(yield func(T, error) bool) {
			var zero T
			rc, err := r.src.NewTextReader()
			if err != nil {
				yield(zero, err)
				return
			}
			defer rc.Close()

			br := bufio.NewReader(rc)
			enc, err := source.DetectEncoding(br)
			if err != nil {
				yield(zero, fmt.Errorf("%w: detecting encoding: %v", mzmlerr.ErrFormat, err))
				return
			}
			if !source.IsEncodingSupported(enc) {
				yield(zero, fmt.Errorf("%w: declared encoding %q has no decoder wired in", mzmlerr.ErrUnsupportedFeature, enc))
				return
			}

			dec := xml.NewDecoder(br)
			dec.Strict = false
			dec.CharsetReader = passthroughCharsetReader

			for {
				tok, terr := dec.Token()
				if terr != nil {
					if terr != io.EOF {
						yield(zero, terr)
					}
					return
				}
				start, ok := tok.(xml.StartElement)
				if !ok || start.Name.Local != tag {
					continue
				}
				el, cerr := subtree.Capture(dec, start)
				if cerr != nil {
					yield(zero, cerr)
					return
				}
				if !yield(wrap(el, groups), nil) {
					return
				}
			}
		}
	}

	byID := func(id string) (T, error) {
		var zero T
		for item, err := range all() {
			if err != nil {
				return zero, err
			}
			if idOf(item) == id {
				return item, nil
			}
		}
		return zero, fmt.Errorf("%w: id %q", mzmlerr.ErrNotFound, id)
	}

	byIndex := func(i int) (T, error) {
		var zero T
		if i < 0 {
			return zero, fmt.Errorf("%w: index %d", mzmlerr.ErrOutOfRange, i)
		}
		n := 0
		for item, err := range all() {
			if err != nil {
				return zero, err
			}
			if n == i {
				return item, nil
			}
			n++
		}
		return zero, fmt.Errorf("%w: index %d", mzmlerr.ErrOutOfRange, i)
	}

	// count is unknown without a full scan; -1 signals "unknown".
	count := func() int { return -1 }

	return &Lookup[T]{byID: byID, byIndex: byIndex, count: count, all: all}
}

// idOf extracts the native id from a Spectrum or Chromatogram without a
// shared interface, since both already expose an identical-shaped ID()
// method but Go generics can't express that constraint without one.
func idOf(v any) string {
	switch t := v.(type) {
	case Spectrum:
		return t.ID()
	case Chromatogram:
		return t.ID()
	default:
		return ""
	}
}

// passthroughCharsetReader mirrors metadata's charset handling for the
// streaming forward scan, which opens its own fresh decoder: by the time
// xml.Decoder calls this, source.IsEncodingSupported has already rejected
// any declared encoding with no decoder wired in, so this only ever runs
// for an encoding already known to be safe to read as raw UTF-8 bytes.
func passthroughCharsetReader(_ string, input io.Reader) (io.Reader, error) {
	return input, nil
}

// Spectra returns the lookup for this document's spectra.
func (r *Reader) Spectra() *Lookup[Spectrum] { return r.spectra }

// Chromatograms returns the lookup for this document's chromatograms.
func (r *Reader) Chromatograms() *Lookup[Chromatogram] { return r.chromatograms }

// TIC returns the chromatogram with native id "TIC", if present.
func (r *Reader) TIC() (Chromatogram, bool) {
	c, err := r.chromatograms.ByID("TIC")
	if err != nil {
		return Chromatogram{}, false
	}
	return c, true
}

// ID returns the document's mzML id attribute.
func (r *Reader) ID() string { return r.content.ID }

// Version returns the document's mzML schema version.
func (r *Reader) Version() string { return r.content.Version }

// CVList returns the document's declared controlled vocabularies.
func (r *Reader) CVList() []metadata.CV { return r.content.CVList }

// FileDescription returns the document's file description, if present.
func (r *Reader) FileDescription() *metadata.FileDescription { return r.content.FileDescription }

// InstrumentConfigurations returns the document's instrument
// configurations, in document order.
func (r *Reader) InstrumentConfigurations() []metadata.InstrumentConfiguration {
	return r.content.InstrumentConfigurations.List()
}

// InstrumentConfigurationByID returns the instrument configuration with
// the given id, if present.
func (r *Reader) InstrumentConfigurationByID(id string) (metadata.InstrumentConfiguration, bool) {
	return r.content.InstrumentConfigurations.ByID(id)
}

// Samples returns the document's declared samples, in document order.
func (r *Reader) Samples() []metadata.Sample { return r.content.Samples }

// Softwares returns the document's declared software tools, in document
// order.
func (r *Reader) Softwares() []metadata.Software { return r.content.Softwares }

// ScanSettings returns the document's scan settings, in document order.
func (r *Reader) ScanSettings() []metadata.ScanSetting { return r.content.ScanSettings.List() }

// ScanSettingByID returns the scan setting with the given id, if present.
func (r *Reader) ScanSettingByID(id string) (metadata.ScanSetting, bool) {
	return r.content.ScanSettings.ByID(id)
}

// DataProcessing returns the document's data processing entries, in
// document order.
func (r *Reader) DataProcessing() []metadata.DataProcessing { return r.content.DataProcessing.List() }

// DataProcessingByID returns the data processing entry with the given id,
// if present.
func (r *Reader) DataProcessingByID(id string) (metadata.DataProcessing, bool) {
	return r.content.DataProcessing.ByID(id)
}

// Run returns the document's run descriptor.
func (r *Reader) Run() *metadata.Run { return r.content.Run }

// SupportsRandomAccess reports whether this Reader's source permits
// direct offset lookups (true for plain and in-memory sources, false for
// a streaming gzip source).
func (r *Reader) SupportsRandomAccess() bool { return r.src.SupportsRandomAccess() }

// Warnings returns every non-fatal warning collected while building the
// offset index. binary.Decode's per-array warnings are not accumulated
// here; callers decoding arrays directly receive them from Decode itself.
func (r *Reader) Warnings() []mzmlerr.Warning { return r.warnings }

// Close releases the underlying source's resources.
func (r *Reader) Close() error { return r.src.Close() }
