package mzml

import "github.com/sciops/mzml/internal/options"

// openConfig collects the Open/OpenBytes options, applied in the order
// given. inMemory defaults to true.
type openConfig struct {
	forceRebuild       bool
	withoutGzipExtract bool
	inMemory           bool
}

func defaultOpenConfig() openConfig {
	return openConfig{inMemory: true}
}

// OpenOption configures Open or OpenBytes.
type OpenOption = options.Option[*openConfig]

// WithBuildIndexFromScratch skips the embedded-index fast path and always
// scans the whole file to build the spectrum/chromatogram offset tables,
// matching index.WithForceRebuild.
func WithBuildIndexFromScratch() OpenOption {
	return options.NoError(func(c *openConfig) { c.forceRebuild = true })
}

// WithoutGzipExtraction skips decompressing a ".gz" input to a temp file.
// With the default WithInMemory(true) the input is then decompressed fully
// into memory; only together with WithInMemory(false) does it stay a
// streaming, non-seekable source, on which every Lookup access falls back
// to a full forward scan.
func WithoutGzipExtraction() OpenOption {
	return options.NoError(func(c *openConfig) { c.withoutGzipExtract = true })
}

// WithInMemory controls whether a non-streaming source is read fully into
// memory (true, the default) rather than memory-mapped in place (false).
func WithInMemory(v bool) OpenOption {
	return options.NoError(func(c *openConfig) { c.inMemory = v })
}
