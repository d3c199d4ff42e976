// Package source provides the three concrete file-format backends mzml
// reads through: a memory-mapped plain file, an in-memory byte buffer, and
// a non-seekable gzip stream. All three satisfy Source; SupportsRandomAccess
// tells the caller which cost model it is getting.
package source

import "io"

// Source is the seek-capable (or not) binary/text view mzml.Reader and its
// subsystems (index, subtree) read through.
type Source interface {
	// SupportsRandomAccess reports whether NewReaderAt and ReadTail are
	// usable. Gzip streams return false; the caller must fall back to a
	// full forward scan for every lookup.
	SupportsRandomAccess() bool

	// Size returns the total byte length and whether it is known. Gzip
	// streams report (0, false).
	Size() (int64, bool)

	// ReadTail returns the last n bytes of the file (or the whole file if
	// it is shorter than n). Only valid when SupportsRandomAccess is true.
	ReadTail(n int) ([]byte, error)

	// NewReaderAt opens a fresh binary cursor positioned at offset. Only
	// valid when SupportsRandomAccess is true. Callers must Close it.
	NewReaderAt(offset int64) (io.ReadCloser, error)

	// NewTextReader opens a fresh cursor at the start of the file, for
	// header streaming and encoding detection. Callers must Close it.
	NewTextReader() (io.ReadCloser, error)

	// Close releases every resource this Source owns: file descriptors,
	// mmap'd regions, and any temp file created to extract a gzip file.
	Close() error
}
