// Package index builds and validates the byte-offset tables that give
// mzml.Reader random access to spectra and chromatograms: a fast path that
// trusts an embedded <indexListOffset> footer, and a fallback that scans
// the whole file for element-start patterns when the fast path is absent
// or unparsable.
package index

// Table is an insertion-ordered mapping from native identifier string to
// absolute byte offset, iterable in original document order.
// A re-Add of an id already present updates its offset but does not move
// its position in Keys: the fallback scanner's overlapping chunk reads
// rediscover a boundary-straddling element more than once, and the second
// discovery must not perturb document order.
type Table struct {
	keys    []string
	offsets map[string]int64
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{offsets: make(map[string]int64)}
}

// Add records id at offset, appending id to Keys only the first time it is
// seen.
func (t *Table) Add(id string, offset int64) {
	if _, exists := t.offsets[id]; !exists {
		t.keys = append(t.keys, id)
	}
	t.offsets[id] = offset
}

// Len returns the number of distinct identifiers recorded.
func (t *Table) Len() int {
	return len(t.keys)
}

// Keys returns the identifiers in original document order. The caller must
// not mutate the returned slice.
func (t *Table) Keys() []string {
	return t.keys
}

// Offset returns the byte offset for id, and whether id is present.
func (t *Table) Offset(id string) (int64, bool) {
	off, ok := t.offsets[id]
	return off, ok
}

// KeyAt returns the identifier at 0-based position i in document order, and
// whether i is in range.
func (t *Table) KeyAt(i int) (string, bool) {
	if i < 0 || i >= len(t.keys) {
		return "", false
	}
	return t.keys[i], true
}
