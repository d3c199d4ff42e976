package mzml

import (
	"fmt"
	"iter"

	"github.com/sciops/mzml/mzmlerr"
)

// Lookup is the generic locator capability shared by Spectra() and
// Chromatograms(): a struct holding the three access hooks (by id, by
// index, and a full-order iterator), so the random-access and streaming
// implementations differ only in the closures they install.
type Lookup[T any] struct {
	byID    func(id string) (T, error)
	byIndex func(i int) (T, error)
	all     func() iter.Seq2[T, error]
	count   func() int
}

// ByID returns the item with the given native id.
func (l *Lookup[T]) ByID(id string) (T, error) {
	return l.byID(id)
}

// ByIndex returns the item at 0-based document-order position i.
func (l *Lookup[T]) ByIndex(i int) (T, error) {
	return l.byIndex(i)
}

// Count returns the number of items, or -1 if unknown (a streaming gzip
// source, whose count is never computed).
func (l *Lookup[T]) Count() int {
	return l.count()
}

// All iterates every item in document order. Iteration stops and surfaces
// an error, via the second yielded value, the first time an item fails to
// parse.
func (l *Lookup[T]) All() iter.Seq2[T, error] {
	return l.all()
}

// BySlice returns items [start, stop) stepping by step, with half-open
// slice semantics: bounds beyond the sequence are clamped rather
// than erroring. When the total count is unknown (a streaming gzip source),
// the full sequence is materialized first and then sliced. A non-positive
// step is an error.
func (l *Lookup[T]) BySlice(start, stop, step int) ([]T, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: slice step must be positive, got %d", mzmlerr.ErrOutOfRange, step)
	}
	if start < 0 {
		start = 0
	}

	if n := l.count(); n >= 0 {
		if stop > n {
			stop = n
		}
		var out []T
		for i := start; i < stop; i += step {
			item, err := l.byIndex(i)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	}

	var items []T
	for item, err := range l.all() {
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if stop > len(items) {
		stop = len(items)
	}
	var out []T
	for i := start; i < stop; i += step {
		out = append(out, items[i])
	}
	return out, nil
}
