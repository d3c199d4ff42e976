package metadata

// ByIDList is an insertion-ordered collection of id-keyed entries, the
// same "ordered list, not a Go map" shape index.Table uses for offset
// tables and for the same reason: callers observe scan-settings,
// instrument-configuration, and data-processing entries in original
// document order, and Go's map iteration order gives no such guarantee.
type ByIDList[T any] struct {
	keys  []string
	items map[string]T
}

func newByIDList[T any]() *ByIDList[T] {
	return &ByIDList[T]{items: make(map[string]T)}
}

// Add appends item under id the first time id is seen; a repeated id
// updates its entry in place without moving it in List.
func (l *ByIDList[T]) Add(id string, item T) {
	if _, exists := l.items[id]; !exists {
		l.keys = append(l.keys, id)
	}
	l.items[id] = item
}

// List returns every entry in original document order.
func (l *ByIDList[T]) List() []T {
	out := make([]T, len(l.keys))
	for i, k := range l.keys {
		out[i] = l.items[k]
	}
	return out
}

// ByID returns the entry with the given id, and whether it was present.
func (l *ByIDList[T]) ByID(id string) (T, bool) {
	v, ok := l.items[id]
	return v, ok
}

// Len returns the number of distinct ids recorded.
func (l *ByIDList[T]) Len() int {
	return len(l.keys)
}
