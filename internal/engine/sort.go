package engine

import "slices"

// indexed pairs an element with its position in the input sequence.
type indexed[T any] struct {
	item  T
	index int
}

// StableSort returns a sorted copy of items. Elements that compare equal keep
// their input order: ties are broken on the original index, so the result
// does not depend on the stability of the underlying sort primitive.
// The input slice is not modified.
func StableSort[T any](items []T, compare func(a, b T) int) []T {
	pairs := make([]indexed[T], len(items))
	for i, item := range items {
		pairs[i] = indexed[T]{item: item, index: i}
	}

	slices.SortFunc(pairs, func(a, b indexed[T]) int {
		if order := compare(a.item, b.item); order != 0 {
			return order
		}
		return a.index - b.index
	})

	sorted := make([]T, len(pairs))
	for i, p := range pairs {
		sorted[i] = p.item
	}
	return sorted
}

// SortRecords sorts records by key and direction. See StableSort.
func SortRecords(records []Record, key SortKey, direction SortDirection) []Record {
	return StableSort(records, Compare(direction, key))
}
