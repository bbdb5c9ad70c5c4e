package engine

import "cmp"

// CompareFunc orders two records, returning -1, 0 or 1.
type CompareFunc func(a, b Record) int

// Compare builds a comparison function over records for the given direction
// and key. Strings compare byte-wise and prices numerically; no case folding
// is applied. Descending negates the ascending result so equal keys still
// compare as 0. An unknown key compares every pair as equal.
func Compare(direction SortDirection, key SortKey) CompareFunc {
	asc := ascending(key)
	if direction == Descending {
		return func(a, b Record) int {
			return -asc(a, b)
		}
	}
	return asc
}

func ascending(key SortKey) CompareFunc {
	switch key {
	case SortByPlace:
		return func(a, b Record) int { return cmp.Compare(a.Place, b.Place) }
	case SortByNeighborhood:
		return func(a, b Record) int { return cmp.Compare(a.Neighborhood, b.Neighborhood) }
	case SortByPrice:
		return func(a, b Record) int { return cmp.Compare(a.Price, b.Price) }
	default:
		return func(Record, Record) int { return 0 }
	}
}
