package engine

import "math"

// PageState is the pagination position of a table. PageIndex is 0-based.
type PageState struct {
	PageIndex int `json:"page_index" yaml:"page_index"`
	PageSize  int `json:"page_size"  yaml:"page_size"`
}

// Window returns the elements of sorted visible on page pageIndex together
// with the number of padding rows needed to keep a short last page as tall
// as a full one.
//
// The slice covers [pageIndex*pageSize, pageIndex*pageSize+pageSize) clipped
// to the bounds of sorted, and is empty when the page starts past the end.
// emptyRows is max(0, (pageIndex+1)*pageSize-len(sorted)) for pageIndex > 0
// and 0 on the first page, saturating at math.MaxInt for pages far past the
// end. It is advisory and never part of the slice.
// A negative index or non-positive size yields an empty window.
//
//nolint:nonamedreturns // Named returns document the two results.
func Window[T any](sorted []T, pageIndex, pageSize int) (visible []T, emptyRows int) {
	if pageIndex < 0 || pageSize <= 0 {
		return []T{}, 0
	}

	if pageIndex >= PageCount(len(sorted), pageSize) {
		if pageIndex == 0 {
			return []T{}, 0
		}
		return []T{}, paddingPastEnd(len(sorted), pageIndex, pageSize)
	}

	start := pageIndex * pageSize
	end := start + min(pageSize, len(sorted)-start)
	if pageIndex > 0 {
		emptyRows = pageSize - (end - start)
	}

	return sorted[start:end], emptyRows
}

// paddingPastEnd returns (pageIndex+1)*pageSize-length for a page that starts
// past the end, saturating at math.MaxInt.
func paddingPastEnd(length, pageIndex, pageSize int) int {
	if pageIndex >= math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (pageIndex+1)*pageSize - length
}

// PageCount returns the number of pages needed to show total items.
// It is 0 for an empty dataset or a non-positive page size.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total-1)/pageSize + 1
}

// LastPageIndex returns the highest valid page index, or 0 when there are no pages.
func LastPageIndex(total, pageSize int) int {
	return max(0, PageCount(total, pageSize)-1)
}
