package engine

import (
	"maps"
	"slices"
)

// Selection is an immutable set of selected record identifiers.
// The zero value is an empty selection. Every operation returns a new
// Selection and leaves the receiver untouched.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection returns a selection holding ids. Duplicates collapse.
func NewSelection(ids ...string) Selection {
	if len(ids) == 0 {
		return Selection{}
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return Selection{ids: set}
}

// Toggle removes id when it is selected and adds it otherwise.
func (s Selection) Toggle(id string) Selection {
	next := maps.Clone(s.ids)
	if next == nil {
		next = make(map[string]struct{}, 1)
	}
	if _, ok := next[id]; ok {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return Selection{ids: next}
}

// SelectAll returns a selection holding exactly allIDs, replacing any prior
// contents. Callers pass every identifier in the dataset, not just the
// visible page, so selecting all spans pages.
func SelectAll(allIDs []string) Selection {
	return NewSelection(allIDs...)
}

// Clear returns an empty selection.
func Clear() Selection {
	return Selection{}
}

// IsSelected reports whether id is in the selection. Unknown ids are not members.
func (s Selection) IsSelected(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected identifiers.
func (s Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected identifiers in sorted order.
func (s Selection) IDs() []string {
	return slices.Sorted(maps.Keys(s.ids))
}

// Equal reports whether both selections hold the same identifiers.
func (s Selection) Equal(other Selection) bool {
	if len(s.ids) != len(other.ids) {
		return false
	}
	for id := range s.ids {
		if _, ok := other.ids[id]; !ok {
			return false
		}
	}
	return true
}
