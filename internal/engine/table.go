package engine

import (
	"slices"
	"sync"
)

// View is what the presentation layer needs to draw one page of a table.
type View struct {
	Rows      []Record      `json:"rows"`
	Key       SortKey       `json:"sort_key"`
	Direction SortDirection `json:"sort_direction"`
	PageIndex int           `json:"page_index"`
	PageSize  int           `json:"page_size"`
	PageCount int           `json:"page_count"`
	RowCount  int           `json:"row_count"`
	EmptyRows int           `json:"empty_rows"`
	Selection Selection     `json:"-"`

	// selectedRows counts selected ids that belong to the dataset.
	selectedRows int
}

// IsSelected reports whether the record with id is selected.
func (v View) IsSelected(id string) bool {
	return v.Selection.IsSelected(id)
}

// AllSelected reports whether every row of the dataset is selected.
func (v View) AllSelected() bool {
	return v.RowCount > 0 && v.selectedRows == v.RowCount
}

// PageMeta summarizes where a view sits in the paginated table.
// CurrentPage is 1-based.
type PageMeta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
	EmptyRows   int  `json:"empty_rows"   yaml:"empty_rows"`
	Selected    int  `json:"selected"     yaml:"selected"`
}

// Meta derives pagination metadata from v.
func (v View) Meta() PageMeta {
	return PageMeta{
		CurrentPage: v.PageIndex + 1,
		PageSize:    v.PageSize,
		TotalPages:  v.PageCount,
		TotalItems:  v.RowCount,
		HasPrevious: v.PageIndex > 0,
		HasNext:     v.PageIndex+1 < v.PageCount,
		EmptyRows:   v.EmptyRows,
		Selected:    v.Selection.Len(),
	}
}

// sortOrder keys the sorted-sequence cache.
type sortOrder struct {
	key       SortKey
	direction SortDirection
}

// Table binds a fixed dataset and derives views from table states.
// Sorted sequences are cached per key and direction; the cache is safe for
// concurrent use.
type Table struct {
	records []Record
	ids     []string

	mu     sync.Mutex
	sorted map[sortOrder][]Record
}

// NewTable creates a table over a copy of records.
func NewTable(records []Record) *Table {
	owned := slices.Clone(records)
	return &Table{
		records: owned,
		ids:     IDs(owned),
		sorted:  make(map[sortOrder][]Record),
	}
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns the dataset in its original order.
func (t *Table) Records() []Record {
	return slices.Clone(t.records)
}

// AllIDs returns every record identifier in dataset order, for SelectAllRows.
func (t *Table) AllIDs() []string {
	return slices.Clone(t.ids)
}

// Sorted returns the dataset sorted by key and direction.
func (t *Table) Sorted(key SortKey, direction SortDirection) []Record {
	return slices.Clone(t.sortedShared(key, direction))
}

func (t *Table) sortedShared(key SortKey, direction SortDirection) []Record {
	order := sortOrder{key: key, direction: direction}

	t.mu.Lock()
	defer t.mu.Unlock()

	if cached, ok := t.sorted[order]; ok {
		return cached
	}
	sorted := SortRecords(t.records, key, direction)
	t.sorted[order] = sorted
	return sorted
}

// Reduce applies action to state and clamps the page index to the last page
// of this table. A checked SelectAllRows without AllIDs selects the whole
// dataset.
func (t *Table) Reduce(state TableState, action Action) TableState {
	if sa, ok := action.(SelectAllRows); ok && sa.Checked && sa.AllIDs == nil {
		sa.AllIDs = t.ids
		action = sa
	}

	next := Reduce(state, action)
	if last := LastPageIndex(len(t.records), next.Page.PageSize); next.Page.PageIndex > last {
		next.Page.PageIndex = last
	}
	return next
}

// View computes the visible page for state.
func (t *Table) View(state TableState) View {
	sorted := t.sortedShared(state.Key, state.Direction)
	rows, emptyRows := Window(sorted, state.Page.PageIndex, state.Page.PageSize)

	return View{
		Rows:      slices.Clone(rows),
		Key:       state.Key,
		Direction: state.Direction,
		PageIndex: state.Page.PageIndex,
		PageSize:  state.Page.PageSize,
		PageCount: PageCount(len(t.records), state.Page.PageSize),
		RowCount:  len(t.records),
		EmptyRows: emptyRows,
		Selection: state.Selection,

		selectedRows: t.countSelected(state.Selection),
	}
}

// countSelected returns how many dataset records are members of sel.
func (t *Table) countSelected(sel Selection) int {
	n := 0
	for _, id := range t.ids {
		if sel.IsSelected(id) {
			n++
		}
	}
	return n
}
