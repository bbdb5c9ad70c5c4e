package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewTableState verifies the initial state matches the table defaults.
func TestNewTableState(t *testing.T) {
	s := NewTableState(0)

	assert.Equal(t, SortByPrice, s.Key)
	assert.Equal(t, Ascending, s.Direction)
	assert.Equal(t, PageState{PageIndex: 0, PageSize: DefaultPageSize}, s.Page)
	assert.Equal(t, 0, s.Selection.Len())

	assert.Equal(t, 10, NewTableState(10).Page.PageSize)
}

// TestReduce_RequestSort verifies the header click cycle.
func TestReduce_RequestSort(t *testing.T) {
	s := NewTableState(5)

	s = Reduce(s, RequestSort{Key: SortByPrice})
	assert.Equal(t, SortByPrice, s.Key)
	assert.Equal(t, Descending, s.Direction)

	s = Reduce(s, RequestSort{Key: SortByPrice})
	assert.Equal(t, Ascending, s.Direction)

	s = Reduce(s, RequestSort{Key: SortByPlace})
	assert.Equal(t, SortByPlace, s.Key)
	assert.Equal(t, Ascending, s.Direction)

	s = Reduce(s, RequestSort{Key: SortByPlace})
	s = Reduce(s, RequestSort{Key: SortByNeighborhood})
	assert.Equal(t, SortByNeighborhood, s.Key)
	assert.Equal(t, Ascending, s.Direction, "switching columns always starts ascending")

	unchanged := Reduce(s, RequestSort{Key: "rating"})
	assert.Equal(t, s, unchanged)
}

func TestReduce_Selection(t *testing.T) {
	s := NewTableState(5)

	s = Reduce(s, ToggleRow{ID: "A"})
	s = Reduce(s, ToggleRow{ID: "B"})
	assert.Equal(t, []string{"A", "B"}, s.Selection.IDs())

	s = Reduce(s, ToggleRow{ID: "A"})
	assert.Equal(t, []string{"B"}, s.Selection.IDs())

	s = Reduce(s, SelectAllRows{Checked: true, AllIDs: []string{"A", "B", "C"}})
	assert.Equal(t, 3, s.Selection.Len())

	s = Reduce(s, SelectAllRows{Checked: false})
	assert.Equal(t, 0, s.Selection.Len())
}

func TestReduce_Pagination(t *testing.T) {
	s := NewTableState(5)

	s = Reduce(s, ChangePage{Index: 3})
	assert.Equal(t, 3, s.Page.PageIndex)

	s = Reduce(s, ChangePage{Index: -2})
	assert.Equal(t, 0, s.Page.PageIndex)

	s = Reduce(s, ChangePage{Index: 2})
	s = Reduce(s, ChangePageSize{Size: 10})
	assert.Equal(t, PageState{PageIndex: 0, PageSize: 10}, s.Page, "page size change resets the page")

	s = Reduce(s, ChangePage{Index: 1})
	s = Reduce(s, ChangePageSize{Size: 0})
	assert.Equal(t, PageState{PageIndex: 1, PageSize: 10}, s.Page, "invalid sizes are ignored")

	assert.Equal(t, s, Reduce(s, nil))
}

// TestReduce_DoesNotShareSelection verifies reducers leave earlier states intact.
func TestReduce_DoesNotShareSelection(t *testing.T) {
	before := Reduce(NewTableState(5), ToggleRow{ID: "A"})
	after := Reduce(before, ToggleRow{ID: "B"})

	assert.Equal(t, []string{"A"}, before.Selection.IDs())
	assert.Equal(t, []string{"A", "B"}, after.Selection.IDs())
}

func TestTable_View(t *testing.T) {
	table := NewTable(numbered(7))
	state := NewTableState(5)

	view := table.View(state)
	assert.Equal(t, []string{"cafe-00", "cafe-01", "cafe-02", "cafe-03", "cafe-04"}, places(view.Rows))
	assert.Equal(t, 0, view.EmptyRows)
	assert.Equal(t, 7, view.RowCount)
	assert.Equal(t, 2, view.PageCount)

	state = table.Reduce(state, ChangePage{Index: 1})
	view = table.View(state)
	assert.Equal(t, []string{"cafe-05", "cafe-06"}, places(view.Rows))
	assert.Equal(t, 3, view.EmptyRows)

	state = table.Reduce(state, RequestSort{Key: SortByPrice})
	view = table.View(state)
	assert.Equal(t, Descending, view.Direction)
	assert.Equal(t, []string{"cafe-01", "cafe-00"}, places(view.Rows))
}

// TestTable_ReduceClampsPage verifies page changes past the end land on the last page.
func TestTable_ReduceClampsPage(t *testing.T) {
	table := NewTable(numbered(7))
	state := table.Reduce(NewTableState(5), ChangePage{Index: 9})
	assert.Equal(t, 1, state.Page.PageIndex)

	empty := NewTable(nil)
	state = empty.Reduce(NewTableState(5), ChangePage{Index: 3})
	assert.Equal(t, 0, state.Page.PageIndex)
	assert.Empty(t, empty.View(state).Rows)
	assert.False(t, empty.View(state).AllSelected())
}

func TestTable_ReduceSelectAllDefaultsToDataset(t *testing.T) {
	table := NewTable(scenarioRecords())
	state := table.Reduce(NewTableState(1), SelectAllRows{Checked: true})
	assert.Equal(t, []string{"A", "B", "C"}, state.Selection.IDs())
}

func TestView_AllSelectedIgnoresUnknownIDs(t *testing.T) {
	table := NewTable(scenarioRecords())
	state := table.Reduce(NewTableState(3), SelectAllRows{Checked: true})
	require.True(t, table.View(state).AllSelected())

	state = table.Reduce(state, ToggleRow{ID: "A"})
	state = table.Reduce(state, ToggleRow{ID: "ghost"})

	view := table.View(state)
	assert.Equal(t, 3, view.Selection.Len())
	assert.False(t, view.AllSelected())
	assert.False(t, view.IsSelected("A"))
}

// TestTable_ViewIsolation verifies callers cannot corrupt the cached order.
func TestTable_ViewIsolation(t *testing.T) {
	table := NewTable(scenarioRecords())
	state := NewTableState(3)

	view := table.View(state)
	require.Len(t, view.Rows, 3)
	view.Rows[0] = Record{Place: "mutated"}

	sorted := table.Sorted(SortByPrice, Ascending)
	sorted[1] = Record{Place: "mutated"}

	assert.Equal(t, []string{"A", "C", "B"}, places(table.View(state).Rows))
}

func TestTable_ConcurrentViews(t *testing.T) {
	table := NewTable(tiedRecords())
	want := places(SortRecords(tiedRecords(), SortByNeighborhood, Descending))

	state := NewTableState(10)
	state.Key = SortByNeighborhood
	state.Direction = Descending

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = places(table.View(state).Rows)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestView_Meta(t *testing.T) {
	table := NewTable(numbered(7))

	first := table.View(TableState{
		Key: SortByPrice, Direction: Ascending,
		Page: PageState{PageIndex: 0, PageSize: 5},
	}).Meta()
	assert.Equal(t, PageMeta{
		CurrentPage: 1, PageSize: 5, TotalPages: 2, TotalItems: 7,
		HasPrevious: false, HasNext: true, EmptyRows: 0,
	}, first)

	last := table.View(TableState{
		Key: SortByPrice, Direction: Ascending,
		Page:      PageState{PageIndex: 1, PageSize: 5},
		Selection: NewSelection("cafe-01", "cafe-02"),
	}).Meta()
	assert.Equal(t, PageMeta{
		CurrentPage: 2, PageSize: 5, TotalPages: 2, TotalItems: 7,
		HasPrevious: true, HasNext: false, EmptyRows: 3, Selected: 2,
	}, last)
}

func TestView_MetaEmptyDataset(t *testing.T) {
	meta := NewTable(nil).View(NewTableState(10)).Meta()

	assert.Equal(t, 1, meta.CurrentPage)
	assert.Zero(t, meta.TotalPages)
	assert.Zero(t, meta.TotalItems)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrevious)
}
