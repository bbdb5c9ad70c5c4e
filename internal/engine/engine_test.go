package engine

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func places(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Place
	}
	return out
}

// scenarioRecords is the three-café dataset used across sort tests.
func scenarioRecords() []Record {
	return []Record{
		{Place: "A", Neighborhood: "N1", Price: 500},
		{Place: "B", Neighborhood: "N2", Price: 2000},
		{Place: "C", Neighborhood: "N3", Price: 1200},
	}
}

// tiedRecords has duplicate prices and neighborhoods to exercise stability.
func tiedRecords() []Record {
	return []Record{
		{Place: "Lattente", Neighborhood: "Palermo", Price: 1200},
		{Place: "Cuervo", Neighborhood: "Palermo", Price: 900},
		{Place: "Full City", Neighborhood: "Palermo", Price: 1200},
		{Place: "Birkin", Neighborhood: "Recoleta", Price: 900},
		{Place: "Negro", Neighborhood: "Almagro", Price: 1200},
	}
}

func numbered(n int) []Record {
	records := make([]Record, n)
	for i := range records {
		records[i] = Record{
			Place:        fmt.Sprintf("cafe-%02d", i),
			Neighborhood: "Centro",
			Price:        float64(100 * (i + 1)),
		}
	}
	return records
}

func TestCompare(t *testing.T) {
	cheap := Record{Place: "Alpha", Neighborhood: "Boedo", Price: 500}
	dear := Record{Place: "Beta", Neighborhood: "Almagro", Price: 1500}

	tests := []struct {
		name      string
		direction SortDirection
		key       SortKey
		a, b      Record
		want      int
	}{
		{"price asc less", Ascending, SortByPrice, cheap, dear, -1},
		{"price asc greater", Ascending, SortByPrice, dear, cheap, 1},
		{"price asc equal", Ascending, SortByPrice, cheap, cheap, 0},
		{"price desc less", Descending, SortByPrice, cheap, dear, 1},
		{"price desc equal", Descending, SortByPrice, dear, dear, 0},
		{"place asc", Ascending, SortByPlace, cheap, dear, -1},
		{"neighborhood asc", Ascending, SortByNeighborhood, cheap, dear, 1},
		{"neighborhood desc", Descending, SortByNeighborhood, cheap, dear, -1},
		{"unknown key", Ascending, SortKey("rating"), cheap, dear, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.direction, tt.key)(tt.a, tt.b))
		})
	}
}

// TestCompare_CaseSensitive verifies that no case folding is applied.
func TestCompare_CaseSensitive(t *testing.T) {
	upper := Record{Place: "Zeta"}
	lower := Record{Place: "alpha"}
	assert.Equal(t, -1, Compare(Ascending, SortByPlace)(upper, lower))
}

func TestSortRecords_Scenario(t *testing.T) {
	records := scenarioRecords()

	assert.Equal(t, []string{"A", "C", "B"}, places(SortRecords(records, SortByPrice, Ascending)))
	assert.Equal(t, []string{"B", "C", "A"}, places(SortRecords(records, SortByPrice, Descending)))
}

// TestStableSort_PreservesInputOrderForTies verifies ties keep input order in both directions.
func TestStableSort_PreservesInputOrderForTies(t *testing.T) {
	records := tiedRecords()

	asc := SortRecords(records, SortByPrice, Ascending)
	assert.Equal(t, []string{"Cuervo", "Birkin", "Lattente", "Full City", "Negro"}, places(asc))

	desc := SortRecords(records, SortByPrice, Descending)
	assert.Equal(t, []string{"Lattente", "Full City", "Negro", "Cuervo", "Birkin"}, places(desc))

	byHood := SortRecords(records, SortByNeighborhood, Descending)
	assert.Equal(t, []string{"Birkin", "Lattente", "Cuervo", "Full City", "Negro"}, places(byHood))
}

// TestStableSort_DirectionSymmetry verifies descending is reversed ascending
// with tie groups kept in input order.
func TestStableSort_DirectionSymmetry(t *testing.T) {
	records := tiedRecords()

	asc := SortRecords(records, SortByPrice, Ascending)
	desc := SortRecords(records, SortByPrice, Descending)

	reversed := slices.Clone(asc)
	slices.Reverse(reversed)

	prices := func(rs []Record) []float64 {
		out := make([]float64, len(rs))
		for i, r := range rs {
			out[i] = r.Price
		}
		return out
	}
	assert.Equal(t, prices(reversed), prices(desc))
	assert.NotEqual(t, places(reversed), places(desc), "ties must not be reversed")
}

func TestStableSort_Idempotent(t *testing.T) {
	for _, key := range SortKeys() {
		for _, dir := range []SortDirection{Ascending, Descending} {
			once := SortRecords(tiedRecords(), key, dir)
			twice := SortRecords(once, key, dir)
			assert.Equal(t, once, twice, "key=%s dir=%s", key, dir)
		}
	}
}

func TestStableSort_DoesNotModifyInput(t *testing.T) {
	records := tiedRecords()
	original := slices.Clone(records)

	_ = SortRecords(records, SortByPlace, Descending)

	assert.Equal(t, original, records)
}

func TestStableSort_Generic(t *testing.T) {
	type pair struct {
		k int
		v string
	}
	in := []pair{{2, "a"}, {1, "b"}, {2, "c"}, {1, "d"}}
	out := StableSort(in, func(a, b pair) int { return a.k - b.k })
	assert.Equal(t, []pair{{1, "b"}, {1, "d"}, {2, "a"}, {2, "c"}}, out)

	assert.Empty(t, StableSort([]pair{}, func(a, b pair) int { return 0 }))
}

func TestWindow(t *testing.T) {
	records := numbered(7)

	tests := []struct {
		name      string
		pageIndex int
		pageSize  int
		want      []Record
		wantEmpty int
	}{
		{"first page", 0, 5, records[0:5], 0},
		{"short last page", 1, 5, records[5:7], 3},
		{"exact fit", 0, 7, records, 0},
		{"page past end", 2, 5, []Record{}, 8},
		{"oversized first page", 0, 10, records, 0},
		{"negative index", -1, 5, []Record{}, 0},
		{"zero size", 0, 0, []Record{}, 0},
		{"huge index does not wrap", math.MaxInt / 2, 4, []Record{}, math.MaxInt},
		{"huge index size one", math.MaxInt - 1, 1, []Record{}, math.MaxInt - 7},
		{"huge size first page", 0, math.MaxInt, records, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, empty := Window(records, tt.pageIndex, tt.pageSize)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantEmpty, empty)
		})
	}
}

func TestWindow_EmptyDataset(t *testing.T) {
	got, empty := Window([]Record{}, 0, 5)
	assert.Empty(t, got)
	assert.Equal(t, 0, empty)
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 2, PageCount(7, 5))
	assert.Equal(t, 1, PageCount(5, 5))
	assert.Equal(t, 0, PageCount(0, 5))
	assert.Equal(t, 0, PageCount(5, 0))
	assert.Equal(t, 1, PageCount(7, math.MaxInt))
	assert.Equal(t, math.MaxInt, PageCount(math.MaxInt, 1))
	assert.Equal(t, 1, LastPageIndex(7, 5))
	assert.Equal(t, 0, LastPageIndex(0, 5))
}

func TestSelection_Toggle(t *testing.T) {
	s := Clear()
	assert.False(t, s.IsSelected("X"))

	s1 := s.Toggle("X")
	assert.True(t, s1.IsSelected("X"))
	assert.False(t, s.IsSelected("X"), "toggle must not mutate the receiver")

	s2 := s1.Toggle("X")
	assert.False(t, s2.IsSelected("X"))
	assert.Equal(t, 0, s2.Len())
}

// TestSelection_RoundTrip verifies toggling twice restores any set.
func TestSelection_RoundTrip(t *testing.T) {
	sets := []Selection{
		Clear(),
		NewSelection("A"),
		NewSelection("X"),
		NewSelection("A", "B", "X"),
	}

	for _, s := range sets {
		assert.True(t, s.Toggle("X").Toggle("X").Equal(s), "set %v", s.IDs())
	}
}

// TestSelection_SelectAllSpansPages verifies select-all covers records on every page.
func TestSelection_SelectAllSpansPages(t *testing.T) {
	table := NewTable(numbered(20))
	state := NewTableState(5)

	state = table.Reduce(state, SelectAllRows{Checked: true, AllIDs: table.AllIDs()})

	view := table.View(state)
	require.Len(t, view.Rows, 5)
	for _, r := range table.Records() {
		assert.True(t, view.IsSelected(r.Place), "record %s", r.Place)
	}
	assert.True(t, view.AllSelected())
}

func TestSelection_SelectAllReplacesAndClear(t *testing.T) {
	s := NewSelection("old").Toggle("older")
	all := SelectAll([]string{"A", "B"})

	assert.Equal(t, []string{"A", "B"}, all.IDs())
	assert.False(t, all.IsSelected("old"))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 0, Clear().Len())
	assert.False(t, Clear().IsSelected("A"))
}

func TestSelection_Duplicates(t *testing.T) {
	s := NewSelection("A", "A", "B")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"A", "B"}, s.IDs())
}

func TestBandOf(t *testing.T) {
	tests := []struct {
		price float64
		want  PriceBand
	}{
		{0, BandLow},
		{999.99, BandLow},
		{1000, BandLow},
		{1000.01, BandMid},
		{1500, BandMid},
		{1500.01, BandHigh},
		{5000, BandHigh},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.2f", tt.price), func(t *testing.T) {
			assert.Equal(t, tt.want, BandOf(tt.price))
		})
	}

	assert.Equal(t, "mid", BandMid.String())
	text, err := BandHigh.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "high", string(text))
}

func TestParseSortKeyAndDirection(t *testing.T) {
	k, err := ParseSortKey(" Price ")
	require.NoError(t, err)
	assert.Equal(t, SortByPrice, k)

	_, err = ParseSortKey("rating")
	require.ErrorIs(t, err, ErrInvalidSortKey)

	d, err := ParseSortDirection("DESCENDING")
	require.NoError(t, err)
	assert.Equal(t, Descending, d)

	_, err = ParseSortDirection("sideways")
	require.ErrorIs(t, err, ErrInvalidSortDirection)

	assert.Equal(t, Ascending, Descending.Reverse())
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		expr    string
		key     SortKey
		dir     SortDirection
		wantErr error
	}{
		{"price", SortByPrice, Ascending, nil},
		{"place:desc", SortByPlace, Descending, nil},
		{" neighborhood : ASC ", SortByNeighborhood, Ascending, nil},
		{"", "", "", ErrInvalidSortKey},
		{"price:up", "", "", ErrInvalidSortDirection},
		{"price:asc:extra", "", "", ErrInvalidSortFormat},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			key, dir, err := ParseSort(tt.expr)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.dir, dir)
		})
	}
}
