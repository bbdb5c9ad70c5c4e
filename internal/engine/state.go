package engine

// TableState is everything that varies while a table is on screen. It is a
// value: reducers return a new state instead of mutating the old one.
type TableState struct {
	Key       SortKey
	Direction SortDirection
	Page      PageState
	Selection Selection
}

// NewTableState returns the initial state: sorted by price ascending on the
// first page of pageSize rows with nothing selected. A non-positive pageSize
// falls back to DefaultPageSize.
func NewTableState(pageSize int) TableState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return TableState{
		Key:       DefaultSortKey,
		Direction: DefaultSortDirection,
		Page:      PageState{PageIndex: 0, PageSize: pageSize},
		Selection: Clear(),
	}
}

// Action is a user interaction coming from the presentation layer.
type Action interface {
	apply(s TableState) TableState
}

// RequestSort is a click on a column header. Clicking the active column while
// it is ascending flips it to descending; any other click sorts the column
// ascending.
type RequestSort struct {
	Key SortKey
}

// ToggleRow is a click on a row.
type ToggleRow struct {
	ID string
}

// SelectAllRows is the header checkbox. AllIDs must list every record in the
// dataset, not only the visible page.
type SelectAllRows struct {
	Checked bool
	AllIDs  []string
}

// ChangePage moves to a 0-based page index. Negative indexes clamp to 0.
type ChangePage struct {
	Index int
}

// ChangePageSize sets the number of rows per page and returns to the first
// page. Non-positive sizes are ignored.
type ChangePageSize struct {
	Size int
}

// Reduce applies action to state and returns the resulting state.
// A nil action returns state unchanged.
func Reduce(state TableState, action Action) TableState {
	if action == nil {
		return state
	}
	return action.apply(state)
}

func (a RequestSort) apply(s TableState) TableState {
	if !a.Key.IsValid() {
		return s
	}
	if s.Key == a.Key && s.Direction.IsValid() {
		s.Direction = s.Direction.Reverse()
	} else {
		s.Direction = Ascending
	}
	s.Key = a.Key
	return s
}

func (a ToggleRow) apply(s TableState) TableState {
	s.Selection = s.Selection.Toggle(a.ID)
	return s
}

func (a SelectAllRows) apply(s TableState) TableState {
	if a.Checked {
		s.Selection = SelectAll(a.AllIDs)
	} else {
		s.Selection = Clear()
	}
	return s
}

func (a ChangePage) apply(s TableState) TableState {
	s.Page.PageIndex = max(0, a.Index)
	return s
}

func (a ChangePageSize) apply(s TableState) TableState {
	if a.Size <= 0 {
		return s
	}
	s.Page = PageState{PageIndex: 0, PageSize: a.Size}
	return s
}
