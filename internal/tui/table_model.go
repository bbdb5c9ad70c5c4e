package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/cafetable/internal/engine"
	"github.com/rshade/cafetable/internal/logging"
)

// Layout constants.
const (
	// chromeHeight is the number of lines around the table: title, blank
	// line, footer and help.
	chromeHeight = 5
	minTableRows = 3
)

// TableModel is the Bubble Tea model for the interactive café table.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type TableModel struct {
	ctx context.Context // Context for trace ID

	data      *engine.Table
	state     engine.TableState
	view      engine.View
	pageSizes []int

	// Interactive components
	keys  KeyMap
	help  help.Model
	table table.Model

	// Display configuration
	width       int
	height      int
	visibleRows int

	quitting bool
}

// NewTableModel creates a table model starting at state. pageSizes are the
// choices cycled by the page size keys; the current page size is always one
// of them.
func NewTableModel(ctx context.Context, data *engine.Table, state engine.TableState, pageSizes []int) TableModel {
	sizes := slices.Clone(pageSizes)
	if !slices.Contains(sizes, state.Page.PageSize) {
		sizes = append(sizes, state.Page.PageSize)
	}
	sizes = slices.DeleteFunc(sizes, func(n int) bool { return n <= 0 })
	slices.Sort(sizes)

	m := TableModel{
		ctx:       ctx,
		data:      data,
		state:     data.Reduce(state, nil),
		pageSizes: slices.Compact(sizes),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.refresh(0)
	return m
}

// Init initializes the model (Bubble Tea interface).
func (m TableModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m TableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.refresh(m.table.Cursor())
		return m, nil
	case tea.KeyMsg:
		return m.handleKeypress(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m TableModel) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cursor := m.table.Cursor()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.refresh(cursor)
	case key.Matches(msg, m.keys.SortPlace):
		m.dispatch(engine.RequestSort{Key: engine.SortByPlace}, 0)
	case key.Matches(msg, m.keys.SortNeighborhood):
		m.dispatch(engine.RequestSort{Key: engine.SortByNeighborhood}, 0)
	case key.Matches(msg, m.keys.SortPrice):
		m.dispatch(engine.RequestSort{Key: engine.SortByPrice}, 0)
	case key.Matches(msg, m.keys.ToggleRow):
		if cursor >= 0 && cursor < len(m.view.Rows) {
			m.dispatch(engine.ToggleRow{ID: m.view.Rows[cursor].Place}, cursor)
		}
	case key.Matches(msg, m.keys.SelectAll):
		m.dispatch(engine.SelectAllRows{Checked: !m.view.AllSelected()}, cursor)
	case key.Matches(msg, m.keys.PrevPage):
		if m.state.Page.PageIndex > 0 {
			m.dispatch(engine.ChangePage{Index: m.state.Page.PageIndex - 1}, 0)
		}
	case key.Matches(msg, m.keys.NextPage):
		if m.state.Page.PageIndex+1 < m.view.PageCount {
			m.dispatch(engine.ChangePage{Index: m.state.Page.PageIndex + 1}, 0)
		}
	case key.Matches(msg, m.keys.GrowPage):
		if size, ok := m.stepPageSize(1); ok {
			m.dispatch(engine.ChangePageSize{Size: size}, 0)
		}
	case key.Matches(msg, m.keys.ShrinkPage):
		if size, ok := m.stepPageSize(-1); ok {
			m.dispatch(engine.ChangePageSize{Size: size}, 0)
		}
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	return m, nil
}

// dispatch runs action through the table reducer and redraws with the
// cursor at cursor.
func (m *TableModel) dispatch(action engine.Action, cursor int) {
	m.state = m.data.Reduce(m.state, action)
	m.refresh(cursor)

	logging.FromContext(m.ctx).Debug().Ctx(m.ctx).
		Str("component", "tui").
		Str("action", fmt.Sprintf("%T", action)).
		Str("sort", m.state.Key.String()+":"+m.state.Direction.String()).
		Int("page", m.state.Page.PageIndex).
		Int("page_size", m.state.Page.PageSize).
		Int("selected", m.state.Selection.Len()).
		Msg("table action")
}

// stepPageSize returns the page size step places away from the current one.
func (m *TableModel) stepPageSize(step int) (int, bool) {
	i := slices.Index(m.pageSizes, m.state.Page.PageSize)
	next := i + step
	if i < 0 || next < 0 || next >= len(m.pageSizes) {
		return 0, false
	}
	return m.pageSizes[next], true
}

// refresh recomputes the view and rebuilds the table widget.
func (m *TableModel) refresh(cursor int) {
	m.view = m.data.View(m.state)
	m.table = m.buildTable(cursor)
}

func (m *TableModel) buildTable(cursor int) table.Model {
	rows := make([]table.Row, len(m.view.Rows))
	for i, r := range m.view.Rows {
		rows[i] = table.Row(cellTexts(r, m.view.IsSelected(r.Place)))
	}

	available := max(m.height-chromeHeight-headerLines()-m.view.EmptyRows, minTableRows)
	m.visibleRows = min(max(len(rows), 1), available)

	t := table.New(
		table.WithColumns(columns(m.view)),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(headerLines()+m.visibleRows),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	if cursor > 0 && cursor < len(rows) {
		t.SetCursor(cursor)
	}
	return t
}

// View renders the model (Bubble Tea interface).
func (m TableModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("CAFETABLE"))
	b.WriteString("\n")
	if len(m.view.Rows) == 0 && m.view.RowCount == 0 {
		b.WriteString(InfoStyle.Render("No records to display."))
	} else {
		b.WriteString(m.colorRows(m.table.View()))
	}
	// Padding rows keep a short last page as tall as a full one.
	b.WriteString(strings.Repeat("\n", m.view.EmptyRows))
	b.WriteString("\n")
	b.WriteString(footer(m.view))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// colorRows colors every row line except the cursor row by price band. Rows
// are left uncolored when the page is taller than the viewport.
func (m TableModel) colorRows(out string) string {
	if len(m.view.Rows) > m.visibleRows {
		return out
	}
	lines := strings.Split(out, "\n")
	offset := headerLines()
	for i, r := range m.view.Rows {
		idx := offset + i
		if idx >= len(lines) {
			break
		}
		if i == m.table.Cursor() {
			continue
		}
		lines[idx] = BandStyle(engine.BandOf(r.Price)).Render(lines[idx])
	}
	return strings.Join(lines, "\n")
}

// headerLines is the height of the rendered column header.
func headerLines() int {
	return lipgloss.Height(TableHeaderStyle.Render("X"))
}

// State returns the current table state.
func (m TableModel) State() engine.TableState {
	return m.state
}

// TableView returns the current page.
func (m TableModel) TableView() engine.View {
	return m.view
}
