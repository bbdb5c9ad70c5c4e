package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the table key bindings. It implements help.KeyMap.
type KeyMap struct {
	SortPlace        key.Binding
	SortNeighborhood key.Binding
	SortPrice        key.Binding
	ToggleRow        key.Binding
	SelectAll        key.Binding
	PrevPage         key.Binding
	NextPage         key.Binding
	GrowPage         key.Binding
	ShrinkPage       key.Binding
	Help             key.Binding
	Quit             key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		SortPlace: key.NewBinding(
			key.WithKeys("1", "p"),
			key.WithHelp("1/p", "sort place"),
		),
		SortNeighborhood: key.NewBinding(
			key.WithKeys("2", "n"),
			key.WithHelp("2/n", "sort neighborhood"),
		),
		SortPrice: key.NewBinding(
			key.WithKeys("3", "$"),
			key.WithHelp("3/$", "sort price"),
		),
		ToggleRow: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "select row"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		GrowPage: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more rows"),
		),
		ShrinkPage: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "fewer rows"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the collapsed help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SortPrice, k.ToggleRow, k.SelectAll, k.NextPage, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SortPlace, k.SortNeighborhood, k.SortPrice},
		{k.ToggleRow, k.SelectAll},
		{k.PrevPage, k.NextPage, k.GrowPage, k.ShrinkPage},
		{k.Help, k.Quit},
	}
}
