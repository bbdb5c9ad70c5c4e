package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/cafetable/internal/engine"
)

// Color palette (ANSI 256).
const (
	ColorLow     = lipgloss.Color("42")  // green
	ColorMid     = lipgloss.Color("214") // orange
	ColorHigh    = lipgloss.Color("196") // red
	ColorHeader  = lipgloss.Color("63")  // indigo
	ColorLabel   = lipgloss.Color("245") // gray
	ColorValue   = lipgloss.Color("252") // near white
	ColorBorder  = lipgloss.Color("240")
	ColorCursor  = lipgloss.Color("229")
	ColorCursorB = lipgloss.Color("57")
)

//nolint:gochecknoglobals // Lip Gloss styles are shared read-only values.
var (
	// HeaderStyle is used for titles.
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)

	// LabelStyle is used for footer labels.
	LabelStyle = lipgloss.NewStyle().Foreground(ColorLabel)

	// ValueStyle is used for footer values.
	ValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorValue)

	// InfoStyle is used for informational messages.
	InfoStyle = lipgloss.NewStyle().Italic(true).Foreground(ColorLabel)

	// BoxStyle frames the styled page.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// TableHeaderStyle is the column header row.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorBorder)

	// TableSelectedStyle is the row under the cursor.
	TableSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorCursor).
				Background(ColorCursorB)

	// LowBandStyle, MidBandStyle and HighBandStyle color rows by price band.
	LowBandStyle  = lipgloss.NewStyle().Foreground(ColorLow)
	MidBandStyle  = lipgloss.NewStyle().Foreground(ColorMid)
	HighBandStyle = lipgloss.NewStyle().Foreground(ColorHigh)
)

// BandStyle returns the row style for a price band.
func BandStyle(band engine.PriceBand) lipgloss.Style {
	switch band {
	case engine.BandLow:
		return LowBandStyle
	case engine.BandMid:
		return MidBandStyle
	case engine.BandHigh:
		return HighBandStyle
	default:
		return lipgloss.NewStyle()
	}
}
