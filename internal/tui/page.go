package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/cafetable/internal/engine"
	"github.com/rshade/cafetable/internal/render"
)

// Column widths.
const (
	colWidthCheck        = 3
	colWidthPlace        = 28
	colWidthNeighborhood = 18
	colWidthPrice        = 10
	colWidthBand         = 5

	borderPadding = 2
	ellipsis      = "…"
)

// Checkbox markers.
const (
	checkboxOn  = "[x]"
	checkboxOff = "[ ]"
)

func checkbox(checked bool) string {
	if checked {
		return checkboxOn
	}
	return checkboxOff
}

// columnWidths lists widths in display order: checkbox, one per sort key, band.
func columnWidths() []int {
	return []int{colWidthCheck, colWidthPlace, colWidthNeighborhood, colWidthPrice, colWidthBand}
}

// columnTitles returns the header titles. The checkbox title reflects
// whether the whole dataset is selected; the active sort column carries a
// direction indicator.
func columnTitles(view engine.View) []string {
	titles := []string{checkbox(view.AllSelected())}
	for _, k := range engine.SortKeys() {
		titles = append(titles, strings.ToUpper(k.String())+render.SortIndicator(view, k))
	}
	return append(titles, "BAND")
}

func columns(view engine.View) []table.Column {
	widths := columnWidths()
	titles := columnTitles(view)
	cols := make([]table.Column, len(titles))
	for i, title := range titles {
		cols[i] = table.Column{Title: title, Width: widths[i]}
	}
	return cols
}

// cellTexts returns the display cells of r.
func cellTexts(r engine.Record, selected bool) []string {
	return []string{
		checkbox(selected),
		render.Upper(r.Place),
		render.Upper(r.Neighborhood),
		render.FormatPrice(r.Price),
		engine.BandOf(r.Price).String(),
	}
}

// footer renders the selection count and page position.
func footer(view engine.View) string {
	parts := []string{
		LabelStyle.Render("Selected: ") + ValueStyle.Render(strconv.Itoa(view.Selection.Len())),
		LabelStyle.Render("Page: ") + ValueStyle.Render(fmt.Sprintf("%d/%d", view.PageIndex+1, max(1, view.PageCount))),
		LabelStyle.Render("Rows per page: ") + ValueStyle.Render(strconv.Itoa(view.PageSize)),
		LabelStyle.Render("Rows: ") + ValueStyle.Render(strconv.Itoa(view.RowCount)),
	}
	return strings.Join(parts, "   ")
}

// truncate shortens s to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + ellipsis
}

// styledLine pads and joins cells into one fixed-width line.
func styledLine(cells []string) string {
	widths := columnWidths()
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = lipgloss.NewStyle().Width(widths[i]).Render(truncate(c, widths[i]))
	}
	return strings.Join(out, " ")
}

// RenderStyledPage renders one page of the table with Lip Gloss, for
// terminals that can show color but not run the interactive program.
// The width parameter controls the total box width.
func RenderStyledPage(view engine.View, width int) string {
	if view.RowCount == 0 {
		return InfoStyle.Render("No records to display.")
	}

	var content strings.Builder
	content.WriteString(HeaderStyle.Render("CAFETABLE"))
	content.WriteString("\n")
	content.WriteString(TableHeaderStyle.Render(styledLine(columnTitles(view))))
	content.WriteString("\n")

	for _, r := range view.Rows {
		line := styledLine(cellTexts(r, view.IsSelected(r.Place)))
		content.WriteString(BandStyle(engine.BandOf(r.Price)).Render(line))
		content.WriteString("\n")
	}
	content.WriteString(strings.Repeat("\n", view.EmptyRows))
	content.WriteString(footer(view))

	// Box it. Use width-2 to account for borders.
	return BoxStyle.Width(max(width-borderPadding, lipgloss.Width(styledLine(columnTitles(view))))).
		Render(content.String())
}
