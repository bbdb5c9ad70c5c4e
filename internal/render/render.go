package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rshade/cafetable/internal/engine"
)

// Output formats accepted by Write.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// ErrUnsupportedFormat is returned by Write for unknown output formats.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// tabwriterPadding is the minimum padding between columns.
const tabwriterPadding = 2

// Checkbox markers for the SEL column.
const (
	markSelected   = "[x]"
	markUnselected = "[ ]"
)

// Row is one rendered record with its derived presentation fields.
type Row struct {
	Place        string           `json:"place"`
	Neighborhood string           `json:"neighborhood"`
	Price        float64          `json:"price"`
	Band         engine.PriceBand `json:"band"`
	Selected     bool             `json:"selected"`
}

// Rows converts the visible records of view into Rows.
func Rows(view engine.View) []Row {
	rows := make([]Row, len(view.Rows))
	for i, r := range view.Rows {
		rows[i] = Row{
			Place:        r.Place,
			Neighborhood: r.Neighborhood,
			Price:        r.Price,
			Band:         engine.BandOf(r.Price),
			Selected:     view.IsSelected(r.Place),
		}
	}
	return rows
}

// SortIndicator returns the header suffix for key: " ▲" or " ▼" on the
// active column and "" elsewhere.
func SortIndicator(view engine.View, key engine.SortKey) string {
	if view.Key != key {
		return ""
	}
	if view.Direction == engine.Descending {
		return " ▼"
	}
	return " ▲"
}

// Table writes a plain ASCII table of the visible page followed by a
// summary line.
func Table(w io.Writer, view engine.View) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	header := []string{"SEL"}
	for _, key := range engine.SortKeys() {
		header = append(header, strings.ToUpper(key.String())+SortIndicator(view, key))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")+"\tBAND"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "---\t-----\t------------\t-----\t----"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	for _, row := range Rows(view) {
		mark := markUnselected
		if row.Selected {
			mark = markSelected
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			mark, row.Place, row.Neighborhood, FormatPrice(row.Price), row.Band,
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	meta := view.Meta()
	if _, err := fmt.Fprintf(w, "\nPage %d of %d, %d rows, %d selected\n",
		meta.CurrentPage, max(1, meta.TotalPages), meta.TotalItems, meta.Selected); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// Metadata describes how the page was produced.
type Metadata struct {
	SortKey       engine.SortKey       `json:"sort_key"`
	SortDirection engine.SortDirection `json:"sort_direction"`
}

// Document is the top-level JSON output structure.
type Document struct {
	Metadata   Metadata        `json:"metadata"`
	Records    []Row           `json:"records"`
	Pagination engine.PageMeta `json:"pagination"`
	Selection  []string        `json:"selection"`
}

// NewDocument builds the JSON document for view.
func NewDocument(view engine.View) Document {
	selection := view.Selection.IDs()
	if selection == nil {
		selection = []string{}
	}
	return Document{
		Metadata: Metadata{
			SortKey:       view.Key,
			SortDirection: view.Direction,
		},
		Records:    Rows(view),
		Pagination: view.Meta(),
		Selection:  selection,
	}
}

// JSON renders the page as a single indented JSON document.
func JSON(w io.Writer, view engine.View) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(NewDocument(view)); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// NDJSON renders each visible row as a separate JSON line with no metadata
// wrapper.
func NDJSON(w io.Writer, view engine.View) error {
	for i, row := range Rows(view) {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("marshaling row %d: %w", i, err)
		}
		if _, err = fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	return nil
}

// Write renders view in the named format.
func Write(w io.Writer, format string, view engine.View) error {
	switch format {
	case FormatTable:
		return Table(w, view)
	case FormatJSON:
		return JSON(w, view)
	case FormatNDJSON:
		return NDJSON(w, view)
	default:
		return fmt.Errorf("%w: %q (must be table, json or ndjson)", ErrUnsupportedFormat, format)
	}
}
