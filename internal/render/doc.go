// Package render writes a table page for non-interactive output: a plain
// tabwriter table, a single JSON document, or NDJSON with one row per line.
//
// It also owns the display formatting shared with the terminal UI: price
// strings with thousand separators and upper-cased place names.
package render
