// Package dataset loads the fixed record set a table is built from.
//
// Records come from the bundled café list or from files:
//   - JSON and YAML: a bare array of records, or an envelope with a
//     schema_version (semver, major 1) and a records array
//   - CSV: a header row naming place, neighborhood and price in any order
//
// Every load is validated: places must be non-empty and unique, prices
// finite and non-negative.
package dataset
