// Package pagination provides utilities for CLI pagination and sorting flags.
//
// This package contains the pagination logic shared by the list and view commands:
//   - Params: CLI flag parsing and validation
//   - Select: turning --select / --select-all flags into reducer actions
//
// CLI pages are 1-based; Params converts them to the 0-based page index used
// by the engine.
package pagination
