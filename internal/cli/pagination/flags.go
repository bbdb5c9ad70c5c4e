package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/cafetable/internal/engine"
)

// Validation limits and defaults.
const (
	DefaultPage     = 1
	MinPage         = 1
	DefaultPageSize = engine.DefaultPageSize
	MinPageSize     = 1
	MaxPageSize     = 1000
)

// Common validation errors.
var (
	ErrInvalidPageSize = errors.New("page-size must be between 1 and 1000")
	ErrInvalidPage     = errors.New("page must be >= 1")
	ErrEmptySortField  = errors.New("sort field cannot be empty")
)

// Params holds the CLI pagination and sort flags.
type Params struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the number of rows per page.
	PageSize int

	// Sort is a sort expression such as "price" or "place:desc". Empty means
	// the configured default.
	Sort string
}

// Validate checks page bounds and the sort expression.
func (p Params) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w, got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w, got %d", ErrInvalidPageSize, p.PageSize)
	}
	if p.Sort != "" {
		if _, _, err := ParseSort(p.Sort); err != nil {
			return err
		}
	}
	return nil
}

// PageIndex returns the 0-based page index for the engine.
func (p Params) PageIndex() int {
	return max(0, p.Page-1)
}

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "price", "place:desc", "neighborhood:asc".
func ParseSort(sortStr string) (engine.SortKey, engine.SortDirection, error) {
	if strings.TrimSpace(strings.Split(sortStr, ":")[0]) == "" {
		return "", "", ErrEmptySortField
	}
	key, direction, err := engine.ParseSort(sortStr)
	if err != nil {
		return "", "", fmt.Errorf("parsing --sort: %w", err)
	}
	return key, direction, nil
}

// State builds the initial table state for these params. fallbackSort is
// used when Sort is empty and may itself be empty, meaning the engine default.
// The page index is not clamped; use engine.Table.Reduce for that.
func (p Params) State(fallbackSort string) (engine.TableState, error) {
	state := engine.NewTableState(p.PageSize)

	expr := p.Sort
	if expr == "" {
		expr = fallbackSort
	}
	if expr != "" {
		key, direction, err := ParseSort(expr)
		if err != nil {
			return engine.TableState{}, err
		}
		state.Key = key
		state.Direction = direction
	}

	state.Page.PageIndex = p.PageIndex()
	return state, nil
}
