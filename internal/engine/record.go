package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Record is a single row of the dataset. Place identifies the record within
// its dataset and is used as the selection key.
type Record struct {
	Place        string  `json:"place"        yaml:"place"`
	Neighborhood string  `json:"neighborhood" yaml:"neighborhood"`
	Price        float64 `json:"price"        yaml:"price"`
}

// SortKey names the record field used for ordering.
type SortKey string

// Sortable record fields.
const (
	SortByPlace        SortKey = "place"
	SortByNeighborhood SortKey = "neighborhood"
	SortByPrice        SortKey = "price"
)

// SortDirection is the ordering direction of a sort.
type SortDirection string

// Sort directions.
const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Defaults applied when the table is first shown.
const (
	DefaultSortKey       = SortByPrice
	DefaultSortDirection = Ascending
	DefaultPageSize      = 50
)

// Common parse errors.
var (
	ErrInvalidSortKey       = errors.New("invalid sort key")
	ErrInvalidSortDirection = errors.New("invalid sort direction")
)

// SortKeys returns all sortable keys in column order.
func SortKeys() []SortKey {
	return []SortKey{SortByPlace, SortByNeighborhood, SortByPrice}
}

// IsValid reports whether k is one of the sortable fields.
func (k SortKey) IsValid() bool {
	switch k {
	case SortByPlace, SortByNeighborhood, SortByPrice:
		return true
	default:
		return false
	}
}

// String returns the field name.
func (k SortKey) String() string {
	return string(k)
}

// IsValid reports whether d is ascending or descending.
func (d SortDirection) IsValid() bool {
	return d == Ascending || d == Descending
}

// Reverse returns the opposite direction.
func (d SortDirection) Reverse() SortDirection {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// String returns "asc" or "desc".
func (d SortDirection) String() string {
	return string(d)
}

// ParseSortKey parses a field name case-insensitively.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q (valid: place, neighborhood, price)", ErrInvalidSortKey, s)
	}
	return k, nil
}

// ParseSortDirection accepts "asc"/"ascending" and "desc"/"descending".
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("%w: %q (must be asc or desc)", ErrInvalidSortDirection, s)
	}
}

// IDs returns the identifiers of records in dataset order.
func IDs(records []Record) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.Place
	}
	return ids
}

// sortPartsMax is the maximum number of parts in a sort expression (field:order).
const sortPartsMax = 2

// ErrInvalidSortFormat is returned for sort expressions with more than one colon.
var ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'price:desc')")

// ParseSort parses a sort expression of the form "field" or "field:order".
// A bare field sorts ascending.
func ParseSort(expr string) (SortKey, SortDirection, error) {
	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, expr)
	}

	key, err := ParseSortKey(parts[0])
	if err != nil {
		return "", "", err
	}

	direction := Ascending
	if len(parts) == sortPartsMax {
		if direction, err = ParseSortDirection(parts[1]); err != nil {
			return "", "", err
		}
	}
	return key, direction, nil
}
