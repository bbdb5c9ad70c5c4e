package pagination

import (
	"errors"
	"fmt"

	"github.com/rshade/cafetable/internal/engine"
)

// ErrUnknownRow is returned when --select names a place not in the dataset.
var ErrUnknownRow = errors.New("unknown row")

// SelectActions converts --select and --select-all flags into reducer
// actions. Every id must name a record of table.
func SelectActions(table *engine.Table, ids []string, selectAll bool) ([]engine.Action, error) {
	if selectAll {
		return []engine.Action{engine.SelectAllRows{Checked: true}}, nil
	}

	known := engine.NewSelection(table.AllIDs()...)
	actions := make([]engine.Action, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !known.IsSelected(id) {
			return nil, fmt.Errorf("--select %q: %w", id, ErrUnknownRow)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		actions = append(actions, engine.ToggleRow{ID: id})
	}
	return actions, nil
}
