package cli

import (
	"context"
	"fmt"

	"github.com/rshade/cafetable/internal/config"
	"github.com/rshade/cafetable/internal/dataset"
	"github.com/rshade/cafetable/internal/engine"
)

// loadTable loads the files named by --data, falling back to the configured
// data files and then to the bundled dataset.
func loadTable(ctx context.Context, dataFiles []string) (*engine.Table, error) {
	paths := dataFiles
	if len(paths) == 0 {
		paths = config.GetGlobalConfig().Table.DataFiles
	}

	records, err := dataset.Load(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("loading data: %w", err)
	}

	logger.Debug().Ctx(ctx).
		Strs("files", paths).
		Int("records", len(records)).
		Msg("dataset loaded")

	return engine.NewTable(records), nil
}

// pageSizeOrDefault returns flagValue when the flag was given, else the
// configured page size.
func pageSizeOrDefault(changed bool, flagValue int) int {
	if changed {
		return flagValue
	}
	return config.GetGlobalConfig().Output.PageSize
}
