package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/cafetable/internal/cli/pagination"
	"github.com/rshade/cafetable/internal/config"
	"github.com/rshade/cafetable/internal/engine"
	"github.com/rshade/cafetable/internal/render"
)

// listParams holds the list command flags.
type listParams struct {
	dataFiles []string
	sort      string
	page      int
	pageSize  int
	selected  []string
	selectAll bool
	output    string
}

// NewListCmd creates the list command, which prints one page of the table.
func NewListCmd() *cobra.Command {
	var params listParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the table",
		Long: `Prints one page of the sorted table as a plain table, a JSON document or
NDJSON. Pages are 1-based; a page past the end shows the last page.`,
		Example: `  # First page, cheapest first
  cafetable list

  # Second page of 5 rows sorted by neighborhood, descending
  cafetable list --sort neighborhood:desc --page 2 --page-size 5

  # Select every row and print JSON
  cafetable list --select-all --output json

  # Combine several data files
  cafetable list --data north.csv --data south.yaml --output ndjson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params.pageSize = pageSizeOrDefault(cmd.Flags().Changed("page-size"), params.pageSize)
			return runList(cmd, params)
		},
	}

	cmd.Flags().StringArrayVar(&params.dataFiles, "data", nil,
		"data file to load (.json, .yaml, .yml, .csv); repeatable (default: configured files or bundled data)")
	cmd.Flags().StringVar(&params.sort, "sort", "", "sort by field[:asc|desc] (fields: place, neighborhood, price)")
	cmd.Flags().IntVar(&params.page, "page", pagination.DefaultPage, "page number (1-based)")
	cmd.Flags().IntVar(&params.pageSize, "page-size", 0, "rows per page (default: output.page_size)")
	cmd.Flags().StringArrayVar(&params.selected, "select", nil, "mark a place as selected; repeatable")
	cmd.Flags().BoolVar(&params.selectAll, "select-all", false, "mark every row of the dataset as selected")
	cmd.Flags().StringVar(&params.output, "output", "", "output format: table, json or ndjson (default: output.default_format)")
	cmd.MarkFlagsMutuallyExclusive("select", "select-all")

	return cmd
}

func runList(cmd *cobra.Command, params listParams) error {
	ctx := cmd.Context()

	pageParams := pagination.Params{Page: params.page, PageSize: params.pageSize, Sort: params.sort}
	if err := pageParams.Validate(); err != nil {
		return err
	}

	table, err := loadTable(ctx, params.dataFiles)
	if err != nil {
		return err
	}

	state, err := pageParams.State(config.GetGlobalConfig().Table.DefaultSort)
	if err != nil {
		return fmt.Errorf("table.default_sort: %w", err)
	}

	actions, err := pagination.SelectActions(table, params.selected, params.selectAll)
	if err != nil {
		return err
	}

	requested := state.Page.PageIndex
	state = table.Reduce(state, nil)
	if state.Page.PageIndex != requested {
		logger.Warn().Ctx(ctx).
			Int("requested_page", requested+1).
			Int("shown_page", state.Page.PageIndex+1).
			Msg("page out of range, showing last page")
	}
	for _, action := range actions {
		state = table.Reduce(state, action)
	}

	view := table.View(state)
	format := config.GetOutputFormat(params.output)
	return renderView(cmd, format, view)
}

// renderView writes view in format to the command output.
func renderView(cmd *cobra.Command, format string, view engine.View) error {
	if err := render.Write(cmd.OutOrStdout(), format, view); err != nil {
		return fmt.Errorf("rendering output: %w", err)
	}
	return nil
}
