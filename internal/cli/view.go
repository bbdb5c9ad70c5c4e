package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/cafetable/internal/cli/pagination"
	"github.com/rshade/cafetable/internal/config"
	"github.com/rshade/cafetable/internal/engine"
	"github.com/rshade/cafetable/internal/render"
	"github.com/rshade/cafetable/internal/tui"
)

// viewParams holds the view command flags.
type viewParams struct {
	dataFiles []string
	sort      string
	pageSize  int
	plain     bool
	noColor   bool
}

// NewViewCmd creates the view command, which opens the interactive table.
func NewViewCmd() *cobra.Command {
	var params viewParams

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the table interactively",
		Long: `Opens an interactive table. Sort with 1/2/3 (or p/n/$), select rows with
space, select every row with a, change page with the arrow keys and page size
with + and -. Press q to quit; the selected places are printed on exit.

When stdout is not a terminal the first page is printed instead.`,
		Example: `  # Browse the bundled dataset
  cafetable view

  # Start sorted by place, 10 rows per page
  cafetable view --sort place --page-size 10

  # Print the first page without colors
  cafetable view --plain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params.pageSize = pageSizeOrDefault(cmd.Flags().Changed("page-size"), params.pageSize)
			return runView(cmd, params)
		},
	}

	cmd.Flags().StringArrayVar(&params.dataFiles, "data", nil,
		"data file to load (.json, .yaml, .yml, .csv); repeatable (default: configured files or bundled data)")
	cmd.Flags().StringVar(&params.sort, "sort", "", "initial sort field[:asc|desc] (fields: place, neighborhood, price)")
	cmd.Flags().IntVar(&params.pageSize, "page-size", 0, "initial rows per page (default: output.page_size)")
	cmd.Flags().BoolVar(&params.plain, "plain", false, "print a plain table instead of the interactive view")
	cmd.Flags().BoolVar(&params.noColor, "no-color", false, "disable colors")

	return cmd
}

func runView(cmd *cobra.Command, params viewParams) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	pageParams := pagination.Params{Page: pagination.DefaultPage, PageSize: params.pageSize, Sort: params.sort}
	if err := pageParams.Validate(); err != nil {
		return err
	}

	table, err := loadTable(ctx, params.dataFiles)
	if err != nil {
		return err
	}

	state, err := pageParams.State(cfg.Table.DefaultSort)
	if err != nil {
		return fmt.Errorf("table.default_sort: %w", err)
	}

	mode := tui.DetectOutputMode(false, params.noColor, params.plain)
	logger.Debug().Ctx(ctx).Str("mode", mode.String()).Msg("output mode detected")

	switch mode {
	case tui.OutputModeInteractive:
		return runInteractiveTable(cmd, table, state, cfg.PageSizes())
	case tui.OutputModeStyled:
		_, err = fmt.Fprintln(cmd.OutOrStdout(), tui.RenderStyledPage(table.View(state), tui.TerminalWidth()))
		return err
	case tui.OutputModePlain:
		return renderView(cmd, render.FormatTable, table.View(state))
	default:
		return renderView(cmd, render.FormatTable, table.View(state))
	}
}

func runInteractiveTable(cmd *cobra.Command, table *engine.Table, state engine.TableState, pageSizes []int) error {
	ctx := cmd.Context()
	if logsToTerminal(cmd) {
		// Log lines on stderr would corrupt the alt screen.
		ctx = zerolog.Nop().WithContext(ctx)
	}

	p := tea.NewProgram(
		tui.NewTableModel(ctx, table, state, pageSizes),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}

	if m, ok := final.(tui.TableModel); ok {
		return printSelection(cmd.OutOrStdout(), m.State().Selection)
	}
	return nil
}

// printSelection writes the ids chosen in the interactive table, if any.
func printSelection(w io.Writer, sel engine.Selection) error {
	ids := sel.IDs()
	if len(ids) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Selected (%d): %s\n", len(ids), strings.Join(ids, ", ")); err != nil {
		return fmt.Errorf("writing selection: %w", err)
	}
	return nil
}
