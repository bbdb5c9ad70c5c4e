package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/cafetable/internal/config"
	"github.com/rshade/cafetable/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the cafetable CLI.
// It resolves the project directory, loads configuration, wires up logging
// and tracing, and registers the view, list and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult      *logging.LogPathResult
		projectDirFlag string
	)

	cmd := &cobra.Command{
		Use:   "cafetable",
		Short: "Sortable, paginated café price table",
		Long: `cafetable shows a dataset of cafés (place, neighborhood, price) as a table
that can be sorted by any column, paged, and have rows selected.`,
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				cwd = ""
			}
			projectDir := config.ResolveProjectDir(cmd.Context(), projectDirFlag, cwd)
			config.SetResolvedProjectDir(projectDir)
			config.InitGlobalConfig(cmd.Context(), projectDir)

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&projectDirFlag, "project-dir", "",
		"project directory holding .cafetable/config.yaml (default: nearest parent with a .cafetable directory)")
	cmd.AddCommand(NewViewCmd(), NewListCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Browse the bundled café dataset interactively
  cafetable view

  # Browse your own data, most expensive first
  cafetable view --data cafes.csv --sort price:desc

  # Print the second page of 10 rows as JSON
  cafetable list --page 2 --page-size 10 --output json

  # Mark rows as selected in the output
  cafetable list --select "Café Tortoni" --select "Las Violetas"

  # Initialize configuration
  cafetable config init

  # Set configuration values
  cafetable config set output.page_size 25`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
