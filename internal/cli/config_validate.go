package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/cafetable/internal/config"
	"github.com/rshade/cafetable/internal/dataset"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the global configuration file and the project configuration, if
any, for syntax and semantic correctness.

This includes:
- YAML syntax of both files
- Output format and page sizes
- Default sort expression
- Logging level and format
- With --verbose, loading the configured data files`,
		Example: `  # Validate current configuration
  cafetable config validate

  # Validate and show detailed information
  cafetable config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	// The loaded config silently skips broken files, so parse them again here.
	global := config.Default()
	if err := global.Load(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	projectPath := ""
	if dir := config.GetResolvedProjectDir(); dir != "" {
		projectPath = filepath.Join(dir, "config.yaml")
		if _, statErr := os.Stat(projectPath); statErr == nil {
			if err := config.ShallowMergeYAML(config.Default(), projectPath); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
		} else {
			projectPath = ""
		}
	}

	cfg := config.GetGlobalConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		return printVerboseDetails(cmd, cfg, global.ConfigPath(), projectPath)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config, globalPath, projectPath string) error {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Global config: %s\n", globalPath)
	if projectPath != "" {
		cmd.Printf("  Project config: %s\n", projectPath)
	}
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Page size: %d (choices: %v)\n", cfg.Output.PageSize, cfg.PageSizes())
	cmd.Printf("  Default sort: %s\n", cfg.Table.DefaultSort)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}

	if len(cfg.Table.DataFiles) == 0 {
		cmd.Println("  Data: bundled dataset")
		return nil
	}

	records, err := dataset.LoadFiles(cmd.Context(), cfg.Table.DataFiles...)
	if err != nil {
		return fmt.Errorf("configured data files: %w", err)
	}
	cmd.Printf("  Data files: %d (%d records)\n", len(cfg.Table.DataFiles), len(records))
	for _, f := range cfg.Table.DataFiles {
		cmd.Printf("    - %s\n", f)
	}
	return nil
}
