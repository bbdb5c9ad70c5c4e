package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/cafetable/internal/config"
)

// NewConfigSetCmd creates the config set command.
func NewConfigSetCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Sets a configuration value and saves the file. Inside a project the project
configuration is written unless --global is given. List values are
comma-separated.`,
		Example: `  # Show 25 rows per page
  cafetable config set output.page_size 25

  # Offer these page sizes in the interactive view
  cafetable config set output.page_size_options 5,10,25,100

  # Sort by place by default, globally
  cafetable config set table.default_sort place:asc --global`,
		Args: cobra.ExactArgs(2), //nolint:mnd // key and value.
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := setConfigValue(global, args[0], args[1])
			if err != nil {
				return err
			}
			cmd.Printf("Set %s = %s in %s\n", args[0], args[1], path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "write the global configuration even inside a project")

	return cmd
}

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Short:   "Print the effective value of a configuration key",
		Example: `  cafetable config get output.page_size`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List every configuration key with its effective value",
		Example: `  cafetable config list`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			for _, key := range config.Keys() {
				value, err := cfg.Get(key)
				if err != nil {
					return err
				}
				if _, err = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// setConfigValue writes key to the project overlay when a project is
// resolved, otherwise to the global file, and returns the path written.
// Environment overrides are never persisted.
func setConfigValue(global bool, key, value string) (string, error) {
	base := config.Default()
	if err := base.Load(); err != nil {
		return "", err
	}

	dir := config.GetResolvedProjectDir()
	if dir == "" || global {
		if err := base.Set(key, value); err != nil {
			return "", fmt.Errorf("setting %s: %w", key, err)
		}
		if err := base.Save(); err != nil {
			return "", fmt.Errorf("failed to save configuration: %w", err)
		}
		return base.ConfigPath(), nil
	}

	overlay := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(overlay); err == nil {
		if err = config.ShallowMergeYAML(base, overlay); err != nil {
			return "", err
		}
	}
	if err := config.SetOverlayValue(base, overlay, key, value); err != nil {
		return "", fmt.Errorf("setting %s: %w", key, err)
	}
	return overlay, nil
}
