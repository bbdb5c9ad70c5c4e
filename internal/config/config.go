package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/rshade/cafetable/internal/engine"
)

// Environment variables read by the config layer.
const (
	EnvHome         = "CAFETABLE_HOME"
	EnvProjectDir   = "CAFETABLE_PROJECT_DIR"
	EnvLogLevel     = "CAFETABLE_LOG_LEVEL"
	EnvLogFormat    = "CAFETABLE_LOG_FORMAT"
	EnvOutputFormat = "CAFETABLE_OUTPUT_FORMAT"
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Page size bounds.
const (
	MinPageSize = 1
	MaxPageSize = 1000
)

// configDirName is the name of both the global and the project-local config directory.
const configDirName = ".cafetable"

// configFileName is the config file inside a config directory.
const configFileName = "config.yaml"

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidPageSize     = errors.New("page size must be between 1 and 1000")
	ErrInvalidLogLevel     = errors.New("invalid log level")
	ErrInvalidLogFormat    = errors.New("invalid log format")
)

// Config is the cafetable configuration file.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Table   TableConfig   `yaml:"table"`
	Logging LoggingConfig `yaml:"logging"`

	configPath string
}

// OutputConfig controls how tables are printed.
type OutputConfig struct {
	DefaultFormat   string `yaml:"default_format"`
	PageSize        int    `yaml:"page_size"`
	PageSizeOptions []int  `yaml:"page_size_options"`
}

// TableConfig controls what is shown.
type TableConfig struct {
	DefaultSort string   `yaml:"default_sort"`
	DataFiles   []string `yaml:"data_files,omitempty"`
}

// LoggingConfig controls logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// Dir returns the global configuration directory: $CAFETABLE_HOME, or
// ~/.cafetable when unset.
func Dir() string {
	if home := os.Getenv(EnvHome); home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(userHome, configDirName)
}

// Default returns a Config with built-in defaults and no file or
// environment applied.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat:   FormatTable,
			PageSize:        engine.DefaultPageSize,
			PageSizeOptions: []int{5, 10, 25},
		},
		Table: TableConfig{
			DefaultSort: string(engine.DefaultSortKey) + ":" + string(engine.DefaultSortDirection),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		configPath: filepath.Join(Dir(), configFileName),
	}
}

// New returns the defaults overlaid with the global config file, when present,
// and environment overrides. A malformed config file is ignored; use Load to
// see its error.
func New() *Config {
	cfg := Default()
	_ = cfg.Load()
	cfg.applyEnv()
	return cfg
}

// ConfigPath returns the file this config loads from and saves to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file used by Load and Save.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Load reads the config file over the current values. A missing file is not an error.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", c.configPath, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", c.configPath, err)
	}
	return nil
}

// Save writes the config file, creating its directory as needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

// applyEnv overlays environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = v
	}
}

// Validate checks every section for semantic errors.
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON:
	default:
		return fmt.Errorf("%w: %q (must be table, json or ndjson)", ErrInvalidOutputFormat, c.Output.DefaultFormat)
	}

	if !validPageSize(c.Output.PageSize) {
		return fmt.Errorf("output.page_size: %w, got %d", ErrInvalidPageSize, c.Output.PageSize)
	}
	for _, size := range c.Output.PageSizeOptions {
		if !validPageSize(size) {
			return fmt.Errorf("output.page_size_options: %w, got %d", ErrInvalidPageSize, size)
		}
	}

	if _, _, err := engine.ParseSort(c.Table.DefaultSort); err != nil {
		return fmt.Errorf("table.default_sort: %w", err)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: %q (must be json or console)", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}

func validPageSize(size int) bool {
	return size >= MinPageSize && size <= MaxPageSize
}

// PageSizes returns the sorted page size choices offered to the user,
// always including the configured page size.
func (c *Config) PageSizes() []int {
	sizes := slices.Clone(c.Output.PageSizeOptions)
	if validPageSize(c.Output.PageSize) && !slices.Contains(sizes, c.Output.PageSize) {
		sizes = append(sizes, c.Output.PageSize)
	}
	slices.Sort(sizes)
	return slices.Compact(sizes)
}

var (
	globalConfig   *Config    //nolint:gochecknoglobals // Set once per invocation by InitGlobalConfig
	globalConfigMu sync.Mutex //nolint:gochecknoglobals // Protects globalConfig
)

// InitGlobalConfig loads the global config with the project overlay in
// projectDir, if any, and makes it the process-wide config.
func InitGlobalConfig(ctx context.Context, projectDir string) *Config {
	cfg := NewWithProjectDir(ctx, projectDir)

	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return cfg
}

// GetGlobalConfig returns the process-wide config, loading it on first use.
func GetGlobalConfig() *Config {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	if globalConfig == nil {
		globalConfig = NewWithProjectDir(context.Background(), GetResolvedProjectDir())
	}
	return globalConfig
}

// ResetGlobalConfigForTest drops the process-wide config.
func ResetGlobalConfigForTest() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
}

// GetOutputFormat returns flagValue when set, else the configured default format.
func GetOutputFormat(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return GetGlobalConfig().Output.DefaultFormat
}
