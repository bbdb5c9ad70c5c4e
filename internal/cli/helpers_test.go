package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/cafetable/internal/cli"
	"github.com/rshade/cafetable/internal/config"
)

// setupCLITest isolates the global and project config and quiets logging.
// It returns the global config dir and the project root.
func setupCLITest(t *testing.T) (string, string) {
	t.Helper()
	globalDir := t.TempDir()
	projectRoot := t.TempDir()

	t.Setenv(config.EnvHome, globalDir)
	t.Setenv(config.EnvProjectDir, projectRoot)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvLogFormat, "")
	t.Setenv(config.EnvOutputFormat, "")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return globalDir, projectRoot
}

// executeCmd runs the root command with args and returns its combined output.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// writeData writes a data file into a fresh temp dir and returns its path.
func writeData(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// scenarioJSON is A(500), B(2000), C(1200).
const scenarioJSON = `[
  {"place": "A", "neighborhood": "Palermo", "price": 500},
  {"place": "B", "neighborhood": "Recoleta", "price": 2000},
  {"place": "C", "neighborhood": "San Telmo", "price": 1200}
]`
