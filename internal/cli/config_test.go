package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/cafetable/internal/cli"
	"github.com/rshade/cafetable/internal/config"
)

// TestConfigInit_Project verifies that "config init" inside a project creates
// .cafetable/config.yaml and .cafetable/.gitignore.
func TestConfigInit_Project(t *testing.T) {
	_, projectRoot := setupCLITest(t)

	out, err := executeCmd(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized at")
	assert.Contains(t, out, "Created .gitignore")

	assert.FileExists(t, filepath.Join(projectRoot, ".cafetable", "config.yaml"))
	data, err := os.ReadFile(filepath.Join(projectRoot, ".cafetable", ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, config.GitignoreContent(), string(data))

	_, err = executeCmd(t, "config", "init")
	require.Error(t, err, "second init without --force fails")

	out, err = executeCmd(t, "config", "init", "--force")
	require.NoError(t, err)
	assert.NotContains(t, out, "Created .gitignore", "existing .gitignore is preserved")
}

func TestConfigInit_Global(t *testing.T) {
	globalDir, projectRoot := setupCLITest(t)

	out, err := executeCmd(t, "config", "init", "--global")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.FileExists(t, filepath.Join(globalDir, "config.yaml"))
	assert.NoDirExists(t, filepath.Join(projectRoot, ".cafetable"))
}

// TestConfigInit_ProjectDirFlag verifies --project-dir takes precedence over the environment.
func TestConfigInit_ProjectDirFlag(t *testing.T) {
	setupCLITest(t)
	flagRoot := t.TempDir()

	_, err := executeCmd(t, "--project-dir", flagRoot, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(flagRoot, ".cafetable", "config.yaml"))
}

func TestConfigSetGet(t *testing.T) {
	setupCLITest(t)

	out, err := executeCmd(t, "config", "set", "output.page_size", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "Set output.page_size = 25")

	out, err = executeCmd(t, "config", "get", "output.page_size")
	require.NoError(t, err)
	assert.Equal(t, "25", strings.TrimSpace(out))

	_, err = executeCmd(t, "config", "set", "output.page_size", "0")
	require.ErrorIs(t, err, config.ErrInvalidPageSize)

	_, err = executeCmd(t, "config", "get", "output.colour")
	require.ErrorIs(t, err, config.ErrUnknownKey)
}

// TestConfigSet_ProjectKeepsGlobalSections verifies a project write only
// touches the section of the key being set.
func TestConfigSet_ProjectKeepsGlobalSections(t *testing.T) {
	_, projectRoot := setupCLITest(t)

	_, err := executeCmd(t, "config", "set", "table.default_sort", "place:desc", "--global")
	require.NoError(t, err)
	_, err = executeCmd(t, "config", "set", "logging.level", "warn", "--global")
	require.NoError(t, err)

	out, err := executeCmd(t, "config", "set", "output.page_size", "25")
	require.NoError(t, err)
	projectFile := filepath.Join(projectRoot, ".cafetable", "config.yaml")
	assert.Contains(t, out, projectFile)

	data, err := os.ReadFile(projectFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "page_size: 25")
	assert.NotContains(t, string(data), "table:")
	assert.NotContains(t, string(data), "logging:")

	tests := map[string]string{
		"table.default_sort": "place:desc",
		"output.page_size":   "25",
	}
	for key, want := range tests {
		out, err = executeCmd(t, "config", "get", key)
		require.NoError(t, err)
		assert.Equal(t, want, strings.TrimSpace(out), key)
	}
}

// TestConfigSet_ProjectPreservesOtherSections verifies existing overlay
// sections survive a write to a different section.
func TestConfigSet_ProjectPreservesOtherSections(t *testing.T) {
	_, projectRoot := setupCLITest(t)
	projectDir := filepath.Join(projectRoot, ".cafetable")
	require.NoError(t, os.MkdirAll(projectDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"),
		[]byte("table:\n  default_sort: neighborhood:asc\n"), 0o600))

	_, err := executeCmd(t, "config", "set", "output.page_size", "10")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(projectDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "default_sort: neighborhood:asc")
	assert.Contains(t, string(data), "page_size: 10")
	assert.NotContains(t, string(data), "logging:")

	out, err := executeCmd(t, "config", "get", "table.default_sort")
	require.NoError(t, err)
	assert.Equal(t, "neighborhood:asc", strings.TrimSpace(out))
}

// TestConfigSet_DoesNotPersistEnv verifies environment overrides never end up in the file.
func TestConfigSet_DoesNotPersistEnv(t *testing.T) {
	globalDir, _ := setupCLITest(t)
	t.Setenv(config.EnvOutputFormat, "ndjson")

	_, err := executeCmd(t, "config", "set", "output.page_size", "10", "--global")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(globalDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "page_size: 10")
	assert.NotContains(t, string(data), "ndjson")
}

func TestConfigList(t *testing.T) {
	setupCLITest(t)

	out, err := executeCmd(t, "config", "list")
	require.NoError(t, err)
	for _, key := range config.Keys() {
		assert.Contains(t, out, key+" =")
	}
	assert.Contains(t, out, "table.default_sort = price:asc")
}

func TestConfigValidate(t *testing.T) {
	setupCLITest(t)

	out, err := executeCmd(t, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Data: bundled dataset")
}

func TestConfigValidate_DataFiles(t *testing.T) {
	setupCLITest(t)
	data := writeData(t, "cafes.json", scenarioJSON)

	_, err := executeCmd(t, "config", "set", "table.data_files", data)
	require.NoError(t, err)

	out, err := executeCmd(t, "config", "validate", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "Data files: 1 (3 records)")
}

func TestConfigValidate_Failures(t *testing.T) {
	t.Run("broken global file", func(t *testing.T) {
		globalDir, _ := setupCLITest(t)
		require.NoError(t, os.WriteFile(filepath.Join(globalDir, "config.yaml"), []byte("output: [broken"), 0o600))

		_, err := executeCmd(t, "config", "validate")
		require.Error(t, err)
	})

	t.Run("broken project file", func(t *testing.T) {
		_, projectRoot := setupCLITest(t)
		dir := filepath.Join(projectRoot, ".cafetable")
		require.NoError(t, os.MkdirAll(dir, 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
			[]byte("output: {page_size: [1]}\n"), 0o600))

		_, err := executeCmd(t, "config", "validate")
		require.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		globalDir, _ := setupCLITest(t)
		require.NoError(t, os.WriteFile(filepath.Join(globalDir, "config.yaml"),
			[]byte("output:\n  default_format: xml\n  page_size: 10\n"), 0o600))

		_, err := executeCmd(t, "config", "validate")
		require.ErrorIs(t, err, config.ErrInvalidOutputFormat)
	})
}

// TestConfigGet_WritesToStdout verifies values are program output, not diagnostics.
func TestConfigGet_WritesToStdout(t *testing.T) {
	setupCLITest(t)

	for _, args := range [][]string{
		{"config", "get", "output.page_size"},
		{"config", "list"},
	} {
		var stdout, stderr bytes.Buffer
		cmd := cli.NewRootCmd("test")
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs(args)

		require.NoError(t, cmd.Execute())
		assert.Contains(t, stdout.String(), "50", args)
		assert.Empty(t, stderr.String(), args)
	}
}
