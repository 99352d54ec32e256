package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "irjson.toml")

	content := `
output = "out.json"
log-level = "warn"
timestamps = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "out.json", cfg.Output)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.Timestamps)
	assert.False(t, cfg.TestMode)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestApplyConfigCommandLineWins(t *testing.T) {
	e := &Exporter{outputPath: "cli.json", logLevel: "debug"}
	e.applyConfig(&tomlConfig{Output: "file.json", LogLevel: "error"})

	assert.Equal(t, "cli.json", e.outputPath)
	assert.Equal(t, "debug", e.logLevel)

	// defaults yield to the file
	e = &Exporter{logLevel: "info"}
	e.applyConfig(&tomlConfig{Output: "file.json", LogLevel: "error"})
	assert.Equal(t, "file.json", e.outputPath)
	assert.Equal(t, "error", e.logLevel)
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, "prog.json", defaultOutputPath("prog.ll"))
	assert.Equal(t, "a/b/mod.json", defaultOutputPath("a/b/mod.ll"))
	assert.Equal(t, "prog.bc.json", defaultOutputPath("prog.bc"))
}
