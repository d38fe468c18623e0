package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/biorefs/pkg/constants"
)

func TestLoadConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, constants.DefaultFastaWidth, config.FastaWidth)
}

func TestConfig_EnvironmentVariables(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("BIOREFS_OUTPUT", "json")
	t.Setenv("BIOREFS_FASTA_WIDTH", "80")
	t.Setenv("LOG_LEVEL", "warn")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "json", config.Output)
	assert.Equal(t, 80, config.FastaWidth)
	assert.Equal(t, "warn", config.LogLevel)
}

func TestConfig_File(t *testing.T) {
	t.Cleanup(viper.Reset)
	path := filepath.Join(t.TempDir(), "biorefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: yaml\nmanifest: refs.yaml\nfasta_width: 70\n"), 0o644))

	config, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml", config.Output)
	assert.Equal(t, "refs.yaml", config.Manifest)
	assert.Equal(t, 70, config.FastaWidth)
	assert.Equal(t, path, config.ConfigFile)
}

func TestConfig_MissingExplicitFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_UpdateFromFlags(t *testing.T) {
	c := &Config{Output: "table", LogLevel: "info"}
	c.UpdateFromFlags(true, false, true, "json", "")
	assert.True(t, c.Verbose)
	assert.True(t, c.NoColor)
	assert.Equal(t, "json", c.Output)
	assert.Equal(t, "info", c.LogLevel)
}
