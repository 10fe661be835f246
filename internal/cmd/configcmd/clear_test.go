package configcmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/blockmark/internal/config"
)

func TestRunClear_WithExistingConfig(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "bmk", "config.yml")
	require.NoError(t, (&config.Config{MaxDepth: 10}).Save(configPath))

	opts, stdout := newOptions(configPath, "")
	require.NoError(t, runClear(opts))

	_, err := os.Stat(configPath)
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, stdout.String(), "✓ Configuration cleared from "+configPath)
	assert.NotContains(t, stdout.String(), "Environment variables")
}

func TestRunClear_Idempotent(t *testing.T) {
	clearEnv(t)
	opts, stdout := newOptions(filepath.Join(t.TempDir(), "config.yml"), "")

	require.NoError(t, runClear(opts))
	require.NoError(t, runClear(opts))
	assert.Contains(t, stdout.String(), "✓ No config file to remove")
}

func TestRunClear_ReportsActiveEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvMaxDepth, "5")
	t.Setenv(config.EnvOutputFormat, "json")

	opts, stdout := newOptions(filepath.Join(t.TempDir(), "config.yml"), "")
	require.NoError(t, runClear(opts))
	assert.Contains(t, stdout.String(), "Environment variables will still be used: BMK_MAX_DEPTH, BMK_OUTPUT_FORMAT")
}
