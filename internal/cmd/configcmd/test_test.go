package configcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/blockmark/internal/config"
)

func TestRunTest(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		file    string
		wantErr string
		wantOut []string
	}{
		{
			name:    "no config file uses defaults",
			wantOut: []string{"✓ Configuration valid", "✓ Sample document rendered", "Nesting limit: 50"},
		},
		{
			name:    "custom settings",
			cfg:     &config.Config{MaxDepth: 4, ProseMarkdown: config.Bool(false)},
			wantOut: []string{"✓ Sample document rendered", "Nesting limit: 4"},
		},
		{
			name:    "depth too small for sample",
			cfg:     &config.Config{MaxDepth: 1},
			wantErr: "sample render failed",
			wantOut: []string{"✓ Configuration valid", "✗ Sample document failed"},
		},
		{
			name:    "invalid config",
			file:    "output_format: xml\n",
			wantErr: "invalid config",
			wantOut: []string{"✗ Configuration invalid", "Reconfigure with: bmk init"},
		},
		{
			name:    "malformed config",
			file:    "max_depth: [\n",
			wantErr: "failed to load config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			configPath := filepath.Join(t.TempDir(), "config.yml")
			if tt.cfg != nil {
				require.NoError(t, tt.cfg.Save(configPath))
			}
			if tt.file != "" {
				require.NoError(t, os.WriteFile(configPath, []byte(tt.file), 0644))
			}

			opts, stdout := newOptions(configPath, "")
			err := runTest(opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			for _, want := range tt.wantOut {
				assert.Contains(t, stdout.String(), want)
			}
		})
	}
}

func TestRunTest_DebugLogsConfigPath(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")
	opts, _ := newOptions(configPath, "")
	var stderr bytes.Buffer
	opts.Stderr = &stderr
	opts.Debug = true

	require.NoError(t, runTest(opts))
	assert.Contains(t, stderr.String(), "rendering sample document")
	assert.Contains(t, stderr.String(), configPath)
}

func TestNewCmdConfig(t *testing.T) {
	cmd := NewCmdConfig()
	assert.Equal(t, "config", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"show", "test", "clear"}, names)
}
