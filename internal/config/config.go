// Package config provides configuration management for bmk.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/blockmark/internal/logging"
	"github.com/open-cli-collective/blockmark/pkg/shortcode"
)

// MaxNestingLimit caps max_depth so a config file cannot disable the guard.
const MaxNestingLimit = 1000

// Environment variables read by LoadFromEnv.
const (
	EnvMaxDepth      = "BMK_MAX_DEPTH"
	EnvProseMarkdown = "BMK_PROSE_MARKDOWN"
	EnvWrapBlocks    = "BMK_WRAP_BLOCKS"
	EnvLogLevel      = "BMK_LOG_LEVEL"
	EnvOutputFormat  = "BMK_OUTPUT_FORMAT"
)

// EnvVars lists every environment variable bmk reads.
var EnvVars = []string{EnvMaxDepth, EnvProseMarkdown, EnvWrapBlocks, EnvLogLevel, "LOG_LEVEL", EnvOutputFormat}

// Config holds the bmk configuration. Unset fields fall back to the
// pipeline defaults.
type Config struct {
	MaxDepth      int    `yaml:"max_depth,omitempty"`
	ProseMarkdown *bool  `yaml:"prose_markdown,omitempty"`
	WrapBlocks    *bool  `yaml:"wrap_blocks,omitempty"`
	LogLevel      string `yaml:"log_level,omitempty"`
	OutputFormat  string `yaml:"output_format,omitempty"`
}

// Bool returns a pointer to v, for filling the optional fields.
func Bool(v bool) *bool {
	return &v
}

// Validate checks that all set fields hold usable values.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return errors.New("max_depth must not be negative")
	}
	if c.MaxDepth > MaxNestingLimit {
		return fmt.Errorf("max_depth must be at most %d", MaxNestingLimit)
	}
	if c.LogLevel != "" && !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}
	switch c.OutputFormat {
	case "", "table", "json", "plain":
	default:
		return fmt.Errorf("output_format %q is not one of table, json, plain", c.OutputFormat)
	}
	return nil
}

// RenderOptions converts the config into renderer options.
func (c *Config) RenderOptions() shortcode.RenderOptions {
	opts := shortcode.DefaultRenderOptions()
	if c.MaxDepth > 0 {
		opts.MaxDepth = c.MaxDepth
	}
	if c.ProseMarkdown != nil {
		opts.ProseMarkdown = *c.ProseMarkdown
	}
	if c.WrapBlocks != nil {
		opts.WrapBlocks = *c.WrapBlocks
	}
	return opts
}

// EffectiveMaxDepth returns the parser nesting limit.
func (c *Config) EffectiveMaxDepth() int {
	if c.MaxDepth > 0 {
		return c.MaxDepth
	}
	return shortcode.DefaultMaxDepth
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
// Precedence: BMK_* → LOG_LEVEL (log level only) → existing config value
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv(EnvMaxDepth); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", EnvMaxDepth, v)
		}
		c.MaxDepth = n
	}
	if v := os.Getenv(EnvProseMarkdown); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %q is not a boolean", EnvProseMarkdown, v)
		}
		c.ProseMarkdown = &b
	}
	if v := os.Getenv(EnvWrapBlocks); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %q is not a boolean", EnvWrapBlocks, v)
		}
		c.WrapBlocks = &b
	}
	if level := getEnvWithFallback(EnvLogLevel, "LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if format := os.Getenv(EnvOutputFormat); format != "" {
		c.OutputFormat = format
	}
	return nil
}

// getEnvWithFallback returns the value of the primary env var, or the fallback if primary is empty.
func getEnvWithFallback(primary, fallback string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	return os.Getenv(fallback)
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "bmk", "config.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".bmk", "config.yml")
	}

	return filepath.Join(home, ".config", "bmk", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file is not an error; a malformed one is.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}
