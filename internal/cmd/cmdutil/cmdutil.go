// Package cmdutil holds the plumbing shared by bmk subcommands: global
// flags, config loading, input reading and service construction.
package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blockmark/internal/config"
	"github.com/open-cli-collective/blockmark/internal/logging"
	"github.com/open-cli-collective/blockmark/internal/view"
	"github.com/open-cli-collective/blockmark/pkg/shortcode"
)

// ErrSilent is returned by commands that already reported their failure and
// only need a non-zero exit status.
var ErrSilent = errors.New("command failed")

// StdinName is the display name used for documents read from stdin.
const StdinName = "<stdin>"

// Options carries the global flags and the command's streams.
type Options struct {
	ConfigPath string
	Output     string
	NoColor    bool
	Debug      bool

	// Context carries the command logger once Setup has run.
	Context context.Context

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// FromCommand reads the global flags of cmd.
func FromCommand(cmd *cobra.Command) *Options {
	opts := &Options{
		Context: cmd.Context(),
		Stdin:   cmd.InOrStdin(),
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
	}
	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	opts.Output, _ = cmd.Flags().GetString("output")
	opts.NoColor, _ = cmd.Flags().GetBool("no-color")
	opts.Debug, _ = cmd.Flags().GetBool("debug")
	return opts
}

// Streams fills unset streams with the process defaults. Tests construct
// Options directly and rely on this.
func (o *Options) Streams() *Options {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Context == nil {
		o.Context = context.Background()
	}
	return o
}

// ResolvedConfigPath returns --config or the default location.
func (o *Options) ResolvedConfigPath() string {
	if o.ConfigPath != "" {
		return o.ConfigPath
	}
	return config.DefaultConfigPath()
}

// Config loads and validates the effective configuration.
func (o *Options) Config() (*config.Config, error) {
	cfg, err := config.LoadWithEnv(o.ResolvedConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w (run 'bmk init' to configure)", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'bmk init' to configure)", err)
	}
	return cfg, nil
}

// Logger builds the command logger. --debug wins over the configured level.
func (o *Options) Logger(cfg *config.Config) *log.Logger {
	o.Streams()
	level := cfg.LogLevel
	if o.Debug {
		level = "debug"
	}
	return logging.NewWithWriter(o.Stderr, level)
}

// Service builds the shortcode pipeline described by cfg.
func (o *Options) Service(cfg *config.Config, logger *log.Logger) *shortcode.Service {
	parser := shortcode.NewParser(shortcode.WithMaxDepth(cfg.EffectiveMaxDepth()))
	renderer := shortcode.NewRenderer(
		shortcode.WithRenderOptions(cfg.RenderOptions()),
		shortcode.WithLogger(logger),
	)
	return shortcode.NewService(parser, renderer)
}

// View builds the output renderer. --output wins over the configured format.
func (o *Options) View(cfg *config.Config) (*view.Renderer, error) {
	o.Streams()
	format := o.Output
	if format == "" && cfg != nil {
		format = cfg.OutputFormat
	}
	if err := view.ValidateFormat(format); err != nil {
		return nil, err
	}
	v := view.NewRenderer(view.Format(format), o.NoColor)
	v.SetWriter(o.Stdout)
	return v, nil
}

// ReadInput reads path, or stdin when path is empty or "-". It returns the
// content and a name for messages.
func (o *Options) ReadInput(path string) (string, string, error) {
	o.Streams()
	if path == "" || path == "-" {
		data, err := io.ReadAll(o.Stdin)
		if err != nil {
			return "", StdinName, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), StdinName, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", path, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), path, nil
}

// WriteOutput writes content to path, or to stdout when path is empty or "-".
func (o *Options) WriteOutput(path, content string) error {
	o.Streams()
	if path == "" || path == "-" {
		_, err := io.WriteString(o.Stdout, content)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Setup loads the config and builds the service and view in one call. The
// command logger is attached to o.Context; read it with logging.FromContext.
func (o *Options) Setup() (*config.Config, *shortcode.Service, *view.Renderer, error) {
	cfg, err := o.Config()
	if err != nil {
		return nil, nil, nil, err
	}
	v, err := o.View(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := o.Logger(cfg)
	o.Context = logging.WithLogger(o.Context, logger)
	logger.Debug("loaded config", logging.FieldConfig, o.ResolvedConfigPath())
	return cfg, o.Service(cfg, logger), v, nil
}
