package configcmd

import (
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blockmark/internal/cmd/cmdutil"
	"github.com/open-cli-collective/blockmark/internal/config"
	"github.com/open-cli-collective/blockmark/internal/view"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective bmk configuration and where each value comes from.`,
		Example: `  # Show current config
  bmk config show

  # As JSON
  bmk config show -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmdutil.FromCommand(cmd))
		},
	}

	return cmd
}

// setting is one row of config show.
type setting struct {
	name   string
	value  string
	source string
}

func runShow(opts *cmdutil.Options) error {
	opts.Streams()
	if opts.NoColor {
		color.NoColor = true
	}

	configPath := opts.ResolvedConfigPath()

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	v, err := opts.View(cfg)
	if err != nil {
		return err
	}

	renderOpts := cfg.RenderOptions()
	logLevel := cfg.LogLevel
	if logLevel == "" {
		logLevel = "warn"
	}
	outputFormat := cfg.OutputFormat
	if outputFormat == "" {
		outputFormat = string(view.FormatTable)
	}

	settings := []setting{
		{"max_depth", strconv.Itoa(cfg.EffectiveMaxDepth()), source(fileCfg.MaxDepth != 0, config.EnvMaxDepth)},
		{"prose_markdown", strconv.FormatBool(renderOpts.ProseMarkdown), source(fileCfg.ProseMarkdown != nil, config.EnvProseMarkdown)},
		{"wrap_blocks", strconv.FormatBool(renderOpts.WrapBlocks), source(fileCfg.WrapBlocks != nil, config.EnvWrapBlocks)},
		{"log_level", logLevel, source(fileCfg.LogLevel != "", config.EnvLogLevel, "LOG_LEVEL")},
		{"output_format", outputFormat, source(fileCfg.OutputFormat != "", config.EnvOutputFormat)},
	}

	rows := make([][]string, len(settings))
	for i, s := range settings {
		rows[i] = []string{s.name, s.value, s.source}
	}
	v.RenderTable([]string{"SETTING", "VALUE", "SOURCE"}, rows)

	if v.Format() == view.FormatTable {
		dim := color.New(color.Faint)
		_, _ = dim.Fprintf(opts.Stdout, "\nConfig file: %s\n", configPath)
		if fileErr != nil {
			_, _ = dim.Fprintln(opts.Stdout, "(file not found)")
		}
	}

	return nil
}

// source names the environment variable that set a value, "config" when
// the file set it, or "default".
func source(inFile bool, envVars ...string) string {
	for _, envVar := range envVars {
		if os.Getenv(envVar) != "" {
			return envVar
		}
	}
	if inFile {
		return "config"
	}
	return "default"
}
