package configcmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blockmark/internal/cmd/cmdutil"
	"github.com/open-cli-collective/blockmark/internal/config"
)

// NewCmdClear creates the config clear command.
func NewCmdClear() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove stored configuration",
		Long:  `Delete the bmk configuration file. Environment variables will still be used if set.`,
		Example: `  # Clear config
  bmk config clear`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClear(cmdutil.FromCommand(cmd))
		},
	}

	return cmd
}

func runClear(opts *cmdutil.Options) error {
	opts.Streams()
	if opts.NoColor {
		color.NoColor = true
	}

	configPath := opts.ResolvedConfigPath()

	err := os.Remove(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}

	green := color.New(color.FgGreen)
	dim := color.New(color.Faint)

	if os.IsNotExist(err) {
		_, _ = green.Fprintf(opts.Stdout, "✓ No config file to remove\n")
	} else {
		_, _ = green.Fprintf(opts.Stdout, "✓ Configuration cleared from %s\n", configPath)
	}

	var activeVars []string
	for _, v := range config.EnvVars {
		if os.Getenv(v) != "" {
			activeVars = append(activeVars, v)
		}
	}

	if len(activeVars) > 0 {
		_, _ = dim.Fprintf(opts.Stdout, "\nNote: Environment variables will still be used: %s\n", strings.Join(activeVars, ", "))
	}

	return nil
}
