// Package root provides the root command for the bmk CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blockmark/internal/cmd/blocks"
	"github.com/open-cli-collective/blockmark/internal/cmd/completion"
	"github.com/open-cli-collective/blockmark/internal/cmd/configcmd"
	"github.com/open-cli-collective/blockmark/internal/cmd/importcmd"
	initcmd "github.com/open-cli-collective/blockmark/internal/cmd/init"
	"github.com/open-cli-collective/blockmark/internal/cmd/inspect"
	"github.com/open-cli-collective/blockmark/internal/cmd/render"
	"github.com/open-cli-collective/blockmark/internal/cmd/validate"
	"github.com/open-cli-collective/blockmark/internal/cmd/watch"
	"github.com/open-cli-collective/blockmark/internal/logging"
	"github.com/open-cli-collective/blockmark/internal/version"
)

// NewCmdRoot creates the root command for bmk.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bmk",
		Short: "Render shortcode page documents to HTML",
		Long: `bmk renders page documents written with [#tag]{...}[/#tag] shortcodes
into HTML.

Shortcodes mark page blocks (hero, features, pricing, ...); the text inside
their content blocks is Markdown. Documents may start with YAML front matter.

Get started by running: bmk blocks`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				logging.SetLevel("debug")
			}
			logger := logging.Default()
			logger.Debug("starting bmk",
				logging.FieldVersion, version.Version,
				logging.FieldCommit, version.Commit,
				logging.FieldBuilt, version.Date)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/bmk/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json, plain (default: table)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	cmd.SetVersionTemplate("bmk version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(render.NewCmdRender())
	cmd.AddCommand(validate.NewCmdValidate())
	cmd.AddCommand(inspect.NewCmdFrontMatter())
	cmd.AddCommand(inspect.NewCmdTokens())
	cmd.AddCommand(inspect.NewCmdAST())
	cmd.AddCommand(blocks.NewCmdBlocks())
	cmd.AddCommand(importcmd.NewCmdImport())
	cmd.AddCommand(watch.NewCmdWatch())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
