package configcmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blockmark/internal/cmd/cmdutil"
	"github.com/open-cli-collective/blockmark/internal/logging"
	"github.com/open-cli-collective/blockmark/internal/view"
)

// sampleDocument covers front matter, nesting and prose between blocks.
const sampleDocument = `---
title: Config test
---
[#hero title="Hello"]{Welcome}[/#hero]

Some *prose*.

[#features cols="2"]{[#feature-item title="One"]{First}[/#feature-item]}[/#features]
`

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the current configuration",
		Long:  `Load the effective configuration and render a sample document with it.`,
		Example: `  # Test configuration
  bmk config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTest(cmdutil.FromCommand(cmd))
		},
	}

	return cmd
}

func runTest(opts *cmdutil.Options) error {
	opts.Streams()
	out := view.NewRenderer(view.FormatTable, opts.NoColor)
	out.SetWriter(opts.Stdout)

	fmt.Fprintf(opts.Stdout, "Testing configuration from %s...\n", opts.ResolvedConfigPath())

	cfg, err := opts.Config()
	if err != nil {
		out.Error("Configuration invalid: " + err.Error())
		fmt.Fprintln(opts.Stdout, "\nCheck your settings with: bmk config show")
		fmt.Fprintln(opts.Stdout, "Reconfigure with: bmk init")
		return err
	}
	out.Success("Configuration valid")

	logger := opts.Logger(cfg)
	logger.Debug("rendering sample document", logging.FieldConfig, opts.ResolvedConfigPath())
	svc := opts.Service(cfg, logger)
	page, err := svc.RenderDocument(sampleDocument)
	if err != nil {
		out.Error("Sample document failed: " + err.Error())
		fmt.Fprintln(opts.Stdout, "\nCheck max_depth with: bmk config show")
		return fmt.Errorf("sample render failed: %w", err)
	}
	if !strings.Contains(page.HTML, "Hello") {
		out.Error("Sample document rendered unexpected output")
		return errors.New("sample render produced unexpected output")
	}
	out.Success(fmt.Sprintf("Sample document rendered (%d bytes)", len(page.HTML)))

	fmt.Fprintf(opts.Stdout, "\nNesting limit: %d\n", cfg.EffectiveMaxDepth())

	return nil
}
