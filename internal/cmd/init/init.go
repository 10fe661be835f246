// Package init provides the init command for bmk.
package init

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blockmark/internal/cmd/cmdutil"
	"github.com/open-cli-collective/blockmark/internal/config"
	"github.com/open-cli-collective/blockmark/pkg/shortcode"
)

type initOptions struct {
	*cmdutil.Options
	values         formValues
	nonInteractive bool
	force          bool
}

// formValues mirrors the form fields; huh binds to strings and bools.
type formValues struct {
	maxDepth      string
	proseMarkdown bool
	wrapBlocks    bool
	logLevel      string
	outputFormat  string
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize bmk configuration",
		Long: `Initialize bmk rendering defaults.

This command will guide you through the nesting limit, how text between
blocks is rendered, logging and the default output format. The
configuration will be saved to ~/.config/bmk/config.yml.

Every setting can also be overridden with BMK_* environment variables.`,
		Example: `  # Interactive setup
  bmk init

  # Write a config without prompting
  bmk init --non-interactive --max-depth 20 --output-format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Options = cmdutil.FromCommand(cmd)
			return runInit(opts)
		},
	}

	defaults := shortcode.DefaultRenderOptions()
	cmd.Flags().StringVar(&opts.values.maxDepth, "max-depth", strconv.Itoa(shortcode.DefaultMaxDepth), "Maximum shortcode nesting depth")
	cmd.Flags().BoolVar(&opts.values.proseMarkdown, "prose-markdown", defaults.ProseMarkdown, "Render text between blocks as Markdown")
	cmd.Flags().BoolVar(&opts.values.wrapBlocks, "wrap-blocks", defaults.WrapBlocks, "Wrap top-level blocks in <section> elements")
	cmd.Flags().StringVar(&opts.values.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.values.outputFormat, "output-format", "table", "Default output format: table, json, plain")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Use the flag values without prompting")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing config without asking")

	return cmd
}

func runInit(opts *initOptions) error {
	opts.Streams()
	configPath := opts.ResolvedConfigPath()

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !opts.force {
		if opts.nonInteractive {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(opts.Stdout, "Initialization cancelled.")
			return nil
		}
	}

	if !opts.nonInteractive {
		if err := newForm(&opts.values).Run(); err != nil {
			return err
		}
	}

	cfg, err := buildConfig(opts.values)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Fprint(opts.Stdout, "Verifying configuration... ")
	if err := verifyConfig(cfg); err != nil {
		fmt.Fprintln(opts.Stdout, "failed!")
		return fmt.Errorf("configuration verification failed: %w", err)
	}
	fmt.Fprintln(opts.Stdout, "success!")

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(opts.Stdout, "\nConfiguration saved to %s\n", configPath)
	fmt.Fprintln(opts.Stdout, "\nYou're all set! Try running:")
	fmt.Fprintln(opts.Stdout, "  bmk blocks")
	fmt.Fprintln(opts.Stdout, "  bmk render page.md")

	return nil
}

func newForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Maximum nesting depth").
				Description("Documents nesting shortcodes deeper than this are rejected").
				Placeholder(strconv.Itoa(shortcode.DefaultMaxDepth)).
				Value(&v.maxDepth).
				Validate(validateDepth),

			huh.NewConfirm().
				Title("Render text between blocks as Markdown?").
				Description("When off, that text is only HTML-escaped").
				Value(&v.proseMarkdown),

			huh.NewConfirm().
				Title("Wrap top-level blocks in <section> elements?").
				Value(&v.wrapBlocks),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&v.logLevel),

			huh.NewSelect[string]().
				Title("Default output format").
				Options(huh.NewOptions("table", "json", "plain")...).
				Value(&v.outputFormat),
		),
	)
}

func validateDepth(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("depth must be a number")
	}
	if n < 1 || n > config.MaxNestingLimit {
		return fmt.Errorf("depth must be between 1 and %d", config.MaxNestingLimit)
	}
	return nil
}

// buildConfig converts form values into a validated config. Values equal to
// the built-in defaults are left unset so later default changes apply.
func buildConfig(v formValues) (*config.Config, error) {
	if err := validateDepth(v.maxDepth); err != nil {
		return nil, err
	}
	cfg := &config.Config{
		LogLevel:     v.logLevel,
		OutputFormat: v.outputFormat,
	}
	if s := strings.TrimSpace(v.maxDepth); s != "" {
		n, _ := strconv.Atoi(s)
		if n != shortcode.DefaultMaxDepth {
			cfg.MaxDepth = n
		}
	}
	defaults := shortcode.DefaultRenderOptions()
	if v.proseMarkdown != defaults.ProseMarkdown {
		cfg.ProseMarkdown = config.Bool(v.proseMarkdown)
	}
	if v.wrapBlocks != defaults.WrapBlocks {
		cfg.WrapBlocks = config.Bool(v.wrapBlocks)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// verifySample exercises nesting, Markdown and attribute escaping.
const verifySample = `[#features title="Check"]{[#feature-item title="A &amp; B"]{**ok**}[/#feature-item]}[/#features]`

// verifyConfig renders a sample document with cfg.
func verifyConfig(cfg *config.Config) error {
	parser := shortcode.NewParser(shortcode.WithMaxDepth(cfg.EffectiveMaxDepth()))
	renderer := shortcode.NewRenderer(shortcode.WithRenderOptions(cfg.RenderOptions()))
	html, err := shortcode.NewService(parser, renderer).ParseAndRender(verifySample)
	if err != nil {
		return err
	}
	if !strings.Contains(html, "<strong>ok</strong>") {
		return errors.New("sample document rendered unexpected output")
	}
	return nil
}
