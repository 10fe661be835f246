// Package render provides the render command.
package render

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blockmark/internal/cmd/cmdutil"
	"github.com/open-cli-collective/blockmark/internal/logging"
	"github.com/open-cli-collective/blockmark/internal/view"
	"github.com/open-cli-collective/blockmark/pkg/shortcode"
)

type renderOptions struct {
	*cmdutil.Options
	input       string
	out         string
	frontMatter bool
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a shortcode document to HTML",
		Long: `Render a shortcode document to HTML.

The document is read from the given file, or from stdin when the file is
omitted or "-". Syntax errors stop rendering and are reported with their
line and column. Unknown block tags render as HTML comments.`,
		Example: `  # Render a page to stdout
  bmk render page.md

  # Render a page with YAML front matter into a file
  bmk render page.md --front-matter --out page.html

  # Render and include front matter metadata as JSON
  bmk render page.md --front-matter -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Options = cmdutil.FromCommand(cmd)
			if len(args) > 0 {
				opts.input = args[0]
			}
			return runRender(opts)
		},
	}

	cmd.Flags().StringVar(&opts.out, "out", "", "Write HTML to this file instead of stdout")
	cmd.Flags().BoolVarP(&opts.frontMatter, "front-matter", "f", false, "Strip and parse YAML front matter before rendering")

	return cmd
}

func runRender(opts *renderOptions) error {
	_, svc, renderer, err := opts.Setup()
	if err != nil {
		return err
	}
	logger := logging.FromContext(opts.Context)

	content, name, err := opts.ReadInput(opts.input)
	if err != nil {
		return err
	}

	start := time.Now()
	page, err := renderPage(svc, content, opts.frontMatter)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	logger.Debug("rendered document",
		logging.FieldInput, name,
		logging.FieldBytes, len(page.HTML),
		logging.FieldDuration, time.Since(start))

	if renderer.Format() == view.FormatJSON && opts.out == "" {
		return renderer.RenderJSON(page)
	}
	return opts.WriteOutput(opts.out, page.HTML)
}

// renderPage runs the pipeline for a single document. Without front matter
// handling the metadata is left empty.
func renderPage(svc *shortcode.Service, content string, frontMatter bool) (*shortcode.Page, error) {
	if frontMatter {
		return svc.RenderDocument(content)
	}
	html, err := svc.ParseAndRender(content)
	if err != nil {
		return nil, err
	}
	return &shortcode.Page{Metadata: map[string]interface{}{}, HTML: html}, nil
}
