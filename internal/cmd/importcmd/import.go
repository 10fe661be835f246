// Package importcmd provides the import command.
package importcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blockmark/internal/cmd/cmdutil"
	"github.com/open-cli-collective/blockmark/internal/logging"
	"github.com/open-cli-collective/blockmark/pkg/shortcode"
)

type importOptions struct {
	*cmdutil.Options
	input  string
	out    string
	tag    string
	verify bool
}

// NewCmdImport creates the import command.
func NewCmdImport() *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import <file.html|->",
		Short: "Convert an HTML page into a shortcode document",
		Long: `Convert a legacy HTML page or fragment into a shortcode document.

The HTML is converted to Markdown and placed in a single content block.
Text that looks like shortcode syntax is written as HTML character
references so the result always parses.`,
		Example: `  # Import a page as a text block
  bmk import about.html --out about.md

  # Import legal copy into a legal-text block
  curl -s https://example.com/terms | bmk import - --tag legal-text`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Options = cmdutil.FromCommand(cmd)
			opts.input = args[0]
			return runImport(opts)
		},
	}

	cmd.Flags().StringVar(&opts.out, "out", "", "Write the document to this file instead of stdout")
	cmd.Flags().StringVarP(&opts.tag, "tag", "t", "text", "Block tag to wrap the content in")
	cmd.Flags().BoolVar(&opts.verify, "verify", true, "Check that the result parses before writing it")

	return cmd
}

func runImport(opts *importOptions) error {
	_, svc, _, err := opts.Setup()
	if err != nil {
		return err
	}
	logger := logging.FromContext(opts.Context)

	html, name, err := opts.ReadInput(opts.input)
	if err != nil {
		return err
	}

	doc, err := shortcode.FromHTMLWithOptions(html, shortcode.ImportOptions{Tag: opts.tag})
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if doc == "" {
		logger.Warn("no content to import", logging.FieldInput, name)
		return nil
	}

	if opts.verify {
		if _, err := svc.Parse(doc); err != nil {
			return fmt.Errorf("imported document does not parse: %w", err)
		}
	}
	if _, known := svc.Renderer().Registry().Lookup(opts.tag); !known {
		logger.Warn("block tag is not registered and will render as a comment", logging.FieldTag, opts.tag)
	}

	logger.Debug("imported document", logging.FieldInput, name, logging.FieldOutput, opts.out, logging.FieldBytes, len(doc))
	return opts.WriteOutput(opts.out, doc)
}
