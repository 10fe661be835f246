// Package validate provides the validate command.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blockmark/internal/cmd/cmdutil"
	"github.com/open-cli-collective/blockmark/internal/logging"
	"github.com/open-cli-collective/blockmark/internal/view"
	"github.com/open-cli-collective/blockmark/pkg/shortcode"
)

type validateOptions struct {
	*cmdutil.Options
	files         []string
	noFrontMatter bool
	quiet         bool
}

// NewCmdValidate creates the validate command.
func NewCmdValidate() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Check shortcode documents for syntax errors",
		Long: `Check one or more shortcode documents for syntax errors without rendering
them.

Each document is reported with the first problem found, as
file:line:column. Leading YAML front matter is checked too, and positions
refer to lines of the whole file. The command exits non-zero when any
document is invalid.`,
		Example: `  # Validate every page in a directory
  bmk validate pages/*.md

  # Validate stdin and print diagnostics as JSON
  cat page.md | bmk validate -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Options = cmdutil.FromCommand(cmd)
			opts.files = args
			return runValidate(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noFrontMatter, "no-front-matter", false, "Treat a leading --- block as document content")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Only report invalid documents")

	return cmd
}

func runValidate(opts *validateOptions) error {
	_, svc, renderer, err := opts.Setup()
	if err != nil {
		return err
	}
	logger := logging.FromContext(opts.Context)

	files := opts.files
	if len(files) == 0 {
		files = []string{"-"}
	}

	var diags []view.FileDiagnostic
	invalid := 0
	for _, file := range files {
		content, name, err := opts.ReadInput(file)
		if err != nil {
			return err
		}

		found := diagnose(svc, content, opts.noFrontMatter)
		logger.Debug("validated document", logging.FieldPath, name, "diagnostics", len(found))
		if len(found) > 0 {
			invalid++
		}
		for _, d := range found {
			logger.Debug("invalid document", logging.FieldPath, name, logging.FieldLine, d.Line, logging.FieldColumn, d.Column)
			diags = append(diags, view.FileDiagnostic{File: name, Diagnostic: d})
		}
	}

	if err := renderer.RenderDiagnostics(diags); err != nil {
		return err
	}

	if invalid > 0 {
		if renderer.Format() == view.FormatTable && !opts.quiet {
			renderer.Error(fmt.Sprintf("%d of %d documents invalid", invalid, len(files)))
		}
		return cmdutil.ErrSilent
	}
	if renderer.Format() == view.FormatTable && !opts.quiet {
		renderer.Success(fmt.Sprintf("%d %s valid", len(files), plural(len(files), "document", "documents")))
	}
	return nil
}

func diagnose(svc *shortcode.Service, content string, noFrontMatter bool) []shortcode.Diagnostic {
	if noFrontMatter {
		return svc.Diagnose(content)
	}
	return svc.ValidateDocument(content)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
