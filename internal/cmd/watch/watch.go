// Package watch provides the watch command.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blockmark/internal/cmd/cmdutil"
	"github.com/open-cli-collective/blockmark/internal/logging"
	"github.com/open-cli-collective/blockmark/internal/view"
	"github.com/open-cli-collective/blockmark/pkg/shortcode"
)

// DefaultDebounce groups the bursts of events editors emit on save.
const DefaultDebounce = 100 * time.Millisecond

type watchOptions struct {
	*cmdutil.Options
	input       string
	out         string
	frontMatter bool
	debounce    time.Duration
}

// NewCmdWatch creates the watch command.
func NewCmdWatch() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <file> --out <file>",
		Short: "Re-render a document whenever it changes",
		Long: `Render a document, then watch it and render it again on every change
until interrupted.

A change that introduces a syntax error is reported and the last good
output is kept.`,
		Example: `  # Keep page.html in sync with page.md
  bmk watch page.md --out page.html --front-matter`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Options = cmdutil.FromCommand(cmd)
			opts.input = args[0]

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.out, "out", "", "HTML file to write (required)")
	cmd.Flags().BoolVarP(&opts.frontMatter, "front-matter", "f", false, "Strip and parse YAML front matter before rendering")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", DefaultDebounce, "Wait this long after the last change before rendering")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runWatch(ctx context.Context, opts *watchOptions) error {
	if opts.input == "" || opts.input == "-" {
		return errors.New("watch needs a file, not stdin")
	}
	if opts.out == "" {
		return errors.New("--out is required")
	}

	opts.Context = ctx
	_, svc, renderer, err := opts.Setup()
	if err != nil {
		return err
	}
	ctx = opts.Context
	logger := logging.FromContext(ctx)

	input, err := filepath.Abs(opts.input)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", opts.input, err)
	}
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.input, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors often replace the file instead of writing it.
	if err := watcher.Add(filepath.Dir(input)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(input), err)
	}

	b := &builder{ctx: ctx, opts: opts, svc: svc, view: renderer}
	b.build()

	debounce := opts.debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Debug("watch stopped", logging.FieldInput, opts.input)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != input || !relevant(event.Op) {
				continue
			}
			logger.Debug("file changed", logging.FieldPath, event.Name, logging.FieldEvent, event.Op.String())
			pending = time.After(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", logging.FieldError, err)

		case <-pending:
			pending = nil
			b.build()
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}

// builder renders the watched file and reports each attempt.
type builder struct {
	ctx  context.Context
	opts *watchOptions
	svc  *shortcode.Service
	view *view.Renderer
}

func (b *builder) build() {
	logger := logging.FromContext(b.ctx)
	start := time.Now()
	content, name, err := b.opts.ReadInput(b.opts.input)
	if err != nil {
		// the file is briefly missing while an editor swaps it in
		logger.Debug("skipping build", logging.FieldError, err)
		return
	}

	var html string
	if b.opts.frontMatter {
		var page *shortcode.Page
		page, err = b.svc.RenderDocument(content)
		if page != nil {
			html = page.HTML
		}
	} else {
		html, err = b.svc.ParseAndRender(content)
	}
	if err != nil {
		d := shortcode.DiagnosticFromError(err)
		logger.Debug("keeping previous output", logging.FieldInput, name, logging.FieldLine, d.Line, logging.FieldColumn, d.Column)
		b.view.Error(fmt.Sprintf("%s:%d:%d: %s: %s", name, d.Line, d.Column, d.Type, d.Message))
		return
	}

	if err := b.opts.WriteOutput(b.opts.out, html); err != nil {
		b.view.Error(err.Error())
		return
	}
	b.view.Success(fmt.Sprintf("rendered %s -> %s", name, b.opts.out))
	logger.Debug("rendered document",
		logging.FieldInput, name,
		logging.FieldOutput, b.opts.out,
		logging.FieldDuration, time.Since(start))
}
