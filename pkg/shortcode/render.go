// render.go walks a DocumentNode and produces HTML.
package shortcode

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/open-cli-collective/blockmark/internal/logging"
)

// RenderOptions controls document-level rendering.
type RenderOptions struct {
	// ProseMarkdown converts top-level text between blocks as Markdown.
	// When false that text is only HTML-escaped.
	ProseMarkdown bool
	// WrapBlocks wraps each top-level block in <section class="block block-TAG">.
	WrapBlocks bool
	// MaxDepth bounds rendering recursion for trees not built by Parse.
	MaxDepth int
}

// DefaultRenderOptions returns the options used by NewRenderer.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		ProseMarkdown: true,
		WrapBlocks:    true,
		MaxDepth:      DefaultMaxDepth,
	}
}

// Renderer converts documents to HTML. It keeps no per-call state and is safe
// for concurrent use as long as its registry is not being modified.
type Renderer struct {
	registry *Registry
	markdown MarkdownConverter
	logger   *log.Logger
	opts     RenderOptions
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithRegistry sets the block registry.
func WithRegistry(reg *Registry) RendererOption {
	return func(r *Renderer) { r.registry = reg }
}

// WithMarkdown sets the Markdown converter.
func WithMarkdown(conv MarkdownConverter) RendererOption {
	return func(r *Renderer) { r.markdown = conv }
}

// WithLogger sets the logger used for render warnings.
func WithLogger(logger *log.Logger) RendererOption {
	return func(r *Renderer) { r.logger = logger }
}

// WithRenderOptions replaces the document-level options.
func WithRenderOptions(opts RenderOptions) RendererOption {
	return func(r *Renderer) { r.opts = opts }
}

// NewRenderer creates a Renderer using the built-in blocks and goldmark
// unless overridden.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{opts: DefaultRenderOptions()}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = DefaultRegistry()
	}
	if r.markdown == nil {
		r.markdown = NewGoldmarkConverter()
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	if r.opts.MaxDepth < 1 {
		r.opts.MaxDepth = DefaultMaxDepth
	}
	return r
}

// Registry returns the renderer's block registry.
func (r *Renderer) Registry() *Registry {
	return r.registry
}

// Render produces HTML for doc. It never fails: unknown tags and Markdown
// conversion problems degrade to harmless output.
func (r *Renderer) Render(doc *DocumentNode) string {
	if doc == nil {
		return ""
	}
	ctx := &RenderContext{renderer: r}

	var sb strings.Builder
	var prose strings.Builder
	flushProse := func() {
		if strings.TrimSpace(prose.String()) != "" {
			sb.WriteString(r.renderProse(prose.String()))
		}
		prose.Reset()
	}

	for _, child := range doc.Nodes {
		if text, ok := child.(*TextNode); ok {
			prose.WriteString(text.Content)
			continue
		}
		flushProse()

		sc, ok := child.(*ShortcodeNode)
		if !ok {
			sb.WriteString(ctx.render(child))
			continue
		}
		html := ctx.render(sc)
		if _, known := r.registry.Lookup(sc.Tag); known && r.opts.WrapBlocks {
			html = `<section class="block block-` + classToken(sc.Tag) + `">` + html + "</section>"
		}
		sb.WriteString(html)
		sb.WriteString("\n")
	}
	flushProse()

	return sb.String()
}

func (r *Renderer) renderProse(text string) string {
	if !r.opts.ProseMarkdown {
		return "<p>" + escapeHTML(strings.TrimSpace(text)) + "</p>\n"
	}
	return r.convertMarkdown(text)
}

func (r *Renderer) convertMarkdown(src string) string {
	out, err := r.markdown.Convert(src)
	if err != nil {
		r.logger.Warn("markdown conversion failed, emitting escaped text", logging.FieldError, err)
		return "<p>" + escapeHTML(src) + "</p>\n"
	}
	return out
}

// RenderContext is passed to block renderers so they can render their
// children with the same renderer and depth tracking.
type RenderContext struct {
	renderer *Renderer
	depth    int
}

// Depth returns the nesting depth of the block being rendered; top-level
// blocks are at depth 0.
func (c *RenderContext) Depth() int {
	return c.depth
}

// Children renders the children of node in document order.
func (c *RenderContext) Children(node *ShortcodeNode) string {
	child := &RenderContext{renderer: c.renderer, depth: c.depth + 1}
	var sb strings.Builder
	for _, n := range node.Nodes {
		sb.WriteString(child.render(n))
	}
	return sb.String()
}

// URL returns raw trimmed for use in an href or src attribute of node.
// URLs with a script-capable scheme are replaced by "#" and logged.
// The result still needs escaping.
func (c *RenderContext) URL(node *ShortcodeNode, raw string) string {
	u := strings.TrimSpace(raw)
	if u != "" && isDangerousURL(u) {
		c.renderer.logger.Warn("rejected URL", logging.FieldURL, u, logging.FieldTag, node.Tag)
		return "#"
	}
	return u
}

// Markdown converts src with the renderer's Markdown converter.
func (c *RenderContext) Markdown(src string) string {
	return c.renderer.convertMarkdown(src)
}

func (c *RenderContext) render(n Node) string {
	switch node := n.(type) {
	case *ShortcodeNode:
		return c.renderShortcode(node)
	case *MarkdownNode:
		return c.renderer.convertMarkdown(node.Content)
	case *TextNode:
		return escapeHTML(node.Content)
	case *DocumentNode:
		var sb strings.Builder
		for _, child := range node.Nodes {
			sb.WriteString(c.render(child))
		}
		return sb.String()
	}
	return ""
}

func (c *RenderContext) renderShortcode(node *ShortcodeNode) string {
	r := c.renderer
	if c.depth >= r.opts.MaxDepth {
		r.logger.Warn("shortcode nested too deeply, skipping", logging.FieldTag, node.Tag, logging.FieldDepth, c.depth)
		return "<!-- shortcode nested too deeply -->"
	}

	def, ok := r.registry.Lookup(node.Tag)
	if !ok || def.Renderer == nil {
		r.logger.Warn("unknown shortcode", logging.FieldTag, node.Tag)
		return unknownBlockComment(node.Tag) + c.Children(node)
	}
	return def.Renderer.RenderBlock(c, node)
}

// unknownBlockComment marks the position of an unregistered tag.
func unknownBlockComment(tag string) string {
	name := escapeHTML(tag)
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}
	return `<!-- shortcode "` + name + `" is not registered -->`
}
