package shortcode

import (
	"bytes"
	"reflect"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// MarkdownConverter turns Markdown source into HTML. Implementations must
// escape any literal HTML in the source rather than pass it through.
type MarkdownConverter interface {
	Convert(markdown string) (string, error)
}

// ConverterFunc adapts a plain function to MarkdownConverter.
type ConverterFunc func(markdown string) (string, error)

// Convert calls f.
func (f ConverterFunc) Convert(markdown string) (string, error) {
	return f(markdown)
}

// GoldmarkConverter is the default MarkdownConverter: CommonMark plus GFM
// tables and strikethrough. The raw HTML block and inline parsers are left
// out, so "<script>" in the source is treated as text and escaped by the
// HTML renderer. Autolinks with a dangerous scheme render as plain text.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter.
func NewGoldmarkConverter() *GoldmarkConverter {
	return &GoldmarkConverter{
		md: goldmark.New(
			goldmark.WithParser(newTextOnlyParser()),
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
			),
			goldmark.WithRendererOptions(
				renderer.WithNodeRenderers(util.Prioritized(autoLinkRenderer{}, 100)),
			),
		),
	}
}

// Convert implements MarkdownConverter.
func (c *GoldmarkConverter) Convert(markdown string) (string, error) {
	if markdown == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// newTextOnlyParser returns goldmark's default parser without raw HTML support.
func newTextOnlyParser() parser.Parser {
	return parser.NewParser(
		parser.WithBlockParsers(without(parser.DefaultBlockParsers(), parser.NewHTMLBlockParser())...),
		parser.WithInlineParsers(without(parser.DefaultInlineParsers(), parser.NewRawHTMLParser())...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)
}

// without filters out the entries whose value has the same concrete type as drop.
func without(values []util.PrioritizedValue, drop interface{}) []util.PrioritizedValue {
	dropType := reflect.TypeOf(drop)
	out := make([]util.PrioritizedValue, 0, len(values))
	for _, v := range values {
		if reflect.TypeOf(v.Value) == dropType {
			continue
		}
		out = append(out, v)
	}
	return out
}

// autoLinkRenderer replaces goldmark's autolink rendering, which does not
// check the URL scheme the way its link and image renderers do.
type autoLinkRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer.
func (autoLinkRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindAutoLink, renderAutoLink)
}

func renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.AutoLink)
	url := n.URL(source)
	label := n.Label(source)
	if isDangerousURL(string(url)) {
		_, _ = w.Write(util.EscapeHTML(label))
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString(`<a href="`)
	if n.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(url), []byte("mailto:")) {
		_, _ = w.WriteString("mailto:")
	}
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(url, false)))
	if n.Attributes() != nil {
		_ = w.WriteByte('"')
		gmhtml.RenderAttributes(w, n, gmhtml.LinkAttributeFilter)
		_ = w.WriteByte('>')
	} else {
		_, _ = w.WriteString(`">`)
	}
	_, _ = w.Write(util.EscapeHTML(label))
	_, _ = w.WriteString(`</a>`)
	return ast.WalkContinue, nil
}
