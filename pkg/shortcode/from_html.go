package shortcode

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// ImportOptions configures FromHTMLWithOptions.
type ImportOptions struct {
	// Tag is the block the converted Markdown is placed in. Defaults to "text".
	Tag string
}

// FromHTML converts a legacy HTML fragment into a document holding a single
// text block with the equivalent Markdown.
func FromHTML(html string) (string, error) {
	return FromHTMLWithOptions(html, ImportOptions{})
}

// FromHTMLWithOptions converts an HTML fragment into a shortcode document.
// Characters that would be read as shortcode syntax inside the content block
// are replaced with HTML character references.
func FromHTMLWithOptions(html string, opts ImportOptions) (string, error) {
	tag := opts.Tag
	if tag == "" {
		tag = "text"
	}
	if !isTagStart(tag[0]) || classToken(tag) != strings.ToLower(tag) {
		return "", fmt.Errorf("invalid block tag %q", tag)
	}
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML: %w", err)
	}
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return "", nil
	}

	return "[#" + tag + "]{\n" + contentEscaper.Replace(markdown) + "\n}[/#" + tag + "]\n", nil
}

// contentEscaper neutralizes shortcode delimiters in imported content.
var contentEscaper = strings.NewReplacer(
	"[#", "&#91;#",
	"[/#", "&#91;/#",
	"{", "&#123;",
	"}", "&#125;",
)
