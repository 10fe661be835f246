package shortcode

import (
	"html"
	"strings"

	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// escapeHTML escapes s for use in element content or a quoted attribute.
func escapeHTML(s string) string {
	return html.EscapeString(s)
}

// isDangerousURL reports whether u uses a script-capable scheme.
func isDangerousURL(u string) bool {
	// browsers ignore tabs and newlines inside a scheme
	scheme := strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, strings.ToLower(u))
	return gmhtml.IsDangerousURL([]byte(scheme))
}

// classToken reduces s to characters safe inside a class name.
func classToken(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isTagChar(c) {
			sb.WriteByte(c)
		}
	}
	return strings.ToLower(sb.String())
}
