//go:build property
// +build property

package shortcode

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestTokenizerProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("tokenize either fails or ends with EOF", prop.ForAll(
		func(input string) bool {
			tokens, err := Tokenize(input)
			if err != nil {
				_, ok := err.(*SyntaxError)
				return ok && tokens == nil
			}
			return len(tokens) > 0 && tokens[len(tokens)-1].Type == TokenEOF
		},
		gen.AnyString(),
	))

	properties.Property("positions are monotonic", prop.ForAll(
		func(input string) bool {
			tokens, err := Tokenize(input)
			if err != nil {
				return true
			}
			for i := 1; i < len(tokens); i++ {
				prev, cur := tokens[i-1], tokens[i]
				if cur.Line < prev.Line || (cur.Line == prev.Line && cur.Column < prev.Column) {
					return false
				}
			}
			return true
		},
		gen.RegexMatch(`^([a-z \n{}]|\[#[a-z]+( k="[a-z]*")?\]\{?|\}?\[/#[a-z]+\])*$`),
	))

	properties.Property("quoted values survive escaping", prop.ForAll(
		func(value string) bool {
			if strings.ContainsAny(value, "\\\r\n") {
				return true
			}
			input := `[#t a="` + strings.ReplaceAll(value, `"`, `\"`) + `" /]`
			doc, err := Parse(mustTokenize(input))
			if err != nil {
				return false
			}
			return doc.Nodes[0].(*ShortcodeNode).Attr("a") == value
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestRenderProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	svc := NewService(nil, nil)

	properties.Property("well-formed nesting always parses", prop.ForAll(
		func(tags []string) bool {
			var sb strings.Builder
			for _, tag := range tags {
				sb.WriteString("[#" + tag + "]{")
			}
			for i := len(tags) - 1; i >= 0; i-- {
				sb.WriteString("}[/#" + tags[i] + "]")
			}
			return svc.Validate(sb.String())
		},
		gen.SliceOfN(10, gen.Identifier()),
	))

	properties.Property("attribute text never produces markup", prop.ForAll(
		func(value string) bool {
			if strings.ContainsAny(value, "\\\r\n") {
				return true
			}
			input := `[#hero title="` + strings.ReplaceAll(value, `"`, `\"`) + `"][/#hero]`
			out, err := svc.ParseAndRender(input)
			if err != nil {
				return false
			}
			return !strings.Contains(out, "<script") && !strings.Contains(out, "<img")
		},
		gen.OneGenOf(
			gen.AnyString(),
			gen.Const(`<script>alert(1)</script>`),
			gen.Const(`"><img src=x onerror=alert(1)>`),
		),
	))

	properties.TestingRun(t)
}

func mustTokenize(input string) []Token {
	tokens, err := Tokenize(input)
	if err != nil {
		panic(err)
	}
	return tokens
}
