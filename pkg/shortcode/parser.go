// parser.go builds a DocumentNode tree from a token stream.
package shortcode

import "strings"

// DefaultMaxDepth is the nesting limit used when no WithMaxDepth option is given.
const DefaultMaxDepth = 50

// Parser turns tokens into an AST. A Parser holds only configuration and may
// be shared between goroutines.
type Parser struct {
	maxDepth int
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithMaxDepth limits how deeply shortcodes may nest. Values below 1 select
// DefaultMaxDepth.
func WithMaxDepth(depth int) ParserOption {
	return func(p *Parser) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}
		p.maxDepth = depth
	}
}

// NewParser creates a Parser with the given options.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses tokens with the default options.
func Parse(tokens []Token) (*DocumentNode, error) {
	return NewParser().Parse(tokens)
}

// frame tracks a shortcode whose closing tag has not been seen yet.
type frame struct {
	node       *ShortcodeNode
	open       Token
	inContent  bool
	hadContent bool
}

// Parse builds the document tree. The first structural problem found is
// returned as a *SyntaxError of kind KindParser; no partial tree is returned.
func (p *Parser) Parse(tokens []Token) (*DocumentNode, error) {
	doc := &DocumentNode{}
	var stack []*frame

	appendChild := func(n Node) {
		if len(stack) > 0 {
			top := stack[len(stack)-1]
			top.node.Nodes = append(top.node.Nodes, n)
			return
		}
		doc.Nodes = append(doc.Nodes, n)
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch tok.Type {
		case TokenText:
			if len(stack) == 0 {
				if tok.Value != "" {
					appendChild(&TextNode{Content: tok.Value})
				}
				continue
			}
			top := stack[len(stack)-1]
			// a comment must not split the Markdown around it
			if top.inContent && i > 0 && tokens[i-1].Type == TokenComment {
				if n := len(top.node.Nodes); n > 0 {
					if md, ok := top.node.Nodes[n-1].(*MarkdownNode); ok {
						md.Content += tok.Value
						continue
					}
				}
			}
			if strings.TrimSpace(tok.Value) == "" {
				continue
			}
			if top.inContent {
				appendChild(&MarkdownNode{Content: tok.Value})
			} else {
				appendChild(&TextNode{Content: tok.Value})
			}

		case TokenComment:
			// comments never reach the tree

		case TokenShortcodeOpen:
			if len(stack)+1 > p.maxDepth {
				return nil, parserError(tok, "shortcode [#%s] exceeds the maximum nesting depth of %d", tok.Value, p.maxDepth)
			}
			node := &ShortcodeNode{Tag: tok.Value}

			j := i + 1
			for j < len(tokens) && tokens[j].Type == TokenAttributeName {
				if j+1 >= len(tokens) || tokens[j+1].Type != TokenAttributeValue {
					return nil, parserError(tokens[j], "attribute %q has no value", tokens[j].Value)
				}
				node.Attributes.Set(tokens[j].Value, tokens[j+1].Value)
				j += 2
			}

			if j < len(tokens) && tokens[j].Type == TokenShortcodeClose && tokens[j].Value == "" {
				node.SelfClosing = true
				appendChild(node)
				i = j
				continue
			}

			stack = append(stack, &frame{node: node, open: tok})
			i = j - 1

		case TokenAttributeName:
			return nil, parserError(tok, "attribute %q outside of a shortcode tag", tok.Value)

		case TokenAttributeValue:
			return nil, parserError(tok, "attribute value %q without a preceding attribute name", tok.Value)

		case TokenContentOpen:
			if len(stack) == 0 {
				return nil, parserError(tok, "content block outside of a shortcode")
			}
			top := stack[len(stack)-1]
			if top.inContent || top.hadContent {
				return nil, parserError(tok, "shortcode [#%s] already has a content block", top.node.Tag)
			}
			top.inContent = true

		case TokenContentClose:
			if len(stack) == 0 {
				return nil, parserError(tok, "unexpected '}' outside of a content block")
			}
			top := stack[len(stack)-1]
			if !top.inContent {
				return nil, parserError(tok, "unexpected '}': shortcode [#%s] is still open", top.node.Tag)
			}
			top.inContent = false
			top.hadContent = true

		case TokenShortcodeClose:
			if tok.Value == "" {
				return nil, parserError(tok, "unexpected '/]' outside of a shortcode tag")
			}
			if len(stack) == 0 {
				return nil, parserError(tok, "closing tag [/#%s] has no matching opening tag", tok.Value)
			}
			top := stack[len(stack)-1]
			if top.node.Tag != tok.Value {
				return nil, parserError(tok, "mismatched closing tag [/#%s]: expected [/#%s] (opened at line %d, column %d)",
					tok.Value, top.node.Tag, top.open.Line, top.open.Column)
			}
			if top.inContent {
				return nil, parserError(tok, "closing tag [/#%s] inside its own content block: missing '}'", tok.Value)
			}
			stack = stack[:len(stack)-1]
			appendChild(top.node)

		case TokenEOF:
			i = len(tokens)
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.inContent {
			return nil, parserError(top.open, "unclosed content block of shortcode [#%s]", top.node.Tag)
		}
		return nil, parserError(top.open, "unclosed shortcode [#%s]: missing [/#%s]", top.node.Tag, top.node.Tag)
	}

	return doc, nil
}
