// token.go defines the token stream produced by Tokenize.
package shortcode

import "fmt"

// TokenType identifies the kind of a Token.
type TokenType int

const (
	TokenShortcodeOpen  TokenType = iota // [#tag ...] or [#tag .../]; value is the tag name
	TokenShortcodeClose                  // [/#tag]; value is the tag name, empty for the /] of a self-closing tag
	TokenAttributeName                   // name in name="value"
	TokenAttributeValue                  // unescaped value in name="value"
	TokenContentOpen                     // { directly after an open tag
	TokenContentClose                    // } matching a content open
	TokenText                            // plain running text
	TokenComment                         // [#!-- ... --]; value is the trimmed inner text
	TokenEOF                             // end of input, always last
)

var tokenTypeNames = map[TokenType]string{
	TokenShortcodeOpen:  "SHORTCODE_OPEN",
	TokenShortcodeClose: "SHORTCODE_CLOSE",
	TokenAttributeName:  "ATTRIBUTE_NAME",
	TokenAttributeValue: "ATTRIBUTE_VALUE",
	TokenContentOpen:    "CONTENT_OPEN",
	TokenContentClose:   "CONTENT_CLOSE",
	TokenText:           "TEXT",
	TokenComment:        "COMMENT",
	TokenEOF:            "EOF",
}

// String returns the upper-case name of the token type.
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a single lexical unit. Line and Column are 1-based and refer to the
// token's first character.
type Token struct {
	Type   TokenType
	Value  string
	Line   int
	Column int
}

// String renders the token for debugging output.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Value, t.Line, t.Column)
}
