package shortcode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestTokenize_EmptyInput(t *testing.T) {
	tokens, err := Tokenize("")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, Token{Type: TokenEOF, Line: 1, Column: 1}, tokens[0])
}

func TestTokenize_PlainText(t *testing.T) {
	tokens, err := Tokenize("Hello world")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenText, tokens[0].Type)
	assert.Equal(t, "Hello world", tokens[0].Value)
	assert.Equal(t, TokenEOF, tokens[1].Type)
}

func TestTokenize_OpenWithAttributes(t *testing.T) {
	tokens, err := Tokenize(`[#hero title="Welcome" size="large"][/#hero]`)
	require.NoError(t, err)

	assert.Equal(t, []Token{
		{Type: TokenShortcodeOpen, Value: "hero", Line: 1, Column: 1},
		{Type: TokenAttributeName, Value: "title", Line: 1, Column: 8},
		{Type: TokenAttributeValue, Value: "Welcome", Line: 1, Column: 14},
		{Type: TokenAttributeName, Value: "size", Line: 1, Column: 24},
		{Type: TokenAttributeValue, Value: "large", Line: 1, Column: 29},
		{Type: TokenShortcodeClose, Value: "hero", Line: 1, Column: 37},
		{Type: TokenEOF, Line: 1, Column: 45},
	}, tokens)
}

func TestTokenize_QuotedValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"double quotes", `[#a title="Hello World"/]`, "Hello World"},
		{"single quotes", `[#a title='Hello World'/]`, "Hello World"},
		{"escaped double quote", `[#a title="He said \"Hello\""/]`, `He said "Hello"`},
		{"escaped single quote", `[#a title='it\'s'/]`, "it's"},
		{"other quote is literal", `[#a title="it's"/]`, "it's"},
		{"backslash kept", `[#a title="C:\path"/]`, `C:\path`},
		{"escaped other quote kept", `[#a title="a\'b"/]`, `a\'b`},
		{"empty value", `[#a title=""/]`, ""},
		{"brackets inside", `[#a title="[#b] {x}"/]`, "[#b] {x}"},
		{"unicode", `[#a title="héllo ✓"/]`, "héllo ✓"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)
			require.Len(t, tokens, 5)
			assert.Equal(t, TokenAttributeValue, tokens[2].Type)
			assert.Equal(t, tt.want, tokens[2].Value)
		})
	}
}

func TestTokenize_SelfClosing(t *testing.T) {
	tokens, err := Tokenize(`[#image src="photo.jpg" /]`)
	require.NoError(t, err)
	assert.Equal(t, []TokenType{
		TokenShortcodeOpen, TokenAttributeName, TokenAttributeValue, TokenShortcodeClose, TokenEOF,
	}, tokenTypes(tokens))
	assert.Equal(t, "", tokens[3].Value)
	assert.Equal(t, 25, tokens[3].Column)
}

func TestTokenize_ContentBlock(t *testing.T) {
	tokens, err := Tokenize("[#text]{Hello **world**}[/#text]")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{
		TokenShortcodeOpen, TokenContentOpen, TokenText, TokenContentClose, TokenShortcodeClose, TokenEOF,
	}, tokenTypes(tokens))
	assert.Equal(t, "Hello **world**", tokens[2].Value)
	assert.Equal(t, 8, tokens[1].Column)
	assert.Equal(t, 24, tokens[3].Column)
}

func TestTokenize_NestedContent(t *testing.T) {
	tokens, err := Tokenize("[#outer]{intro [#inner]{x}[/#inner]}[/#outer]")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{
		TokenShortcodeOpen,
		TokenContentOpen,
		TokenText,
		TokenShortcodeOpen,
		TokenContentOpen,
		TokenText,
		TokenContentClose,
		TokenShortcodeClose,
		TokenContentClose,
		TokenShortcodeClose,
		TokenEOF,
	}, tokenTypes(tokens))
	assert.Equal(t, "intro ", tokens[2].Value)
	assert.Equal(t, "inner", tokens[3].Value)
}

func TestTokenize_LiteralBracesInContent(t *testing.T) {
	tokens, err := Tokenize("[#text]{a {b} c}[/#text]")
	require.NoError(t, err)
	require.Len(t, tokens, 6)
	assert.Equal(t, "a {b} c", tokens[2].Value)
	assert.Equal(t, TokenContentClose, tokens[3].Type)
}

func TestTokenize_BraceNotAfterTag(t *testing.T) {
	tokens, err := Tokenize("[#a] {x} }[/#a]")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{TokenShortcodeOpen, TokenText, TokenShortcodeClose, TokenEOF}, tokenTypes(tokens))
	assert.Equal(t, " {x} }", tokens[1].Value)
}

func TestTokenize_Comment(t *testing.T) {
	tokens, err := Tokenize("before [#!--  a note  --] after")
	require.NoError(t, err)
	assert.Equal(t, []Token{
		{Type: TokenText, Value: "before ", Line: 1, Column: 1},
		{Type: TokenComment, Value: "a note", Line: 1, Column: 8},
		{Type: TokenText, Value: " after", Line: 1, Column: 26},
		{Type: TokenEOF, Line: 1, Column: 32},
	}, tokens)
}

func TestTokenize_LineAndColumn(t *testing.T) {
	tokens, err := Tokenize("line one\n\n  [#a]\n[/#a]")
	require.NoError(t, err)
	require.Len(t, tokens, 5)

	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 1, tokens[0].Column)

	assert.Equal(t, TokenShortcodeOpen, tokens[1].Type)
	assert.Equal(t, 3, tokens[1].Line)
	assert.Equal(t, 3, tokens[1].Column)

	assert.Equal(t, TokenText, tokens[2].Type)
	assert.Equal(t, "\n", tokens[2].Value)

	assert.Equal(t, TokenShortcodeClose, tokens[3].Type)
	assert.Equal(t, 4, tokens[3].Line)
	assert.Equal(t, 1, tokens[3].Column)
}

func TestTokenize_ColumnsCountRunes(t *testing.T) {
	tokens, err := Tokenize("héé [#a /]")
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, 5, tokens[1].Column)
}

func TestTokenize_AttributesAcrossLines(t *testing.T) {
	tokens, err := Tokenize("[#hero\n  title=\"x\"\n  size='y'\n][/#hero]")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{
		TokenShortcodeOpen, TokenAttributeName, TokenAttributeValue,
		TokenAttributeName, TokenAttributeValue, TokenShortcodeClose, TokenEOF,
	}, tokenTypes(tokens))
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 3, tokens[1].Column)
}

func TestTokenize_NonShortcodeBracketsAreText(t *testing.T) {
	tests := []string{
		"[link](https://example.com)",
		"[# heading]",
		"[#1abc]",
		"[/#]",
		"[/# a]",
		"[/#abc",
		"array[#]",
		"}",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			tokens, err := Tokenize(input)
			require.NoError(t, err)
			require.Len(t, tokens, 2)
			assert.Equal(t, TokenText, tokens[0].Type)
			assert.Equal(t, input, tokens[0].Value)
		})
	}
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		line    int
		column  int
		message string
	}{
		{"unterminated tag", "[#test", 1, 1, "unterminated shortcode tag"},
		{"unterminated tag with attrs", `[#test a="b"`, 1, 1, "unterminated shortcode tag"},
		{"unterminated value", `[#a title="x`, 1, 11, "unterminated value"},
		{"newline in value", "[#a title=\"x\ny\"]", 1, 11, "unterminated value"},
		{"unquoted value", `[#a title=x]`, 1, 11, "must be quoted"},
		{"missing equals", `[#a title]`, 1, 10, "expected '='"},
		{"bad attribute name", `[#a 1x="y"]`, 1, 5, "invalid attribute name"},
		{"no space before attribute", `[#a"x"]`, 1, 4, "unexpected character"},
		{"slash without bracket", `[#a /x]`, 1, 5, "expected ']' after '/'"},
		{"unterminated comment", "text [#!-- never closed", 1, 6, "unterminated comment"},
		{"error on later line", "ok\n\n[#a b=\"c", 3, 7, "unterminated value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.Error(t, err)
			assert.Nil(t, tokens)
			assert.True(t, errors.Is(err, ErrTokenizer))
			assert.False(t, errors.Is(err, ErrParser))

			var syn *SyntaxError
			require.True(t, errors.As(err, &syn))
			assert.Equal(t, KindTokenizer, syn.Kind)
			assert.Equal(t, tt.line, syn.Line)
			assert.Equal(t, tt.column, syn.Column)
			assert.Contains(t, syn.Message, tt.message)
		})
	}
}

func TestTokenize_NoAdjacentTextTokens(t *testing.T) {
	tokens, err := Tokenize("a { b } c [x] d [#! e")
	require.NoError(t, err)
	for i := 1; i < len(tokens); i++ {
		assert.False(t, tokens[i-1].Type == TokenText && tokens[i].Type == TokenText, "adjacent text tokens at %d", i)
	}
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "SHORTCODE_OPEN", TokenShortcodeOpen.String())
	assert.Equal(t, "EOF", TokenEOF.String())
	assert.Equal(t, "TokenType(42)", TokenType(42).String())
}
