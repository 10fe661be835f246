// tokenizer.go implements tokenization for [#tag]{...}[/#tag] shortcode syntax.
package shortcode

import (
	"strings"
	"unicode/utf8"
)

const (
	openPrefix    = "[#"
	closePrefix   = "[/#"
	commentPrefix = "[#!--"
	commentSuffix = "--]"
)

// Tokenize scans input for shortcode syntax and returns the complete token
// stream, always terminated by a TokenEOF token.
// Recognized forms:
//   - [#tag name="value"] - open tag, optionally followed by a {content} block
//   - [#tag name="value" /] - self-closing tag
//   - [/#tag] - close tag
//   - [#!-- comment --] - comment
//
// Brackets that do not start one of these forms are plain text. Once a tag has
// been recognized, malformed attribute syntax or a missing ']' is an error.
func Tokenize(input string) ([]Token, error) {
	return tokenizeFrom(input, 1)
}

// tokenizeFrom tokenizes input whose first line is line of a larger document.
func tokenizeFrom(input string, line int) ([]Token, error) {
	t := &tokenizer{input: input, line: line, col: 1, textStart: -1}
	if err := t.run(); err != nil {
		return nil, err
	}
	return t.tokens, nil
}

// tokenizer holds the scan state for a single Tokenize call.
type tokenizer struct {
	input  string
	pos    int // byte offset
	line   int
	col    int
	tokens []Token

	// pending text run; textStart is -1 when no run is open
	textStart int
	textLine  int
	textCol   int

	// one entry per open content block, holding the depth of literal braces
	content []int
}

func (t *tokenizer) run() error {
	for t.pos < len(t.input) {
		switch {
		case strings.HasPrefix(t.input[t.pos:], commentPrefix):
			t.flushText()
			if err := t.scanComment(); err != nil {
				return err
			}

		case strings.HasPrefix(t.input[t.pos:], closePrefix) && t.closeTagLen() > 0:
			t.flushText()
			t.scanCloseTag()

		case strings.HasPrefix(t.input[t.pos:], openPrefix) && isTagStart(t.byteAt(t.pos+len(openPrefix))):
			t.flushText()
			if err := t.scanOpenTag(); err != nil {
				return err
			}

		case t.input[t.pos] == '{' && len(t.content) > 0:
			t.content[len(t.content)-1]++
			t.text()

		case t.input[t.pos] == '}' && len(t.content) > 0:
			top := len(t.content) - 1
			if t.content[top] > 0 {
				t.content[top]--
				t.text()
				continue
			}
			t.flushText()
			t.emit(TokenContentClose, "}", t.line, t.col)
			t.advance()
			t.content = t.content[:top]

		default:
			t.text()
		}
	}

	t.flushText()
	t.emit(TokenEOF, "", t.line, t.col)
	return nil
}

// text consumes one rune into the pending text run.
func (t *tokenizer) text() {
	if t.textStart < 0 {
		t.textStart = t.pos
		t.textLine = t.line
		t.textCol = t.col
	}
	t.advance()
}

// flushText emits the pending text run, if any, as a single TokenText.
func (t *tokenizer) flushText() {
	if t.textStart < 0 {
		return
	}
	if t.pos > t.textStart {
		t.emit(TokenText, t.input[t.textStart:t.pos], t.textLine, t.textCol)
	}
	t.textStart = -1
}

func (t *tokenizer) emit(typ TokenType, value string, line, col int) {
	t.tokens = append(t.tokens, Token{Type: typ, Value: value, Line: line, Column: col})
}

// advance moves past one rune, keeping line and column current.
func (t *tokenizer) advance() {
	if t.pos >= len(t.input) {
		return
	}
	r, size := utf8.DecodeRuneInString(t.input[t.pos:])
	t.pos += size
	if r == '\n' {
		t.line++
		t.col = 1
	} else {
		t.col++
	}
}

func (t *tokenizer) advanceN(n int) {
	end := t.pos + n
	for t.pos < end && t.pos < len(t.input) {
		t.advance()
	}
}

func (t *tokenizer) byteAt(i int) byte {
	if i < 0 || i >= len(t.input) {
		return 0
	}
	return t.input[i]
}

// scanComment consumes [#!-- ... --] into a TokenComment.
func (t *tokenizer) scanComment() error {
	line, col := t.line, t.col
	rest := t.input[t.pos+len(commentPrefix):]
	end := strings.Index(rest, commentSuffix)
	if end < 0 {
		return tokenizerError(line, col, "unterminated comment: missing %q", commentSuffix)
	}
	t.emit(TokenComment, strings.TrimSpace(rest[:end]), line, col)
	t.advanceN(len(commentPrefix) + end + len(commentSuffix))
	return nil
}

// closeTagLen returns the byte length of a well-formed [/#tag] at the current
// position, or 0 when the bracket is not a close tag.
func (t *tokenizer) closeTagLen() int {
	i := t.pos + len(closePrefix)
	if !isTagStart(t.byteAt(i)) {
		return 0
	}
	i++
	for i < len(t.input) && isTagChar(t.input[i]) {
		i++
	}
	if t.byteAt(i) != ']' {
		return 0
	}
	return i + 1 - t.pos
}

func (t *tokenizer) scanCloseTag() {
	n := t.closeTagLen()
	name := t.input[t.pos+len(closePrefix) : t.pos+n-1]
	t.emit(TokenShortcodeClose, name, t.line, t.col)
	t.advanceN(n)
}

// scanOpenTag consumes [#tag attr="value" ...] or its self-closing form, then
// a directly following '{' if present.
func (t *tokenizer) scanOpenTag() error {
	line, col := t.line, t.col
	t.advanceN(len(openPrefix))

	nameStart := t.pos
	for t.pos < len(t.input) && isTagChar(t.input[t.pos]) {
		t.advance()
	}
	name := t.input[nameStart:t.pos]
	t.emit(TokenShortcodeOpen, name, line, col)

	for {
		sawSpace := false
		for t.pos < len(t.input) && isSpace(t.input[t.pos]) {
			sawSpace = true
			t.advance()
		}
		if t.pos >= len(t.input) {
			return tokenizerError(line, col, "unterminated shortcode tag [#%s: missing ']'", name)
		}

		switch c := t.input[t.pos]; {
		case c == ']':
			t.advance()
			if t.byteAt(t.pos) == '{' {
				t.emit(TokenContentOpen, "{", t.line, t.col)
				t.advance()
				t.content = append(t.content, 0)
			}
			return nil

		case c == '/':
			if t.byteAt(t.pos+1) != ']' {
				return tokenizerError(t.line, t.col, "expected ']' after '/' in shortcode tag [#%s", name)
			}
			t.emit(TokenShortcodeClose, "", t.line, t.col)
			t.advanceN(2)
			return nil

		case !sawSpace:
			return tokenizerError(t.line, t.col, "unexpected character %q in shortcode tag [#%s", string(c), name)

		default:
			if err := t.scanAttribute(name); err != nil {
				return err
			}
		}
	}
}

// scanAttribute consumes name="value" or name='value'.
func (t *tokenizer) scanAttribute(tag string) error {
	if !isAttrStart(t.input[t.pos]) {
		return tokenizerError(t.line, t.col, "invalid attribute name in shortcode tag [#%s", tag)
	}
	line, col := t.line, t.col
	start := t.pos
	for t.pos < len(t.input) && isAttrChar(t.input[t.pos]) {
		t.advance()
	}
	attr := t.input[start:t.pos]
	t.emit(TokenAttributeName, attr, line, col)

	if t.byteAt(t.pos) != '=' {
		return tokenizerError(t.line, t.col, "expected '=' after attribute %q", attr)
	}
	t.advance()

	quote := t.byteAt(t.pos)
	if quote != '"' && quote != '\'' {
		return tokenizerError(t.line, t.col, "value of attribute %q must be quoted", attr)
	}
	qLine, qCol := t.line, t.col
	t.advance()

	var value strings.Builder
	for {
		if t.pos >= len(t.input) || t.input[t.pos] == '\n' {
			return tokenizerError(qLine, qCol, "unterminated value for attribute %q", attr)
		}
		c := t.input[t.pos]
		if c == quote {
			t.advance()
			break
		}
		if c == '\\' && t.byteAt(t.pos+1) == quote {
			value.WriteByte(quote)
			t.advanceN(2)
			continue
		}
		before := t.pos
		t.advance()
		value.WriteString(t.input[before:t.pos])
	}
	t.emit(TokenAttributeValue, value.String(), qLine, qCol)
	return nil
}

// isTagStart returns true if c may begin a tag name.
func isTagStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isTagChar returns true if c is valid inside a tag name.
func isTagChar(c byte) bool {
	return isTagStart(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isAttrStart(c byte) bool {
	return isTagStart(c) || c == '_'
}

func isAttrChar(c byte) bool {
	return isTagChar(c)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
