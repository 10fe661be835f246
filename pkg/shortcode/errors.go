package shortcode

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a SyntaxError by the pipeline stage that raised it.
type ErrorKind string

const (
	KindTokenizer ErrorKind = "TokenizerError"
	KindParser    ErrorKind = "ParserError"
)

// Sentinel errors matched by errors.Is against a *SyntaxError of the same kind.
var (
	ErrTokenizer = errors.New("tokenizer error")
	ErrParser    = errors.New("parser error")
)

// SyntaxError is the single fail-fast error returned by Tokenize and Parse.
type SyntaxError struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.Line, e.Column, e.Message)
}

// Is reports whether target is the sentinel for the error's kind.
func (e *SyntaxError) Is(target error) bool {
	switch e.Kind {
	case KindTokenizer:
		return target == ErrTokenizer
	case KindParser:
		return target == ErrParser
	}
	return false
}

func tokenizerError(line, col int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Kind: KindTokenizer, Message: fmt.Sprintf(format, args...), Line: line, Column: col}
}

func parserError(tok Token, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Kind: KindParser, Message: fmt.Sprintf(format, args...), Line: tok.Line, Column: tok.Column}
}

// FrontMatterError reports a malformed YAML front matter block. It is kept
// separate from SyntaxError so callers can tell metadata problems apart from
// shortcode problems.
type FrontMatterError struct {
	Line   int // document line; 1 when the YAML error carries no position
	Column int
	Err    error
}

func (e *FrontMatterError) Error() string {
	return fmt.Sprintf("invalid front matter at line %d: %v", e.Line, e.Err)
}

func (e *FrontMatterError) Unwrap() error {
	return e.Err
}

// Diagnostic is the flattened form of a pipeline error, suitable for JSON
// output and for surfacing to editors.
type Diagnostic struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// DiagnosticFromError converts err into a Diagnostic. Errors that carry no
// position are reported at line 0, column 0.
func DiagnosticFromError(err error) Diagnostic {
	var syn *SyntaxError
	if errors.As(err, &syn) {
		return Diagnostic{Type: string(syn.Kind), Message: syn.Message, Line: syn.Line, Column: syn.Column}
	}
	var fm *FrontMatterError
	if errors.As(err, &fm) {
		col := fm.Column
		if col < 1 {
			col = 1
		}
		return Diagnostic{Type: "FrontMatterError", Message: fm.Err.Error(), Line: fm.Line, Column: col}
	}
	return Diagnostic{Type: "Error", Message: err.Error()}
}
