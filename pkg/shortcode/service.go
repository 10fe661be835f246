// Package shortcode implements the [#tag]{...}[/#tag] page markup: a
// tokenizer, a stack-based parser producing an AST, and an HTML renderer with
// a registry of page blocks.
package shortcode

import "fmt"

// Service is the entry point used by callers that only deal in strings.
// It is safe for concurrent use.
type Service struct {
	parser   *Parser
	renderer *Renderer
}

// NewService creates a Service. Nil arguments select the defaults.
func NewService(parser *Parser, renderer *Renderer) *Service {
	if parser == nil {
		parser = NewParser()
	}
	if renderer == nil {
		renderer = NewRenderer()
	}
	return &Service{parser: parser, renderer: renderer}
}

// Renderer returns the service's renderer.
func (s *Service) Renderer() *Renderer {
	return s.renderer
}

// Parse tokenizes and parses markdown.
func (s *Service) Parse(markdown string) (*DocumentNode, error) {
	return s.parseFrom(markdown, 1)
}

func (s *Service) parseFrom(markdown string, line int) (*DocumentNode, error) {
	tokens, err := tokenizeFrom(markdown, line)
	if err != nil {
		return nil, err
	}
	return s.parser.Parse(tokens)
}

// ParseAndRender runs the full pipeline. Tokenizer and parser errors are
// wrapped; errors.As still reaches the underlying *SyntaxError.
func (s *Service) ParseAndRender(markdown string) (string, error) {
	doc, err := s.Parse(markdown)
	if err != nil {
		return "", fmt.Errorf("shortcode rendering failed: %w", err)
	}
	return s.renderer.Render(doc), nil
}

// Validate reports whether markdown tokenizes and parses cleanly. Unknown
// tags are not checked; they only matter at render time.
func (s *Service) Validate(markdown string) bool {
	_, err := s.Parse(markdown)
	return err == nil
}

// Diagnose returns the first syntax problem in markdown, or nil.
func (s *Service) Diagnose(markdown string) []Diagnostic {
	if _, err := s.Parse(markdown); err != nil {
		return []Diagnostic{DiagnosticFromError(err)}
	}
	return nil
}

// ExtractFrontMatter splits YAML front matter from document.
func (s *Service) ExtractFrontMatter(document string) (FrontMatter, error) {
	return ExtractFrontMatter(document)
}

// Page is a rendered document together with its front matter.
type Page struct {
	Metadata map[string]interface{} `json:"metadata"`
	HTML     string                 `json:"html"`
}

// RenderDocument extracts front matter and renders the remaining content.
// Error positions refer to lines of the full document.
func (s *Service) RenderDocument(document string) (*Page, error) {
	fm, err := ExtractFrontMatter(document)
	if err != nil {
		return nil, err
	}
	doc, err := s.parseFrom(fm.Content, fm.LineOffset+1)
	if err != nil {
		return nil, fmt.Errorf("shortcode rendering failed: %w", err)
	}
	return &Page{Metadata: fm.Metadata, HTML: s.renderer.Render(doc)}, nil
}

// ValidateDocument is Diagnose for a document that may carry front matter.
// Positions refer to lines of the full document.
func (s *Service) ValidateDocument(document string) []Diagnostic {
	fm, err := ExtractFrontMatter(document)
	if err != nil {
		return []Diagnostic{DiagnosticFromError(err)}
	}
	if _, err := s.parseFrom(fm.Content, fm.LineOffset+1); err != nil {
		return []Diagnostic{DiagnosticFromError(err)}
	}
	return nil
}
