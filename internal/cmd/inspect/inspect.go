// Package inspect provides the debugging commands that show the stages of
// the pipeline: front matter, token stream and syntax tree.
package inspect

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blockmark/internal/cmd/cmdutil"
	"github.com/open-cli-collective/blockmark/internal/view"
	"github.com/open-cli-collective/blockmark/pkg/shortcode"
)

type inspectOptions struct {
	*cmdutil.Options
	input string
}

func inputArg(opts *inspectOptions, cmd *cobra.Command, args []string) {
	opts.Options = cmdutil.FromCommand(cmd)
	if len(args) > 0 {
		opts.input = args[0]
	}
}

// NewCmdFrontMatter creates the frontmatter command.
func NewCmdFrontMatter() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "frontmatter [file|-]",
		Short: "Show the YAML front matter of a document",
		Example: `  # Show metadata as a table
  bmk frontmatter page.md

  # Show metadata as JSON
  bmk frontmatter page.md -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputArg(opts, cmd, args)
			return runFrontMatter(opts)
		},
	}

	return cmd
}

func runFrontMatter(opts *inspectOptions) error {
	_, svc, renderer, err := opts.Setup()
	if err != nil {
		return err
	}
	content, name, err := opts.ReadInput(opts.input)
	if err != nil {
		return err
	}

	fm, err := svc.ExtractFrontMatter(content)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(fm.Metadata)
	}
	if len(fm.Metadata) == 0 {
		if renderer.Format() == view.FormatTable {
			renderer.RenderText("No front matter found.")
		}
		return nil
	}

	keys := make([]string, 0, len(fm.Metadata))
	for k := range fm.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var rows [][]string
	for _, k := range keys {
		rows = append(rows, []string{k, formatValue(fm.Metadata[k])})
	}
	renderer.RenderTable([]string{"KEY", "VALUE"}, rows)
	return nil
}

// formatValue prints scalars as-is and everything else as compact JSON.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return "null"
	case bool, int, int64, float64:
		return fmt.Sprint(val)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// NewCmdTokens creates the tokens command.
func NewCmdTokens() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "tokens [file|-]",
		Short: "Show the token stream of a document",
		Long: `Tokenize a document and print one token per line with its position.
Front matter is not stripped.`,
		Example: `  echo '[#button text="Go" /]' | bmk tokens`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputArg(opts, cmd, args)
			return runTokens(opts)
		},
	}

	return cmd
}

func runTokens(opts *inspectOptions) error {
	_, _, renderer, err := opts.Setup()
	if err != nil {
		return err
	}
	content, name, err := opts.ReadInput(opts.input)
	if err != nil {
		return err
	}

	tokens, err := shortcode.Tokenize(content)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(tokensJSON(tokens))
	}

	rows := make([][]string, 0, len(tokens))
	for _, tok := range tokens {
		value := fmt.Sprintf("%q", tok.Value)
		if renderer.Format() == view.FormatTable {
			value = view.Truncate(value, 60)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d:%d", tok.Line, tok.Column),
			tok.Type.String(),
			value,
		})
	}
	renderer.RenderTable([]string{"POSITION", "TYPE", "VALUE"}, rows)
	return nil
}

type tokenJSON struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func tokensJSON(tokens []shortcode.Token) []tokenJSON {
	out := make([]tokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tokenJSON{Type: tok.Type.String(), Value: tok.Value, Line: tok.Line, Column: tok.Column})
	}
	return out
}

// NewCmdAST creates the ast command.
func NewCmdAST() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "ast [file|-]",
		Short: "Show the syntax tree of a document",
		Long: `Parse a document and print its syntax tree. Leading YAML front matter is
stripped first.`,
		Example: `  # Indented tree
  bmk ast page.md

  # Tree as JSON
  bmk ast page.md -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputArg(opts, cmd, args)
			return runAST(opts)
		},
	}

	return cmd
}

func runAST(opts *inspectOptions) error {
	_, svc, renderer, err := opts.Setup()
	if err != nil {
		return err
	}
	content, name, err := opts.ReadInput(opts.input)
	if err != nil {
		return err
	}

	fm, err := svc.ExtractFrontMatter(content)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	doc, err := svc.Parse(fm.Content)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(nodeJSON(doc))
	}
	return shortcode.Dump(renderer.Writer(), doc)
}

type astNode struct {
	Kind        string          `json:"kind"`
	Tag         string          `json:"tag,omitempty"`
	Attributes  []attributeJSON `json:"attributes,omitempty"`
	SelfClosing bool            `json:"selfClosing,omitempty"`
	Content     string          `json:"content,omitempty"`
	Children    []*astNode      `json:"children,omitempty"`
}

type attributeJSON struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func nodeJSON(n shortcode.Node) *astNode {
	out := &astNode{Kind: n.Kind().String()}
	switch v := n.(type) {
	case *shortcode.ShortcodeNode:
		out.Tag = v.Tag
		out.SelfClosing = v.SelfClosing
		for _, a := range v.Attributes.List() {
			out.Attributes = append(out.Attributes, attributeJSON{Name: a.Name, Value: a.Value})
		}
	case *shortcode.TextNode:
		out.Content = v.Content
	case *shortcode.MarkdownNode:
		out.Content = v.Content
	}
	for _, child := range n.Children() {
		out.Children = append(out.Children, nodeJSON(child))
	}
	return out
}
