// Package blocks provides the blocks command.
package blocks

import (
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/open-cli-collective/blockmark/internal/cmd/cmdutil"
	"github.com/open-cli-collective/blockmark/internal/view"
	"github.com/open-cli-collective/blockmark/pkg/shortcode"
)

type blocksOptions struct {
	*cmdutil.Options
	containers bool
}

// NewCmdBlocks creates the blocks command.
func NewCmdBlocks() *cobra.Command {
	opts := &blocksOptions{}

	cmd := &cobra.Command{
		Use:     "blocks [tag...]",
		Aliases: []string{"tags"},
		Short:   "List the available page blocks",
		Long: `List the block tags bmk can render, with their attributes.

Tags are case-sensitive. Tags not in this list still parse, but render as an
HTML comment.`,
		Example: `  # List all blocks
  bmk blocks

  # Show only the pricing blocks
  bmk blocks pricing pricing-tier

  # List container blocks as JSON
  bmk blocks --containers -o json`,
		ValidArgsFunction: completeTags,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Options = cmdutil.FromCommand(cmd)
			return runBlocks(opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.containers, "containers", false, "Only list blocks that hold other blocks")

	return cmd
}

type blockJSON struct {
	Tag         string   `json:"tag"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Attributes  []string `json:"attributes"`
	Container   bool     `json:"container"`
}

func runBlocks(opts *blocksOptions, tags []string) error {
	_, svc, renderer, err := opts.Setup()
	if err != nil {
		return err
	}

	defs := filter(svc.Renderer().Registry().List(), tags, opts.containers)

	if renderer.Format() == view.FormatJSON {
		out := make([]blockJSON, 0, len(defs))
		for _, def := range defs {
			attrs := def.Attributes
			if attrs == nil {
				attrs = []string{}
			}
			out = append(out, blockJSON{
				Tag:         def.Tag,
				Name:        DisplayName(def.Tag),
				Description: def.Description,
				Attributes:  attrs,
				Container:   def.Container,
			})
		}
		return renderer.RenderJSON(out)
	}

	if len(defs) == 0 {
		renderer.RenderText("No blocks found.")
		return nil
	}

	headers := []string{"TAG", "NAME", "ATTRIBUTES", "DESCRIPTION"}
	var rows [][]string
	for _, def := range defs {
		rows = append(rows, []string{
			def.Tag,
			DisplayName(def.Tag),
			strings.Join(def.Attributes, ", "),
			def.Description,
		})
	}
	renderer.RenderTable(headers, rows)
	return nil
}

// completeTags offers the built-in block tags with their descriptions.
func completeTags(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	seen := make(map[string]bool, len(args))
	for _, arg := range args {
		seen[arg] = true
	}
	var out []string
	for _, def := range shortcode.DefaultRegistry().List() {
		if !seen[def.Tag] && strings.HasPrefix(def.Tag, toComplete) {
			out = append(out, def.Tag+"\t"+def.Description)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func filter(defs []shortcode.BlockDefinition, tags []string, containers bool) []shortcode.BlockDefinition {
	want := make(map[string]bool, len(tags))
	for _, tag := range tags {
		want[tag] = true
	}
	var out []shortcode.BlockDefinition
	for _, def := range defs {
		if len(want) > 0 && !want[def.Tag] {
			continue
		}
		if containers && !def.Container {
			continue
		}
		out = append(out, def)
	}
	return out
}

// DisplayName turns a tag such as "pricing-tier" into "Pricing Tier".
func DisplayName(tag string) string {
	words := strings.FieldsFunc(tag, func(r rune) bool { return r == '-' || r == '_' })
	return cases.Title(language.English).String(strings.Join(words, " "))
}
