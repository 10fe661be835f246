package shortcode

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// SkipChildren can be returned by a WalkFunc to skip the children of the
// current node.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node in depth-first order.
type WalkFunc func(node Node, depth int) error

// Walk visits node and its descendants. Returning SkipChildren from fn skips
// the current node's children; any other error stops the walk.
func Walk(node Node, fn WalkFunc) error {
	return walk(node, 0, fn)
}

func walk(node Node, depth int, fn WalkFunc) error {
	if err := fn(node, depth); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for _, child := range node.Children() {
		if err := walk(child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Dump writes an indented description of the tree rooted at node.
func Dump(w io.Writer, node Node) error {
	return Walk(node, func(n Node, depth int) error {
		indent := strings.Repeat("  ", depth)
		var err error
		switch v := n.(type) {
		case *DocumentNode:
			_, err = fmt.Fprintf(w, "%sDocument\n", indent)
		case *ShortcodeNode:
			_, err = fmt.Fprintf(w, "%sShortcode %s%s%s\n", indent, v.Tag, dumpAttributes(v.Attributes), selfClosingMark(v))
		case *TextNode:
			_, err = fmt.Fprintf(w, "%sText %q\n", indent, v.Content)
		case *MarkdownNode:
			_, err = fmt.Fprintf(w, "%sMarkdown %q\n", indent, v.Content)
		}
		return err
	})
}

func dumpAttributes(attrs Attributes) string {
	var sb strings.Builder
	for _, a := range attrs.List() {
		fmt.Fprintf(&sb, " %s=%q", a.Name, a.Value)
	}
	return sb.String()
}

func selfClosingMark(n *ShortcodeNode) string {
	if n.SelfClosing {
		return " /"
	}
	return ""
}
