// ast.go defines the tree produced by Parse.
package shortcode

// NodeKind identifies the concrete type of a Node.
type NodeKind int

const (
	NodeDocument NodeKind = iota
	NodeShortcode
	NodeText
	NodeMarkdown
)

func (k NodeKind) String() string {
	switch k {
	case NodeDocument:
		return "Document"
	case NodeShortcode:
		return "Shortcode"
	case NodeText:
		return "Text"
	case NodeMarkdown:
		return "Markdown"
	}
	return "Unknown"
}

// Node is implemented by every AST node. Parents own their children; there
// are no back-references.
type Node interface {
	Kind() NodeKind
	Children() []Node
}

// DocumentNode is the root of a parse.
type DocumentNode struct {
	Nodes []Node
}

func (n *DocumentNode) Kind() NodeKind    { return NodeDocument }
func (n *DocumentNode) Children() []Node { return n.Nodes }

// ShortcodeNode is a [#tag] invocation. SelfClosing nodes never have children.
type ShortcodeNode struct {
	Tag         string
	Attributes  Attributes
	SelfClosing bool
	Nodes       []Node
}

func (n *ShortcodeNode) Kind() NodeKind    { return NodeShortcode }
func (n *ShortcodeNode) Children() []Node { return n.Nodes }

// Attr returns the attribute value for name, or "" when absent.
func (n *ShortcodeNode) Attr(name string) string {
	v, _ := n.Attributes.Get(name)
	return v
}

// TextNode is literal text; it is always HTML-escaped on output.
type TextNode struct {
	Content string
}

func (n *TextNode) Kind() NodeKind    { return NodeText }
func (n *TextNode) Children() []Node { return nil }

// MarkdownNode is the text of a content block, converted from Markdown on output.
type MarkdownNode struct {
	Content string
}

func (n *MarkdownNode) Kind() NodeKind    { return NodeMarkdown }
func (n *MarkdownNode) Children() []Node { return nil }

// Attribute is a single name/value pair.
type Attribute struct {
	Name  string
	Value string
}

// Attributes is an insertion-ordered set of attributes with unique names.
type Attributes struct {
	list []Attribute
}

// NewAttributes builds Attributes from name/value pairs, applying Set in order.
func NewAttributes(pairs ...Attribute) Attributes {
	var a Attributes
	for _, p := range pairs {
		a.Set(p.Name, p.Value)
	}
	return a
}

// Set stores value under name. A repeated name keeps its original position and
// takes the new value.
func (a *Attributes) Set(name, value string) {
	for i := range a.list {
		if a.list[i].Name == name {
			a.list[i].Value = value
			return
		}
	}
	a.list = append(a.list, Attribute{Name: name, Value: value})
}

// Get returns the value for name and whether it was present.
func (a Attributes) Get(name string) (string, bool) {
	for _, attr := range a.list {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Len returns the number of attributes.
func (a Attributes) Len() int { return len(a.list) }

// List returns the attributes in insertion order.
func (a Attributes) List() []Attribute {
	out := make([]Attribute, len(a.list))
	copy(out, a.list)
	return out
}

// Map returns the attributes as a plain map, losing order.
func (a Attributes) Map() map[string]string {
	m := make(map[string]string, len(a.list))
	for _, attr := range a.list {
		m[attr.Name] = attr.Value
	}
	return m
}
