// registry.go maps shortcode tags to their renderers.
package shortcode

import (
	"sort"
	"sync"
)

// BlockRenderer renders a single shortcode to HTML. Implementations must
// escape every attribute value they emit; rendered children from ctx are
// already safe.
type BlockRenderer interface {
	RenderBlock(ctx *RenderContext, node *ShortcodeNode) string
}

// BlockFunc adapts a function to BlockRenderer.
type BlockFunc func(ctx *RenderContext, node *ShortcodeNode) string

// RenderBlock calls f.
func (f BlockFunc) RenderBlock(ctx *RenderContext, node *ShortcodeNode) string {
	return f(ctx, node)
}

// BlockDefinition describes a registered shortcode.
type BlockDefinition struct {
	Tag         string
	Description string
	Attributes  []string // documented attribute names, informational only
	Container   bool     // true when the block is meant to hold other blocks
	Renderer    BlockRenderer
}

// Registry holds block definitions keyed by tag. Tags are case-sensitive.
// The zero value is an empty registry ready to use.
type Registry struct {
	mu     sync.RWMutex
	blocks map[string]BlockDefinition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{blocks: make(map[string]BlockDefinition)}
}

// Register adds def, replacing any definition with the same tag.
func (r *Registry) Register(def BlockDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.blocks == nil {
		r.blocks = make(map[string]BlockDefinition)
	}
	r.blocks[def.Tag] = def
}

// RegisterFunc registers fn under tag with no further metadata.
func (r *Registry) RegisterFunc(tag string, fn BlockFunc) {
	r.Register(BlockDefinition{Tag: tag, Renderer: fn})
}

// Lookup returns the definition for tag.
func (r *Registry) Lookup(tag string) (BlockDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.blocks[tag]
	return def, ok
}

// List returns all definitions sorted by tag.
func (r *Registry) List() []BlockDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]BlockDefinition, 0, len(r.blocks))
	for _, def := range r.blocks {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Tag < defs[j].Tag })
	return defs
}

// DefaultRegistry returns a new registry holding the built-in page blocks.
// Each call returns an independent copy that may be extended freely.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, def := range builtinBlocks() {
		r.Register(def)
	}
	return r
}
