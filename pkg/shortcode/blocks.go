// blocks.go holds the built-in page blocks registered by DefaultRegistry.
package shortcode

import (
	"fmt"
	"strconv"
	"strings"
)

func builtinBlocks() []BlockDefinition {
	return []BlockDefinition{
		{Tag: "hero", Description: "Page header with title, subtitle and call to action",
			Attributes: []string{"title", "subtitle", "image", "cta_text", "cta_url", "size"}, Renderer: BlockFunc(renderHero)},
		{Tag: "features", Description: "Grid of feature items",
			Attributes: []string{"title", "columns"}, Container: true, Renderer: BlockFunc(renderFeatures)},
		{Tag: "feature-item", Description: "Single feature with icon and description",
			Attributes: []string{"title", "icon"}, Renderer: BlockFunc(renderFeatureItem)},
		{Tag: "text", Description: "Markdown text section",
			Attributes: []string{"align"}, Renderer: BlockFunc(renderText)},
		{Tag: "button", Description: "Link styled as a button",
			Attributes: []string{"text", "url", "style"}, Renderer: BlockFunc(renderButton)},
		{Tag: "cta", Description: "Call to action banner",
			Attributes: []string{"title", "button_text", "button_url"}, Renderer: BlockFunc(renderCTA)},
		{Tag: "faq", Description: "List of questions and answers",
			Attributes: []string{"title"}, Container: true, Renderer: BlockFunc(renderFAQ)},
		{Tag: "faq-item", Description: "Collapsible question with answer",
			Attributes: []string{"question"}, Renderer: BlockFunc(renderFAQItem)},
		{Tag: "stats", Description: "Row of key figures",
			Attributes: []string{"title"}, Container: true, Renderer: BlockFunc(renderStats)},
		{Tag: "stat", Description: "Single key figure",
			Attributes: []string{"value", "label"}, Renderer: BlockFunc(renderStat)},
		{Tag: "team", Description: "Grid of team members",
			Attributes: []string{"title"}, Container: true, Renderer: BlockFunc(renderTeam)},
		{Tag: "team-member", Description: "Team member card",
			Attributes: []string{"name", "role", "image"}, Renderer: BlockFunc(renderTeamMember)},
		{Tag: "pricing", Description: "Pricing table",
			Attributes: []string{"title"}, Container: true, Renderer: BlockFunc(renderPricing)},
		{Tag: "pricing-tier", Description: "Single pricing plan",
			Attributes: []string{"name", "price", "period", "featured", "button_text", "button_url"}, Renderer: BlockFunc(renderPricingTier)},
		{Tag: "legal-text", Description: "Long-form legal document",
			Attributes: []string{"title", "updated"}, Renderer: BlockFunc(renderLegalText)},
		{Tag: "image", Description: "Image with optional caption",
			Attributes: []string{"src", "alt", "caption", "width", "height"}, Renderer: BlockFunc(renderImage)},
	}
}

func renderHero(ctx *RenderContext, node *ShortcodeNode) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="hero hero-%s">`, classToken(attrOr(node, "size", "medium")))
	if img := node.Attr("image"); img != "" {
		fmt.Fprintf(&sb, `<img class="hero-image" src="%s" alt="">`, escapeHTML(ctx.URL(node, img)))
	}
	sb.WriteString(`<div class="hero-content">`)
	writeHeading(&sb, "h1", node.Attr("title"))
	if sub := node.Attr("subtitle"); sub != "" {
		fmt.Fprintf(&sb, `<p class="hero-subtitle">%s</p>`, escapeHTML(sub))
	}
	sb.WriteString(ctx.Children(node))
	writeButton(&sb, node.Attr("cta_text"), ctx.URL(node, node.Attr("cta_url")), "primary")
	sb.WriteString(`</div></div>`)
	return sb.String()
}

func renderFeatures(ctx *RenderContext, node *ShortcodeNode) string {
	cols := clamp(intAttr(node, "columns", 3), 1, 6)
	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="features features-cols-%d">`, cols)
	writeHeading(&sb, "h2", node.Attr("title"))
	sb.WriteString(`<div class="features-grid">`)
	sb.WriteString(ctx.Children(node))
	sb.WriteString(`</div></div>`)
	return sb.String()
}

func renderFeatureItem(ctx *RenderContext, node *ShortcodeNode) string {
	var sb strings.Builder
	sb.WriteString(`<div class="feature-item">`)
	if icon := node.Attr("icon"); icon != "" {
		fmt.Fprintf(&sb, `<span class="feature-icon" data-icon="%s"></span>`, escapeHTML(icon))
	}
	writeHeading(&sb, "h3", node.Attr("title"))
	writeBody(&sb, "feature-body", ctx.Children(node))
	sb.WriteString(`</div>`)
	return sb.String()
}

var textAlignments = map[string]bool{"left": true, "center": true, "right": true, "justify": true}

func renderText(ctx *RenderContext, node *ShortcodeNode) string {
	align := strings.ToLower(node.Attr("align"))
	if !textAlignments[align] {
		align = "left"
	}
	return `<div class="text text-` + align + `">` + ctx.Children(node) + `</div>`
}

func renderButton(ctx *RenderContext, node *ShortcodeNode) string {
	label := escapeHTML(node.Attr("text"))
	if label == "" {
		label = strings.TrimSpace(stripParagraph(ctx.Children(node)))
	}
	return buttonHTML(label, ctx.URL(node, node.Attr("url")), attrOr(node, "style", "primary"))
}

func renderCTA(ctx *RenderContext, node *ShortcodeNode) string {
	var sb strings.Builder
	sb.WriteString(`<div class="cta">`)
	writeHeading(&sb, "h2", node.Attr("title"))
	writeBody(&sb, "cta-body", ctx.Children(node))
	writeButton(&sb, node.Attr("button_text"), ctx.URL(node, node.Attr("button_url")), "primary")
	sb.WriteString(`</div>`)
	return sb.String()
}

func renderFAQ(ctx *RenderContext, node *ShortcodeNode) string {
	return containerHTML(ctx, node, "faq", "faq-items")
}

func renderFAQItem(ctx *RenderContext, node *ShortcodeNode) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<details class="faq-item"><summary>%s</summary>`, escapeHTML(node.Attr("question")))
	writeBody(&sb, "faq-answer", ctx.Children(node))
	sb.WriteString(`</details>`)
	return sb.String()
}

func renderStats(ctx *RenderContext, node *ShortcodeNode) string {
	return containerHTML(ctx, node, "stats", "stats-grid")
}

func renderStat(ctx *RenderContext, node *ShortcodeNode) string {
	var sb strings.Builder
	sb.WriteString(`<div class="stat">`)
	fmt.Fprintf(&sb, `<span class="stat-value">%s</span>`, escapeHTML(node.Attr("value")))
	if label := node.Attr("label"); label != "" {
		fmt.Fprintf(&sb, `<span class="stat-label">%s</span>`, escapeHTML(label))
	}
	sb.WriteString(ctx.Children(node))
	sb.WriteString(`</div>`)
	return sb.String()
}

func renderTeam(ctx *RenderContext, node *ShortcodeNode) string {
	return containerHTML(ctx, node, "team", "team-grid")
}

func renderTeamMember(ctx *RenderContext, node *ShortcodeNode) string {
	name := node.Attr("name")
	var sb strings.Builder
	sb.WriteString(`<div class="team-member">`)
	if img := node.Attr("image"); img != "" {
		fmt.Fprintf(&sb, `<img class="team-photo" src="%s" alt="%s">`, escapeHTML(ctx.URL(node, img)), escapeHTML(name))
	}
	writeHeading(&sb, "h3", name)
	if role := node.Attr("role"); role != "" {
		fmt.Fprintf(&sb, `<p class="team-role">%s</p>`, escapeHTML(role))
	}
	writeBody(&sb, "team-bio", ctx.Children(node))
	sb.WriteString(`</div>`)
	return sb.String()
}

func renderPricing(ctx *RenderContext, node *ShortcodeNode) string {
	return containerHTML(ctx, node, "pricing", "pricing-tiers")
}

func renderPricingTier(ctx *RenderContext, node *ShortcodeNode) string {
	class := "pricing-tier"
	if boolAttr(node, "featured") {
		class += " pricing-tier-featured"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="%s">`, class)
	writeHeading(&sb, "h3", node.Attr("name"))
	fmt.Fprintf(&sb, `<p class="price"><span class="price-amount">%s</span>`, escapeHTML(node.Attr("price")))
	if period := node.Attr("period"); period != "" {
		fmt.Fprintf(&sb, `<span class="price-period">/%s</span>`, escapeHTML(period))
	}
	sb.WriteString(`</p>`)
	writeBody(&sb, "pricing-features", ctx.Children(node))
	writeButton(&sb, node.Attr("button_text"), ctx.URL(node, node.Attr("button_url")), "primary")
	sb.WriteString(`</div>`)
	return sb.String()
}

func renderLegalText(ctx *RenderContext, node *ShortcodeNode) string {
	var sb strings.Builder
	sb.WriteString(`<article class="legal-text">`)
	writeHeading(&sb, "h1", node.Attr("title"))
	if updated := node.Attr("updated"); updated != "" {
		fmt.Fprintf(&sb, `<p class="legal-updated">Last updated: %s</p>`, escapeHTML(updated))
	}
	writeBody(&sb, "legal-body", ctx.Children(node))
	sb.WriteString(`</article>`)
	return sb.String()
}

func renderImage(ctx *RenderContext, node *ShortcodeNode) string {
	var sb strings.Builder
	sb.WriteString(`<figure class="image">`)
	fmt.Fprintf(&sb, `<img src="%s" alt="%s"`, escapeHTML(ctx.URL(node, node.Attr("src"))), escapeHTML(node.Attr("alt")))
	if w := intAttr(node, "width", 0); w > 0 {
		fmt.Fprintf(&sb, ` width="%d"`, w)
	}
	if h := intAttr(node, "height", 0); h > 0 {
		fmt.Fprintf(&sb, ` height="%d"`, h)
	}
	sb.WriteString(` loading="lazy">`)
	if caption := node.Attr("caption"); caption != "" {
		fmt.Fprintf(&sb, `<figcaption>%s</figcaption>`, escapeHTML(caption))
	}
	sb.WriteString(ctx.Children(node))
	sb.WriteString(`</figure>`)
	return sb.String()
}

// containerHTML renders the common title + grid layout of container blocks.
func containerHTML(ctx *RenderContext, node *ShortcodeNode, class, gridClass string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="%s">`, class)
	writeHeading(&sb, "h2", node.Attr("title"))
	fmt.Fprintf(&sb, `<div class="%s">`, gridClass)
	sb.WriteString(ctx.Children(node))
	sb.WriteString(`</div></div>`)
	return sb.String()
}

func writeHeading(sb *strings.Builder, level, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(sb, `<%s>%s</%s>`, level, escapeHTML(text), level)
}

// writeBody wraps already-rendered children; empty bodies are omitted.
func writeBody(sb *strings.Builder, class, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	fmt.Fprintf(sb, `<div class="%s">%s</div>`, class, body)
}

// writeButton expects href to have passed RenderContext.URL.
func writeButton(sb *strings.Builder, text, href, style string) {
	if text == "" || href == "" {
		return
	}
	sb.WriteString(buttonHTML(escapeHTML(text), href, style))
}

// buttonHTML expects label to be escaped and href to have passed
// RenderContext.URL.
func buttonHTML(label, href, style string) string {
	if href == "" {
		href = "#"
	}
	return fmt.Sprintf(`<a class="button button-%s" href="%s">%s</a>`, classToken(style), escapeHTML(href), label)
}

// stripParagraph removes the <p> wrapper goldmark puts around a single line.
func stripParagraph(html string) string {
	s := strings.TrimSpace(html)
	if strings.HasPrefix(s, "<p>") && strings.HasSuffix(s, "</p>") && strings.Count(s, "<p>") == 1 {
		return s[len("<p>") : len(s)-len("</p>")]
	}
	return s
}

func attrOr(node *ShortcodeNode, name, def string) string {
	if v, ok := node.Attributes.Get(name); ok && v != "" {
		return v
	}
	return def
}

func intAttr(node *ShortcodeNode, name string, def int) int {
	v, ok := node.Attributes.Get(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func boolAttr(node *ShortcodeNode, name string) bool {
	v := strings.ToLower(strings.TrimSpace(node.Attr(name)))
	if v == "yes" || v == "on" {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
