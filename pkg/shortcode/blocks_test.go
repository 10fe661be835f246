package shortcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func renderBare(t *testing.T, input string) string {
	t.Helper()
	return render(t, input, WithRenderOptions(RenderOptions{ProseMarkdown: true}))
}

func TestBlocks_Rendering(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:  "hero with everything",
			input: `[#hero title="Welcome" subtitle="Hi" image="/h.jpg" cta_text="Start" cta_url="/start" size="Large"]{Extra}[/#hero]`,
			contains: []string{
				`<div class="hero hero-large">`,
				`<img class="hero-image" src="/h.jpg" alt="">`,
				`<h1>Welcome</h1>`,
				`<p class="hero-subtitle">Hi</p>`,
				`<p>Extra</p>`,
				`<a class="button button-primary" href="/start">Start</a>`,
			},
		},
		{
			name:  "hero size is sanitized",
			input: `[#hero size="x\" onload=\"y"][/#hero]`,
			contains: []string{
				`<div class="hero hero-xonloady">`,
			},
		},
		{
			name:  "features with items",
			input: `[#features title="Why" columns="9"]{[#feature-item title="Fast" icon="bolt"]{Quick}[/#feature-item]}[/#features]`,
			contains: []string{
				`<div class="features features-cols-6"><h2>Why</h2><div class="features-grid">`,
				`<div class="feature-item"><span class="feature-icon" data-icon="bolt"></span><h3>Fast</h3><div class="feature-body"><p>Quick</p>` + "\n" + `</div></div>`,
			},
		},
		{
			name:     "features default columns",
			input:    `[#features columns="many" /]`,
			contains: []string{`features-cols-3`},
		},
		{
			name:     "text alignment",
			input:    `[#text align="center"]{x}[/#text]`,
			contains: []string{`<div class="text text-center">`},
		},
		{
			name:     "text alignment fallback",
			input:    `[#text align="middle"]{x}[/#text]`,
			contains: []string{`<div class="text text-left">`},
		},
		{
			name:     "button from attributes",
			input:    `[#button text="Sign up" url="/signup" style="secondary" /]`,
			contains: []string{`<a class="button button-secondary" href="/signup">Sign up</a>`},
		},
		{
			name:     "button label from content",
			input:    `[#button url="/signup"]{Sign **up**}[/#button]`,
			contains: []string{`<a class="button button-primary" href="/signup">Sign <strong>up</strong></a>`},
		},
		{
			name:     "button without url",
			input:    `[#button text="Nowhere" /]`,
			contains: []string{`href="#"`},
		},
		{
			name:  "cta",
			input: `[#cta title="Ready?" button_text="Go" button_url="https://example.com/go"]{Join us}[/#cta]`,
			contains: []string{
				`<div class="cta"><h2>Ready?</h2><div class="cta-body"><p>Join us</p>`,
				`<a class="button button-primary" href="https://example.com/go">Go</a></div>`,
			},
		},
		{
			name:  "faq",
			input: `[#faq title="Questions"]{[#faq-item question="Why?"]{Because.}[/#faq-item]}[/#faq]`,
			contains: []string{
				`<div class="faq"><h2>Questions</h2><div class="faq-items">`,
				`<details class="faq-item"><summary>Why?</summary><div class="faq-answer"><p>Because.</p>` + "\n" + `</div></details>`,
			},
		},
		{
			name:  "stats",
			input: `[#stats]{[#stat value="99%" label="Uptime" /][#stat value="5" /]}[/#stats]`,
			contains: []string{
				`<div class="stats"><div class="stats-grid">`,
				`<div class="stat"><span class="stat-value">99%</span><span class="stat-label">Uptime</span></div>`,
				`<div class="stat"><span class="stat-value">5</span></div>`,
			},
		},
		{
			name:  "team",
			input: `[#team title="People"]{[#team-member name="Ada" role="CTO" image="/ada.png"]{Writes code.}[/#team-member]}[/#team]`,
			contains: []string{
				`<div class="team"><h2>People</h2><div class="team-grid">`,
				`<img class="team-photo" src="/ada.png" alt="Ada"><h3>Ada</h3><p class="team-role">CTO</p>`,
				`<div class="team-bio"><p>Writes code.</p>`,
			},
		},
		{
			name:  "pricing featured tier",
			input: `[#pricing]{[#pricing-tier name="Pro" price="$10" period="month" featured="true" button_text="Buy" button_url="/buy"]{- Everything}[/#pricing-tier]}[/#pricing]`,
			contains: []string{
				`<div class="pricing"><div class="pricing-tiers">`,
				`<div class="pricing-tier pricing-tier-featured"><h3>Pro</h3>`,
				`<p class="price"><span class="price-amount">$10</span><span class="price-period">/month</span></p>`,
				`<div class="pricing-features"><ul>`,
				`<a class="button button-primary" href="/buy">Buy</a>`,
			},
		},
		{
			name:     "pricing plain tier",
			input:    `[#pricing-tier name="Free" price="0" featured="no" /]`,
			contains: []string{`<div class="pricing-tier"><h3>Free</h3>`},
		},
		{
			name:  "legal text",
			input: `[#legal-text title="Terms" updated="2024-01-01"]{## Scope}[/#legal-text]`,
			contains: []string{
				`<article class="legal-text"><h1>Terms</h1><p class="legal-updated">Last updated: 2024-01-01</p>`,
				`<div class="legal-body"><h2>Scope</h2>`,
			},
		},
		{
			name:  "image",
			input: `[#image src="photo.jpg" alt="A photo" width="640" height="abc" caption="Nice" /]`,
			contains: []string{
				`<figure class="image"><img src="photo.jpg" alt="A photo" width="640" loading="lazy"><figcaption>Nice</figcaption></figure>`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderBare(t, tt.input)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestBlocks_OnlyTopLevelIsWrapped(t *testing.T) {
	out := render(t, `[#features]{[#feature-item title="A" /][#feature-item title="B" /]}[/#features]`)
	assert.Equal(t, 1, strings.Count(out, "<section"))
	assert.True(t, strings.HasPrefix(out, `<section class="block block-features">`))
}

func TestBoolAttr(t *testing.T) {
	tests := map[string]bool{
		"true": true, "1": true, "yes": true, "on": true, "TRUE": true,
		"false": false, "no": false, "": false, "maybe": false,
	}
	for value, want := range tests {
		node := &ShortcodeNode{Attributes: NewAttributes(Attribute{Name: "featured", Value: value})}
		assert.Equal(t, want, boolAttr(node, "featured"), value)
	}
}

func TestStripParagraph(t *testing.T) {
	assert.Equal(t, "Hi", stripParagraph("<p>Hi</p>\n"))
	assert.Equal(t, "<p>a</p><p>b</p>", stripParagraph("<p>a</p><p>b</p>"))
	assert.Equal(t, "<ul><li>x</li></ul>", stripParagraph("<ul><li>x</li></ul>"))
}
