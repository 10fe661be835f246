package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/blockmark/internal/cmd/cmdutil"
	"github.com/open-cli-collective/blockmark/internal/config"
	"github.com/open-cli-collective/blockmark/pkg/shortcode"
)

func newOptions(t *testing.T, stdin string) (*renderOptions, *bytes.Buffer) {
	t.Helper()
	for _, name := range config.EnvVars {
		t.Setenv(name, "")
	}
	var stdout bytes.Buffer
	return &renderOptions{
		Options: &cmdutil.Options{
			ConfigPath: filepath.Join(t.TempDir(), "none.yml"),
			NoColor:    true,
			Stdin:      strings.NewReader(stdin),
			Stdout:     &stdout,
			Stderr:     &bytes.Buffer{},
		},
	}, &stdout
}

func TestRunRender_Stdin(t *testing.T) {
	opts, stdout := newOptions(t, `[#text align="center"]{Hello **world**}[/#text]`)

	require.NoError(t, runRender(opts))
	assert.Equal(t,
		"<section class=\"block block-text\"><div class=\"text text-center\"><p>Hello <strong>world</strong></p>\n</div></section>\n",
		stdout.String())
}

func TestRunRender_FileToFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "page.md")
	output := filepath.Join(dir, "site", "page.html")
	require.NoError(t, os.WriteFile(input, []byte("---\ntitle: Home\n---\n[#hero title=\"Hi\"][/#hero]\n"), 0644))

	opts, stdout := newOptions(t, "")
	opts.input = input
	opts.out = output
	opts.frontMatter = true

	require.NoError(t, runRender(opts))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1>Hi</h1>")
	assert.NotContains(t, string(data), "title: Home")
}

func TestRunRender_JSON(t *testing.T) {
	opts, stdout := newOptions(t, "---\ntitle: Home\n---\n[#text]{x}[/#text]")
	opts.Output = "json"
	opts.frontMatter = true

	require.NoError(t, runRender(opts))

	var page shortcode.Page
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &page))
	assert.Equal(t, "Home", page.Metadata["title"])
	assert.Contains(t, page.HTML, "<p>x</p>")
}

func TestRunRender_SyntaxError(t *testing.T) {
	opts, stdout := newOptions(t, "---\ntitle: x\n---\n[#hero]")
	opts.frontMatter = true

	err := runRender(opts)
	require.Error(t, err)
	assert.Empty(t, stdout.String())
	assert.Contains(t, err.Error(), cmdutil.StdinName)

	var syn *shortcode.SyntaxError
	require.True(t, errors.As(err, &syn))
	assert.Equal(t, 4, syn.Line)
}

func TestRunRender_ConfigApplies(t *testing.T) {
	opts, stdout := newOptions(t, "[#text]{x}[/#text]")
	opts.ConfigPath = filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(opts.ConfigPath, []byte("wrap_blocks: false\n"), 0644))

	require.NoError(t, runRender(opts))
	assert.True(t, strings.HasPrefix(stdout.String(), `<div class="text text-left">`))
}
