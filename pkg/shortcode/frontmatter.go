package shortcode

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// yamlErrorLine finds the 1-based block line in yaml.v3 error messages.
var yamlErrorLine = regexp.MustCompile(`line (\d+):`)

// FrontMatter is the result of splitting a document into YAML metadata and
// shortcode content.
type FrontMatter struct {
	Metadata map[string]interface{}
	Content  string
	// LineOffset is the number of lines of the original document that precede
	// Content. Add it to positions reported for Content to get document lines.
	LineOffset int
}

// ExtractFrontMatter splits a leading ----delimited YAML block from document.
// Documents without one are returned unchanged with empty metadata. Blank
// lines between the block and the content, and trailing whitespace, are
// trimmed from Content.
func ExtractFrontMatter(document string) (FrontMatter, error) {
	result := FrontMatter{Metadata: map[string]interface{}{}, Content: document}

	lines := strings.SplitAfter(document, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t\r\n") != frontMatterDelimiter {
		return result, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t\r\n") == frontMatterDelimiter {
			end = i
			break
		}
	}
	if end < 0 {
		return result, nil
	}

	raw := strings.Join(lines[1:end], "")
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &node); err != nil {
		return FrontMatter{}, frontMatterError(err)
	}
	if len(node.Content) > 0 {
		if top := node.Content[0]; top.Kind != yaml.MappingNode {
			return FrontMatter{}, &FrontMatterError{
				Line:   top.Line + 1,
				Column: top.Column,
				Err:    errors.New("front matter must be a mapping"),
			}
		}
		if err := node.Decode(&result.Metadata); err != nil {
			return FrontMatter{}, frontMatterError(err)
		}
	}

	rest := lines[end+1:]
	offset := end + 1
	for len(rest) > 0 && strings.TrimSpace(rest[0]) == "" && strings.HasSuffix(rest[0], "\n") {
		rest = rest[1:]
		offset++
	}
	result.Content = strings.TrimRight(strings.Join(rest, ""), " \t\r\n")
	result.LineOffset = offset
	return result, nil
}

// frontMatterError places a yaml.v3 error on its document line. The block
// starts on line 2; errors without a line point at the opening delimiter.
func frontMatterError(err error) *FrontMatterError {
	fmErr := &FrontMatterError{Line: 1, Column: 1, Err: err}
	if m := yamlErrorLine.FindStringSubmatch(err.Error()); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil && n > 0 {
			fmErr.Line = n + 1
		}
	}
	return fmErr
}
