// Package toolkit provides read access to the capability store: markdown
// descriptor documents with YAML frontmatter, organized under a content
// root with modules/, agents/, and framework/ subdirectories.
package toolkit

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a raw store document split into structured frontmatter
// and free-form body text.
type Document struct {
	// Frontmatter holds the parsed YAML metadata block, nil when the
	// document has none.
	Frontmatter map[string]any

	// Body is the document content after the metadata block.
	Body string
}

// HasFrontmatter returns true if the document carried a metadata block.
func (d *Document) HasFrontmatter() bool {
	return d.Frontmatter != nil
}

// ParseDocument splits content into YAML frontmatter and body. Content
// without an opening delimiter is returned whole as the body. A
// malformed metadata block is an error; the caller decides whether to
// degrade to not-found.
func ParseDocument(content []byte) (*Document, error) {
	str := string(content)

	if !strings.HasPrefix(str, "---\n") && !strings.HasPrefix(str, "---\r\n") {
		return &Document{Body: str}, nil
	}

	frontmatter, body, err := extractFrontmatter(str)
	if err != nil {
		return nil, err
	}

	return &Document{Frontmatter: frontmatter, Body: body}, nil
}

// extractFrontmatter parses the YAML frontmatter block from content.
// Returns the parsed map, the remaining body, and any error.
func extractFrontmatter(content string) (map[string]any, string, error) {
	const delimiter = "---"

	// Skip the opening delimiter
	start := len(delimiter)
	if len(content) > start && content[start] == '\r' {
		start++
	}
	if len(content) > start && content[start] == '\n' {
		start++
	}

	// Find the closing delimiter
	closeIdx := strings.Index(content[start:], "\n"+delimiter)
	if closeIdx == -1 {
		closeIdx = strings.Index(content[start:], "\r\n"+delimiter)
	}
	if closeIdx == -1 {
		return nil, content, fmt.Errorf("no closing frontmatter delimiter")
	}

	yamlContent := content[start : start+closeIdx]

	// Body starts after the closing delimiter and trailing newlines
	bodyStart := start + closeIdx + 1 + len(delimiter)
	for bodyStart < len(content) && (content[bodyStart] == '\n' || content[bodyStart] == '\r') {
		bodyStart++
	}

	body := ""
	if bodyStart < len(content) {
		body = content[bodyStart:]
	}

	var frontmatter map[string]any
	if err := yaml.Unmarshal([]byte(yamlContent), &frontmatter); err != nil {
		return nil, content, fmt.Errorf("parse YAML frontmatter: %w", err)
	}

	return frontmatter, body, nil
}
