package toolkit

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FrameworkSegments lists the framework sub-bundles in their fixed
// concatenation order.
var FrameworkSegments = []string{
	"doctrine",
	"directives",
	"playbooks",
	"enhancements",
}

// FrameworkSegment is one named sub-bundle of the framework with its
// concatenated content.
type FrameworkSegment struct {
	Name    string
	Content string
}

// FrameworkBundle aggregates the enabled framework segments. When the
// bundle is disabled, Enabled is false and Segments is empty.
type FrameworkBundle struct {
	Enabled  bool
	Segments []FrameworkSegment
}

// Content returns the full framework content: every segment's content
// in fixed segment order, separated by blank lines.
func (b *FrameworkBundle) Content() string {
	if b == nil || !b.Enabled {
		return ""
	}

	parts := make([]string, 0, len(b.Segments))
	for _, seg := range b.Segments {
		if seg.Content != "" {
			parts = append(parts, seg.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

// LoadFramework reads the enabled framework segments from the store.
// Each segment is the concatenation of its documents' bodies in
// lexicographic file order. Disabled segments contribute nothing; a
// missing segment directory is not an error. A nil or empty enabled
// set yields a disabled bundle.
func (s *Store) LoadFramework(enabled map[string]bool) (*FrameworkBundle, error) {
	bundle := &FrameworkBundle{}

	anyEnabled := false
	for _, on := range enabled {
		if on {
			anyEnabled = true
			break
		}
	}
	if !anyEnabled {
		return bundle, nil
	}
	bundle.Enabled = true

	for _, name := range FrameworkSegments {
		if !enabled[name] {
			continue
		}

		content, err := s.loadSegment(name)
		if err != nil {
			return nil, fmt.Errorf("load framework segment %s: %w", name, err)
		}

		bundle.Segments = append(bundle.Segments, FrameworkSegment{
			Name:    name,
			Content: content,
		})
	}

	return bundle, nil
}

// loadSegment concatenates the bodies of every markdown document in a
// segment directory, in lexicographic filename order.
func (s *Store) loadSegment(name string) (string, error) {
	segDir := filepath.Join(s.root, FrameworkDir, name)

	entries, err := os.ReadDir(segDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	var parts []string
	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(segDir, file))
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}

		doc, err := ParseDocument(content)
		if err != nil {
			s.logger.Warn("Skipping malformed framework document",
				"segment", name,
				"file", file,
				"error", err)
			continue
		}

		body := strings.TrimSpace(doc.Body)
		if body != "" {
			parts = append(parts, body)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}
