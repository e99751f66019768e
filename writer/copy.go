package writer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/forgeworks/toolforge/toolkit"
)

// CopyReport describes the outcome of one bulk copy: which relative
// paths were copied and which were rejected, with the reason.
type CopyReport struct {
	Copied   []string
	Rejected map[string]string
}

// CopyTree copies every file under srcRoot matching one of the glob
// patterns into destRoot, preserving relative paths. Markdown files
// must pass a structural pre-check before they are copied; a file that
// fails the check is rejected with the parse error rather than copied
// or silently dropped. Patterns use doublestar syntax, so "**/*.md"
// matches at any depth.
func (w *Writer) CopyTree(srcRoot, destRoot string, patterns []string) (*CopyReport, error) {
	report := &CopyReport{Rejected: make(map[string]string)}

	err := filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(srcRoot, path)
		if err != nil {
			return err
		}

		if !matchesAny(patterns, filepath.ToSlash(rel)) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			report.Rejected[rel] = err.Error()
			return nil
		}

		if filepath.Ext(path) == ".md" {
			if _, err := toolkit.ParseDocument(content); err != nil {
				report.Rejected[rel] = err.Error()
				w.logger.Warn("Rejected malformed auxiliary file", "path", rel, "error", err)
				return nil
			}
		}

		full := filepath.Join(destRoot, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			report.Rejected[rel] = err.Error()
			return nil
		}
		if err := os.WriteFile(full, content, 0644); err != nil {
			report.Rejected[rel] = err.Error()
			return nil
		}

		report.Copied = append(report.Copied, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("copy tree %s: %w", srcRoot, err)
	}

	return report, nil
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
