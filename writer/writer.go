// Package writer persists rendered artifacts to the destination
// directory. Writing is idempotent: files whose content is already
// byte-identical are skipped untouched, and one file's failure never
// aborts the rest of the batch.
package writer

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Stats aggregates the outcome of one write batch.
type Stats struct {
	Written int
	Skipped int
	Failed  int
	Errors  []string
}

// Writer persists artifacts under a destination root.
type Writer struct {
	destRoot string
	logger   *slog.Logger
}

// New creates a writer rooted at the destination directory.
func New(destRoot string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{destRoot: destRoot, logger: logger}
}

// Write persists every artifact, creating parent directories as
// needed. Unchanged files are skipped without touching the filesystem.
// Paths are processed in sorted order so statistics and logs are
// deterministic.
func (w *Writer) Write(artifacts map[string][]byte) Stats {
	stats := Stats{}

	paths := make([]string, 0, len(artifacts))
	for path := range artifacts {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, rel := range paths {
		content := artifacts[rel]
		full := filepath.Join(w.destRoot, rel)

		existing, err := os.ReadFile(full)
		if err == nil && bytes.Equal(existing, content) {
			stats.Skipped++
			w.logger.Debug("Artifact unchanged", "path", rel)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			stats.Failed++
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", rel, err))
			w.logger.Warn("Failed to create artifact directory", "path", rel, "error", err)
			continue
		}

		if err := os.WriteFile(full, content, 0644); err != nil {
			stats.Failed++
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", rel, err))
			w.logger.Warn("Failed to write artifact", "path", rel, "error", err)
			continue
		}

		stats.Written++
		w.logger.Debug("Artifact written", "path", rel, "bytes", len(content))
	}

	return stats
}
