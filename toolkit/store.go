package toolkit

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Directory constants for the toolkit store layout.
const (
	ModulesDir   = "modules"
	AgentsDir    = "agents"
	FrameworkDir = "framework"
)

// Store reads capability descriptors from a toolkit content root.
// Descriptors live under namespaced subdirectories
// (modules/<namespace>/<id>.md) with a flat legacy location
// (modules/<id>.md) checked last. Loaded descriptors are never mutated.
type Store struct {
	root   string
	logger *slog.Logger
}

// NewStore creates a store rooted at the given toolkit directory.
func NewStore(root string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{root: root, logger: logger}
}

// Root returns the toolkit content root path.
func (s *Store) Root() string {
	return s.root
}

// Load reads the descriptor for (kind, id), checking namespaced
// subdirectories first and the flat legacy location last. A missing
// descriptor returns ErrNotFound. A descriptor whose metadata violates
// the schema is logged and also surfaced as ErrNotFound so one bad
// file cannot take down a whole run.
func (s *Store) Load(kind Kind, id string) (*Descriptor, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid descriptor kind: %s", kind)
	}

	for _, path := range s.candidatePaths(kind, id) {
		content, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			s.logger.Warn("Failed to read descriptor",
				"kind", kind.String(),
				"id", id,
				"path", path,
				"error", err)
			continue
		}

		doc, err := ParseDocument(content)
		if err != nil {
			s.logger.Warn("Malformed descriptor document",
				"kind", kind.String(),
				"id", id,
				"path", path,
				"error", err)
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, kind.Dir(), id)
		}

		desc, err := descriptorFromDocument(kind, id, doc)
		if err != nil {
			s.logger.Warn("Descriptor metadata schema violation",
				"kind", kind.String(),
				"id", id,
				"path", path,
				"error", err)
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, kind.Dir(), id)
		}

		return desc, nil
	}

	return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, kind.Dir(), id)
}

// candidatePaths returns the ordered lookup locations for (kind, id):
// every namespaced subdirectory in sorted order, then the flat legacy
// path.
func (s *Store) candidatePaths(kind Kind, id string) []string {
	kindRoot := filepath.Join(s.root, kind.Dir())
	filename := id + ".md"

	var paths []string

	entries, err := os.ReadDir(kindRoot)
	if err == nil {
		var namespaces []string
		for _, entry := range entries {
			if entry.IsDir() {
				namespaces = append(namespaces, entry.Name())
			}
		}
		sort.Strings(namespaces)

		for _, ns := range namespaces {
			paths = append(paths, filepath.Join(kindRoot, ns, filename))
		}
	}

	// Flat legacy location last
	paths = append(paths, filepath.Join(kindRoot, filename))

	return paths
}

// ListIDs returns every descriptor identifier available for a kind,
// across namespaced and flat locations, sorted and de-duplicated.
// Used by validation to build fuzzy-match candidate sets.
func (s *Store) ListIDs(kind Kind) ([]string, error) {
	kindRoot := filepath.Join(s.root, kind.Dir())

	entries, err := os.ReadDir(kindRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s directory: %w", kind.Dir(), err)
	}

	seen := make(map[string]bool)
	var ids []string

	add := func(name string) {
		if !strings.HasSuffix(name, ".md") {
			return
		}
		id := strings.TrimSuffix(name, ".md")
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			nested, err := os.ReadDir(filepath.Join(kindRoot, entry.Name()))
			if err != nil {
				continue
			}
			for _, n := range nested {
				if !n.IsDir() {
					add(n.Name())
				}
			}
			continue
		}
		add(entry.Name())
	}

	sort.Strings(ids)
	return ids, nil
}

// CheckIntegrity verifies the store's required structure. The root and
// the modules directory must exist; agents and framework directories
// are optional. Every missing requirement is returned so the caller
// sees all problems in one pass.
func (s *Store) CheckIntegrity() []error {
	var errs []error

	info, err := os.Stat(s.root)
	if err != nil || !info.IsDir() {
		errs = append(errs, fmt.Errorf("toolkit root not found: %s", s.root))
		return errs
	}

	modulesPath := filepath.Join(s.root, ModulesDir)
	if info, err := os.Stat(modulesPath); err != nil || !info.IsDir() {
		errs = append(errs, fmt.Errorf("required directory missing: %s", ModulesDir))
	}

	return errs
}
