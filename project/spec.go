// Package project defines the declarative project specification that
// drives a generation run. A spec is constructed once per run by an
// external collaborator (CLI flags, a YAML file) and is immutable once
// handed to the pipeline.
package project

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BaselineModule is selected when the spec names no modules.
const BaselineModule = "core"

// Info holds project metadata rendered into every artifact.
type Info struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
}

// Permissions is a per-target access-control override: lists of
// Action(pattern) entries.
type Permissions struct {
	Allow []string `yaml:"allow"`
	Deny  []string `yaml:"deny"`
}

// Overrides carries free-form per-target configuration.
type Overrides struct {
	Permissions *Permissions `yaml:"permissions"`
}

// FrameworkSelection is either disabled (framework: false) or a set of
// named segments with per-segment enable flags.
type FrameworkSelection struct {
	Enabled  bool
	Segments map[string]bool
}

// UnmarshalYAML accepts either a boolean or a segment->bool mapping.
func (f *FrameworkSelection) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var enabled bool
		if err := value.Decode(&enabled); err != nil {
			return fmt.Errorf("framework must be a boolean or a segment map: %w", err)
		}
		f.Enabled = enabled
		f.Segments = nil
		return nil
	case yaml.MappingNode:
		var segments map[string]bool
		if err := value.Decode(&segments); err != nil {
			return fmt.Errorf("framework segment map: %w", err)
		}
		f.Segments = segments
		for _, on := range segments {
			if on {
				f.Enabled = true
				break
			}
		}
		return nil
	default:
		return fmt.Errorf("framework must be a boolean or a segment map")
	}
}

// EnabledSegments returns the enabled segment set, or nil when the
// framework is off.
func (f FrameworkSelection) EnabledSegments() map[string]bool {
	if !f.Enabled {
		return nil
	}
	return f.Segments
}

// Spec is the external input to the pipeline. Unknown YAML fields are
// ignored.
type Spec struct {
	Project    Info                 `yaml:"project"`
	Modules    []string             `yaml:"modules"`
	Agents     []string             `yaml:"agents"`
	Framework  FrameworkSelection   `yaml:"framework"`
	Targets    []string             `yaml:"targets"`
	Languages  []string             `yaml:"languages"`
	Frameworks []string             `yaml:"frameworks"`
	Overrides  map[string]Overrides `yaml:"perTargetOverrides"`
}

// Normalize applies input defaults: duplicate module/agent identifiers
// collapse to their first occurrence, and an empty module selection
// falls back to the baseline module.
func (s *Spec) Normalize() {
	s.Modules = dedupe(s.Modules)
	s.Agents = dedupe(s.Agents)

	if len(s.Modules) == 0 {
		s.Modules = []string{BaselineModule}
	}
}

// Validate checks the spec for structural problems the pipeline cannot
// work around.
func (s *Spec) Validate() error {
	if s.Project.Name == "" {
		return fmt.Errorf("project.name is required")
	}
	if len(s.Targets) == 0 {
		return fmt.Errorf("at least one target is required")
	}
	return nil
}

// LoadFromFile loads and normalizes a spec from a YAML file.
func LoadFromFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}

	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse spec file: %w", err)
	}

	spec.Normalize()
	return &spec, nil
}

// dedupe preserves first occurrence order while dropping repeats.
func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return ids
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
