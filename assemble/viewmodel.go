// Package assemble builds the normalized view model consumed by every
// render target. Assembly is a pure function over the project spec,
// the resolved descriptor set, and the framework bundle; it performs
// no IO and the result is never persisted.
package assemble

import (
	"fmt"

	"github.com/forgeworks/toolforge/project"
	"github.com/forgeworks/toolforge/resolver"
	"github.com/forgeworks/toolforge/toolkit"
)

// DefaultVersion is used when a descriptor declares no version tag.
const DefaultVersion = "1.0.0"

// Summary is the per-descriptor view rendered by templates. Every
// field is populated, with fallbacks applied during assembly.
type Summary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Category    string `json:"category,omitempty"`
	Body        string `json:"-"`
}

// ViewModel is the single target-agnostic structure consumed by every
// template. Built fresh per run.
type ViewModel struct {
	Project project.Info

	Modules []Summary
	Agents  []Summary

	// Languages and Frameworks are explicit spec values when present,
	// otherwise inferred from module identifiers.
	Languages  []string
	Frameworks []string

	// Derived capability flags used by templates to conditionally
	// include sections.
	HasCMS      bool
	HasFrontend bool

	FrameworkEnabled bool
	FrameworkContent string

	// Overrides carries the spec's per-target configuration through to
	// target-specific rendering.
	Overrides map[string]project.Overrides

	// ToolkitRoot is the content root the descriptors came from.
	ToolkitRoot string
}

// Build assembles the view model from its inputs. Explicit language
// and framework lists on the spec take precedence over inference.
func Build(spec *project.Spec, set *resolver.ResolvedSet, bundle *toolkit.FrameworkBundle, toolkitRoot string) *ViewModel {
	vm := &ViewModel{
		Project:     spec.Project,
		Overrides:   spec.Overrides,
		ToolkitRoot: toolkitRoot,
	}

	moduleIDs := make([]string, 0, len(set.Modules))
	for _, desc := range set.Modules {
		vm.Modules = append(vm.Modules, summarize(desc))
		moduleIDs = append(moduleIDs, desc.ID)
	}
	for _, desc := range set.Agents {
		vm.Agents = append(vm.Agents, summarize(desc))
	}

	if len(spec.Languages) > 0 {
		vm.Languages = append([]string(nil), spec.Languages...)
	} else {
		vm.Languages = InferLanguages(moduleIDs)
	}

	if len(spec.Frameworks) > 0 {
		vm.Frameworks = append([]string(nil), spec.Frameworks...)
	} else {
		vm.Frameworks = InferFrameworks(moduleIDs)
	}

	vm.HasCMS = hasAnySubstring(moduleIDs, cmsMarkers)
	vm.HasFrontend = hasAnySubstring(moduleIDs, frontendMarkers)

	if bundle != nil && bundle.Enabled {
		vm.FrameworkEnabled = true
		vm.FrameworkContent = bundle.Content()
	}

	return vm
}

// summarize converts a descriptor to its template view, applying
// display fallbacks.
func summarize(desc *toolkit.Descriptor) Summary {
	s := Summary{
		ID:          desc.ID,
		Name:        desc.Name,
		Description: desc.Description,
		Version:     desc.Version,
		Category:    desc.Category,
		Body:        desc.Body,
	}

	if s.Name == "" {
		s.Name = desc.ID
	}
	if s.Description == "" {
		s.Description = fmt.Sprintf("Guidance for %s", s.Name)
	}
	if s.Version == "" {
		s.Version = DefaultVersion
	}

	return s
}
