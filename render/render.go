// Package render turns the assembled view model into output artifacts,
// one rendering job per activated target. Jobs are independent and run
// concurrently; a failed target is excluded from the result without
// affecting its siblings.
package render

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/forgeworks/toolforge/assemble"
	"github.com/forgeworks/toolforge/target"
)

// Artifacts maps relative output paths to fully rendered content.
type Artifacts map[string][]byte

// TemplateError reports a single target's rendering failure.
type TemplateError struct {
	TargetID string
	Err      error
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	return fmt.Sprintf("render target %s: %v", e.TargetID, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TemplateError) Unwrap() error { return e.Err }

// Renderer renders the expanded target set against one view model.
type Renderer struct {
	targets []string
	logger  *slog.Logger
}

// NewRenderer creates a renderer for the given expanded target list.
func NewRenderer(targets []string, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{targets: targets, logger: logger}
}

// RenderAll renders every target concurrently and merges the results.
// The view model is read-only and each job writes to its own slot, so
// no synchronization is needed between jobs. Failed targets are
// logged, returned as TemplateErrors, and excluded from the artifact
// map.
func (r *Renderer) RenderAll(vm *assemble.ViewModel) (Artifacts, []*TemplateError) {
	results := make([]Artifacts, len(r.targets))
	failures := make([]*TemplateError, len(r.targets))

	var wg sync.WaitGroup
	for i, id := range r.targets {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()

			desc, ok := target.Lookup(id)
			if !ok {
				failures[i] = &TemplateError{TargetID: id, Err: fmt.Errorf("unknown target")}
				return
			}

			artifacts, err := RenderTarget(desc, vm, r.targets)
			if err != nil {
				failures[i] = &TemplateError{TargetID: id, Err: err}
				return
			}
			results[i] = artifacts
		}(i, id)
	}
	wg.Wait()

	merged := make(Artifacts)
	var failed []*TemplateError
	for i := range r.targets {
		if failures[i] != nil {
			r.logger.Warn("Target rendering failed",
				"target", failures[i].TargetID,
				"error", failures[i].Err)
			failed = append(failed, failures[i])
			continue
		}
		for path, content := range results[i] {
			merged[path] = content
		}
	}

	return merged, failed
}

// RenderTarget renders one target descriptor against the view model.
// File-shaped targets yield exactly one artifact; directory-shaped
// targets yield zero or more, one per resolved descriptor. activeTargets
// is the full expanded target list, consumed by the manifest template.
func RenderTarget(desc target.Descriptor, vm *assemble.ViewModel, activeTargets []string) (Artifacts, error) {
	switch desc.Template {
	case target.TemplateGuide:
		return singleFile(desc.OutputPath, buildGuide(vm)), nil
	case target.TemplateRules:
		return singleFile(desc.OutputPath, buildRules(vm)), nil
	case target.TemplateSettings:
		content, err := buildSettings(vm)
		if err != nil {
			return nil, err
		}
		return Artifacts{desc.OutputPath: content}, nil
	case target.TemplateAgents:
		return buildAgentFiles(desc.OutputPath, vm), nil
	case target.TemplateManifest:
		content, err := buildManifest(vm, activeTargets)
		if err != nil {
			return nil, err
		}
		return Artifacts{desc.OutputPath: content}, nil
	default:
		return nil, fmt.Errorf("no template registered for %q", desc.Template)
	}
}

// singleFile wraps one rendered document as an artifact map.
func singleFile(path, content string) Artifacts {
	return Artifacts{path: []byte(content)}
}
