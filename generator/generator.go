// Package generator orchestrates the full pipeline: load and resolve
// the selected toolkit descriptors, validate the configuration, render
// every requested target, and persist the artifacts. Nothing touches
// the output directory until validation has completed.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/forgeworks/toolforge/assemble"
	"github.com/forgeworks/toolforge/project"
	"github.com/forgeworks/toolforge/render"
	"github.com/forgeworks/toolforge/resolver"
	"github.com/forgeworks/toolforge/target"
	"github.com/forgeworks/toolforge/toolkit"
	"github.com/forgeworks/toolforge/validate"
	"github.com/forgeworks/toolforge/writer"
)

// ErrValidationFailed signals that the spec failed structural
// validation. The summary carries the individual findings.
var ErrValidationFailed = errors.New("validation failed")

// Options configures a generator.
type Options struct {
	// ToolkitRoot is the toolkit store directory.
	ToolkitRoot string

	// OutputDir is the destination root for generated artifacts.
	OutputDir string

	// Logger defaults to slog.Default when nil.
	Logger *slog.Logger

	// Registry receives pipeline metrics. Nil disables registration.
	Registry prometheus.Registerer
}

// Summary aggregates the outcome of one generation run.
type Summary struct {
	RunID              string
	Targets            []string
	Written            int
	Skipped            int
	Failed             int
	Errors             []string
	ValidationErrors   []string
	ValidationWarnings []string
}

// Generator runs the generation pipeline. One generator can serve many
// runs; each run gets its own descriptor cache and run ID.
type Generator struct {
	opts   Options
	logger *slog.Logger

	runsTotal    prometheus.Counter
	failedTotal  prometheus.Counter
	writtenTotal prometheus.Counter
}

// New creates a generator with the given options.
func New(opts Options) *Generator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g := &Generator{
		opts:   opts,
		logger: logger,
		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toolforge_runs_total",
			Help: "Total generation runs started.",
		}),
		failedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toolforge_runs_failed_total",
			Help: "Generation runs that ended in a fatal error.",
		}),
		writtenTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toolforge_artifacts_written_total",
			Help: "Artifact files written across all runs.",
		}),
	}

	if opts.Registry != nil {
		opts.Registry.MustRegister(g.runsTotal, g.failedTotal, g.writtenTotal)
	}

	return g
}

// Run executes the pipeline for one spec. The returned summary is
// non-nil even on failure so callers can report validation findings.
func (g *Generator) Run(ctx context.Context, spec *project.Spec) (*Summary, error) {
	summary := &Summary{RunID: uuid.NewString()}
	g.runsTotal.Inc()

	logger := g.logger.With("run_id", summary.RunID)
	logger.Info("Starting generation run", "project", spec.Project.Name, "toolkit", g.opts.ToolkitRoot)

	spec.Normalize()
	if err := spec.Validate(); err != nil {
		g.failedTotal.Inc()
		return summary, fmt.Errorf("invalid spec: %w", err)
	}

	summary.Targets = target.Expand(spec.Targets)

	store := toolkit.NewStore(g.opts.ToolkitRoot, logger)
	cache := toolkit.NewCache(store, g.opts.Registry)

	if err := ctx.Err(); err != nil {
		g.failedTotal.Inc()
		return summary, err
	}

	set, err := resolver.Resolve(cache, spec.Modules, spec.Agents)
	if err != nil {
		g.failedTotal.Inc()
		return summary, fmt.Errorf("resolve modules: %w", err)
	}

	result := validate.Run(spec, store, summary.Targets)
	summary.ValidationErrors = result.ErrorMessages()
	summary.ValidationWarnings = result.WarningMessages()
	for _, warning := range summary.ValidationWarnings {
		logger.Warn("Validation warning", "finding", warning)
	}
	if !result.Valid() {
		g.failedTotal.Inc()
		return summary, ErrValidationFailed
	}

	bundle, err := store.LoadFramework(spec.Framework.EnabledSegments())
	if err != nil {
		g.failedTotal.Inc()
		return summary, fmt.Errorf("load framework: %w", err)
	}

	vm := assemble.Build(spec, set, bundle, store.Root())

	if err := ctx.Err(); err != nil {
		g.failedTotal.Inc()
		return summary, err
	}

	artifacts, failures := render.NewRenderer(summary.Targets, logger).RenderAll(vm)
	for _, failure := range failures {
		summary.Failed++
		summary.Errors = append(summary.Errors, failure.Error())
	}

	stats := writer.New(g.opts.OutputDir, logger).Write(artifacts)
	summary.Written = stats.Written
	summary.Skipped = stats.Skipped
	summary.Failed += stats.Failed
	summary.Errors = append(summary.Errors, stats.Errors...)
	g.writtenTotal.Add(float64(stats.Written))

	logger.Info("Generation run complete",
		"written", summary.Written,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"cache_hits", cache.Hits(),
		"cache_misses", cache.Misses())

	return summary, nil
}
