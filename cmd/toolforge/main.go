// Package main provides the toolforge binary entry point.
// Toolforge generates AI assistant configuration artifacts from a
// toolkit of reusable guidance modules.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/forgeworks/toolforge/config"
	"github.com/forgeworks/toolforge/generator"
	"github.com/forgeworks/toolforge/project"
	"github.com/forgeworks/toolforge/target"
	"github.com/forgeworks/toolforge/toolkit"
	"github.com/forgeworks/toolforge/validate"
	"github.com/forgeworks/toolforge/watcher"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "toolforge"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type runFlags struct {
	specPath    string
	toolkitRoot string
	outputDir   string
	logLevel    string
	watch       bool
}

func rootCmd() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "toolforge",
		Short: "AI assistant configuration generator",
		Long: `Toolforge turns a declarative project spec and a toolkit of reusable
guidance modules into the configuration files AI coding assistants read.

It provides:
- Guide generation (CLAUDE.md, AGENTS.md, Cursor/Copilot/Windsurf rules)
- Settings generation with permission overrides (.claude/settings.json)
- Per-agent definition files (.claude/agents/)
- A machine-readable lockfile of the resolved module set

Each target renders independently; one broken target never blocks the rest.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.specPath, "spec", "s", "project.yaml", "Project spec file (YAML)")
	cmd.PersistentFlags().StringVar(&flags.toolkitRoot, "toolkit", "", "Toolkit store directory (overrides config)")
	cmd.PersistentFlags().StringVarP(&flags.outputDir, "output", "o", "", "Output directory (overrides config)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate artifacts for every target in the spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), flags)
		},
	}
	generateCmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "Regenerate when the toolkit or spec changes")
	cmd.AddCommand(generateCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the spec without writing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(flags)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "targets",
		Short: "List the registered output targets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, id := range target.IDs() {
				desc, _ := target.Lookup(id)
				fmt.Printf("%-24s %-10s %s\n", id, desc.Format, desc.OutputPath)
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// setup loads layered config, applies flag overrides, and configures
// the default logger.
func setup(flags *runFlags) (*config.Config, *slog.Logger, error) {
	cfg, err := config.NewLoader(nil).Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if flags.toolkitRoot != "" {
		cfg.Toolkit.Root = flags.toolkitRoot
	}
	if flags.outputDir != "" {
		cfg.Output.Dir = flags.outputDir
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}

	level := slog.LevelInfo
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return cfg, logger, nil
}

func runGenerate(ctx context.Context, flags *runFlags) error {
	printBanner()

	cfg, logger, err := setup(flags)
	if err != nil {
		return err
	}

	spec, err := project.LoadFromFile(flags.specPath)
	if err != nil {
		return fmt.Errorf("load spec: %w", err)
	}

	gen := generator.New(generator.Options{
		ToolkitRoot: cfg.Toolkit.Root,
		OutputDir:   cfg.Output.Dir,
		Logger:      logger,
		Registry:    prometheus.NewRegistry(),
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := generate(ctx, gen, spec); err != nil {
		return err
	}

	if !flags.watch {
		return nil
	}

	return watchLoop(ctx, gen, flags, cfg, logger)
}

// generate runs the pipeline once and prints the summary.
func generate(ctx context.Context, gen *generator.Generator, spec *project.Spec) error {
	summary, err := gen.Run(ctx, spec)
	printFindings(summary.ValidationErrors, summary.ValidationWarnings)
	if err != nil {
		return err
	}

	for _, msg := range summary.Errors {
		fmt.Fprintf(os.Stderr, "  error: %s\n", msg)
	}
	fmt.Printf("Generated %d file(s), %d unchanged, %d failed (targets: %s)\n",
		summary.Written, summary.Skipped, summary.Failed, strings.Join(summary.Targets, ", "))
	return nil
}

// watchLoop regenerates on every debounced toolkit or spec change until
// the context is cancelled.
func watchLoop(ctx context.Context, gen *generator.Generator, flags *runFlags, cfg *config.Config, logger *slog.Logger) error {
	absSpec, err := filepath.Abs(flags.specPath)
	if err != nil {
		return fmt.Errorf("resolve spec path: %w", err)
	}

	w, err := watcher.New([]string{cfg.Toolkit.Root, absSpec}, cfg.Watch.Debounce, logger)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Stop()

	fmt.Println("Watching for changes; press Ctrl-C to stop.")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events():
			if !ok {
				return nil
			}
			logger.Info("Change detected, regenerating", "path", event.Path, "op", event.Operation)

			// Reload the spec each time so spec edits take effect.
			spec, err := project.LoadFromFile(flags.specPath)
			if err != nil {
				logger.Error("Failed to reload spec", "error", err)
				continue
			}
			if err := generate(ctx, gen, spec); err != nil {
				logger.Error("Regeneration failed", "error", err)
			}
		}
	}
}

func runValidate(flags *runFlags) error {
	cfg, logger, err := setup(flags)
	if err != nil {
		return err
	}

	spec, err := project.LoadFromFile(flags.specPath)
	if err != nil {
		return fmt.Errorf("load spec: %w", err)
	}
	spec.Normalize()
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("invalid spec: %w", err)
	}

	store := toolkit.NewStore(cfg.Toolkit.Root, logger)
	result := validate.Run(spec, store, target.Expand(spec.Targets))
	printFindings(result.ErrorMessages(), result.WarningMessages())

	if !result.Valid() {
		return fmt.Errorf("validation failed with %d error(s)", len(result.Errors))
	}
	fmt.Println("Spec is valid.")
	return nil
}

func printFindings(errors, warnings []string) {
	for _, msg := range errors {
		fmt.Fprintf(os.Stderr, "  error: %s\n", msg)
	}
	for _, msg := range warnings {
		fmt.Fprintf(os.Stderr, "  warning: %s\n", msg)
	}
}

func printBanner() {
	fmt.Println("╔═══════════════════════════════════════════════╗")
	fmt.Println("║             Toolforge v" + Version + "                  ║")
	fmt.Println("║      AI Assistant Config Generator            ║")
	fmt.Println("╚═══════════════════════════════════════════════╝")
}
