package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"observable-generator/internal/analyze"
	"observable-generator/internal/config"
	"observable-generator/internal/diagnostic"
	"observable-generator/internal/gen"
	"observable-generator/internal/logging"
	"observable-generator/internal/plan"
)

// loadConfig reads the config file and applies flag and environment
// overrides on top of it.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	path := v.GetString("config")
	if path == "" {
		found, err := config.Find(v.GetString("dir"))
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if v.IsSet("runtime") {
		cfg.RuntimePackage = v.GetString("runtime")
	}
	if v.IsSet("suffix") {
		cfg.FileSuffix = v.GetString("suffix")
	}
	if v.IsSet("tags") {
		cfg.BuildTags = v.GetStringSlice("tags")
	}
	if v.IsSet("tests") {
		cfg.Tests = v.GetBool("tests")
	}
	if v.IsSet("workers") {
		cfg.Workers = v.GetInt("workers")
	}
	if v.IsSet("warnings-as-errors") {
		cfg.WarningsAsErrors = v.GetBool("warnings-as-errors")
	}
	if v.IsSet("debug-dir") {
		cfg.DebugDir = v.GetString("debug-dir")
	}
	if v.IsSet("require-prefix") {
		requirePrefix := v.GetBool("require-prefix")
		cfg.RequirePrefix = &requirePrefix
	}
	if v.IsSet("report-skipped") {
		reportSkipped := v.GetBool("report-skipped")
		cfg.ReportSkippedFields = &reportSkipped
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// pipeline runs load, plan and generate for one command invocation.
type pipeline struct {
	cfg      *config.Config
	dir      string
	logger   *zap.Logger
	printer  *diagnostic.Printer
	reporter diagnostic.Reporter
}

// result holds everything a command needs after generation.
type result struct {
	prog  *analyze.Program
	plan  *plan.ObservablePlan
	files []gen.GeneratedFile
	stale []string
}

func newPipeline(v *viper.Viper, stderr io.Writer) (*pipeline, error) {
	cfg, err := loadConfig(v)
	if err != nil {
		return nil, err
	}

	dir, err := filepath.Abs(v.GetString("dir"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", v.GetString("dir"), err)
	}

	verbose := v.GetBool("verbose")
	printer := diagnostic.NewPrinter(stderr, dir, v.GetBool("no-color"))

	// Informational diagnostics are only shown in verbose mode.
	reporter := diagnostic.ReporterFunc(func(d diagnostic.Diagnostic) {
		if verbose || d.Severity != diagnostic.DiagnosticInfo {
			printer.Report(d)
		}
	})

	return &pipeline{
		cfg:      cfg,
		dir:      dir,
		logger:   logging.New(stderr, verbose),
		printer:  printer,
		reporter: reporter,
	}, nil
}

func (p *pipeline) run(ctx context.Context, patterns []string) (*result, error) {
	defer func() { _ = p.logger.Sync() }()

	loader := analyze.NewLoader(p.cfg.LoaderConfig(p.dir), p.logger)

	prog, err := loader.Load(ctx, patterns...)
	if err != nil {
		return nil, err
	}

	comp := analyze.NewCompilation(prog, p.cfg.RuntimePackage)

	observablePlan, err := plan.NewPlanner(comp, p.cfg.PlanConfig(), p.reporter, p.logger).Plan(ctx)
	if err != nil {
		return nil, err
	}

	files, err := gen.NewGenerator(p.cfg.GeneratorConfig(), p.logger).Generate(ctx, observablePlan)
	if err != nil {
		return nil, err
	}

	return &result{
		prog:  prog,
		plan:  observablePlan,
		files: files,
		stale: gen.StaleFiles(prog, files),
	}, nil
}

// failed reports whether planning produced error diagnostics. They were
// already printed, so nothing is written.
func (r *result) failed(stderr io.Writer) bool {
	if !r.plan.Diagnostics.HasErrors() {
		return false
	}

	fmt.Fprintf(stderr, "%d errors reported, no files changed\n", len(r.plan.Diagnostics.Errors))

	return true
}

// rel returns path relative to the pipeline directory when possible.
func (p *pipeline) rel(path string) string {
	if rel, err := filepath.Rel(p.dir, path); err == nil && !filepath.IsAbs(rel) && rel != "" && rel[0] != '.' {
		return rel
	}

	return path
}
