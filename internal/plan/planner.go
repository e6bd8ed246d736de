package plan

import (
	"context"
	"fmt"
	"go/types"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"observable-generator/internal/analyze"
	"observable-generator/internal/diagnostic"
)

// Config holds configuration for the planning process.
type Config struct {
	// Naming controls the field to property name mapping.
	Naming NamingPolicy
	// ReportSkipped reports a diagnostic for every skipped field.
	ReportSkipped bool
	// Workers limits the number of types planned concurrently (0 = GOMAXPROCS).
	Workers int
	// WarningsAsErrors reports every warning with error severity.
	WarningsAsErrors bool
}

// DefaultConfig returns the default planning configuration.
func DefaultConfig() Config {
	return Config{
		Naming:        DefaultNamingPolicy(),
		ReportSkipped: true,
	}
}

// Planner turns the marked types of a Compilation into an ObservablePlan.
type Planner struct {
	comp     *analyze.Compilation
	config   Config
	reporter diagnostic.Reporter
	logger   *zap.Logger
}

// NewPlanner creates a new Planner. Diagnostics are forwarded to reporter in
// candidate order; a nil reporter or logger discards them.
func NewPlanner(
	comp *analyze.Compilation,
	config Config,
	reporter diagnostic.Reporter,
	logger *zap.Logger,
) *Planner {
	if reporter == nil {
		reporter = diagnostic.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Planner{
		comp:     comp,
		config:   config,
		reporter: reporter,
		logger:   logger.Named("plan"),
	}
}

// typeResult is the outcome of planning one candidate.
type typeResult struct {
	plan      *TypePlan
	rejection *Rejection
	diags     []diagnostic.Diagnostic
}

// Plan runs the planning pipeline. It fails only when the runtime identities
// cannot be resolved or ctx is cancelled; problems with individual types are
// reported as diagnostics.
func (p *Planner) Plan(ctx context.Context) (*ObservablePlan, error) {
	wk, err := p.comp.WellKnown()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve runtime declarations: %w", err)
	}

	resolver := analyze.NewResolver(wk)

	var candidates []analyze.CandidateType
	for _, pkg := range p.comp.Program.Roots() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidates = append(candidates, resolver.ResolvePackage(pkg)...)
	}

	p.logger.Debug("resolved candidates", zap.Int("candidates", len(candidates)))

	results := make([]typeResult, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())

	for i, ct := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = p.planType(ct, wk)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	plan := &ObservablePlan{
		WellKnown:   wk,
		Diagnostics: &diagnostic.Diagnostics{},
	}

	for _, res := range results {
		if res.plan != nil {
			plan.Types = append(plan.Types, *res.plan)
		}
		if res.rejection != nil {
			plan.Rejected = append(plan.Rejected, *res.rejection)
		}

		for _, d := range res.diags {
			if p.config.WarningsAsErrors && d.Severity == diagnostic.DiagnosticWarning {
				d.Severity = diagnostic.DiagnosticError
			}
			plan.Diagnostics.Report(d)
			p.reporter.Report(d)
		}
	}

	p.logger.Info("planned types",
		zap.Int("candidates", len(candidates)),
		zap.Int("validated", len(plan.Types)),
		zap.Int("generatable", len(plan.Generatable())),
		zap.Int("rejected", len(plan.Rejected)))

	return plan, nil
}

func (p *Planner) workers() int {
	if p.config.Workers > 0 {
		return p.config.Workers
	}

	return runtime.GOMAXPROCS(0)
}

// planType validates one candidate and evaluates its fields.
func (p *Planner) planType(ct analyze.CandidateType, wk *analyze.WellKnown) typeResult {
	fset := p.comp.Program.Fset

	switch {
	case ct.Nested:
		d := diagnostic.LocalType.New(fset.Position(ct.MarkerPos), ct.DisplayName)
		return typeResult{rejection: &Rejection{Candidate: ct, Diagnostic: d}, diags: []diagnostic.Diagnostic{d}}
	case ct.Alias || ct.Struct == nil:
		d := diagnostic.NotStruct.New(fset.Position(ct.MarkerPos), ct.DisplayName)
		return typeResult{rejection: &Rejection{Candidate: ct, Diagnostic: d}, diags: []diagnostic.Diagnostic{d}}
	}

	generated := func(obj types.Object) bool {
		return p.comp.Program.InGenerated(obj.Pos())
	}

	caps, clash := DetectCapabilities(ct, wk, generated)
	if clash != nil {
		d := diagnostic.MemberConflict.New(fset.Position(ct.MarkerPos),
			ct.DisplayName, clash.Kind, clash.Name, clash.Interface.Pkg().Name()+"."+clash.Interface.Name())
		return typeResult{rejection: &Rejection{Candidate: ct, Diagnostic: d}, diags: []diagnostic.Diagnostic{d}}
	}

	outcomes, props := NewEligibility(p.config.Naming, generated).Evaluate(ct)

	res := typeResult{
		plan: &TypePlan{
			Candidate:    ct,
			Capabilities: caps,
			Outcomes:     outcomes,
			Properties:   props,
		},
	}

	if !p.config.ReportSkipped {
		return res
	}

	for _, o := range outcomes {
		if !o.Skipped() {
			continue
		}

		desc := diagnostic.FieldSkipped
		if o.Reason.IsConflict() {
			desc = diagnostic.FieldConflict
		}
		res.diags = append(res.diags, desc.New(fset.Position(o.Field.Pos), ct.DisplayName, o.Field.Name, o.Explanation()))
	}

	return res
}
