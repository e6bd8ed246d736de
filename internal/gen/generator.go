package gen

import (
	"cmp"
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"observable-generator/internal/analyze"
	"observable-generator/internal/common"
	"observable-generator/internal/plan"
)

// DefaultSuffix is appended to the snake_case type name to form file names.
const DefaultSuffix = "_observable.go"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Suffix is the generated file name suffix.
	Suffix string
	// Workers limits the number of files rendered concurrently (0 = GOMAXPROCS).
	Workers int
	// DebugDir receives unformatted sources when formatting fails.
	DebugDir string
	// Document controls document construction.
	Document DocumentOptions
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Suffix: DefaultSuffix,
	}
}

// Generator generates Go code from an ObservablePlan.
type Generator struct {
	config GeneratorConfig
	logger *zap.Logger
	// newRenderer returns the renderer for one file.
	newRenderer func(filename string) Renderer
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig, logger *zap.Logger) *Generator {
	if config.Suffix == "" {
		config.Suffix = DefaultSuffix
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Generator{
		config: config,
		logger: logger.Named("gen"),
	}
	g.newRenderer = func(filename string) Renderer {
		return &GoRenderer{DebugDir: g.config.DebugDir, DebugName: filename}
	}

	return g
}

// WithRenderer returns a copy of g that renders every file with r.
func (g *Generator) WithRenderer(r Renderer) *Generator {
	clone := *g
	clone.newRenderer = func(string) Renderer { return r }

	return &clone
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "person_observable.go").
	Filename string
	// Dir is the directory of the package declaring the type.
	Dir string
	// PkgPath is the import path of that package.
	PkgPath string
	// TypeName is the observable type the file belongs to.
	TypeName string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the file path.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generate renders one file per type with at least one property. Files are
// returned in plan order and their content does not depend on scheduling.
func (g *Generator) Generate(ctx context.Context, p *plan.ObservablePlan) ([]GeneratedFile, error) {
	types := p.Generatable()
	names := g.fileNames(types)
	files := make([]GeneratedFile, len(types))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers())

	for i := range types {
		tp := &types[i]

		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			content, err := g.render(tp, p.WellKnown, names[i])
			if err != nil {
				return fmt.Errorf("generating %s: %w", tp.Candidate.ID, err)
			}

			files[i] = GeneratedFile{
				Filename: names[i],
				Dir:      tp.Candidate.Package.Dir,
				PkgPath:  tp.Candidate.ID.PkgPath,
				TypeName: tp.Candidate.ID.Name,
				Content:  content,
			}

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g.logger.Info("generated files", zap.Int("files", len(files)))

	return files, nil
}

func (g *Generator) render(tp *plan.TypePlan, wk *analyze.WellKnown, filename string) ([]byte, error) {
	doc, err := BuildDocument(tp, wk, g.config.Document)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("rendering",
		zap.String("type", tp.Candidate.ID.String()),
		zap.String("file", filename),
		zap.Int("properties", len(doc.Properties)),
		zap.Int("members", len(doc.Members)))

	return g.newRenderer(filename).Render(doc)
}

func (g *Generator) workers() int {
	if g.config.Workers > 0 {
		return g.config.Workers
	}

	return runtime.GOMAXPROCS(0)
}

// fileNames assigns a file name to every type. Names are unique per
// directory, ignoring case. The snake_case name is preferred, then the exact
// type name, then a numbered snake_case name. Colliding types are served in
// order of type name, so the result does not depend on plan order.
func (g *Generator) fileNames(types []plan.TypePlan) []string {
	names := make([]string, len(types))
	used := make(map[string]bool, len(types))

	order := make([]int, len(types))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		x, y := types[a].Candidate, types[b].Candidate

		return cmp.Or(
			strings.Compare(x.Package.Dir, y.Package.Dir),
			strings.Compare(x.ID.Name, y.ID.Name),
			strings.Compare(x.ID.PkgPath, y.ID.PkgPath),
		)
	})

	for _, i := range order {
		ct := types[i].Candidate

		suffix := g.config.Suffix
		if strings.HasSuffix(ct.FileName, "_test.go") {
			suffix = analyze.TestFileSuffix(suffix)
		}

		snake := common.SnakeCase(ct.ID.Name)
		candidate := func(n int) string {
			switch n {
			case 0:
				return snake + suffix
			case 1:
				return ct.ID.Name + suffix
			default:
				return snake + "_" + strconv.Itoa(n) + suffix
			}
		}

		for n := 0; ; n++ {
			name := candidate(n)

			key := strings.ToLower(filepath.Join(ct.Package.Dir, name))
			if !used[key] {
				used[key] = true
				names[i] = name

				break
			}
		}
	}

	return names
}
