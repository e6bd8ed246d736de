package analyze

import (
	"bytes"
	"context"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"observable-generator/internal/common"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// scanMode is used to list package files before type checking.
const scanMode = packages.NeedName | packages.NeedFiles

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	Dir             string   // Working directory for pattern resolution
	RuntimePath     string   // Import path of the runtime package
	GeneratedSuffix string   // Suffix of generated files, e.g. "_observable.go"
	BuildTags       []string // Extra build tags
	Tests           bool     // Include test files
	Env             []string // Environment for the build system, nil for os.Environ
}

// Loader loads Go packages into a Program.
type Loader struct {
	config LoaderConfig
	logger *zap.Logger
}

// NewLoader creates a new Loader. A nil logger disables logging.
func NewLoader(config LoaderConfig, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Loader{
		config: config,
		logger: logger.Named("loader"),
	}
}

// Load loads the packages matching patterns and the runtime package.
// Type errors located in files previously written by the generator are
// tolerated, since those files are about to be replaced.
func (l *Loader) Load(ctx context.Context, patterns ...string) (*Program, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	roots, generated, err := l.listGenerated(ctx, patterns)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	cfg := l.packagesConfig(ctx, LoadMode)
	cfg.Fset = fset

	all := append(slices.Clone(patterns), l.config.RuntimePath)
	l.logger.Debug("loading packages", zap.Strings("patterns", all))

	pkgs, err := packages.Load(cfg, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if pkg.PkgPath == l.config.RuntimePath && !roots[pkg.PkgPath] {
				return nil, fmt.Errorf("%w: %s: %v", ErrMissingWellKnown, l.config.RuntimePath, e)
			}
			if e.Kind == packages.TypeError && inFiles(e.Pos, generated) {
				l.logger.Debug("ignoring error in generated file", zap.String("error", e.Error()))
				continue
			}
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	prog := &Program{Fset: fset, Generated: generated}

	for _, pkg := range selectVariants(pkgs) {
		prog.Packages = append(prog.Packages, &Package{
			Path:      pkg.PkgPath,
			Name:      pkg.Name,
			Dir:       packageDir(pkg),
			Files:     pkg.Syntax,
			FileNames: pkg.CompiledGoFiles,
			Types:     pkg.Types,
			Info:      pkg.TypesInfo,
			Root:      roots[pkg.PkgPath],
		})
	}

	l.logger.Info("loaded packages",
		zap.Int("packages", len(prog.Packages)),
		zap.Int("roots", len(roots)),
		zap.Strings("generated", prog.Generated))

	return prog, nil
}

// listGenerated lists the packages matching patterns and finds the files
// previously written by the generator. It returns the root package paths and
// the sorted generated file names.
func (l *Loader) listGenerated(ctx context.Context, patterns []string) (map[string]bool, []string, error) {
	pkgs, err := packages.Load(l.packagesConfig(ctx, scanMode), patterns...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list packages: %w", err)
	}

	roots := make(map[string]bool, len(pkgs))
	var generated []string

	for _, pkg := range pkgs {
		roots[pkg.PkgPath] = true

		for _, file := range pkg.GoFiles {
			if !l.hasGeneratedSuffix(file) {
				continue
			}

			ok, err := IsGeneratedFile(file)
			if err != nil {
				return nil, nil, err
			}
			if ok && !slices.Contains(generated, file) {
				generated = append(generated, file)
			}
		}
	}
	slices.Sort(generated)

	return roots, generated, nil
}

func (l *Loader) hasGeneratedSuffix(file string) bool {
	suffix := l.config.GeneratedSuffix
	if suffix == "" {
		return false
	}

	return strings.HasSuffix(file, suffix) || strings.HasSuffix(file, TestFileSuffix(suffix))
}

func (l *Loader) packagesConfig(ctx context.Context, mode packages.LoadMode) *packages.Config {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    mode,
		Dir:     l.config.Dir,
		Tests:   l.config.Tests,
		Env:     l.config.Env,
	}
	if len(l.config.BuildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(l.config.BuildTags, ",")}
	}

	return cfg
}

// IsGeneratedFile reports whether the file at path starts with the
// generator's header.
func IsGeneratedFile(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return IsGeneratedContent(content), nil
}

// IsGeneratedContent reports whether content starts with the generator's
// header.
func IsGeneratedContent(content []byte) bool {
	return bytes.HasPrefix(content, []byte(common.GeneratedHeader))
}

// TestFileSuffix returns the generated file suffix used for types declared in
// _test.go files.
func TestFileSuffix(suffix string) string {
	return strings.TrimSuffix(suffix, ".go") + "_test.go"
}

// selectVariants drops test binaries and keeps one variant per package path.
// With tests enabled, the test variant of a package contains every file of
// the plain variant and is preferred.
func selectVariants(pkgs []*packages.Package) []*packages.Package {
	index := make(map[string]int, len(pkgs))
	var out []*packages.Package

	for _, pkg := range pkgs {
		if strings.HasSuffix(pkg.ID, ".test") {
			continue
		}

		i, ok := index[pkg.PkgPath]
		if !ok {
			index[pkg.PkgPath] = len(out)
			out = append(out, pkg)
			continue
		}
		if len(pkg.CompiledGoFiles) > len(out[i].CompiledGoFiles) {
			out[i] = pkg
		}
	}

	return out
}

// inFiles reports whether an error position of the form "file:line:col"
// lies in one of files.
func inFiles(pos string, files []string) bool {
	for _, file := range files {
		if strings.HasPrefix(pos, file+":") {
			return true
		}
	}

	return false
}

func packageDir(pkg *packages.Package) string {
	for _, files := range [][]string{pkg.GoFiles, pkg.CompiledGoFiles, pkg.OtherFiles} {
		if len(files) > 0 {
			return filepath.Dir(files[0])
		}
	}

	return ""
}
