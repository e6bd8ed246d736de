// Package analyzetest type-checks in-memory Go sources into an
// analyze.Program for tests.
package analyzetest

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"testing"

	"github.com/stretchr/testify/require"

	"observable-generator/internal/analyze"
)

// RuntimePath is the import path of the runtime package.
const RuntimePath = "observable-generator/observe"

// RuntimeSource declares the runtime identities the generator binds to.
const RuntimeSource = `package observe

type Object struct{}

type PropertyChangedEventArgs struct{ PropertyName string }

type PropertyChangingEventArgs struct{ PropertyName string }

type PropertyChangedHandler func(sender any, e PropertyChangedEventArgs)

type PropertyChangingHandler func(sender any, e PropertyChangingEventArgs)

type PropertyChangedNotifier interface {
	OnPropertyChanged(h PropertyChangedHandler) (cancel func())
}

type PropertyChangingNotifier interface {
	OnPropertyChanging(h PropertyChangingHandler) (cancel func())
}

type PropertyChanged struct{ handlers []PropertyChangedHandler }

func (e *PropertyChanged) OnPropertyChanged(h PropertyChangedHandler) (cancel func()) {
	e.handlers = append(e.handlers, h)
	return func() {}
}

func (e *PropertyChanged) Raise(sender any, name string) {}

type PropertyChanging struct{ handlers []PropertyChangingHandler }

func (e *PropertyChanging) OnPropertyChanging(h PropertyChangingHandler) (cancel func()) {
	e.handlers = append(e.handlers, h)
	return func() {}
}

func (e *PropertyChanging) Raise(sender any, name string) {}
`

// Package is one in-memory package.
type Package struct {
	Path  string
	Files []File
}

// File is one in-memory source file.
type File struct {
	Name   string
	Source string
}

// Dir returns the virtual directory of the package with the given path.
func Dir(pkgPath string) string {
	return path.Join("/analyzetest", pkgPath)
}

// Program type-checks pkgs and returns them as root packages. The runtime
// package is added as a non-root package unless pkgs provide it.
func Program(t testing.TB, pkgs ...Package) *analyze.Program {
	t.Helper()

	prog, err := Build(pkgs...)
	require.NoError(t, err)

	return prog
}

// Single type-checks one file as package "example.com/p" and returns the
// program and the package.
func Single(t testing.TB, src string) (*analyze.Program, *analyze.Package) {
	t.Helper()

	prog := Program(t, Package{
		Path:  "example.com/p",
		Files: []File{{Name: "p.go", Source: src}},
	})

	return prog, prog.Lookup("example.com/p")
}

// Build is Program without a testing.TB.
func Build(pkgs ...Package) (*analyze.Program, error) {
	b := &builder{
		fset:     token.NewFileSet(),
		srcs:     make(map[string]Package),
		done:     make(map[string]*analyze.Package),
		checking: make(map[string]bool),
	}
	b.fallback = importer.ForCompiler(b.fset, "source", nil)

	b.srcs[RuntimePath] = Package{Path: RuntimePath, Files: []File{{Name: "observe.go", Source: RuntimeSource}}}
	for _, pkg := range pkgs {
		b.srcs[pkg.Path] = pkg
	}

	prog := &analyze.Program{Fset: b.fset}

	for _, pkg := range pkgs {
		checked, err := b.check(pkg.Path)
		if err != nil {
			return nil, err
		}
		checked.Root = true
	}

	if _, err := b.check(RuntimePath); err != nil {
		return nil, err
	}

	for _, pkg := range pkgs {
		prog.Packages = append(prog.Packages, b.done[pkg.Path])
	}
	if !b.done[RuntimePath].Root {
		prog.Packages = append(prog.Packages, b.done[RuntimePath])
	}

	return prog, nil
}

type builder struct {
	fset     *token.FileSet
	srcs     map[string]Package
	done     map[string]*analyze.Package
	checking map[string]bool
	fallback types.Importer
}

// Import implements types.Importer.
func (b *builder) Import(pkgPath string) (*types.Package, error) {
	if _, ok := b.srcs[pkgPath]; ok {
		pkg, err := b.check(pkgPath)
		if err != nil {
			return nil, err
		}

		return pkg.Types, nil
	}

	return b.fallback.Import(pkgPath)
}

func (b *builder) check(pkgPath string) (*analyze.Package, error) {
	if pkg, ok := b.done[pkgPath]; ok {
		return pkg, nil
	}
	if b.checking[pkgPath] {
		return nil, fmt.Errorf("import cycle through %s", pkgPath)
	}
	b.checking[pkgPath] = true

	src := b.srcs[pkgPath]
	dir := Dir(pkgPath)

	files := make([]*ast.File, 0, len(src.Files))
	names := make([]string, 0, len(src.Files))

	for _, f := range src.Files {
		name := path.Join(dir, f.Name)

		file, err := parser.ParseFile(b.fset, name, f.Source, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}

		files = append(files, file)
		names = append(names, name)
	}

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
	}

	conf := types.Config{Importer: b}

	tpkg, err := conf.Check(pkgPath, b.fset, files, info)
	if err != nil {
		return nil, fmt.Errorf("failed to type-check %s: %w", pkgPath, err)
	}

	pkg := &analyze.Package{
		Path:      pkgPath,
		Name:      tpkg.Name(),
		Dir:       dir,
		Files:     files,
		FileNames: names,
		Types:     tpkg,
		Info:      info,
	}
	b.done[pkgPath] = pkg

	return pkg, nil
}
