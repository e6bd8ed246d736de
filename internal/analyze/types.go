package analyze

import (
	"go/ast"
	"go/token"
	"go/types"
	"slices"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "observable-generator/examples/basic"
	Name    string // e.g., "Person"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Program is an immutable snapshot of type-checked packages.
type Program struct {
	Fset     *token.FileSet
	Packages []*Package
	// Generated lists files previously written by the generator, sorted.
	Generated []string
}

// InGenerated reports whether pos lies in a file previously written by the
// generator.
func (p *Program) InGenerated(pos token.Pos) bool {
	if !pos.IsValid() || p.Fset == nil || len(p.Generated) == 0 {
		return false
	}

	_, found := slices.BinarySearch(p.Generated, p.Fset.Position(pos).Filename)

	return found
}

// Lookup returns the loaded package with the given import path, or nil.
func (p *Program) Lookup(path string) *Package {
	for _, pkg := range p.Packages {
		if pkg.Path == path {
			return pkg
		}
	}

	return nil
}

// Roots returns the packages the generator was asked to process.
func (p *Program) Roots() []*Package {
	var roots []*Package

	for _, pkg := range p.Packages {
		if pkg.Root {
			roots = append(roots, pkg)
		}
	}

	return roots
}

// Package holds one type-checked package.
type Package struct {
	Path      string      // Import path
	Name      string      // Package name
	Dir       string      // Directory generated files are written to
	Files     []*ast.File // Syntax, parallel to FileNames
	FileNames []string    // Absolute file names
	Types     *types.Package
	Info      *types.Info
	Root      bool // Matched by the requested patterns
}

// Annotation is a "// @qualifier.Name(args)" line in a doc comment.
type Annotation struct {
	Qualifier string    // Package qualifier, empty when unqualified
	Name      string    // Annotated type name
	Args      string    // Raw text between the parentheses
	Pos       token.Pos // Position of the '@'
}

// String returns the annotation as written, without arguments.
func (a Annotation) String() string {
	if a.Qualifier == "" {
		return "@" + a.Name
	}

	return "@" + a.Qualifier + "." + a.Name
}

// CandidateDecl is a type declaration carrying at least one annotation.
// Nothing about it has been checked semantically.
type CandidateDecl struct {
	File        *ast.File
	FileName    string
	Spec        *ast.TypeSpec
	Annotations []Annotation
	// Enclosing names the functions the declaration is nested in, outermost
	// first; empty for package-level declarations.
	Enclosing []string
}

// CandidateType is a declaration confirmed to carry the marker annotation.
type CandidateType struct {
	ID          TypeID
	Obj         *types.TypeName
	Package     *Package
	DisplayName string
	// MarkerPos is the position of the marker annotation.
	MarkerPos token.Pos
	// FileName is the file declaring the type.
	FileName string
	// BuildConstraint is the //go:build line generated files must carry to
	// build together with FileName, or "".
	BuildConstraint string
	// Nested is true for types declared inside a function body.
	Nested bool
	// Alias is true for alias declarations (type A = B).
	Alias bool
	// Struct is the underlying struct type, nil for non-struct types.
	Struct     *types.Struct
	TypeParams []string
	// Fields are the directly declared fields in declaration order. Only set
	// for package-level struct types.
	Fields []FieldMember
}

// Named returns the declared named type, or nil for aliases.
func (c *CandidateType) Named() *types.Named {
	if c.Alias {
		return nil
	}

	named, _ := c.Obj.Type().(*types.Named)

	return named
}

// FieldMember is a field declared directly in a candidate struct.
type FieldMember struct {
	Name     string
	Type     types.Type
	Embedded bool
	Index    int // Declaration order
	Var      *types.Var
	Pos      token.Pos
}
