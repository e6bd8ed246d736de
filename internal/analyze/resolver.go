package analyze

import (
	"go/ast"
	"go/token"
	"go/types"

	"observable-generator/internal/common"
)

// Resolver binds annotated declarations to their type-checked objects and
// confirms which carry the marker.
type Resolver struct {
	wk *WellKnown
}

// NewResolver creates a Resolver checking annotations against wk.Marker.
func NewResolver(wk *WellKnown) *Resolver {
	return &Resolver{wk: wk}
}

// ResolvePackage scans pkg and resolves every marked declaration, in source
// order.
func (r *Resolver) ResolvePackage(pkg *Package) []CandidateType {
	var out []CandidateType

	for _, decl := range Scan(pkg) {
		if ct, ok := r.Resolve(pkg, decl); ok {
			out = append(out, ct)
		}
	}

	return out
}

// Resolve binds decl to its *types.TypeName. It reports false when no
// annotation on decl resolves to the marker type.
func (r *Resolver) Resolve(pkg *Package, decl CandidateDecl) (CandidateType, bool) {
	obj, ok := pkg.Info.Defs[decl.Spec.Name].(*types.TypeName)
	if !ok {
		return CandidateType{}, false
	}

	var markers []Annotation
	for _, ann := range decl.Annotations {
		if r.lookupAnnotation(pkg, decl.File, ann) == r.wk.Marker {
			markers = append(markers, ann)
		}
	}

	// A repeated marker is redundant; the first one locates diagnostics.
	marker, ok := common.First(markers)
	if !ok {
		return CandidateType{}, false
	}
	markerPos := marker.Pos

	ct := CandidateType{
		ID:              TypeID{PkgPath: pkg.Path, Name: obj.Name()},
		Obj:             obj,
		Package:         pkg,
		DisplayName:     DisplayName(pkg.Path, decl.Enclosing, obj.Name()),
		MarkerPos:       markerPos,
		FileName:        decl.FileName,
		BuildConstraint: BuildConstraint(decl.File, decl.FileName),
		Nested:          obj.Parent() != obj.Pkg().Scope(),
		Alias:           obj.IsAlias() || decl.Spec.Assign.IsValid(),
	}

	if ct.Nested || ct.Alias {
		return ct, true
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return ct, true
	}

	for i := 0; i < named.TypeParams().Len(); i++ {
		ct.TypeParams = append(ct.TypeParams, named.TypeParams().At(i).Obj().Name())
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return ct, true
	}

	ct.Struct = st
	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)
		ct.Fields = append(ct.Fields, FieldMember{
			Name:     field.Name(),
			Type:     field.Type(),
			Embedded: field.Embedded(),
			Index:    i,
			Var:      field,
			Pos:      field.Pos(),
		})
	}

	return ct, true
}

// lookupAnnotation returns the object an annotation names, or nil.
//
// A qualifier is looked up in the file scope first, so an import with the
// same local name as the runtime package takes precedence. Otherwise a
// qualifier equal to the runtime package name refers to the runtime package.
func (r *Resolver) lookupAnnotation(pkg *Package, file *ast.File, ann Annotation) types.Object {
	scope := pkg.Types.Scope()
	if fileScope := pkg.Info.Scopes[file]; fileScope != nil {
		scope = fileScope
	}

	if ann.Qualifier == "" {
		_, obj := scope.LookupParent(ann.Name, token.NoPos)
		return obj
	}

	if _, obj := scope.LookupParent(ann.Qualifier, token.NoPos); obj != nil {
		pkgName, ok := obj.(*types.PkgName)
		if !ok {
			return nil
		}

		return pkgName.Imported().Scope().Lookup(ann.Name)
	}

	if ann.Qualifier == r.wk.Package.Name() {
		return r.wk.Package.Scope().Lookup(ann.Name)
	}

	return nil
}
