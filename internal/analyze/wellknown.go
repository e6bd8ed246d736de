package analyze

import (
	"errors"
	"fmt"
	"go/types"
)

// ErrMissingWellKnown is returned when the runtime package or one of its
// declarations cannot be found in the loaded program.
var ErrMissingWellKnown = errors.New("missing well-known declaration")

// Names of the runtime declarations the generator binds to.
const (
	MarkerName           = "Object"
	ChangedName          = "PropertyChanged"
	ChangingName         = "PropertyChanging"
	ChangedNotifierName  = "PropertyChangedNotifier"
	ChangingNotifierName = "PropertyChangingNotifier"
)

// WellKnown holds the resolved runtime identities. All comparisons against
// user code are by object identity.
type WellKnown struct {
	Package          *types.Package
	Marker           *types.TypeName
	Changed          *types.TypeName
	Changing         *types.TypeName
	ChangedNotifier  *types.TypeName
	ChangingNotifier *types.TypeName
}

// ResolveWellKnown finds the runtime package in prog and resolves its
// declarations.
func ResolveWellKnown(prog *Program, runtimePath string) (*WellKnown, error) {
	pkg := findTypesPackage(prog, runtimePath)
	if pkg == nil {
		return nil, fmt.Errorf("%w: package %s not loaded", ErrMissingWellKnown, runtimePath)
	}

	wk := &WellKnown{Package: pkg}

	targets := []struct {
		name  string
		dst   **types.TypeName
		iface bool
	}{
		{MarkerName, &wk.Marker, false},
		{ChangedName, &wk.Changed, false},
		{ChangingName, &wk.Changing, false},
		{ChangedNotifierName, &wk.ChangedNotifier, true},
		{ChangingNotifierName, &wk.ChangingNotifier, true},
	}

	for _, target := range targets {
		obj, err := lookupTypeName(pkg, target.name, target.iface)
		if err != nil {
			return nil, err
		}
		*target.dst = obj
	}

	return wk, nil
}

func lookupTypeName(pkg *types.Package, name string, wantInterface bool) (*types.TypeName, error) {
	obj, ok := pkg.Scope().Lookup(name).(*types.TypeName)
	if !ok || obj.IsAlias() {
		return nil, fmt.Errorf("%w: %s.%s", ErrMissingWellKnown, pkg.Path(), name)
	}

	_, isInterface := obj.Type().Underlying().(*types.Interface)
	_, isStruct := obj.Type().Underlying().(*types.Struct)
	if (wantInterface && !isInterface) || (!wantInterface && !isStruct) {
		return nil, fmt.Errorf("%w: %s.%s has unexpected kind %s",
			ErrMissingWellKnown, pkg.Path(), name, obj.Type().Underlying())
	}

	return obj, nil
}

// findTypesPackage looks for path among the loaded packages and then among
// their transitive imports.
func findTypesPackage(prog *Program, path string) *types.Package {
	if pkg := prog.Lookup(path); pkg != nil && pkg.Types != nil {
		return pkg.Types
	}

	seen := make(map[*types.Package]bool)

	var walk func(pkgs []*types.Package) *types.Package
	walk = func(pkgs []*types.Package) *types.Package {
		for _, p := range pkgs {
			if p == nil || seen[p] {
				continue
			}
			seen[p] = true

			if p.Path() == path {
				return p
			}
			if found := walk(p.Imports()); found != nil {
				return found
			}
		}

		return nil
	}

	roots := make([]*types.Package, 0, len(prog.Packages))
	for _, pkg := range prog.Packages {
		roots = append(roots, pkg.Types)
	}

	return walk(roots)
}
