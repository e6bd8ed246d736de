package gen

import (
	"go/types"
	"slices"
	"strconv"
	"strings"

	"observable-generator/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string // Empty when the local name is the conventional import name
	Path  string
}

// importSet assigns collision-free local names to the packages a generated
// file refers to.
type importSet struct {
	self     *types.Package
	names    map[string]string // Path to local name
	taken    map[string]bool   // Local names in use
	packages map[string]string // Path to package name
}

// newImportSet creates an importSet for a file in package self. Reserved
// names are never used as import names.
func newImportSet(self *types.Package, reserved ...string) *importSet {
	s := &importSet{
		self:     self,
		names:    make(map[string]string),
		taken:    make(map[string]bool),
		packages: make(map[string]string),
	}

	for _, name := range reserved {
		s.taken[name] = true
	}

	if self != nil {
		for _, name := range self.Scope().Names() {
			s.taken[name] = true
		}
	}

	return s
}

// add returns the local name for the package, importing it on first use.
func (s *importSet) add(pkgPath, pkgName string) string {
	if name, ok := s.names[pkgPath]; ok {
		return name
	}

	name := pkgName
	for i := 2; s.taken[name]; i++ {
		name = pkgName + strconv.Itoa(i)
	}

	s.names[pkgPath] = name
	s.packages[pkgPath] = pkgName
	s.taken[name] = true

	return name
}

// qualifier is a types.Qualifier that imports every foreign package.
func (s *importSet) qualifier(pkg *types.Package) string {
	if pkg == nil || (s.self != nil && pkg.Path() == s.self.Path()) {
		return ""
	}

	return s.add(pkg.Path(), pkg.Name())
}

// typeString renders t as it is written in the generated file.
func (s *importSet) typeString(t types.Type) string {
	return types.TypeString(t, s.qualifier)
}

// isTaken reports whether name is reserved or used by an import.
func (s *importSet) isTaken(name string) bool {
	return s.taken[name]
}

// specs returns the imports sorted by path.
func (s *importSet) specs() []importSpec {
	specs := make([]importSpec, 0, len(s.names))

	for pkgPath, name := range s.names {
		spec := importSpec{Path: pkgPath}
		if name != s.packages[pkgPath] || name != common.ImportName(pkgPath) {
			spec.Alias = name
		}
		specs = append(specs, spec)
	}

	slices.SortFunc(specs, func(a, b importSpec) int {
		return strings.Compare(a.Path, b.Path)
	})

	return specs
}
