package analyze

import (
	"strings"
)

// TypePath builds a readable display path for a declaration.
// Examples:
//   - "example/basic.Person" for a package-level type
//   - "example/basic.NewThing.local" for a type declared in NewThing
//   - "example/basic.(*Server).Run.state" for a type declared in a method
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root (usually a package path).
func NewTypePath(root string) *TypePath {
	if root == "" {
		return &TypePath{}
	}

	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// DisplayName returns the display name of a declaration named name in the
// package with path pkgPath, nested in the given enclosing functions.
func DisplayName(pkgPath string, enclosing []string, name string) string {
	path := NewTypePath(pkgPath)
	for _, fn := range enclosing {
		path = path.Field(fn)
	}

	return path.Field(name).String()
}
