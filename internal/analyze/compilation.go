package analyze

import (
	"sync"
)

// Compilation is a loaded Program together with the runtime identities it is
// checked against. The identities are resolved once, on first use.
type Compilation struct {
	Program     *Program
	RuntimePath string

	wellKnown func() (*WellKnown, error)
}

// NewCompilation creates a Compilation for prog.
func NewCompilation(prog *Program, runtimePath string) *Compilation {
	c := &Compilation{
		Program:     prog,
		RuntimePath: runtimePath,
	}
	c.wellKnown = sync.OnceValues(func() (*WellKnown, error) {
		return ResolveWellKnown(prog, runtimePath)
	})

	return c
}

// WellKnown returns the runtime identities. It is safe for concurrent use
// and always returns the same result.
func (c *Compilation) WellKnown() (*WellKnown, error) {
	return c.wellKnown()
}
