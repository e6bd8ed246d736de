package analyze

import (
	"context"
	"go/types"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"observable-generator/internal/common"
)

const (
	runtimePath = "observable-generator/observe"
	basicPath   = "observable-generator/examples/basic"
)

func newTestLoader() *Loader {
	return NewLoader(LoaderConfig{
		RuntimePath:     runtimePath,
		GeneratedSuffix: "_observable.go",
	}, nil)
}

func TestLoader_Load(t *testing.T) {
	prog, err := newTestLoader().Load(context.Background(), basicPath)
	require.NoError(t, err)
	require.NotNil(t, prog)

	basic := prog.Lookup(basicPath)
	require.NotNil(t, basic)
	assert.True(t, basic.Root)
	assert.Equal(t, "basic", basic.Name)
	assert.Len(t, basic.FileNames, len(basic.Files))

	runtime := prog.Lookup(runtimePath)
	require.NotNil(t, runtime)
	assert.False(t, runtime.Root)

	assert.Equal(t, []*Package{basic}, prog.Roots())
	assert.Contains(t, prog.Generated, filepath.Join(basic.Dir, "person_observable.go"))
}

func TestLoader_GeneratedMembers(t *testing.T) {
	prog, err := newTestLoader().Load(context.Background(), basicPath)
	require.NoError(t, err)

	basic := prog.Lookup(basicPath)
	require.NotNil(t, basic)

	person := basic.Types.Scope().Lookup("Person")
	require.NotNil(t, person)

	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(person.Type()), false, basic.Types, "Name")
	require.NotNil(t, obj, "generated getter should be loaded")
	assert.True(t, prog.InGenerated(obj.Pos()))

	field, _, _ := types.LookupFieldOrMethod(person.Type(), false, basic.Types, "_name")
	require.NotNil(t, field)
	assert.False(t, prog.InGenerated(field.Pos()))
}

func TestLoader_MissingRuntime(t *testing.T) {
	loader := NewLoader(LoaderConfig{
		RuntimePath:     "observable-generator/does/not/exist",
		GeneratedSuffix: "_observable.go",
	}, nil)

	_, err := loader.Load(context.Background(), basicPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingWellKnown)
}

func TestIsGeneratedContent(t *testing.T) {
	assert.True(t, IsGeneratedContent([]byte(common.GeneratedHeader+"\n\npackage p\n")))
	assert.False(t, IsGeneratedContent([]byte("package p\n")))
	assert.False(t, IsGeneratedContent([]byte("// Code generated by stringer. DO NOT EDIT.\n\npackage p\n")))
}

func TestTestFileSuffix(t *testing.T) {
	assert.Equal(t, "_observable_test.go", TestFileSuffix("_observable.go"))
	assert.Equal(t, ".gen_test.go", TestFileSuffix(".gen.go"))
}

func TestInFiles(t *testing.T) {
	files := []string{"/src/p/person_observable.go"}

	assert.True(t, inFiles("/src/p/person_observable.go:12:3", files))
	assert.False(t, inFiles("/src/p/person.go:12:3", files))
	assert.False(t, inFiles("/src/p/person_observable.go.bak:1:1", files))
	assert.False(t, inFiles("-", nil))
}

func TestSelectVariants(t *testing.T) {
	plain := &packages.Package{ID: "p", PkgPath: "p", CompiledGoFiles: []string{"a.go"}}
	withTests := &packages.Package{ID: "p [p.test]", PkgPath: "p", CompiledGoFiles: []string{"a.go", "a_test.go"}}
	external := &packages.Package{ID: "p_test [p.test]", PkgPath: "p_test", CompiledGoFiles: []string{"b_test.go"}}
	binary := &packages.Package{ID: "p.test", PkgPath: "p.test", CompiledGoFiles: []string{"main.go"}}

	got := selectVariants([]*packages.Package{plain, withTests, external, binary})
	assert.Equal(t, []*packages.Package{withTests, external}, got)
}
