package analyze_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"observable-generator/internal/analyze"
	"observable-generator/internal/analyze/analyzetest"
)

func resolve(t *testing.T, src string) []analyze.CandidateType {
	t.Helper()

	prog, pkg := analyzetest.Single(t, src)

	wk, err := analyze.NewCompilation(prog, analyzetest.RuntimePath).WellKnown()
	require.NoError(t, err)

	return analyze.NewResolver(wk).ResolvePackage(pkg)
}

func names(cts []analyze.CandidateType) []string {
	var out []string
	for _, ct := range cts {
		out = append(out, ct.ID.Name)
	}

	return out
}

func TestResolver_MarkerBinding(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []string
	}{
		{
			name: "qualifier without import",
			src: `package p

// @observe.Object
type Person struct{ _name string }
`,
			expected: []string{"Person"},
		},
		{
			name: "renamed import",
			src: `package p

import obs "observable-generator/observe"

var _ obs.Object

// @obs.Object
type Person struct{ _name string }
`,
			expected: []string{"Person"},
		},
		{
			name: "shadowing import",
			src: `package p

import observe "strings"

var _ = observe.ToUpper

// @observe.Object
type Person struct{ _name string }
`,
			expected: nil,
		},
		{
			name: "shadowing declaration",
			src: `package p

var observe = 1

// @observe.Object
type Person struct{ _name string }
`,
			expected: nil,
		},
		{
			name: "alias of marker",
			src: `package p

import "observable-generator/observe"

type Marker = observe.Object

// @Marker
type Person struct{ _name string }
`,
			expected: nil,
		},
		{
			name: "defined type over marker",
			src: `package p

import "observable-generator/observe"

type Marker observe.Object

// @Marker
type Person struct{ _name string }
`,
			expected: nil,
		},
		{
			name: "same name elsewhere",
			src: `package p

type Object struct{}

// @Object
type Person struct{ _name string }
`,
			expected: nil,
		},
		{
			name: "marker among other annotations",
			src: `package p

// Person is a contact.
//
// @json.Model
// @observe.Object(strict)
type Person struct{ _name string }
`,
			expected: []string{"Person"},
		},
		{
			name: "grouped declarations",
			src: `package p

type (
	// @observe.Object
	A struct{ _a int }

	B struct{ _b int }

	// @observe.Object
	C struct{ _c int }
)
`,
			expected: []string{"A", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, names(resolve(t, tt.src)))
		})
	}
}

func TestResolver_Fields(t *testing.T) {
	cts := resolve(t, `package p

import "observable-generator/observe"

// @observe.Object
type Person struct {
	observe.PropertyChanged
	_first, _last string
	_age          int
}
`)
	require.Len(t, cts, 1)

	ct := cts[0]
	assert.Equal(t, "example.com/p.Person", ct.DisplayName)
	assert.False(t, ct.Nested)
	assert.False(t, ct.Alias)
	require.NotNil(t, ct.Struct)
	require.NotNil(t, ct.Named())

	require.Len(t, ct.Fields, 4)
	assert.Equal(t, "PropertyChanged", ct.Fields[0].Name)
	assert.True(t, ct.Fields[0].Embedded)

	var fieldNames []string
	for i, f := range ct.Fields {
		assert.Equal(t, i, f.Index)
		fieldNames = append(fieldNames, f.Name)
	}
	assert.Equal(t, []string{"PropertyChanged", "_first", "_last", "_age"}, fieldNames)
}

func TestResolver_PromotedFieldsExcluded(t *testing.T) {
	cts := resolve(t, `package p

type Base struct{ _id int }

// @observe.Object
type Person struct {
	Base
	_name string
}
`)
	require.Len(t, cts, 1)
	require.Len(t, cts[0].Fields, 2)
	assert.Equal(t, "Base", cts[0].Fields[0].Name)
	assert.Equal(t, "_name", cts[0].Fields[1].Name)
}

func TestResolver_Nested(t *testing.T) {
	prog, pkg := analyzetest.Single(t, `package p

func Build() any {
	// @observe.Object
	type local struct{ _x int }

	return local{}
}
`)
	wk, err := analyze.NewCompilation(prog, analyzetest.RuntimePath).WellKnown()
	require.NoError(t, err)

	cts := analyze.NewResolver(wk).ResolvePackage(pkg)
	require.Len(t, cts, 1)

	ct := cts[0]
	assert.True(t, ct.Nested)
	assert.Nil(t, ct.Fields)
	assert.Equal(t, "example.com/p.Build.local", ct.DisplayName)

	pos := prog.Fset.Position(ct.MarkerPos)
	assert.Equal(t, 4, pos.Line)
	assert.Equal(t, 5, pos.Column)
}

func TestResolver_NestedInFuncLiteral(t *testing.T) {
	cts := resolve(t, `package p

var Build = func() any {
	// @observe.Object
	type local struct{ _x int }

	return local{}
}
`)
	require.Len(t, cts, 1)
	assert.True(t, cts[0].Nested)
	assert.Equal(t, "example.com/p.func.local", cts[0].DisplayName)
}

func TestResolver_NotStruct(t *testing.T) {
	cts := resolve(t, `package p

// @observe.Object
type Celsius float64

type base struct{ _x int }

// @observe.Object
type Alias = base
`)
	require.Len(t, cts, 2)

	assert.Nil(t, cts[0].Struct)
	assert.False(t, cts[0].Alias)

	assert.True(t, cts[1].Alias)
	assert.Nil(t, cts[1].Named())
}

func TestResolver_Generic(t *testing.T) {
	cts := resolve(t, `package p

// @observe.Object
type Pair[K comparable, V any] struct {
	_key   K
	_value V
}
`)
	require.Len(t, cts, 1)
	assert.Equal(t, []string{"K", "V"}, cts[0].TypeParams)
	assert.Len(t, cts[0].Fields, 2)
}

func TestResolver_MarkerPosition(t *testing.T) {
	prog, pkg := analyzetest.Single(t, `package p

// Person is a contact.
// @observe.Object
type Person struct{ _name string }
`)
	wk, err := analyze.NewCompilation(prog, analyzetest.RuntimePath).WellKnown()
	require.NoError(t, err)

	cts := analyze.NewResolver(wk).ResolvePackage(pkg)
	require.Len(t, cts, 1)

	pos := prog.Fset.Position(cts[0].MarkerPos)
	assert.Equal(t, 4, pos.Line)
	assert.Equal(t, 4, pos.Column)
	assert.Equal(t, analyzetest.Dir("example.com/p")+"/p.go", pos.Filename)
	assert.Equal(t, pos.Filename, cts[0].FileName)
}

func TestResolver_BuildConstraint(t *testing.T) {
	prog := analyzetest.Program(t, analyzetest.Package{
		Path: "example.com/p",
		Files: []analyzetest.File{
			{Name: "p.go", Source: `package p

// @observe.Object
type Person struct{ _name string }
`},
			{Name: "server_linux.go", Source: `//go:build !cgo

package p

// @observe.Object
type Server struct{ _addr string }
`},
		},
	})
	wk, err := analyze.NewCompilation(prog, analyzetest.RuntimePath).WellKnown()
	require.NoError(t, err)

	cts := analyze.NewResolver(wk).ResolvePackage(prog.Packages[0])
	require.Len(t, cts, 2)
	assert.Empty(t, cts[0].BuildConstraint)
	assert.Equal(t, "//go:build !cgo && linux", cts[1].BuildConstraint)
}
