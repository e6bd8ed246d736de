package diagnostic

import (
	"bytes"
	"go/token"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptor_NewSubstitutesArguments(t *testing.T) {
	pos := token.Position{Filename: "a/b.go", Line: 3, Column: 4}
	d := LocalType.New(pos, "example/basic.Outer.inner")

	assert.Equal(t, "OBS100", d.Code())
	assert.Equal(t, DiagnosticWarning, d.Severity)
	assert.Equal(t,
		"type example/basic.Outer.inner cannot be declared inside a function; @observe.Object requires a package-level type",
		d.Message())
	assert.Equal(t, "a/b.go:3:4: [OBS100] "+d.Message(), d.String())
}

func TestDiagnostic_StringWithoutPosition(t *testing.T) {
	d := NotStruct.New(token.Position{}, "p.T")

	assert.Equal(t, "[OBS101] type p.T must be a defined struct type to be observable", d.String())
}

func TestDiagnostics_BucketsBySeverity(t *testing.T) {
	var ds Diagnostics

	ds.Report(FieldSkipped.New(token.Position{}, "p.T", "_", "empty name"))
	ds.Report(LocalType.New(token.Position{}, "p.T"))

	errDiag := NotStruct.New(token.Position{}, "p.U")
	errDiag.Severity = DiagnosticError
	ds.Report(errDiag)

	assert.Len(t, ds.Infos, 1)
	assert.Len(t, ds.Warnings, 1)
	assert.Len(t, ds.Errors, 1)
	assert.Equal(t, 3, ds.Len())
	assert.True(t, ds.HasErrors())

	all := ds.All()
	require.Len(t, all, 3)
	assert.Equal(t, "OBS101", all[0].Code())
	assert.Equal(t, "OBS100", all[1].Code())
	assert.Equal(t, "OBS200", all[2].Code())

	assert.Len(t, ds.ByCode("OBS100"), 1)
}

func TestDiagnostics_NoErrors(t *testing.T) {
	var ds Diagnostics

	assert.False(t, ds.HasErrors())
	ds.Report(LocalType.New(token.Position{}, "p.A"))
	assert.False(t, ds.HasErrors())
}

func TestCatalog_UniqueCodes(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range Catalog {
		assert.False(t, seen[d.Code], d.Code)
		seen[d.Code] = true
		assert.NotEmpty(t, d.Title)
	}
	assert.Len(t, seen, 5)
}

func TestDiagnostics_ConcurrentReport(t *testing.T) {
	var ds Diagnostics

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			ds.Report(FieldConflict.New(token.Position{}, "p.T", "_x", "duplicate"))
		}()
	}

	wg.Wait()

	assert.Len(t, ds.Warnings, 32)
}

func TestPrinter_Print(t *testing.T) {
	var buf bytes.Buffer

	p := NewPrinter(&buf, "/src/module", true)
	require.NoError(t, p.Print(LocalType.New(token.Position{Filename: "/src/module/a/b.go", Line: 7, Column: 2}, "m/a.f.T")))
	require.NoError(t, p.Print(FieldSkipped.New(token.Position{}, "m/a.T", "_", "empty property name")))

	assert.Equal(t,
		"a/b.go:7:2: warning OBS100: type m/a.f.T cannot be declared inside a function; @observe.Object requires a package-level type\n"+
			"info OBS200: field m/a.T._ skipped: empty property name\n",
		buf.String())
}

func TestPrinter_KeepsPathsOutsideBaseDir(t *testing.T) {
	var buf bytes.Buffer

	p := NewPrinter(&buf, "/src/module", true)
	p.Report(NotStruct.New(token.Position{Filename: "/elsewhere/x.go", Line: 1, Column: 1}, "x.T"))

	assert.Contains(t, buf.String(), "/elsewhere/x.go:1:1: warning OBS101:")
}

func TestDiagnosticSeverity_String(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(42).String())
}
