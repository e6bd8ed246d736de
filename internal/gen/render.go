package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Renderer turns a Document into file content.
type Renderer interface {
	Render(doc *Document) ([]byte, error)
}

// GoRenderer renders Go source with text/template and formats it with
// go/format.
type GoRenderer struct {
	// DebugDir receives the unformatted source when formatting fails.
	DebugDir string
	// DebugName names the debug sidecar; defaults to the type name.
	DebugName string
}

var _ Renderer = (*GoRenderer)(nil)

// Render implements Renderer. When formatting fails it returns the
// unformatted source together with the error.
func (r *GoRenderer) Render(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := observableTemplate.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		name := r.DebugName
		if name == "" {
			name = doc.Type.Name + ".go"
		}
		_ = writeDebugUnformatted(r.DebugDir, name, buf.Bytes())

		return buf.Bytes(), fmt.Errorf("formatting code: %w", err)
	}

	return formatted, nil
}

// writeDebugUnformatted writes unformatted code to a sidecar file in dir.
// Failures are ignored by callers; the formatting error is what matters.
func writeDebugUnformatted(dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	// Keep a .go extension for syntax highlighting without colliding with
	// real output.
	debugName := strings.TrimSuffix(filepath.Base(filename), ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(dir, debugName), content, filePerm)
}

var observableTemplate = template.Must(template.New("observable").Parse(`{{.Header}}

{{with .BuildConstraint}}{{.}}

{{end}}package {{.Package}}

{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}{{$recv := .Type.Receiver}}{{$ref := .Type.Ref}}
{{if .Assertions}}
var (
{{range .Assertions}}	_ {{.Interface}} = (*{{$ref}})(nil)
{{end}})
{{end}}
{{range .Members}}
// {{.Name}} {{.Doc}}
func ({{$recv}} *{{$ref}}) {{.Name}}({{.Param}} {{.Handler}}) (cancel func()) {
	return {{.Attach}}({{$recv}}).{{.Event}}.{{.Name}}({{.Param}})
}
{{end}}
{{range .Properties}}
// {{.Name}} returns the value of {{.Field}}.
func ({{$recv}} *{{$ref}}) {{.Name}}() {{.Type}} {
	return {{$recv}}.{{.Field}}
}

// {{.Setter}} sets {{.Field}} and raises the notifications for {{.Name}}.
func ({{$recv}} *{{$ref}}) {{.Setter}}({{.Param}} {{.Type}}) {
	{{.Changing.Call $recv .Name}}
	{{$recv}}.{{.Field}} = {{.Param}}
	{{.Changed.Call $recv .Name}}
}
{{end}}`))
