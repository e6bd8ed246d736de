package diagnostic

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
)

// Printer writes diagnostics in the "file:line:col: severity CODE: message"
// form understood by editors and CI log parsers.
type Printer struct {
	w       io.Writer
	baseDir string

	location *color.Color
	code     *color.Color
	severity map[DiagnosticSeverity]*color.Color
}

// NewPrinter returns a Printer writing to w. File names below baseDir are
// printed relative to it; colour is disabled when noColor is set.
func NewPrinter(w io.Writer, baseDir string, noColor bool) *Printer {
	p := &Printer{
		w:        w,
		baseDir:  baseDir,
		location: color.New(color.Bold),
		code:     color.New(color.FgCyan),
		severity: map[DiagnosticSeverity]*color.Color{
			DiagnosticInfo:    color.New(color.FgBlue),
			DiagnosticWarning: color.New(color.FgYellow, color.Bold),
			DiagnosticError:   color.New(color.FgRed, color.Bold),
		},
	}

	if noColor {
		p.location.DisableColor()
		p.code.DisableColor()

		for _, c := range p.severity {
			c.DisableColor()
		}
	}

	return p
}

// Report prints d. It makes Printer usable as a Reporter.
func (p *Printer) Report(d Diagnostic) {
	_ = p.Print(d)
}

// Print writes a single diagnostic line.
func (p *Printer) Print(d Diagnostic) error {
	sev, ok := p.severity[d.Severity]
	if !ok {
		sev = color.New()
	}

	var err error
	if d.Pos.IsValid() {
		_, err = fmt.Fprintf(p.w, "%s: %s %s: %s\n",
			p.location.Sprint(p.position(d)), sev.Sprint(d.Severity), p.code.Sprint(d.Code()), d.Message())
	} else {
		_, err = fmt.Fprintf(p.w, "%s %s: %s\n", sev.Sprint(d.Severity), p.code.Sprint(d.Code()), d.Message())
	}

	return err
}

func (p *Printer) position(d Diagnostic) string {
	pos := d.Pos
	if p.baseDir != "" {
		if rel, err := filepath.Rel(p.baseDir, pos.Filename); err == nil && !startsWithDotDot(rel) {
			pos.Filename = rel
		}
	}

	return pos.String()
}

func startsWithDotDot(rel string) bool {
	return len(rel) >= 2 && rel[:2] == ".."
}
