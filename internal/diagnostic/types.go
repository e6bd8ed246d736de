package diagnostic

import (
	"fmt"
	"go/token"
	"sync"

	"observable-generator/internal/common"
)

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Descriptor describes one kind of diagnostic. Descriptors are fixed; see
// codes.go for the catalog.
type Descriptor struct {
	// Code is a unique identifier for this kind of diagnostic (e.g. "OBS100").
	Code string
	// Title is a short summary shared by every instance.
	Title string
	// Format is the fmt message template; instance arguments are substituted in.
	Format string
	// Category groups related descriptors.
	Category string
	// Severity is the default severity of new instances.
	Severity DiagnosticSeverity
}

// New creates a diagnostic for d at pos with the given message arguments.
func (d *Descriptor) New(pos token.Position, args ...any) Diagnostic {
	return Diagnostic{
		Descriptor: d,
		Severity:   d.Severity,
		Args:       args,
		Pos:        pos,
	}
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Descriptor identifies the kind of diagnostic.
	Descriptor *Descriptor
	// Severity of this instance.
	Severity DiagnosticSeverity
	// Args are substituted into Descriptor.Format.
	Args []any
	// Pos is where the diagnostic applies (for type-level problems, the
	// annotation that marked the type).
	Pos token.Position
}

// Code returns the descriptor code, or "" for a diagnostic without descriptor.
func (d Diagnostic) Code() string {
	if d.Descriptor == nil {
		return ""
	}

	return d.Descriptor.Code
}

// Message returns the descriptor format with the arguments substituted.
func (d Diagnostic) Message() string {
	if d.Descriptor == nil {
		return ""
	}

	return fmt.Sprintf(d.Descriptor.Format, d.Args...)
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message()
	if code := d.Code(); code != "" {
		msg = fmt.Sprintf("[%s] %s", code, msg)
	}

	if d.Pos.IsValid() {
		return d.Pos.String() + ": " + msg
	}

	return msg
}

// Reporter receives diagnostics. Implementations must be safe for concurrent use.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(d Diagnostic)

// Report calls f(d).
func (f ReporterFunc) Report(d Diagnostic) {
	f(d)
}

// Discard is a Reporter that drops every diagnostic.
var Discard Reporter = ReporterFunc(func(Diagnostic) {})

// Diagnostics holds diagnostics bucketed by severity. The zero value is
// ready to use and, through Report, safe for concurrent use.
type Diagnostics struct {
	mu       sync.Mutex
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

var _ Reporter = (*Diagnostics)(nil)

// Report adds d to the bucket matching its severity.
func (d *Diagnostics) Report(diag Diagnostic) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.add(diag)
}

func (d *Diagnostics) add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// All returns every diagnostic: errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()

	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Len returns the number of collected diagnostics.
func (d *Diagnostics) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// ByCode returns the collected diagnostics with the given code.
func (d *Diagnostics) ByCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, diag := range d.All() {
		if diag.Code() == code {
			out = append(out, diag)
		}
	}

	return out
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.Errors) > 0
}
