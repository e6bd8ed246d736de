package gen

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"observable-generator/internal/analyze"
	"observable-generator/internal/common"
	"observable-generator/internal/plan"
)

// ErrNothingToGenerate is returned for types without properties.
var ErrNothingToGenerate = errors.New("type has no properties")

// Document is the language-level description of one generated file. It is
// built from a TypePlan and rendered by a Renderer.
type Document struct {
	Header string
	// BuildConstraint is copied from the declaring file.
	BuildConstraint string
	Package         string
	Imports         []importSpec
	Type            TypeDecl
	Assertions      []Assertion
	Members         []Member
	Properties      []Property
}

// TypeDecl describes the receiver type of the generated methods.
type TypeDecl struct {
	Name       string
	Receiver   string
	TypeParams []string
}

// Ref returns the receiver base type, e.g. "Box[T]".
func (t TypeDecl) Ref() string {
	if len(t.TypeParams) == 0 {
		return t.Name
	}

	return t.Name + "[" + strings.Join(t.TypeParams, ", ") + "]"
}

// Assertion is a compile-time check that the type implements an interface.
type Assertion struct {
	Interface string // Qualified interface name
}

// Member is a subscription method added for an absent capability.
type Member struct {
	Name    string // OnPropertyChanged or OnPropertyChanging
	Param   string // Handler parameter name
	Handler string // Qualified handler type
	Attach  string // Qualified attach function
	Event   string // Field of the attached events
	Doc     string
}

// Property is one getter/setter pair.
type Property struct {
	Name     string // Property and getter name
	Setter   string
	Field    string
	Type     string // Rendered field type
	Param    string // Setter parameter name
	Changing Dispatch
	Changed  Dispatch
}

// Dispatch describes how a setter raises one notification.
type Dispatch struct {
	// Field is the embedded event field; empty when notifying through the
	// attached events.
	Field string
	// Notify is the qualified runtime function used when Field is empty.
	Notify string
}

// Embedded reports whether the dispatch goes through an embedded field.
func (d Dispatch) Embedded() bool {
	return d.Field != ""
}

// Call returns the statement raising the notification for property name on
// receiver recv.
func (d Dispatch) Call(recv, name string) string {
	if d.Embedded() {
		return fmt.Sprintf("%s.%s.Raise(%s, %q)", recv, d.Field, recv, name)
	}

	return fmt.Sprintf("%s(%s, %q)", d.Notify, recv, name)
}

// DocumentOptions controls document construction.
type DocumentOptions struct {
	// Header is the first line of the file. Defaults to the generator header.
	Header string
	// SkipAssertions omits the compile-time interface assertions.
	SkipAssertions bool
}

// BuildDocument describes the file generated for tp. It is a pure function of
// its inputs.
func BuildDocument(tp *plan.TypePlan, wk *analyze.WellKnown, opts DocumentOptions) (*Document, error) {
	ct := tp.Candidate
	if ct.Package == nil || ct.Package.Types == nil || ct.Named() == nil || ct.Nested {
		return nil, fmt.Errorf("type %s is not a package-level defined type", ct.ID)
	}
	if !tp.HasProperties() {
		return nil, fmt.Errorf("%w: %s", ErrNothingToGenerate, ct.ID)
	}

	header := opts.Header
	if header == "" {
		header = common.GeneratedHeader
	}

	assertions := !opts.SkipAssertions && len(ct.TypeParams) == 0
	caps := tp.Capabilities

	imports := newImportSet(ct.Package.Types, ct.TypeParams...)

	// The runtime is imported first so it keeps its own name, unless nothing
	// refers to it. Members are only emitted for absent capabilities, which
	// never have a field.
	var rt string
	if assertions || caps.ChangedField == "" || caps.ChangingField == "" {
		rt = imports.add(wk.Package.Path(), wk.Package.Name())
	}

	doc := &Document{
		Header:          header,
		BuildConstraint: ct.BuildConstraint,
		Package:         ct.Package.Name,
		Type: TypeDecl{
			Name:       ct.ID.Name,
			TypeParams: ct.TypeParams,
		},
	}

	for _, prop := range tp.Properties {
		doc.Properties = append(doc.Properties, Property{
			Name:     prop.Name,
			Setter:   prop.Setter,
			Field:    prop.Field,
			Type:     imports.typeString(prop.Type),
			Changing: dispatch(caps.ChangingField, rt+".NotifyChanging"),
			Changed:  dispatch(caps.ChangedField, rt+".NotifyChanged"),
		})
	}

	// Every import is known at this point, so local names can be chosen.
	doc.Type.Receiver = pickName(imports, receiverCandidates(ct.ID.Name)...)
	param := pickName(imports, append([]string{"v", "value", "val"}, fallbackNames(doc.Type.Receiver)...)...)
	if param == doc.Type.Receiver {
		param = pickName(imports, "value", "newValue")
	}
	handler := pickName(imports, "h", "handler", "fn")
	if handler == doc.Type.Receiver {
		handler = pickName(imports, "handler", "fn")
	}

	for i := range doc.Properties {
		doc.Properties[i].Param = param
	}

	if assertions {
		doc.Assertions = []Assertion{
			{Interface: rt + "." + wk.ChangedNotifier.Name()},
			{Interface: rt + "." + wk.ChangingNotifier.Name()},
		}
	}

	if !caps.Changed {
		doc.Members = append(doc.Members, Member{
			Name:    plan.OnChangedMember,
			Param:   handler,
			Handler: rt + ".PropertyChangedHandler",
			Attach:  rt + ".Attach",
			Event:   "Changed",
			Doc:     "registers " + handler + " to run after a property of " + ct.ID.Name + " changes.",
		})
	}
	if !caps.Changing {
		doc.Members = append(doc.Members, Member{
			Name:    plan.OnChangingMember,
			Param:   handler,
			Handler: rt + ".PropertyChangingHandler",
			Attach:  rt + ".Attach",
			Event:   "Changing",
			Doc:     "registers " + handler + " to run before a property of " + ct.ID.Name + " changes.",
		})
	}

	doc.Imports = imports.specs()

	return doc, nil
}

func dispatch(field, notify string) Dispatch {
	if field != "" {
		return Dispatch{Field: field}
	}

	return Dispatch{Notify: notify}
}

// receiverCandidates returns receiver names for a type, preferred first.
func receiverCandidates(typeName string) []string {
	r, _ := utf8.DecodeRuneInString(typeName)
	first := string(unicode.ToLower(r))

	return append([]string{first}, fallbackNames(first)...)
}

func fallbackNames(avoid string) []string {
	var out []string

	for _, name := range []string{"o", "obj", "self", "this"} {
		if name != avoid {
			out = append(out, name)
		}
	}

	return out
}

// pickName returns the first candidate not taken in the file. The last
// candidate is suffixed with a number if all are taken.
func pickName(imports *importSet, candidates ...string) string {
	for _, name := range candidates {
		if !imports.isTaken(name) && name != "_" {
			return name
		}
	}

	base := candidates[len(candidates)-1]
	for i := 2; ; i++ {
		name := fmt.Sprintf("%s%d", base, i)
		if !imports.isTaken(name) {
			return name
		}
	}
}
