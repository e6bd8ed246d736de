package plan

import (
	"go/types"

	"observable-generator/internal/analyze"
	"observable-generator/internal/diagnostic"
)

// ObservablePlan is the final output of the planning pipeline.
// It contains everything needed for code generation.
type ObservablePlan struct {
	// Types are the validated types in candidate order.
	Types []TypePlan
	// Rejected are the marked types that cannot be made observable.
	Rejected []Rejection
	// WellKnown holds the runtime identities the plan was checked against.
	WellKnown *analyze.WellKnown
	// Diagnostics contains everything reported while planning.
	Diagnostics *diagnostic.Diagnostics
}

// Generatable returns the validated types with at least one property.
func (p *ObservablePlan) Generatable() []TypePlan {
	var out []TypePlan

	for _, tp := range p.Types {
		if tp.HasProperties() {
			out = append(out, tp)
		}
	}

	return out
}

// TypePlan is a validated observable type.
type TypePlan struct {
	Candidate    analyze.CandidateType
	Capabilities Capabilities
	// Outcomes has one entry per declared field, in declaration order.
	Outcomes []FieldOutcome
	// Properties are the eligible fields, in declaration order.
	Properties []GeneratedProperty
}

// HasProperties reports whether the type produces an artifact.
func (tp *TypePlan) HasProperties() bool {
	return len(tp.Properties) > 0
}

// Rejection is a marked type that produced a diagnostic instead of a plan.
type Rejection struct {
	Candidate  analyze.CandidateType
	Diagnostic diagnostic.Diagnostic
}

// Capabilities records the notifications a struct already provides.
type Capabilities struct {
	// Changed is true when the struct embeds the changed event type or
	// declares OnPropertyChanged itself.
	Changed bool
	// ChangedField is the name of the embedded changed field. It is empty
	// when setters notify through the attached events.
	ChangedField string
	// Changing is true when the struct embeds the changing event type or
	// declares OnPropertyChanging itself.
	Changing bool
	// ChangingField is the name of the embedded changing field. It is empty
	// when setters notify through the attached events.
	ChangingField string
}

// GeneratedProperty is a field that becomes a getter/setter pair.
type GeneratedProperty struct {
	Name   string // Getter name, e.g. "Name"
	Setter string // Setter name, e.g. "SetName"
	Field  string // Backing field, e.g. "_name"
	Type   types.Type
	Index  int // Field declaration index
}

// FieldOutcome is the eligibility decision for one declared field.
type FieldOutcome struct {
	Field analyze.FieldMember
	// Name is the derived property name, empty when none could be derived.
	Name   string
	Reason SkipReason
	// Detail explains conflicts, e.g. which member is in the way.
	Detail string
}

// Skipped reports whether the field does not become a property.
func (o FieldOutcome) Skipped() bool {
	return o.Reason != NotSkipped
}

// Explanation returns the reason text, with the detail when present.
func (o FieldOutcome) Explanation() string {
	if o.Detail == "" {
		return o.Reason.String()
	}

	return o.Reason.String() + " (" + o.Detail + ")"
}

// NamingPolicy controls how field names map to property names.
type NamingPolicy struct {
	// RequirePrefix skips fields without a leading underscore.
	RequirePrefix bool
}

// DefaultNamingPolicy returns the default naming policy.
func DefaultNamingPolicy() NamingPolicy {
	return NamingPolicy{RequirePrefix: true}
}
