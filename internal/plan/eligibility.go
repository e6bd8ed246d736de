package plan

import (
	"fmt"
	"go/token"
	"go/types"

	"observable-generator/internal/analyze"
	"observable-generator/internal/common"
)

// Names of the subscription members added to types without the matching
// capability.
const (
	OnChangedMember  = "OnPropertyChanged"
	OnChangingMember = "OnPropertyChanging"
)

// memberFilter reports whether an existing member should be ignored when
// looking for conflicts.
type memberFilter func(obj types.Object) bool

// Eligibility decides which fields of one type become properties.
type Eligibility struct {
	policy  NamingPolicy
	ignored memberFilter
}

// NewEligibility creates an Eligibility. Members for which ignored returns
// true never cause conflicts; a nil filter ignores nothing.
func NewEligibility(policy NamingPolicy, ignored func(obj types.Object) bool) *Eligibility {
	if ignored == nil {
		ignored = func(types.Object) bool { return false }
	}

	return &Eligibility{policy: policy, ignored: ignored}
}

// Evaluate returns one outcome per declared field and the resulting
// properties, both in declaration order.
func (e *Eligibility) Evaluate(ct analyze.CandidateType) ([]FieldOutcome, []GeneratedProperty) {
	outcomes := make([]FieldOutcome, 0, len(ct.Fields))
	var props []GeneratedProperty

	used := make(map[string]string)

	for _, f := range ct.Fields {
		outcome := e.evaluate(ct, f, used)
		outcomes = append(outcomes, outcome)

		if outcome.Skipped() {
			continue
		}

		prop := GeneratedProperty{
			Name:   outcome.Name,
			Setter: SetterName(outcome.Name),
			Field:  f.Name,
			Type:   f.Type,
			Index:  f.Index,
		}
		used[prop.Name] = f.Name
		used[prop.Setter] = f.Name
		props = append(props, prop)
	}

	return outcomes, props
}

func (e *Eligibility) evaluate(ct analyze.CandidateType, f analyze.FieldMember, used map[string]string) FieldOutcome {
	outcome := FieldOutcome{Field: f}
	if f.Embedded {
		outcome.Reason = SkipEmbedded
		return outcome
	}

	name, reason := DeriveName(f.Name)
	outcome.Name = name
	if reason != NotSkipped {
		outcome.Reason = reason
		return outcome
	}

	switch {
	case e.policy.RequirePrefix && f.Name[0] != '_':
		outcome.Reason = SkipNoPrefix
	case !token.IsIdentifier(name):
		outcome.Reason = SkipInvalidIdentifier
		outcome.Detail = fmt.Sprintf("%q", name)
	default:
		outcome.Reason, outcome.Detail = e.conflict(ct, name, used)
	}

	return outcome
}

// conflict checks the getter and setter names against the members the type
// already declares, the subscription members and earlier properties.
func (e *Eligibility) conflict(ct analyze.CandidateType, name string, used map[string]string) (SkipReason, string) {
	for _, member := range []string{name, SetterName(name)} {
		if member == OnChangedMember || member == OnChangingMember {
			return SkipMemberConflict, "reserved member " + member
		}

		if kind := e.declaredMember(ct, member); kind != "" {
			return SkipMemberConflict, kind + " " + member
		}

		if field, ok := used[member]; ok {
			return SkipDuplicateProperty, member + " already generated for " + field
		}
	}

	return NotSkipped, ""
}

// declaredMember returns "field" or "method" when the type declares a member
// with the given name directly, or "" when it does not.
func (e *Eligibility) declaredMember(ct analyze.CandidateType, name string) string {
	named := ct.Named()
	if named == nil {
		return ""
	}

	obj, index, _ := types.LookupFieldOrMethod(types.NewPointer(named), false, ct.Obj.Pkg(), name)
	if obj == nil || !common.IsSingle(index) || e.ignored(obj) {
		return ""
	}

	if _, ok := obj.(*types.Func); ok {
		return "method"
	}

	return "field"
}
