package plan

import (
	"go/token"
	"go/types"

	"observable-generator/internal/analyze"
)

// MemberClash is a member declared on the type under the name of a
// subscription method that it cannot stand in for.
type MemberClash struct {
	// Name is the subscription method name.
	Name string
	// Kind is "field" or "method".
	Kind string
	// Interface is the notifier the member would have to implement.
	Interface *types.TypeName
	Pos       token.Pos
}

// DetectCapabilities reports which notifications ct already provides.
//
// A capability comes from a directly embedded runtime event type, compared by
// identity so an embedded alias counts and a same-named type from another
// package does not. It also comes from a subscription method declared on the
// type itself with the notifier signature; setters then notify through the
// attached events. Any other member declared directly under a subscription
// method name is returned as a clash. Members for which ignored returns true
// are not considered.
func DetectCapabilities(ct analyze.CandidateType, wk *analyze.WellKnown, ignored func(types.Object) bool) (Capabilities, *MemberClash) {
	var caps Capabilities

	for _, f := range ct.Fields {
		if !f.Embedded {
			continue
		}

		switch embeddedTypeName(f.Type) {
		case wk.Changed:
			if !caps.Changed {
				caps.Changed = true
				caps.ChangedField = f.Name
			}
		case wk.Changing:
			if !caps.Changing {
				caps.Changing = true
				caps.ChangingField = f.Name
			}
		}
	}

	if ignored == nil {
		ignored = func(types.Object) bool { return false }
	}

	declared, clash := declaredSubscription(ct, OnChangedMember, wk.ChangedNotifier, ignored)
	if clash != nil {
		return caps, clash
	}
	caps.Changed = caps.Changed || declared

	declared, clash = declaredSubscription(ct, OnChangingMember, wk.ChangingNotifier, ignored)
	if clash != nil {
		return caps, clash
	}
	caps.Changing = caps.Changing || declared

	return caps, nil
}

// declaredSubscription looks up the member name declared directly on ct. It
// reports whether the member is a method implementing iface, or a clash when
// it is anything else. Promoted members are shadowed by a generated method and
// never clash.
func declaredSubscription(ct analyze.CandidateType, name string, iface *types.TypeName, ignored func(types.Object) bool) (bool, *MemberClash) {
	named := ct.Named()
	if named == nil {
		return false, nil
	}

	obj, index, _ := types.LookupFieldOrMethod(types.NewPointer(named), false, ct.Obj.Pkg(), name)
	if obj == nil || len(index) != 1 || ignored(obj) {
		return false, nil
	}

	fn, ok := obj.(*types.Func)
	if ok && implementsMethod(fn, iface) {
		return true, nil
	}

	kind := "field"
	if ok {
		kind = "method"
	}

	return false, &MemberClash{Name: name, Kind: kind, Interface: iface, Pos: obj.Pos()}
}

// implementsMethod reports whether fn has the signature of the method with
// the same name in iface. Receivers are not compared, so methods of generic
// types qualify.
func implementsMethod(fn *types.Func, iface *types.TypeName) bool {
	it, ok := iface.Type().Underlying().(*types.Interface)
	if !ok {
		return false
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return false
	}

	for i := range it.NumMethods() {
		m := it.Method(i)
		if m.Name() != fn.Name() {
			continue
		}

		want := m.Type().(*types.Signature)

		return sig.Variadic() == want.Variadic() &&
			types.Identical(sig.Params(), want.Params()) &&
			types.Identical(sig.Results(), want.Results())
	}

	return false
}

// embeddedTypeName returns the declared type of an embedded field, looking
// through one pointer and any aliases.
func embeddedTypeName(t types.Type) *types.TypeName {
	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
	}

	named, ok := t.(*types.Named)
	if !ok {
		return nil
	}

	return named.Origin().Obj()
}
