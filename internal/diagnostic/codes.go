package diagnostic

const (
	categoryUsage  = "Annotation Usage"
	categoryFields = "Field Eligibility"
)

// LocalType reports an @observe.Object annotation on a type declared inside a
// function. Methods cannot be declared on such types.
// Args: type display name.
var LocalType = &Descriptor{
	Code:     "OBS100",
	Title:    "Incorrect annotation usage",
	Format:   "type %s cannot be declared inside a function; @observe.Object requires a package-level type",
	Category: categoryUsage,
	Severity: DiagnosticWarning,
}

// NotStruct reports an @observe.Object annotation on an alias or on a defined
// type whose underlying type is not a struct.
// Args: type display name.
var NotStruct = &Descriptor{
	Code:     "OBS101",
	Title:    "Incorrect annotation usage",
	Format:   "type %s must be a defined struct type to be observable",
	Category: categoryUsage,
	Severity: DiagnosticWarning,
}

// MemberConflict reports a type that declares a field or method under the
// name of a subscription method without implementing the notifier.
// Args: type display name, member kind, member name, notifier interface.
var MemberConflict = &Descriptor{
	Code:     "OBS102",
	Title:    "Subscription method already declared",
	Format:   "type %s declares %s %s that does not implement %s",
	Category: categoryUsage,
	Severity: DiagnosticWarning,
}

// FieldSkipped reports a field that by convention does not become a property.
// Args: type display name, field name, reason.
var FieldSkipped = &Descriptor{
	Code:     "OBS200",
	Title:    "Field skipped",
	Format:   "field %s.%s skipped: %s",
	Category: categoryFields,
	Severity: DiagnosticInfo,
}

// FieldConflict reports a field that looks like a property candidate but
// whose generated members cannot be declared.
// Args: type display name, field name, reason.
var FieldConflict = &Descriptor{
	Code:     "OBS201",
	Title:    "Field cannot become a property",
	Format:   "field %s.%s skipped: %s",
	Category: categoryFields,
	Severity: DiagnosticWarning,
}

// Catalog lists every descriptor, in code order.
var Catalog = []*Descriptor{LocalType, NotStruct, MemberConflict, FieldSkipped, FieldConflict}
