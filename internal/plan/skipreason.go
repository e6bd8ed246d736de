package plan

//go:generate go tool stringer -type=SkipReason -linecomment -output=skipreason_string.go

// SkipReason explains why a field does not become a property.
type SkipReason int

const (
	NotSkipped            SkipReason = iota // eligible
	SkipEmptyName                           // name is empty after removing underscores
	SkipSameAsField                         // property name equals the field name
	SkipNoPrefix                            // field name has no leading underscore
	SkipEmbedded                            // embedded field
	SkipInvalidIdentifier                   // property name is not a valid identifier
	SkipMemberConflict                      // conflicts with an existing member
	SkipDuplicateProperty                   // duplicates an earlier property
)

// IsConflict reports whether the reason indicates a field that looks like a
// property but cannot be generated.
func (r SkipReason) IsConflict() bool {
	switch r {
	case SkipInvalidIdentifier, SkipMemberConflict, SkipDuplicateProperty:
		return true
	default:
		return false
	}
}
