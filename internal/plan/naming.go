package plan

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SetterPrefix is prepended to a property name to form its setter.
const SetterPrefix = "Set"

// DeriveName returns the property name for a field name.
//
// The leading run of underscores is removed. A single remaining character is
// upper-cased, otherwise only the first rune is. The field is ineligible when
// nothing remains or when the result equals the field name.
func DeriveName(field string) (string, SkipReason) {
	stripped := strings.TrimLeft(field, "_")
	if stripped == "" {
		return "", SkipEmptyName
	}

	var name string
	if utf8.RuneCountInString(stripped) == 1 {
		name = strings.ToUpper(stripped)
	} else {
		r, size := utf8.DecodeRuneInString(stripped)
		name = string(unicode.ToUpper(r)) + stripped[size:]
	}

	if name == field {
		return name, SkipSameAsField
	}

	return name, NotSkipped
}

// SetterName returns the setter name for a property name.
func SetterName(property string) string {
	return SetterPrefix + property
}
