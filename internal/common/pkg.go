package common

import (
	"path"
	"strings"
)

// ImportName returns the name an import of pkgPath binds when the package
// follows the usual naming convention. Major version elements are skipped.
// Examples:
//   - "observable-generator/observe" -> "observe"
//   - "example.com/mod/v2" -> "mod"
//   - "gopkg.in/yaml.v3" -> "yaml"
//
// Returns empty string if pkgPath is empty.
func ImportName(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if isMajorVersion(base) {
		if dir := path.Dir(pkgPath); dir != "." {
			base = path.Base(dir)
		}
	}

	if strings.HasPrefix(pkgPath, "gopkg.in/") {
		if i := strings.Index(base, ".v"); i > 0 && isMajorVersion(base[i+1:]) {
			base = base[:i]
		}
	}

	return base
}

// isMajorVersion reports whether s looks like "v2", "v10" and so on.
func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}

	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
