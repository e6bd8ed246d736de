package analyze

import (
	"go/ast"
	"go/build"
	"go/build/constraint"
	"io"
	"path/filepath"
	"strings"
)

// noTag is a build tag no file name or constraint refers to.
const noTag = "observable_generator_none"

// BuildConstraint returns the //go:build line restricting a file to the
// builds that include the declaring file, or "" when that file is built
// everywhere. It combines the file's own //go:build line with the GOOS and
// GOARCH implied by its name.
func BuildConstraint(file *ast.File, fileName string) string {
	var exprs []constraint.Expr

	if expr := goBuildExpr(file); expr != nil {
		exprs = append(exprs, expr)
	}
	if fileName != "" {
		exprs = append(exprs, fileNameTags(filepath.Base(fileName))...)
	}

	if len(exprs) == 0 {
		return ""
	}

	expr := exprs[0]
	for _, e := range exprs[1:] {
		expr = &constraint.AndExpr{X: expr, Y: e}
	}

	return "//go:build " + expr.String()
}

// goBuildExpr returns the parsed //go:build line of file, or nil.
func goBuildExpr(file *ast.File) constraint.Expr {
	if file == nil {
		return nil
	}

	for _, group := range file.Comments {
		if group.Pos() >= file.Package {
			break
		}

		for _, c := range group.List {
			if !constraint.IsGoBuild(c.Text) {
				continue
			}
			if expr, err := constraint.Parse(c.Text); err == nil {
				return expr
			}
		}
	}

	return nil
}

// fileNameTags returns the tags implied by a _GOOS, _GOARCH or _GOOS_GOARCH
// file name suffix. The go command decides which segments count.
func fileNameTags(name string) []constraint.Expr {
	if matchesName(name, noTag, noTag) {
		return nil
	}

	stem := strings.TrimSuffix(strings.TrimSuffix(name, ".go"), "_test")
	parts := strings.Split(stem, "_")
	n := len(parts)

	if n >= 3 {
		os, arch := parts[n-2], parts[n-1]
		if matchesName(name, os, arch) && !matchesName(name, os, noTag) && !matchesName(name, noTag, arch) {
			return []constraint.Expr{&constraint.TagExpr{Tag: os}, &constraint.TagExpr{Tag: arch}}
		}
	}

	if n >= 2 {
		last := parts[n-1]
		if matchesName(name, last, noTag) || matchesName(name, noTag, last) {
			return []constraint.Expr{&constraint.TagExpr{Tag: last}}
		}
	}

	return nil
}

// matchesName reports whether a file called name with no build constraint of
// its own is built for goos and goarch.
func matchesName(name, goos, goarch string) bool {
	ctx := build.Context{
		GOOS:   goos,
		GOARCH: goarch,
		OpenFile: func(string) (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("package p\n")), nil
		},
	}

	match, err := ctx.MatchFile(".", name)

	return err != nil || match
}
