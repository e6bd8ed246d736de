package analyze

import (
	"go/ast"
	"go/token"
	"regexp"
	"strings"
)

// annotationPattern matches "@Name", "@pkg.Name" and either form followed by
// "(args)". Leading comment markers are stripped before matching.
var annotationPattern = regexp.MustCompile(
	`^@([\p{L}_][\p{L}\p{Nd}_]*)(?:\.([\p{L}_][\p{L}\p{Nd}_]*))?(?:\((.*)\))?\s*$`)

// ParseAnnotations returns the annotation lines of a comment group in order.
// Block comments are ignored.
func ParseAnnotations(doc *ast.CommentGroup) []Annotation {
	if doc == nil {
		return nil
	}

	var anns []Annotation

	for _, c := range doc.List {
		ann, ok := parseAnnotation(c)
		if ok {
			anns = append(anns, ann)
		}
	}

	return anns
}

func parseAnnotation(c *ast.Comment) (Annotation, bool) {
	body, ok := strings.CutPrefix(c.Text, "//")
	if !ok {
		return Annotation{}, false
	}

	trimmed := strings.TrimLeft(body, " \t")
	m := annotationPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Annotation{}, false
	}

	offset := len("//") + len(body) - len(trimmed)
	ann := Annotation{
		Name: m[1],
		Args: m[3],
		Pos:  c.Slash + token.Pos(offset),
	}
	if m[2] != "" {
		ann.Qualifier = m[1]
		ann.Name = m[2]
	}

	return ann, true
}
