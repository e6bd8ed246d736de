package analyze

import (
	"go/ast"

	"golang.org/x/tools/go/ast/inspector"

	"observable-generator/internal/common"
)

// Scan returns the annotated type declarations of pkg, in file order and
// then source order. Declarations inside function bodies and function
// literals are included.
func Scan(pkg *Package) []CandidateDecl {
	var decls []CandidateDecl

	names := make(map[*ast.File]string, len(pkg.Files))
	for i, file := range pkg.Files {
		if i < len(pkg.FileNames) {
			names[file] = pkg.FileNames[i]
		}
	}

	in := inspector.New(pkg.Files)
	in.WithStack([]ast.Node{(*ast.TypeSpec)(nil)}, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}

		spec := n.(*ast.TypeSpec)
		anns := ParseAnnotations(typeSpecDoc(spec, stack))
		if common.IsEmpty(anns) {
			return true
		}

		file, _ := stack[0].(*ast.File)
		decls = append(decls, CandidateDecl{
			File:        file,
			FileName:    names[file],
			Spec:        spec,
			Annotations: anns,
			Enclosing:   enclosingFuncs(stack),
		})

		return true
	})

	return decls
}

// typeSpecDoc returns the doc comment of a type spec. The parser attaches the
// doc of an unparenthesised declaration to the GenDecl.
func typeSpecDoc(spec *ast.TypeSpec, stack []ast.Node) *ast.CommentGroup {
	if spec.Doc != nil {
		return spec.Doc
	}

	if len(stack) < 2 {
		return nil
	}

	decl, ok := stack[len(stack)-2].(*ast.GenDecl)
	if !ok || decl.Lparen.IsValid() {
		return nil
	}

	return decl.Doc
}

// enclosingFuncs names the functions on the stack, outermost first.
func enclosingFuncs(stack []ast.Node) []string {
	var names []string

	for _, n := range stack {
		switch fn := n.(type) {
		case *ast.FuncDecl:
			names = append(names, funcDeclName(fn))
		case *ast.FuncLit:
			names = append(names, "func")
		}
	}

	return names
}

func funcDeclName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return fn.Name.Name
	}

	return "(" + receiverName(fn.Recv.List[0].Type) + ")." + fn.Name.Name
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return "*" + receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.ParenExpr:
		return receiverName(t.X)
	}

	return "?"
}
