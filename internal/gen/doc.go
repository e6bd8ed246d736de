// Package gen emits the Go source for observable types.
//
// Generation has two stages. BuildDocument turns a plan.TypePlan into a
// Document: imports, receiver, interface assertions, subscription members and
// getter/setter pairs. A Renderer then turns the Document into source;
// GoRenderer uses text/template and go/format.
//
// Files are named after the type in snake_case with a configurable suffix
// (default "_observable.go") and are written next to the declaring file.
package gen
