// Package analyze provides package loading, the marker scanner and the
// semantic resolver.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build a
// Program snapshot, then narrows it to the struct types carrying an
// @observe.Object annotation.
//
// Key types:
//   - Program / Package: the immutable snapshot of loaded packages
//   - Compilation: the snapshot plus the well-known runtime identities,
//     resolved once
//   - CandidateDecl: a type declaration carrying any annotation (syntactic)
//   - CandidateType: a declaration bound to its *types.TypeName and confirmed
//     to carry the marker, with its declared fields
//   - TypeID: package import path + type name
package analyze
