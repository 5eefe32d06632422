// Package lint defines the Diagnostic type shared by every rule and the
// generic Walk traversal over a parsed manifest's AST.
//
// Grounded on
// _examples/vinodhalaharvi-stencil/matcher/matcher.go's traversal shape
// (walk the tree, dispatch to predicate/rule logic per node, collect
// results) adapted from ast.Inspect over go/ast to a hand-rolled Walk over
// this project's own AST. The semantically-aware rule driver lives in
// internal/rules to avoid an import cycle (it depends on Diagnostic).
package lint

import "github.com/lindstrom-oss/puplint/internal/srcrange"

// Diagnostic is one finding a rule reported: which rule found it, a
// human-readable message, the span it applies to, and an optional link to
// further documentation (§4.8).
type Diagnostic struct {
	Rule    string
	Message string
	Range   srcrange.Range
	URL     string
}
