package resolver

import (
	"fmt"

	"github.com/cratelang/resolve/pkg/ast"
)

// DuplicateDeclarationError is reported when two declarations (or a
// declaration and a direct import, or two direct imports) bind the same name
// in one scope.
type DuplicateDeclarationError struct {
	// Name is the identifier bound twice.
	Name string
	// Scope is the qualified name of the owning module.
	Scope string
	// First and Second are the positions of the competing bindings.
	First  ast.Pos
	Second ast.Pos
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("duplicate declaration of %q in %q (first at %v, again at %v)", e.Name, e.Scope, e.First, e.Second)
}
