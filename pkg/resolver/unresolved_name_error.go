package resolver

import "fmt"

// UnresolvedNameError is reported when a reference finds no binding in the
// owning scope, its lexical parent chain, or the namespace a qualified path
// descends into.
type UnresolvedNameError struct {
	// Name is the reference as written, "::"-joined if qualified.
	Name string
	// Scope is the qualified name of the module containing the use-site.
	Scope string
}

func (e *UnresolvedNameError) Error() string {
	return fmt.Sprintf("unresolved name %q in %q", e.Name, e.Scope)
}
