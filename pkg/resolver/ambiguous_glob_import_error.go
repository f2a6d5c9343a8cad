package resolver

import "fmt"

// AmbiguousGlobImportError is reported when an unqualified reference matches
// two or more distinct via-glob bindings.  Unused ambiguity is not an error:
// the condition is detected at lookup time, not at import-install time.
type AmbiguousGlobImportError struct {
	// Name is the referenced identifier.
	Name string
	// Scope is the qualified name of the module doing the lookup.
	Scope string
	// Sources are the fully-qualified names of the competing symbols.
	Sources []string
}

func (e *AmbiguousGlobImportError) Error() string {
	return fmt.Sprintf("ambiguous glob import of %q in %q: candidates %v", e.Name, e.Scope, e.Sources)
}
