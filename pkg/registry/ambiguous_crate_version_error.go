package registry

import "fmt"

// AmbiguousCrateVersionError is reported when an unconstrained crate import
// matches more than one registered version and nothing disambiguates.
type AmbiguousCrateVersionError struct {
	// Name is the requested crate name.
	Name string
	// Versions lists the competing versions.
	Versions []string
}

func (e *AmbiguousCrateVersionError) Error() string {
	return fmt.Sprintf("ambiguous version for crate %q: candidates %v", e.Name, e.Versions)
}
