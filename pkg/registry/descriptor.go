package registry

import "fmt"

// CrateDescriptor is the parsed form of a `use name(vers = "v")` site.
// Immutable once parsed.
type CrateDescriptor struct {
	// Name is the external crate name.
	Name string
	// VersionConstraint selects among available versions with exact-match
	// semantics; empty means any version, which must be unambiguous.
	VersionConstraint string
}

// Key returns the cache/flight key for the descriptor.
func (d CrateDescriptor) Key() string {
	if d.VersionConstraint == "" {
		return d.Name
	}
	return d.Name + "@" + d.VersionConstraint
}

// String implements fmt.Stringer
func (d CrateDescriptor) String() string {
	if d.VersionConstraint == "" {
		return fmt.Sprintf("use %s", d.Name)
	}
	return fmt.Sprintf("use %s(vers = %q)", d.Name, d.VersionConstraint)
}
