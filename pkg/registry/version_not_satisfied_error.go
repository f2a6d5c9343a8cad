package registry

import "fmt"

// VersionNotSatisfiedError is reported when the crate name exists but no
// available version matches the constraint exactly.
type VersionNotSatisfiedError struct {
	// Name is the requested crate name.
	Name string
	// Constraint is the version constraint that failed.
	Constraint string
	// Available lists the versions present in the store.
	Available []string
}

func (e *VersionNotSatisfiedError) Error() string {
	return fmt.Sprintf("no version of crate %q satisfies %q (available: %v)", e.Name, e.Constraint, e.Available)
}
