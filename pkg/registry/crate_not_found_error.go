package registry

import "fmt"

// CrateNotFoundError is reported when no external unit with the requested
// name exists in the store.
type CrateNotFoundError struct {
	// Name is the requested crate name.
	Name string
}

func (e *CrateNotFoundError) Error() string {
	return fmt.Sprintf("crate not found: %q", e.Name)
}
