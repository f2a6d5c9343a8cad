package registry

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cratelang/resolve/pkg/resolver"
)

// CrateInstance is the resolved external unit for one concrete
// (name, exact version) pair.  Two instances with the same name but
// different versions are distinct entities with independent export tables;
// they are never merged.  Instances are created once, cached by the
// registry, and never mutated after creation.
type CrateInstance struct {
	// Name is the crate name.
	Name string
	// Version is the exact version string of the loaded unit.
	Version string
	// ID distinguishes this instance from any other, including
	// same-named instances of other versions, for downstream consumers.
	ID uuid.UUID

	exports *resolver.TrieScope
}

// Key returns the "name@version" instance key.
func (i *CrateInstance) Key() string {
	return i.Name + "@" + i.Version
}

// Exports returns the instance's export table as a read-only scope.
func (i *CrateInstance) Exports() resolver.Scope {
	return i.exports
}

// Symbol returns the crate symbol bound by a direct import of this
// instance.
func (i *CrateInstance) Symbol() *resolver.Symbol {
	return resolver.NewSymbol(resolver.SymbolCrate, i.Key(), i.Key())
}

// String implements fmt.Stringer
func (i *CrateInstance) String() string {
	return fmt.Sprintf("%s<%s>", i.Key(), i.ID)
}
