package cratestore

import "fmt"

// SymbolKind classifies an exported symbol in a crate's metadata.
type SymbolKind string

const (
	KindFunc   SymbolKind = "fn"
	KindConst  SymbolKind = "const"
	KindModule SymbolKind = "mod"
)

// Unit is one compiled crate version together with its exported symbol set.
type Unit struct {
	// Version is the exact version string of the unit, e.g. "0.1".
	Version string
	// Exports maps each exported symbol name to its kind.
	Exports map[string]SymbolKind
}

// String implements fmt.Stringer
func (u *Unit) String() string {
	return fmt.Sprintf("(%s: %d exports)", u.Version, len(u.Exports))
}

// Store is the crate-lookup interface backed by external storage (linker
// metadata).  Implementations are read-only from the resolver's point of
// view; a failed load is immediately fatal for the resolution request that
// triggered it, never retried.
type Store interface {
	// Lookup returns all known units for the given crate name, or an
	// empty slice if the name is unknown.  Unit order is unspecified.
	Lookup(name string) ([]*Unit, error)
}
