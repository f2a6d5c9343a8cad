package resolver

import "fmt"

// Scope is a read interface over a namespace of symbols.  Both crate export
// tables and module namespaces implement it; the reference resolver descends
// through scopes one path segment at a time and never mutates them.
type Scope interface {
	fmt.Stringer

	// GetScope returns the nested namespace bound under the given name.
	GetScope(name string) (Scope, bool)

	// GetSymbol does a lookup of the given symbol name and returns the
	// symbol.  If not known `(nil, false)` is returned.
	GetSymbol(name string) (*Symbol, bool)

	// GetSymbols does a lookup of the given prefix and returns the
	// matching symbols, sorted by name.
	GetSymbols(prefix string) []*Symbol

	// PutSymbol adds the given symbol to the scope.  It is an error to
	// attempt duplicate registration of the same symbol twice, and
	// read-only scope views reject all puts.
	PutSymbol(sym *Symbol) error
}
