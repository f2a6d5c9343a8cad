package resolver

import "fmt"

// SymbolKind classifies what a resolved symbol is.
type SymbolKind int

const (
	SymbolFunc SymbolKind = iota
	SymbolConst
	SymbolModule
	SymbolCrate
)

// String implements fmt.Stringer
func (k SymbolKind) String() string {
	switch k {
	case SymbolFunc:
		return "FUNC"
	case SymbolConst:
		return "CONST"
	case SymbolModule:
		return "MODULE"
	case SymbolCrate:
		return "CRATE"
	default:
		return fmt.Sprintf("SymbolKind(%d)", int(k))
	}
}

// ProviderSource is the provider name for symbols declared in the module
// tree under resolution, as opposed to symbols loaded from external crates.
const ProviderSource = "source"

// Symbol associates a fully-qualified name with the provider that supplies
// it, along with a type classifier that says what kind of symbol it is.
type Symbol struct {
	// Kind is the kind of symbol this is.
	Kind SymbolKind
	// Name is the fully-qualified name, "::"-separated.  Symbols provided
	// by an external crate are qualified by the crate instance, e.g.
	// "crateresolve3@0.1::f".
	Name string
	// Provider is the name of the provider that supplied the symbol:
	// "source" for local declarations, or the crate instance key
	// (e.g. "foo@0.1") for external symbols.
	Provider string
}

// NewSymbol constructs a new symbol pointer with the given arguments.
func NewSymbol(kind SymbolKind, name, provider string) *Symbol {
	return &Symbol{
		Kind:     kind,
		Name:     name,
		Provider: provider,
	}
}

// Same reports whether two symbols denote the identical entity.  Two glob
// imports that supply the same entity under the same name do not conflict.
func (s *Symbol) Same(other *Symbol) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	return s.Name == other.Name && s.Provider == other.Provider
}

// String implements fmt.Stringer
func (s *Symbol) String() string {
	return fmt.Sprintf("(%s<%v> %s)", s.Name, s.Kind, s.Provider)
}
