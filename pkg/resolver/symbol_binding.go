package resolver

import (
	"fmt"

	"github.com/cratelang/resolve/pkg/ast"
)

// BindingOrigin tags how a name entered a symbol table.  Lookup priority is
// Local > Direct > ViaGlob, checked once at bind time and once at lookup
// time rather than re-derived per reference.
type BindingOrigin int

const (
	// OriginLocal is a declaration in the owning module body.
	OriginLocal BindingOrigin = iota
	// OriginDirect is a direct (non-glob) import binding.
	OriginDirect
	// OriginViaGlob is a binding installed by a glob import.
	OriginViaGlob
)

// String implements fmt.Stringer
func (o BindingOrigin) String() string {
	switch o {
	case OriginLocal:
		return "local"
	case OriginDirect:
		return "direct"
	case OriginViaGlob:
		return "via-glob"
	default:
		return fmt.Sprintf("BindingOrigin(%d)", int(o))
	}
}

// SymbolBinding is the resolved outcome of one declaration or one import
// directive: a name in one scope bound to a concrete symbol.
type SymbolBinding struct {
	// Name is the identifier as visible in the owning scope.
	Name string
	// Origin says how the binding entered the scope.
	Origin BindingOrigin
	// Public reports whether the binding is visible outside the owning
	// module (glob imports only carry public bindings onward).
	Public bool
	// Symbol is the bound entity.
	Symbol *Symbol
	// Namespace is non-nil when the binding names a namespace that
	// qualified paths may descend into: a crate instance's export table
	// or a nested module.
	Namespace Scope
	// Pos is the source position of the declaration or directive that
	// created the binding.
	Pos ast.Pos
}

// String implements fmt.Stringer
func (b *SymbolBinding) String() string {
	return fmt.Sprintf("%s=%v<%v>", b.Name, b.Symbol, b.Origin)
}
