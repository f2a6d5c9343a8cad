package resolver

import (
	"strings"

	"github.com/cratelang/resolve/pkg/collections"
)

// SymbolTable is the per-module mapping from identifier to binding.  Local
// and direct bindings are exclusive per name; via-glob bindings are kept
// aside as candidates so that an ambiguity between two glob imports is only
// reported when the name is actually referenced.
type SymbolTable struct {
	// scope is the qualified name of the owning module, for diagnostics.
	scope string
	// bindings holds Local and Direct bindings, at most one per name.
	bindings map[string]*SymbolBinding
	// globs holds ViaGlob candidates, possibly several per name.
	globs map[string][]*SymbolBinding
}

// NewSymbolTable constructs an empty table for the named scope.
func NewSymbolTable(scope string) *SymbolTable {
	return &SymbolTable{
		scope:    scope,
		bindings: make(map[string]*SymbolBinding),
		globs:    make(map[string][]*SymbolBinding),
	}
}

// Put installs a binding.  A second Local or Direct binding of an
// already-bound name is a DuplicateDeclarationError, detected here at
// install time, not at first use.  ViaGlob bindings never conflict at
// install time; candidates that denote the identical symbol are coalesced.
func (t *SymbolTable) Put(b *SymbolBinding) error {
	if b.Origin == OriginViaGlob {
		for _, candidate := range t.globs[b.Name] {
			if candidate.Symbol.Same(b.Symbol) {
				return nil
			}
		}
		t.globs[b.Name] = append(t.globs[b.Name], b)
		return nil
	}
	if existing, ok := t.bindings[b.Name]; ok {
		return &DuplicateDeclarationError{
			Name:   b.Name,
			Scope:  t.scope,
			First:  existing.Pos,
			Second: b.Pos,
		}
	}
	t.bindings[b.Name] = b
	return nil
}

// Lookup resolves a name against the table, applying origin priority: a
// Local or Direct binding always wins over via-glob candidates.  Two or more
// distinct via-glob candidates for a referenced name is an
// AmbiguousGlobImportError.
func (t *SymbolTable) Lookup(name string) (*SymbolBinding, bool, error) {
	if b, ok := t.bindings[name]; ok {
		return b, true, nil
	}
	candidates := t.globs[name]
	switch len(candidates) {
	case 0:
		return nil, false, nil
	case 1:
		return candidates[0], true, nil
	default:
		sources := make([]string, len(candidates))
		for i, candidate := range candidates {
			sources[i] = candidate.Symbol.Name
		}
		return nil, false, &AmbiguousGlobImportError{
			Name:    name,
			Scope:   t.scope,
			Sources: sources,
		}
	}
}

// Get returns the Local or Direct binding for the name, ignoring via-glob
// candidates.
func (t *SymbolTable) Get(name string) (*SymbolBinding, bool) {
	b, ok := t.bindings[name]
	return b, ok
}

// Bindings returns all Local and Direct bindings sorted by name.
func (t *SymbolTable) Bindings() []*SymbolBinding {
	bindings := make([]*SymbolBinding, 0, len(t.bindings))
	for _, name := range collections.SortedKeys(t.bindings) {
		bindings = append(bindings, t.bindings[name])
	}
	return bindings
}

// Len returns the number of Local and Direct bindings.
func (t *SymbolTable) Len() int {
	return len(t.bindings)
}

// String implements fmt.Stringer
func (t *SymbolTable) String() string {
	var buf strings.Builder
	for _, b := range t.Bindings() {
		buf.WriteString(b.String())
		buf.WriteRune('\n')
	}
	return buf.String()
}
