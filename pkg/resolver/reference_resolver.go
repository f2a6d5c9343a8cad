package resolver

import (
	"github.com/rs/zerolog"

	"github.com/cratelang/resolve/pkg/ast"
)

// ReferenceResolver implements the reference pass.  Resolution is pure: it
// only reads the tables built by the declaration and import passes, so
// running it twice on the same input yields the same result.
type ReferenceResolver struct {
	logger zerolog.Logger
}

// NewReferenceResolver constructs a reference resolver.
func NewReferenceResolver(logger zerolog.Logger) *ReferenceResolver {
	return &ReferenceResolver{
		logger: logger.With().Str("pass", "references").Logger(),
	}
}

// ResolveReference resolves one use-site against the given scope.  An
// unqualified identifier is searched in the scope's own table and then up
// the lexical parent chain.  A qualified path resolves its first segment the
// same way and then descends into the resolved namespace, never crossing a
// crate instance boundary implicitly.
func (r *ReferenceResolver) ResolveReference(ref *ast.Ref, scope *ModuleScope) (*SymbolBinding, error) {
	var binding *SymbolBinding
	for s := scope; s != nil; s = s.Parent() {
		b, ok, err := s.Table().Lookup(ref.Head())
		if err != nil {
			return nil, err
		}
		if ok {
			binding = b
			break
		}
	}
	if binding == nil {
		return nil, &UnresolvedNameError{
			Name:  ref.String(),
			Scope: scope.QualifiedName(),
		}
	}
	if !ref.Qualified() {
		return binding, nil
	}

	ns := binding.Namespace
	if ns == nil {
		return nil, &UnresolvedNameError{
			Name:  ref.String(),
			Scope: scope.QualifiedName(),
		}
	}
	rest := ref.Path[1:]
	for _, seg := range rest[:len(rest)-1] {
		sub, ok := ns.GetScope(seg)
		if !ok {
			return nil, &UnresolvedNameError{
				Name:  ref.String(),
				Scope: scope.QualifiedName(),
			}
		}
		ns = sub
	}
	sym, ok := ns.GetSymbol(rest[len(rest)-1])
	if !ok {
		return nil, &UnresolvedNameError{
			Name:  ref.String(),
			Scope: scope.QualifiedName(),
		}
	}
	resolved := &SymbolBinding{
		Name:   ref.String(),
		Origin: binding.Origin,
		Public: binding.Public,
		Symbol: sym,
		Pos:    ref.Pos,
	}
	if sub, ok := ns.GetScope(rest[len(rest)-1]); ok {
		resolved.Namespace = sub
	}
	return resolved, nil
}
