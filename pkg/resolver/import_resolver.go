package resolver

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cratelang/resolve/pkg/ast"
)

// ImportResolver implements the import pass: it installs one binding per
// direct crate import and one via-glob binding per public name supplied by a
// glob import.  The pass mutates only the owning scope's table and must run
// to completion before any reference resolution targets that scope.
type ImportResolver struct {
	logger zerolog.Logger
	crates CrateResolver
}

// NewImportResolver constructs an import resolver backed by the given crate
// resolver.
func NewImportResolver(logger zerolog.Logger, crates CrateResolver) *ImportResolver {
	return &ImportResolver{
		logger: logger.With().Str("pass", "imports").Logger(),
		crates: crates,
	}
}

// Resolve installs bindings for every import directive of the scope.  Direct
// crate imports are installed before glob imports so that a glob through a
// crate namespace does not depend on the textual position of the `use`
// directive; within each group, source order is preserved for deterministic
// conflict diagnostics.  All errors in the scope are collected.
func (r *ImportResolver) Resolve(ctx context.Context, scope *ModuleScope) error {
	var errs ErrorList
	for _, imp := range scope.Module().Imports {
		if imp.Kind != ast.ImportKindCrate {
			continue
		}
		errs.Append(r.resolveCrateImport(ctx, scope, imp))
	}
	for _, imp := range scope.Module().Imports {
		if imp.Kind != ast.ImportKindGlob {
			continue
		}
		errs.Append(r.resolveGlobImport(scope, imp))
	}
	return errs.ErrorOrNil()
}

func (r *ImportResolver) resolveCrateImport(ctx context.Context, scope *ModuleScope, imp *ast.Import) error {
	sym, ns, err := r.crates.ResolveCrate(ctx, imp.Crate, imp.Vers)
	if err != nil {
		return err
	}
	r.logger.Debug().
		Str("scope", scope.QualifiedName()).
		Stringer("crate", sym).
		Msg("bound crate import")
	// A direct import colliding with a local declaration or another
	// direct import is a duplicate-declaration class error.
	return scope.Table().Put(&SymbolBinding{
		Name:      imp.Crate,
		Origin:    OriginDirect,
		Symbol:    sym,
		Namespace: ns,
		Pos:       imp.Pos,
	})
}

func (r *ImportResolver) resolveGlobImport(scope *ModuleScope, imp *ast.Import) error {
	ns, err := r.globTarget(scope, imp)
	if err != nil {
		return err
	}
	var errs ErrorList
	for _, sym := range ns.GetSymbols("") {
		name := lastSegment(sym.Name)
		b := &SymbolBinding{
			Name:   name,
			Origin: OriginViaGlob,
			Symbol: sym,
			Pos:    imp.Pos,
		}
		if sub, ok := ns.GetScope(name); ok {
			b.Namespace = sub
		}
		errs.Append(scope.Table().Put(b))
	}
	r.logger.Debug().
		Str("scope", scope.QualifiedName()).
		Stringer("glob", imp).
		Msg("installed glob bindings")
	return errs.ErrorOrNil()
}

// globTarget resolves the glob directive's path to a module or crate
// namespace.  The head segment is searched in the owning scope and its
// lexical parent chain; remaining segments descend nested namespaces.
func (r *ImportResolver) globTarget(scope *ModuleScope, imp *ast.Import) (Scope, error) {
	var ns Scope
	for s := scope; s != nil; s = s.Parent() {
		b, ok, err := s.Table().Lookup(imp.Path[0])
		if err != nil {
			return nil, err
		}
		if ok {
			ns = b.Namespace
			break
		}
	}
	if ns == nil {
		return nil, &UnresolvedNameError{
			Name:  strings.Join(imp.Path, "::") + "::*",
			Scope: scope.QualifiedName(),
		}
	}
	for _, seg := range imp.Path[1:] {
		sub, ok := ns.GetScope(seg)
		if !ok {
			return nil, &UnresolvedNameError{
				Name:  strings.Join(imp.Path, "::") + "::*",
				Scope: scope.QualifiedName(),
			}
		}
		ns = sub
	}
	return ns, nil
}
