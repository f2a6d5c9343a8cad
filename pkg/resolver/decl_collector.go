package resolver

import (
	"github.com/rs/zerolog"

	"github.com/cratelang/resolve/pkg/ast"
)

// DeclCollector implements the declaration pass: it populates a module
// scope's symbol table from the module's local declarations only, without
// inspecting import directives or resolving any reference.  The resulting
// table is identical regardless of the textual order of declarations.
type DeclCollector struct {
	logger zerolog.Logger
}

// NewDeclCollector constructs a collector.
func NewDeclCollector(logger zerolog.Logger) *DeclCollector {
	return &DeclCollector{
		logger: logger.With().Str("pass", "declarations").Logger(),
	}
}

// Collect binds every declaration of the scope's module body.  Nested
// modules are bound here but not descended into; each scope collects its own
// declarations so that disjoint subtrees can be processed concurrently.
// All duplicate-declaration errors in the scope are collected, not just the
// first.
func (c *DeclCollector) Collect(scope *ModuleScope) error {
	var errs ErrorList
	for _, decl := range scope.Module().Decls {
		errs.Append(scope.Table().Put(c.binding(scope, decl)))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}
	c.logger.Debug().
		Str("scope", scope.QualifiedName()).
		Int("bindings", scope.Table().Len()).
		Msg("collected declarations")
	return nil
}

func (c *DeclCollector) binding(scope *ModuleScope, decl ast.Decl) *SymbolBinding {
	qualified := decl.DeclName()
	if scope.QualifiedName() != "" {
		qualified = scope.QualifiedName() + "::" + decl.DeclName()
	}
	b := &SymbolBinding{
		Name:   decl.DeclName(),
		Origin: OriginLocal,
		Public: decl.Exported(),
		Pos:    decl.DeclPos(),
	}
	switch decl := decl.(type) {
	case *ast.FnDecl:
		b.Symbol = NewSymbol(SymbolFunc, qualified, ProviderSource)
	case *ast.ConstDecl:
		b.Symbol = NewSymbol(SymbolConst, qualified, ProviderSource)
	case *ast.ModuleDecl:
		b.Symbol = NewSymbol(SymbolModule, qualified, ProviderSource)
		if child, ok := scope.Child(decl.Name); ok {
			b.Namespace = child.Namespace()
		}
	}
	return b
}
