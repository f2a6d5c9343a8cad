package resolver

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cratelang/resolve/pkg/ast"
	"github.com/cratelang/resolve/pkg/collections"
)

// ScopeState is the resolution lifecycle of one ModuleScope.  Transitions
// are strictly ordered; no state may be skipped.
type ScopeState int

const (
	StateDeclared ScopeState = iota
	StateDeclarationsCollected
	StateImportsResolved
	StateReferencesResolved
	// StateFailed is terminal: a phase failed and later phases for this
	// scope are skipped.  Sibling scopes are unaffected.
	StateFailed
)

// String implements fmt.Stringer
func (s ScopeState) String() string {
	switch s {
	case StateDeclared:
		return "Declared"
	case StateDeclarationsCollected:
		return "DeclarationsCollected"
	case StateImportsResolved:
		return "ImportsResolved"
	case StateReferencesResolved:
		return "ReferencesResolved"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("ScopeState(%d)", int(s))
	}
}

// ModuleScope is a node in the module scope tree.  It owns its SymbolTable
// and its child scopes; the parent link is a non-owning back-reference used
// only for lookup chaining.
type ModuleScope struct {
	name      string
	qualified string
	mod       *ast.Module
	parent    *ModuleScope
	children  map[string]*ModuleScope
	table     *SymbolTable
	state     ScopeState
	// declared is closed when the declaration pass for this scope has
	// finished, successfully or not, acting as the completion barrier for
	// readers of the scope's namespace.
	declared     chan struct{}
	declaredOnce sync.Once
}

// NewModuleTree builds the scope tree for a parsed root module.  Tables are
// created empty; they are populated by the declaration and import passes.
func NewModuleTree(mod *ast.Module) *ModuleScope {
	return newModuleScope(mod, nil)
}

func newModuleScope(mod *ast.Module, parent *ModuleScope) *ModuleScope {
	qualified := mod.Name
	if parent != nil && parent.qualified != "" {
		qualified = parent.qualified + "::" + mod.Name
	}
	s := &ModuleScope{
		name:      mod.Name,
		qualified: qualified,
		mod:       mod,
		parent:    parent,
		children:  make(map[string]*ModuleScope),
		table:     NewSymbolTable(qualified),
		declared:  make(chan struct{}),
	}
	for _, decl := range mod.Modules() {
		if _, ok := s.children[decl.Name]; ok {
			// The declaration pass reports the duplicate; keep the
			// first child for tree shape.
			continue
		}
		s.children[decl.Name] = newModuleScope(decl.Module, s)
	}
	return s
}

// Name returns the local module name.
func (s *ModuleScope) Name() string { return s.name }

// QualifiedName returns the "::"-joined path of the scope from the root.
func (s *ModuleScope) QualifiedName() string { return s.qualified }

// Module returns the AST node the scope was built from.
func (s *ModuleScope) Module() *ast.Module { return s.mod }

// Parent returns the enclosing scope, or nil at the root.
func (s *ModuleScope) Parent() *ModuleScope { return s.parent }

// Table returns the scope's symbol table.
func (s *ModuleScope) Table() *SymbolTable { return s.table }

// Child returns the nested scope with the given name.
func (s *ModuleScope) Child(name string) (*ModuleScope, bool) {
	child, ok := s.children[name]
	return child, ok
}

// Children returns the nested scopes sorted by name.
func (s *ModuleScope) Children() []*ModuleScope {
	children := make([]*ModuleScope, 0, len(s.children))
	for _, name := range collections.SortedKeys(s.children) {
		children = append(children, s.children[name])
	}
	return children
}

// State returns the current lifecycle state.
func (s *ModuleScope) State() ScopeState { return s.state }

// Advance moves the scope to the next lifecycle state.  Only the immediate
// successor state or StateFailed is legal.
func (s *ModuleScope) Advance(next ScopeState) error {
	if next != StateFailed && next != s.state+1 {
		return fmt.Errorf("illegal scope transition for %q: %v -> %v", s.qualified, s.state, next)
	}
	if s.state == StateFailed {
		return fmt.Errorf("scope %q already failed", s.qualified)
	}
	s.state = next
	if next == StateDeclarationsCollected || next == StateFailed {
		s.declaredOnce.Do(func() { close(s.declared) })
	}
	return nil
}

// DeclarationBarrier returns a channel closed once the declaration pass for
// this scope has completed.  Import resolution that reads into this scope's
// namespace waits on the barrier rather than taking a lock; the table is
// never mutated by the declaration pass after the barrier closes.
func (s *ModuleScope) DeclarationBarrier() <-chan struct{} {
	return s.declared
}

// Walk visits the scope and all nested scopes depth-first, children before
// parent.
func (s *ModuleScope) Walk(visit func(*ModuleScope) error) error {
	for _, child := range s.Children() {
		if err := child.Walk(visit); err != nil {
			return err
		}
	}
	return visit(s)
}

// Namespace returns the externally visible view of the scope: its public
// local declarations.  Import bindings are private to the module and never
// reachable through a qualified path or glob from outside.
func (s *ModuleScope) Namespace() Scope {
	return &moduleNamespace{scope: s}
}

// moduleNamespace adapts a ModuleScope's public declarations to the Scope
// interface.
type moduleNamespace struct {
	scope *ModuleScope
}

// GetSymbol implements part of the Scope interface.
func (n *moduleNamespace) GetSymbol(name string) (*Symbol, bool) {
	b, ok := n.scope.table.Get(name)
	if !ok || b.Origin != OriginLocal || !b.Public {
		return nil, false
	}
	return b.Symbol, true
}

// GetScope implements part of the Scope interface.
func (n *moduleNamespace) GetScope(name string) (Scope, bool) {
	b, ok := n.scope.table.Get(name)
	if !ok || b.Origin != OriginLocal || !b.Public || b.Namespace == nil {
		return nil, false
	}
	return b.Namespace, true
}

// GetSymbols implements part of the Scope interface.
func (n *moduleNamespace) GetSymbols(prefix string) (symbols []*Symbol) {
	for _, b := range n.scope.table.Bindings() {
		if b.Origin != OriginLocal || !b.Public {
			continue
		}
		if prefix == "" || strings.HasPrefix(b.Name, prefix) {
			symbols = append(symbols, b.Symbol)
		}
	}
	return
}

// PutSymbol is not supported on a namespace view.
func (n *moduleNamespace) PutSymbol(sym *Symbol) error {
	return fmt.Errorf("unsupported operation: PutSymbol")
}

// String implements the fmt.Stringer interface.
func (n *moduleNamespace) String() string {
	return fmt.Sprintf("module %s", n.scope.qualified)
}
