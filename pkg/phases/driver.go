package phases

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/pcj/mobyprogress"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cratelang/resolve/pkg/ast"
	"github.com/cratelang/resolve/pkg/resolver"
)

// Option configures a Driver.
type Option func(*Driver)

// WithProgress makes the driver report per-phase module counts to the given
// progress output.
func WithProgress(output mobyprogress.Output) Option {
	return func(d *Driver) {
		d.progress = output
	}
}

// WithParallelism caps the number of concurrent per-scope workers.
func WithParallelism(n int) Option {
	return func(d *Driver) {
		if n > 0 {
			d.parallelism = n
		}
	}
}

// Driver runs the per-scope state machine over a module tree:
// Declared -> DeclarationsCollected -> ImportsResolved -> ReferencesResolved.
// Transitions are strictly ordered.  A failed phase marks the scope failed
// and its later phases are reported as dependent failures, without blocking
// unrelated scopes.
type Driver struct {
	logger      zerolog.Logger
	decls       *resolver.DeclCollector
	imports     *resolver.ImportResolver
	refs        *resolver.ReferenceResolver
	progress    mobyprogress.Output
	parallelism int
}

// NewDriver constructs a driver backed by the given crate resolver.
func NewDriver(logger zerolog.Logger, crates resolver.CrateResolver, opts ...Option) *Driver {
	d := &Driver{
		logger:      logger.With().Str("component", "driver").Logger(),
		decls:       resolver.NewDeclCollector(logger),
		imports:     resolver.NewImportResolver(logger, crates),
		refs:        resolver.NewReferenceResolver(logger),
		parallelism: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Resolve builds the scope tree for the parsed root module and resolves it.
// The returned graph holds one outcome per use-site plus per-scope phase
// results; the returned error is reserved for infrastructure failures
// (cancellation, illegal transitions), never for resolution errors.
func (d *Driver) Resolve(ctx context.Context, mod *ast.Module) (*ReferenceGraph, error) {
	return d.ResolveTree(ctx, resolver.NewModuleTree(mod))
}

// ResolveTree resolves a pre-built scope tree.
func (d *Driver) ResolveTree(ctx context.Context, root *resolver.ModuleScope) (*ReferenceGraph, error) {
	graph := NewReferenceGraph()
	scopes := flatten(root)
	total := len(scopes)

	// Declaration stage.  Each scope's pass depends only on its own AST,
	// so all scopes run concurrently; completion closes the scope's
	// declaration barrier.
	var collected atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.parallelism)
	for _, scope := range scopes {
		scope := scope
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := d.collectDeclarations(graph, scope); err != nil {
				return err
			}
			d.step(&collected, total, writeCollectProgress)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Import stage.  A scope's import pass reads the declaration tables
	// of every namespace it globs into; the barriers make that
	// read-after-write dependency explicit.  Parents run before children
	// because a child's glob head may be a binding the parent's import
	// pass installs; siblings run concurrently.
	if err := d.awaitDeclarations(ctx, scopes); err != nil {
		return nil, err
	}
	var imported atomic.Int64
	if err := d.resolveImports(ctx, graph, root, &imported, total); err != nil {
		return nil, err
	}

	// Reference stage.  Tables are complete and immutable now; resolution
	// is pure reads and scopes run concurrently.
	var resolved atomic.Int64
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(d.parallelism)
	for _, scope := range scopes {
		scope := scope
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := d.resolveReferences(graph, scope); err != nil {
				return err
			}
			current := resolved.Add(1)
			if d.progress != nil {
				writeReferenceProgress(d.progress, int(current), total, int(current) == total)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return graph, nil
}

func (d *Driver) collectDeclarations(graph *ReferenceGraph, scope *resolver.ModuleScope) error {
	if err := d.decls.Collect(scope); err != nil {
		graph.putScope(scope.QualifiedName(), resolver.StateFailed, err)
		return scope.Advance(resolver.StateFailed)
	}
	graph.putScope(scope.QualifiedName(), resolver.StateDeclarationsCollected)
	return scope.Advance(resolver.StateDeclarationsCollected)
}

func (d *Driver) resolveImports(ctx context.Context, graph *ReferenceGraph, scope *resolver.ModuleScope, imported *atomic.Int64, total int) error {
	switch {
	case scope.State() == resolver.StateFailed:
		d.reportDependent(graph, scope, resolver.StateImportsResolved)
	default:
		if err := d.imports.Resolve(ctx, scope); err != nil {
			graph.putScope(scope.QualifiedName(), resolver.StateFailed, err)
			if err := scope.Advance(resolver.StateFailed); err != nil {
				return err
			}
		} else {
			graph.putScope(scope.QualifiedName(), resolver.StateImportsResolved)
			if err := scope.Advance(resolver.StateImportsResolved); err != nil {
				return err
			}
		}
	}
	d.step(imported, total, writeImportProgress)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.parallelism)
	for _, child := range scope.Children() {
		child := child
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return d.resolveImports(gctx, graph, child, imported, total)
		})
	}
	return g.Wait()
}

func (d *Driver) resolveReferences(graph *ReferenceGraph, scope *resolver.ModuleScope) error {
	if scope.State() == resolver.StateFailed {
		d.reportDependent(graph, scope, resolver.StateReferencesResolved)
		return nil
	}
	for _, decl := range scope.Module().Decls {
		fn, ok := decl.(*ast.FnDecl)
		if !ok {
			continue
		}
		for _, ref := range fn.Refs {
			binding, err := d.refs.ResolveReference(ref, scope)
			graph.putResolution(&Resolution{
				Ref:     ref,
				Scope:   scope.QualifiedName(),
				Fn:      fn.Name,
				Binding: binding,
				Err:     err,
			})
		}
	}
	graph.putScope(scope.QualifiedName(), resolver.StateReferencesResolved)
	return scope.Advance(resolver.StateReferencesResolved)
}

// reportDependent records a skipped phase for a scope whose earlier phase
// failed, carrying the original cause.
func (d *Driver) reportDependent(graph *ReferenceGraph, scope *resolver.ModuleScope, phase resolver.ScopeState) {
	var cause error
	if result, ok := graph.Scope(scope.QualifiedName()); ok && len(result.Errs) > 0 {
		cause = result.Errs[0]
	}
	graph.putScope(scope.QualifiedName(), resolver.StateFailed, &DependentFailureError{
		Scope: scope.QualifiedName(),
		Phase: phase,
		Cause: cause,
	})
}

// awaitDeclarations blocks until every scope's declaration barrier has
// closed or the context is cancelled.
func (d *Driver) awaitDeclarations(ctx context.Context, scopes []*resolver.ModuleScope) error {
	for _, scope := range scopes {
		select {
		case <-scope.DeclarationBarrier():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (d *Driver) step(counter *atomic.Int64, total int, write func(mobyprogress.Output, int, int)) {
	current := counter.Add(1)
	if d.progress != nil {
		write(d.progress, int(current), total)
	}
}

func flatten(root *resolver.ModuleScope) (scopes []*resolver.ModuleScope) {
	root.Walk(func(scope *resolver.ModuleScope) error {
		scopes = append(scopes, scope)
		return nil
	})
	return
}
