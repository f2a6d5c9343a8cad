package phases

import (
	"sort"
	"sync"

	"github.com/cratelang/resolve/pkg/ast"
	"github.com/cratelang/resolve/pkg/resolver"
)

// Resolution is the outcome for one use-site: a resolved binding or a
// structured resolution error, never both.
type Resolution struct {
	// Ref is the use-site.
	Ref *ast.Ref
	// Scope is the qualified name of the module containing the use-site.
	Scope string
	// Fn is the name of the enclosing function.
	Fn string
	// Binding is the resolved binding, nil on error.
	Binding *resolver.SymbolBinding
	// Err is the resolution error, nil on success.
	Err error
}

// ScopeResult records the final lifecycle state of one module scope and any
// errors its phases produced.
type ScopeResult struct {
	// Scope is the qualified module name.
	Scope string
	// State is the final lifecycle state.
	State resolver.ScopeState
	// Errs are the phase errors, in detection order.
	Errs []error
}

// ReferenceGraph is the engine's output: for every use-site in the input
// tree, either a resolved SymbolBinding or a structured resolution error,
// plus per-scope phase outcomes.  Safe for concurrent writes during the
// reference pass.
type ReferenceGraph struct {
	mu          sync.Mutex
	resolutions map[*ast.Ref]*Resolution
	order       []*Resolution
	scopes      map[string]*ScopeResult
}

// NewReferenceGraph constructs an empty graph.
func NewReferenceGraph() *ReferenceGraph {
	return &ReferenceGraph{
		resolutions: make(map[*ast.Ref]*Resolution),
		scopes:      make(map[string]*ScopeResult),
	}
}

func (g *ReferenceGraph) putResolution(res *Resolution) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resolutions[res.Ref] = res
	g.order = append(g.order, res)
}

func (g *ReferenceGraph) putScope(scope string, state resolver.ScopeState, errs ...error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	result, ok := g.scopes[scope]
	if !ok {
		result = &ScopeResult{Scope: scope}
		g.scopes[scope] = result
	}
	result.State = state
	for _, err := range errs {
		if err != nil {
			result.Errs = append(result.Errs, err)
		}
	}
}

// At returns the resolution for the given use-site.
func (g *ReferenceGraph) At(ref *ast.Ref) (*Resolution, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	res, ok := g.resolutions[ref]
	return res, ok
}

// Resolutions returns all use-site outcomes in insertion order.
func (g *ReferenceGraph) Resolutions() []*Resolution {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*Resolution(nil), g.order...)
}

// Scope returns the phase outcome for the named module.
func (g *ReferenceGraph) Scope(name string) (*ScopeResult, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	result, ok := g.scopes[name]
	return result, ok
}

// ScopeResults returns all per-scope outcomes sorted by scope name.
func (g *ReferenceGraph) ScopeResults() []*ScopeResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	results := make([]*ScopeResult, 0, len(g.scopes))
	for _, result := range g.scopes {
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Scope < results[j].Scope
	})
	return results
}

// Err aggregates every phase and reference error in the graph, or nil if
// resolution succeeded everywhere.
func (g *ReferenceGraph) Err() error {
	var errs resolver.ErrorList
	for _, result := range g.ScopeResults() {
		for _, err := range result.Errs {
			errs.Append(err)
		}
	}
	for _, res := range g.Resolutions() {
		errs.Append(res.Err)
	}
	return errs.ErrorOrNil()
}
