package phases_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pcj/mobyprogress"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/cratelang/resolve/pkg/ast"
	"github.com/cratelang/resolve/pkg/cratestore"
	"github.com/cratelang/resolve/pkg/phases"
	"github.com/cratelang/resolve/pkg/registry"
	"github.com/cratelang/resolve/pkg/resolver"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	store := cratestore.NewMemoryStore()
	require.NoError(t, store.Put("crateresolve3", &cratestore.Unit{
		Version: "0.1",
		Exports: map[string]cratestore.SymbolKind{"f": cratestore.KindFunc},
	}))
	require.NoError(t, store.Put("crateresolve3", &cratestore.Unit{
		Version: "0.2",
		Exports: map[string]cratestore.SymbolKind{"g": cratestore.KindFunc},
	}))
	return registry.NewRegistry(zerolog.Nop(), store)
}

func testDriver(t *testing.T, opts ...phases.Option) *phases.Driver {
	t.Helper()
	return phases.NewDriver(zerolog.New(zerolog.NewTestWriter(t)), testRegistry(t), opts...)
}

// Mirrors the crateresolve3 fixture: two modules link the same crate name at
// different versions without collision.
func TestDriverVersionedCrateImports(t *testing.T) {
	refAF := ast.NewRef("crateresolve3", "f")
	refBG := ast.NewRef("crateresolve3", "g")
	refMainA := ast.NewRef("a", "f")
	refMainB := ast.NewRef("b", "f")

	mod := &ast.Module{
		Decls: []ast.Decl{
			&ast.ModuleDecl{Name: "a", Pub: true, Module: &ast.Module{
				Name:    "a",
				Imports: []*ast.Import{ast.NewCrateImport("crateresolve3", "0.1")},
				Decls: []ast.Decl{
					&ast.FnDecl{Name: "f", Pub: true, Refs: []*ast.Ref{refAF}},
				},
			}},
			&ast.ModuleDecl{Name: "b", Pub: true, Module: &ast.Module{
				Name:    "b",
				Imports: []*ast.Import{ast.NewCrateImport("crateresolve3", "0.2")},
				Decls: []ast.Decl{
					&ast.FnDecl{Name: "f", Pub: true, Refs: []*ast.Ref{refBG}},
				},
			}},
			&ast.FnDecl{Name: "main", Refs: []*ast.Ref{refMainA, refMainB}},
		},
	}

	graph, err := testDriver(t).Resolve(context.Background(), mod)
	require.NoError(t, err)
	require.NoError(t, graph.Err())

	for _, tc := range []struct {
		ref  *ast.Ref
		want string
	}{
		{refAF, "crateresolve3@0.1::f"},
		{refBG, "crateresolve3@0.2::g"},
		{refMainA, "a::f"},
		{refMainB, "b::f"},
	} {
		res, ok := graph.At(tc.ref)
		require.True(t, ok, "no resolution for %v", tc.ref)
		require.NoError(t, res.Err)
		if diff := cmp.Diff(tc.want, res.Binding.Symbol.Name); diff != "" {
			t.Errorf("%v (-want +got):\n%s", tc.ref, diff)
		}
	}
}

// A module bound to version 0.1 must not see symbols that exist only in the
// 0.2 instance.
func TestDriverCrateVersionIsolation(t *testing.T) {
	refG := ast.NewRef("crateresolve3", "g")
	mod := &ast.Module{
		Decls: []ast.Decl{
			&ast.ModuleDecl{Name: "a", Pub: true, Module: &ast.Module{
				Name:    "a",
				Imports: []*ast.Import{ast.NewCrateImport("crateresolve3", "0.1")},
				Decls: []ast.Decl{
					&ast.FnDecl{Name: "f", Refs: []*ast.Ref{refG}},
				},
			}},
		},
	}

	graph, err := testDriver(t).Resolve(context.Background(), mod)
	require.NoError(t, err)

	res, ok := graph.At(refG)
	require.True(t, ok)
	var unresolved *resolver.UnresolvedNameError
	require.ErrorAs(t, res.Err, &unresolved)
	require.Equal(t, "crateresolve3::g", unresolved.Name)
}

// Mirrors the glob-export fixture: a glob import functions as an import when
// referenced within its own local scope, regardless of declaration order.
func TestDriverGlobForwardVisibility(t *testing.T) {
	for name, zumFirst := range map[string]bool{
		"zum declared before import target": true,
		"zum declared after import target":  false,
	} {
		t.Run(name, func(t *testing.T) {
			refA := ast.NewRef("a")
			zum := &ast.FnDecl{Name: "zum", Pub: true, Refs: []*ast.Ref{refA}}
			inner := &ast.ModuleDecl{Name: "inner", Pub: true, Module: &ast.Module{
				Name: "inner",
				Decls: []ast.Decl{
					&ast.ConstDecl{Name: "a", Pub: true, Value: 10},
				},
			}}
			decls := []ast.Decl{inner, zum}
			if zumFirst {
				decls = []ast.Decl{zum, inner}
			}
			mod := &ast.Module{
				Decls: []ast.Decl{
					&ast.ModuleDecl{Name: "outer", Pub: true, Module: &ast.Module{
						Name:    "outer",
						Imports: []*ast.Import{ast.NewGlobImport("inner")},
						Decls:   decls,
					}},
				},
			}

			graph, err := testDriver(t).Resolve(context.Background(), mod)
			require.NoError(t, err)
			require.NoError(t, graph.Err())

			res, ok := graph.At(refA)
			require.True(t, ok)
			require.NoError(t, res.Err)
			if diff := cmp.Diff("outer::inner::a", res.Binding.Symbol.Name); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestDriverLocalBeatsGlob(t *testing.T) {
	refX := ast.NewRef("x")
	mod := &ast.Module{
		Name:    "m",
		Imports: []*ast.Import{ast.NewGlobImport("other")},
		Decls: []ast.Decl{
			&ast.ConstDecl{Name: "x", Pub: true, Value: 1},
			&ast.ModuleDecl{Name: "other", Pub: true, Module: &ast.Module{
				Name: "other",
				Decls: []ast.Decl{
					&ast.ConstDecl{Name: "x", Pub: true, Value: 2},
				},
			}},
			&ast.FnDecl{Name: "f", Refs: []*ast.Ref{refX}},
		},
	}

	graph, err := testDriver(t).Resolve(context.Background(), mod)
	require.NoError(t, err)
	require.NoError(t, graph.Err())

	res, _ := graph.At(refX)
	require.NoError(t, res.Err)
	require.Equal(t, resolver.OriginLocal, res.Binding.Origin)
	if diff := cmp.Diff("m::x", res.Binding.Symbol.Name); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

// A resolution failure in one module must not block resolving unrelated
// sibling modules; the failed scope's later phases are reported as dependent
// failures.
func TestDriverPartialFailureIsolation(t *testing.T) {
	refGood := ast.NewRef("good", "x")
	mod := &ast.Module{
		Decls: []ast.Decl{
			&ast.ModuleDecl{Name: "bad", Pub: true, Module: &ast.Module{
				Name: "bad",
				Decls: []ast.Decl{
					&ast.FnDecl{Name: "f", Pos: ast.Pos{Line: 1, Col: 1}},
					&ast.ConstDecl{Name: "f", Pos: ast.Pos{Line: 2, Col: 1}},
				},
			}},
			&ast.ModuleDecl{Name: "good", Pub: true, Module: &ast.Module{
				Name: "good",
				Decls: []ast.Decl{
					&ast.ConstDecl{Name: "x", Pub: true, Value: 7},
				},
			}},
			&ast.FnDecl{Name: "main", Refs: []*ast.Ref{refGood}},
		},
	}

	graph, err := testDriver(t).Resolve(context.Background(), mod)
	require.NoError(t, err)

	// The unrelated reference resolves.
	res, ok := graph.At(refGood)
	require.True(t, ok)
	require.NoError(t, res.Err)
	if diff := cmp.Diff("good::x", res.Binding.Symbol.Name); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	// The bad scope failed its declaration pass and its later phases are
	// dependent failures carrying the original cause.
	result, ok := graph.Scope("bad")
	require.True(t, ok)
	require.Equal(t, resolver.StateFailed, result.State)
	require.NotEmpty(t, result.Errs)
	var dup *resolver.DuplicateDeclarationError
	require.ErrorAs(t, result.Errs[0], &dup)
	var dependent *phases.DependentFailureError
	require.ErrorAs(t, result.Errs[len(result.Errs)-1], &dependent)
	require.ErrorAs(t, dependent.Cause, &dup)

	// The aggregate error reports everything.
	require.Error(t, graph.Err())

	goodResult, ok := graph.Scope("good")
	require.True(t, ok)
	require.Equal(t, resolver.StateReferencesResolved, goodResult.State)
}

// An ambiguous crate version surfaces at the import phase boundary.
func TestDriverAmbiguousCrateVersion(t *testing.T) {
	mod := &ast.Module{
		Name:    "m",
		Imports: []*ast.Import{ast.NewCrateImport("crateresolve3", "")},
	}

	graph, err := testDriver(t).Resolve(context.Background(), mod)
	require.NoError(t, err)

	result, ok := graph.Scope("m")
	require.True(t, ok)
	require.Equal(t, resolver.StateFailed, result.State)
	var ambiguous *registry.AmbiguousCrateVersionError
	require.ErrorAs(t, result.Errs[0], &ambiguous)
	require.Equal(t, []string{"0.1", "0.2"}, ambiguous.Versions)
}

// Permuting declaration order never changes resolution outcomes.
func TestDriverOrderIndependence(t *testing.T) {
	build := func(swap bool) (*ast.Module, *ast.Ref) {
		ref := ast.NewRef("a")
		fn := &ast.FnDecl{Name: "zum", Refs: []*ast.Ref{ref}}
		c := &ast.ConstDecl{Name: "a", Pub: true, Value: 10}
		decls := []ast.Decl{fn, c}
		if swap {
			decls = []ast.Decl{c, fn}
		}
		return &ast.Module{Name: "m", Decls: decls}, ref
	}
	for _, swap := range []bool{false, true} {
		mod, ref := build(swap)
		graph, err := testDriver(t).Resolve(context.Background(), mod)
		require.NoError(t, err)
		require.NoError(t, graph.Err())
		res, _ := graph.At(ref)
		if diff := cmp.Diff("m::a", res.Binding.Symbol.Name); diff != "" {
			t.Errorf("swap=%v (-want +got):\n%s", swap, diff)
		}
	}
}

func TestDriverReportsProgress(t *testing.T) {
	var buf bytes.Buffer
	driver := testDriver(t,
		phases.WithProgress(mobyprogress.NewProgressOutput(&buf)),
		phases.WithParallelism(1),
	)
	mod := &ast.Module{
		Name: "m",
		Decls: []ast.Decl{
			&ast.ModuleDecl{Name: "inner", Pub: true, Module: &ast.Module{Name: "inner"}},
		},
	}
	_, err := driver.Resolve(context.Background(), mod)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "resolving references")
}

func TestDriverHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testDriver(t).Resolve(ctx, &ast.Module{Name: "m"})
	require.ErrorIs(t, err, context.Canceled)
}
