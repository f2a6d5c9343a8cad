package resolver_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/cratelang/resolve/pkg/ast"
	"github.com/cratelang/resolve/pkg/resolver"
	"github.com/cratelang/resolve/pkg/testutil"
)

func TestDeclCollector(t *testing.T) {
	for name, tc := range map[string]struct {
		mod     *ast.Module
		want    []string // binding names in table order
		wantErr error
	}{
		"degenerate": {
			mod: &ast.Module{Name: "m"},
		},
		"functions constants and modules": {
			mod: &ast.Module{
				Name: "m",
				Decls: []ast.Decl{
					&ast.FnDecl{Name: "f", Pub: true},
					&ast.ConstDecl{Name: "a", Pub: true, Value: 10},
					&ast.ModuleDecl{Name: "inner", Pub: true, Module: &ast.Module{Name: "inner"}},
				},
			},
			want: []string{"a", "f", "inner"},
		},
		"duplicate declaration": {
			mod: &ast.Module{
				Name: "m",
				Decls: []ast.Decl{
					&ast.FnDecl{Name: "f", Pos: ast.Pos{Line: 1, Col: 1}},
					&ast.ConstDecl{Name: "f", Pos: ast.Pos{Line: 2, Col: 1}},
				},
			},
			wantErr: errors.New(`duplicate declaration of "f" in "m" (first at 1:1, again at 2:1)`),
		},
	} {
		t.Run(name, func(t *testing.T) {
			scope := resolver.NewModuleTree(tc.mod)
			collector := resolver.NewDeclCollector(zerolog.Nop())
			err := collector.Collect(scope)
			if testutil.ExpectError(t, tc.wantErr, err) {
				return
			}
			var got []string
			for _, b := range scope.Table().Bindings() {
				got = append(got, b.Name)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeclCollectorOrderIndependence(t *testing.T) {
	decls := []ast.Decl{
		&ast.FnDecl{Name: "zum", Pub: true},
		&ast.ConstDecl{Name: "a", Pub: true, Value: 10},
		&ast.ModuleDecl{Name: "inner", Pub: true, Module: &ast.Module{Name: "inner"}},
	}
	permutations := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	var want string
	for i, perm := range permutations {
		permuted := make([]ast.Decl, len(decls))
		for j, k := range perm {
			permuted[j] = decls[k]
		}
		scope := resolver.NewModuleTree(&ast.Module{Name: "m", Decls: permuted})
		if err := resolver.NewDeclCollector(zerolog.Nop()).Collect(scope); err != nil {
			t.Fatal(err)
		}
		got := scope.Table().String()
		if i == 0 {
			want = got
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("permutation %v (-want +got):\n%s", perm, diff)
		}
	}
}

func TestDeclCollectorQualifiesNestedNames(t *testing.T) {
	mod := &ast.Module{
		Name: "outer",
		Decls: []ast.Decl{
			&ast.ModuleDecl{
				Name: "inner",
				Pub:  true,
				Module: &ast.Module{
					Name: "inner",
					Decls: []ast.Decl{
						&ast.ConstDecl{Name: "a", Pub: true, Value: 10},
					},
				},
			},
		},
	}
	root := resolver.NewModuleTree(mod)
	collector := resolver.NewDeclCollector(zerolog.Nop())
	if err := root.Walk(collector.Collect); err != nil {
		t.Fatal(err)
	}
	inner, ok := root.Child("inner")
	if !ok {
		t.Fatal("inner scope not built")
	}
	b, ok := inner.Table().Get("a")
	if !ok {
		t.Fatal("a not bound in inner")
	}
	if diff := cmp.Diff("outer::inner::a", b.Symbol.Name); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
