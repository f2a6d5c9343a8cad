package ast

import "fmt"

// Pos locates a node in its source file.
type Pos struct {
	Line int
	Col  int
}

// String implements fmt.Stringer
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Decl is a declaration that introduces a name into its enclosing module
// scope.  The parser produces one Decl per function, constant, or nested
// module.
type Decl interface {
	// DeclName returns the identifier the declaration introduces.
	DeclName() string
	// DeclPos returns the source position of the declaration.
	DeclPos() Pos
	// Exported reports whether the name is publicly visible outside the
	// owning module (glob imports only carry exported names).
	Exported() bool
}

// Module is one node of the parsed module tree.  Decls and Imports preserve
// source order, but declaration collection must not depend on it.
type Module struct {
	// Name is the module identifier.  The root module conventionally has
	// the empty name.
	Name string
	// Imports are the use/import directives of the module body, in source
	// order.
	Imports []*Import
	// Decls are the declarations of the module body, in source order.
	Decls []Decl
}

// Modules returns the nested module declarations of m.
func (m *Module) Modules() (mods []*ModuleDecl) {
	for _, decl := range m.Decls {
		if mod, ok := decl.(*ModuleDecl); ok {
			mods = append(mods, mod)
		}
	}
	return
}

// FnDecl declares a function.  Refs are the identifier uses appearing in the
// function body; the resolver does not model any other body content.
type FnDecl struct {
	Name string
	Pos  Pos
	Pub  bool
	Refs []*Ref
}

// DeclName implements part of the Decl interface.
func (d *FnDecl) DeclName() string { return d.Name }

// DeclPos implements part of the Decl interface.
func (d *FnDecl) DeclPos() Pos { return d.Pos }

// Exported implements part of the Decl interface.
func (d *FnDecl) Exported() bool { return d.Pub }

// ConstDecl declares a constant with a literal initializer.
type ConstDecl struct {
	Name  string
	Pos   Pos
	Pub   bool
	Value int64
}

// DeclName implements part of the Decl interface.
func (d *ConstDecl) DeclName() string { return d.Name }

// DeclPos implements part of the Decl interface.
func (d *ConstDecl) DeclPos() Pos { return d.Pos }

// Exported implements part of the Decl interface.
func (d *ConstDecl) Exported() bool { return d.Pub }

// ModuleDecl declares a nested module.
type ModuleDecl struct {
	Name   string
	Pos    Pos
	Pub    bool
	Module *Module
}

// DeclName implements part of the Decl interface.
func (d *ModuleDecl) DeclName() string { return d.Name }

// DeclPos implements part of the Decl interface.
func (d *ModuleDecl) DeclPos() Pos { return d.Pos }

// Exported implements part of the Decl interface.
func (d *ModuleDecl) Exported() bool { return d.Pub }
