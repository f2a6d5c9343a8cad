package ast

import (
	"fmt"
	"strings"
)

// ImportKind discriminates the two directive forms the resolver understands.
type ImportKind int

const (
	// ImportKindCrate is a direct external crate import, optionally
	// version-qualified: `use name(vers = "v");`.
	ImportKindCrate ImportKind = iota
	// ImportKindGlob is a glob import: `import path::*;`.
	ImportKindGlob
)

// String implements fmt.Stringer
func (k ImportKind) String() string {
	switch k {
	case ImportKindCrate:
		return "crate"
	case ImportKindGlob:
		return "glob"
	default:
		return fmt.Sprintf("ImportKind(%d)", int(k))
	}
}

// Import is one use/import directive.  The directive occupies a fixed source
// position but its effect is scope-wide.
type Import struct {
	// Kind is the directive form.
	Kind ImportKind
	// Crate is the external crate name (crate imports only).
	Crate string
	// Vers is the version constraint; empty means any version, which must
	// be unambiguous (crate imports only).
	Vers string
	// Path is the glob target path, e.g. ["inner"] or ["foo", "bar"]
	// (glob imports only).
	Path []string
	// Pos is the source position of the directive.
	Pos Pos
}

// NewCrateImport creates a direct crate import with an optional version
// constraint.
func NewCrateImport(crate, vers string) *Import {
	return &Import{
		Kind:  ImportKindCrate,
		Crate: crate,
		Vers:  vers,
	}
}

// NewGlobImport creates a glob import of all public names at path.
func NewGlobImport(path ...string) *Import {
	return &Import{
		Kind: ImportKindGlob,
		Path: path,
	}
}

// String implements fmt.Stringer
func (imp *Import) String() string {
	switch imp.Kind {
	case ImportKindCrate:
		if imp.Crate == "" {
			panic("crate name should always be set for a crate import: this is a bug")
		}
		if imp.Vers == "" {
			return fmt.Sprintf("use %s", imp.Crate)
		}
		return fmt.Sprintf("use %s(vers = %q)", imp.Crate, imp.Vers)
	case ImportKindGlob:
		if len(imp.Path) == 0 {
			panic("path should always be set for a glob import: this is a bug")
		}
		return fmt.Sprintf("import %s::*", strings.Join(imp.Path, "::"))
	default:
		return fmt.Sprintf("%v", imp.Kind)
	}
}
