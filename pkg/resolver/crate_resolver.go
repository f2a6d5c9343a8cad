package resolver

import "context"

// CrateResolver resolves an external crate descriptor to the crate symbol
// and its export namespace.  The registry package provides the canonical
// implementation; the import resolver only depends on this seam.
type CrateResolver interface {
	// ResolveCrate resolves (name, version constraint) to a crate symbol
	// and the namespace of its exports.  An empty constraint means any
	// version, which must be unambiguous.
	ResolveCrate(ctx context.Context, name, versionConstraint string) (*Symbol, Scope, error)
}
