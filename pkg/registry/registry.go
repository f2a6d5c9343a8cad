package registry

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/cratelang/resolve/pkg/cratestore"
	"github.com/cratelang/resolve/pkg/resolver"
)

// Registry tracks known external crate units and resolves descriptors to
// crate instances.  The instance cache is the engine's one piece of shared
// mutable state: concurrent resolves for the same descriptor collapse to a
// single store load, and every caller gets the identical cached instance.
type Registry struct {
	logger zerolog.Logger
	store  cratestore.Store

	mu        sync.RWMutex
	instances map[string]*CrateInstance
	group     singleflight.Group
}

// NewRegistry constructs a registry over the given store.
func NewRegistry(logger zerolog.Logger, store cratestore.Store) *Registry {
	return &Registry{
		logger:    logger.With().Str("component", "registry").Logger(),
		store:     store,
		instances: make(map[string]*CrateInstance),
	}
}

// Resolve looks up or loads the unit matching the descriptor.  Version
// selection is exact-match; load failure is fatal for this request, never
// retried.
func (r *Registry) Resolve(ctx context.Context, d CrateDescriptor) (*CrateInstance, error) {
	v, err, _ := r.group.Do(d.Key(), func() (interface{}, error) {
		return r.resolve(d)
	})
	if err != nil {
		return nil, err
	}
	return v.(*CrateInstance), nil
}

func (r *Registry) resolve(d CrateDescriptor) (*CrateInstance, error) {
	units, err := r.store.Lookup(d.Name)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, &CrateNotFoundError{Name: d.Name}
	}

	unit, err := selectUnit(d, units)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	instance, ok := r.instances[d.Name+"@"+unit.Version]
	r.mu.RUnlock()
	if ok {
		return instance, nil
	}

	instance, err = r.load(d.Name, unit)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// An unconstrained descriptor may race a constrained one to the same
	// (name, version); the first loaded instance wins so that all callers
	// share one entity.
	if existing, ok := r.instances[instance.Key()]; ok {
		return existing, nil
	}
	r.instances[instance.Key()] = instance
	return instance, nil
}

func selectUnit(d CrateDescriptor, units []*cratestore.Unit) (*cratestore.Unit, error) {
	if d.VersionConstraint == "" {
		if len(units) > 1 {
			return nil, &AmbiguousCrateVersionError{
				Name:     d.Name,
				Versions: versionsOf(units),
			}
		}
		return units[0], nil
	}
	for _, unit := range units {
		if unit.Version == d.VersionConstraint {
			return unit, nil
		}
	}
	return nil, &VersionNotSatisfiedError{
		Name:       d.Name,
		Constraint: d.VersionConstraint,
		Available:  versionsOf(units),
	}
}

// load builds a crate instance and its export table from unit metadata.
func (r *Registry) load(name string, unit *cratestore.Unit) (*CrateInstance, error) {
	instance := &CrateInstance{
		Name:    name,
		Version: unit.Version,
		ID:      uuid.New(),
		exports: resolver.NewTrieScope(),
	}
	for symbol, kind := range unit.Exports {
		sym := resolver.NewSymbol(symbolKind(kind), instance.Key()+"::"+symbol, instance.Key())
		if err := instance.exports.PutSymbol(sym); err != nil {
			return nil, err
		}
	}
	r.logger.Debug().
		Stringer("instance", instance).
		Int("exports", len(unit.Exports)).
		Msg("loaded crate instance")
	return instance, nil
}

func versionsOf(units []*cratestore.Unit) []string {
	versions := make([]string, len(units))
	for i, unit := range units {
		versions[i] = unit.Version
	}
	sort.Strings(versions)
	return versions
}

func symbolKind(kind cratestore.SymbolKind) resolver.SymbolKind {
	switch kind {
	case cratestore.KindConst:
		return resolver.SymbolConst
	case cratestore.KindModule:
		return resolver.SymbolModule
	default:
		return resolver.SymbolFunc
	}
}

// ResolveCrate implements the resolver.CrateResolver interface.
func (r *Registry) ResolveCrate(ctx context.Context, name, versionConstraint string) (*resolver.Symbol, resolver.Scope, error) {
	instance, err := r.Resolve(ctx, CrateDescriptor{Name: name, VersionConstraint: versionConstraint})
	if err != nil {
		return nil, nil, err
	}
	return instance.Symbol(), instance.Exports(), nil
}
