package cratestore

import "fmt"

// MemoryStore implements Store over an in-memory registration table.  It is
// the backend used by tests and by embedders that assemble crate metadata
// programmatically.
type MemoryStore struct {
	units map[string][]*Unit
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		units: make(map[string][]*Unit),
	}
}

// Put registers a unit under the given crate name.  It is an error to
// register the same (name, version) pair twice.
func (s *MemoryStore) Put(name string, unit *Unit) error {
	for _, existing := range s.units[name] {
		if existing.Version == unit.Version {
			return fmt.Errorf("duplicate unit registration: %s %s", name, unit.Version)
		}
	}
	s.units[name] = append(s.units[name], unit)
	return nil
}

// Lookup implements part of the Store interface.
func (s *MemoryStore) Lookup(name string) ([]*Unit, error) {
	return s.units[name], nil
}
