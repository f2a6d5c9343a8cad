package cratestore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// crateManifest is the YAML document describing one compiled crate unit.
type crateManifest struct {
	Name    string                `yaml:"name"`
	Version string                `yaml:"version"`
	Exports map[string]SymbolKind `yaml:"exports"`
}

// ManifestStore implements Store by loading `*.crate.yaml` manifest files
// found under a root directory.  All manifests are read eagerly at
// construction; Lookup never touches the filesystem.
type ManifestStore struct {
	units map[string][]*Unit
}

// NewManifestStore loads every manifest matching the pattern (relative to
// dir, doublestar syntax, e.g. "**/*.crate.yaml") and indexes the units by
// crate name.
func NewManifestStore(dir, pattern string) (*ManifestStore, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("globbing crate manifests %s: %w", pattern, err)
	}

	s := &ManifestStore{
		units: make(map[string][]*Unit),
	}
	for _, rel := range matches {
		if err := s.loadFile(filepath.Join(dir, rel)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *ManifestStore) loadFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading crate manifest: %w", err)
	}
	var m crateManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parsing crate manifest %s: %w", filename, err)
	}
	if m.Name == "" || m.Version == "" {
		return fmt.Errorf("crate manifest %s: name and version are required", filename)
	}
	for _, existing := range s.units[m.Name] {
		if existing.Version == m.Version {
			return fmt.Errorf("crate manifest %s: duplicate unit %s %s", filename, m.Name, m.Version)
		}
	}
	s.units[m.Name] = append(s.units[m.Name], &Unit{
		Version: m.Version,
		Exports: m.Exports,
	})
	return nil
}

// Lookup implements part of the Store interface.
func (s *ManifestStore) Lookup(name string) ([]*Unit, error) {
	return s.units[name], nil
}
