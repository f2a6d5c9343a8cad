package cratestore

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLStore implements Store over a SQLite linker-metadata database.  The
// expected schema is a single `crate_symbols` table with one row per
// exported symbol:
//
//	CREATE TABLE crate_symbols (
//	    crate   TEXT NOT NULL,
//	    version TEXT NOT NULL,
//	    symbol  TEXT NOT NULL,
//	    kind    TEXT NOT NULL
//	);
//
// The store issues read-only queries; it never writes.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLStore opens the metadata database at the given path.
func OpenSQLStore(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening crate metadata db %s: %w", path, err)
	}
	return &SQLStore{db: db}, nil
}

// NewSQLStore wraps an existing database handle.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Lookup implements part of the Store interface.
func (s *SQLStore) Lookup(name string) ([]*Unit, error) {
	rows, err := s.db.Query(
		`SELECT version, symbol, kind FROM crate_symbols WHERE crate = ? ORDER BY version`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("querying crate %s: %w", name, err)
	}
	defer rows.Close()

	byVersion := make(map[string]*Unit)
	var order []string
	for rows.Next() {
		var version, symbol, kind string
		if err := rows.Scan(&version, &symbol, &kind); err != nil {
			return nil, fmt.Errorf("scanning crate %s: %w", name, err)
		}
		unit, ok := byVersion[version]
		if !ok {
			unit = &Unit{
				Version: version,
				Exports: make(map[string]SymbolKind),
			}
			byVersion[version] = unit
			order = append(order, version)
		}
		unit.Exports[symbol] = SymbolKind(kind)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading crate %s: %w", name, err)
	}

	units := make([]*Unit, len(order))
	for i, version := range order {
		units[i] = byVersion[version]
	}
	return units, nil
}

// Close releases the underlying database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
