package storage

import (
	"fmt"
	"os"
)

// Store bundles the schema store, table catalog and row store over one
// database directory, so the schema+data artifact pair of every table is
// managed through a single lifecycle API.
//
// A store assumes a single cooperative session: operations run to
// completion one at a time, and there is no locking against concurrent
// writers on the same directory.
type Store struct {
	dir     string
	Schemas *SchemaStore
	Catalog *Catalog
	Rows    *RowStore
}

// Open creates a store over an existing database directory.
func Open(dir string) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open database directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	schemas := NewSchemaStore(dir)
	return &Store{
		dir:     dir,
		Schemas: schemas,
		Catalog: NewCatalog(schemas),
		Rows:    NewRowStore(schemas),
	}, nil
}

// Dir returns the database directory the store operates on.
func (s *Store) Dir() string {
	return s.dir
}
