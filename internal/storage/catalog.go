package storage

import (
	"fmt"
	"os"
	"strings"

	"flintdb/internal/types"
)

// Catalog manages the lifecycle of a table's artifact pair: the schema
// sidecar and the data file are created and destroyed together.
type Catalog struct {
	schemas *SchemaStore
}

// NewCatalog creates a catalog over the same directory as the schema
// store it delegates to.
func NewCatalog(schemas *SchemaStore) *Catalog {
	return &Catalog{schemas: schemas}
}

// Create defines the table's schema and creates its empty data artifact.
// If the data artifact cannot be created, the freshly written schema is
// removed again so no half-created table survives.
func (c *Catalog) Create(table string, columns []types.Column) error {
	if err := c.schemas.Define(table, columns); err != nil {
		return err
	}

	// An orphan data artifact from an interrupted drop is superseded by
	// the new, empty table.
	file, err := os.OpenFile(c.schemas.dataPath(table), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		os.Remove(c.schemas.schemaPath(table))
		return fmt.Errorf("failed to create data artifact for table %s: %w", table, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(c.schemas.schemaPath(table))
		os.Remove(c.schemas.dataPath(table))
		return fmt.Errorf("failed to create data artifact for table %s: %w", table, err)
	}

	types.GlobalLogger.Info("created table %s with %d columns", table, len(columns))
	return nil
}

// List returns the names of all tables that currently have both
// artifacts present, in lexical order.
func (c *Catalog) List() ([]string, error) {
	entries, err := os.ReadDir(c.schemas.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read database directory: %w", err)
	}

	tables := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if _, err := os.Stat(c.schemas.schemaPath(name)); err != nil {
			continue
		}
		tables = append(tables, name)
	}
	return tables, nil
}

// Drop removes both of the table's artifacts. The two removals are
// separate filesystem operations; a crash between them leaves an orphan
// artifact behind.
func (c *Catalog) Drop(table string) error {
	schemaPath := c.schemas.schemaPath(table)
	dataPath := c.schemas.dataPath(table)

	if _, err := os.Stat(schemaPath); os.IsNotExist(err) {
		if _, err := os.Stat(dataPath); os.IsNotExist(err) {
			return fmt.Errorf("table %s: %w", table, ErrTableNotFound)
		}
	}

	if err := os.Remove(schemaPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove schema artifact of table %s: %w", table, err)
	}
	if err := os.Remove(dataPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove data artifact of table %s: %w", table, err)
	}

	types.GlobalLogger.Info("dropped table %s", table)
	return nil
}
