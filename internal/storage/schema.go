package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"flintdb/internal/types"
)

const primaryKeyMarker = "PK"

// SchemaStore persists and reads the ordered column definitions of the
// tables in one database directory. The schema artifact for table T is
// the hidden sidecar file ".T" next to the data artifact "T"; it holds
// one record per column, "name:type:marker", in column order.
type SchemaStore struct {
	dir string
}

// NewSchemaStore creates a schema store over a database directory.
func NewSchemaStore(dir string) *SchemaStore {
	return &SchemaStore{dir: dir}
}

func (s *SchemaStore) schemaPath(table string) string {
	return filepath.Join(s.dir, "."+table)
}

func (s *SchemaStore) dataPath(table string) string {
	return filepath.Join(s.dir, table)
}

// Define persists a new table schema. The column list is ordered, column
// names must be unique, and exactly one column must carry the primary-key
// designation. The designation is final; only dropping the whole table
// removes it.
func (s *SchemaStore) Define(table string, columns []types.Column) error {
	if !types.ValidIdentifier(table) {
		return fmt.Errorf("table name %q: %w", table, ErrInvalidIdentifier)
	}
	if len(columns) == 0 {
		return fmt.Errorf("table %s: at least one column is required", table)
	}

	seen := make(map[string]bool)
	primaryKeys := 0
	for _, col := range columns {
		if !types.ValidIdentifier(col.Name) {
			return fmt.Errorf("column name %q: %w", col.Name, ErrInvalidIdentifier)
		}
		if seen[col.Name] {
			return fmt.Errorf("column %q: %w", col.Name, ErrDuplicateColumn)
		}
		seen[col.Name] = true
		if col.Type != types.ColumnTypeInt && col.Type != types.ColumnTypeText {
			return fmt.Errorf("column %q has unknown type %q", col.Name, col.Type)
		}
		if col.PrimaryKey {
			primaryKeys++
		}
	}
	if primaryKeys != 1 {
		return fmt.Errorf("table %s: exactly one primary key column required, got %d", table, primaryKeys)
	}

	if _, err := os.Stat(s.schemaPath(table)); err == nil {
		return fmt.Errorf("table %s: %w", table, ErrDuplicateTable)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat schema for table %s: %w", table, err)
	}

	content := encodeSchema(columns)
	if err := os.WriteFile(s.schemaPath(table), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write schema for table %s: %w", table, err)
	}
	return nil
}

// Load returns the ordered column list of a table.
func (s *SchemaStore) Load(table string) ([]types.Column, error) {
	data, err := os.ReadFile(s.schemaPath(table))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("table %s: %w", table, ErrTableNotFound)
		}
		return nil, fmt.Errorf("failed to read schema for table %s: %w", table, err)
	}
	columns, err := decodeSchema(string(data))
	if err != nil {
		return nil, fmt.Errorf("schema for table %s: %w", table, err)
	}
	return columns, nil
}

// DropColumn removes one column record from a table's schema, preserving
// the relative order of the remaining columns. The primary-key column
// cannot be dropped.
func (s *SchemaStore) DropColumn(table, column string) error {
	columns, err := s.Load(table)
	if err != nil {
		return err
	}

	kept := make([]types.Column, 0, len(columns))
	found := false
	for _, col := range columns {
		if col.Name == column {
			if col.PrimaryKey {
				return fmt.Errorf("column %q of table %s: %w", column, table, ErrPrimaryKeyImmutable)
			}
			found = true
			continue
		}
		kept = append(kept, col)
	}
	if !found {
		return fmt.Errorf("column %q of table %s: %w", column, table, ErrColumnNotFound)
	}

	if err := writeFileAtomic(s.schemaPath(table), []byte(encodeSchema(kept))); err != nil {
		return fmt.Errorf("failed to rewrite schema for table %s: %w", table, err)
	}
	return nil
}

func encodeSchema(columns []types.Column) string {
	var b strings.Builder
	for _, col := range columns {
		marker := ""
		if col.PrimaryKey {
			marker = primaryKeyMarker
		}
		b.WriteString(col.Name)
		b.WriteString(FieldDelimiter)
		b.WriteString(string(col.Type))
		b.WriteString(FieldDelimiter)
		b.WriteString(marker)
		b.WriteString("\n")
	}
	return b.String()
}

func decodeSchema(data string) ([]types.Column, error) {
	var columns []types.Column
	for i, line := range strings.Split(data, "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, FieldDelimiter)
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed column record at line %d", i+1)
		}
		colType, ok := types.ParseColumnType(parts[1])
		if !ok {
			return nil, fmt.Errorf("unknown column type %q at line %d", parts[1], i+1)
		}
		columns = append(columns, types.Column{
			Name:       parts[0],
			Type:       colType,
			PrimaryKey: parts[2] == primaryKeyMarker,
		})
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("schema holds no columns")
	}
	return columns, nil
}
