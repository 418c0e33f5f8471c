package storage

import (
	"fmt"
	"os"

	"flintdb/internal/types"
)

// RowStore is the record-manipulation engine. Every operation reads the
// table's schema first and addresses fields purely by column position;
// row identity is always the exact decoded primary-key field, never a
// textual match against the raw line.
type RowStore struct {
	schemas *SchemaStore
}

// NewRowStore creates a row store backed by the given schema store.
func NewRowStore(schemas *SchemaStore) *RowStore {
	return &RowStore{schemas: schemas}
}

// readRows loads a table's schema and decodes every persisted row.
func (rs *RowStore) readRows(table string) ([]types.Column, []types.Row, error) {
	columns, err := rs.schemas.Load(table)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(rs.schemas.dataPath(table))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("table %s: %w", table, ErrTableNotFound)
		}
		return nil, nil, fmt.Errorf("failed to read rows of table %s: %w", table, err)
	}
	rows, err := decodeRows(string(data), columns)
	if err != nil {
		return nil, nil, fmt.Errorf("table %s: %w", table, err)
	}
	return columns, rows, nil
}

// primaryKeyIndex returns the position of the primary-key column.
func primaryKeyIndex(columns []types.Column) int {
	for i, col := range columns {
		if col.PrimaryKey {
			return i
		}
	}
	return -1
}

func columnIndex(columns []types.Column, name string) int {
	for i, col := range columns {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// CheckField validates a single candidate value against one column's
// declared type, applying the widening rule: an Int-classified value is
// accepted where Text is declared, but not the reverse.
func (rs *RowStore) CheckField(col types.Column, value string) error {
	if !types.Conforms(value, col.Type) {
		return fmt.Errorf("value %q for column %q (%s): %w", value, col.Name, col.Type, ErrTypeMismatch)
	}
	return nil
}

// CheckPrimaryKey verifies that no existing row carries the candidate
// primary-key value.
func (rs *RowStore) CheckPrimaryKey(table, value string) error {
	columns, rows, err := rs.readRows(table)
	if err != nil {
		return err
	}
	pk := primaryKeyIndex(columns)
	for _, row := range rows {
		if row[pk] == value {
			return fmt.Errorf("value %q for table %s: %w", value, table, ErrPrimaryKeyViolation)
		}
	}
	return nil
}

// Insert validates a full record and appends it to the table. The field
// values must be supplied in schema column order, one per column.
func (rs *RowStore) Insert(table string, fields types.Row) error {
	columns, rows, err := rs.readRows(table)
	if err != nil {
		return err
	}
	if len(fields) != len(columns) {
		return fmt.Errorf("table %s: got %d fields, schema has %d columns", table, len(fields), len(columns))
	}

	for i, col := range columns {
		if err := rs.CheckField(col, fields[i]); err != nil {
			return err
		}
	}

	pk := primaryKeyIndex(columns)
	for _, row := range rows {
		if row[pk] == fields[pk] {
			return fmt.Errorf("value %q for table %s: %w", fields[pk], table, ErrPrimaryKeyViolation)
		}
	}

	line, err := EncodeRow(fields)
	if err != nil {
		return err
	}
	file, err := os.OpenFile(rs.schemas.dataPath(table), os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open data artifact of table %s: %w", table, err)
	}
	defer file.Close()
	if _, err := file.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to append row to table %s: %w", table, err)
	}
	return nil
}

// SelectAll returns every row of the table in storage order.
func (rs *RowStore) SelectAll(table string) ([]types.Row, error) {
	_, rows, err := rs.readRows(table)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SelectByKey returns the row whose primary-key field exactly equals key,
// or ErrNotFound when no row matches.
func (rs *RowStore) SelectByKey(table, key string) (types.Row, error) {
	columns, rows, err := rs.readRows(table)
	if err != nil {
		return nil, err
	}
	pk := primaryKeyIndex(columns)
	for _, row := range rows {
		if row[pk] == key {
			return row, nil
		}
	}
	return nil, fmt.Errorf("key %q in table %s: %w", key, table, ErrNotFound)
}

// SelectColumn returns the named column's value from every row, in
// storage order.
func (rs *RowStore) SelectColumn(table, column string) ([]string, error) {
	columns, rows, err := rs.readRows(table)
	if err != nil {
		return nil, err
	}
	idx := columnIndex(columns, column)
	if idx < 0 {
		return nil, fmt.Errorf("column %q of table %s: %w", column, table, ErrColumnNotFound)
	}
	values := make([]string, 0, len(rows))
	for _, row := range rows {
		values = append(values, row[idx])
	}
	return values, nil
}

// DeleteAll removes every row of the table; the schema is untouched.
func (rs *RowStore) DeleteAll(table string) error {
	return rs.rewriteRows(table, func(rows []types.Row) ([]types.Row, error) {
		return nil, nil
	})
}

// DeleteByKey removes every row whose primary-key field exactly equals
// key and returns the number of rows removed.
func (rs *RowStore) DeleteByKey(table, key string) (int, error) {
	columns, err := rs.schemas.Load(table)
	if err != nil {
		return 0, err
	}
	pk := primaryKeyIndex(columns)

	removed := 0
	err = rs.rewriteRows(table, func(rows []types.Row) ([]types.Row, error) {
		kept := make([]types.Row, 0, len(rows))
		for _, row := range rows {
			if row[pk] == key {
				removed++
				continue
			}
			kept = append(kept, row)
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// DeleteColumn removes the named column's field from every row, then
// removes the column from the schema. The row rewrite and the schema
// rewrite are two separate atomic replacements; an interruption between
// them leaves row arity and schema arity diverged.
func (rs *RowStore) DeleteColumn(table, column string) error {
	columns, err := rs.schemas.Load(table)
	if err != nil {
		return err
	}
	idx := columnIndex(columns, column)
	if idx < 0 {
		return fmt.Errorf("column %q of table %s: %w", column, table, ErrColumnNotFound)
	}
	if columns[idx].PrimaryKey {
		return fmt.Errorf("column %q of table %s: %w", column, table, ErrPrimaryKeyImmutable)
	}

	err = rs.rewriteRows(table, func(rows []types.Row) ([]types.Row, error) {
		next := make([]types.Row, 0, len(rows))
		for _, row := range rows {
			trimmed := make(types.Row, 0, len(row)-1)
			trimmed = append(trimmed, row[:idx]...)
			trimmed = append(trimmed, row[idx+1:]...)
			next = append(next, trimmed)
		}
		return next, nil
	})
	if err != nil {
		return err
	}
	return rs.schemas.DropColumn(table, column)
}

// Update replaces exactly one field of the row whose primary-key field
// equals key. The replacement is anchored by the matched row and the
// column position; no other field or row is touched.
func (rs *RowStore) Update(table, key, column, value string) error {
	columns, err := rs.schemas.Load(table)
	if err != nil {
		return err
	}
	idx := columnIndex(columns, column)
	if idx < 0 {
		return fmt.Errorf("column %q of table %s: %w", column, table, ErrColumnNotFound)
	}
	if columns[idx].PrimaryKey {
		return fmt.Errorf("column %q of table %s: %w", column, table, ErrPrimaryKeyImmutable)
	}
	if err := rs.CheckField(columns[idx], value); err != nil {
		return err
	}
	pk := primaryKeyIndex(columns)

	return rs.rewriteRows(table, func(rows []types.Row) ([]types.Row, error) {
		target := -1
		for i, row := range rows {
			if row[pk] == key {
				target = i
				break
			}
		}
		if target < 0 {
			return nil, fmt.Errorf("key %q in table %s: %w", key, table, ErrNotFound)
		}
		rows[target][idx] = value
		return rows, nil
	})
}
