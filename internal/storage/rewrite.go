package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"flintdb/internal/types"
)

// writeFileAtomic writes content to a temporary file in the target's
// directory and renames it over the target. A crash mid-write leaves the
// old content in place, never a half-written artifact.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".rewrite-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions on temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// rewriteRows is the shared primitive behind every whole-artifact row
// mutation: decode all rows, transform, re-encode, atomically replace the
// data artifact.
func (rs *RowStore) rewriteRows(table string, transform func(rows []types.Row) ([]types.Row, error)) error {
	columns, rows, err := rs.readRows(table)
	if err != nil {
		return err
	}

	next, err := transform(rows)
	if err != nil {
		return err
	}
	for _, row := range next {
		if len(row) > len(columns) {
			return fmt.Errorf("table %s: transformed row has %d fields, schema has %d columns", table, len(row), len(columns))
		}
	}

	content, err := encodeRows(next)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(rs.schemas.dataPath(table), []byte(content)); err != nil {
		return fmt.Errorf("failed to rewrite rows of table %s: %w", table, err)
	}
	types.GlobalLogger.Debug("rewrote table %s: %d rows in, %d rows out", table, len(rows), len(next))
	return nil
}
