package storage

import (
	"fmt"
	"strings"

	"flintdb/internal/types"
)

// FieldDelimiter separates fields within a persisted row and within a
// schema record. It must never appear inside a field value.
const FieldDelimiter = ":"

// EncodeRow joins a row's field values with the field delimiter, in the
// column order the schema defines. A field containing the delimiter is
// rejected rather than silently corrupting the row.
func EncodeRow(row types.Row) (string, error) {
	for i, field := range row {
		if strings.Contains(field, FieldDelimiter) {
			return "", fmt.Errorf("field %d %q: %w", i+1, field, ErrReservedDelimiter)
		}
	}
	return strings.Join(row, FieldDelimiter), nil
}

// DecodeRow splits a persisted line back into its field values.
func DecodeRow(line string) types.Row {
	return types.Row(strings.Split(line, FieldDelimiter))
}

// decodeRows decodes every non-empty line of a data artifact, checking
// that each row's arity matches the schema.
func decodeRows(data string, columns []types.Column) ([]types.Row, error) {
	var rows []types.Row
	for i, line := range strings.Split(data, "\n") {
		if line == "" {
			continue
		}
		row := DecodeRow(line)
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d fields, schema has %d columns", i+1, len(row), len(columns))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// encodeRows renders rows as data-artifact content, one line per row.
func encodeRows(rows []types.Row) (string, error) {
	var b strings.Builder
	for _, row := range rows {
		line, err := EncodeRow(row)
		if err != nil {
			return "", err
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String(), nil
}
