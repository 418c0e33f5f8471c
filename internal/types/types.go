package types

import (
	"errors"
	"regexp"
)

// ColumnType is the declared type of a column. Values are stored as text;
// the type only constrains which literals a column accepts.
type ColumnType string

const (
	ColumnTypeInt  ColumnType = "int"
	ColumnTypeText ColumnType = "string"
)

// Column describes one column of a table schema. Column order is fixed at
// creation and defines the field position in every row.
type Column struct {
	Name       string
	Type       ColumnType
	PrimaryKey bool
}

// Row is an ordered sequence of field values, positionally aligned with
// the table's columns.
type Row []string

// ErrUnclassifiable is returned by Classify for literals that are neither
// all digits nor all alphanumerics.
var ErrUnclassifiable = errors.New("value is neither an integer nor a text token")

var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Classify decides whether a literal is an integer or a generic text
// token. A literal of one or more digits is ColumnTypeInt; one or more
// alphanumerics is ColumnTypeText; anything else is unclassifiable.
func Classify(literal string) (ColumnType, error) {
	if literal == "" {
		return "", ErrUnclassifiable
	}
	digitsOnly := true
	for i := 0; i < len(literal); i++ {
		c := literal[i]
		switch {
		case c >= '0' && c <= '9':
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			digitsOnly = false
		default:
			return "", ErrUnclassifiable
		}
	}
	if digitsOnly {
		return ColumnTypeInt, nil
	}
	return ColumnTypeText, nil
}

// Conforms reports whether a value may be stored in a column of the given
// type. An Int-classified value is accepted by a Text column (widening);
// a Text-classified value is never accepted by an Int column.
func Conforms(value string, columnType ColumnType) bool {
	class, err := Classify(value)
	if err != nil {
		return false
	}
	if class == columnType {
		return true
	}
	return columnType == ColumnTypeText && class == ColumnTypeInt
}

// ValidIdentifier reports whether name is usable as a database, table or
// column name: a letter followed by letters, digits or underscores.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// ParseColumnType maps a persisted type token to a ColumnType.
func ParseColumnType(token string) (ColumnType, bool) {
	switch ColumnType(token) {
	case ColumnTypeInt:
		return ColumnTypeInt, true
	case ColumnTypeText:
		return ColumnTypeText, true
	default:
		return "", false
	}
}
