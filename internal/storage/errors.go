package storage

import "errors"

// Sentinel errors for the storage engine. Callers match them with
// errors.Is; messages are wrapped with table/column context at the call
// site.
var (
	// ErrInvalidIdentifier means a table or column name does not match
	// the identifier pattern.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrDuplicateTable means a schema artifact already exists for the
	// requested table name.
	ErrDuplicateTable = errors.New("table already exists")

	// ErrDuplicateColumn means two declared columns share a name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrTableNotFound means the table's artifacts are absent.
	ErrTableNotFound = errors.New("table not found")

	// ErrColumnNotFound means the named column is not in the schema.
	ErrColumnNotFound = errors.New("column not found")

	// ErrPrimaryKeyImmutable means the operation targeted the primary-key
	// column, which cannot be changed or removed after creation.
	ErrPrimaryKeyImmutable = errors.New("primary key column is immutable")

	// ErrPrimaryKeyViolation means a candidate primary-key value equals
	// an existing row's primary-key value.
	ErrPrimaryKeyViolation = errors.New("duplicate primary key value")

	// ErrTypeMismatch means a value's classification does not match, or
	// widen into, the column's declared type.
	ErrTypeMismatch = errors.New("value does not conform to column type")

	// ErrNotFound means a lookup matched zero rows. It is the "no data"
	// outcome, not a fault.
	ErrNotFound = errors.New("no matching row")

	// ErrReservedDelimiter means a field value contains the field
	// delimiter and cannot be encoded.
	ErrReservedDelimiter = errors.New("value contains reserved delimiter")
)
