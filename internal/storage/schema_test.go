package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"flintdb/internal/storage"
	"flintdb/internal/types"
)

func personColumns() []types.Column {
	return []types.Column{
		{Name: "id", Type: types.ColumnTypeInt, PrimaryKey: true},
		{Name: "name", Type: types.ColumnTypeText},
	}
}

func TestSchemaDefineAndLoad(t *testing.T) {
	dir, err := os.MkdirTemp("", "flintdb_schema")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	s := storage.NewSchemaStore(dir)

	err = s.Define("person", personColumns())
	assert.NoError(t, err)

	// Define followed by Load returns the same ordered column list
	columns, err := s.Load("person")
	assert.NoError(t, err)
	assert.Equal(t, personColumns(), columns)

	// The schema artifact is the hidden sidecar next to the data file
	data, err := os.ReadFile(filepath.Join(dir, ".person"))
	assert.NoError(t, err)
	assert.Equal(t, "id:int:PK\nname:string:\n", string(data))
}

func TestSchemaDefineRejections(t *testing.T) {
	dir, err := os.MkdirTemp("", "flintdb_schema")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	s := storage.NewSchemaStore(dir)

	err = s.Define("1person", personColumns())
	assert.ErrorIs(t, err, storage.ErrInvalidIdentifier)

	err = s.Define("person", []types.Column{
		{Name: "my id", Type: types.ColumnTypeInt, PrimaryKey: true},
	})
	assert.ErrorIs(t, err, storage.ErrInvalidIdentifier)

	err = s.Define("person", []types.Column{
		{Name: "id", Type: types.ColumnTypeInt, PrimaryKey: true},
		{Name: "id", Type: types.ColumnTypeText},
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateColumn)

	// Exactly one primary key is required
	err = s.Define("person", []types.Column{
		{Name: "id", Type: types.ColumnTypeInt},
		{Name: "name", Type: types.ColumnTypeText},
	})
	assert.Error(t, err)

	err = s.Define("person", personColumns())
	assert.NoError(t, err)
	err = s.Define("person", personColumns())
	assert.ErrorIs(t, err, storage.ErrDuplicateTable)
}

func TestSchemaLoadMissingTable(t *testing.T) {
	dir, err := os.MkdirTemp("", "flintdb_schema")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	s := storage.NewSchemaStore(dir)

	_, err = s.Load("ghost")
	assert.ErrorIs(t, err, storage.ErrTableNotFound)
}

func TestSchemaDropColumn(t *testing.T) {
	dir, err := os.MkdirTemp("", "flintdb_schema")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	s := storage.NewSchemaStore(dir)

	err = s.Define("person", []types.Column{
		{Name: "id", Type: types.ColumnTypeInt, PrimaryKey: true},
		{Name: "name", Type: types.ColumnTypeText},
		{Name: "role", Type: types.ColumnTypeText},
	})
	assert.NoError(t, err)

	// The primary key cannot be dropped
	err = s.DropColumn("person", "id")
	assert.ErrorIs(t, err, storage.ErrPrimaryKeyImmutable)

	err = s.DropColumn("person", "ghost")
	assert.ErrorIs(t, err, storage.ErrColumnNotFound)

	err = s.DropColumn("person", "name")
	assert.NoError(t, err)

	// Relative order of the remaining columns is preserved
	columns, err := s.Load("person")
	assert.NoError(t, err)
	assert.Equal(t, []types.Column{
		{Name: "id", Type: types.ColumnTypeInt, PrimaryKey: true},
		{Name: "role", Type: types.ColumnTypeText},
	}, columns)
}
