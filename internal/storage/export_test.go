package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"flintdb/internal/storage"
	"flintdb/internal/types"
)

func TestExportParquetRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Catalog.Create("person", personColumns())
	assert.NoError(t, err)

	err = store.Rows.Insert("person", types.Row{"1", "alice"})
	assert.NoError(t, err)
	err = store.Rows.Insert("person", types.Row{"2", "bob"})
	assert.NoError(t, err)

	destDir, err := os.MkdirTemp("", "flintdb_export")
	assert.NoError(t, err)
	defer os.RemoveAll(destDir)

	path, err := store.ExportParquet("person", destDir)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "person.parquet"), path)

	rows, err := storage.ReadParquet(path, "person")
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, map[string]string{"id": "1", "name": "alice"}, rows[0])
	assert.Equal(t, map[string]string{"id": "2", "name": "bob"}, rows[1])

	// The store itself is untouched by an export
	all, err := store.Rows.SelectAll("person")
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestExportParquetMissingTable(t *testing.T) {
	store, _ := newTestStore(t)

	destDir, err := os.MkdirTemp("", "flintdb_export")
	assert.NoError(t, err)
	defer os.RemoveAll(destDir)

	_, err = store.ExportParquet("ghost", destDir)
	assert.ErrorIs(t, err, storage.ErrTableNotFound)
}
