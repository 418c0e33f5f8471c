package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"flintdb/internal/storage"
	"flintdb/internal/types"
)

func newTestStore(t *testing.T) (*storage.Store, string) {
	dir, err := os.MkdirTemp("", "flintdb_store")
	assert.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	store, err := storage.Open(dir)
	assert.NoError(t, err)
	return store, dir
}

func TestCatalogCreateAndList(t *testing.T) {
	store, dir := newTestStore(t)

	err := store.Catalog.Create("person", personColumns())
	assert.NoError(t, err)

	// Both artifacts exist after creation
	_, err = os.Stat(filepath.Join(dir, ".person"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "person"))
	assert.NoError(t, err)

	err = store.Catalog.Create("project", []types.Column{
		{Name: "code", Type: types.ColumnTypeText, PrimaryKey: true},
	})
	assert.NoError(t, err)

	tables, err := store.Catalog.List()
	assert.NoError(t, err)
	assert.Equal(t, []string{"person", "project"}, tables)
}

func TestCatalogCreateFailureLeavesNoArtifacts(t *testing.T) {
	store, dir := newTestStore(t)

	err := store.Catalog.Create("person", []types.Column{
		{Name: "bad name", Type: types.ColumnTypeInt, PrimaryKey: true},
	})
	assert.ErrorIs(t, err, storage.ErrInvalidIdentifier)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCatalogListSkipsOrphans(t *testing.T) {
	store, dir := newTestStore(t)

	err := store.Catalog.Create("person", personColumns())
	assert.NoError(t, err)

	// A data artifact without its schema sidecar is an orphan, not a table
	err = os.WriteFile(filepath.Join(dir, "orphan"), nil, 0644)
	assert.NoError(t, err)

	tables, err := store.Catalog.List()
	assert.NoError(t, err)
	assert.Equal(t, []string{"person"}, tables)
}

func TestCatalogDrop(t *testing.T) {
	store, dir := newTestStore(t)

	err := store.Catalog.Drop("ghost")
	assert.ErrorIs(t, err, storage.ErrTableNotFound)

	err = store.Catalog.Create("person", personColumns())
	assert.NoError(t, err)

	err = store.Catalog.Drop("person")
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".person"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "person"))
	assert.True(t, os.IsNotExist(err))

	tables, err := store.Catalog.List()
	assert.NoError(t, err)
	assert.Empty(t, tables)
}
