// Package db manages the database namespaces of a flintdb data
// directory: each database is one subdirectory holding the table
// artifacts of its tables.
package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"flintdb/internal/storage"
	"flintdb/internal/types"
)

var (
	// ErrDatabaseExists means a database directory with that name is
	// already present.
	ErrDatabaseExists = errors.New("database already exists")

	// ErrDatabaseNotFound means no database directory with that name
	// exists.
	ErrDatabaseNotFound = errors.New("database not found")
)

// Manager performs the directory-level bookkeeping for databases under
// one root data directory.
type Manager struct {
	root string
}

// NewManager creates a manager over the root data directory, creating
// the directory if needed.
func NewManager(root string) (*Manager, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", root, err)
	}
	return &Manager{root: root}, nil
}

func (m *Manager) path(name string) string {
	return filepath.Join(m.root, name)
}

// Create makes a new empty database.
func (m *Manager) Create(name string) error {
	if !types.ValidIdentifier(name) {
		return fmt.Errorf("database name %q: %w", name, storage.ErrInvalidIdentifier)
	}
	if _, err := os.Stat(m.path(name)); err == nil {
		return fmt.Errorf("database %s: %w", name, ErrDatabaseExists)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat database %s: %w", name, err)
	}
	if err := os.Mkdir(m.path(name), 0755); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	types.GlobalLogger.Info("created database %s", name)
	return nil
}

// List returns the names of all databases, in lexical order.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Drop removes a database and every table in it.
func (m *Manager) Drop(name string) error {
	if _, err := os.Stat(m.path(name)); os.IsNotExist(err) {
		return fmt.Errorf("database %s: %w", name, ErrDatabaseNotFound)
	}
	if err := os.RemoveAll(m.path(name)); err != nil {
		return fmt.Errorf("failed to drop database %s: %w", name, err)
	}
	types.GlobalLogger.Info("dropped database %s", name)
	return nil
}

// Connect opens a store over an existing database.
func (m *Manager) Connect(name string) (*storage.Store, error) {
	if _, err := os.Stat(m.path(name)); os.IsNotExist(err) {
		return nil, fmt.Errorf("database %s: %w", name, ErrDatabaseNotFound)
	}
	return storage.Open(m.path(name))
}
