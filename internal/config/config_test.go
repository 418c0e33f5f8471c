package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"flintdb/internal/config"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("does-not-exist.yml")
	assert.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir, err := os.MkdirTemp("", "flintdb_config")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "flintdb.yml")
	err = os.WriteFile(path, []byte("data_dir: /var/lib/flintdb\nlog_level: debug\n"), 0644)
	assert.NoError(t, err)

	cfg, err := config.Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "/var/lib/flintdb", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Fields the file does not name keep their defaults
	assert.Equal(t, "exports", cfg.ExportDir)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "flintdb_config")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "flintdb.yml")
	err = os.WriteFile(path, []byte("data_dir: [unclosed"), 0644)
	assert.NoError(t, err)

	_, err = config.Load(path)
	assert.Error(t, err)
}
