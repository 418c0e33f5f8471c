package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flintdb/internal/storage"
	"flintdb/internal/types"
)

func TestEncodeDecodeRow(t *testing.T) {
	line, err := storage.EncodeRow(types.Row{"1", "alice", "dev"})
	assert.NoError(t, err)
	assert.Equal(t, "1:alice:dev", line)

	row := storage.DecodeRow(line)
	assert.Equal(t, types.Row{"1", "alice", "dev"}, row)
}

func TestEncodeRowRejectsDelimiter(t *testing.T) {
	_, err := storage.EncodeRow(types.Row{"1", "ali:ce"})
	assert.ErrorIs(t, err, storage.ErrReservedDelimiter)
}
