package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flintdb/internal/types"
)

func TestClassify(t *testing.T) {
	class, err := types.Classify("12345")
	assert.NoError(t, err)
	assert.Equal(t, types.ColumnTypeInt, class)

	class, err = types.Classify("alice")
	assert.NoError(t, err)
	assert.Equal(t, types.ColumnTypeText, class)

	// Mixed alphanumerics classify as text
	class, err = types.Classify("a1b2")
	assert.NoError(t, err)
	assert.Equal(t, types.ColumnTypeText, class)

	// Empty, punctuation and the delimiter itself are unclassifiable
	_, err = types.Classify("")
	assert.ErrorIs(t, err, types.ErrUnclassifiable)

	_, err = types.Classify("alice smith")
	assert.ErrorIs(t, err, types.ErrUnclassifiable)

	_, err = types.Classify("a:b")
	assert.ErrorIs(t, err, types.ErrUnclassifiable)

	_, err = types.Classify("-1")
	assert.ErrorIs(t, err, types.ErrUnclassifiable)
}

func TestConforms(t *testing.T) {
	assert.True(t, types.Conforms("42", types.ColumnTypeInt))
	assert.True(t, types.Conforms("bob", types.ColumnTypeText))

	// Widening: an int-classified value fits a text column
	assert.True(t, types.Conforms("42", types.ColumnTypeText))

	// The reverse never holds
	assert.False(t, types.Conforms("bob", types.ColumnTypeInt))

	assert.False(t, types.Conforms("", types.ColumnTypeText))
	assert.False(t, types.Conforms("a b", types.ColumnTypeText))
}

func TestValidIdentifier(t *testing.T) {
	assert.True(t, types.ValidIdentifier("person"))
	assert.True(t, types.ValidIdentifier("a_1"))
	assert.True(t, types.ValidIdentifier("A9_x"))

	assert.False(t, types.ValidIdentifier(""))
	assert.False(t, types.ValidIdentifier("1person"))
	assert.False(t, types.ValidIdentifier("_person"))
	assert.False(t, types.ValidIdentifier("per son"))
	assert.False(t, types.ValidIdentifier("per:son"))
}

func TestParseColumnType(t *testing.T) {
	colType, ok := types.ParseColumnType("int")
	assert.True(t, ok)
	assert.Equal(t, types.ColumnTypeInt, colType)

	colType, ok = types.ParseColumnType("string")
	assert.True(t, ok)
	assert.Equal(t, types.ColumnTypeText, colType)

	_, ok = types.ParseColumnType("float")
	assert.False(t, ok)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, types.LogLevelDebug, types.ParseLevel("debug"))
	assert.Equal(t, types.LogLevelWarning, types.ParseLevel("warn"))
	assert.Equal(t, types.LogLevelNone, types.ParseLevel("off"))
	assert.Equal(t, types.LogLevelInfo, types.ParseLevel("something-else"))
}
