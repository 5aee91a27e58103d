package numberspace

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsNonPositiveTotal(t *testing.T) {
	_, err := New(0)
	require.Error(t, err)

	_, err = New(-5)
	require.Error(t, err)
}

func TestSpace_Contains(t *testing.T) {
	space, err := New(100)
	require.NoError(t, err)

	assert.True(t, space.Contains(0))
	assert.True(t, space.Contains(99))
	assert.False(t, space.Contains(100))
	assert.False(t, space.Contains(-1))
}

func TestSpace_Check_OutOfRange(t *testing.T) {
	space, err := New(100)
	require.NoError(t, err)

	err = space.Check(100)
	require.Error(t, err)

	var oor *OutOfRangeError
	require.True(t, errors.As(err, &oor), "should be an OutOfRangeError")
	assert.Equal(t, 100, oor.Number)
	assert.Equal(t, 100, oor.Total)
}

func TestSpace_Format_MinimumWidth(t *testing.T) {
	space, err := New(100)
	require.NoError(t, err)

	assert.Equal(t, "000050", space.Format(50))
	assert.Equal(t, "000000", space.Format(0))
	assert.Equal(t, "000099", space.Format(99))
}

func TestSpace_Format_WidensForLargeSpaces(t *testing.T) {
	space, err := New(10_000_000)
	require.NoError(t, err)

	assert.Equal(t, "0000042", space.Format(42))
	assert.Equal(t, "9999999", space.Format(9_999_999))
}

func TestSpace_Parse_Roundtrip(t *testing.T) {
	space, err := New(100)
	require.NoError(t, err)

	n, err := space.Parse("000050")
	require.NoError(t, err)
	assert.Equal(t, 50, n)

	n, err = space.Parse("7")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestSpace_Parse_Errors(t *testing.T) {
	space, err := New(100)
	require.NoError(t, err)

	_, err = space.Parse("abc")
	require.Error(t, err)

	_, err = space.Parse("000100")
	require.Error(t, err)
	var oor *OutOfRangeError
	assert.True(t, errors.As(err, &oor), "out-of-range parse should yield OutOfRangeError")
}
