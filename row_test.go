package pgraw_test

import (
	"testing"

	"github.com/nereus-db/pgraw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowGetReturnsNilForNull(t *testing.T) {
	row := pgraw.NewRow([][]byte{[]byte("hello"), nil})
	assert.Equal(t, 2, row.Len())
	assert.False(t, row.IsEmpty())
	assert.Equal(t, []byte("hello"), row.Get(0))
	assert.Nil(t, row.Get(1))
}

func TestRowGetPanicsOutOfRange(t *testing.T) {
	row := pgraw.NewRow([][]byte{[]byte("hello")})
	assert.Panics(t, func() { row.Get(5) })
}

func TestSimpleQueryRowTryGet(t *testing.T) {
	row := pgraw.NewSimpleQueryRow([][]byte{[]byte("hi"), nil, {0xff, 0xfe}})

	v, ok, err := row.TryGet(0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hi", v)

	_, ok, err = row.TryGet(1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = row.TryGet(2)
	require.Error(t, err)
}

func TestDecodeNumericText(t *testing.T) {
	d, err := pgraw.DecodeNumericText([]byte("12.50"))
	require.NoError(t, err)
	assert.Equal(t, "12.5", d.String())

	d, err = pgraw.DecodeNumericText(nil)
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}
