package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemDBPutGet(t *testing.T) {
	db := NewMemDB()
	t.Cleanup(db.Close)

	require.NoError(t, db.Put([]byte("k"), []byte("v")))
	value, err := db.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), value)

	_, err = db.Get([]byte("missing"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemDBCopiesValues(t *testing.T) {
	db := NewMemDB()
	t.Cleanup(db.Close)

	value := []byte("v")
	require.NoError(t, db.Put([]byte("k"), value))
	value[0] = 'x'

	stored, err := db.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), stored)
}

func TestMemDBWriteBatch(t *testing.T) {
	db := NewMemDB()
	t.Cleanup(db.Close)

	entries := []Entry{
		{Key: []byte("a"), Value: []byte("1")},
		{Key: []byte("b"), Value: []byte("2")},
	}
	require.NoError(t, db.WriteBatch(entries))

	a, err := db.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("1"), a)
	b, err := db.Get([]byte("b"))
	require.NoError(t, err)
	require.Equal(t, []byte("2"), b)
}

func TestLevelDBRoundTrip(t *testing.T) {
	db, err := NewLevelDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Put([]byte("k"), []byte("v")))
	value, err := db.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), value)

	_, err = db.Get([]byte("missing"))
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.WriteBatch([]Entry{
		{Key: []byte("a"), Value: []byte("1")},
		{Key: []byte("b"), Value: []byte("2")},
	}))
	a, err := db.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("1"), a)
}
