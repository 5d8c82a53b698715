package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rewardpoints/storage"
)

type record struct {
	ID       uint64
	Identity [20]byte
	Approved bool
}

func TestKVRoundTrip(t *testing.T) {
	db := storage.NewMemDB()
	t.Cleanup(db.Close)
	manager := NewManager(db)

	var identity [20]byte
	identity[0] = 0xAB
	stored := record{ID: 7, Identity: identity, Approved: true}
	require.NoError(t, manager.KVPut([]byte("test/record"), &stored))

	loaded := new(record)
	found, err := manager.KVGet([]byte("test/record"), loaded)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, stored, *loaded)
}

func TestKVGetMissing(t *testing.T) {
	db := storage.NewMemDB()
	t.Cleanup(db.Close)
	manager := NewManager(db)

	var out uint64
	found, err := manager.KVGet([]byte("test/missing"), &out)
	require.NoError(t, err)
	require.False(t, found)
}

func TestKVEmptyKey(t *testing.T) {
	db := storage.NewMemDB()
	t.Cleanup(db.Close)
	manager := NewManager(db)

	require.Error(t, manager.KVPut(nil, uint64(1)))
	_, err := manager.KVGet(nil, new(uint64))
	require.Error(t, err)
}

func TestChangesetCommitsAllWrites(t *testing.T) {
	db := storage.NewMemDB()
	t.Cleanup(db.Close)
	manager := NewManager(db)

	cs := manager.NewChangeset()
	cs.KVPut([]byte("test/a"), uint64(1))
	cs.KVPut([]byte("test/b"), uint64(2))
	require.NoError(t, cs.Commit())

	var a, b uint64
	found, err := manager.KVGet([]byte("test/a"), &a)
	require.NoError(t, err)
	require.True(t, found)
	found, err = manager.KVGet([]byte("test/b"), &b)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint64(1), a)
	require.Equal(t, uint64(2), b)
}

func TestChangesetStagedWritesInvisibleBeforeCommit(t *testing.T) {
	db := storage.NewMemDB()
	t.Cleanup(db.Close)
	manager := NewManager(db)

	cs := manager.NewChangeset()
	cs.KVPut([]byte("test/a"), uint64(1))

	var a uint64
	found, err := manager.KVGet([]byte("test/a"), &a)
	require.NoError(t, err)
	require.False(t, found)
	require.NoError(t, cs.Commit())
}

func TestChangesetLatchesErrors(t *testing.T) {
	db := storage.NewMemDB()
	t.Cleanup(db.Close)
	manager := NewManager(db)

	cs := manager.NewChangeset()
	cs.KVPut(nil, uint64(1))
	cs.KVPut([]byte("test/a"), uint64(2))
	require.Error(t, cs.Commit())

	var a uint64
	found, err := manager.KVGet([]byte("test/a"), &a)
	require.NoError(t, err)
	require.False(t, found, "no write must land when the changeset errored")
}
