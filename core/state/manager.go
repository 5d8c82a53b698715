package state

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"rewardpoints/storage"
)

// Manager provides typed access to the key-value store backing the engine.
// Values are RLP encoded. Writes performed through a Changeset are applied
// atomically in a single batch.
type Manager struct {
	db storage.Database
}

// NewManager creates a manager on top of the provided database.
func NewManager(db storage.Database) *Manager {
	return &Manager{db: db}
}

// KVPut encodes the value and stores it under the supplied key.
func (m *Manager) KVPut(key []byte, value interface{}) error {
	if len(key) == 0 {
		return fmt.Errorf("kv: key must not be empty")
	}
	encoded, err := rlp.EncodeToBytes(value)
	if err != nil {
		return err
	}
	return m.db.Put(key, encoded)
}

// KVGet retrieves the value stored under the supplied key and decodes it into
// the provided destination. The boolean return value indicates whether the key
// existed in state.
func (m *Manager) KVGet(key []byte, out interface{}) (bool, error) {
	if len(key) == 0 {
		return false, fmt.Errorf("kv: key must not be empty")
	}
	data, err := m.db.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(data) == 0 {
		return false, nil
	}
	if out == nil {
		return true, nil
	}
	if err := rlp.DecodeBytes(data, out); err != nil {
		return false, err
	}
	return true, nil
}

// Changeset accumulates encoded writes so a multi-key mutation can be applied
// as one atomic batch. Reads through the owning Manager do not observe staged
// writes; callers stage a key at most once per operation.
type Changeset struct {
	manager *Manager
	entries []storage.Entry
	err     error
}

// NewChangeset creates an empty changeset bound to the manager.
func (m *Manager) NewChangeset() *Changeset {
	return &Changeset{manager: m}
}

// KVPut stages an encoded write. Encoding errors are latched and reported by
// Commit.
func (cs *Changeset) KVPut(key []byte, value interface{}) {
	if cs.err != nil {
		return
	}
	if len(key) == 0 {
		cs.err = fmt.Errorf("kv: key must not be empty")
		return
	}
	encoded, err := rlp.EncodeToBytes(value)
	if err != nil {
		cs.err = err
		return
	}
	cs.entries = append(cs.entries, storage.Entry{
		Key:   append([]byte(nil), key...),
		Value: encoded,
	})
}

// Commit applies all staged writes in a single batch. A changeset must not be
// reused after Commit.
func (cs *Changeset) Commit() error {
	if cs.err != nil {
		return cs.err
	}
	if len(cs.entries) == 0 {
		return nil
	}
	return cs.manager.db.WriteBatch(cs.entries)
}
