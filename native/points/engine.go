package points

import (
	"fmt"
	"sync"

	"rewardpoints/core/events"
	"rewardpoints/core/state"
)

// Engine is the access-control and ledger engine. Every mutating operation
// runs under a single exclusive critical section: the caller is authorized,
// all validations run against a consistent snapshot, and the resulting writes
// commit as one atomic batch before the event is emitted. A validation
// failure leaves state untouched.
type Engine struct {
	mu      sync.RWMutex
	st      *state.Manager
	emitter events.Emitter
	owner   [20]byte
}

// NewEngine opens the engine on the provided state. On first boot the owner
// is persisted; on subsequent boots a differing owner is rejected rather than
// treated as a transfer.
func NewEngine(st *state.Manager, owner [20]byte) (*Engine, error) {
	if st == nil {
		return nil, fmt.Errorf("points: nil state manager")
	}
	if isZeroAddress(owner) {
		return nil, fmt.Errorf("points: owner %w", ErrInvalidIdentity)
	}
	var stored [20]byte
	found, err := st.KVGet(ownerKey(), &stored)
	if err != nil {
		return nil, err
	}
	if !found {
		if err := st.KVPut(ownerKey(), owner); err != nil {
			return nil, err
		}
	} else if stored != owner {
		return nil, fmt.Errorf("points: stored owner does not match configured owner")
	}
	return &Engine{st: st, emitter: events.NoopEmitter{}, owner: owner}, nil
}

// SetEmitter configures the event emitter used to broadcast state changes.
// Passing nil resets the emitter to a no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// Owner returns the owner identity fixed at construction.
func (e *Engine) Owner() [20]byte {
	return e.owner
}

func (e *Engine) emit(event events.Event) {
	if e.emitter == nil {
		return
	}
	e.emitter.Emit(event)
}

// guardNotPaused rejects value-bearing operations while the pause switch is
// set. Governance operations do not consult it.
func (e *Engine) guardNotPaused() error {
	var paused bool
	if _, err := e.st.KVGet(pausedKey(), &paused); err != nil {
		return err
	}
	if paused {
		return ErrPaused
	}
	return nil
}

func (e *Engine) isOwner(caller [20]byte) bool {
	return caller == e.owner
}

func (e *Engine) isAdminLocked(addr [20]byte) (bool, error) {
	var member bool
	found, err := e.st.KVGet(adminKey(addr), &member)
	if err != nil {
		return false, err
	}
	return found && member, nil
}

// requireOwnerOrAdmin authorizes the governance operations.
func (e *Engine) requireOwnerOrAdmin(caller [20]byte) error {
	if e.isOwner(caller) {
		return nil
	}
	admin, err := e.isAdminLocked(caller)
	if err != nil {
		return err
	}
	if !admin {
		return ErrUnauthorized
	}
	return nil
}

// Pause sets the global pause switch. Only the owner may pause, and pausing
// an already paused engine fails.
func (e *Engine) Pause(caller [20]byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.isOwner(caller) {
		return ErrUnauthorized
	}
	var paused bool
	if _, err := e.st.KVGet(pausedKey(), &paused); err != nil {
		return err
	}
	if paused {
		return ErrInvalidState
	}
	if err := e.st.KVPut(pausedKey(), true); err != nil {
		return err
	}
	e.emit(events.Paused{Caller: caller})
	return nil
}

// Unpause clears the global pause switch. Only the owner may unpause, and
// unpausing a running engine fails.
func (e *Engine) Unpause(caller [20]byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.isOwner(caller) {
		return ErrUnauthorized
	}
	var paused bool
	if _, err := e.st.KVGet(pausedKey(), &paused); err != nil {
		return err
	}
	if !paused {
		return ErrInvalidState
	}
	if err := e.st.KVPut(pausedKey(), false); err != nil {
		return err
	}
	e.emit(events.Unpaused{Caller: caller})
	return nil
}

// Paused reports whether the pause switch is currently set.
func (e *Engine) Paused() (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var paused bool
	if _, err := e.st.KVGet(pausedKey(), &paused); err != nil {
		return false, err
	}
	return paused, nil
}
