package points

import "rewardpoints/core/events"

// AddUser registers a new user identity and returns its id. Only the owner or
// an admin may register users. The record starts approved with zeroed
// counters. Duplicate identities are rejected.
func (e *Engine) AddUser(caller, identity [20]byte) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireOwnerOrAdmin(caller); err != nil {
		return 0, err
	}
	if isZeroAddress(identity) {
		return 0, ErrInvalidIdentity
	}
	if _, found, err := e.userByAddress(identity); err != nil {
		return 0, err
	} else if found {
		return 0, ErrAlreadyExists
	}
	var counter uint64
	if _, err := e.st.KVGet(userCounterKey(), &counter); err != nil {
		return 0, err
	}
	id := counter + 1
	user := &User{
		ID:       id,
		Identity: identity,
		Approved: true,
	}
	cs := e.st.NewChangeset()
	cs.KVPut(userCounterKey(), id)
	cs.KVPut(userKey(id), user)
	cs.KVPut(userIndexKey(identity), id)
	if err := cs.Commit(); err != nil {
		return 0, err
	}
	e.emit(events.UserAdded{ID: id, User: identity})
	return id, nil
}

// BanUser revokes a user's approval, keyed by identity. The user must
// currently be approved.
func (e *Engine) BanUser(caller, identity [20]byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireOwnerOrAdmin(caller); err != nil {
		return err
	}
	if isZeroAddress(identity) {
		return ErrInvalidIdentity
	}
	user, found, err := e.userByAddress(identity)
	if err != nil {
		return err
	}
	if !found {
		return ErrInvalidUser
	}
	if !user.Approved {
		return ErrInvalidState
	}
	user.Approved = false
	if err := e.st.KVPut(userKey(user.ID), user); err != nil {
		return err
	}
	e.emit(events.UserBanned{ID: user.ID})
	return nil
}

// ApproveUser restores a banned user, keyed by identity. The user must
// currently be banned.
func (e *Engine) ApproveUser(caller, identity [20]byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireOwnerOrAdmin(caller); err != nil {
		return err
	}
	if isZeroAddress(identity) {
		return ErrInvalidIdentity
	}
	user, found, err := e.userByAddress(identity)
	if err != nil {
		return err
	}
	if !found {
		return ErrInvalidUser
	}
	if user.Approved {
		return ErrInvalidState
	}
	user.Approved = true
	if err := e.st.KVPut(userKey(user.ID), user); err != nil {
		return err
	}
	e.emit(events.UserApproved{ID: user.ID})
	return nil
}

// GetUserByID returns the user record for the id.
func (e *Engine) GetUserByID(id uint64) (*User, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	user, found, err := e.userByID(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrInvalidID
	}
	return user, nil
}

// GetUserByAddress returns the user record for the identity.
func (e *Engine) GetUserByAddress(identity [20]byte) (*User, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if isZeroAddress(identity) {
		return nil, ErrInvalidIdentity
	}
	user, found, err := e.userByAddress(identity)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrInvalidIdentity
	}
	return user, nil
}

func (e *Engine) userByID(id uint64) (*User, bool, error) {
	if id == 0 {
		return nil, false, nil
	}
	user := new(User)
	found, err := e.st.KVGet(userKey(id), user)
	if err != nil || !found {
		return nil, false, err
	}
	return user, true, nil
}

func (e *Engine) userByAddress(identity [20]byte) (*User, bool, error) {
	var id uint64
	found, err := e.st.KVGet(userIndexKey(identity), &id)
	if err != nil {
		return nil, false, err
	}
	if !found || id == 0 {
		return nil, false, nil
	}
	return e.userByID(id)
}
