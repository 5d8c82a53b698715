package points

import "rewardpoints/core/events"

// AddAdmin grants the admin role to the identity. Only the owner may grant
// the role. Granting it to a current admin leaves the set unchanged but still
// records the event.
func (e *Engine) AddAdmin(caller, admin [20]byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.isOwner(caller) {
		return ErrUnauthorized
	}
	if isZeroAddress(admin) {
		return ErrInvalidIdentity
	}
	if err := e.st.KVPut(adminKey(admin), true); err != nil {
		return err
	}
	e.emit(events.AdminAdded{Admin: admin})
	return nil
}

// RemoveAdmin revokes the admin role from the identity. Only the owner may
// revoke. Removing a non-member is accepted and still records the event.
func (e *Engine) RemoveAdmin(caller, admin [20]byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.isOwner(caller) {
		return ErrUnauthorized
	}
	if isZeroAddress(admin) {
		return ErrInvalidIdentity
	}
	if err := e.st.KVPut(adminKey(admin), false); err != nil {
		return err
	}
	e.emit(events.AdminRemoved{Admin: admin})
	return nil
}

// IsAdmin reports whether the identity currently holds the admin role. The
// owner is implicitly privileged and does not need to appear in the set.
func (e *Engine) IsAdmin(admin [20]byte) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.isAdminLocked(admin)
}
